package discord

import (
	"context"
	"fmt"
	"sync"

	"eassay/internal/domain"
)

// DiscordGuildAPIKeyRepository は、/set-api で登録されたギルドごとのAPIキーを保持します。
// メモリ上にのみ保持し、プロセスの再起動で消去されます。
type DiscordGuildAPIKeyRepository struct {
	mu   sync.RWMutex
	keys map[string]domain.GuildAPIKey
}

// NewDiscordGuildAPIKeyRepository は新しいDiscordGuildAPIKeyRepositoryインスタンスを作成します
func NewDiscordGuildAPIKeyRepository() *DiscordGuildAPIKeyRepository {
	return &DiscordGuildAPIKeyRepository{
		keys: make(map[string]domain.GuildAPIKey),
	}
}

// SetAPIKey は、ギルドのAPIキーを登録します。既に登録されている場合は上書きします
func (r *DiscordGuildAPIKeyRepository) SetAPIKey(ctx context.Context, guildID, apiKey, setBy string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.keys[guildID] = domain.NewGuildAPIKey(guildID, apiKey, setBy)
	return nil
}

// GetAPIKey は、ギルドのAPIキーを返します。
// 未登録の場合は domain.ErrGuildAPIKeyNotFound を返します。
func (r *DiscordGuildAPIKeyRepository) GetAPIKey(ctx context.Context, guildID string) (domain.GuildAPIKey, error) {
	if err := ctx.Err(); err != nil {
		return domain.GuildAPIKey{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.lookup(guildID)
}

// DeleteAPIKey は、ギルドのAPIキーを削除します。
// 未登録の場合は domain.ErrGuildAPIKeyNotFound を返します。
func (r *DiscordGuildAPIKeyRepository) DeleteAPIKey(ctx context.Context, guildID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(guildID); err != nil {
		return err
	}
	delete(r.keys, guildID)
	return nil
}

// lookup は、ロックを取得した状態で呼び出します
func (r *DiscordGuildAPIKeyRepository) lookup(guildID string) (domain.GuildAPIKey, error) {
	key, ok := r.keys[guildID]
	if !ok {
		return domain.GuildAPIKey{}, fmt.Errorf("%w: guild=%s", domain.ErrGuildAPIKeyNotFound, guildID)
	}
	return key, nil
}
