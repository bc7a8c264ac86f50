package domain

import (
	"context"
	"strings"
	"time"
)

// GuildAPIKey は、Discordサーバー（ギルド）ごとに登録されたGemini APIキーです。
// Webページのサイドバーで入力するAPIキーに相当します。
type GuildAPIKey struct {
	GuildID string
	APIKey  string
	SetBy   string
	SetAt   time.Time
}

// NewGuildAPIKey は新しいGuildAPIKeyインスタンスを作成します
func NewGuildAPIKey(guildID, apiKey, setBy string) GuildAPIKey {
	return GuildAPIKey{
		GuildID: guildID,
		APIKey:  apiKey,
		SetBy:   setBy,
		SetAt:   time.Now(),
	}
}

// MaskedAPIKey は、表示用に末尾4文字以外を伏せたAPIキーを返します
func (k GuildAPIKey) MaskedAPIKey() string {
	if len(k.APIKey) <= 4 {
		return strings.Repeat("*", len(k.APIKey))
	}
	return strings.Repeat("*", len(k.APIKey)-4) + k.APIKey[len(k.APIKey)-4:]
}

// GuildAPIKeyRepository は、ギルド固有のAPIキーの永続化を行うインターフェースです
type GuildAPIKeyRepository interface {
	// SetAPIKey は、指定されたギルドのAPIキーを設定します
	SetAPIKey(ctx context.Context, guildID string, apiKey string, setBy string) error

	// GetAPIKey は、指定されたギルドのAPIキー情報を取得します。未登録の場合は ErrGuildAPIKeyNotFound を返します
	GetAPIKey(ctx context.Context, guildID string) (GuildAPIKey, error)

	// DeleteAPIKey は、指定されたギルドのAPIキーを削除します
	DeleteAPIKey(ctx context.Context, guildID string) error
}
