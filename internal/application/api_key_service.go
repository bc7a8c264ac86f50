package application

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eassay/internal/domain"
)

// APIKeyApplicationService は、Discordサーバーごとに登録するAPIキーの管理を行うアプリケーションサービスです
type APIKeyApplicationService struct {
	apiKeyRepo domain.GuildAPIKeyRepository
}

// NewAPIKeyApplicationService は新しいAPIKeyApplicationServiceインスタンスを作成します
func NewAPIKeyApplicationService(apiKeyRepo domain.GuildAPIKeyRepository) *APIKeyApplicationService {
	return &APIKeyApplicationService{
		apiKeyRepo: apiKeyRepo,
	}
}

// SetGuildAPIKey は、指定されたギルドのAPIキーを設定します
func (s *APIKeyApplicationService) SetGuildAPIKey(ctx context.Context, guildID, apiKey, setBy string) error {
	// APIキーの形式を検証（基本的な検証）
	if apiKey == "" {
		return fmt.Errorf("APIキーが空です")
	}

	if len(apiKey) < 10 {
		return fmt.Errorf("APIキーが短すぎます")
	}

	return s.apiKeyRepo.SetAPIKey(ctx, guildID, apiKey, setBy)
}

// GetGuildAPIKey は、指定されたギルドのAPIキー情報を取得します
func (s *APIKeyApplicationService) GetGuildAPIKey(ctx context.Context, guildID string) (domain.GuildAPIKey, error) {
	return s.apiKeyRepo.GetAPIKey(ctx, guildID)
}

// DeleteGuildAPIKey は、指定されたギルドのAPIキーを削除します
func (s *APIKeyApplicationService) DeleteGuildAPIKey(ctx context.Context, guildID string) error {
	return s.apiKeyRepo.DeleteAPIKey(ctx, guildID)
}

// GuildCredential は、ギルドに登録されたAPIキーを返します。未登録の場合は空文字列です
func (s *APIKeyApplicationService) GuildCredential(ctx context.Context, guildID string) string {
	if guildID == "" {
		return ""
	}

	key, err := s.apiKeyRepo.GetAPIKey(ctx, guildID)
	if err != nil {
		if !errors.Is(err, domain.ErrGuildAPIKeyNotFound) {
			log.Printf("ギルドのAPIキーの取得に失敗: %v", err)
		}
		return ""
	}
	return key.APIKey
}
