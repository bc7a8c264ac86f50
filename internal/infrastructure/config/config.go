package config

import "time"

// ServerConfig は、Webサーバー関連の設定を定義します
type ServerConfig struct {
	Port              string
	Production        bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	MetricsEnabled    bool
}

// GeminiConfig は、Gemini API関連の設定を定義します。
// 未設定の生成パラメータはリクエストに含めず、モデル側のデフォルトを使用します。
type GeminiConfig struct {
	MaxTokens   int32    // 0の場合は未設定
	Temperature *float32 // nilの場合は未設定
	TopP        *float32 // nilの場合は未設定
	BaseURL     string   // テストや中継サーバー用。空の場合は公式エンドポイント
}

// EssayConfig は、フォームの初期値を定義します
type EssayConfig struct {
	DefaultModel     string
	DefaultTone      string
	DefaultWordCount int
}

// SecretsConfig は、ホストのシークレットストアの設定を定義します
type SecretsConfig struct {
	File string
}

// DiscordConfig は、Discord関連の設定を定義します
type DiscordConfig struct {
	BotToken string
}

// DefaultGeminiConfig は、生成パラメータをすべて未設定にしたGemini設定を返します
func DefaultGeminiConfig() *GeminiConfig {
	return &GeminiConfig{}
}
