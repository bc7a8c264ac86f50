package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"eassay/internal/domain"
	"eassay/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// Config は、アプリケーション全体の設定を定義します
type Config struct {
	Server  config.ServerConfig
	Gemini  config.GeminiConfig
	Essay   config.EssayConfig
	Secrets config.SecretsConfig
	Discord config.DiscordConfig
}

// LoadConfig は、環境変数から設定を読み込みます
func LoadConfig() (*Config, error) {
	// .envファイルが存在しない場合は警告のみ出力（エラーにはしない）
	if err := godotenv.Load(); err != nil {
		log.Printf("警告: .envファイルの読み込みに失敗しました: %v", err)
	}

	cfg := &Config{
		Server: config.ServerConfig{
			Port:              getEnvOrDefault("PORT", "8501"),
			Production:        getEnvOrDefault("GIN_MODE", "debug") == "release",
			ReadHeaderTimeout: getEnvAsDurationOrDefault("READ_HEADER_TIMEOUT", 10*time.Second),
			ShutdownTimeout:   getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 30*time.Second),
			MetricsEnabled:    getEnvAsBoolOrDefault("METRICS_ENABLED", true),
		},
		Gemini: config.GeminiConfig{
			MaxTokens:   int32(getEnvAsIntOrDefault("GEMINI_MAX_TOKENS", 0)),
			Temperature: getEnvAsOptionalFloat32("GEMINI_TEMPERATURE"),
			TopP:        getEnvAsOptionalFloat32("GEMINI_TOP_P"),
			BaseURL:     getEnvOrDefault("GEMINI_BASE_URL", ""),
		},
		Essay: config.EssayConfig{
			DefaultModel:     getEnvOrDefault("DEFAULT_MODEL", domain.DefaultModel.String()),
			DefaultTone:      getEnvOrDefault("DEFAULT_TONE", domain.DefaultTone.String()),
			DefaultWordCount: getEnvAsIntOrDefault("DEFAULT_WORD_COUNT", domain.DefaultWordCount),
		},
		Secrets: config.SecretsConfig{
			File: getEnvOrDefault("SECRETS_FILE", ".streamlit/secrets.toml"),
		},
		Discord: config.DiscordConfig{
			BotToken: getEnvOrDefault("DISCORD_BOT_TOKEN", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate は、設定の妥当性を検証します
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT は1から65535の整数である必要があります")
	}

	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("READ_HEADER_TIMEOUT は正の値である必要があります")
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT は正の値である必要があります")
	}

	if c.Gemini.MaxTokens < 0 {
		return fmt.Errorf("GEMINI_MAX_TOKENS は0以上の整数である必要があります")
	}

	if t := c.Gemini.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("GEMINI_TEMPERATURE は0から2の範囲である必要があります")
	}

	if p := c.Gemini.TopP; p != nil && (*p <= 0 || *p > 1) {
		return fmt.Errorf("GEMINI_TOP_P は0より大きく1以下である必要があります")
	}

	if _, err := c.EssayDefaults(); err != nil {
		return err
	}

	return nil
}

// EssayDefaults は、フォームの初期値をドメインの設定に変換します
func (c *Config) EssayDefaults() (domain.Configuration, error) {
	model, err := domain.ParseModel(c.Essay.DefaultModel)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("DEFAULT_MODEL が不正です: %w", err)
	}

	tone, err := domain.ParseTone(c.Essay.DefaultTone)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("DEFAULT_TONE が不正です: %w", err)
	}

	wordCount, err := domain.NewWordCount(c.Essay.DefaultWordCount)
	if err != nil {
		return domain.Configuration{}, fmt.Errorf("DEFAULT_WORD_COUNT が不正です: %w", err)
	}

	return domain.Configuration{
		Model:     model,
		Tone:      tone,
		WordCount: wordCount,
	}, nil
}

// getEnvOrDefault は、環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は、環境変数を整数として取得し、存在しない場合はデフォルト値を返します
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsOptionalFloat32 は、環境変数を浮動小数点数として取得し、存在しないか無効な場合はnilを返します
func getEnvAsOptionalFloat32(key string) *float32 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 32); err == nil {
			v := float32(floatValue)
			return &v
		}
	}
	return nil
}

// getEnvAsDurationOrDefault は、環境変数を時間として取得し、存在しない場合はデフォルト値を返します
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault は、環境変数を真偽値として取得し、存在しない場合はデフォルト値を返します
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
