// Package secrets は、ホストが提供するシークレット（APIキー）を読み込みます
package secrets

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"
)

// GeminiAPIKeyName は、シークレットストア上のGemini APIキーの名前です
const GeminiAPIKeyName = "GEMINI_API_KEY"

// Store は、起動時に一度だけ読み込まれる読み取り専用のシークレットストアです
type Store struct {
	values map[string]string
}

// Load は、TOML形式のシークレットファイルと環境変数からシークレットを読み込みます。
// ファイルが存在しない場合は環境変数のみを使用します。
func Load(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("シークレットファイル %s の読み込みに失敗: %w", path, err)
			}
			log.Printf("シークレットファイルを読み込みました: %s", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("シークレットファイル %s の確認に失敗: %w", path, err)
		}
	}

	store := &Store{values: make(map[string]string)}
	if key := v.GetString(GeminiAPIKeyName); key != "" {
		store.values[GeminiAPIKeyName] = key
	}

	return store, nil
}

// Get は、指定された名前のシークレットを返します
func (s *Store) Get(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[name]
	return value, ok
}

// GeminiAPIKey は、Gemini APIキーを返します。登録されていない場合は空文字列です
func (s *Store) GeminiAPIKey() string {
	key, _ := s.Get(GeminiAPIKeyName)
	return key
}
