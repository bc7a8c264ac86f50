package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FromFile(t *testing.T) {
	t.Setenv(GeminiAPIKeyName, "")

	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY = \"file-secret-key\"\n"), 0o600); err != nil {
		t.Fatalf("シークレットファイルの作成に失敗: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("シークレットの読み込みに失敗: %v", err)
	}

	if store.GeminiAPIKey() != "file-secret-key" {
		t.Errorf("期待されるAPIキー: file-secret-key, 実際: %q", store.GeminiAPIKey())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(GeminiAPIKeyName, "env-secret-key")

	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY = \"file-secret-key\"\n"), 0o600); err != nil {
		t.Fatalf("シークレットファイルの作成に失敗: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("シークレットの読み込みに失敗: %v", err)
	}

	if store.GeminiAPIKey() != "env-secret-key" {
		t.Errorf("環境変数が優先される必要があります: %q", store.GeminiAPIKey())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(GeminiAPIKeyName, "")

	store, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("ファイルがない場合はエラーにならない必要があります: %v", err)
	}

	if _, ok := store.Get(GeminiAPIKeyName); ok {
		t.Error("シークレットが存在しない場合は未登録である必要があります")
	}
	if store.GeminiAPIKey() != "" {
		t.Errorf("APIキーは空である必要があります: %q", store.GeminiAPIKey())
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("GEMINI_API_KEY = = broken"), 0o600); err != nil {
		t.Fatalf("シークレットファイルの作成に失敗: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("不正なTOMLファイルはエラーになる必要があります")
	}
}

func TestStore_NilSafe(t *testing.T) {
	var store *Store

	if store.GeminiAPIKey() != "" {
		t.Error("nilのストアは空文字列を返す必要があります")
	}
}
