package domain

import (
	"errors"
	"testing"
)

func TestParseModel(t *testing.T) {
	for _, want := range AvailableModels() {
		got, err := ParseModel(string(want))
		if err != nil {
			t.Errorf("既知のモデル %s でエラーが発生: %v", want, err)
		}
		if got != want {
			t.Errorf("期待されるモデル: %s, 実際: %s", want, got)
		}
	}

	_, err := ParseModel("gemini-pro")
	if !errors.Is(err, ErrUnknownModel) {
		t.Errorf("未知のモデルではErrUnknownModelが返される必要があります: %v", err)
	}
}

func TestAvailableModels_Order(t *testing.T) {
	expected := []string{
		"gemini-2.0-flash",
		"gemini-2.0-flash-lite",
		"gemini-flash-latest",
		"gemini-pro-latest",
	}

	models := AvailableModels()
	if len(models) != len(expected) {
		t.Fatalf("期待されるモデル数: %d, 実際: %d", len(expected), len(models))
	}
	for i, m := range models {
		if string(m) != expected[i] {
			t.Errorf("モデル[%d]: 期待値 %s, 実際 %s", i, expected[i], m)
		}
	}

	if DefaultModel != models[0] {
		t.Errorf("デフォルトモデルは先頭のモデルである必要があります: %s", DefaultModel)
	}
}

func TestParseTone(t *testing.T) {
	for _, name := range []string{"Formal", "Informal", "Persuasive", "Descriptive", "Narrative"} {
		tone, err := ParseTone(name)
		if err != nil {
			t.Errorf("既知の文体 %s でエラーが発生: %v", name, err)
		}
		if tone.String() != name {
			t.Errorf("期待される文体: %s, 実際: %s", name, tone)
		}
	}

	// 大文字小文字は区別する
	if _, err := ParseTone("formal"); !errors.Is(err, ErrUnknownTone) {
		t.Errorf("小文字の文体はErrUnknownToneになる必要があります: %v", err)
	}
}

func TestNewWordCount(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{name: "最小値", input: 100},
		{name: "デフォルト", input: 300},
		{name: "最大値", input: 1000},
		{name: "下限未満", input: 50, wantErr: true},
		{name: "上限超過", input: 1050, wantErr: true},
		{name: "刻み幅に合わない", input: 325, wantErr: true},
		{name: "ゼロ", input: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc, err := NewWordCount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWordCount) {
					t.Errorf("ErrInvalidWordCountが期待されましたが: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if wc.Int() != tt.input {
				t.Errorf("期待される値: %d, 実際: %d", tt.input, wc.Int())
			}
		})
	}
}

func TestWordCountOptions(t *testing.T) {
	options := WordCountOptions()

	if len(options) != 19 {
		t.Fatalf("期待される選択肢数: 19, 実際: %d", len(options))
	}
	if options[0] != MinWordCount || options[len(options)-1] != MaxWordCount {
		t.Errorf("範囲が正しくありません: %d - %d", options[0], options[len(options)-1])
	}
	for _, o := range options {
		if _, err := NewWordCount(o.Int()); err != nil {
			t.Errorf("選択肢 %d が無効です: %v", o, err)
		}
	}
}

func TestDefaultConfiguration(t *testing.T) {
	config := DefaultConfiguration()

	if config.Credential != "" {
		t.Error("デフォルト設定にAPIキーが含まれていてはいけません")
	}
	if config.Model != ModelGemini20Flash {
		t.Errorf("期待されるModel: gemini-2.0-flash, 実際: %s", config.Model)
	}
	if config.Tone != ToneFormal {
		t.Errorf("期待されるTone: Formal, 実際: %s", config.Tone)
	}
	if config.WordCount != 300 {
		t.Errorf("期待されるWordCount: 300, 実際: %d", config.WordCount)
	}
}

func TestNewGenerationResult(t *testing.T) {
	result := NewGenerationResult("```html\n<p>Text</p>\n```")

	if result.Raw != "```html\n<p>Text</p>\n```" {
		t.Errorf("生テキストが保持されていません: %q", result.Raw)
	}
	if result.Sanitized != "\n<p>Text</p>\n" {
		t.Errorf("整形後のテキストが正しくありません: %q", result.Sanitized)
	}
}
