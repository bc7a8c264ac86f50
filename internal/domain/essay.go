package domain

import "fmt"

// Model は、エッセイ生成に使用するGeminiモデルの識別子です
type Model string

const (
	ModelGemini20Flash     Model = "gemini-2.0-flash"
	ModelGemini20FlashLite Model = "gemini-2.0-flash-lite"
	ModelGeminiFlashLatest Model = "gemini-flash-latest"
	ModelGeminiProLatest   Model = "gemini-pro-latest"
)

// DefaultModel は、サイドバーで最初に選択されているモデルです
const DefaultModel = ModelGemini20Flash

// AvailableModels は、選択可能なモデルを表示順で返します
func AvailableModels() []Model {
	return []Model{
		ModelGemini20Flash,
		ModelGemini20FlashLite,
		ModelGeminiFlashLatest,
		ModelGeminiProLatest,
	}
}

// ParseModel は、文字列を既知のモデル識別子に変換します
func ParseModel(s string) (Model, error) {
	for _, m := range AvailableModels() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

func (m Model) String() string {
	return string(m)
}

// Tone は、エッセイの文体です
type Tone string

const (
	ToneFormal      Tone = "Formal"
	ToneInformal    Tone = "Informal"
	TonePersuasive  Tone = "Persuasive"
	ToneDescriptive Tone = "Descriptive"
	ToneNarrative   Tone = "Narrative"
)

// DefaultTone は、初期状態で選択されている文体です
const DefaultTone = ToneFormal

// AvailableTones は、選択可能な文体を表示順で返します
func AvailableTones() []Tone {
	return []Tone{ToneFormal, ToneInformal, TonePersuasive, ToneDescriptive, ToneNarrative}
}

// ParseTone は、文字列を既知の文体に変換します
func ParseTone(s string) (Tone, error) {
	for _, t := range AvailableTones() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTone, s)
}

func (t Tone) String() string {
	return string(t)
}

// 文字数スライダーの範囲
const (
	MinWordCount     = 100
	MaxWordCount     = 1000
	WordCountStep    = 50
	DefaultWordCount = 300
)

// WordCount は、目標単語数を表現する値オブジェクトです
type WordCount int

// NewWordCount は、範囲と刻み幅を検証してWordCountを作成します
func NewWordCount(n int) (WordCount, error) {
	if n < MinWordCount || n > MaxWordCount || n%WordCountStep != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWordCount, n)
	}
	return WordCount(n), nil
}

// Int は、単語数をintで返します
func (w WordCount) Int() int {
	return int(w)
}

// WordCountOptions は、スライダーで選択可能な全ての値を返します
func WordCountOptions() []WordCount {
	options := make([]WordCount, 0, (MaxWordCount-MinWordCount)/WordCountStep+1)
	for n := MinWordCount; n <= MaxWordCount; n += WordCountStep {
		options = append(options, WordCount(n))
	}
	return options
}

// Configuration は、1回の送信で使用される設定のスナップショットです
type Configuration struct {
	Credential string
	Model      Model
	Tone       Tone
	WordCount  WordCount
}

// DefaultConfiguration は、ページを開いた直後の設定を返します
func DefaultConfiguration() Configuration {
	return Configuration{
		Model:     DefaultModel,
		Tone:      DefaultTone,
		WordCount: DefaultWordCount,
	}
}

// GenerationResult は、APIから返された生テキストと整形後のテキストの組です
type GenerationResult struct {
	Raw       string
	Sanitized string
}

// NewGenerationResult は、生テキストを整形してGenerationResultを作成します
func NewGenerationResult(raw string) GenerationResult {
	return GenerationResult{
		Raw:       raw,
		Sanitized: SanitizeResponse(raw),
	}
}
