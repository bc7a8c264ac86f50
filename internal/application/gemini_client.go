package application

import (
	"context"

	"eassay/internal/domain"
)

// TextGenerator は、生成APIとの通信を行うクライアントのインターフェースです
type TextGenerator interface {
	// GenerateText は、プロンプトを受け取ってテキストを1回だけ生成します
	GenerateText(ctx context.Context, prompt domain.Prompt) (string, error)
}

// GeneratorFactory は、APIキーとモデルを指定してTextGeneratorを作成します。
// 送信ごとに、その時点の設定でクライアントを構成するために使用します。
type GeneratorFactory func(apiKey string, model domain.Model) (TextGenerator, error)

// GenerationOutcome は、1回の生成の結果の種類です
type GenerationOutcome string

const (
	OutcomeSuccess           GenerationOutcome = "success"
	OutcomeMissingCredential GenerationOutcome = "missing_credential"
	OutcomeMissingTopic      GenerationOutcome = "missing_topic"
	OutcomeQuotaExceeded     GenerationOutcome = "quota_exceeded"
	OutcomeError             GenerationOutcome = "error"
)

// GenerationRecorder は、生成結果をメトリクスとして記録します
type GenerationRecorder interface {
	RecordGeneration(model domain.Model, outcome GenerationOutcome, seconds float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordGeneration(domain.Model, GenerationOutcome, float64) {}

func outcomeFor(err *domain.EssayError) GenerationOutcome {
	if err == nil {
		return OutcomeSuccess
	}
	switch err.Kind {
	case domain.ErrorKindMissingCredential:
		return OutcomeMissingCredential
	case domain.ErrorKindMissingTopic:
		return OutcomeMissingTopic
	case domain.ErrorKindQuotaExceeded:
		return OutcomeQuotaExceeded
	default:
		return OutcomeError
	}
}
