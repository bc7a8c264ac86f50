package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eassay/internal/domain"
)

// EssayApplicationService は、送信ボタンをトリガーに、エッセイ生成の一連の処理を制御するアプリケーションサービスです
type EssayApplicationService struct {
	generatorFactory GeneratorFactory
	recorder         GenerationRecorder
}

// NewEssayApplicationService は新しいEssayApplicationServiceインスタンスを作成します
func NewEssayApplicationService(generatorFactory GeneratorFactory, recorder GenerationRecorder) (*EssayApplicationService, error) {
	if generatorFactory == nil {
		return nil, fmt.Errorf("生成クライアントのファクトリーが指定されていません")
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &EssayApplicationService{
		generatorFactory: generatorFactory,
		recorder:         recorder,
	}, nil
}

// Generate は、セッションの設定とトピックからエッセイを生成し、結果をセッションに反映します。
// APIキーまたはトピックが空の場合は生成APIを呼び出しません。
// 生成APIの呼び出しは1回だけで、リトライは行いません。
// 戻り値のエラーは状態遷移の不整合のみで、生成の失敗はセッションのエラー状態として保持されます。
func (s *EssayApplicationService) Generate(ctx context.Context, session *domain.Session) error {
	start := time.Now()
	model := session.Config.Model

	// 1. 事前チェック
	if err := session.Submit(); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return err
		}
		log.Printf("事前チェックで送信を中断: %s", session.Error().Kind)
		s.recorder.RecordGeneration(model, outcomeFor(session.Error()), time.Since(start).Seconds())
		return nil
	}

	// 2. プロンプトを組み立て
	prompt := domain.BuildPrompt(session.Config.Tone, session.Topic, session.Config.WordCount)
	log.Printf("エッセイ生成を開始: モデル=%s, 文体=%s, 単語数=%d, プロンプト=%d文字",
		model, session.Config.Tone, session.Config.WordCount, len(prompt.Content()))

	// 3. 生成APIを呼び出し
	raw, err := s.generate(ctx, session.Config.Credential, model, prompt)
	if err != nil {
		log.Printf("エッセイ生成に失敗: %v", err)
		if failErr := session.Fail(err); failErr != nil {
			return failErr
		}
		s.recorder.RecordGeneration(model, outcomeFor(session.Error()), time.Since(start).Seconds())
		return nil
	}

	// 4. 応答を整形してカードに埋め込む
	result := domain.NewGenerationResult(raw)
	fragment := domain.RenderEssayCard(session.Topic, session.Config.Tone, session.Config.WordCount, result.Sanitized)
	if err := session.Succeed(fragment); err != nil {
		return err
	}

	log.Printf("エッセイ生成が完了: 応答=%d文字, 整形後=%d文字", len(result.Raw), len(result.Sanitized))
	s.recorder.RecordGeneration(model, OutcomeSuccess, time.Since(start).Seconds())
	return nil
}

func (s *EssayApplicationService) generate(ctx context.Context, apiKey string, model domain.Model, prompt domain.Prompt) (string, error) {
	generator, err := s.generatorFactory(apiKey, model)
	if err != nil {
		return "", err
	}
	return generator.GenerateText(ctx, prompt)
}
