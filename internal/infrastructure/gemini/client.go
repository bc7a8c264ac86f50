package gemini

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"eassay/internal/application"
	"eassay/internal/domain"
	"eassay/internal/infrastructure/config"

	"google.golang.org/genai"
)

// GeminiAPIClient は、Gemini APIとの通信を行うクライアントです
type GeminiAPIClient struct {
	client *genai.Client
	model  domain.Model
	config *config.GeminiConfig
}

// NewGeminiAPIClient は、APIキーとモデルを指定して新しいGeminiAPIClientインスタンスを作成します
func NewGeminiAPIClient(apiKey string, model domain.Model, geminiConfig *config.GeminiConfig) (*GeminiAPIClient, error) {
	if geminiConfig == nil {
		geminiConfig = config.DefaultGeminiConfig()
	}

	ctx := context.Background()
	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if geminiConfig.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: geminiConfig.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		log.Printf("Gemini APIクライアントの作成に失敗: %v", err)
		return nil, err
	}

	return &GeminiAPIClient{
		client: client,
		model:  model,
		config: geminiConfig,
	}, nil
}

// NewFactory は、送信ごとにGeminiAPIClientを作成するファクトリーを返します
func NewFactory(geminiConfig *config.GeminiConfig) application.GeneratorFactory {
	return func(apiKey string, model domain.Model) (application.TextGenerator, error) {
		return NewGeminiAPIClient(apiKey, model, geminiConfig)
	}
}

// createGenerateConfig は、生成設定を作成します。
// 設定で指定されたパラメータだけを含め、それ以外はモデル側のデフォルトに任せます。
func (g *GeminiAPIClient) createGenerateConfig() *genai.GenerateContentConfig {
	generateConfig := &genai.GenerateContentConfig{}

	if g.config.MaxTokens > 0 {
		generateConfig.MaxOutputTokens = g.config.MaxTokens
	}
	if g.config.Temperature != nil {
		temperature := *g.config.Temperature
		generateConfig.Temperature = &temperature
	}
	if g.config.TopP != nil {
		topP := *g.config.TopP
		generateConfig.TopP = &topP
	}

	return generateConfig
}

// GenerateText は、プロンプトを受け取ってGemini APIからテキストを生成します。
// リクエストは1回だけ送信し、プロバイダーのエラーはメッセージを変えずに返します。
func (g *GeminiAPIClient) GenerateText(ctx context.Context, prompt domain.Prompt) (string, error) {
	log.Printf("Gemini APIにテキスト生成をリクエスト中: モデル=%s, %d文字", g.model, len(prompt.Content()))

	contents := genai.Text(prompt.Content())

	resp, err := g.client.Models.GenerateContent(ctx, g.model.String(), contents, g.createGenerateConfig())
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			log.Printf("Gemini APIへのリクエストが中断されました: %v", err)
		} else {
			log.Printf("Gemini APIからの応答取得に失敗: %v", err)
		}
		return "", err
	}

	return g.processResponse(resp)
}

// processResponse は、Gemini APIのレスポンスを処理します
func (g *GeminiAPIClient) processResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("the prompt was blocked by the Gemini API (%s)", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("the Gemini API returned no candidates")
	}

	candidate := resp.Candidates[0]
	log.Printf("Candidate詳細: FinishReason=%s", candidate.FinishReason)

	// FinishReasonをチェックして安全フィルターによるブロックを検出
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("the response was blocked by the Gemini API safety filter")
	}

	if candidate.FinishReason == genai.FinishReasonRecitation {
		return "", fmt.Errorf("the Gemini API detected recitation of copyrighted content")
	}

	// 途中で切れたエッセイは成功として扱わない
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("the Gemini API response was cut off at the output token limit (%s)", candidate.FinishReason)
	}

	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("the Gemini API response contained no content")
	}

	// テキスト部分を抽出
	var builder strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			builder.WriteString(part.Text)
		}
	}

	result := builder.String()
	log.Printf("Gemini APIから応答を取得: %d文字", len(result))
	return result, nil
}
