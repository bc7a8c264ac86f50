package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"eassay/internal/domain"
)

func newTestSession(credential, topic string) *domain.Session {
	config := domain.DefaultConfiguration()
	config.Credential = credential
	return domain.NewSession(config, topic)
}

func newTestService(t *testing.T, factory *mockFactory, recorder GenerationRecorder) *EssayApplicationService {
	t.Helper()

	service, err := NewEssayApplicationService(factory.create, recorder)
	if err != nil {
		t.Fatalf("サービスの作成に失敗: %v", err)
	}
	return service
}

func TestNewEssayApplicationService_NilFactory(t *testing.T) {
	if _, err := NewEssayApplicationService(nil, nil); err == nil {
		t.Error("ファクトリーがnilの場合はエラーが返される必要があります")
	}
}

func TestEssayApplicationService_Generate_MissingCredential(t *testing.T) {
	generator := &MockTextGenerator{response: "<p>unused</p>"}
	factory := &mockFactory{generator: generator}
	recorder := &mockRecorder{}
	service := newTestService(t, factory, recorder)

	session := newTestSession("", "renewable energy")
	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.Error() == nil || session.Error().Kind != domain.ErrorKindMissingCredential {
		t.Fatalf("MissingCredentialが期待されましたが: %+v", session.Error())
	}
	if factory.calls != 0 || generator.calls != 0 {
		t.Errorf("APIは呼び出されてはいけません: factory=%d, generate=%d", factory.calls, generator.calls)
	}
	if len(recorder.outcomes) != 1 || recorder.outcomes[0] != OutcomeMissingCredential {
		t.Errorf("結果が記録されていません: %v", recorder.outcomes)
	}
}

func TestEssayApplicationService_Generate_MissingTopic(t *testing.T) {
	generator := &MockTextGenerator{response: "<p>unused</p>"}
	factory := &mockFactory{generator: generator}
	service := newTestService(t, factory, nil)

	session := newTestSession("test-api-key", "")
	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.Error() == nil || session.Error().Kind != domain.ErrorKindMissingTopic {
		t.Fatalf("MissingTopicが期待されましたが: %+v", session.Error())
	}
	if factory.calls != 0 || generator.calls != 0 {
		t.Errorf("APIは呼び出されてはいけません: factory=%d, generate=%d", factory.calls, generator.calls)
	}
}

func TestEssayApplicationService_Generate_QuotaExceeded(t *testing.T) {
	generator := &MockTextGenerator{err: errors.New("Error 429: rate limit")}
	factory := &mockFactory{generator: generator}
	recorder := &mockRecorder{}
	service := newTestService(t, factory, recorder)

	session := newTestSession("test-api-key", "renewable energy")
	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.State() != domain.StateErrorShown {
		t.Errorf("期待される状態: ErrorShown, 実際: %s", session.State())
	}
	if session.Error().Kind != domain.ErrorKindQuotaExceeded {
		t.Errorf("QuotaExceededが期待されましたが: %s", session.Error().Kind)
	}
	// リトライしない
	if generator.calls != 1 {
		t.Errorf("生成APIの呼び出しは1回である必要があります: %d", generator.calls)
	}
	if recorder.outcomes[0] != OutcomeQuotaExceeded {
		t.Errorf("期待される結果: quota_exceeded, 実際: %s", recorder.outcomes[0])
	}
}

func TestEssayApplicationService_Generate_OtherError(t *testing.T) {
	generator := &MockTextGenerator{err: errors.New("connection reset")}
	factory := &mockFactory{generator: generator}
	service := newTestService(t, factory, nil)

	session := newTestSession("test-api-key", "renewable energy")
	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.Error().Kind != domain.ErrorKindOther {
		t.Errorf("Otherが期待されましたが: %s", session.Error().Kind)
	}
	if session.Error().Message != "connection reset" {
		t.Errorf("メッセージはそのまま渡される必要があります: %q", session.Error().Message)
	}
	if generator.calls != 1 {
		t.Errorf("生成APIの呼び出しは1回である必要があります: %d", generator.calls)
	}
}

func TestEssayApplicationService_Generate_FactoryError(t *testing.T) {
	factory := &mockFactory{err: errors.New("invalid api key format")}
	service := newTestService(t, factory, nil)

	session := newTestSession("bad", "renewable energy")
	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.Error() == nil || session.Error().Message != "invalid api key format" {
		t.Errorf("ファクトリーのエラーが表示される必要があります: %+v", session.Error())
	}
}

func TestEssayApplicationService_Generate_EndToEnd(t *testing.T) {
	generator := &MockTextGenerator{response: "```html\n<h4>Intro</h4><p>Text</p>\n```"}
	factory := &mockFactory{generator: generator}
	recorder := &mockRecorder{}
	service := newTestService(t, factory, recorder)

	config := domain.DefaultConfiguration()
	config.Credential = "test-api-key"
	config.Model = domain.ModelGeminiProLatest
	session := domain.NewSession(config, "renewable energy")

	if err := service.Generate(context.Background(), session); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if session.State() != domain.StateDisplaying {
		t.Fatalf("期待される状態: Displaying, 実際: %s", session.State())
	}

	fragment := session.Fragment()
	for _, expected := range []string{"<h4>Intro</h4><p>Text</p>", "renewable energy", "Formal", "300"} {
		if !strings.Contains(fragment, expected) {
			t.Errorf("カード断片に %q が含まれていません:\n%s", expected, fragment)
		}
	}
	if strings.Contains(fragment, "```") {
		t.Errorf("カード断片にコードフェンスが残っています:\n%s", fragment)
	}

	// クライアントは送信時の設定で構成される
	if factory.apiKeys[0] != "test-api-key" || factory.models[0] != domain.ModelGeminiProLatest {
		t.Errorf("ファクトリーの引数が正しくありません: %v %v", factory.apiKeys, factory.models)
	}
	if generator.calls != 1 {
		t.Errorf("生成APIの呼び出しは1回である必要があります: %d", generator.calls)
	}
	if !strings.Contains(generator.prompts[0].Content(), "'renewable energy'") {
		t.Error("プロンプトにトピックが含まれていません")
	}
	if recorder.outcomes[0] != OutcomeSuccess || recorder.models[0] != domain.ModelGeminiProLatest {
		t.Errorf("結果が正しく記録されていません: %v %v", recorder.outcomes, recorder.models)
	}
}

func TestEssayApplicationService_Generate_WhileCalling(t *testing.T) {
	generator := &MockTextGenerator{response: "<p>x</p>"}
	factory := &mockFactory{generator: generator}
	service := newTestService(t, factory, nil)

	session := newTestSession("test-api-key", "topic")
	_ = session.Submit()

	err := service.Generate(context.Background(), session)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("呼び出し中の送信はErrInvalidTransitionになる必要があります: %v", err)
	}
	if generator.calls != 0 {
		t.Errorf("APIは呼び出されてはいけません: %d", generator.calls)
	}
}
