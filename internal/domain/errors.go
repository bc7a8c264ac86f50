package domain

import (
	"errors"
	"strings"
)

// ドメイン固有のエラー型を定義
var (
	// ErrMissingCredential は、APIキーが入力されていない場合のエラーです
	ErrMissingCredential = errors.New("Gemini APIキーが入力されていません")

	// ErrMissingTopic は、トピックが空の場合のエラーです
	ErrMissingTopic = errors.New("トピックが入力されていません")

	// ErrUnknownModel は、未知のモデル識別子の場合のエラーです
	ErrUnknownModel = errors.New("未知のモデルです")

	// ErrUnknownTone は、未知の文体の場合のエラーです
	ErrUnknownTone = errors.New("未知の文体です")

	// ErrInvalidWordCount は、単語数が範囲外または刻み幅に合わない場合のエラーです
	ErrInvalidWordCount = errors.New("単語数は100から1000の範囲で50刻みである必要があります")

	// ErrGuildAPIKeyNotFound は、ギルドにAPIキーが登録されていない場合のエラーです
	ErrGuildAPIKeyNotFound = errors.New("ギルドのAPIキーが登録されていません")

	// ErrInvalidTransition は、現在の状態から許可されていない遷移の場合のエラーです
	ErrInvalidTransition = errors.New("無効な状態遷移です")
)

// ユーザーに表示するメッセージ
const (
	MissingCredentialMessage = "Please enter your Gemini API Key in the sidebar to continue."
	MissingTopicMessage      = "Please enter a topic first."
	QuotaExceededMessage     = "Quota Exceeded"
)

// ErrorKind は、ユーザーに表示するエラーの種類です
type ErrorKind int

const (
	ErrorKindMissingCredential ErrorKind = iota + 1
	ErrorKindMissingTopic
	ErrorKindQuotaExceeded
	ErrorKindOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindMissingCredential:
		return "MissingCredential"
	case ErrorKindMissingTopic:
		return "MissingTopic"
	case ErrorKindQuotaExceeded:
		return "QuotaExceeded"
	case ErrorKindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// EssayError は、1回の送信で発生したエラー状態です
type EssayError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *EssayError) Error() string {
	return e.Message
}

func (e *EssayError) Unwrap() error {
	return e.Err
}

// quotaExceededMarker は、プロバイダーのクォータ超過を示すステータスコードです
const quotaExceededMarker = "429"

// ClassifyGenerationError は、生成APIのエラーを分類します。
// エラー文字列に "429" が含まれていればクォータ超過とみなします。
// 数値比較ではなく部分一致なので、日付やポート番号に "429" を含む
// エラーもクォータ超過と判定されます（既知の誤検知）。
func ClassifyGenerationError(err error) *EssayError {
	if err == nil {
		return nil
	}

	var essayErr *EssayError
	if errors.As(err, &essayErr) {
		return essayErr
	}

	if strings.Contains(err.Error(), quotaExceededMarker) {
		return &EssayError{
			Kind:    ErrorKindQuotaExceeded,
			Message: QuotaExceededMessage,
			Err:     err,
		}
	}

	return &EssayError{
		Kind:    ErrorKindOther,
		Message: err.Error(),
		Err:     err,
	}
}

func newPreflightError(err error, kind ErrorKind, message string) *EssayError {
	return &EssayError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
