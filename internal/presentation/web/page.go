package web

import (
	"fmt"
	"html/template"

	"eassay/internal/domain"
)

// PageTitle は、ページのタイトルです
const PageTitle = "Eassay"

// 出力パネルの表示種別
const (
	outputCard    = "card"
	outputError   = "error"
	outputWarning = "warning"
	outputQuota   = "quota"
)

// selectOption は、セレクトボックスの1項目です
type selectOption struct {
	Value    string
	Selected bool
}

// outputPanel は、出力パネルに表示する内容です
type outputPanel struct {
	Kind     string
	Message  string
	Model    string
	Fragment template.HTML
}

// pageData は、ページ全体のテンプレートに渡す値です
type pageData struct {
	Title         string
	HasHostSecret bool
	Credential    string
	Models        []selectOption
	Tones         []selectOption
	WordCount     int
	MinWordCount  int
	MaxWordCount  int
	WordCountStep int
	Topic         string
	Output        *outputPanel
}

// newPageData は、セッションの状態からページの表示内容を作成します
func newPageData(session *domain.Session, hasHostSecret bool, typedCredential string) pageData {
	config := session.Config

	models := make([]selectOption, 0, len(domain.AvailableModels()))
	for _, m := range domain.AvailableModels() {
		models = append(models, selectOption{Value: m.String(), Selected: m == config.Model})
	}

	tones := make([]selectOption, 0, len(domain.AvailableTones()))
	for _, t := range domain.AvailableTones() {
		tones = append(tones, selectOption{Value: t.String(), Selected: t == config.Tone})
	}

	data := pageData{
		Title:         PageTitle,
		HasHostSecret: hasHostSecret,
		Models:        models,
		Tones:         tones,
		WordCount:     config.WordCount.Int(),
		MinWordCount:  domain.MinWordCount,
		MaxWordCount:  domain.MaxWordCount,
		WordCountStep: domain.WordCountStep,
		Topic:         session.Topic,
		Output:        newOutputPanel(session),
	}
	if !hasHostSecret {
		data.Credential = typedCredential
	}

	return data
}

// newOutputPanel は、セッションの状態に応じた出力パネルを返します。Idleの場合はnilです
func newOutputPanel(session *domain.Session) *outputPanel {
	switch session.State() {
	case domain.StateDisplaying:
		// モデルの出力はエスケープせずに表示する
		return &outputPanel{Kind: outputCard, Fragment: template.HTML(session.Fragment())}
	case domain.StateErrorShown:
		return newErrorPanel(session.Error(), session.Config.Model)
	default:
		return nil
	}
}

func newErrorPanel(err *domain.EssayError, model domain.Model) *outputPanel {
	switch err.Kind {
	case domain.ErrorKindMissingCredential:
		return &outputPanel{Kind: outputError, Message: err.Message}
	case domain.ErrorKindMissingTopic:
		return &outputPanel{Kind: outputWarning, Message: err.Message}
	case domain.ErrorKindQuotaExceeded:
		return &outputPanel{Kind: outputQuota, Message: err.Message, Model: model.String()}
	default:
		return &outputPanel{Kind: outputError, Message: fmt.Sprintf("An error occurred: %s", err.Message)}
	}
}
