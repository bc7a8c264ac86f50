package discord

import (
	"fmt"
	"log"
	"strings"

	"eassay/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// DiscordMessageLimit は、Discordのメッセージ文字数制限です
const DiscordMessageLimit = 2000

// EssayFileName は、エッセイカードを添付するファイル名です
const EssayFileName = "essay.html"

// essayDocumentTemplate は、添付ファイル用にカード断片を包むHTML文書です
const essayDocumentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: 'Inter', sans-serif; background: #0e1117; color: #fafafa; padding: 40px; }
.essay-card { background: rgba(255, 255, 255, 0.05); border: 1px solid rgba(255, 255, 255, 0.1); border-radius: 16px; padding: 40px; }
.essay-card h3 { color: #E0AAFF; margin-bottom: 20px; }
</style>
</head>
<body>
%s
</body>
</html>
`

// ResponseHandler は、Discordのレスポンス送信・フォーマット処理を担当するハンドラーです
type ResponseHandler struct{}

// NewResponseHandler は新しいResponseHandlerインスタンスを作成します
func NewResponseHandler() *ResponseHandler {
	return &ResponseHandler{}
}

// SendFollowup は、保留したインタラクションにフォローアップメッセージを送信します
func (h *ResponseHandler) SendFollowup(s *discordgo.Session, i *discordgo.InteractionCreate, params *discordgo.WebhookParams) {
	if _, err := s.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		log.Printf("フォローアップメッセージの送信に失敗: %v", err)
	}
}

// EssayResultParams は、セッションの結果からフォローアップメッセージを作成します。
// 成功時はエッセイカードをHTMLファイルとして添付します。
func (h *ResponseHandler) EssayResultParams(session *domain.Session) *discordgo.WebhookParams {
	switch session.State() {
	case domain.StateDisplaying:
		return &discordgo.WebhookParams{
			Content: h.formatEssaySummary(session),
			Files: []*discordgo.File{
				{
					Name:        EssayFileName,
					ContentType: "text/html; charset=utf-8",
					Reader:      strings.NewReader(essayDocument(session.Topic, session.Fragment())),
				},
			},
		}
	case domain.StateErrorShown:
		return &discordgo.WebhookParams{Content: h.formatError(session.Error(), session.Config.Model)}
	default:
		log.Printf("想定外のセッション状態: %s", session.State())
		return &discordgo.WebhookParams{Content: "❌ An error occurred: no result"}
	}
}

// formatEssaySummary は、添付ファイルに付けるメッセージを作成します
func (h *ResponseHandler) formatEssaySummary(session *domain.Session) string {
	summary := fmt.Sprintf("✅ **%s**\n📝 %s • 📏 ~%d words • 🤖 %s",
		session.Topic, session.Config.Tone, session.Config.WordCount.Int(), session.Config.Model)
	return truncateMessage(summary)
}

// formatError は、エラーの種類に応じたメッセージを作成します
func (h *ResponseHandler) formatError(err *domain.EssayError, model domain.Model) string {
	switch err.Kind {
	case domain.ErrorKindMissingCredential:
		return "❌ " + err.Message + "\nUse `/set-api` to register a key for this server."
	case domain.ErrorKindMissingTopic:
		return "⚠️ " + err.Message
	case domain.ErrorKindQuotaExceeded:
		return fmt.Sprintf("⏳ **%s**\nYou've hit the usage limit. Try switching to `%s` or wait a moment.", err.Message, model)
	default:
		return truncateMessage("❌ An error occurred: " + err.Message)
	}
}

// essayDocument は、カード断片を単独で開けるHTML文書にします
func essayDocument(title, fragment string) string {
	return fmt.Sprintf(essayDocumentTemplate, title, fragment)
}

// truncateMessage は、メッセージをDiscordの文字数制限に収めます
func truncateMessage(content string) string {
	runes := []rune(content)
	if len(runes) <= DiscordMessageLimit {
		return content
	}
	return string(runes[:DiscordMessageLimit-3]) + "..."
}
