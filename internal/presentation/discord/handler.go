package discord

import (
	"log"

	"github.com/bwmarrin/discordgo"
)

// DiscordHandler は、Discordのイベントハンドラです
type DiscordHandler struct {
	session             *discordgo.Session
	slashCommandHandler *SlashCommandHandler
}

// NewDiscordHandler は新しいDiscordHandlerインスタンスを作成します
func NewDiscordHandler(session *discordgo.Session, slashCommandHandler *SlashCommandHandler) *DiscordHandler {
	return &DiscordHandler{
		session:             session,
		slashCommandHandler: slashCommandHandler,
	}
}

// SetupHandlers は、Discordのイベントハンドラを設定します
func (h *DiscordHandler) SetupHandlers() {
	h.session.AddHandler(h.handleReady)

	if h.slashCommandHandler != nil {
		h.slashCommandHandler.SetupSlashCommandHandlers()
	}
}

// handleReady は、接続完了イベントを処理します
func (h *DiscordHandler) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("Discordに接続しました: %s (ID: %s), 参加サーバー数=%d", r.User.Username, r.User.ID, len(r.Guilds))
}
