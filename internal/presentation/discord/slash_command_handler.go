package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"eassay/internal/application"
	"eassay/internal/domain"

	"github.com/bwmarrin/discordgo"
)

// スラッシュコマンドとオプションの名前
const (
	commandEssay  = "essay"
	commandSetAPI = "set-api"
	commandDelAPI = "del-api"
	commandStatus = "status"

	optionTopic  = "topic"
	optionTone   = "tone"
	optionWords  = "words"
	optionModel  = "model"
	optionAPIKey = "api-key"
)

// SlashCommandHandler は、Discordのスラッシュコマンドを処理するハンドラーです
type SlashCommandHandler struct {
	session         *discordgo.Session
	essayService    *application.EssayApplicationService
	apiKeyService   *application.APIKeyApplicationService
	credentials     *application.CredentialResolver
	defaults        domain.Configuration
	responseHandler *ResponseHandler
}

// NewSlashCommandHandler は新しいSlashCommandHandlerインスタンスを作成します
func NewSlashCommandHandler(
	session *discordgo.Session,
	essayService *application.EssayApplicationService,
	apiKeyService *application.APIKeyApplicationService,
	credentials *application.CredentialResolver,
	defaults domain.Configuration,
) *SlashCommandHandler {
	return &SlashCommandHandler{
		session:         session,
		essayService:    essayService,
		apiKeyService:   apiKeyService,
		credentials:     credentials,
		defaults:        defaults,
		responseHandler: NewResponseHandler(),
	}
}

// SetupSlashCommands は、スラッシュコマンドを設定します
func (h *SlashCommandHandler) SetupSlashCommands() error {
	// BotのユーザーIDを取得
	user, err := h.session.User("@me")
	if err != nil {
		return fmt.Errorf("Botユーザー情報の取得に失敗: %w", err)
	}

	// グローバルコマンドとして登録
	for _, command := range slashCommands() {
		if _, err := h.session.ApplicationCommandCreate(user.ID, "", command); err != nil {
			log.Printf("スラッシュコマンド %s の登録に失敗: %v", command.Name, err)
			return err
		}
		log.Printf("スラッシュコマンド %s を登録しました", command.Name)
	}

	return nil
}

// slashCommands は、登録するスラッシュコマンドの定義を返します。
// 選択肢はWeb画面のコントロールと同じ値に限定します。
func slashCommands() []*discordgo.ApplicationCommand {
	modelChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.AvailableModels()))
	for _, m := range domain.AvailableModels() {
		modelChoices = append(modelChoices, &discordgo.ApplicationCommandOptionChoice{Name: m.String(), Value: m.String()})
	}

	toneChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.AvailableTones()))
	for _, t := range domain.AvailableTones() {
		toneChoices = append(toneChoices, &discordgo.ApplicationCommandOptionChoice{Name: t.String(), Value: t.String()})
	}

	// 単語数の選択肢は19個で、Discordの上限25個に収まる
	wordChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.WordCountOptions()))
	for _, w := range domain.WordCountOptions() {
		wordChoices = append(wordChoices, &discordgo.ApplicationCommandOptionChoice{Name: fmt.Sprintf("%d", w.Int()), Value: w.Int()})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        commandEssay,
			Description: "Generate an essay with Gemini",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionTopic,
					Description: "What would you like to write about?",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionTone,
					Description: "Tone",
					Choices:     toneChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optionWords,
					Description: "Word Count",
					Choices:     wordChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionModel,
					Description: "Try a different model if you hit rate limits.",
					Choices:     modelChoices,
				},
			},
		},
		{
			Name:        commandSetAPI,
			Description: "このサーバー用のGemini APIキーを設定します",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionAPIKey,
					Description: "Gemini APIキー",
					Required:    true,
				},
			},
		},
		{
			Name:        commandDelAPI,
			Description: "このサーバー用のGemini APIキーを削除します",
		},
		{
			Name:        commandStatus,
			Description: "このサーバーのGemini APIキー設定状況を表示します",
		},
	}
}

// SetupSlashCommandHandlers は、スラッシュコマンドのハンドラーを設定します
func (h *SlashCommandHandler) SetupSlashCommandHandlers() {
	h.session.AddHandler(h.handleInteractionCreate)
}

// handleInteractionCreate は、インタラクション作成イベントを処理します
func (h *SlashCommandHandler) handleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case commandEssay:
		h.handleEssayCommand(s, i)
	case commandSetAPI:
		h.handleSetAPICommand(s, i)
	case commandDelAPI:
		h.handleDelAPICommand(s, i)
	case commandStatus:
		h.handleStatusCommand(s, i)
	default:
		log.Printf("未知のスラッシュコマンド: %s", i.ApplicationCommandData().Name)
	}
}

// handleEssayCommand は、/essayコマンドを処理します
func (h *SlashCommandHandler) handleEssayCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	config, topic := essayRequestFrom(i.ApplicationCommandData().Options, h.defaults)
	config.Credential = h.credentials.Resolve(h.apiKeyService.GuildCredential(ctx, i.GuildID))

	// 生成には時間がかかるため、先に応答を保留する
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		log.Printf("インタラクションの保留に失敗: %v", err)
		return
	}

	session := domain.NewSession(config, topic)
	if err := h.essayService.Generate(ctx, session); err != nil {
		log.Printf("エッセイ生成の状態遷移に失敗: %v", err)
		h.responseHandler.SendFollowup(s, i, &discordgo.WebhookParams{Content: "❌ An error occurred: internal error"})
		return
	}

	h.responseHandler.SendFollowup(s, i, h.responseHandler.EssayResultParams(session))
}

// essayRequestFrom は、/essayのオプションから送信時の設定とトピックを作成します。
// 指定のないオプションや不正な値はデフォルト値を使用します。
func essayRequestFrom(options []*discordgo.ApplicationCommandInteractionDataOption, defaults domain.Configuration) (domain.Configuration, string) {
	config := defaults
	var topic string

	for _, option := range options {
		switch option.Name {
		case optionTopic:
			topic = option.StringValue()
		case optionTone:
			if tone, err := domain.ParseTone(option.StringValue()); err == nil {
				config.Tone = tone
			}
		case optionWords:
			if wordCount, err := domain.NewWordCount(int(option.IntValue())); err == nil {
				config.WordCount = wordCount
			}
		case optionModel:
			if model, err := domain.ParseModel(option.StringValue()); err == nil {
				config.Model = model
			}
		}
	}

	return config, topic
}

// handleSetAPICommand は、/set-apiコマンドを処理します
func (h *SlashCommandHandler) handleSetAPICommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	// 権限チェック（管理者権限が必要）
	if !hasAdminPermission(i.Member) {
		h.respondToInteraction(s, i, "❌ このコマンドを実行するには管理者権限が必要です。", true)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		h.respondToInteraction(s, i, "❌ APIキーが指定されていません。", true)
		return
	}

	apiKey := options[0].StringValue()
	setBy := i.Member.User.Username

	ctx := context.Background()
	if err := h.apiKeyService.SetGuildAPIKey(ctx, i.GuildID, apiKey, setBy); err != nil {
		log.Printf("APIキーの設定に失敗: %v", err)
		h.respondToInteraction(s, i, fmt.Sprintf("❌ APIキーの設定に失敗しました: %v", err), true)
		return
	}

	// APIキーを含むため、結果は本人にのみ表示する
	h.respondToInteraction(s, i, fmt.Sprintf("✅ このサーバー用のGemini APIキーを設定しました。\n設定者: %s", setBy), true)
}

// handleDelAPICommand は、/del-apiコマンドを処理します
func (h *SlashCommandHandler) handleDelAPICommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !hasAdminPermission(i.Member) {
		h.respondToInteraction(s, i, "❌ このコマンドを実行するには管理者権限が必要です。", true)
		return
	}

	ctx := context.Background()
	if err := h.apiKeyService.DeleteGuildAPIKey(ctx, i.GuildID); err != nil {
		log.Printf("APIキーの削除に失敗: %v", err)
		h.respondToInteraction(s, i, fmt.Sprintf("❌ APIキーの削除に失敗しました: %v", err), true)
		return
	}

	h.respondToInteraction(s, i, "✅ このサーバー用のGemini APIキーを削除しました。", false)
}

// handleStatusCommand は、/statusコマンドを処理します
func (h *SlashCommandHandler) handleStatusCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var apiKeyInfo *domain.GuildAPIKey
	info, err := h.apiKeyService.GetGuildAPIKey(ctx, i.GuildID)
	switch {
	case err == nil:
		apiKeyInfo = &info
	case !errors.Is(err, domain.ErrGuildAPIKeyNotFound):
		log.Printf("APIキー情報の取得に失敗: %v", err)
		h.respondToInteraction(s, i, "❌ 設定状況の確認に失敗しました。", true)
		return
	}

	h.respondToInteraction(s, i, statusMessage(h.credentials.HasHostSecret(), apiKeyInfo, h.defaults), false)
}

// statusMessage は、/statusの表示内容を作成します
func statusMessage(hasHostSecret bool, apiKeyInfo *domain.GuildAPIKey, defaults domain.Configuration) string {
	var keyStatus string
	switch {
	case hasHostSecret:
		keyStatus = "✅ **APIキー**: ホストのシークレットを使用"
	case apiKeyInfo != nil:
		keyStatus = fmt.Sprintf("✅ **APIキー**: 設定済み (%s)\n👤 **設定者**: %s\n📅 **設定日**: %s",
			apiKeyInfo.MaskedAPIKey(), apiKeyInfo.SetBy, apiKeyInfo.SetAt.Format("2006年1月2日 15:04"))
	default:
		keyStatus = "❌ **APIキー**: 未設定（/set-api で設定してください）"
	}

	return fmt.Sprintf(`📊 **サーバー設定状況**

%s
🤖 **デフォルトモデル**: %s
📝 **デフォルト文体**: %s
📏 **デフォルト単語数**: %d`,
		keyStatus, defaults.Model, defaults.Tone, defaults.WordCount.Int())
}

// hasAdminPermission は、メンバーが管理者権限を持っているかをチェックします
func hasAdminPermission(member *discordgo.Member) bool {
	if member == nil {
		return false
	}

	// Permissionsはint64のビットフラグ
	return member.Permissions&discordgo.PermissionAdministrator != 0
}

// respondToInteraction は、インタラクションに応答します
func (h *SlashCommandHandler) respondToInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	}

	if ephemeral {
		response.Data.Flags = discordgo.MessageFlagsEphemeral
	}

	if err := s.InteractionRespond(i.Interaction, response); err != nil {
		log.Printf("インタラクションへの応答に失敗: %v", err)
	}
}
