package discord

import (
	"testing"

	"eassay/internal/domain"

	"github.com/bwmarrin/discordgo"
)

func TestNewDiscordHandler(t *testing.T) {
	session := &discordgo.Session{}
	slashCommandHandler := &SlashCommandHandler{}

	handler := NewDiscordHandler(session, slashCommandHandler)

	if handler.session != session {
		t.Error("セッションが正しく設定されていません")
	}
	if handler.slashCommandHandler != slashCommandHandler {
		t.Error("スラッシュコマンドハンドラーが正しく設定されていません")
	}
}

func TestSlashCommands_Definitions(t *testing.T) {
	commands := slashCommands()

	names := make(map[string]*discordgo.ApplicationCommand)
	for _, c := range commands {
		names[c.Name] = c
	}
	for _, name := range []string{commandEssay, commandSetAPI, commandDelAPI, commandStatus} {
		if _, ok := names[name]; !ok {
			t.Errorf("コマンド %s が定義されていません", name)
		}
	}

	essay := names[commandEssay]
	choices := make(map[string]int)
	for _, option := range essay.Options {
		if len(option.Choices) > 25 {
			t.Errorf("オプション %s の選択肢が上限を超えています: %d", option.Name, len(option.Choices))
		}
		choices[option.Name] = len(option.Choices)
	}

	if !essay.Options[0].Required || essay.Options[0].Name != optionTopic {
		t.Error("トピックは必須の最初のオプションである必要があります")
	}
	if choices[optionModel] != len(domain.AvailableModels()) {
		t.Errorf("モデルの選択肢数が正しくありません: %d", choices[optionModel])
	}
	if choices[optionTone] != len(domain.AvailableTones()) {
		t.Errorf("文体の選択肢数が正しくありません: %d", choices[optionTone])
	}
	if choices[optionWords] != 19 {
		t.Errorf("単語数の選択肢数が正しくありません: %d", choices[optionWords])
	}
}

func TestEssayRequestFrom(t *testing.T) {
	defaults := domain.DefaultConfiguration()

	tests := []struct {
		name          string
		options       []*discordgo.ApplicationCommandInteractionDataOption
		wantTopic     string
		wantModel     domain.Model
		wantTone      domain.Tone
		wantWordCount int
	}{
		{
			name: "トピックのみ",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: optionTopic, Type: discordgo.ApplicationCommandOptionString, Value: "Renewable energy"},
			},
			wantTopic:     "Renewable energy",
			wantModel:     domain.DefaultModel,
			wantTone:      domain.DefaultTone,
			wantWordCount: domain.DefaultWordCount,
		},
		{
			name: "すべてのオプションを指定",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: optionTopic, Type: discordgo.ApplicationCommandOptionString, Value: "Tides"},
				{Name: optionTone, Type: discordgo.ApplicationCommandOptionString, Value: "Narrative"},
				{Name: optionWords, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(750)},
				{Name: optionModel, Type: discordgo.ApplicationCommandOptionString, Value: "gemini-pro-latest"},
			},
			wantTopic:     "Tides",
			wantModel:     domain.ModelGeminiProLatest,
			wantTone:      domain.ToneNarrative,
			wantWordCount: 750,
		},
		{
			name: "不正な値はデフォルト",
			options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: optionTopic, Type: discordgo.ApplicationCommandOptionString, Value: "Tides"},
				{Name: optionTone, Type: discordgo.ApplicationCommandOptionString, Value: "Sarcastic"},
				{Name: optionWords, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(333)},
				{Name: optionModel, Type: discordgo.ApplicationCommandOptionString, Value: "gpt-4"},
			},
			wantTopic:     "Tides",
			wantModel:     domain.DefaultModel,
			wantTone:      domain.DefaultTone,
			wantWordCount: domain.DefaultWordCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, topic := essayRequestFrom(tt.options, defaults)

			if topic != tt.wantTopic {
				t.Errorf("トピックが正しくありません: got %q, want %q", topic, tt.wantTopic)
			}
			if config.Model != tt.wantModel {
				t.Errorf("モデルが正しくありません: got %s, want %s", config.Model, tt.wantModel)
			}
			if config.Tone != tt.wantTone {
				t.Errorf("文体が正しくありません: got %s, want %s", config.Tone, tt.wantTone)
			}
			if config.WordCount.Int() != tt.wantWordCount {
				t.Errorf("単語数が正しくありません: got %d, want %d", config.WordCount.Int(), tt.wantWordCount)
			}
			if config.Credential != "" {
				t.Error("APIキーはオプションから設定されない必要があります")
			}
		})
	}
}

func TestHasAdminPermission(t *testing.T) {
	tests := []struct {
		name   string
		member *discordgo.Member
		want   bool
	}{
		{"メンバーなし", nil, false},
		{"権限なし", &discordgo.Member{Permissions: discordgo.PermissionSendMessages}, false},
		{"管理者", &discordgo.Member{Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasAdminPermission(tt.member); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
