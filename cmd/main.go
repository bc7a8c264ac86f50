package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eassay/configs"
	"eassay/internal/application"
	"eassay/internal/domain"
	discordInfra "eassay/internal/infrastructure/discord"
	"eassay/internal/infrastructure/gemini"
	"eassay/internal/infrastructure/metrics"
	"eassay/internal/infrastructure/secrets"
	discordPres "eassay/internal/presentation/discord"
	"eassay/internal/presentation/web"

	"github.com/bwmarrin/discordgo"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Eassayを起動中...")

	// 設定を読み込み
	config, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	defaults, err := config.EssayDefaults()
	if err != nil {
		log.Fatalf("フォームの初期値が不正です: %v", err)
	}

	// ホストのシークレットは起動時に一度だけ読み込む
	secretStore, err := secrets.Load(config.Secrets.File)
	if err != nil {
		log.Fatalf("シークレットの読み込みに失敗: %v", err)
	}
	credentials := application.NewCredentialResolver(secretStore.GeminiAPIKey())
	if credentials.HasHostSecret() {
		log.Println("ホストのシークレットからAPIキーを読み込みました")
	}

	// メトリクスを作成
	var m *metrics.Metrics
	var recorder application.GenerationRecorder
	if config.Server.MetricsEnabled {
		m = metrics.New()
		recorder = m
	}

	// アプリケーションサービスを作成
	essayService, err := application.NewEssayApplicationService(gemini.NewFactory(&config.Gemini), recorder)
	if err != nil {
		log.Fatalf("エッセイ生成サービスの作成に失敗: %v", err)
	}

	// Webサーバーを作成
	if config.Server.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := web.NewRouter(web.NewEssayHandler(essayService, credentials, defaults), m)
	if err != nil {
		log.Fatalf("ルーターの作成に失敗: %v", err)
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: config.Server.ReadHeaderTimeout,
	}

	go func() {
		log.Printf("Webサーバーを起動しました: http://localhost:%s", config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Webサーバーの起動に失敗: %v", err)
		}
	}()

	// Discord Botはトークンが設定されている場合のみ起動
	var discordSession *discordgo.Session
	if config.Discord.BotToken != "" {
		discordSession, err = startDiscordBot(config, essayService, credentials, defaults)
		if err != nil {
			log.Fatalf("Discord Botの起動に失敗: %v", err)
		}
	}

	// シグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// 終了シグナルを待機
	<-stop
	log.Println("終了シグナルを受信しました。停止中...")

	if discordSession != nil {
		if err := discordSession.Close(); err != nil {
			log.Printf("Discordセッションのクローズに失敗: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Webサーバーの停止に失敗: %v", err)
	}

	log.Println("正常に停止しました。")
}

// startDiscordBot は、スラッシュコマンドを登録してDiscordに接続します
func startDiscordBot(
	config *configs.Config,
	essayService *application.EssayApplicationService,
	credentials *application.CredentialResolver,
	defaults domain.Configuration,
) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + config.Discord.BotToken)
	if err != nil {
		return nil, fmt.Errorf("Discordセッションの作成に失敗: %w", err)
	}

	apiKeyService := application.NewAPIKeyApplicationService(discordInfra.NewDiscordGuildAPIKeyRepository())

	slashCommandHandler := discordPres.NewSlashCommandHandler(session, essayService, apiKeyService, credentials, defaults)
	if err := slashCommandHandler.SetupSlashCommands(); err != nil {
		return nil, fmt.Errorf("スラッシュコマンドの設定に失敗: %w", err)
	}

	handler := discordPres.NewDiscordHandler(session, slashCommandHandler)
	handler.SetupHandlers()

	if err := session.Open(); err != nil {
		return nil, fmt.Errorf("Discordへの接続に失敗: %w", err)
	}

	log.Println("利用可能なスラッシュコマンド:")
	log.Println("  /essay   - エッセイを生成")
	log.Println("  /set-api - このサーバー用のGemini APIキーを設定")
	log.Println("  /del-api - このサーバー用のGemini APIキーを削除")
	log.Println("  /status  - このサーバーの設定状況を表示")

	return session, nil
}
