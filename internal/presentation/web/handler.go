package web

import (
	"log"
	"net/http"
	"strconv"

	"eassay/internal/application"
	"eassay/internal/domain"

	"github.com/gin-gonic/gin"
)

// essayForm は、サイドバーとメインパネルから送信されるフォームの値です
type essayForm struct {
	APIKey    string `form:"api_key"`
	Model     string `form:"model"`
	Tone      string `form:"tone"`
	WordCount string `form:"word_count"`
	Topic     string `form:"topic"`
}

// EssayHandler は、エッセイ生成ページのハンドラです
type EssayHandler struct {
	essayService *application.EssayApplicationService
	credentials  *application.CredentialResolver
	defaults     domain.Configuration
}

// NewEssayHandler は新しいEssayHandlerインスタンスを作成します
func NewEssayHandler(
	essayService *application.EssayApplicationService,
	credentials *application.CredentialResolver,
	defaults domain.Configuration,
) *EssayHandler {
	return &EssayHandler{
		essayService: essayService,
		credentials:  credentials,
		defaults:     defaults,
	}
}

// Index は、初期状態のページを表示します
func (h *EssayHandler) Index(c *gin.Context) {
	session := domain.NewSession(h.defaults, "")
	c.HTML(http.StatusOK, "index.html", newPageData(session, h.credentials.HasHostSecret(), ""))
}

// Generate は、フォームの値でエッセイを生成し、結果を含むページを表示します
func (h *EssayHandler) Generate(c *gin.Context) {
	var form essayForm
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("フォームの解析に失敗、デフォルト値を使用: %v", err)
	}

	session := domain.NewSession(h.configurationFrom(form), form.Topic)

	if err := h.essayService.Generate(c.Request.Context(), session); err != nil {
		log.Printf("エッセイ生成の状態遷移に失敗: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}

	c.HTML(http.StatusOK, "index.html", newPageData(session, h.credentials.HasHostSecret(), form.APIKey))
}

// configurationFrom は、フォームの値から送信時の設定を作成します。
// 画面のコントロールでは選べない値はデフォルト値に置き換えます。
func (h *EssayHandler) configurationFrom(form essayForm) domain.Configuration {
	config := h.defaults
	config.Credential = h.credentials.Resolve(form.APIKey)

	if model, err := domain.ParseModel(form.Model); err == nil {
		config.Model = model
	}
	if tone, err := domain.ParseTone(form.Tone); err == nil {
		config.Tone = tone
	}
	if n, err := strconv.Atoi(form.WordCount); err == nil {
		if wordCount, err := domain.NewWordCount(n); err == nil {
			config.WordCount = wordCount
		}
	}

	return config
}

// Health は、ヘルスチェックに応答します
func (h *EssayHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
