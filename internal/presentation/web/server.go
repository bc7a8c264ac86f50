// Package web は、ブラウザ向けの1ページのエッセイ生成画面を提供します
package web

import (
	"embed"
	"fmt"
	"html/template"

	"eassay/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter は、ページとヘルスチェック、必要に応じて /metrics を登録したルーターを作成します。
// mがnilの場合、メトリクスは公開しません。
func NewRouter(handler *EssayHandler, m *metrics.Metrics) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	router.Use(RequestID(), AccessLog(), Recovery())
	if m != nil {
		router.Use(Metrics(m))
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	}

	router.GET("/", handler.Index)
	router.POST("/generate", handler.Generate)
	router.GET("/health", handler.Health)

	return router, nil
}
