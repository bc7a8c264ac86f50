package web

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"eassay/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader は、リクエストIDを受け渡すヘッダー名です
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID は、リクエストごとにIDを割り当て、レスポンスヘッダーに設定します。
// クライアントがIDを指定した場合はそれを引き継ぎます。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog は、リクエストの処理結果をログに出力します
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Printf("リクエスト処理完了: id=%s, %s %s, ステータス=%d, 処理時間=%v",
			c.GetString(requestIDKey), c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Recovery は、ハンドラ内のpanicを回復し、500を返します
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("リクエスト処理中にpanicが発生: id=%s, %v", c.GetString(requestIDKey), recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// Metrics は、HTTPリクエストの件数と処理時間を記録します
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
