package domain

import "strings"

// wrapperMarkers は、モデルの応答から取り除くマーカーです。
// "```html" は "```" より先に除去する必要があります。
var wrapperMarkers = []string{
	"```html",
	"```",
	"<html>",
	"</html>",
	"<body>",
	"</body>",
}

// SanitizeResponse は、モデルの応答からコードフェンスと<html>/<body>タグを取り除きます。
// 大文字小文字は区別し、残りのマークアップのエスケープや修復は行いません。
func SanitizeResponse(raw string) string {
	cleaned := raw
	for {
		next := removeMarkers(cleaned)
		if next == cleaned {
			return cleaned
		}
		// 除去によって新しいマーカーが繋がった場合に備えて繰り返す
		cleaned = next
	}
}

func removeMarkers(s string) string {
	for _, marker := range wrapperMarkers {
		s = strings.ReplaceAll(s, marker, "")
	}
	return s
}
