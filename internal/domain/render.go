package domain

import "fmt"

// essayCardTemplate は、生成結果を表示するカードのHTML断片です。
// topic・tone・本文はエスケープせずに埋め込まれます。
const essayCardTemplate = `<div class="essay-card">
    <h3>%s</h3>
    <div style="margin-bottom: 20px; font-size: 0.9em; opacity: 0.8;">
        <span>📝 %s</span> • <span>📏 ~%d words</span>
    </div>
    <div>
        %s
    </div>
</div>`

// RenderEssayCard は、トピック・文体・単語数・整形済み本文からカード断片を生成します
func RenderEssayCard(topic string, tone Tone, wordCount WordCount, essay string) string {
	return fmt.Sprintf(essayCardTemplate, topic, tone, wordCount.Int(), essay)
}
