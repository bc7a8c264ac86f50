package domain

import (
	"fmt"
	"strings"
)

// Prompt は、Gemini APIに送信するために整形されたテキストを表現する値オブジェクトです
type Prompt struct {
	content string
}

// NewPrompt は新しいPromptインスタンスを作成します
func NewPrompt(content string) Prompt {
	return Prompt{content: content}
}

// Content は、プロンプトの本文を返します
func (p Prompt) Content() string {
	return p.content
}

// SectionHeadingTag は、エッセイの各セクション見出しに使用するタグです
const SectionHeadingTag = "h4"

// BuildPrompt は、文体・トピック・単語数からエッセイ生成用のプロンプトを組み立てます。
// 同じ入力からは常に同じプロンプトが生成されます。
func BuildPrompt(tone Tone, topic string, wordCount WordCount) Prompt {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Write a %s essay about '%s'.\n", tone, topic))
	builder.WriteString(fmt.Sprintf("The essay should be approximately %d words long.\n", wordCount.Int()))
	builder.WriteString("Structure the essay with clear headings for Introduction, Body, and Conclusion.\n")
	builder.WriteString(fmt.Sprintf("Format the output in HTML. Use <%s> tags for section headings.\n", SectionHeadingTag))

	// モデルが指示を無視した場合はSanitizeResponseで除去する
	builder.WriteString("Important:\n")
	builder.WriteString("- Do NOT include a main title (H1/H2) at the top.\n")
	builder.WriteString("- Do NOT wrap the output in <html>, <body>, or <div> tags.\n")
	builder.WriteString("- Return ONLY the content (paragraphs and headings).\n")
	builder.WriteString("- Do NOT use Markdown code fences (```html).\n")

	return NewPrompt(builder.String())
}
