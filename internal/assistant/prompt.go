package assistant

import "fmt"

const promptTemplate = `
You are a news assistant.

Latest headlines:
%s

User question:
%s

Give a concise answer based on the news.
`

// ComposePrompt embeds the headline block and the question verbatim.
func ComposePrompt(headlines, question string) string {
	return fmt.Sprintf(promptTemplate, headlines, question)
}
