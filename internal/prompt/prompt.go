// Package prompt renders the canned instructions docmcp offers to a client's
// language model. Builders are pure: they never look at the document store, so
// an unknown ID still yields a prompt and only the follow-up tool call fails.
package prompt

import "fmt"

// Names under which the prompts are exposed.
const (
	NameFormat    = "format"
	NameSummarize = "summarize"
)

// Role of a prompt message. Every built prompt is a single user turn.
type Role string

const RoleUser Role = "user"

// Message is one rendered prompt message.
type Message struct {
	Role Role
	Text string
}

const formatTemplate = `Your goal is to reformat a document in markdown format.
The ID of the document is:
<document_id>%s</document_id>

Add in headers, bullet points, and other markdown formatting as appropriate.
Use the edit_doc tool to edit the document.
`

const summarizeTemplate = `Your goal is to summarize a document.
The ID of the document is:
<document_id>%s</document_id>

Use the read_doc_contents tool to read the document.
Write a concise summary of its key points in a few sentences.
Do not edit the document.
`

// BuildFormatPrompt asks the model to rewrite document id as markdown and save
// the result with edit_doc.
func BuildFormatPrompt(id string) string {
	return fmt.Sprintf(formatTemplate, id)
}

// BuildSummarizePrompt asks the model to read document id and summarize it.
func BuildSummarizePrompt(id string) string {
	return fmt.Sprintf(summarizeTemplate, id)
}

// FormatMessages returns the format prompt as a single user message.
func FormatMessages(id string) []Message {
	return []Message{{Role: RoleUser, Text: BuildFormatPrompt(id)}}
}

// SummarizeMessages returns the summarize prompt as a single user message.
func SummarizeMessages(id string) []Message {
	return []Message{{Role: RoleUser, Text: BuildSummarizePrompt(id)}}
}
