package mcp

import (
	"context"
	"testing"

	"docmcp/internal/document"
	"docmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTemplate(ctx context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{mcp.TextResourceContents{URI: uri, Text: vars["doc_id"]}}, nil
}

func TestRegistry_Duplicates(t *testing.T) {
	reg := NewRegistry()
	tool := mcp.NewTool("t")
	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}

	require.NoError(t, reg.AddTool(tool, handler))
	assert.Error(t, reg.AddTool(tool, handler))

	require.NoError(t, reg.AddTemplate("docs://documents/{doc_id}", "doc", echoTemplate))
	assert.Error(t, reg.AddTemplate("docs://documents/{doc_id}", "again", echoTemplate))

	p := mcp.NewPrompt("p")
	promptHandler := func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return mcp.NewGetPromptResult("", nil), nil
	}
	require.NoError(t, reg.AddPrompt(p, promptHandler))
	assert.Error(t, reg.AddPrompt(p, promptHandler))

	assert.Equal(t, []string{"t"}, reg.ToolNames())
	assert.Equal(t, []string{"p"}, reg.PromptNames())
}

func TestRegistry_InvalidTemplate(t *testing.T) {
	reg := NewRegistry()

	err := reg.AddTemplate("docs://documents/{doc_id", "broken", echoTemplate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resource template")
	assert.Empty(t, reg.TemplateURIs())
}

func TestRegistry_MatchTemplate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.AddTemplate(ResourceDocumentTemplate, "document", echoTemplate))

	tests := []struct {
		uri     string
		wantID  string
		matches bool
	}{
		{"docs://documents/plan.md", "plan.md", true},
		{"docs://documents/my%20notes.txt", "my notes.txt", true},
		{"docs://documents/notes%2Fmeeting.txt", "notes/meeting.txt", true},
		{"docs://documents/a%2541.md", "a%41.md", true},
		{"docs://documents/100%25.txt", "100%.txt", true},
		{"docs://elsewhere/plan.md", "", false},
		{"docs://documents", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			binding, vars, ok := reg.MatchTemplate(tt.uri)
			require.Equal(t, tt.matches, ok)
			if !tt.matches {
				return
			}
			assert.Equal(t, "document", binding.Template.Name)
			assert.Equal(t, tt.wantID, vars["doc_id"])
		})
	}
}

func TestRegistry_ReadResourceDispatch(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	ops := document.NewOperations(document.NewStore(document.DefaultSeed()), logger)
	h := &handlers{ops: ops, logger: logger}

	reg := NewRegistry()
	require.NoError(t, h.register(reg))

	assert.Equal(t, []string{ToolReadDoc, ToolEditDoc}, reg.ToolNames())
	assert.Equal(t, []string{ResourceDocumentList}, reg.ResourceURIs())
	assert.Equal(t, []string{ResourceDocumentTemplate}, reg.TemplateURIs())
	assert.Equal(t, []string{"format", "summarize"}, reg.PromptNames())

	contents, err := reg.ReadResource(context.Background(), ResourceDocumentList)
	require.NoError(t, err)
	assert.JSONEq(t,
		`["deposition.md","report.pdf","financials.docx","outlook.pdf","plan.md","spec.txt"]`,
		contents[0].(mcp.TextResourceContents).Text,
	)

	contents, err = reg.ReadResource(context.Background(), "docs://documents/deposition.md")
	require.NoError(t, err)
	assert.Equal(t, "This deposition covers the testimony of Angela Smith, P.E.", contents[0].(mcp.TextResourceContents).Text)

	_, err = reg.ReadResource(context.Background(), "docs://documents/missing.md")
	require.Error(t, err)
	assert.Equal(t, "Document with ID 'missing.md' not found.", err.Error())
	assert.True(t, document.IsNotFound(err))

	_, err = reg.ReadResource(context.Background(), "docs://unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no resource registered")
}

func TestRegistry_LookupTool(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	ops := document.NewOperations(document.NewStore(document.DefaultSeed()), logger)
	reg := NewRegistry()
	require.NoError(t, (&handlers{ops: ops, logger: logger}).register(reg))

	binding, ok := reg.Tool(ToolEditDoc)
	require.True(t, ok)
	assert.Equal(t, []string{"doc_id", "old_string", "new_string"}, binding.Tool.InputSchema.Required)

	req := mcp.CallToolRequest{}
	req.Params.Name = ToolEditDoc
	req.Params.Arguments = map[string]any{"doc_id": "plan.md", "old_string": "plan", "new_string": "roadmap"}
	res, err := binding.Handler(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)

	content, err := ops.ReadDocument(context.Background(), "plan.md")
	require.NoError(t, err)
	assert.Equal(t, "The roadmap outlines the steps for the project's implementation.", content)

	_, ok = reg.Tool("delete_doc")
	assert.False(t, ok)

	_, ok = reg.Prompt("format")
	assert.True(t, ok)
}

func TestToolError_PassesThroughCancellation(t *testing.T) {
	res, err := toolError(context.Canceled)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry_Descriptions(t *testing.T) {
	logger, _ := logging.NewTestLogger()
	ops := document.NewOperations(document.NewStore(document.DefaultSeed()), logger)
	reg := NewRegistry()
	require.NoError(t, (&handlers{ops: ops, logger: logger}).register(reg))

	argDescription := func(t *testing.T, tool mcp.Tool, arg string) string {
		t.Helper()
		schema, ok := tool.InputSchema.Properties[arg].(map[string]any)
		require.True(t, ok, "argument %s", arg)
		desc, _ := schema["description"].(string)
		return desc
	}

	read, ok := reg.Tool(ToolReadDoc)
	require.True(t, ok)
	assert.Equal(t, "Read the contents of a document and return it as a string", read.Tool.Description)
	assert.Equal(t, "The ID of the document to read", argDescription(t, read.Tool, "doc_id"))

	edit, ok := reg.Tool(ToolEditDoc)
	require.True(t, ok)
	assert.Equal(t, "Edit a document by replacing a string with another string", edit.Tool.Description)
	assert.Equal(t, "The ID of the document to edit", argDescription(t, edit.Tool, "doc_id"))
	assert.Equal(t, "String to replace. Must exactly match, including whitespace.", argDescription(t, edit.Tool, "old_string"))
	assert.Equal(t, "String to replace with.", argDescription(t, edit.Tool, "new_string"))

	format, ok := reg.Prompt("format")
	require.True(t, ok)
	assert.Equal(t, "Rewrite a document in markdown format", format.Prompt.Description)
	require.Len(t, format.Prompt.Arguments, 1)
	assert.Equal(t, "ID of document to format", format.Prompt.Arguments[0].Description)
}
