package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"docmcp/internal/document"
	"docmcp/internal/logging"
	"docmcp/internal/prompt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Names and URIs of everything the server exposes.
const (
	ToolReadDoc = "read_doc_contents"
	ToolEditDoc = "edit_doc"

	ResourceDocumentList     = "docs://documents"
	ResourceDocumentTemplate = "docs://documents/{doc_id}"

	MIMETypeJSON = "application/json"
	MIMETypeText = "text/plain"

	argDocID     = "doc_id"
	argOldString = "old_string"
	argNewString = "new_string"
)

type handlers struct {
	ops    *document.Operations
	logger *logging.AppLogger
}

// register fills reg with the document tools, resources and prompts.
func (h *handlers) register(reg *Registry) error {
	readDoc := mcp.NewTool(ToolReadDoc,
		mcp.WithDescription("Read the contents of a document and return it as a string"),
		mcp.WithString(argDocID,
			mcp.Required(),
			mcp.Description("The ID of the document to read"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)

	editDoc := mcp.NewTool(ToolEditDoc,
		mcp.WithDescription("Edit a document by replacing a string with another string"),
		mcp.WithString(argDocID,
			mcp.Required(),
			mcp.Description("The ID of the document to edit"),
		),
		mcp.WithString(argOldString,
			mcp.Required(),
			mcp.Description("String to replace. Must exactly match, including whitespace."),
		),
		mcp.WithString(argNewString,
			mcp.Required(),
			mcp.Description("String to replace with."),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(false),
	)

	documentList := mcp.NewResource(ResourceDocumentList, "documents",
		mcp.WithResourceDescription("Returns a list of all document IDs."),
		mcp.WithMIMEType(MIMETypeJSON),
	)

	format := mcp.NewPrompt(prompt.NameFormat,
		mcp.WithPromptDescription("Rewrite a document in markdown format"),
		mcp.WithArgument(argDocID,
			mcp.ArgumentDescription("ID of document to format"),
			mcp.RequiredArgument(),
		),
	)

	summarize := mcp.NewPrompt(prompt.NameSummarize,
		mcp.WithPromptDescription("Summarize a document"),
		mcp.WithArgument(argDocID,
			mcp.ArgumentDescription("ID of document to summarize"),
			mcp.RequiredArgument(),
		),
	)

	return errors.Join(
		reg.AddTool(readDoc, h.handleReadDoc),
		reg.AddTool(editDoc, h.handleEditDoc),
		reg.AddResource(documentList, h.handleListDocuments),
		reg.AddTemplate(ResourceDocumentTemplate, "document", h.handleGetDocument,
			mcp.WithTemplateDescription("Returns the contents of a document by its ID."),
			mcp.WithTemplateMIMEType(MIMETypeText),
		),
		reg.AddPrompt(format, h.promptHandler(prompt.FormatMessages, "Reformat document %s as markdown")),
		reg.AddPrompt(summarize, h.promptHandler(prompt.SummarizeMessages, "Summarize document %s")),
	)
}

func (h *handlers) handleReadDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(argDocID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	content, err := h.ops.ReadDocument(ctx, id)
	if err != nil {
		return toolError(err)
	}

	return mcp.NewToolResultText(content), nil
}

func (h *handlers) handleEditDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString(argDocID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	oldString, err := req.RequireString(argOldString)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	newString, err := req.RequireString(argNewString)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.ops.EditDocument(ctx, id, oldString, newString); err != nil {
		return toolError(err)
	}

	// Success carries no payload.
	return &mcp.CallToolResult{Content: []mcp.Content{}}, nil
}

func (h *handlers) handleListDocuments(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.ops.ListDocuments(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to encode document list: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: MIMETypeJSON,
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) handleGetDocument(ctx context.Context, uri string, vars map[string]string) ([]mcp.ResourceContents, error) {
	id, ok := vars[argDocID]
	if !ok {
		return nil, fmt.Errorf("resource %q is missing %s", uri, argDocID)
	}

	content, err := h.ops.GetDocumentRaw(ctx, id)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: MIMETypeText,
			Text:     content,
		},
	}, nil
}

func (h *handlers) promptHandler(build func(id string) []prompt.Message, description string) func(context.Context, mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		id, ok := req.Params.Arguments[argDocID]
		if !ok {
			return nil, fmt.Errorf("prompt %s requires argument %s", req.Params.Name, argDocID)
		}

		h.logger.Debug("Rendering prompt", "prompt", req.Params.Name, "doc_id", id)

		built := build(id)
		messages := make([]mcp.PromptMessage, 0, len(built))
		for _, m := range built {
			messages = append(messages, mcp.NewPromptMessage(mcp.Role(m.Role), mcp.NewTextContent(m.Text)))
		}

		return mcp.NewGetPromptResult(fmt.Sprintf(description, id), messages), nil
	}
}

// toolError reports document failures to the model as an error result.
// Anything else, such as a cancelled request, is a protocol-level error.
func toolError(err error) (*mcp.CallToolResult, error) {
	var docErr *document.Error
	if errors.As(err, &docErr) {
		return mcp.NewToolResultError(docErr.Error()), nil
	}
	return nil, err
}
