package document

import (
	"context"
	"time"

	"docmcp/internal/logging"

	"github.com/google/uuid"
)

// Operations is the request-level API over a Store. Each method is a single
// in-memory step: it either succeeds or returns an *Error without side effects.
type Operations struct {
	store  *Store
	logger *logging.AppLogger
}

// NewOperations creates the operation layer for store.
func NewOperations(store *Store, logger *logging.AppLogger) *Operations {
	return &Operations{
		store:  store,
		logger: logger,
	}
}

// Store returns the underlying store.
func (o *Operations) Store() *Store {
	return o.store
}

// ReadDocument returns the content of id as plain text. A done ctx yields
// ctx.Err().
func (o *Operations) ReadDocument(ctx context.Context, id string) (string, error) {
	return o.read(ctx, "read_doc_contents", id)
}

// EditDocument replaces every occurrence of oldString with newString in id.
// A done ctx yields ctx.Err() and leaves the document unchanged.
func (o *Operations) EditDocument(ctx context.Context, id, oldString, newString string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log := o.requestLogger("edit_doc", id)
	defer log.LogPerformance("edit_doc", time.Now())

	if err := o.store.Replace(id, oldString, newString); err != nil {
		log.Warn("Edit failed", "error", err)
		return err
	}

	log.Debug("Document edited", "old_len", len(oldString), "new_len", len(newString))
	return nil
}

// ListDocuments returns every document ID in seed order. It never fails.
func (o *Operations) ListDocuments(ctx context.Context) []string {
	ids := o.store.List()
	o.logger.Debug("Listed documents", "count", len(ids))
	return ids
}

// GetDocumentRaw is ReadDocument addressed through the docs://documents/{doc_id}
// resource instead of a tool call.
func (o *Operations) GetDocumentRaw(ctx context.Context, id string) (string, error) {
	return o.read(ctx, "docs://documents/{doc_id}", id)
}

func (o *Operations) read(ctx context.Context, op, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	log := o.requestLogger(op, id)

	content, err := o.store.Get(id)
	if err != nil {
		log.Warn("Read failed", "error", err)
		return "", err
	}

	log.Debug("Document read", "bytes", len(content))
	return content, nil
}

func (o *Operations) requestLogger(op, id string) *logging.AppLogger {
	return o.logger.With("request_id", uuid.NewString(), "op", op, "doc_id", id)
}
