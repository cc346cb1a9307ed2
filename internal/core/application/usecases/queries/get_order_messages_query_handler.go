package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderMessagesQueryHandler reads an order's message thread and returns
// the requested page in reverse chronological order.
type GetOrderMessagesQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderMessagesQueryHandler creates a handler for thread reads.
func NewGetOrderMessagesQueryHandler(db *gorm.DB) GetOrderMessagesQueryHandler {
	return GetOrderMessagesQueryHandler{db: db}
}

// Handle executes the query. A page past the end of the thread returns an
// empty message list, not an error.
func (h GetOrderMessagesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderMessagesQuery,
) (GetOrderMessagesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderMessagesQueryResponse{}, err
	}

	var raw []byte
	row := h.db.WithContext(ctx).Raw(`
		SELECT messages
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderMessagesQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderMessagesQueryResponse{}, err
	}

	var messages []MessageView
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &messages); err != nil {
			return GetOrderMessagesQueryResponse{}, err
		}
	}

	response := GetOrderMessagesQueryResponse{
		Messages: make([]MessageView, 0, query.Limit()),
		Page:     query.Page(),
		Limit:    query.Limit(),
		Total:    len(messages),
	}

	// Stored oldest first; pages are served newest first.
	start := (query.Page() - 1) * query.Limit()
	for i := 0; i < query.Limit(); i++ {
		idx := len(messages) - 1 - start - i
		if idx < 0 {
			break
		}
		response.Messages = append(response.Messages, messages[idx])
	}

	return response, nil
}
