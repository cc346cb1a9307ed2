package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderMessagesQueryIsNotConstructed = errors.New(
	"GetOrderMessagesQuery must be created via NewGetOrderMessagesQuery constructor",
)

const (
	defaultMessagesLimit = 20
	maxMessagesLimit     = 100
)

// GetOrderMessagesQuery retrieves a page of an order's message thread,
// newest first.
type GetOrderMessagesQuery struct {
	orderID kernel.UUID
	page    int
	limit   int

	guard guard.ConstructorGuard
}

// NewGetOrderMessagesQuery creates a paged message query. Page numbering is
// 1-based; a zero limit falls back to the default page size and the limit
// is capped.
func NewGetOrderMessagesQuery(orderID kernel.UUID, page, limit int) (GetOrderMessagesQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderMessagesQuery{}, errs.NewValueIsRequiredErrorWithCause("order id", err)
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultMessagesLimit
	}
	if limit > maxMessagesLimit {
		limit = maxMessagesLimit
	}

	return GetOrderMessagesQuery{
		orderID: orderID,
		page:    page,
		limit:   limit,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderMessagesQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderMessagesQueryIsNotConstructed)
}

// OrderID returns the order whose thread is read.
func (q GetOrderMessagesQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Page returns the 1-based page number.
func (q GetOrderMessagesQuery) Page() int {
	return q.page
}

// Limit returns the page size.
func (q GetOrderMessagesQuery) Limit() int {
	return q.limit
}

// AttachmentView is one attachment of a message view.
type AttachmentView struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

// MessageView is one thread message. SenderID is nil for system messages.
type MessageView struct {
	SenderID        *string          `json:"sender_id"`
	Text            string           `json:"text"`
	Attachments     []AttachmentView `json:"attachments"`
	Timestamp       time.Time        `json:"timestamp"`
	IsSystemMessage bool             `json:"is_system_message"`
}

// GetOrderMessagesQueryResponse is one page of an order's thread.
type GetOrderMessagesQueryResponse struct {
	Messages []MessageView
	Page     int
	Limit    int
	Total    int
}
