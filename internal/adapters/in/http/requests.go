package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
)

// Request bodies. Field names follow the JSON wire format of the public API.

type requirementRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Kind     string `json:"kind"`
}

type createOrderRequest struct {
	SellerID           string               `json:"seller_id"`
	ServiceID          string               `json:"service_id"`
	PackageName        string               `json:"package_name"`
	PackageDescription string               `json:"package_description"`
	PriceAmount        int64                `json:"price_amount"`
	DeliveryDays       int                  `json:"delivery_days"`
	RevisionQuota      int                  `json:"revision_quota"`
	Features           []string             `json:"features"`
	PaymentMethod      string               `json:"payment_method"`
	Requirements       []requirementRequest `json:"requirements"`
}

type transitionOrderRequest struct {
	Status string `json:"status"`
}

type attachmentRequest struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

type addMessageRequest struct {
	Text        string              `json:"text"`
	Attachments []attachmentRequest `json:"attachments"`
}

type requestRevisionRequest struct {
	Reason string `json:"reason"`
}

type addDeliverableRequest struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type openDisputeRequest struct {
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

type resolveDisputeRequest struct {
	Resolution string `json:"resolution"`
}

type leaveReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// paymentWebhookRequest is the processor callback. Event is one of "paid",
// "failed", or "refunded"; Amount is only read for refunds.
type paymentWebhookRequest struct {
	OrderID       string `json:"order_id"`
	Event         string `json:"event"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
}

// Response bodies.

type createOrderResponse struct {
	ID string `json:"id"`
}

type orderResponse struct {
	ID           string                      `json:"id"`
	OrderNumber  string                      `json:"order_number"`
	BuyerID      string                      `json:"buyer_id"`
	SellerID     string                      `json:"seller_id"`
	ServiceID    string                      `json:"service_id"`
	Status       string                      `json:"status"`
	Version      int                         `json:"version"`
	Snapshot     queries.PackageSnapshotView `json:"package_snapshot"`
	Requirements []queries.RequirementView   `json:"requirements"`
	Deliverables []queries.DeliverableView   `json:"deliverables"`
	Revisions    queries.RevisionsView       `json:"revisions"`
	Payment      queries.PaymentView         `json:"payment"`
	Dispute      *queries.DisputeView        `json:"dispute,omitempty"`
	Review       *queries.ReviewView         `json:"review,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
	DueDate      time.Time                   `json:"due_date"`
	AcceptedAt   *time.Time                  `json:"accepted_at,omitempty"`
	StartedAt    *time.Time                  `json:"started_at,omitempty"`
	DeliveredAt  *time.Time                  `json:"delivered_at,omitempty"`
	CompletedAt  *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt  *time.Time                  `json:"cancelled_at,omitempty"`
}

func toOrderResponse(resp queries.GetOrderQueryResponse) orderResponse {
	return orderResponse{
		ID:           resp.ID.String(),
		OrderNumber:  resp.OrderNumber,
		BuyerID:      resp.BuyerID.String(),
		SellerID:     resp.SellerID.String(),
		ServiceID:    resp.ServiceID.String(),
		Status:       resp.Status,
		Version:      resp.Version,
		Snapshot:     resp.Snapshot,
		Requirements: resp.Requirements,
		Deliverables: resp.Deliverables,
		Revisions:    resp.Revisions,
		Payment:      resp.Payment,
		Dispute:      resp.Dispute,
		Review:       resp.Review,
		CreatedAt:    resp.CreatedAt,
		DueDate:      resp.DueDate,
		AcceptedAt:   resp.AcceptedAt,
		StartedAt:    resp.StartedAt,
		DeliveredAt:  resp.DeliveredAt,
		CompletedAt:  resp.CompletedAt,
		CancelledAt:  resp.CancelledAt,
	}
}

type messagesResponse struct {
	Messages []queries.MessageView `json:"messages"`
	Page     int                   `json:"page"`
	Limit    int                   `json:"limit"`
	Total    int                   `json:"total"`
}
