package queries

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row, including its JSONB
// sub-documents, into the full order view.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order reads.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when no order
// has the requested identifier.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			buyer_id,
			seller_id,
			service_id,
			status,
			version,
			package_snapshot,
			requirements,
			deliverables,
			revisions,
			payment,
			dispute,
			review,
			created_at,
			due_date,
			accepted_at,
			started_at,
			delivered_at,
			completed_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return row.toResponse()
}

// orderRow is the raw scan target for one orders row. The JSONB columns
// arrive as raw bytes and are decoded in toResponse.
type orderRow struct {
	ID              uuid.UUID
	OrderNumber     string
	BuyerID         uuid.UUID
	SellerID        uuid.UUID
	ServiceID       uuid.UUID
	Status          string
	Version         int
	PackageSnapshot []byte
	Requirements    []byte
	Deliverables    []byte
	Revisions       []byte
	Payment         []byte
	Dispute         []byte
	Review          []byte
	CreatedAt       time.Time
	DueDate         time.Time
	AcceptedAt      *time.Time
	StartedAt       *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time
	CancelledAt     *time.Time
}

func (r orderRow) toResponse() (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	buyerID, err := kernel.UUIDFromBytes(r.BuyerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	sellerID, err := kernel.UUIDFromBytes(r.SellerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	serviceID, err := kernel.UUIDFromBytes(r.ServiceID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	response := GetOrderQueryResponse{
		ID:          id,
		OrderNumber: r.OrderNumber,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		ServiceID:   serviceID,
		Status:      r.Status,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		DueDate:     r.DueDate,
		AcceptedAt:  r.AcceptedAt,
		StartedAt:   r.StartedAt,
		DeliveredAt: r.DeliveredAt,
		CompletedAt: r.CompletedAt,
		CancelledAt: r.CancelledAt,
	}

	if err = errors.Join(
		json.Unmarshal(r.PackageSnapshot, &response.Snapshot),
		unmarshalOptional(r.Requirements, &response.Requirements),
		unmarshalOptional(r.Deliverables, &response.Deliverables),
		json.Unmarshal(r.Revisions, &response.Revisions),
		json.Unmarshal(r.Payment, &response.Payment),
		unmarshalOptional(r.Dispute, &response.Dispute),
		unmarshalOptional(r.Review, &response.Review),
	); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func unmarshalOptional(data []byte, target any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
