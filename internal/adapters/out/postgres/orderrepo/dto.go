// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
//
// An order is stored as a single row. The scalar lifecycle fields live in
// plain columns so they can be indexed and queried; the owned sub-state
// (snapshot, requirements, deliverables, messages, revisions, payment,
// dispute, review) is stored in JSONB columns via GORM's JSON serializer,
// since it is only ever read and written through the aggregate.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"type:varchar(20);uniqueIndex"`
	BuyerID     uuid.UUID `gorm:"type:uuid;index"`
	SellerID    uuid.UUID `gorm:"type:uuid;index"`
	ServiceID   uuid.UUID `gorm:"type:uuid"`
	Status      string    `gorm:"type:varchar(32);index"`
	Version     int

	PackageSnapshot PackageSnapshotDTO `gorm:"type:jsonb;serializer:json"`
	Requirements    []RequirementDTO   `gorm:"type:jsonb;serializer:json"`
	Deliverables    []DeliverableDTO   `gorm:"type:jsonb;serializer:json"`
	Messages        []MessageDTO       `gorm:"type:jsonb;serializer:json"`
	Revisions       RevisionsDTO       `gorm:"type:jsonb;serializer:json"`
	Payment         PaymentDTO         `gorm:"type:jsonb;serializer:json"`
	Dispute         *DisputeDTO        `gorm:"type:jsonb;serializer:json"`
	Review          *ReviewDTO         `gorm:"type:jsonb;serializer:json"`

	CreatedAt   time.Time
	DueDate     time.Time `gorm:"index"`
	AcceptedAt  *time.Time
	StartedAt   *time.Time
	DeliveredAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// PackageSnapshotDTO is the frozen package copy as stored in JSONB.
type PackageSnapshotDTO struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	DeliveryDays  int      `json:"delivery_days"`
	RevisionQuota int      `json:"revision_quota"`
	Features      []string `json:"features"`
}

// RequirementDTO is one checkout requirement as stored in JSONB.
type RequirementDTO struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Kind     string `json:"kind"`
}

// DeliverableDTO is one delivery record as stored in JSONB.
type DeliverableDTO struct {
	Kind        string    `json:"kind"`
	Content     string    `json:"content"`
	DeliveredAt time.Time `json:"delivered_at"`
}

// AttachmentDTO is one message attachment as stored in JSONB.
type AttachmentDTO struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	FileSize int64  `json:"file_size"`
}

// MessageDTO is one thread message as stored in JSONB. SenderID is nil for
// system messages.
type MessageDTO struct {
	SenderID        *string         `json:"sender_id"`
	Text            string          `json:"text"`
	Attachments     []AttachmentDTO `json:"attachments"`
	Timestamp       time.Time       `json:"timestamp"`
	IsSystemMessage bool            `json:"is_system_message"`
}

// RevisionEntryDTO is one revision request as stored in JSONB.
type RevisionEntryDTO struct {
	RequestedAt time.Time  `json:"requested_at"`
	Reason      string     `json:"reason"`
	DeliveredAt *time.Time `json:"delivered_at"`
	IsCompleted bool       `json:"is_completed"`
}

// RevisionsDTO is the revision tracker state as stored in JSONB.
type RevisionsDTO struct {
	Quota   int                `json:"quota"`
	Entries []RevisionEntryDTO `json:"entries"`
}

// PaymentDTO is the payment subledger state as stored in JSONB.
type PaymentDTO struct {
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID string     `json:"transaction_id"`
	Total         int64      `json:"total"`
	PaidAt        *time.Time `json:"paid_at"`
	RefundedAt    *time.Time `json:"refunded_at"`
	RefundAmount  int64      `json:"refund_amount"`
}

// DisputeDTO is the dispute case as stored in JSONB.
type DisputeDTO struct {
	Reason      string     `json:"reason"`
	Description string     `json:"description"`
	InitiatorID string     `json:"initiator_id"`
	OpenedAt    time.Time  `json:"opened_at"`
	Status      string     `json:"status"`
	Resolution  string     `json:"resolution"`
	ResolverID  *string    `json:"resolver_id"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// ReviewDTO is the buyer's review as stored in JSONB.
type ReviewDTO struct {
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// fromDomain converts an order domain aggregate to its database
// representation. The written Version is the aggregate's loaded version;
// the repository bumps it on update.
func fromDomain(aggregate *order.Order) OrderDTO {
	snapshot := aggregate.PackageSnapshot()

	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		BuyerID:     aggregate.BuyerID().Bytes(),
		SellerID:    aggregate.SellerID().Bytes(),
		ServiceID:   aggregate.ServiceID().Bytes(),
		Status:      aggregate.Status().String(),
		Version:     aggregate.Version(),
		PackageSnapshot: PackageSnapshotDTO{
			Name:          snapshot.Name(),
			Description:   snapshot.Description(),
			Price:         snapshot.Price().Amount(),
			DeliveryDays:  snapshot.DeliveryDays(),
			RevisionQuota: snapshot.RevisionQuota(),
			Features:      snapshot.Features(),
		},
		CreatedAt:   aggregate.CreatedAt(),
		DueDate:     aggregate.DueDate(),
		AcceptedAt:  aggregate.AcceptedAt(),
		StartedAt:   aggregate.StartedAt(),
		DeliveredAt: aggregate.DeliveredAt(),
		CompletedAt: aggregate.CompletedAt(),
		CancelledAt: aggregate.CancelledAt(),
	}

	dto.Requirements = make([]RequirementDTO, 0, len(aggregate.Requirements()))
	for _, req := range aggregate.Requirements() {
		dto.Requirements = append(dto.Requirements, RequirementDTO{
			Question: req.Question,
			Answer:   req.Answer,
			Kind:     req.Kind.String(),
		})
	}

	dto.Deliverables = make([]DeliverableDTO, 0, len(aggregate.Deliverables()))
	for _, deliverable := range aggregate.Deliverables() {
		dto.Deliverables = append(dto.Deliverables, DeliverableDTO{
			Kind:        deliverable.Kind().String(),
			Content:     deliverable.Content(),
			DeliveredAt: deliverable.DeliveredAt(),
		})
	}

	dto.Messages = make([]MessageDTO, 0, aggregate.Messages().Len())
	for _, msg := range aggregate.Messages().Messages() {
		msgDTO := MessageDTO{
			Text:            msg.Text(),
			Timestamp:       msg.Timestamp(),
			IsSystemMessage: msg.IsSystemMessage(),
		}
		if senderID := msg.SenderID(); senderID != nil {
			sender := senderID.String()
			msgDTO.SenderID = &sender
		}
		msgDTO.Attachments = make([]AttachmentDTO, 0, len(msg.Attachments()))
		for _, attachment := range msg.Attachments() {
			msgDTO.Attachments = append(msgDTO.Attachments, AttachmentDTO{
				Filename: attachment.Filename,
				URL:      attachment.URL,
				FileSize: attachment.FileSize,
			})
		}
		dto.Messages = append(dto.Messages, msgDTO)
	}

	revisions := aggregate.Revisions()
	dto.Revisions = RevisionsDTO{
		Quota:   revisions.Quota(),
		Entries: make([]RevisionEntryDTO, 0, revisions.Used()),
	}
	for _, entry := range revisions.Entries() {
		dto.Revisions.Entries = append(dto.Revisions.Entries, RevisionEntryDTO{
			RequestedAt: entry.RequestedAt(),
			Reason:      entry.Reason(),
			DeliveredAt: entry.DeliveredAt(),
			IsCompleted: entry.IsCompleted(),
		})
	}

	payment := aggregate.Payment()
	dto.Payment = PaymentDTO{
		Method:        payment.Method().String(),
		Status:        payment.Status().String(),
		TransactionID: payment.TransactionID(),
		Total:         payment.Total().Amount(),
		PaidAt:        payment.PaidAt(),
		RefundedAt:    payment.RefundedAt(),
		RefundAmount:  payment.RefundAmount().Amount(),
	}

	if dispute := aggregate.Dispute(); dispute != nil {
		disputeDTO := DisputeDTO{
			Reason:      dispute.Reason(),
			Description: dispute.Description(),
			InitiatorID: dispute.InitiatorID().String(),
			OpenedAt:    dispute.OpenedAt(),
			Status:      dispute.Status().String(),
			Resolution:  dispute.Resolution(),
			ResolvedAt:  dispute.ResolvedAt(),
		}
		if resolverID := dispute.ResolverID(); resolverID != nil {
			resolver := resolverID.String()
			disputeDTO.ResolverID = &resolver
		}
		dto.Dispute = &disputeDTO
	}

	if review := aggregate.Review(); review != nil {
		dto.Review = &ReviewDTO{
			Rating:     review.Rating(),
			Comment:    review.Comment(),
			ReviewedAt: review.ReviewedAt(),
		}
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}
	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PackageSnapshot.Price)
	if err != nil {
		return nil, err
	}
	snapshot, err := order.NewPackageSnapshot(
		dto.PackageSnapshot.Name,
		dto.PackageSnapshot.Description,
		price,
		dto.PackageSnapshot.DeliveryDays,
		dto.PackageSnapshot.RevisionQuota,
		dto.PackageSnapshot.Features,
	)
	if err != nil {
		return nil, err
	}

	requirements := make([]order.Requirement, 0, len(dto.Requirements))
	for _, req := range dto.Requirements {
		kind, kindErr := order.ParseRequirementKind(req.Kind)
		if kindErr != nil {
			return nil, kindErr
		}
		requirements = append(requirements, order.Requirement{
			Question: req.Question,
			Answer:   req.Answer,
			Kind:     kind,
		})
	}

	deliverables := make([]order.Deliverable, 0, len(dto.Deliverables))
	for _, deliverable := range dto.Deliverables {
		kind, kindErr := order.ParseDeliverableKind(deliverable.Kind)
		if kindErr != nil {
			return nil, kindErr
		}
		deliverables = append(deliverables,
			order.RestoreDeliverable(kind, deliverable.Content, deliverable.DeliveredAt))
	}

	messages := make([]order.Message, 0, len(dto.Messages))
	for _, msgDTO := range dto.Messages {
		var senderID *kernel.UUID
		if msgDTO.SenderID != nil {
			sender, senderErr := kernel.UUIDFromString(*msgDTO.SenderID)
			if senderErr != nil {
				return nil, senderErr
			}
			senderID = &sender
		}
		attachments := make([]order.Attachment, 0, len(msgDTO.Attachments))
		for _, attachment := range msgDTO.Attachments {
			attachments = append(attachments, order.Attachment{
				Filename: attachment.Filename,
				URL:      attachment.URL,
				FileSize: attachment.FileSize,
			})
		}
		messages = append(messages, order.RestoreMessage(
			senderID, msgDTO.Text, attachments, msgDTO.Timestamp, msgDTO.IsSystemMessage))
	}

	entries := make([]order.RevisionEntry, 0, len(dto.Revisions.Entries))
	for _, entry := range dto.Revisions.Entries {
		entries = append(entries, order.RestoreRevisionEntry(
			entry.RequestedAt, entry.Reason, entry.DeliveredAt, entry.IsCompleted))
	}

	method, err := order.ParsePaymentMethod(dto.Payment.Method)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.ParsePaymentStatus(dto.Payment.Status)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.Payment.Total)
	if err != nil {
		return nil, err
	}
	refundAmount, err := kernel.NewMoney(dto.Payment.RefundAmount)
	if err != nil {
		return nil, err
	}
	payment, err := order.RestorePaymentSubledger(
		method,
		paymentStatus,
		dto.Payment.TransactionID,
		total,
		dto.Payment.PaidAt,
		dto.Payment.RefundedAt,
		refundAmount,
	)
	if err != nil {
		return nil, err
	}

	var dispute *order.DisputeCase
	if dto.Dispute != nil {
		initiatorID, initiatorErr := kernel.UUIDFromString(dto.Dispute.InitiatorID)
		if initiatorErr != nil {
			return nil, initiatorErr
		}
		disputeStatus, statusErr := order.ParseDisputeStatus(dto.Dispute.Status)
		if statusErr != nil {
			return nil, statusErr
		}
		var resolverID *kernel.UUID
		if dto.Dispute.ResolverID != nil {
			resolver, resolverErr := kernel.UUIDFromString(*dto.Dispute.ResolverID)
			if resolverErr != nil {
				return nil, resolverErr
			}
			resolverID = &resolver
		}
		dispute, err = order.RestoreDisputeCase(
			initiatorID,
			dto.Dispute.Reason,
			dto.Dispute.Description,
			dto.Dispute.OpenedAt,
			disputeStatus,
			dto.Dispute.Resolution,
			resolverID,
			dto.Dispute.ResolvedAt,
		)
		if err != nil {
			return nil, err
		}
	}

	var review *order.Review
	if dto.Review != nil {
		restored := order.RestoreReview(dto.Review.Rating, dto.Review.Comment, dto.Review.ReviewedAt)
		review = &restored
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		OrderNumber:  dto.OrderNumber,
		BuyerID:      buyerID,
		SellerID:     sellerID,
		ServiceID:    serviceID,
		Snapshot:     snapshot,
		Requirements: requirements,
		Status:       status,
		Version:      dto.Version,
		CreatedAt:    dto.CreatedAt,
		DueDate:      dto.DueDate,
		AcceptedAt:   dto.AcceptedAt,
		StartedAt:    dto.StartedAt,
		DeliveredAt:  dto.DeliveredAt,
		CompletedAt:  dto.CompletedAt,
		CancelledAt:  dto.CancelledAt,
		Deliverables: deliverables,
		Messages:     order.RestoreMessageThread(messages),
		Revisions:    order.RestoreRevisionTracker(dto.Revisions.Quota, entries),
		Payment:      payment,
		Dispute:      dispute,
		Review:       review,
	})
}
