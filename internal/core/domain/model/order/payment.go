package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrInvalidPaymentTransition is the sentinel wrapped by
	// InvalidPaymentTransitionError.
	ErrInvalidPaymentTransition = errors.New("invalid payment transition")

	// ErrInvalidAmount is the sentinel wrapped by InvalidAmountError.
	ErrInvalidAmount = errors.New("invalid refund amount")
)

// InvalidPaymentTransitionError reports a payment operation that is not
// legal from the subledger's current status.
type InvalidPaymentTransitionError struct {
	From      PaymentStatus
	Operation string
}

func (e *InvalidPaymentTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from %s", ErrInvalidPaymentTransition, e.Operation, e.From)
}

func (e *InvalidPaymentTransitionError) Unwrap() error {
	return ErrInvalidPaymentTransition
}

// InvalidAmountError reports a refund amount that is zero, negative, or
// larger than what remains refundable.
type InvalidAmountError struct {
	Requested  kernel.Money
	Refundable kernel.Money
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("%s: requested %d, refundable %d",
		ErrInvalidAmount, e.Requested.Amount(), e.Refundable.Amount())
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// PaymentMethod is the channel the buyer paid through.
type PaymentMethod int

const (
	PaymentMethodUnknown PaymentMethod = iota
	Stripe
	Razorpay
	PayPal
	Wallet
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown: "unknown",
		Stripe:               "stripe",
		Razorpay:             "razorpay",
		PayPal:               "paypal",
		Wallet:               "wallet",
	}
}

// ParsePaymentMethod converts the wire representation into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if str == s && method != PaymentMethodUnknown {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks that the method is one of the supported channels.
func (m PaymentMethod) Validate() error {
	if m == PaymentMethodUnknown {
		return errs.NewValueIsRequiredError("payment method")
	}
	if _, ok := getPaymentMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the wire representation of the method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus is the state of the payment subledger, orthogonal to the
// order lifecycle status.
type PaymentStatus int

const (
	PaymentStatusUnknown PaymentStatus = iota
	PaymentPending
	Paid
	PaymentFailed
	PaymentRefunded
	PartiallyRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		Paid:                 "paid",
		PaymentFailed:        "failed",
		PaymentRefunded:      "refunded",
		PartiallyRefunded:    "partially_refunded",
	}
}

// ParsePaymentStatus converts the wire representation into a PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if str == s && status != PaymentStatusUnknown {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks that the status is one of the defined payment states.
func (s PaymentStatus) Validate() error {
	if s == PaymentStatusUnknown {
		return errs.NewValueIsRequiredError("payment status")
	}
	if _, ok := getPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// PaymentSubledger tracks payment state, amounts, and refunds for one order.
// It is deliberately decoupled from the order status machine: mutations
// arrive from the payment-processor webhook, while the lifecycle engine only
// reads the status to gate completed and refunded transitions.
type PaymentSubledger struct {
	method        PaymentMethod
	status        PaymentStatus
	transactionID string
	total         kernel.Money
	paidAt        *time.Time
	refundedAt    *time.Time
	refundAmount  kernel.Money
}

// NewPaymentSubledger creates a pending subledger for the given channel and
// order total.
func NewPaymentSubledger(method PaymentMethod, total kernel.Money) (PaymentSubledger, error) {
	if err := method.Validate(); err != nil {
		return PaymentSubledger{}, err
	}

	return PaymentSubledger{
		method: method,
		status: PaymentPending,
		total:  total,
	}, nil
}

// RestorePaymentSubledger reconstructs a subledger from persistence.
func RestorePaymentSubledger(
	method PaymentMethod,
	status PaymentStatus,
	transactionID string,
	total kernel.Money,
	paidAt *time.Time,
	refundedAt *time.Time,
	refundAmount kernel.Money,
) (PaymentSubledger, error) {
	if err := errors.Join(method.Validate(), status.Validate()); err != nil {
		return PaymentSubledger{}, err
	}

	return PaymentSubledger{
		method:        method,
		status:        status,
		transactionID: transactionID,
		total:         total,
		paidAt:        paidAt,
		refundedAt:    refundedAt,
		refundAmount:  refundAmount,
	}, nil
}

// MarkPaid records a successful charge. Legal only from pending.
func (p *PaymentSubledger) MarkPaid(transactionID string, now time.Time) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transaction id")
	}
	if p.status != PaymentPending {
		return &InvalidPaymentTransitionError{From: p.status, Operation: "mark paid"}
	}

	p.status = Paid
	p.transactionID = transactionID
	paidAt := now
	p.paidAt = &paidAt
	return nil
}

// MarkFailed records a failed charge. Legal only from pending.
func (p *PaymentSubledger) MarkFailed() error {
	if p.status != PaymentPending {
		return &InvalidPaymentTransitionError{From: p.status, Operation: "mark failed"}
	}

	p.status = PaymentFailed
	return nil
}

// Refund returns amount to the buyer. Legal from paid or partially refunded.
// The refund accumulates; when it reaches the paid total the status becomes
// refunded, otherwise partially refunded. Fails with InvalidAmountError when
// the amount is zero or exceeds what remains refundable.
func (p *PaymentSubledger) Refund(amount kernel.Money, now time.Time) error {
	if p.status != Paid && p.status != PartiallyRefunded {
		return &InvalidPaymentTransitionError{From: p.status, Operation: "refund"}
	}

	refundable, err := p.total.Sub(p.refundAmount)
	if err != nil {
		return err
	}
	if amount.IsZero() || refundable.LessThan(amount) {
		return &InvalidAmountError{Requested: amount, Refundable: refundable}
	}

	p.refundAmount = p.refundAmount.Add(amount)
	if p.refundAmount.IsEqual(p.total) {
		p.status = PaymentRefunded
	} else {
		p.status = PartiallyRefunded
	}
	refundedAt := now
	p.refundedAt = &refundedAt
	return nil
}

// Method returns the payment channel.
func (p PaymentSubledger) Method() PaymentMethod {
	return p.method
}

// Status returns the current payment status.
func (p PaymentSubledger) Status() PaymentStatus {
	return p.status
}

// TransactionID returns the processor transaction id, empty until paid.
func (p PaymentSubledger) TransactionID() string {
	return p.transactionID
}

// Total returns the amount charged for the order.
func (p PaymentSubledger) Total() kernel.Money {
	return p.total
}

// PaidAt returns when the payment succeeded, or nil.
func (p PaymentSubledger) PaidAt() *time.Time {
	return p.paidAt
}

// RefundedAt returns when the most recent refund was issued, or nil.
func (p PaymentSubledger) RefundedAt() *time.Time {
	return p.refundedAt
}

// RefundAmount returns the accumulated refunded amount.
func (p PaymentSubledger) RefundAmount() kernel.Money {
	return p.refundAmount
}

// IsRefunded reports whether the payment has fully or partially been
// returned to the buyer.
func (p PaymentSubledger) IsRefunded() bool {
	return p.status == PaymentRefunded || p.status == PartiallyRefunded
}
