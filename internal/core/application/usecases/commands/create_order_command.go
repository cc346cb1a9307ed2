package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// RequirementInput carries one checkout requirement answer.
type RequirementInput struct {
	Question string
	Answer   string
	Kind     string
}

// CreateOrderCommand represents a request to place a new order for a service
// package. The package details are captured here and frozen into the order's
// snapshot, so later edits to the service never change what was bought.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(buyerID, sellerID, serviceID,
//	    "Logo design", "Three concepts", 50_00, 5, 2,
//	    []string{"source files"}, "stripe", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	serviceID kernel.UUID

	packageName        string
	packageDescription string
	priceAmount        int64
	deliveryDays       int
	revisionQuota      int
	features           []string

	paymentMethod order.PaymentMethod
	requirements  []RequirementInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates participant identifiers, the package snapshot fields, and the
// payment method. Returns an error if any validation fails.
func NewCreateOrderCommand(
	buyerID kernel.UUID,
	sellerID kernel.UUID,
	serviceID kernel.UUID,
	packageName string,
	packageDescription string,
	priceAmount int64,
	deliveryDays int,
	revisionQuota int,
	features []string,
	paymentMethod string,
	requirements []RequirementInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		packageDescription: packageDescription,
		features:           features,
		requirements:       requirements,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBuyerID(buyerID),
		cmd.setSellerID(sellerID),
		cmd.setServiceID(serviceID),
		cmd.setPackageName(packageName),
		cmd.setPriceAmount(priceAmount),
		cmd.setDeliveryDays(deliveryDays),
		cmd.setRevisionQuota(revisionQuota),
		cmd.setPaymentMethod(paymentMethod),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// BuyerID returns the buying user.
func (c CreateOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// SellerID returns the selling user.
func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// ServiceID returns the purchased service.
func (c CreateOrderCommand) ServiceID() kernel.UUID {
	return c.serviceID
}

// PackageName returns the purchased package's name.
func (c CreateOrderCommand) PackageName() string {
	return c.packageName
}

// PackageDescription returns the purchased package's description.
func (c CreateOrderCommand) PackageDescription() string {
	return c.packageDescription
}

// PriceAmount returns the package price in minor currency units.
func (c CreateOrderCommand) PriceAmount() int64 {
	return c.priceAmount
}

// DeliveryDays returns the promised delivery time in days.
func (c CreateOrderCommand) DeliveryDays() int {
	return c.deliveryDays
}

// RevisionQuota returns the number of revisions included in the package.
func (c CreateOrderCommand) RevisionQuota() int {
	return c.revisionQuota
}

// Features returns the package's feature list.
func (c CreateOrderCommand) Features() []string {
	return c.features
}

// PaymentMethod returns the chosen payment method.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// Requirements returns the buyer's checkout requirement answers.
func (c CreateOrderCommand) Requirements() []RequirementInput {
	return c.requirements
}

func (c *CreateOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("buyer id", err)
	}
	c.buyerID = buyerID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("seller id", err)
	}
	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setServiceID(serviceID kernel.UUID) error {
	if err := serviceID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("service id", err)
	}
	c.serviceID = serviceID
	return nil
}

func (c *CreateOrderCommand) setPackageName(packageName string) error {
	if packageName == "" {
		return errs.NewValueIsRequiredError("package name")
	}
	c.packageName = packageName
	return nil
}

func (c *CreateOrderCommand) setPriceAmount(priceAmount int64) error {
	if priceAmount < 0 {
		return errs.NewValueIsInvalidError("price amount")
	}
	c.priceAmount = priceAmount
	return nil
}

func (c *CreateOrderCommand) setDeliveryDays(deliveryDays int) error {
	if deliveryDays < 1 {
		return errs.NewValueIsInvalidError("delivery days")
	}
	c.deliveryDays = deliveryDays
	return nil
}

func (c *CreateOrderCommand) setRevisionQuota(revisionQuota int) error {
	if revisionQuota < 0 {
		return errs.NewValueIsInvalidError("revision quota")
	}
	c.revisionQuota = revisionQuota
	return nil
}

func (c *CreateOrderCommand) setPaymentMethod(paymentMethod string) error {
	method, err := order.ParsePaymentMethod(paymentMethod)
	if err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}
