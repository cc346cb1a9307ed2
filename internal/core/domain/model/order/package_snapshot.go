package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrPackageSnapshotIsNotConstructed is returned when a PackageSnapshot was
// not created through NewPackageSnapshot.
var ErrPackageSnapshotIsNotConstructed = errors.New(
	"PackageSnapshot must be created via NewPackageSnapshot constructor")

// PackageSnapshot is an immutable copy of the purchased service package,
// taken at order creation. It decouples the order from later edits to the
// originating service: price, delivery time, and revision quota stay as the
// buyer saw them at checkout.
type PackageSnapshot struct {
	name          string
	description   string
	price         kernel.Money
	deliveryDays  int
	revisionQuota int
	features      []string

	guard guard.ConstructorGuard
}

// NewPackageSnapshot creates a validated package snapshot.
// Delivery time must be at least one day; the revision quota may be zero,
// in which case no revisions can ever be requested on the order.
func NewPackageSnapshot(
	name string,
	description string,
	price kernel.Money,
	deliveryDays int,
	revisionQuota int,
	features []string,
) (PackageSnapshot, error) {
	snapshot := PackageSnapshot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		snapshot.setName(name),
		snapshot.setDescription(description),
		snapshot.setPrice(price),
		snapshot.setDeliveryDays(deliveryDays),
		snapshot.setRevisionQuota(revisionQuota),
		snapshot.setFeatures(features),
	); err != nil {
		return PackageSnapshot{}, err
	}

	return snapshot, nil
}

// Validate ensures the snapshot was created through the constructor.
func (p PackageSnapshot) Validate() error {
	return p.guard.Validate(ErrPackageSnapshotIsNotConstructed)
}

// Name returns the package name.
func (p PackageSnapshot) Name() string {
	return p.name
}

// Description returns the package description.
func (p PackageSnapshot) Description() string {
	return p.description
}

// Price returns the package price in minor currency units.
func (p PackageSnapshot) Price() kernel.Money {
	return p.price
}

// DeliveryDays returns the promised delivery time in days.
func (p PackageSnapshot) DeliveryDays() int {
	return p.deliveryDays
}

// RevisionQuota returns the number of revisions included in the package.
func (p PackageSnapshot) RevisionQuota() int {
	return p.revisionQuota
}

// Features returns a copy of the package feature list.
func (p PackageSnapshot) Features() []string {
	features := make([]string, len(p.features))
	copy(features, p.features)
	return features
}

func (p *PackageSnapshot) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("package name")
	}
	p.name = name
	return nil
}

func (p *PackageSnapshot) setDescription(description string) error {
	p.description = description
	return nil
}

func (p *PackageSnapshot) setPrice(price kernel.Money) error {
	p.price = price
	return nil
}

func (p *PackageSnapshot) setDeliveryDays(deliveryDays int) error {
	if deliveryDays < 1 {
		return errs.NewValueIsInvalidErrorWithCause("delivery days",
			fmt.Errorf("%d is not at least 1", deliveryDays))
	}
	p.deliveryDays = deliveryDays
	return nil
}

func (p *PackageSnapshot) setRevisionQuota(revisionQuota int) error {
	if revisionQuota < 0 {
		return errs.NewValueIsInvalidErrorWithCause("revision quota",
			fmt.Errorf("%d is negative", revisionQuota))
	}
	p.revisionQuota = revisionQuota
	return nil
}

func (p *PackageSnapshot) setFeatures(features []string) error {
	p.features = make([]string, len(features))
	copy(p.features, features)
	return nil
}
