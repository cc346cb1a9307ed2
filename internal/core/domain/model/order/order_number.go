package order

import (
	"fmt"
	"regexp"
	"time"

	"marketplace/internal/pkg/errs"
)

// orderNumberPrefix identifies marketplace order numbers.
const orderNumberPrefix = "TH"

var orderNumberPattern = regexp.MustCompile(`^TH\d{8}\d{4}$`)

// OrderNumberGenerator produces human-readable order numbers combining a
// fixed-length timestamp suffix with a zero-padded sequence counter seeded
// from the current total order count.
//
// The counter read is not atomic under concurrent creation, so generation
// alone cannot guarantee uniqueness: the persistence layer enforces a
// uniqueness constraint on the value and the caller regenerates and retries
// on conflict.
type OrderNumberGenerator struct{}

// NewOrderNumberGenerator creates a generator.
func NewOrderNumberGenerator() OrderNumberGenerator {
	return OrderNumberGenerator{}
}

// Next formats an order number from the current time and a sequence value,
// e.g. "TH584631270042". The timestamp portion is the last eight digits of
// the unix-millisecond clock; the sequence portion wraps at four digits.
func (g OrderNumberGenerator) Next(now time.Time, sequence int64) string {
	return fmt.Sprintf("%s%08d%04d",
		orderNumberPrefix, now.UnixMilli()%100000000, sequence%10000)
}

// ValidateOrderNumber checks the textual shape of an order number.
func ValidateOrderNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	if !orderNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order number",
			fmt.Errorf("%q does not match the expected format", number))
	}
	return nil
}
