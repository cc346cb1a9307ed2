package order

import (
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
)

// DeliverableKind is the form a delivery record takes.
type DeliverableKind int

const (
	DeliverableKindUnknown DeliverableKind = iota
	DeliverableText
	DeliverableFile
	DeliverableLink
)

func getDeliverableKindStrings() map[DeliverableKind]string {
	return map[DeliverableKind]string{
		DeliverableKindUnknown: "unknown",
		DeliverableText:        "text",
		DeliverableFile:        "file",
		DeliverableLink:        "link",
	}
}

// ParseDeliverableKind converts the wire representation into a DeliverableKind.
func ParseDeliverableKind(s string) (DeliverableKind, error) {
	for kind, str := range getDeliverableKindStrings() {
		if str == s && kind != DeliverableKindUnknown {
			return kind, nil
		}
	}
	return DeliverableKindUnknown, errs.NewValueIsInvalidErrorWithCause("deliverable kind",
		fmt.Errorf("%q is not a valid deliverable kind", s))
}

// Validate checks that the kind is one of the defined forms.
func (k DeliverableKind) Validate() error {
	if k == DeliverableKindUnknown {
		return errs.NewValueIsRequiredError("deliverable kind")
	}
	if _, ok := getDeliverableKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("deliverable kind",
			fmt.Errorf("%d is not a valid deliverable kind", k))
	}
	return nil
}

// String returns the wire representation of the kind.
func (k DeliverableKind) String() string {
	if str, ok := getDeliverableKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Deliverable is one delivery record of an order: the text itself, a file
// reference, or a link, with the time it was delivered. The sequence on the
// order is append-only.
type Deliverable struct {
	kind        DeliverableKind
	content     string
	deliveredAt time.Time
}

// RestoreDeliverable reconstructs a delivery record from persistence.
func RestoreDeliverable(kind DeliverableKind, content string, deliveredAt time.Time) Deliverable {
	return Deliverable{kind: kind, content: content, deliveredAt: deliveredAt}
}

// Kind returns the form of the deliverable.
func (d Deliverable) Kind() DeliverableKind {
	return d.kind
}

// Content returns the deliverable text, file reference, or link.
func (d Deliverable) Content() string {
	return d.content
}

// DeliveredAt returns when the deliverable was added.
func (d Deliverable) DeliveredAt() time.Time {
	return d.deliveredAt
}
