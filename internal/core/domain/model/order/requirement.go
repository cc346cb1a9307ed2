package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// RequirementKind is the answer form of a checkout requirement.
type RequirementKind int

const (
	RequirementKindUnknown RequirementKind = iota
	RequirementText
	RequirementFile
	RequirementMultipleChoice
)

func getRequirementKindStrings() map[RequirementKind]string {
	return map[RequirementKind]string{
		RequirementKindUnknown:    "unknown",
		RequirementText:           "text",
		RequirementFile:           "file",
		RequirementMultipleChoice: "multiple_choice",
	}
}

// ParseRequirementKind converts the wire representation into a RequirementKind.
func ParseRequirementKind(s string) (RequirementKind, error) {
	for kind, str := range getRequirementKindStrings() {
		if str == s && kind != RequirementKindUnknown {
			return kind, nil
		}
	}
	return RequirementKindUnknown, errs.NewValueIsInvalidErrorWithCause("requirement kind",
		fmt.Errorf("%q is not a valid requirement kind", s))
}

// String returns the wire representation of the kind.
func (k RequirementKind) String() string {
	if str, ok := getRequirementKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// Requirement captures one buyer answer collected at checkout. Requirements
// are immutable after order creation.
type Requirement struct {
	Question string
	Answer   string
	Kind     RequirementKind
}
