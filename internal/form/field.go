package form

import (
	"fmt"
	"strings"
)

// Role classifies a field by the first letter of its name.
type Role int

const (
	RoleUnclassified Role = iota
	RoleResistance
	RoleVoltage
)

// RoleOf returns the role implied by a field name. The prefix match is
// case-sensitive: "r1" is unclassified.
func RoleOf(name string) Role {
	switch {
	case strings.HasPrefix(name, "R"):
		return RoleResistance
	case strings.HasPrefix(name, "V"):
		return RoleVoltage
	default:
		return RoleUnclassified
	}
}

// String returns a human-readable name for the role
func (r Role) String() string {
	switch r {
	case RoleResistance:
		return "resistance"
	case RoleVoltage:
		return "voltage"
	default:
		return "unclassified"
	}
}

// Unit is the suffix used when a value is exported. Anything that is not a
// resistance is written in volts.
func (r Role) Unit() string {
	if r == RoleResistance {
		return "Ω"
	}
	return "V"
}

// Hint is the tooltip text for the role, empty for unclassified fields.
func (r Role) Hint() string {
	switch r {
	case RoleResistance:
		return HintResistance
	case RoleVoltage:
		return HintVoltage
	default:
		return ""
	}
}

// Status is the coarse outcome of validating a field.
type Status int

const (
	StatusUntouched Status = iota
	StatusValid
	StatusInvalid
)

// String returns a human-readable name for the status
func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	default:
		return "untouched"
	}
}

// Verdict is the result of validating one field. Reason is set only when
// Status is StatusInvalid.
type Verdict struct {
	Status Status
	Reason string
}

// Valid returns a passing verdict.
func Valid() Verdict { return Verdict{Status: StatusValid} }

// Invalid returns a failing verdict carrying the user-facing reason.
func Invalid(reason string) Verdict { return Verdict{Status: StatusInvalid, Reason: reason} }

// Untouched is the verdict of a field nobody has edited yet.
func Untouched() Verdict { return Verdict{} }

// IsValid reports whether the verdict is StatusValid.
func (v Verdict) IsValid() bool { return v.Status == StatusValid }

// IsInvalid reports whether the verdict is StatusInvalid.
func (v Verdict) IsInvalid() bool { return v.Status == StatusInvalid }

func (v Verdict) String() string {
	if v.Status == StatusInvalid {
		return fmt.Sprintf("invalid(%s)", v.Reason)
	}
	return v.Status.String()
}

// Field is a named numeric input of the form.
type Field struct {
	Name    string
	Value   string
	Verdict Verdict
}

// Role returns the field's role.
func (f Field) Role() Role { return RoleOf(f.Name) }

// Hint returns the tooltip text for the field.
func (f Field) Hint() string { return f.Role().Hint() }

// Display formats the value with its export unit, e.g. "12V".
func (f Field) Display() string { return f.Value + f.Role().Unit() }
