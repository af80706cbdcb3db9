package form

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numberPattern accepts plain decimal notation with an optional exponent.
// Hex floats, underscores, "Inf" and "NaN" are rejected even though
// strconv.ParseFloat would take them.
var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses raw as a finite decimal number. Surrounding whitespace
// is ignored.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if !numberPattern.MatchString(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Validate checks a single raw field value. Rules are applied in order and
// the first failing rule decides the reason:
//
//  1. empty input
//  2. not a finite number
//  3. not strictly positive
//  4. R* outside [0.1, 1000]
//  5. V* outside [1, 500]
//
// Validate is pure and total.
func Validate(name, raw string) Verdict {
	if raw == "" {
		return Invalid(MsgRequired)
	}

	value, ok := ParseNumber(raw)
	if !ok {
		return Invalid(MsgNotANumber)
	}

	if value <= 0 {
		return Invalid(MsgNotPositive)
	}

	switch RoleOf(name) {
	case RoleResistance:
		if value < MinResistance || value > MaxResistance {
			return Invalid(MsgResistanceRange)
		}
	case RoleVoltage:
		if value < MinVoltage || value > MaxVoltage {
			return Invalid(MsgVoltageRange)
		}
	}

	return Valid()
}

// Result is the outcome of validating a whole form.
type Result struct {
	// Order lists field names in document order.
	Order []string

	// Verdicts maps every evaluated field to its verdict.
	Verdicts map[string]Verdict
}

// Valid reports whether no field failed.
func (r Result) Valid() bool {
	for _, v := range r.Verdicts {
		if v.IsInvalid() {
			return false
		}
	}
	return true
}

// Invalid returns the failing field names in document order.
func (r Result) Invalid() []string {
	var names []string
	for _, name := range r.Order {
		if r.Verdicts[name].IsInvalid() {
			names = append(names, name)
		}
	}
	return names
}

// ValidateAll validates every field. It never short-circuits: each field
// gets its own verdict so every error can be shown at once.
func ValidateAll(fields []Field) Result {
	res := Result{
		Order:    make([]string, 0, len(fields)),
		Verdicts: make(map[string]Verdict, len(fields)),
	}
	for _, f := range fields {
		res.Order = append(res.Order, f.Name)
		res.Verdicts[f.Name] = Validate(f.Name, f.Value)
	}
	return res
}
