package flagtypes

import (
	"fmt"
	"strconv"
)

// IntRange is an integer flag with optional inclusive bounds.
type IntRange struct {
	target   *int
	min, max *int
}

// NewIntRange binds target to an integer range flag. A nil bound leaves that
// side open.
func NewIntRange(target *int, def int, min, max *int) *IntRange {
	*target = def
	return &IntRange{target: target, min: min, max: max}
}

func (r *IntRange) String() string {
	if r.target == nil {
		return "0"
	}
	return strconv.Itoa(*r.target)
}

func (r *IntRange) Set(value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%q is not a valid integer", value)
	}
	if r.min != nil && v < *r.min {
		return fmt.Errorf("%d is smaller than the minimum %d", v, *r.min)
	}
	if r.max != nil && v > *r.max {
		return fmt.Errorf("%d is larger than the maximum %d", v, *r.max)
	}
	*r.target = v
	return nil
}

func (r *IntRange) Type() string { return "int" }

// TypeName is the name shown in option tables.
func (r *IntRange) TypeName() string { return "int range" }

// RangeBounds reports the bounds as text, "" meaning unbounded.
func (r *IntRange) RangeBounds() (string, string) {
	var lo, hi string
	if r.min != nil {
		lo = strconv.Itoa(*r.min)
	}
	if r.max != nil {
		hi = strconv.Itoa(*r.max)
	}
	return lo, hi
}

// FloatRange is a float flag with optional inclusive bounds.
type FloatRange struct {
	target   *float64
	min, max *float64
}

// NewFloatRange binds target to a float range flag. A nil bound leaves that
// side open.
func NewFloatRange(target *float64, def float64, min, max *float64) *FloatRange {
	*target = def
	return &FloatRange{target: target, min: min, max: max}
}

func (r *FloatRange) String() string {
	if r.target == nil {
		return "0"
	}
	return formatFloat(*r.target)
}

func (r *FloatRange) Set(value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%q is not a valid float", value)
	}
	if r.min != nil && v < *r.min {
		return fmt.Errorf("%s is smaller than the minimum %s", formatFloat(v), formatFloat(*r.min))
	}
	if r.max != nil && v > *r.max {
		return fmt.Errorf("%s is larger than the maximum %s", formatFloat(v), formatFloat(*r.max))
	}
	*r.target = v
	return nil
}

func (r *FloatRange) Type() string { return "float" }

// TypeName is the name shown in option tables.
func (r *FloatRange) TypeName() string { return "float range" }

// RangeBounds reports the bounds as text, "" meaning unbounded.
func (r *FloatRange) RangeBounds() (string, string) {
	var lo, hi string
	if r.min != nil {
		lo = formatFloat(*r.min)
	}
	if r.max != nil {
		hi = formatFloat(*r.max)
	}
	return lo, hi
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Bound is a convenience for building range bounds inline.
func Bound[T int | float64](v T) *T {
	return &v
}
