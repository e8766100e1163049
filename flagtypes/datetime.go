package flagtypes

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDateTimeLayouts mirrors the formats most CLIs accept for a
// timestamp argument.
var DefaultDateTimeLayouts = []string{
	time.DateOnly,
	"2006-01-02T15:04:05",
	time.DateTime,
}

// DateTime is a time flag accepting any of a list of layouts, tried in order.
type DateTime struct {
	target  *time.Time
	layouts []string
}

// NewDateTime binds target to a date/time flag. With no layouts the
// DefaultDateTimeLayouts are used.
func NewDateTime(target *time.Time, layouts ...string) *DateTime {
	if len(layouts) == 0 {
		layouts = DefaultDateTimeLayouts
	}
	return &DateTime{target: target, layouts: append([]string(nil), layouts...)}
}

func (d *DateTime) String() string {
	if d.target == nil || d.target.IsZero() {
		return ""
	}
	return d.target.Format(d.layouts[0])
}

func (d *DateTime) Set(value string) error {
	for _, layout := range d.layouts {
		if t, err := time.Parse(layout, value); err == nil {
			*d.target = t
			return nil
		}
	}
	return fmt.Errorf("%q does not match the formats %s", value, strings.Join(d.layouts, ", "))
}

func (d *DateTime) Type() string { return "datetime" }

// Formats returns the accepted layouts.
func (d *DateTime) Formats() []string {
	return append([]string(nil), d.layouts...)
}
