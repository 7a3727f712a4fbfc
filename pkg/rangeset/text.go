package rangeset

import (
	"errors"
	"strings"
)

// ParseRangeSet parses a comma separated list of ranges and indices such as
// "1-3,5,10-12". The ranges may be in any order and may overlap. The returned
// set holds every range that parsed; err joins the errors of the others.
func ParseRangeSet(s string) (RangeSet, error) {
	var (
		set  RangeSet
		errs error
	)
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		r, err := ParseRange(field)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		set.add(r)
	}
	return set, errs
}

// MarshalText encodes s in the form read by ParseRangeSet.
func (s RangeSet) MarshalText() ([]byte, error) {
	var b strings.Builder
	for i, r := range s.rr {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.String())
	}
	return []byte(b.String()), nil
}

// UnmarshalText decodes text in the form read by ParseRangeSet. On error s
// is left unchanged.
func (s *RangeSet) UnmarshalText(text []byte) error {
	set, err := ParseRangeSet(string(text))
	if err != nil {
		return err
	}
	*s = set
	return nil
}
