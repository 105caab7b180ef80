package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Decade is one of the fixed labels a photo can be restyled into.
type Decade string

const (
	Decade1950s Decade = "1950s"
	Decade1960s Decade = "1960s"
	Decade1970s Decade = "1970s"
	Decade1980s Decade = "1980s"
	Decade1990s Decade = "1990s"
	Decade2000s Decade = "2000s"
	Decade2010s Decade = "2010s"
)

var decades = []Decade{
	Decade1950s,
	Decade1960s,
	Decade1970s,
	Decade1980s,
	Decade1990s,
	Decade2000s,
	Decade2010s,
}

// Decades returns the selectable decades in chronological order. The
// returned slice is a copy.
func Decades() []Decade {
	out := make([]Decade, len(decades))
	copy(out, decades)
	return out
}

// Valid reports whether d belongs to the closed set of decades.
func (d Decade) Valid() bool {
	return lo.Contains(decades, d)
}

func (d Decade) String() string {
	return string(d)
}

// ParseDecade normalizes free-form input ("1980s", " 1980S ") into a Decade.
func ParseDecade(s string) (Decade, error) {
	d := Decade(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDecade, s)
	}
	return d, nil
}
