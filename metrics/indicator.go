// SPDX-License-Identifier: MIT
// Package: pemesh/metrics
//
// indicator.go — the indicator catalogue.

package metrics

import (
	"fmt"
	"math"
	"strings"
)

// Indicator identifies one per-polygon quality measure.
type Indicator uint8

const (
	IC   Indicator = iota // inscribed circle radius
	CC                    // smallest enclosing disk radius
	CR                    // IC / CC
	AR                    // area
	KE                    // kernel area
	KAR                   // KE / AR
	APR                   // area / perimeter²
	MA                    // min interior angle
	SE                    // shortest edge
	ER                    // shortest / longest edge
	MPD                   // min vertex-to-vertex distance
	NS                    // number of sides
	MXA                   // max interior angle
	SR                    // CC / inscribed radius of the kernel
	VEM                   // diameter / min(√AR, SE)
	VEMA                  // VEM² · AR

	// Count is the number of indicators.
	Count = int(VEMA) + 1
)

// NoIndex marks an absent polygon id.
const NoIndex = -1

type indicatorInfo struct {
	key, name      string
	scaleDependent bool
	lo, hi         float64
}

var catalogue = [Count]indicatorInfo{
	IC:   {"IC", "Inscribed Circle", true, 0, math.Inf(1)},
	CC:   {"CC", "Circumscribed Circle", true, 0, math.Inf(1)},
	CR:   {"CR", "Circle Ratio", false, 0, 1},
	AR:   {"AR", "Area", true, 0, math.Inf(1)},
	KE:   {"KE", "Kernel", true, 0, math.Inf(1)},
	KAR:  {"KAR", "Kernel Area Ratio", false, 0, 1},
	APR:  {"APR", "Area Perimeter Ratio", false, 0, 1 / (4 * math.Pi)},
	MA:   {"MA", "Minimum Angle", false, 0, math.Pi},
	SE:   {"SE", "Shortest Edge", true, 0, math.Inf(1)},
	ER:   {"ER", "Edge Ratio", false, 0, 1},
	MPD:  {"MPD", "Minimum Point to Point Distance", true, 0, math.Inf(1)},
	NS:   {"NS", "Number of Edges", false, 3, math.Inf(1)},
	MXA:  {"MXA", "Maximum Angle", false, 0, 2 * math.Pi},
	SR:   {"SR", "Shape Regularity", false, 0, math.Inf(1)},
	VEM:  {"VEM", "Virtual Elements Max", false, 1, math.Inf(1)},
	VEMA: {"VEMA", "Virtual Elements Area", true, 0, math.Inf(1)},
}

// Indicators lists every indicator in catalogue order.
func Indicators() []Indicator {
	out := make([]Indicator, Count)
	for i := range out {
		out[i] = Indicator(i)
	}
	return out
}

// String returns the acronym, e.g. "VEMA".
func (i Indicator) String() string {
	if int(i) >= Count {
		return fmt.Sprintf("Indicator(%d)", uint8(i))
	}
	return catalogue[i].key
}

// Name returns the long name.
func (i Indicator) Name() string { return catalogue[i].name }

// ScaleDependent reports whether the indicator changes under uniform scaling.
func (i Indicator) ScaleDependent() bool { return catalogue[i].scaleDependent }

// Range returns the theoretical value range.
func (i Indicator) Range() (lo, hi float64) { return catalogue[i].lo, catalogue[i].hi }

// ParseIndicator maps an acronym (case-insensitive) to its indicator.
func ParseIndicator(s string) (Indicator, error) {
	for i, c := range catalogue {
		if strings.EqualFold(c.key, s) {
			return Indicator(i), nil
		}
	}
	return 0, fmt.Errorf("metrics: indicator %q: %w", s, ErrUnknownIndicator)
}
