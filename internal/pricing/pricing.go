// Package pricing computes the quoted price for a booking: the selected
// service's base price scaled by a fixed property-size multiplier.
package pricing

import "math"

// Property-size tags and their multipliers. Reference data; never
// mutated at runtime.
var multipliers = map[string]float64{
	"studio":        1,
	"1bed":          1.2,
	"2bed":          1.4,
	"3bed":          1.6,
	"4bed":          1.8,
	"5bed+":         2.1,
	"small_office":  1.5,
	"medium_office": 2,
	"large_office":  2.5,
}

// sizeOrder keeps form dropdowns stable.
var sizeOrder = []string{
	"studio", "1bed", "2bed", "3bed", "4bed", "5bed+",
	"small_office", "medium_office", "large_office",
}

var sizeLabels = map[string]string{
	"studio":        "Studio",
	"1bed":          "1 Bedroom",
	"2bed":          "2 Bedrooms",
	"3bed":          "3 Bedrooms",
	"4bed":          "4 Bedrooms",
	"5bed+":         "5+ Bedrooms",
	"small_office":  "Small Office",
	"medium_office": "Medium Office",
	"large_office":  "Large Office",
}

// Multiplier returns the factor for a property-size tag. Unknown tags
// behave as "no category" and return 1.
func Multiplier(size string) float64 {
	if m, ok := multipliers[size]; ok {
		return m
	}
	return 1
}

// Quote returns the price owed for a service at basePrice cleaned at a
// property of the given size. An empty size leaves the base price
// unchanged; otherwise the result is rounded to the nearest whole
// currency unit, half away from zero. Quote never fails.
func Quote(basePrice float64, size string) float64 {
	if size == "" {
		return basePrice
	}
	return math.Round(basePrice * Multiplier(size))
}

// ValidSize reports whether the tag names one of the nine categories.
func ValidSize(size string) bool {
	_, ok := multipliers[size]
	return ok
}

// Sizes returns the property-size tags in display order.
func Sizes() []string {
	out := make([]string, len(sizeOrder))
	copy(out, sizeOrder)
	return out
}

// SizeLabel returns a human-readable name for a tag, falling back to
// the tag itself.
func SizeLabel(size string) string {
	if l, ok := sizeLabels[size]; ok {
		return l
	}
	return size
}
