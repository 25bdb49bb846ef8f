package inventory

// Tier is the stock severity of a quantity.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// TierOf classifies q with breakpoints 5 and 10.
func TierOf(q int) Tier {
	switch {
	case q < 5:
		return TierLow
	case q < 10:
		return TierMedium
	default:
		return TierHigh
	}
}

// RowClass is the CSS class of a table row for quantity q.
func RowClass(q int) string {
	return string(TierOf(q)) + "-stock"
}

// BadgeClass is the CSS class of the quantity badge. Zero stock gets its own
// colour, distinct from the rest of the low tier.
func BadgeClass(q int) string {
	if q == 0 {
		return "bg-danger"
	}
	if q < 5 {
		return "bg-warning text-dark"
	}
	if q < 10 {
		return "bg-info"
	}
	return "bg-success"
}
