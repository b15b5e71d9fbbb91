package match

// GPA scales accepted at the profile write boundary.
const (
	GPAScale4  = "4.0"
	GPAScale10 = "10.0"
)

// NormalizeGPA converts a raw GPA onto the canonical 4.0 scale. This runs
// exactly once, when the value is written; stored GPAs are already
// normalized and must never pass through here again.
func NormalizeGPA(raw float64, scale string) float64 {
	if scale == GPAScale10 {
		return raw * 0.4
	}
	return raw
}
