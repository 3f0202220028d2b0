package grading

type bandStep struct {
	min  float64
	band string
}

// bands is evaluated top-down; the first step whose minimum the
// percentage reaches wins.
var bands = []bandStep{
	{90, "C2"},
	{80, "C1"},
	{70, "B2"},
	{55, "B1"},
	{40, "A2"},
	{30, "A1"},
	{0, "Pre-A1"},
}

// Band estimates a CEFR proficiency band from a percentage.
func Band(pct float64) string {
	for _, s := range bands {
		if pct >= s.min {
			return s.band
		}
	}
	return bands[len(bands)-1].band
}
