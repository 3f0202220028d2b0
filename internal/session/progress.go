package session

// Progress is the answered/total count for the current attempt.
type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
}

// Complete reports whether every question has an answer.
func (p Progress) Complete() bool {
	return p.Answered >= p.Total
}

// Fraction returns Answered/Total in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Answered) / float64(p.Total)
}
