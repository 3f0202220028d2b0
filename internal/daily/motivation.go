package daily

// Motivation returns the encouragement line shown next to a streak count.
func Motivation(streak int) string {
	switch {
	case streak >= 30:
		return "Incredible! A month or more of daily practice. You're unstoppable!"
	case streak >= 7:
		return "A full week and counting. Keep the momentum going!"
	case streak >= 3:
		return "Nice streak! You're building a real habit."
	case streak >= 1:
		return "Good start! Come back tomorrow to grow your streak."
	default:
		return "Start your streak today with a quick challenge."
	}
}
