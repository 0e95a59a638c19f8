package analysis

// Calendar cell colors. The count buckets and win-rate buckets match the
// presentation layer's heatmap palette and must stay in sync with it.

// CountColor returns the heatmap color for a day's game count.
// 0 games is transparent; 1-3, 4-6 and 7+ games step up the opacity.
func CountColor(count int) string {
	switch {
	case count <= 0:
		return "#0CFFFFFF"
	case count <= 3:
		return "#4C92A525"
	case count <= 6:
		return "#7F92A525"
	default:
		return "#CC92A525"
	}
}

// WinRateColor returns the heatmap color for a day's win-rate percentage.
// Nine buckets from deep red (0%) to deep green (90%+).
func WinRateColor(rate float64) string {
	switch {
	case rate == 0:
		return "#C23C2A"
	case rate < 30:
		return "#F37A40"
	case rate < 40:
		return "#F29731"
	case rate < 50:
		return "#F1B224"
	case rate < 60:
		return "#EFCC16"
	case rate < 70:
		return "#C0C21E"
	case rate < 80:
		return "#92A525"
	case rate < 90:
		return "#8FB725"
	default:
		return "#60AD2C"
	}
}
