package matching

import (
	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// sim is a symmetric character-level similarity in [0, 1], blending
// Jaro-Winkler and normalized Levenshtein distance — the same blend the
// donor address matcher uses for gazetteer name comparison, with its
// weights (0.7 Jaro-Winkler, 0.3 Levenshtein).
func sim(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	ld := levenshtein.ComputeDistance(a, b)
	den := float64(maxLen(len(a), len(b)))
	lev := 1.0 - float64(ld)/den
	return 0.7*jw + 0.3*lev
}

func maxLen(a, b int) int {
	if a > b {
		return a
	}
	return b
}
