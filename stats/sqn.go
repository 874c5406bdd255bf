package stats

import (
	"math"

	"github.com/atomlabs/atom/journal"
)

// SQNResult is Van Tharp's System Quality Number with its qualitative
// rating.
type SQNResult struct {
	Value   float64 `json:"value"`
	Rating  string  `json:"rating"`
	Message string  `json:"message,omitempty"`
}

// SQN computes mean(R) / sampleStddev(R) * sqrt(n) over the closed
// trades' R-multiples. Sample stddev uses the n-1 denominator. A
// zero-variance sample reports SQN 0 with a "stable" rating instead
// of dividing by zero.
func SQN(trades []journal.Trade) SQNResult {
	rs := rMultiples(closedOnly(trades))
	n := len(rs)
	if n < 2 {
		return SQNResult{
			Rating:  "unknown",
			Message: "not enough data: SQN needs at least 2 closed trades",
		}
	}

	var sum float64
	for _, r := range rs {
		sum += r
	}
	mean := sum / float64(n)

	var ss float64
	for _, r := range rs {
		d := r - mean
		ss += d * d
	}
	stddev := math.Sqrt(ss / float64(n-1))
	if stddev == 0 {
		return SQNResult{
			Value:   0,
			Rating:  "stable",
			Message: "all R-multiples identical; dispersion is zero",
		}
	}

	v := mean / stddev * math.Sqrt(float64(n))
	return SQNResult{Value: v, Rating: sqnRating(v)}
}

func sqnRating(v float64) string {
	switch {
	case v < 1.6:
		return "Poor"
	case v < 2.0:
		return "Average"
	case v < 2.5:
		return "Good"
	case v < 3.0:
		return "Excellent"
	case v < 5.0:
		return "Superb"
	case v < 7.0:
		return "Holy Grail"
	default:
		return "Holy Grail++"
	}
}
