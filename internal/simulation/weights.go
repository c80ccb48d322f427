package simulation

import (
	"math"
	"sort"

	"github.com/alexanderramin/ripasso/internal/domain"
)

// bucket is a question archetype family fed by one profile weight.
type bucket int

const (
	bucketOpen     bucket = iota // oral
	bucketClosed                 // written
	bucketExercise               // practical
	bucketCount
)

// Bounds on the number of questions in a simulation.
const (
	MinQuestions = 3
	MaxQuestions = 30
)

// QuestionCount clamps the profile's average question count to the
// supported range.
func QuestionCount(p domain.ExaminationProfile) int {
	return min(max(p.AverageQuestionCount, MinQuestions), MaxQuestions)
}

// bucketShares normalises the profile weights into proportions over the
// enabled buckets. A disabled bucket's weight is dropped, which spreads its
// share over the others in proportion to their own weights. Negative, NaN and
// infinite weights count as zero.
func bucketShares(p domain.ExaminationProfile) [bucketCount]float64 {
	weights := [bucketCount]float64{
		usableWeight(p.OralWeight),
		usableWeight(p.WrittenWeight),
		usableWeight(p.PracticalWeight),
	}
	enabled := [bucketCount]bool{
		p.OpenQuestions,
		p.MultipleChoice,
		p.Exercises || p.CaseStudy,
	}

	// Scale by the largest weight first so huge finite weights cannot
	// overflow the sum.
	largest, on := 0.0, 0
	for b := range weights {
		if enabled[b] {
			largest = math.Max(largest, weights[b])
			on++
		}
	}
	sum := 0.0
	if largest > 0 {
		for b := range weights {
			if enabled[b] {
				sum += weights[b] / largest
			}
		}
	}

	var shares [bucketCount]float64
	switch {
	case on == 0:
		shares[bucketOpen] = 1
	case sum == 0:
		for b := range shares {
			if enabled[b] {
				shares[b] = 1 / float64(on)
			}
		}
	default:
		for b := range shares {
			if enabled[b] {
				shares[b] = weights[b] / largest / sum
			}
		}
	}
	return shares
}

func usableWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

// apportion turns proportions into integer counts summing to n using the
// largest-remainder method. Ties go to the lower bucket.
func apportion(shares [bucketCount]float64, n int) [bucketCount]int {
	var counts [bucketCount]int
	type rem struct {
		b    bucket
		frac float64
	}
	rems := make([]rem, 0, bucketCount)
	assigned := 0
	for b, s := range shares {
		quota := s * float64(n)
		whole := int(math.Floor(quota + 1e-9))
		counts[b] = whole
		assigned += whole
		if s > 0 {
			rems = append(rems, rem{b: bucket(b), frac: quota - float64(whole)})
		}
	}
	sort.SliceStable(rems, func(i, j int) bool { return rems[i].frac > rems[j].frac })
	for i := 0; assigned < n && len(rems) > 0; i++ {
		counts[rems[i%len(rems)].b]++
		assigned++
	}
	return counts
}

// sequence orders the buckets with smooth weighted round-robin so that
// every prefix of the question list tracks the target proportions.
func sequence(counts [bucketCount]int) []bucket {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make([]bucket, 0, total)
	var current [bucketCount]int
	for len(out) < total {
		best := bucket(-1)
		for b := range counts {
			if counts[b] == 0 {
				continue
			}
			current[b] += counts[b]
			if best < 0 || current[b] > current[best] {
				best = bucket(b)
			}
		}
		current[best] -= total
		out = append(out, best)
	}
	return out
}
