package strength

// Criterion names a single scoring dimension
type Criterion string

const (
	Length     Criterion = "length"
	Uppercase  Criterion = "uppercase"
	Lowercase  Criterion = "lowercase"
	Digits     Criterion = "digits"
	Special    Criterion = "special"
	Common     Criterion = "common"
	Repetition Criterion = "repetition"
	Sequential Criterion = "sequential"
)

// SpecialChars is the set of characters counted as special
const SpecialChars = "!@#$%^&*"

// MinRecommendedLength is the length below which a warning is emitted
const MinRecommendedLength = 8

var criteria = []Criterion{
	Length,
	Uppercase,
	Lowercase,
	Digits,
	Special,
	Common,
	Repetition,
	Sequential,
}

// Criteria returns all criteria in aggregation order.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// Weights maps each criterion to its contribution to the aggregate score.
// The defaults sum to 1.20; the aggregate is clamped instead of normalised.
type Weights map[Criterion]float64

// DefaultWeights returns the stock weight table.
func DefaultWeights() Weights {
	return Weights{
		Length:     0.25,
		Uppercase:  0.15,
		Lowercase:  0.15,
		Digits:     0.15,
		Special:    0.15,
		Common:     0.15,
		Repetition: 0.10,
		Sequential: 0.10,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	var total float64
	for _, c := range criteria {
		total += w[c]
	}
	return total
}

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// DefaultCommonPasswords returns the built-in list of known weak passwords.
func DefaultCommonPasswords() []string {
	return []string{
		"password", "123456", "qwerty", "admin", "welcome",
		"password123", "abc123", "letmein", "monkey", "1234567890",
		"admin123", "iloveyou", "sunshine", "princess", "football",
		"123123", "baseball", "dragon", "master", "superman",
	}
}

// DefaultSequences returns the reference strings used for sequential detection.
func DefaultSequences() []string {
	return []string{
		"abcdefghijklmnopqrstuvwxyz",
		"0123456789",
	}
}
