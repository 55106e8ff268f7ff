// Package strength scores passwords with a weighted heuristic and generates
// random passwords that satisfy every character-class criterion.
package strength

import (
	"math"
	"strings"
	"unicode/utf8"
)

// lengthCeiling is the length at which the length sub-score saturates
const lengthCeiling = 20

// Option configures a Scorer
type Option func(*Scorer)

// WithWeights replaces the weight table. Criteria missing from w weigh zero.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w.clone()
	}
}

// WithCommonPasswords replaces the list of known weak passwords.
func WithCommonPasswords(list []string) Option {
	return func(s *Scorer) {
		s.common = make(map[string]struct{}, len(list))
		for _, p := range list {
			s.common[strings.ToLower(p)] = struct{}{}
		}
	}
}

// WithSequences replaces the reference strings used for sequential detection.
func WithSequences(seqs []string) Option {
	return func(s *Scorer) {
		s.windows = windowsOf(seqs)
	}
}

// Scorer evaluates passwords. It holds only immutable tables and is safe
// for concurrent use.
type Scorer struct {
	weights Weights
	common  map[string]struct{}
	windows []string
}

// NewScorer creates a scorer using the default tables unless overridden.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	WithWeights(DefaultWeights())(s)
	WithCommonPasswords(DefaultCommonPasswords())(s)
	WithSequences(DefaultSequences())(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScorer = NewScorer()

// Score evaluates password with the default tables.
func Score(password string) *Result {
	return defaultScorer.Score(password)
}

// Weights returns a copy of the scorer's weight table.
func (s *Scorer) Weights() Weights {
	return s.weights.clone()
}

// Score evaluates a password. Any string is accepted, including the empty one.
func (s *Scorer) Score(password string) *Result {
	details := make(Details, len(criteria))
	feedback := make([]string, 0, len(criteria))
	icons := make([]string, 0, len(criteria))
	suggest := func(icon, msg string) {
		icons = append(icons, icon)
		feedback = append(feedback, msg)
	}

	n := utf8.RuneCountInString(password)
	details[Length] = math.Min(1.0, math.Log(float64(max(1, n)))/math.Log(lengthCeiling))
	if n < MinRecommendedLength {
		suggest(IconTooShort, FeedbackTooShort)
	}

	classes := classify(password)
	details[Uppercase] = indicator(classes.upper)
	details[Lowercase] = indicator(classes.lower)
	details[Digits] = indicator(classes.digit)
	details[Special] = indicator(classes.special)

	if !classes.upper || !classes.lower {
		suggest(IconMixedCase, FeedbackMixedCase)
	}
	if !classes.digit {
		suggest(IconDigit, FeedbackDigit)
	}
	if !classes.special {
		suggest(IconSpecial, FeedbackSpecial)
	}

	folded := strings.ToLower(password)

	_, isCommon := s.common[folded]
	details[Common] = indicator(!isCommon)
	if isCommon {
		suggest(IconCommon, FeedbackCommon)
	}

	repetitive := hasRepeatedRun(password, 3)
	details[Repetition] = indicator(!repetitive)
	if repetitive {
		suggest(IconRepetition, FeedbackRepetition)
	}

	sequential := s.hasSequence(folded)
	details[Sequential] = indicator(!sequential)
	if sequential {
		suggest(IconSequential, FeedbackSequential)
	}

	var total float64
	for _, c := range criteria {
		total += details[c] * s.weights[c]
	}
	normalized := math.Min(1.0, math.Max(0.0, total))

	// Ties at .5 round to even, so an aggregate of exactly 0.7 lands on 4.
	score := int(math.RoundToEven(normalized * MaxScore))

	b := bucketFor(score)
	return &Result{
		Score:           score,
		NormalizedScore: normalized,
		Strength:        b.strength,
		Message:         b.message,
		Emoji:           b.emoji,
		Tag:             b.tag,
		Feedback:        feedback,
		FeedbackIcons:   icons,
		Details:         details,
	}
}

type charClasses struct {
	upper, lower, digit, special bool
}

// classify only inspects ASCII bytes; multi-byte runes never match.
func classify(password string) charClasses {
	var cc charClasses
	for i := 0; i < len(password); i++ {
		ch := password[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			cc.upper = true
		case ch >= 'a' && ch <= 'z':
			cc.lower = true
		case ch >= '0' && ch <= '9':
			cc.digit = true
		case strings.IndexByte(SpecialChars, ch) >= 0:
			cc.special = true
		}
	}
	return cc
}

// hasRepeatedRun reports a run of at least n identical runes. Newlines
// never form a run.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if run > 0 && r == prev && r != '\n' {
			run++
		} else {
			run = 1
		}
		if run >= n && r != '\n' {
			return true
		}
		prev = r
	}
	return false
}

func (s *Scorer) hasSequence(folded string) bool {
	for _, w := range s.windows {
		if strings.Contains(folded, w) {
			return true
		}
	}
	return false
}

// windowsOf returns every forward 3-character window of the given strings.
func windowsOf(seqs []string) []string {
	var out []string
	for _, seq := range seqs {
		runes := []rune(strings.ToLower(seq))
		for i := 0; i+3 <= len(runes); i++ {
			out = append(out, string(runes[i:i+3]))
		}
	}
	return out
}

func indicator(ok bool) float64 {
	if ok {
		return 1.0
	}
	return 0.0
}
