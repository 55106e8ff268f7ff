package strength

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	assert.Len(t, w, len(Criteria()))
	assert.InDelta(t, 1.20, w.Sum(), 1e-9)
	assert.Equal(t, 0.25, w[Length])
	assert.Equal(t, 0.10, w[Sequential])
}

func TestScore_Bounds(t *testing.T) {
	inputs := []string{
		"", "a", "aaaaaaaa", "password", "Password", "abcXYZ12!", "aaa111",
		"Tr0ub4dor&3", "correct horse battery staple", "ÄÖÜäöü", "\n\n\n",
		strings.Repeat("Zx9!", 50),
	}
	for _, in := range inputs {
		r := Score(in)
		assert.GreaterOrEqual(t, r.Score, 0, in)
		assert.LessOrEqual(t, r.Score, MaxScore, in)
		assert.GreaterOrEqual(t, r.NormalizedScore, 0.0, in)
		assert.LessOrEqual(t, r.NormalizedScore, 1.0, in)
		assert.Len(t, r.Details, len(Criteria()), in)
		for c, v := range r.Details {
			assert.True(t, v >= 0 && v <= 1, "%s: %s=%v", in, c, v)
		}
	}
}

func TestScore_Empty(t *testing.T) {
	r := Score("")
	require.NotNil(t, r)

	assert.Equal(t, 0.0, r.Details[Length])
	assert.Equal(t, 0.0, r.Details[Uppercase])
	assert.Equal(t, 0.0, r.Details[Lowercase])
	assert.Equal(t, 0.0, r.Details[Digits])
	assert.Equal(t, 0.0, r.Details[Special])
	assert.Equal(t, 1.0, r.Details[Common])
	assert.Equal(t, 1.0, r.Details[Repetition])
	assert.Equal(t, 1.0, r.Details[Sequential])

	// 0.15 + 0.10 + 0.10 = 0.35, and 1.75 rounds to 2
	assert.InDelta(t, 0.35, r.NormalizedScore, 1e-9)
	assert.Equal(t, 2, r.Score)
	assert.Equal(t, Weak, r.Strength)
	assert.Equal(t, []string{
		FeedbackTooShort,
		FeedbackMixedCase,
		FeedbackDigit,
		FeedbackSpecial,
	}, r.Feedback)
	assert.Equal(t, []string{IconTooShort, IconMixedCase, IconDigit, IconSpecial}, r.FeedbackIcons)
}

func TestScore_FeedbackIconsLineUp(t *testing.T) {
	icons := map[string]string{
		FeedbackTooShort:   IconTooShort,
		FeedbackMixedCase:  IconMixedCase,
		FeedbackDigit:      IconDigit,
		FeedbackSpecial:    IconSpecial,
		FeedbackCommon:     IconCommon,
		FeedbackRepetition: IconRepetition,
		FeedbackSequential: IconSequential,
	}
	for _, in := range []string{"", "password", "aaa111", "abcXYZ12!", "Kq8!Zm2#Lp9$Wt"} {
		r := Score(in)
		require.Len(t, r.FeedbackIcons, len(r.Feedback), in)
		for i, msg := range r.Feedback {
			assert.Equal(t, icons[msg], r.FeedbackIcons[i], "%q: %s", in, msg)
		}
	}
}

func TestScore_Repetition(t *testing.T) {
	r := Score("aaa111")
	assert.Equal(t, 0.0, r.Details[Repetition])
	assert.Contains(t, r.Feedback, FeedbackRepetition)
	assert.Equal(t, 1.0, r.Details[Sequential])
	assert.Equal(t, 3, r.Score)
	assert.Equal(t, Moderate, r.Strength)

	assert.Equal(t, 1.0, Score("aa1aa1").Details[Repetition])
	assert.Equal(t, 0.0, Score("x!!!y").Details[Repetition])
	assert.Equal(t, 1.0, Score("a\n\n\nb").Details[Repetition])
	assert.Equal(t, 0.0, Score("ééé").Details[Repetition])
}

func TestScore_Sequential(t *testing.T) {
	r := Score("abcXYZ12!")
	assert.Equal(t, 0.0, r.Details[Sequential])
	assert.Equal(t, 1.0, r.Details[Uppercase])
	assert.Equal(t, 1.0, r.Details[Lowercase])
	assert.Equal(t, 1.0, r.Details[Digits])
	assert.Equal(t, 1.0, r.Details[Special])
	assert.Equal(t, []string{FeedbackSequential}, r.Feedback)

	// Weighted sum exceeds 1.0 here and is clamped.
	assert.Equal(t, 1.0, r.NormalizedScore)
	assert.Equal(t, 5, r.Score)
	assert.Equal(t, Strong, r.Strength)

	assert.Equal(t, 0.0, Score("xXyZ789q").Details[Sequential])
	assert.Equal(t, 0.0, Score("QRSt").Details[Sequential], "case-insensitive")
	assert.Equal(t, 1.0, Score("cba").Details[Sequential], "reverse runs are not flagged")
	assert.Equal(t, 1.0, Score("321").Details[Sequential], "reverse runs are not flagged")
	assert.Equal(t, 1.0, Score("ab1bc2").Details[Sequential])
}

func TestScore_CommonPassword(t *testing.T) {
	for _, in := range []string{"password", "Password", "PASSWORD", "sUpErMaN"} {
		r := Score(in)
		assert.Equal(t, 0.0, r.Details[Common], in)
		assert.Contains(t, r.Feedback, FeedbackCommon, in)
	}

	r := Score("password1")
	assert.Equal(t, 1.0, r.Details[Common])
	assert.NotContains(t, r.Feedback, FeedbackCommon)
}

func TestScore_LengthCurve(t *testing.T) {
	assert.Equal(t, 0.0, Score("a").Details[Length])
	assert.InDelta(t, math.Log(10)/math.Log(20), Score("kq8!Zm2#Lp").Details[Length], 1e-12)
	assert.Equal(t, 1.0, Score(strings.Repeat("ab", 10)).Details[Length])
	assert.Equal(t, 1.0, Score(strings.Repeat("ab", 40)).Details[Length])

	// Length counts characters, not bytes.
	assert.Equal(t, Score("abcdefgh").Details[Length], Score("äöüßéèêë").Details[Length])
}

func TestScore_MixedCaseFeedbackIsShared(t *testing.T) {
	onlyLower := Score("qwmnzx7!pl")
	assert.Equal(t, 0.0, onlyLower.Details[Uppercase])
	assert.Equal(t, 1.0, onlyLower.Details[Lowercase])
	assert.Equal(t, []string{FeedbackMixedCase}, onlyLower.Feedback)

	neither := Score("7!7!9#2$")
	assert.Equal(t, 0.0, neither.Details[Uppercase])
	assert.Equal(t, 0.0, neither.Details[Lowercase])
	assert.Equal(t, []string{FeedbackMixedCase}, neither.Feedback)
}

func TestScore_SpecialSetIsLiteral(t *testing.T) {
	assert.Equal(t, 0.0, Score("Qwmnzx7?pl").Details[Special])
	assert.Equal(t, 0.0, Score("Qwmnzx7-pl").Details[Special])
	assert.Equal(t, 1.0, Score("Qwmnzx7^pl").Details[Special])
}

func TestScore_NonASCIIClasses(t *testing.T) {
	r := Score("ÄÖÜäöü١٢٣")
	assert.Equal(t, 0.0, r.Details[Uppercase])
	assert.Equal(t, 0.0, r.Details[Lowercase])
	assert.Equal(t, 0.0, r.Details[Digits])
}

func TestScore_Buckets(t *testing.T) {
	tests := []struct {
		score    int
		strength Strength
		tag      string
		message  string
	}{
		{0, Weak, "failure", "Weak Password"},
		{2, Weak, "failure", "Weak Password"},
		{3, Moderate, "warning", "Moderate Password"},
		{4, Strong, "success", "Strong Password!"},
		{5, Strong, "success", "Strong Password!"},
	}
	for _, tt := range tests {
		b := bucketFor(tt.score)
		assert.Equal(t, tt.strength, b.strength)
		assert.Equal(t, tt.tag, b.tag)
		assert.Equal(t, tt.message, b.message)
	}
}

func TestScore_HalfwayRoundsToEven(t *testing.T) {
	// single characters aggregate to exactly 0.5, so the raw score is 2.5
	for _, in := range []string{"a", "A", "1"} {
		r := Score(in)
		assert.Equal(t, 0.5, r.NormalizedScore, in)
		assert.Equal(t, 2, r.Score, in)
		assert.Equal(t, Weak, r.Strength, in)
	}

	// 0.9 * 5 is exactly 4.5 in float64
	s := NewScorer(WithWeights(Weights{Common: 0.9}))
	r := s.Score("")
	assert.Equal(t, 0.9, r.NormalizedScore)
	assert.Equal(t, 4, r.Score)
	assert.Equal(t, Strong, r.Strength)
}

func TestScore_StrongPassword(t *testing.T) {
	r := Score("Kq8!Zm2#Lp9$Wt")
	assert.Equal(t, Strong, r.Strength)
	assert.Equal(t, "✅", r.Emoji)
	assert.True(t, r.Passed())
	assert.Empty(t, r.Feedback)
}

func TestScore_Idempotent(t *testing.T) {
	for _, in := range []string{"", "aaa111", "Password", "Kq8!Zm2#Lp9$Wt"} {
		assert.Equal(t, Score(in), Score(in))
	}
}

func TestScore_AddingClassesNeverLowersScore(t *testing.T) {
	base := "qwmnzxpl"
	steps := []string{base, base + "K", base + "K7", base + "K7!"}
	prev := -1
	for _, p := range steps {
		s := Score(p).Score
		assert.GreaterOrEqual(t, s, prev, p)
		prev = s
	}
}

func TestNewScorer_Options(t *testing.T) {
	s := NewScorer(
		WithCommonPasswords([]string{"Hunter2"}),
		WithSequences([]string{"qwertyuiop", "xy"}),
	)

	r := s.Score("hunter2")
	assert.Equal(t, 0.0, r.Details[Common])
	assert.Equal(t, 1.0, s.Score("password").Details[Common])

	assert.Equal(t, 0.0, s.Score("zzWERzz").Details[Sequential])
	assert.Equal(t, 1.0, s.Score("abc").Details[Sequential])
	assert.Equal(t, 1.0, s.Score("xy").Details[Sequential])
}

func TestNewScorer_CustomWeightsClamp(t *testing.T) {
	w := DefaultWeights()
	w[Length] = 5
	s := NewScorer(WithWeights(w))

	// The scorer keeps its own copy.
	w[Length] = 0
	assert.Equal(t, 5.0, s.Weights()[Length])

	r := s.Score(strings.Repeat("q", 2) + "Zm2#Lp9$Wt7&")
	assert.Equal(t, 1.0, r.NormalizedScore)
	assert.Equal(t, 5, r.Score)
}

func TestNewScorer_MissingWeightCountsZero(t *testing.T) {
	s := NewScorer(WithWeights(Weights{Length: 1}))
	r := s.Score("")
	assert.Equal(t, 0.0, r.NormalizedScore)
	assert.Equal(t, 0, r.Score)
}
