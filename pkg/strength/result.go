package strength

// Strength is the three-level bucket derived from the integer score
type Strength string

const (
	Weak     Strength = "Weak"
	Moderate Strength = "Moderate"
	Strong   Strength = "Strong"
)

// Details holds the normalized sub-score of every criterion.
type Details map[Criterion]float64

// Result is the verdict returned for a single password. FeedbackIcons
// holds one icon per Feedback entry, index for index.
type Result struct {
	Score           int      `json:"score"`
	NormalizedScore float64  `json:"normalized_score"`
	Strength        Strength `json:"strength"`
	Message         string   `json:"message"`
	Emoji           string   `json:"emoji"`
	Tag             string   `json:"tag"`
	Feedback        []string `json:"feedback"`
	FeedbackIcons   []string `json:"feedback_icons"`
	Details         Details  `json:"details"`
}

// MaxScore is the upper bound of Result.Score
const MaxScore = 5

// Feedback messages, in the order they can appear.
const (
	FeedbackTooShort   = "Password should be at least 8 characters long."
	FeedbackMixedCase  = "Include both uppercase and lowercase letters."
	FeedbackDigit      = "Add at least one number (0-9)."
	FeedbackSpecial    = "Include at least one special character (!@#$%^&*)."
	FeedbackCommon     = "This is a commonly used password and easy to guess."
	FeedbackRepetition = "Avoid repetitive characters (e.g., 'aaa', '111')."
	FeedbackSequential = "Avoid sequential characters (e.g., 'abc', '123')."
)

// Icons shown next to each feedback message
const (
	IconTooShort   = "📏"
	IconMixedCase  = "🔤"
	IconDigit      = "🔢"
	IconSpecial    = "🔣"
	IconCommon     = "⚠️"
	IconRepetition = "🔁"
	IconSequential = "📊"
)

type bucket struct {
	strength Strength
	message  string
	emoji    string
	tag      string
}

func bucketFor(score int) bucket {
	switch {
	case score >= 4:
		return bucket{Strong, "Strong Password!", "✅", "success"}
	case score >= 3:
		return bucket{Moderate, "Moderate Password", "⚠️", "warning"}
	default:
		return bucket{Weak, "Weak Password", "❌", "failure"}
	}
}

// Passed reports whether the password met every criterion that produces feedback.
func (r *Result) Passed() bool {
	return len(r.Feedback) == 0
}
