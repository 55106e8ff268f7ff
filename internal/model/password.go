package model

import (
	"time"

	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

// MaxPasswordBytes is the largest password accepted for scoring, in bytes
const MaxPasswordBytes = 1024

// ScoreRequest carries the password to evaluate. An empty password is valid.
// Its size is checked in bytes by the handler; validator's max counts runes.
type ScoreRequest struct {
	Password string `json:"password"`
}

// GenerateRequest asks for a new password. Zero selects the configured default.
type GenerateRequest struct {
	Length int `json:"length"`
}

// GeneratedPassword is the last password produced for a session together
// with its strength verdict.
type GeneratedPassword struct {
	Password    string           `json:"password"`
	Length      int              `json:"length"`
	Secure      bool             `json:"secure_random"`
	GeneratedAt time.Time        `json:"generated_at"`
	Result      *strength.Result `json:"result"`
}

// TipSection is one block of static password guidance
type TipSection struct {
	Title string   `json:"title"`
	Icon  string   `json:"icon"`
	Items []string `json:"items"`
}
