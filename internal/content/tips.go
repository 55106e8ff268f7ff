// Package content holds static guidance shown next to the analyzer.
package content

import "github.com/jwalitptl/password-analyzer/internal/model"

// NoFeedbackMessage is shown when a password triggers no suggestions
const NoFeedbackMessage = "Excellent! Your password meets all security criteria."

// Tips returns the password security best practices.
func Tips() []model.TipSection {
	return []model.TipSection{
		{
			Title: "Creating Strong Passwords",
			Icon:  "🛡️",
			Items: []string{
				"Use at least 12 characters - the more characters, the better",
				"Include a mix of uppercase and lowercase letters, numbers, and symbols",
				"Avoid using easily guessable information (birthdays, names, etc.)",
				"Don't use the same password for multiple accounts",
				"Consider using a passphrase - a sequence of random words with numbers and symbols",
			},
		},
		{
			Title: "Managing Your Passwords",
			Icon:  "🔒",
			Items: []string{
				"Use a password manager to store and generate unique passwords",
				"Enable two-factor authentication (2FA) whenever possible",
				"Change passwords regularly, especially for critical accounts",
				"Never share your passwords with others",
				"Check if your accounts have been compromised on sites like Have I Been Pwned",
			},
		},
		{
			Title: "Common Password Mistakes",
			Icon:  "⚠️",
			Items: []string{
				"Using personal information (names, birthdays, etc.)",
				"Using common words or phrases (\"password\", \"qwerty\", etc.)",
				"Using sequential patterns (\"123456\", \"abcdef\", etc.)",
				"Using the same password across multiple sites",
				"Writing passwords down on paper or in unencrypted files",
			},
		},
	}
}
