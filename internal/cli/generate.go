package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/password-analyzer/internal/model"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

// clipboardWrite is replaced in tests
var clipboardWrite = clipboard.WriteAll

func newGenerateCmd(a *app) *cobra.Command {
	var (
		length      int
		toClipboard bool
		secure      bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a strong password",
		Long: `Generate a random password containing lowercase and uppercase letters,
digits and special characters. Lengths below 8 fall back to 12.

The default length comes from PASSCHECK_LENGTH (16 when unset).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("length") {
				length = a.env.Length
			}
			if !cmd.Flags().Changed("secure") {
				secure = a.env.Secure
			}
			if length > maxLength {
				return fmt.Errorf("length must be at most %d", maxLength)
			}

			var opts []strength.GeneratorOption
			if secure {
				opts = append(opts, strength.WithSecureRandom())
			}
			gen := strength.NewGenerator(opts...)

			password := gen.Generate(length)
			gp := &model.GeneratedPassword{
				Password:    password,
				Length:      len(password),
				Secure:      gen.Secure(),
				GeneratedAt: time.Now().UTC(),
				Result:      strength.Score(password),
			}
			a.log.Debug("password generated",
				"length", gp.Length,
				"secure_random", gp.Secure,
			)

			copied := false
			if toClipboard {
				if err := clipboardWrite(password); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
				copied = true
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, gp)
			}
			_, err := fmt.Fprintln(out, newRenderer(out, a.noColor).Generated(gp, copied))
			return err
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 16, "Password length")
	cmd.Flags().BoolVarP(&toClipboard, "copy", "c", false, "Copy the password to the clipboard")
	cmd.Flags().BoolVar(&secure, "secure", false, "Use the operating system's cryptographic random source")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
