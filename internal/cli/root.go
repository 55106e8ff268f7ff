// Package cli implements the passcheck command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/password-analyzer/pkg/logger"
)

const envPrefix = "PASSCHECK"

// maxLength bounds generated passwords on the command line
const maxLength = 128

// Env holds defaults taken from PASSCHECK_* variables
type Env struct {
	Length  int  `envconfig:"LENGTH" default:"16"`
	Secure  bool `envconfig:"SECURE" default:"false"`
	NoColor bool `envconfig:"NO_COLOR" default:"false"`
}

// LoadEnv reads the PASSCHECK_* defaults
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

type app struct {
	env     Env
	verbose bool
	noColor bool
	log     *logger.Logger
}

// NewRootCmd builds a fresh command tree. Tests call it once per case.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	cmd := &cobra.Command{
		Use:   "passcheck",
		Short: "Check password strength and generate strong passwords",
		Long: `passcheck scores passwords against a weighted set of heuristics
(length, character variety, common passwords, repetition and sequences)
and generates random passwords that satisfy all of them.

Passwords are never stored or sent anywhere.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			env, err := LoadEnv()
			if err != nil {
				return err
			}
			a.env = env
			if env.NoColor {
				a.noColor = true
			}
			if a.verbose {
				a.log = logger.NewLogger(&logger.Config{
					Level:  logger.DebugLevel,
					Output: cmd.ErrOrStderr(),
				})
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable styled output")

	cmd.AddCommand(
		newScoreCmd(a),
		newGenerateCmd(a),
		newTipsCmd(a),
	)
	return cmd
}

// Execute runs the root command with the given streams
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}
