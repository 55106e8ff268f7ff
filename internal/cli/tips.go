package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/password-analyzer/internal/content"
)

func newTipsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Show password security best practices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintln(out, newRenderer(out, a.noColor).Tips(content.Tips()))
			return err
		},
	}
}
