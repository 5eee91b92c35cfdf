package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/same/internal/app"
	"go.trai.ch/same/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <target>",
		Short: "Run a target across the workspace graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			topological, _ := cmd.Flags().GetBool("topological")
			to, _ := cmd.Flags().GetStringSlice("to")
			workspaces, _ := cmd.Flags().GetStringSlice("workspace")
			inheritStdio, _ := cmd.Flags().GetBool("inherit-stdio")
			watch, _ := cmd.Flags().GetBool("watch")
			affectedFrom, _ := cmd.Flags().GetString("affected")
			affectedTo, _ := cmd.Flags().GetString("affected-to")

			mode := domain.ModeParallel
			if topological {
				mode = domain.ModeTopological
			}

			stdio := domain.StdioCapture
			if inheritStdio {
				stdio = domain.StdioInherit
			}

			var affected *domain.AffectedRange
			if affectedFrom != "" {
				affected = &domain.AffectedRange{Rev1: affectedFrom, Rev2: affectedTo}
			}

			return c.app.Run(cmd.Context(), args[0], app.RunOptions{
				Mode:       mode,
				Force:      noCache,
				Affected:   affected,
				Stdio:      stdio,
				To:         to,
				Workspaces: workspaces,
				Watch:      watch,
			})
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the cache and force execution")
	cmd.Flags().Bool("topological", false, "Run in dependency order instead of all at once")
	cmd.Flags().StringSlice("to", nil, "Topological mode: resolve the dependency closure of these workspaces")
	cmd.Flags().StringSlice("workspace", nil, "Parallel mode: restrict the run to these workspaces")
	cmd.Flags().Bool("inherit-stdio", false, "Stream child process stdio directly instead of capturing it")
	cmd.Flags().Bool("watch", false, "Keep running, rescheduling affected workspaces on source changes")
	cmd.Flags().String("affected", "", "Only run workspaces affected since this revision")
	cmd.Flags().String("affected-to", "", "End revision for --affected (defaults to the working tree)")
	return cmd
}
