package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.trai.ch/lunaria/internal/app"
	"go.trai.ch/lunaria/internal/core/domain"
)

const shortHashLen = 7

func (c *CLI) newTrackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Resolve the latest tracked change of every configured file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, err := configPath(cmd)
			if err != nil {
				return err
			}
			force, err := cmd.Flags().GetBool("force")
			if err != nil {
				return err
			}
			parallelism, err := cmd.Flags().GetInt("parallelism")
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			progress, err := cmd.Flags().GetBool("progress")
			if err != nil {
				return err
			}
			if progress && c.progress != nil {
				c.progress.SetProgressOutput(cmd.ErrOrStderr())
			}

			results, err := c.app.Run(cmd.Context(), app.RunOptions{
				ConfigPath:  cfgPath,
				Force:       force,
				Parallelism: parallelism,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeTable(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Ignore cached checkpoints and walk full history")
	cmd.Flags().IntP("parallelism", "p", 0, "Concurrent history queries (default: number of CPUs, clamped to 2..32)")
	cmd.Flags().Bool("json", false, "Print results as JSON")
	cmd.Flags().Bool("progress", false, "Print per-file progress to stderr")

	return cmd
}

func writeJSON(w io.Writer, results []domain.ResolutionResult) error {
	if results == nil {
		results = []domain.ResolutionResult{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// writeTable prints one line per file: path, latest change and latest tracked change.
// A tracked change that differs from the latest change is highlighted.
func writeTable(w io.Writer, results []domain.ResolutionResult) error {
	renderer := lipgloss.NewRenderer(w)
	width := 0
	for _, res := range results {
		width = max(width, lipgloss.Width(res.Path))
	}

	pathStyle := renderer.NewStyle().Width(width)
	hashStyle := renderer.NewStyle().Foreground(lipgloss.Color("#667085"))
	staleStyle := renderer.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	for _, res := range results {
		tracked := hashStyle.Render(shortHash(res.LatestTrackedChange.Hash))
		if res.LatestTrackedChange.Hash != res.LatestChange.Hash {
			tracked = staleStyle.Render(shortHash(res.LatestTrackedChange.Hash))
		}
		if _, err := fmt.Fprintf(w, "%s  %s  %s\n",
			pathStyle.Render(res.Path),
			hashStyle.Render(shortHash(res.LatestChange.Hash)),
			tracked,
		); err != nil {
			return err
		}
	}
	return nil
}

func shortHash(hash string) string {
	if len(hash) > shortHashLen {
		return hash[:shortHashLen]
	}
	return hash
}
