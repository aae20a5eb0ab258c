package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/fieldcheck/pkg/logger"
)

func newColorCmd(cfg Config) *cobra.Command {
	return &cobra.Command{
		Use:   "color NAME...",
		Short: "Print the console color derived from each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			renderer := lipgloss.NewRenderer(out)
			if cfg.NoColor {
				renderer.SetColorProfile(termenv.Ascii)
			}
			for _, name := range args {
				color := logger.ColorFromName(name)
				style := renderer.NewStyle().Foreground(lipgloss.Color(color))
				fmt.Fprintf(out, "%s %s\n", color, style.Render("["+name+"]"))
			}
			return nil
		},
	}
}
