package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Read or change the current phase",
	}
	cmd.AddCommand(newPhaseGetCmd(app), newPhaseSetCmd(app))
	return cmd
}

func newPhaseGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <project>",
		Short: "Print the current phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), app.Progress.GetCurrentPhase(args[0]))
			return nil
		},
	}
}

func newPhaseSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <project> [phase]",
		Short: "Move to another phase (pick from unlocked phases when omitted)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := requireProject(app, id); err != nil {
				return err
			}

			var target string
			if len(args) == 2 {
				target = args[1]
			} else {
				if !app.interactive() {
					return errors.New("phase is required when not running in a terminal")
				}
				form := wizardSelectPhase(app.Progress.Navigation(id, ""), &target)
				if form == nil {
					return fmt.Errorf("project %s has no unlocked phases", id)
				}
				if err := form.Run(); err != nil {
					return fmt.Errorf("selecting phase: %w", err)
				}
			}

			ph, err := parsePhaseArg(target)
			if err != nil {
				return err
			}
			if !app.Progress.IsPhaseUnlocked(id, ph.ID) {
				return fmt.Errorf("phase %s is locked for project %s", ph.ID, id)
			}
			if err := app.Progress.SetCurrentPhase(cmd.Context(), id, ph.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Current phase: %s\n", formatter.StyleYellowBold.Render(ph.Title))
			return nil
		},
	}
}
