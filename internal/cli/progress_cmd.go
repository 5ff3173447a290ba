package cli

import (
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/cli/formatter"
	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init <project>",
		Short: "Start tracking a project at the first module of the first phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.InitializeProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s is at %s\n",
				formatter.Bold(args[0]), formatter.StyleYellowBold.Render(string(app.Progress.GetCurrentPhase(args[0]))))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset <project>",
		Short: "Discard a project's progress and start over",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Progress.ResetProject(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Project %s reset\n", formatter.Bold(args[0]))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show the phase stepper for a project",
		Args:  cobra.ExactArgs(1),
	}
	mode := addCompletionFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		nav := app.Progress.Navigation(args[0], mode())
		fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNavigation(nav))
		return nil
	}
	return cmd
}

func newNextCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "next <project> <phase> <module>",
		Short: "Complete a module and unlock the one after it",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProject(app, args[0]); err != nil {
				return err
			}
			phase, module, err := parseModuleArgs(args[1], args[2])
			if err != nil {
				return err
			}
			if !domain.IsTerminalModule(module) && !app.Progress.IsModuleUnlocked(args[0], phase, module) {
				return fmt.Errorf("module %s/%s is still locked", phase, module)
			}
			res, err := app.Progress.Next(cmd.Context(), args[0], phase, module)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatNextResult(phase, module, res))
			return nil
		},
	}
}

func newFinishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finish <project> <phase>",
		Short: "Close a phase and move on to the next one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProject(app, args[0]); err != nil {
				return err
			}
			ph, err := parsePhaseArg(args[1])
			if err != nil {
				return err
			}
			if !app.Progress.IsPhaseUnlocked(args[0], ph.ID) {
				return fmt.Errorf("phase %s is locked", ph.ID)
			}
			if terminal := ph.TerminalModule(); !app.Progress.IsModuleUnlocked(args[0], ph.ID, terminal) {
				return fmt.Errorf("phase %s is not ready to finish: %s is still locked", ph.ID, terminal)
			}
			res, err := app.Progress.FinishPhase(cmd.Context(), args[0], ph.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFinishResult(ph.ID, res))
			return nil
		},
	}
}

func newUnlockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unlock",
		Short: "Unlock the next phase or module directly",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "phase <project> <current-phase>",
			Short: "Unlock the phase after current-phase",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireProject(app, args[0]); err != nil {
					return err
				}
				ph, err := parsePhaseArg(args[1])
				if err != nil {
					return err
				}
				if err := app.Progress.UnlockNextPhase(cmd.Context(), args[0], ph.ID); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNavigation(app.Progress.Navigation(args[0], "")))
				return nil
			},
		},
		&cobra.Command{
			Use:   "module <project> <phase> <current-module>",
			Short: "Unlock the module after current-module",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireProject(app, args[0]); err != nil {
					return err
				}
				phase, module, err := parseModuleArgs(args[1], args[2])
				if err != nil {
					return err
				}
				if err := app.Progress.UnlockNextModule(cmd.Context(), args[0], phase, module); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNavigation(app.Progress.Navigation(args[0], "")))
				return nil
			},
		},
	)
	return cmd
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <project> <phase> <module>",
		Short: "Mark a module completed",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProject(app, args[0]); err != nil {
				return err
			}
			phase, module, err := parseModuleArgs(args[1], args[2])
			if err != nil {
				return err
			}
			if err := app.Progress.CompleteModule(cmd.Context(), args[0], phase, module); err != nil {
				return err
			}
			if !app.Progress.IsModuleCompleted(args[0], phase, module) {
				return fmt.Errorf("module %s/%s is still locked", phase, module)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Completed %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(string(module)))
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check <project> <phase> [module]",
		Short: "Report whether a phase or module is unlocked and completed",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			out := cmd.OutOrStdout()
			if len(args) == 2 {
				ph, err := parsePhaseArg(args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "phase %s unlocked: %s\n", ph.ID, yesNo(app.Progress.IsPhaseUnlocked(id, ph.ID)))
				fmt.Fprintf(out, "current phase: %s\n", app.Progress.GetCurrentPhase(id))
				return nil
			}
			phase, module, err := parseModuleArgs(args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "module %s/%s unlocked: %s\n", phase, module, yesNo(app.Progress.IsModuleUnlocked(id, phase, module)))
			fmt.Fprintf(out, "module %s/%s completed: %s\n", phase, module, yesNo(app.Progress.IsModuleCompleted(id, phase, module)))
			return nil
		},
	}
}

func yesNo(v bool) string {
	if v {
		return formatter.StyleGreen.Render("yes")
	}
	return formatter.StyleRed.Render("no")
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := app.Progress.List()
			navs := make([]contract.Navigation, 0, len(ids))
			for _, id := range ids {
				navs = append(navs, app.Progress.Navigation(id, ""))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProjectList(navs))
			return nil
		},
	}
}

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <project>",
		Short: "Show recorded progress changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Progress.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(events))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Most recent entries to show (0 for all)")
	return cmd
}

func newPhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List every phase and its modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCatalog())
			return nil
		},
	}
}
