package cli

import (
	"github.com/alexanderramin/phaseguide/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds the services the commands run against.
type App struct {
	Progress service.ProgressService
	Transfer service.TransferService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// RunTour starts the tour program. Tests replace it to avoid a TTY.
	RunTour func(m tea.Model) error
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "phaseguide" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "phaseguide",
		Short:         "Track phase and module progress through guided projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newInitCmd(app),
		newResetCmd(app),
		newShowCmd(app),
		newNextCmd(app),
		newFinishCmd(app),
		newUnlockCmd(app),
		newCompleteCmd(app),
		newPhaseCmd(app),
		newCheckCmd(app),
		newListCmd(app),
		newHistoryCmd(app),
		newPhasesCmd(),
		newExportCmd(app),
		newImportCmd(app),
		newTourCmd(app),
	)

	return root
}
