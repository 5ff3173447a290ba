package cli

import (
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/domain"
)

func parsePhaseArg(arg string) (domain.Phase, error) {
	id, err := domain.ParsePhaseID(arg)
	if err != nil {
		return domain.Phase{}, err
	}
	ph, _ := domain.LookupPhase(id)
	return ph, nil
}

func parseModuleArgs(phaseArg, moduleArg string) (domain.PhaseID, domain.ModuleID, error) {
	ph, err := parsePhaseArg(phaseArg)
	if err != nil {
		return "", "", err
	}
	m, err := ph.ParseModuleID(moduleArg)
	if err != nil {
		return "", "", err
	}
	return ph.ID, m, nil
}

// requireProject fails for projects that were never initialized, since
// every transition on them would silently do nothing.
func requireProject(app *App, projectID string) error {
	if _, ok := app.Progress.Get(projectID); !ok {
		return fmt.Errorf("project %s has no progress (run: phaseguide init %s)", projectID, projectID)
	}
	return nil
}
