package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/alexanderramin/phaseguide/internal/service"
)

const navProgressBarWidth = 10

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
)

// FormatNavigation renders the stepper for one project followed by the
// module list of its current phase.
func FormatNavigation(nav contract.Navigation) string {
	if !nav.Initialized {
		return fmt.Sprintf("Project %s has no progress yet. Run %s to start.\n",
			Bold(nav.ProjectID), StyleBlue.Render("phaseguide init "+nav.ProjectID))
	}

	var b strings.Builder
	headers := []string{"#", "PHASE", "STATE", "PROGRESS", "RESUME"}
	rows := make([][]string, 0, len(nav.Steps))
	for _, s := range nav.Steps {
		resume := Dim("--")
		if s.Resume != "" {
			resume = StyleFg.Render(domain.ModuleTitle(s.Resume))
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", s.Index+1)),
			StepStyle(s.State).Render(s.Title),
			StepBadge(s.State),
			RenderFraction(s.CompletedModules, s.TotalModules, navProgressBarWidth),
			resume,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	cur := nav.Current()
	b.WriteString("\n")
	b.WriteString(Header(cur.Title) + "\n")
	b.WriteString(FormatModules(cur))

	if nav.Mode == contract.CompletionByIndex {
		b.WriteString("\n" + Dim("phases before the current one are shown as completed") + "\n")
	}
	return RenderBox("Project "+nav.ProjectID, b.String())
}

// FormatModules renders the modules of one phase as a tree.
func FormatModules(step contract.PhaseStep) string {
	var b strings.Builder
	for i, m := range step.Modules {
		prefix := treeBranch
		if i == len(step.Modules)-1 {
			prefix = treeCorner
		}
		var line string
		switch {
		case m.Completed:
			line = StyleGreen.Render("✔ ") + Dim(m.Title)
		case m.Module == step.Resume:
			line = StyleYellowBold.Render("▶ " + m.Title)
		case m.Unlocked:
			line = StyleBlue.Render("○ ") + StyleFg.Render(m.Title)
		default:
			line = Dim("✕ " + m.Title)
		}
		b.WriteString(Dim(prefix) + line + "\n")
	}
	return b.String()
}

// FormatProjectList renders one summary row per project.
func FormatProjectList(navs []contract.Navigation) string {
	if len(navs) == 0 {
		return Dim("No projects yet.") + "\n"
	}
	headers := []string{"PROJECT", "CURRENT", "PHASES", "MODULES"}
	rows := make([][]string, 0, len(navs))
	for _, nav := range navs {
		var unlocked, done, total int
		for _, s := range nav.Steps {
			if s.Unlocked {
				unlocked++
			}
			done += s.CompletedModules
			total += s.TotalModules
		}
		cur := nav.Current()
		rows = append(rows, []string{
			Bold(nav.ProjectID),
			StepStyle(contract.StepActive).Render(cur.Title),
			StyleFg.Render(fmt.Sprintf("%d/%d", unlocked, len(nav.Steps))),
			RenderFraction(done, total, navProgressBarWidth),
		})
	}
	return RenderTable(headers, rows)
}

// FormatCatalog lists every phase and its modules in order.
func FormatCatalog() string {
	var b strings.Builder
	for i, ph := range domain.Phases() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", Dim(fmt.Sprintf("%d.", i+1)), Bold(ph.Title), Dim("("+string(ph.ID)+")")))
		for j, m := range ph.Modules {
			prefix := treeBranch
			if j == len(ph.Modules)-1 {
				prefix = treeCorner
			}
			b.WriteString("   " + Dim(prefix) + StyleFg.Render(domain.ModuleTitle(m)) + " " + Dim(string(m)) + "\n")
		}
	}
	return b.String()
}

// FormatHistory renders progress events oldest first.
func FormatHistory(events []*domain.ProgressEvent) string {
	if len(events) == 0 {
		return Dim("No history recorded.") + "\n"
	}
	headers := []string{"WHEN", "ACTION", "PHASE", "MODULE"}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		module := Dim("--")
		if e.Module != "" {
			module = StyleFg.Render(string(e.Module))
		}
		phase := Dim("--")
		if e.Phase != "" {
			phase = StyleFg.Render(string(e.Phase))
		}
		rows = append(rows, []string{
			Dim(e.OccurredAt.Local().Format(time.DateTime)),
			actionStyle(e.Action),
			phase,
			module,
		})
	}
	return RenderTable(headers, rows)
}

func actionStyle(a domain.ProgressAction) string {
	label := strings.ReplaceAll(string(a), "_", " ")
	switch a {
	case domain.ActionCompleteModule:
		return StyleGreen.Render(label)
	case domain.ActionUnlockPhase, domain.ActionUnlockModule:
		return StyleBlue.Render(label)
	case domain.ActionReset, domain.ActionImport:
		return StylePurple.Render(label)
	default:
		return StyleYellow.Render(label)
	}
}

// FormatNextResult describes what a next action did.
func FormatNextResult(phase domain.PhaseID, module domain.ModuleID, res *service.NextResult) string {
	if res.Suppressed {
		return StyleYellow.Render(fmt.Sprintf("%s closes the phase; use finish %s instead.", domain.ModuleTitle(module), phase)) + "\n"
	}
	var b strings.Builder
	if res.Completed != "" {
		b.WriteString(StyleGreen.Render("✔ ") + "Completed " + Bold(domain.ModuleTitle(res.Completed)) + "\n")
	}
	if res.Unlocked != "" {
		b.WriteString(StyleBlue.Render("○ ") + "Unlocked " + Bold(domain.ModuleTitle(res.Unlocked)) + "\n")
	}
	if b.Len() == 0 {
		b.WriteString(Dim("Nothing changed.") + "\n")
	}
	return b.String()
}

// FormatFinishResult describes what finishing a phase did.
func FormatFinishResult(phase domain.PhaseID, res *service.FinishResult) string {
	title := string(phase)
	if ph, ok := domain.LookupPhase(phase); ok {
		title = ph.Title
	}
	if !res.Changed {
		return Dim(fmt.Sprintf("%s was already finished.", title)) + "\n"
	}
	next, hasNext := domain.LookupPhase(res.NextPhase)
	if !res.Completed {
		if !hasNext {
			return Dim(fmt.Sprintf("%s is not finished yet.", title)) + "\n"
		}
		return "Moved on to " + StyleYellowBold.Render(next.Title) + Dim(fmt.Sprintf(" (%s is not finished yet)", title)) + "\n"
	}
	if !hasNext {
		return StyleGreen.Render("✔ ") + "Finished " + Bold(title) + ". All phases complete.\n"
	}
	return StyleGreen.Render("✔ ") + "Finished " + Bold(title) + ", moving on to " + StyleYellowBold.Render(next.Title) + "\n"
}
