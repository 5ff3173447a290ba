package domain

import (
	"fmt"
	"strings"
)

type PhaseID string

const (
	PhaseBRD             PhaseID = "brd"
	PhaseUIUX            PhaseID = "uiux"
	PhaseArchitectural   PhaseID = "architectural"
	PhaseCodeDevelopment PhaseID = "code-development"
	PhaseTesting         PhaseID = "testing"
	PhaseDeployment      PhaseID = "deployment"
)

type ModuleID string

const (
	ModuleOverview   ModuleID = "overview"
	ModuleConclusion ModuleID = "conclusion"
	ModuleFinalSteps ModuleID = "final-steps"
)

// Phase is one stage of a guided project together with its ordered modules.
type Phase struct {
	ID      PhaseID
	Title   string
	Modules []ModuleID
}

var catalog = []Phase{
	{
		ID:    PhaseBRD,
		Title: "BRD",
		Modules: []ModuleID{
			ModuleOverview, "functional-requirements", "non-functional-requirements",
			"user-stories", "acceptance-criteria", ModuleConclusion,
		},
	},
	{
		ID:    PhaseUIUX,
		Title: "UI/UX",
		Modules: []ModuleID{
			ModuleOverview, "user-research", "wireframes",
			"prototypes", "design-system", ModuleConclusion,
		},
	},
	{
		ID:    PhaseArchitectural,
		Title: "Architecture",
		Modules: []ModuleID{
			ModuleOverview, "system-design", "database-design",
			"api-design", "security-design", ModuleConclusion,
		},
	},
	{
		ID:    PhaseCodeDevelopment,
		Title: "Development",
		Modules: []ModuleID{
			ModuleOverview, "environment-setup", "backend-development",
			"frontend-development", "integration", ModuleConclusion,
		},
	},
	{
		ID:    PhaseTesting,
		Title: "Testing",
		Modules: []ModuleID{
			ModuleOverview, "unit-testing", "integration-testing",
			"e2e-testing", "performance-testing", ModuleConclusion,
		},
	},
	{
		ID:    PhaseDeployment,
		Title: "Deployment",
		Modules: []ModuleID{
			ModuleOverview, "infrastructure", "ci-cd", "monitoring", ModuleFinalSteps,
		},
	},
}

// Phases returns the fixed phase catalog in sequence order.
func Phases() []Phase {
	out := make([]Phase, len(catalog))
	for i, p := range catalog {
		out[i] = Phase{ID: p.ID, Title: p.Title, Modules: append([]ModuleID(nil), p.Modules...)}
	}
	return out
}

// PhaseIDs returns the phase identifiers in sequence order.
func PhaseIDs() []PhaseID {
	ids := make([]PhaseID, len(catalog))
	for i, p := range catalog {
		ids[i] = p.ID
	}
	return ids
}

// FirstPhase is the phase unlocked for every initialized project.
func FirstPhase() PhaseID { return catalog[0].ID }

// LastPhase is the final phase; nothing unlocks after it.
func LastPhase() PhaseID { return catalog[len(catalog)-1].ID }

// PhaseIndex returns the position of id in the sequence, or -1 if unknown.
func PhaseIndex(id PhaseID) int {
	for i, p := range catalog {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// LookupPhase returns the catalog entry for id.
func LookupPhase(id PhaseID) (Phase, bool) {
	i := PhaseIndex(id)
	if i < 0 {
		return Phase{}, false
	}
	return catalog[i], true
}

// IsValidPhase reports whether id is part of the catalog.
func IsValidPhase(id PhaseID) bool {
	return PhaseIndex(id) >= 0
}

// NextPhaseID returns the phase after id. ok is false for the last or an unknown phase.
func NextPhaseID(id PhaseID) (next PhaseID, ok bool) {
	i := PhaseIndex(id)
	if i < 0 || i == len(catalog)-1 {
		return "", false
	}
	return catalog[i+1].ID, true
}

// ParsePhaseID validates a user-supplied phase identifier. Matching is
// case-insensitive and also accepts the display title ("UI/UX").
func ParsePhaseID(s string) (PhaseID, error) {
	in := strings.TrimSpace(s)
	for _, p := range catalog {
		if strings.EqualFold(string(p.ID), in) || strings.EqualFold(p.Title, in) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q (expected one of %s)", s, joinPhaseIDs())
}

func joinPhaseIDs() string {
	parts := make([]string, len(catalog))
	for i, p := range catalog {
		parts[i] = string(p.ID)
	}
	return strings.Join(parts, ", ")
}

// ParseModuleID resolves s to one of the phase's modules by identifier or
// title, ignoring case.
func (p Phase) ParseModuleID(s string) (ModuleID, error) {
	in := strings.TrimSpace(s)
	names := make([]string, len(p.Modules))
	for i, m := range p.Modules {
		if strings.EqualFold(string(m), in) || strings.EqualFold(ModuleTitle(m), in) {
			return m, nil
		}
		names[i] = string(m)
	}
	return "", fmt.Errorf("unknown module %q in phase %s (expected one of %s)", s, p.ID, strings.Join(names, ", "))
}

// ModuleIndex returns the position of m within the phase, or -1.
func (p Phase) ModuleIndex(m ModuleID) int {
	for i, id := range p.Modules {
		if id == m {
			return i
		}
	}
	return -1
}

// HasModule reports whether m belongs to the phase.
func (p Phase) HasModule(m ModuleID) bool {
	return p.ModuleIndex(m) >= 0
}

// NextModule returns the module following m. ok is false when m is the last
// module or not part of the phase.
func (p Phase) NextModule(m ModuleID) (next ModuleID, ok bool) {
	i := p.ModuleIndex(m)
	if i < 0 || i == len(p.Modules)-1 {
		return "", false
	}
	return p.Modules[i+1], true
}

// TerminalModule is the closing screen of the phase.
func (p Phase) TerminalModule() ModuleID {
	return p.Modules[len(p.Modules)-1]
}

// IsTerminalModule reports whether m is one of the closing screens that carry
// their own phase-transition action instead of a plain next step.
func IsTerminalModule(m ModuleID) bool {
	return m == ModuleConclusion || m == ModuleFinalSteps
}

// ModuleTitle renders a module identifier for display:
// "functional-requirements" becomes "Functional Requirements".
func ModuleTitle(m ModuleID) string {
	words := strings.Split(string(m), "-")
	for i, w := range words {
		switch w {
		case "api", "ci", "cd", "e2e":
			words[i] = strings.ToUpper(w)
		default:
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	title := strings.Join(words, " ")
	return strings.ReplaceAll(title, "CI CD", "CI/CD")
}
