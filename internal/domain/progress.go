package domain

import "sort"

// ProjectProgress is the unlock and completion state of one guided project.
// Set-valued fields are slices kept in catalog order without duplicates.
type ProjectProgress struct {
	CurrentPhase     PhaseID                `json:"currentPhase"`
	UnlockedPhases   []PhaseID              `json:"unlockedPhases"`
	UnlockedModules  map[PhaseID][]ModuleID `json:"unlockedModules"`
	CompletedModules map[PhaseID][]ModuleID `json:"completedModules"`
}

// NewProjectProgress returns the starting state: first phase current and
// unlocked, its first module unlocked, nothing completed.
func NewProjectProgress() ProjectProgress {
	first := FirstPhase()
	p := ProjectProgress{
		CurrentPhase:     first,
		UnlockedPhases:   []PhaseID{first},
		UnlockedModules:  make(map[PhaseID][]ModuleID, len(catalog)),
		CompletedModules: make(map[PhaseID][]ModuleID, len(catalog)),
	}
	for _, ph := range catalog {
		p.UnlockedModules[ph.ID] = []ModuleID{}
		p.CompletedModules[ph.ID] = []ModuleID{}
	}
	p.UnlockedModules[first] = []ModuleID{ModuleOverview}
	return p
}

// Clone returns a deep copy.
func (p ProjectProgress) Clone() ProjectProgress {
	out := ProjectProgress{
		CurrentPhase:     p.CurrentPhase,
		UnlockedPhases:   append([]PhaseID{}, p.UnlockedPhases...),
		UnlockedModules:  cloneModuleSets(p.UnlockedModules),
		CompletedModules: cloneModuleSets(p.CompletedModules),
	}
	return out
}

func cloneModuleSets(in map[PhaseID][]ModuleID) map[PhaseID][]ModuleID {
	out := make(map[PhaseID][]ModuleID, len(in))
	for k, v := range in {
		out[k] = append([]ModuleID{}, v...)
	}
	return out
}

// Normalize fills in missing per-phase sets and puts every set into catalog
// order with duplicates removed. Identifiers not in the catalog are kept
// after known ones so persisted data is never dropped.
func (p *ProjectProgress) Normalize() {
	if p.UnlockedModules == nil {
		p.UnlockedModules = make(map[PhaseID][]ModuleID, len(catalog))
	}
	if p.CompletedModules == nil {
		p.CompletedModules = make(map[PhaseID][]ModuleID, len(catalog))
	}
	p.UnlockedPhases = orderedSet(p.UnlockedPhases, PhaseIndex)
	for _, ph := range catalog {
		if p.UnlockedModules[ph.ID] == nil {
			p.UnlockedModules[ph.ID] = []ModuleID{}
		}
		if p.CompletedModules[ph.ID] == nil {
			p.CompletedModules[ph.ID] = []ModuleID{}
		}
	}
	for id, mods := range p.UnlockedModules {
		p.UnlockedModules[id] = orderedSet(mods, moduleIndexer(id))
	}
	for id, mods := range p.CompletedModules {
		p.CompletedModules[id] = orderedSet(mods, moduleIndexer(id))
	}
}

// HasPhase reports whether phase is unlocked.
func (p *ProjectProgress) HasPhase(phase PhaseID) bool {
	return contains(p.UnlockedPhases, phase)
}

// HasUnlockedModule reports whether module is unlocked within phase.
func (p *ProjectProgress) HasUnlockedModule(phase PhaseID, module ModuleID) bool {
	return contains(p.UnlockedModules[phase], module)
}

// HasCompletedModule reports whether module is marked complete within phase.
func (p *ProjectProgress) HasCompletedModule(phase PhaseID, module ModuleID) bool {
	return contains(p.CompletedModules[phase], module)
}

// UnlockPhase adds phase to the unlocked set. It reports whether the set grew.
func (p *ProjectProgress) UnlockPhase(phase PhaseID) bool {
	var added bool
	p.UnlockedPhases, added = insertOrdered(p.UnlockedPhases, phase, PhaseIndex)
	return added
}

// UnlockModule adds module to the phase's unlocked set.
func (p *ProjectProgress) UnlockModule(phase PhaseID, module ModuleID) bool {
	if p.UnlockedModules == nil {
		p.UnlockedModules = make(map[PhaseID][]ModuleID)
	}
	var added bool
	p.UnlockedModules[phase], added = insertOrdered(p.UnlockedModules[phase], module, moduleIndexer(phase))
	return added
}

// CompleteModule adds module to the phase's completed set.
func (p *ProjectProgress) CompleteModule(phase PhaseID, module ModuleID) bool {
	if p.CompletedModules == nil {
		p.CompletedModules = make(map[PhaseID][]ModuleID)
	}
	var added bool
	p.CompletedModules[phase], added = insertOrdered(p.CompletedModules[phase], module, moduleIndexer(phase))
	return added
}

// CompletedCount returns how many catalog modules of phase are complete.
func (p *ProjectProgress) CompletedCount(phase PhaseID) int {
	ph, ok := LookupPhase(phase)
	if !ok {
		return 0
	}
	n := 0
	for _, m := range ph.Modules {
		if p.HasCompletedModule(phase, m) {
			n++
		}
	}
	return n
}

func moduleIndexer(phase PhaseID) func(ModuleID) int {
	ph, ok := LookupPhase(phase)
	if !ok {
		return func(ModuleID) int { return -1 }
	}
	return ph.ModuleIndex
}

func contains[T comparable](set []T, v T) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

// insertOrdered adds v to set unless present. Known values are placed by
// catalog index; values with index -1 go to the end.
func insertOrdered[T comparable](set []T, v T, index func(T) int) ([]T, bool) {
	if contains(set, v) {
		return set, false
	}
	out := append(append(make([]T, 0, len(set)+1), set...), v)
	sortByIndex(out, index)
	return out, true
}

func orderedSet[T comparable](set []T, index func(T) int) []T {
	out := make([]T, 0, len(set))
	for _, v := range set {
		if !contains(out, v) {
			out = append(out, v)
		}
	}
	sortByIndex(out, index)
	return out
}

func sortByIndex[T any](set []T, index func(T) int) {
	sort.SliceStable(set, func(i, j int) bool {
		a, b := index(set[i]), index(set[j])
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
}
