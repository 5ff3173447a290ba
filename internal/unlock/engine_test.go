package unlock

import (
	"testing"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initialized(t *testing.T) domain.ProjectProgress {
	t.Helper()
	s, changed := Initialize(nil)
	require.True(t, changed)
	return s
}

func TestInitialize_FreshProject(t *testing.T) {
	s := initialized(t)

	assert.True(t, PhaseUnlocked(&s, domain.PhaseBRD))
	for _, id := range domain.PhaseIDs()[1:] {
		assert.False(t, PhaseUnlocked(&s, id), "phase=%s should be locked", id)
	}
	assert.True(t, ModuleUnlocked(&s, domain.PhaseBRD, domain.ModuleOverview))
	assert.False(t, ModuleUnlocked(&s, domain.PhaseBRD, "functional-requirements"))
	assert.Equal(t, domain.PhaseBRD, CurrentPhase(&s))
}

func TestInitialize_ValidStateIsNoop(t *testing.T) {
	s := initialized(t)
	s, _ = NextModule(s, domain.PhaseBRD, domain.ModuleOverview)

	again, changed := Initialize(&s)
	assert.False(t, changed)
	assert.Empty(t, cmp.Diff(s, again))
}

func TestInitialize_MissingFirstPhaseResets(t *testing.T) {
	corrupt := domain.ProjectProgress{
		CurrentPhase:   domain.PhaseTesting,
		UnlockedPhases: []domain.PhaseID{domain.PhaseTesting},
		UnlockedModules: map[domain.PhaseID][]domain.ModuleID{
			domain.PhaseTesting: {domain.ModuleOverview, "unit-testing"},
		},
	}

	reset, changed := Initialize(&corrupt)
	assert.True(t, changed)
	assert.Empty(t, cmp.Diff(domain.NewProjectProgress(), reset))
}

func TestNextPhase_UnlocksFollowingPhase(t *testing.T) {
	s := initialized(t)

	next, changed := NextPhase(s, domain.PhaseBRD)
	require.True(t, changed)
	assert.True(t, PhaseUnlocked(&next, domain.PhaseUIUX))
	assert.True(t, ModuleUnlocked(&next, domain.PhaseUIUX, domain.ModuleOverview))
	assert.False(t, PhaseUnlocked(&next, domain.PhaseArchitectural))
	assert.False(t, PhaseUnlocked(&s, domain.PhaseUIUX), "input must not be mutated")
}

func TestNextPhase_IdempotentAtLastPhase(t *testing.T) {
	s := initialized(t)
	s.CurrentPhase = domain.PhaseDeployment

	once, changed := NextPhase(s, domain.PhaseDeployment)
	assert.False(t, changed)
	twice, changed := NextPhase(once, domain.PhaseDeployment)
	assert.False(t, changed)

	assert.Empty(t, cmp.Diff(once, twice))
	assert.Equal(t, s.UnlockedPhases, twice.UnlockedPhases)
}

func TestNextPhase_UnknownPhaseIsNoop(t *testing.T) {
	s := initialized(t)
	out, changed := NextPhase(s, "marketing")
	assert.False(t, changed)
	assert.Empty(t, cmp.Diff(s, out))
}

func TestNextPhase_ReentryKeepsUnlockedModules(t *testing.T) {
	s := initialized(t)
	s, _ = NextPhase(s, domain.PhaseBRD)
	s, _ = NextModule(s, domain.PhaseUIUX, domain.ModuleOverview)
	s, _ = NextModule(s, domain.PhaseUIUX, "user-research")

	again, changed := NextPhase(s, domain.PhaseBRD)
	assert.False(t, changed)
	assert.Equal(t,
		[]domain.ModuleID{domain.ModuleOverview, "user-research", "wireframes"},
		again.UnlockedModules[domain.PhaseUIUX])
}

func TestNextModule_UnlocksImmediateSuccessor(t *testing.T) {
	for _, ph := range domain.Phases() {
		for i, m := range ph.Modules {
			s := initialized(t)
			out, changed := NextModule(s, ph.ID, m)

			if i == len(ph.Modules)-1 {
				assert.False(t, changed, "phase=%s module=%s is last", ph.ID, m)
				assert.Empty(t, cmp.Diff(s, out))
				continue
			}
			want := ph.Modules[i+1]
			assert.True(t, ModuleUnlocked(&out, ph.ID, want), "phase=%s after %s", ph.ID, m)

			added := len(out.UnlockedModules[ph.ID]) - len(s.UnlockedModules[ph.ID])
			assert.Equal(t, 1, added, "exactly one module unlocked: phase=%s after %s", ph.ID, m)
		}
	}
}

func TestNextModule_Scenario(t *testing.T) {
	s := initialized(t)
	s, changed := NextModule(s, domain.PhaseBRD, domain.ModuleOverview)
	require.True(t, changed)
	assert.True(t, ModuleUnlocked(&s, domain.PhaseBRD, "functional-requirements"))
}

func TestNextModule_UnknownModuleOrPhase(t *testing.T) {
	s := initialized(t)

	_, changed := NextModule(s, domain.PhaseBRD, "bogus")
	assert.False(t, changed)
	_, changed = NextModule(s, "bogus", domain.ModuleOverview)
	assert.False(t, changed)
}

func TestComplete_SetSemantics(t *testing.T) {
	s := initialized(t)

	s, changed := Complete(s, domain.PhaseBRD, domain.ModuleOverview, DefaultRules())
	require.True(t, changed)
	s, changed = Complete(s, domain.PhaseBRD, domain.ModuleOverview, DefaultRules())
	assert.False(t, changed)

	assert.Equal(t, []domain.ModuleID{domain.ModuleOverview}, s.CompletedModules[domain.PhaseBRD])
}

func TestComplete_LockedModule(t *testing.T) {
	s := initialized(t)

	out, changed := Complete(s, domain.PhaseBRD, "user-stories", DefaultRules())
	assert.False(t, changed, "default rules reject completing a locked module")
	assert.False(t, ModuleCompleted(&out, domain.PhaseBRD, "user-stories"))

	out, changed = Complete(s, domain.PhaseBRD, "user-stories", PermissiveRules())
	assert.True(t, changed, "permissive rules accept it")
	assert.True(t, ModuleCompleted(&out, domain.PhaseBRD, "user-stories"))
}

func TestComplete_NonexistentModule(t *testing.T) {
	s := initialized(t)
	s.UnlockModule(domain.PhaseBRD, "ghost")

	_, changed := Complete(s, domain.PhaseBRD, "ghost", DefaultRules())
	assert.False(t, changed)
	_, changed = Complete(s, "ghost-phase", domain.ModuleOverview, PermissiveRules())
	assert.False(t, changed)
}

func TestSetCurrentPhase(t *testing.T) {
	s := initialized(t)

	out, changed := SetCurrentPhase(s, domain.PhaseTesting)
	assert.True(t, changed, "no unlock check")
	assert.Equal(t, domain.PhaseTesting, out.CurrentPhase)

	_, changed = SetCurrentPhase(out, domain.PhaseTesting)
	assert.False(t, changed)
	_, changed = SetCurrentPhase(out, "bogus")
	assert.False(t, changed)
}

func TestQueries_NilState(t *testing.T) {
	assert.False(t, PhaseUnlocked(nil, domain.PhaseBRD))
	assert.False(t, ModuleUnlocked(nil, domain.PhaseBRD, domain.ModuleOverview))
	assert.False(t, ModuleCompleted(nil, domain.PhaseBRD, domain.ModuleOverview))
	assert.False(t, PhaseFinished(nil, domain.PhaseBRD))
	assert.Equal(t, domain.PhaseBRD, CurrentPhase(nil))
}
