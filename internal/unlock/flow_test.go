package unlock

import (
	"math/rand"
	"testing"

	"github.com/alexanderramin/phaseguide/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_UnlocksThenCompletes(t *testing.T) {
	s := initialized(t)

	res := Advance(s, domain.PhaseBRD, domain.ModuleOverview, DefaultRules())
	assert.False(t, res.Suppressed)
	assert.True(t, res.Changed())
	assert.Equal(t, domain.ModuleID("functional-requirements"), res.Unlocked)
	assert.True(t, res.Completed)
	assert.True(t, ModuleUnlocked(&res.State, domain.PhaseBRD, "functional-requirements"))
	assert.True(t, ModuleCompleted(&res.State, domain.PhaseBRD, domain.ModuleOverview))
}

func TestAdvance_SuppressedOnClosingModules(t *testing.T) {
	s := initialized(t)

	for _, m := range []domain.ModuleID{domain.ModuleConclusion, domain.ModuleFinalSteps} {
		res := Advance(s, domain.PhaseDeployment, m, DefaultRules())
		assert.True(t, res.Suppressed, "module=%s", m)
		assert.False(t, res.Changed(), "module=%s", m)
	}
}

func TestAdvance_LockedModule(t *testing.T) {
	s := initialized(t)

	res := Advance(s, domain.PhaseBRD, "user-stories", DefaultRules())
	assert.False(t, res.Changed())
	assert.Equal(t, s, res.State)
	assert.False(t, ModuleUnlocked(&res.State, domain.PhaseBRD, "acceptance-criteria"))

	res = Advance(s, domain.PhaseBRD, "user-stories", PermissiveRules())
	assert.Equal(t, domain.ModuleID("acceptance-criteria"), res.Unlocked)
	assert.True(t, res.Completed)
}

func TestAdvance_Repeat(t *testing.T) {
	s := initialized(t)
	first := Advance(s, domain.PhaseBRD, domain.ModuleOverview, DefaultRules())
	second := Advance(first.State, domain.PhaseBRD, domain.ModuleOverview, DefaultRules())

	assert.False(t, second.Changed())
	assert.Equal(t, first.State, second.State)
}

func TestFinishPhase_MovesToNextPhase(t *testing.T) {
	s := walkPhase(t, initialized(t), domain.PhaseBRD)

	res := FinishPhase(s, domain.PhaseBRD, DefaultRules())
	require.True(t, res.Changed)
	assert.True(t, res.Completed)
	assert.Equal(t, domain.PhaseUIUX, res.NextPhase)
	assert.Equal(t, domain.PhaseUIUX, res.State.CurrentPhase)
	assert.True(t, PhaseUnlocked(&res.State, domain.PhaseUIUX))
	assert.True(t, ModuleUnlocked(&res.State, domain.PhaseUIUX, domain.ModuleOverview))
	assert.True(t, PhaseFinished(&res.State, domain.PhaseBRD))
}

func TestFinishPhase_LastPhase(t *testing.T) {
	s := initialized(t)
	for _, id := range domain.PhaseIDs() {
		s = walkPhase(t, s, id)
		s = FinishPhase(s, id, DefaultRules()).State
	}

	assert.Equal(t, domain.PhaseDeployment, s.CurrentPhase)
	for _, id := range domain.PhaseIDs() {
		assert.True(t, PhaseFinished(&s, id), "phase=%s", id)
	}

	again := FinishPhase(s, domain.PhaseDeployment, DefaultRules())
	assert.False(t, again.Changed)
	assert.Empty(t, again.NextPhase)
}

func TestFinishPhase_LockedClosingModule(t *testing.T) {
	s := initialized(t)

	for _, phase := range []domain.PhaseID{domain.PhaseBRD, domain.PhaseTesting} {
		res := FinishPhase(s, phase, DefaultRules())
		assert.False(t, res.Changed, "phase=%s", phase)
		assert.False(t, res.Completed, "phase=%s", phase)
		assert.Equal(t, s, res.State, "phase=%s", phase)
	}

	res := FinishPhase(s, domain.PhaseTesting, PermissiveRules())
	assert.True(t, res.Completed)
	assert.Equal(t, domain.PhaseDeployment, res.State.CurrentPhase)
}

func TestFinishPhase_UnknownPhase(t *testing.T) {
	s := initialized(t)
	res := FinishPhase(s, "bogus", DefaultRules())
	assert.False(t, res.Changed)
	assert.Equal(t, s, res.State)
}

// walkPhase presses next through every module of phase up to its closing
// module, as a learner would.
func walkPhase(t *testing.T, s domain.ProjectProgress, phase domain.PhaseID) domain.ProjectProgress {
	t.Helper()
	ph, ok := domain.LookupPhase(phase)
	require.True(t, ok)
	for _, m := range ph.Modules {
		if domain.IsTerminalModule(m) {
			break
		}
		require.True(t, ModuleUnlocked(&s, phase, m), "phase=%s module=%s reachable", phase, m)
		s = Advance(s, phase, m, DefaultRules()).State
	}
	return s
}

// TestTransitions_Monotonic drives random event sequences and checks that
// unlocked phases and modules never shrink.
func TestTransitions_Monotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	phases := domain.Phases()

	for trial := 0; trial < 200; trial++ {
		s := initialized(t)
		for step := 0; step < 40; step++ {
			ph := phases[rng.Intn(len(phases))]
			m := ph.Modules[rng.Intn(len(ph.Modules))]
			before := s.Clone()

			switch rng.Intn(6) {
			case 0:
				s, _ = NextPhase(s, ph.ID)
			case 1:
				s, _ = NextModule(s, ph.ID, m)
			case 2:
				s, _ = Complete(s, ph.ID, m, DefaultRules())
			case 3:
				s = Advance(s, ph.ID, m, DefaultRules()).State
			case 4:
				s = FinishPhase(s, ph.ID, DefaultRules()).State
			case 5:
				s, _ = SetCurrentPhase(s, ph.ID)
			}

			for _, p := range before.UnlockedPhases {
				assert.True(t, s.HasPhase(p), "trial %d step %d: phase %s re-locked", trial, step, p)
			}
			for p, mods := range before.UnlockedModules {
				for _, mod := range mods {
					assert.True(t, s.HasUnlockedModule(p, mod),
						"trial %d step %d: module %s/%s re-locked", trial, step, p, mod)
				}
			}
			for p, mods := range s.CompletedModules {
				for _, mod := range mods {
					assert.True(t, s.HasUnlockedModule(p, mod),
						"trial %d step %d: %s/%s completed while locked", trial, step, p, mod)
				}
			}
		}
	}
}
