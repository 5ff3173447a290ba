package cli

import (
	"fmt"

	"github.com/alexanderramin/phaseguide/internal/contract"
	"github.com/spf13/pflag"
)

// completionModeValue is a pflag.Value restricted to the known modes.
type completionModeValue contract.CompletionMode

var _ pflag.Value = (*completionModeValue)(nil)

func (v *completionModeValue) String() string { return string(*v) }
func (v *completionModeValue) Type() string   { return "mode" }

func (v *completionModeValue) Set(s string) error {
	switch m := contract.CompletionMode(s); m {
	case contract.CompletionFromModules, contract.CompletionByIndex:
		*v = completionModeValue(m)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", contract.CompletionFromModules, contract.CompletionByIndex)
	}
}

// addCompletionFlags registers --completion and its --index-completion
// shorthand on fs and returns a resolver for the chosen mode.
func addCompletionFlags(fs *pflag.FlagSet) func() contract.CompletionMode {
	mode := completionModeValue(contract.CompletionFromModules)
	var byIndex bool
	fs.Var(&mode, "completion", `how phases count as completed: "modules" or "index"`)
	fs.BoolVar(&byIndex, "index-completion", false, "treat every phase before the current one as completed")
	return func() contract.CompletionMode {
		if byIndex {
			return contract.CompletionByIndex
		}
		return contract.CompletionMode(mode)
	}
}
