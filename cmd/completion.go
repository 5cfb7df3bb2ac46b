package cmd

import (
	"os"
	"sort"

	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/theme"
	"github.com/spf13/cobra"
)

func themeNames() []string {
	names := make([]string, 0, len(theme.Presets))
	for name := range theme.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// generateCompletion writes a shell completion script for shell to
// stdout, following cobra's built-in generators (the teacher's own
// --generate-completion convention, cmd/completion.go).
func generateCompletion(cmd *cobra.Command, shell string) error {
	root := cmd.Root()
	switch shell {
	case "bash":
		return root.GenBashCompletion(os.Stdout)
	case "zsh":
		return root.GenZshCompletion(os.Stdout)
	case "fish":
		return root.GenFishCompletion(os.Stdout, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return errs.New(errs.KindInvalidInput, "unknown shell for --generate: "+shell+" (want bash, zsh, fish, or powershell)")
	}
}
