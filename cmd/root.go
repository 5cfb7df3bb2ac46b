package cmd

import (
	"fmt"
	"os"

	"github.com/skardyy/mcat/internal/config"
	"github.com/spf13/cobra"
)

var flags pipelineFlags

var rootCmd = &cobra.Command{
	Use:   "mcat [file|url|dir]...",
	Short: "Render text, images, and video inline in the terminal",
	Long: `mcat classifies one or more inputs (files, URLs, or a single
directory), concatenates same-kind inputs, and renders the result to
the terminal: Markdown as styled ANSI, images via Kitty/iTerm2/Sixel/
ASCII, and video as a decoded frame sequence.

Examples:
  mcat README.md
  mcat --theme nord doc.md
  mcat photo.png --opts center=false,width=40
  mcat ls ./src`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	defaults := config.Load()

	addOutputFlag(rootCmd, &flags.Output, defaults.Output)
	addThemeFlag(rootCmd, &flags.Theme, defaults.Theme)
	addStyleHTMLFlag(rootCmd, &flags.StyleHTML)
	addHiddenFlag(rootCmd, &flags.Hidden)
	addHoriFlag(rootCmd, &flags.Hori)
	addSilentFlag(rootCmd, &flags.Silent)
	addReportFlag(rootCmd, &flags.Report)
	addEncoderForceFlags(rootCmd, &flags.Kitty, &flags.ITerm, &flags.Sixel, &flags.ASCII)
	addInlineShortcut(rootCmd, &flags.Inline)
	addOptsFlag(rootCmd, &flags.Opts)
	addSubcommandFlags(rootCmd, &flags)

	rootCmd.RegisterFlagCompletionFunc("theme", themeNameCompletion)
	rootCmd.RegisterFlagCompletionFunc("output", outputNameCompletion)
}

// Execute runs the root command and exits nonzero on failure, per §7's
// "irrecoverable errors exit 1" policy.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if flags.Generate != "" {
		return generateCompletion(cmd, flags.Generate)
	}
	if flags.DeleteImages {
		return clearTerminalImages()
	}
	if flags.FetchChromium {
		return fetchCompanion("chromium")
	}
	if flags.FetchFFmpeg {
		return fetchCompanion("ffmpeg")
	}
	if flags.FetchClean {
		return cleanCompanions()
	}

	if flags.Inline {
		flags.Output = "inline"
	}

	if len(args) >= 1 && args[0] == "ls" {
		dir := "."
		if len(args) >= 2 {
			dir = args[1]
		}
		return runLs(dir, flags)
	}

	if len(args) == 0 {
		return fmt.Errorf("provide at least one file, URL, or directory to render")
	}

	return runPipeline(args, flags)
}

func themeNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := themeNames()
	return names, cobra.ShellCompDirectiveNoFileComp
}

func outputNameCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"html", "md", "image", "video", "inline", "interactive"}, cobra.ShellCompDirectiveNoFileComp
}
