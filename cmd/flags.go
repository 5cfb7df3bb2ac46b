package cmd

import (
	"github.com/spf13/cobra"
)

// pipelineFlags holds pointers to the flag variables shared by the root
// command's render path, following the teacher's AddXFlag(cmd, dest)
// convention (cmd/flags.go) for wiring one flag at a time.
type pipelineFlags struct {
	Output    string
	Theme     string
	StyleHTML bool
	Hidden    bool
	Hori      bool
	Silent    bool
	Report    bool
	Kitty     bool
	ITerm     bool
	Sixel     bool
	ASCII     bool
	Inline    bool
	Opts      string

	DeleteImages  bool
	FetchChromium bool
	FetchFFmpeg   bool
	FetchClean    bool
	Generate      string
}

func addOutputFlag(cmd *cobra.Command, dest *string, defaultValue string) {
	cmd.Flags().StringVarP(dest, "output", "o", defaultValue,
		"Output format: html, md, image, video, inline, interactive")
}

func addThemeFlag(cmd *cobra.Command, dest *string, defaultValue string) {
	cmd.Flags().StringVarP(dest, "theme", "t", defaultValue, "Color theme")
}

func addStyleHTMLFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "style-html", "s", false, "Attach themed CSS to HTML output")
}

func addHiddenFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "hidden", "a", false, "Include hidden (dot) files")
}

func addHoriFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVar(dest, "hori", false, "Concatenate/tile images horizontally")
}

func addSilentFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVar(dest, "silent", false, "Suppress stderr diagnostics")
}

func addReportFlag(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVar(dest, "report", false, "Print pipeline timing/encoder diagnostics")
}

func addEncoderForceFlags(cmd *cobra.Command, kitty, iterm, sixel, ascii *bool) {
	cmd.Flags().BoolVar(kitty, "kitty", false, "Force the Kitty graphics protocol")
	cmd.Flags().BoolVar(iterm, "iterm", false, "Force the iTerm2 inline protocol")
	cmd.Flags().BoolVar(sixel, "sixel", false, "Force the Sixel protocol")
	cmd.Flags().BoolVar(ascii, "ascii", false, "Force the ASCII fallback encoder")
}

func addInlineShortcut(cmd *cobra.Command, dest *bool) {
	cmd.Flags().BoolVarP(dest, "inline", "i", false, "Shortcut for --output inline")
}

func addOptsFlag(cmd *cobra.Command, dest *string) {
	cmd.Flags().StringVar(dest, "opts", "", `Comma-separated key=value overrides (center,width,height,scale,spx,sc,inline,zoom,x,y)`)
}

func addSubcommandFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().BoolVar(&f.DeleteImages, "delete-images", false, "Clear all images from the terminal and exit")
	cmd.Flags().BoolVar(&f.FetchChromium, "fetch-chromium", false, "Download the headless-browser companion binary and exit")
	cmd.Flags().BoolVar(&f.FetchFFmpeg, "fetch-ffmpeg", false, "Download the ffmpeg companion binary and exit")
	cmd.Flags().BoolVar(&f.FetchClean, "fetch-clean", false, "Remove downloaded companion binaries and exit")
	cmd.Flags().StringVar(&f.Generate, "generate", "", "Generate a shell completion script: bash, zsh, fish, powershell")
}
