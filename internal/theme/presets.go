package theme

import (
	"strconv"
	"strings"
)

// PresetNames defines the display/lookup order of the built-in themes,
// matching spec.md §6's --theme enum.
var PresetNames = []string{
	"dark", "light", "catppuccin", "nord", "monokai", "dracula",
	"gruvbox", "one_dark", "solarized", "tokyo_night",
}

// Presets holds every built-in Palette, keyed by name.
var Presets = map[string]Palette{
	"dark":        darkPalette(),
	"light":       lightPalette(),
	"catppuccin":  catppuccinPalette(),
	"nord":        nordPalette(),
	"monokai":     monokaiPalette(),
	"dracula":     draculaPalette(),
	"gruvbox":     gruvboxPalette(),
	"one_dark":    oneDarkPalette(),
	"solarized":   solarizedPalette(),
	"tokyo_night": tokyoNightPalette(),
}

// Get returns a built-in palette by name, or (zero, false) if unknown.
func Get(name string) (Palette, bool) {
	p, ok := Presets[name]
	return p, ok
}

// rgb parses a literal "#rrggbb" hex color. Panics on malformed input,
// which would only ever happen from a typo in this file's own literals.
func rgb(hexStr string) RGB {
	v, err := strconv.ParseUint(strings.TrimPrefix(hexStr, "#"), 16, 32)
	if err != nil {
		panic("theme: invalid hex literal " + hexStr)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// gruvbox re-expresses internal/ui/theme_presets.go's gruvbox Config
// (green/aqua/red/yellow/gray/foreground/purple) as a full 11-role
// palette with dark background/surface/border/guide tones added.
func gruvboxPalette() Palette {
	return NewPalette("gruvbox",
		map[Role]RGB{
			RoleKeyword:    rgb("#fb4934"),
			RoleFunction:   rgb("#b8bb26"),
			RoleString:     rgb("#fabd2f"),
			RoleModule:     rgb("#83a598"),
			RoleConstant:   rgb("#d3869b"),
			RoleComment:    rgb("#928374"),
			RoleForeground: rgb("#ebdbb2"),
			RoleGuide:      rgb("#7c6f64"),
			RoleBackground: rgb("#282828"),
			RoleSurface:    rgb("#3c3836"),
			RoleBorder:     rgb("#504945"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#fb4934"), BasicGreen: rgb("#b8bb26"), BasicBlue: rgb("#83a598"),
			BasicCyan: rgb("#8ec07c"), BasicMagenta: rgb("#d3869b"), BasicYellow: rgb("#fabd2f"),
			BasicWhite: rgb("#ebdbb2"), BasicBlack: rgb("#282828"),
		})
}

// dracula re-expresses internal/ui/theme_presets.go's dracula Config.
func draculaPalette() Palette {
	return NewPalette("dracula",
		map[Role]RGB{
			RoleKeyword:    rgb("#ff79c6"),
			RoleFunction:   rgb("#50fa7b"),
			RoleString:     rgb("#f1fa8c"),
			RoleModule:     rgb("#8be9fd"),
			RoleConstant:   rgb("#bd93f9"),
			RoleComment:    rgb("#6272a4"),
			RoleForeground: rgb("#f8f8f2"),
			RoleGuide:      rgb("#6272a4"),
			RoleBackground: rgb("#282a36"),
			RoleSurface:    rgb("#343746"),
			RoleBorder:     rgb("#44475a"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#ff5555"), BasicGreen: rgb("#50fa7b"), BasicBlue: rgb("#8be9fd"),
			BasicCyan: rgb("#8be9fd"), BasicMagenta: rgb("#ff79c6"), BasicYellow: rgb("#f1fa8c"),
			BasicWhite: rgb("#f8f8f2"), BasicBlack: rgb("#282a36"),
		})
}

// nord re-expresses internal/ui/theme_presets.go's nord Config.
func nordPalette() Palette {
	return NewPalette("nord",
		map[Role]RGB{
			RoleKeyword:    rgb("#81a1c1"),
			RoleFunction:   rgb("#88c0d0"),
			RoleString:     rgb("#a3be8c"),
			RoleModule:     rgb("#8fbcbb"),
			RoleConstant:   rgb("#b48ead"),
			RoleComment:    rgb("#4c566a"),
			RoleForeground: rgb("#eceff4"),
			RoleGuide:      rgb("#4c566a"),
			RoleBackground: rgb("#2e3440"),
			RoleSurface:    rgb("#3b4252"),
			RoleBorder:     rgb("#434c5e"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#bf616a"), BasicGreen: rgb("#a3be8c"), BasicBlue: rgb("#81a1c1"),
			BasicCyan: rgb("#88c0d0"), BasicMagenta: rgb("#b48ead"), BasicYellow: rgb("#ebcb8b"),
			BasicWhite: rgb("#e5e9f0"), BasicBlack: rgb("#2e3440"),
		})
}

// solarized (dark variant) re-expresses internal/ui/theme_presets.go's
// solarized Config.
func solarizedPalette() Palette {
	return NewPalette("solarized",
		map[Role]RGB{
			RoleKeyword:    rgb("#859900"),
			RoleFunction:   rgb("#268bd2"),
			RoleString:     rgb("#2aa198"),
			RoleModule:     rgb("#b58900"),
			RoleConstant:   rgb("#d33682"),
			RoleComment:    rgb("#586e75"),
			RoleForeground: rgb("#839496"),
			RoleGuide:      rgb("#586e75"),
			RoleBackground: rgb("#002b36"),
			RoleSurface:    rgb("#073642"),
			RoleBorder:     rgb("#586e75"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#dc322f"), BasicGreen: rgb("#859900"), BasicBlue: rgb("#268bd2"),
			BasicCyan: rgb("#2aa198"), BasicMagenta: rgb("#d33682"), BasicYellow: rgb("#b58900"),
			BasicWhite: rgb("#eee8d5"), BasicBlack: rgb("#002b36"),
		})
}

// monokai re-expresses internal/ui/highlight.go's chosen chroma style
// name ("monokai") and internal/ui/theme_presets.go's monokai Config.
func monokaiPalette() Palette {
	return NewPalette("monokai",
		map[Role]RGB{
			RoleKeyword:    rgb("#f92672"),
			RoleFunction:   rgb("#a6e22e"),
			RoleString:     rgb("#e6db74"),
			RoleModule:     rgb("#66d9ef"),
			RoleConstant:   rgb("#ae81ff"),
			RoleComment:    rgb("#75715e"),
			RoleForeground: rgb("#f8f8f2"),
			RoleGuide:      rgb("#75715e"),
			RoleBackground: rgb("#272822"),
			RoleSurface:    rgb("#3e3d32"),
			RoleBorder:     rgb("#49483e"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#f92672"), BasicGreen: rgb("#a6e22e"), BasicBlue: rgb("#66d9ef"),
			BasicCyan: rgb("#66d9ef"), BasicMagenta: rgb("#ae81ff"), BasicYellow: rgb("#e6db74"),
			BasicWhite: rgb("#f8f8f2"), BasicBlack: rgb("#272822"),
		})
}

// dark is the module's own default: a neutral desaturated dark theme,
// not carried over from the teacher (which defaults to gruvbox) since
// spec.md §6 names "dark" as the module's own default separately from
// gruvbox in the theme enum.
func darkPalette() Palette {
	return NewPalette("dark",
		map[Role]RGB{
			RoleKeyword:    rgb("#569cd6"),
			RoleFunction:   rgb("#dcdcaa"),
			RoleString:     rgb("#ce9178"),
			RoleModule:     rgb("#4ec9b0"),
			RoleConstant:   rgb("#b5cea8"),
			RoleComment:    rgb("#6a9955"),
			RoleForeground: rgb("#d4d4d4"),
			RoleGuide:      rgb("#808080"),
			RoleBackground: rgb("#1e1e1e"),
			RoleSurface:    rgb("#2d2d2d"),
			RoleBorder:     rgb("#3c3c3c"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#f44747"), BasicGreen: rgb("#6a9955"), BasicBlue: rgb("#569cd6"),
			BasicCyan: rgb("#4ec9b0"), BasicMagenta: rgb("#c586c0"), BasicYellow: rgb("#dcdcaa"),
			BasicWhite: rgb("#d4d4d4"), BasicBlack: rgb("#1e1e1e"),
		})
}

func lightPalette() Palette {
	return NewPalette("light",
		map[Role]RGB{
			RoleKeyword:    rgb("#d73a49"),
			RoleFunction:   rgb("#6f42c1"),
			RoleString:     rgb("#032f62"),
			RoleModule:     rgb("#005cc5"),
			RoleConstant:   rgb("#005cc5"),
			RoleComment:    rgb("#6a737d"),
			RoleForeground: rgb("#24292e"),
			RoleGuide:      rgb("#959da5"),
			RoleBackground: rgb("#ffffff"),
			RoleSurface:    rgb("#f6f8fa"),
			RoleBorder:     rgb("#d1d5da"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#d73a49"), BasicGreen: rgb("#22863a"), BasicBlue: rgb("#005cc5"),
			BasicCyan: rgb("#0598bc"), BasicMagenta: rgb("#6f42c1"), BasicYellow: rgb("#b08800"),
			BasicWhite: rgb("#24292e"), BasicBlack: rgb("#ffffff"),
		})
}

func catppuccinPalette() Palette {
	return NewPalette("catppuccin",
		map[Role]RGB{
			RoleKeyword:    rgb("#cba6f7"),
			RoleFunction:   rgb("#89b4fa"),
			RoleString:     rgb("#a6e3a1"),
			RoleModule:     rgb("#94e2d5"),
			RoleConstant:   rgb("#fab387"),
			RoleComment:    rgb("#6c7086"),
			RoleForeground: rgb("#cdd6f4"),
			RoleGuide:      rgb("#585b70"),
			RoleBackground: rgb("#1e1e2e"),
			RoleSurface:    rgb("#313244"),
			RoleBorder:     rgb("#45475a"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#f38ba8"), BasicGreen: rgb("#a6e3a1"), BasicBlue: rgb("#89b4fa"),
			BasicCyan: rgb("#94e2d5"), BasicMagenta: rgb("#cba6f7"), BasicYellow: rgb("#f9e2af"),
			BasicWhite: rgb("#cdd6f4"), BasicBlack: rgb("#1e1e2e"),
		})
}

func oneDarkPalette() Palette {
	return NewPalette("one_dark",
		map[Role]RGB{
			RoleKeyword:    rgb("#c678dd"),
			RoleFunction:   rgb("#61afef"),
			RoleString:     rgb("#98c379"),
			RoleModule:     rgb("#56b6c2"),
			RoleConstant:   rgb("#d19a66"),
			RoleComment:    rgb("#5c6370"),
			RoleForeground: rgb("#abb2bf"),
			RoleGuide:      rgb("#5c6370"),
			RoleBackground: rgb("#282c34"),
			RoleSurface:    rgb("#2c323c"),
			RoleBorder:     rgb("#3b4048"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#e06c75"), BasicGreen: rgb("#98c379"), BasicBlue: rgb("#61afef"),
			BasicCyan: rgb("#56b6c2"), BasicMagenta: rgb("#c678dd"), BasicYellow: rgb("#e5c07b"),
			BasicWhite: rgb("#abb2bf"), BasicBlack: rgb("#282c34"),
		})
}

func tokyoNightPalette() Palette {
	return NewPalette("tokyo_night",
		map[Role]RGB{
			RoleKeyword:    rgb("#bb9af7"),
			RoleFunction:   rgb("#7aa2f7"),
			RoleString:     rgb("#9ece6a"),
			RoleModule:     rgb("#7dcfff"),
			RoleConstant:   rgb("#ff9e64"),
			RoleComment:    rgb("#565f89"),
			RoleForeground: rgb("#c0caf5"),
			RoleGuide:      rgb("#3b4261"),
			RoleBackground: rgb("#1a1b26"),
			RoleSurface:    rgb("#24283b"),
			RoleBorder:     rgb("#3b4261"),
		},
		map[BasicColor]RGB{
			BasicRed: rgb("#f7768e"), BasicGreen: rgb("#9ece6a"), BasicBlue: rgb("#7aa2f7"),
			BasicCyan: rgb("#7dcfff"), BasicMagenta: rgb("#bb9af7"), BasicYellow: rgb("#e0af68"),
			BasicWhite: rgb("#c0caf5"), BasicBlack: rgb("#1a1b26"),
		})
}
