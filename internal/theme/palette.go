// Package theme models the named color palette the Markdown→ANSI
// renderer, the syntax highlighter, and the HTML output path all share.
package theme

import "fmt"

// RGB is a 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Fg returns the SGR escape sequence that sets this color as foreground.
func (c RGB) Fg() string {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Bg returns the SGR escape sequence that sets this color as background.
func (c RGB) Bg() string {
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", c.R, c.G, c.B)
}

// Hex returns the "#rrggbb" form used by the CSS projection.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Role names one of the eleven semantic palette slots.
type Role int

const (
	RoleKeyword Role = iota
	RoleFunction
	RoleString
	RoleModule
	RoleConstant
	RoleComment
	RoleForeground
	RoleGuide
	RoleBackground
	RoleSurface
	RoleBorder
	roleCount
)

func (r Role) String() string {
	switch r {
	case RoleKeyword:
		return "keyword"
	case RoleFunction:
		return "function"
	case RoleString:
		return "string"
	case RoleModule:
		return "module"
	case RoleConstant:
		return "constant"
	case RoleComment:
		return "comment"
	case RoleForeground:
		return "foreground"
	case RoleGuide:
		return "guide"
	case RoleBackground:
		return "background"
	case RoleSurface:
		return "surface"
	case RoleBorder:
		return "border"
	default:
		return "unknown"
	}
}

// BasicColor names one of the 8 basic ANSI colors a palette carries
// alongside its semantic roles (task-list glyphs, alert bars, links).
type BasicColor int

const (
	BasicRed BasicColor = iota
	BasicGreen
	BasicBlue
	BasicCyan
	BasicMagenta
	BasicYellow
	BasicWhite
	BasicBlack
	basicCount
)

// Palette is a named set of 11 semantic roles plus 8 basic colors, each a
// 24-bit RGB triple.
type Palette struct {
	Name   string
	roles  [roleCount]RGB
	basics [basicCount]RGB
}

// NewPalette builds a Palette from explicit role and basic-color maps.
// Missing entries keep the zero RGB (black); callers should supply all
// of them — presets.go does.
func NewPalette(name string, roles map[Role]RGB, basics map[BasicColor]RGB) Palette {
	p := Palette{Name: name}
	for r, c := range roles {
		p.roles[r] = c
	}
	for b, c := range basics {
		p.basics[b] = c
	}
	return p
}

// Role returns the RGB triple for a semantic role.
func (p Palette) Role(r Role) RGB { return p.roles[r] }

// Basic returns the RGB triple for one of the 8 basic colors.
func (p Palette) Basic(b BasicColor) RGB { return p.basics[b] }

// Foreground is shorthand for the foreground role, used constantly by the
// renderer's reset-then-reapply discipline.
func (p Palette) Foreground() RGB { return p.roles[RoleForeground] }
