package theme

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"
)

// ChromaStyle projects the palette onto a chroma.Style so the code-block
// renderer highlights tokens in the active theme's colors instead of a
// fixed built-in chroma style.
func (p Palette) ChromaStyle() (*chroma.Style, error) {
	entries := chroma.StyleEntries{
		chroma.Keyword:            hex(p.Role(RoleKeyword)) + " bold",
		chroma.KeywordConstant:    hex(p.Role(RoleKeyword)) + " bold",
		chroma.KeywordDeclaration: hex(p.Role(RoleKeyword)) + " bold",
		chroma.NameFunction:       hex(p.Role(RoleFunction)),
		chroma.NameClass:          hex(p.Role(RoleFunction)) + " bold",
		chroma.NameBuiltin:        hex(p.Role(RoleFunction)),
		chroma.LiteralString:      hex(p.Role(RoleString)),
		chroma.LiteralStringDoc:   hex(p.Role(RoleString)) + " italic",
		chroma.NameNamespace:      hex(p.Role(RoleModule)),
		chroma.NameTag:            hex(p.Role(RoleModule)),
		chroma.LiteralNumber:      hex(p.Role(RoleConstant)),
		chroma.NameConstant:       hex(p.Role(RoleConstant)),
		chroma.Comment:            hex(p.Role(RoleComment)) + " italic",
		chroma.CommentSingle:      hex(p.Role(RoleComment)) + " italic",
		chroma.Text:               hex(p.Role(RoleForeground)),
		chroma.Error:              hex(p.Basic(BasicRed)) + " bold",
	}
	return chroma.NewStyle(p.Name, entries)
}

func hex(c RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSSVariables projects the palette into a CSS custom-property block for
// the themed-HTML output path.
func (p Palette) CSSVariables() string {
	out := ":root {\n"
	for r := Role(0); r < roleCount; r++ {
		out += fmt.Sprintf("  --mcat-%s: %s;\n", r, p.Role(r).Hex())
	}
	names := []string{"red", "green", "blue", "cyan", "magenta", "yellow", "white", "black"}
	for i, n := range names {
		out += fmt.Sprintf("  --mcat-%s: %s;\n", n, p.Basic(BasicColor(i)).Hex())
	}
	out += "}\n"
	return out
}
