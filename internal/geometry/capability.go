package geometry

// EncoderKind is the terminal inline-image wire protocol to target.
type EncoderKind int

const (
	EncoderASCII EncoderKind = iota
	EncoderKitty
	EncoderITerm
	EncoderSixel
)

func (k EncoderKind) String() string {
	switch k {
	case EncoderKitty:
		return "kitty"
	case EncoderITerm:
		return "iterm"
	case EncoderSixel:
		return "sixel"
	default:
		return "ascii"
	}
}

// itermTerminalNames lists TERM_PROGRAM/name matches that speak the
// iTerm2 inline-image OSC, per spec §4.5.6.
var itermTerminalNames = []string{"mintty", "wezterm", "iterm2", "rio", "warp"}

// DetectCapability probes env in Kitty -> iTerm -> Sixel -> ASCII order
// and returns the first match.
func DetectCapability(env *EnvIdentifiers) EncoderKind {
	if env.HasKey("KITTY_WINDOW_ID") || env.TermContains("kitty") || env.TermContains("ghostty") {
		return EncoderKitty
	}

	for _, name := range itermTerminalNames {
		if env.TermContains(name) {
			return EncoderITerm
		}
	}
	if env.HasKey("KONSOLE_VERSION") {
		return EncoderITerm
	}

	if env.TermContains("sixel") {
		return EncoderSixel
	}

	return EncoderASCII
}
