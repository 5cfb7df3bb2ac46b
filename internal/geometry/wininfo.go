package geometry

import (
	"os"
	"strings"
	"sync"

	"github.com/skardyy/mcat/internal/errs"
)

// Size is a fallback/override pair of cell or pixel dimensions, with an
// optional "force" flag requesting the fallback be used unconditionally.
type Size struct {
	Width  int
	Height int
	Force  bool
}

// Wininfo is the process-wide terminal geometry snapshot. All fields are
// frozen once Get() is called for the first time.
type Wininfo struct {
	SpxWidth    int
	SpxHeight   int
	ScWidth     int
	ScHeight    int
	IsTmux      bool
	NeedsInline bool
	Scale       float64
}

// params holds the configuration Get() will use to build the singleton
// the first time it is called.
type params struct {
	spx         Size
	sc          Size
	scale       float64
	isTmux      bool
	needsInline bool
}

var (
	mu       sync.Mutex
	current  = defaultParams()
	frozen   bool
	instance Wininfo
)

func defaultParams() params {
	return params{
		spx:   Size{Width: 1920, Height: 1080},
		sc:    Size{Width: 100, Height: 20},
		scale: 1,
	}
}

// Init sets the fallback/override configuration used the first time Get()
// is called. Calling Init after Get() has already frozen the singleton
// returns a GeometryQueryFailure error.
func Init(spx, sc Size, scale float64, isTmux, needsInline bool) error {
	mu.Lock()
	defer mu.Unlock()

	if frozen {
		return errs.New(errs.KindGeometryQueryFailure, "Wininfo already in use, cannot update parameters")
	}
	if scale <= 0 {
		scale = 1
	}
	current = params{spx: spx, sc: sc, scale: scale, isTmux: isTmux, needsInline: needsInline}
	return nil
}

// Get returns the process-wide Wininfo singleton, freezing it on first
// call. Subsequent calls return the same value regardless of Init calls
// made afterward.
func Get() Wininfo {
	mu.Lock()
	defer mu.Unlock()

	if frozen {
		return instance
	}

	p := current
	spxW, spxH, scW, scH := queryOSSize()

	if p.spx.Force || spxW == 0 || spxH == 0 {
		spxW, spxH = p.spx.Width, p.spx.Height
	}
	if p.sc.Force || scW == 0 || scH == 0 {
		scW, scH = p.sc.Width, p.sc.Height
	}

	instance = Wininfo{
		SpxWidth:    int(float64(spxW) * p.scale),
		SpxHeight:   int(float64(spxH) * p.scale),
		ScWidth:     int(float64(scW) * p.scale),
		ScHeight:    int(float64(scH) * p.scale),
		IsTmux:      p.isTmux,
		NeedsInline: p.needsInline,
		Scale:       p.scale,
	}
	frozen = true
	return instance
}

// ResetForTest clears the frozen singleton. Test-only; production code
// never calls this, matching the write-once-per-process contract.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	frozen = false
	current = defaultParams()
	instance = Wininfo{}
}

// CenterOffset returns the horizontal cell offset needed to center
// imageWidth in the terminal. If isCells is true, imageWidth is already
// in cells; otherwise it is in pixels.
func CenterOffset(win Wininfo, imageWidth int, isCells bool) int {
	if isCells {
		return roundHalfAwayFromZero((float64(win.ScWidth) - float64(imageWidth)) / 2)
	}
	offsetPx := (float64(win.SpxWidth) - float64(imageWidth)) / 2
	if win.SpxWidth == 0 || win.ScWidth == 0 {
		return 0
	}
	return roundHalfAwayFromZero(offsetPx / (float64(win.SpxWidth) / float64(win.ScWidth)))
}

func roundHalfAwayFromZero(f float64) int {
	if f >= 0 {
		return int(f + 0.5)
	}
	return -int(-f + 0.5)
}

// EnvIdentifiers is a lowercase-normalized snapshot of terminal-identifying
// environment variables, augmented with the host OS tag and, inside tmux,
// the multiplexer's reported "original" terminal.
type EnvIdentifiers struct {
	data map[string]string
}

var envKeys = []string{
	"TERM", "TERM_PROGRAM", "LC_TERMINAL", "VIM_TERMINAL",
	"KITTY_WINDOW_ID", "KONSOLE_VERSION", "WT_PROFILE_ID", "TMUX",
}

// NewEnvIdentifiers snapshots the terminal-identifying environment
// variables and resolves the tmux "original terminal" hint when running
// inside tmux.
func NewEnvIdentifiers() *EnvIdentifiers {
	data := make(map[string]string, len(envKeys)+1)
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			data[key] = strings.ToLower(v)
		}
	}
	data["OS"] = currentOS()

	env := &EnvIdentifiers{data: data}
	if env.IsTmux() {
		if termType, termName, ok := queryTmuxOriginalTerminal(); ok {
			env.data["TMUX_ORIGINAL_TERM"] = strings.ToLower(termName)
			env.data["TMUX_ORIGINAL_SPEC"] = strings.ToLower(termType)
		}
	}
	return env
}

func (e *EnvIdentifiers) HasKey(key string) bool {
	_, ok := e.data[key]
	return ok
}

// Contains reports whether data[key] holds substr (substr must already be
// lowercase).
func (e *EnvIdentifiers) Contains(key, substr string) bool {
	v, ok := e.data[key]
	return ok && strings.Contains(v, substr)
}

// TermContains reports whether any terminal-identifying key contains term
// (term must already be lowercase).
func (e *EnvIdentifiers) TermContains(term string) bool {
	for _, key := range []string{"TERM_PROGRAM", "TERM", "LC_TERMINAL", "TMUX_ORIGINAL_TERM", "TMUX_ORIGINAL_SPEC"} {
		if e.Contains(key, term) {
			return true
		}
	}
	return false
}

// IsTmux reports whether the session is running inside tmux.
func (e *EnvIdentifiers) IsTmux() bool {
	return e.TermContains("tmux") || e.HasKey("TMUX")
}
