// Package config resolves the process-wide defaults (theme, output
// format) and parses the --opts key=value,… flag into a typed Opts
// struct, layering $MCAT_* environment overrides on top of built-in
// defaults the way the teacher's internal/config layers provider
// defaults with viper.
package config

import (
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/geometry"
)

// Defaults holds the process-wide settings resolved once at startup:
// default theme name and default output format, each overridable by an
// $MCAT_THEME / $MCAT_OUTPUT environment variable.
type Defaults struct {
	Theme  string
	Output string
}

// Load resolves Defaults from built-in values layered under any
// $MCAT_THEME / $MCAT_OUTPUT environment override, mirroring the
// teacher's SetDefault-then-ReadInConfig-then-Unmarshal layering (this
// module has no on-disk config file, so the file-read step is skipped).
func Load() Defaults {
	v := viper.New()
	v.SetEnvPrefix("mcat")
	v.AutomaticEnv()

	v.SetDefault("theme", "dark")
	v.SetDefault("output", "inline")

	return Defaults{
		Theme:  v.GetString("theme"),
		Output: v.GetString("output"),
	}
}

// Opts is the typed result of parsing --opts "key=value,…" per spec §6.
type Opts struct {
	Center    bool
	HasCenter bool
	Width     *geometry.Dimension
	Height    *geometry.Dimension
	Scale     float64
	Spx       *geometry.Size
	Sc        *geometry.Size
	Inline    bool
	Zoom      float64
	X, Y      int
	HasXY     bool
}

// DefaultOpts returns Opts with center true, scale 1 — the defaults spec
// §6 names before any --opts key overrides them. isLs controls center's
// default (false for the `ls` sub-form).
func DefaultOpts(isLs bool) Opts {
	return Opts{Center: !isLs, Scale: 1, Zoom: 1}
}

// ParseOpts parses the comma-separated key=value list spec §6 defines
// for --opts, starting from base (already seeded with the command's
// center default) and overriding only the keys present in raw.
func ParseOpts(raw string, base Opts) (Opts, error) {
	o := base
	if raw == "" {
		return o, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return Opts{}, errs.New(errs.KindInvalidInput, "malformed --opts entry: "+pair)
		}
		key, val = strings.TrimSpace(key), strings.TrimSpace(val)
		if err := applyOpt(&o, key, val); err != nil {
			return Opts{}, err
		}
	}
	return o, nil
}

func applyOpt(o *Opts, key, val string) error {
	switch key {
	case "center":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		o.Center, o.HasCenter = b, true
	case "width":
		d, err := geometry.Parse(val)
		if err != nil {
			return err
		}
		o.Width = &d
	case "height":
		d, err := geometry.Parse(val)
		if err != nil {
			return err
		}
		o.Height = &d
	case "scale":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return errs.Wrap(errs.KindInvalidInput, "invalid scale: "+val, err)
		}
		o.Scale = f
	case "spx":
		s, err := parseSize(val)
		if err != nil {
			return err
		}
		o.Spx = &s
	case "sc":
		s, err := parseSize(val)
		if err != nil {
			return err
		}
		o.Sc = &s
	case "inline":
		b, err := parseBool(val)
		if err != nil {
			return err
		}
		o.Inline = b
	case "zoom":
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return errs.Wrap(errs.KindInvalidInput, "invalid zoom: "+val, err)
		}
		o.Zoom = f
	case "x":
		n, err := strconv.Atoi(val)
		if err != nil {
			return errs.Wrap(errs.KindInvalidInput, "invalid x: "+val, err)
		}
		o.X, o.HasXY = n, true
	case "y":
		n, err := strconv.Atoi(val)
		if err != nil {
			return errs.Wrap(errs.KindInvalidInput, "invalid y: "+val, err)
		}
		o.Y, o.HasXY = n, true
	default:
		return errs.New(errs.KindInvalidInput, "unknown --opts key: "+key)
	}
	return nil
}

func parseBool(val string) (bool, error) {
	switch val {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, errs.New(errs.KindInvalidInput, "invalid boolean: "+val)
	}
}

// parseSize parses the "WxH[xforce]" form spec §6 defines for spx/sc
// overrides: a literal "force" third segment pins the fallback
// unconditionally, matching geometry.Size's Force field.
func parseSize(val string) (geometry.Size, error) {
	parts := strings.Split(val, "x")
	if len(parts) < 2 {
		return geometry.Size{}, errs.New(errs.KindInvalidInput, "invalid WxH value: "+val)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return geometry.Size{}, errs.Wrap(errs.KindInvalidInput, "invalid width in "+val, err)
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return geometry.Size{}, errs.Wrap(errs.KindInvalidInput, "invalid height in "+val, err)
	}
	force := len(parts) >= 3 && parts[2] == "force"
	return geometry.Size{Width: w, Height: h, Force: force}, nil
}
