package cmd

import (
	"bytes"
	"fmt"
	goimage "image"
	"image/gif"
	"os"
	"time"

	"github.com/skardyy/mcat/internal/arena"
	"github.com/skardyy/mcat/internal/classify"
	"github.com/skardyy/mcat/internal/concat"
	"github.com/skardyy/mcat/internal/config"
	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/geometry"
	"github.com/skardyy/mcat/internal/imageenc"
	"github.com/skardyy/mcat/internal/markdown"
	"github.com/skardyy/mcat/internal/mediaio"
	"github.com/skardyy/mcat/internal/theme"
)

// pipelineRun is one invocation of the render pipeline (spec §2's
// dataflow): classify, unify, dispatch to a renderer/encoder, write to
// stdout. It owns the arena for the run's temp artifacts.
type pipelineRun struct {
	flags     pipelineFlags
	win       geometry.Wininfo
	encoder   geometry.EncoderKind
	palette   theme.Palette
	opts      config.Opts
	arena     *arena.Arena
	startedAt time.Time
}

func runPipeline(inputs []string, f pipelineFlags) error {
	palette, ok := theme.Get(f.Theme)
	if !ok {
		return errs.New(errs.KindInvalidInput, "unknown theme: "+f.Theme)
	}

	baseOpts := config.DefaultOpts(false)
	opts, err := config.ParseOpts(f.Opts, baseOpts)
	if err != nil {
		return err
	}

	spx, sc := geometry.Size{Width: 1920, Height: 1080}, geometry.Size{Width: 100, Height: 20}
	if opts.Spx != nil {
		spx = *opts.Spx
	}
	if opts.Sc != nil {
		sc = *opts.Sc
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	env := geometry.NewEnvIdentifiers()
	_ = geometry.Init(spx, sc, scale, env.IsTmux(), opts.Inline)
	win := geometry.Get()

	encoder := geometry.DetectCapability(env)
	if f.Kitty {
		encoder = geometry.EncoderKitty
	} else if f.ITerm {
		encoder = geometry.EncoderITerm
	} else if f.Sixel {
		encoder = geometry.EncoderSixel
	} else if f.ASCII {
		encoder = geometry.EncoderASCII
	}

	ar, err := arena.New("mcat")
	if err != nil {
		return err
	}
	defer ar.Close()

	run := &pipelineRun{
		flags: f, win: win, encoder: encoder, palette: palette,
		opts: opts, arena: ar, startedAt: time.Now(),
	}
	return run.execute(inputs)
}

func (r *pipelineRun) execute(inputs []string) error {
	items := make([]classify.Item, len(inputs))
	for i, in := range inputs {
		items[i] = classify.Item{PathOrURL: in, OriginLabel: in}
	}

	classified, err := classify.Classify(items, r.arena)
	if err != nil {
		return err
	}

	classified, err = r.resolveDeferred(classified)
	if err != nil {
		return err
	}

	kind := classify.UnifiedKind(classified)
	r.reportf("classified kind: %s, encoder: %s", kind, r.encoder)

	switch kind {
	case classify.KindImage:
		return r.renderImage(classified)
	case classify.KindVideo:
		return r.renderVideo(classified)
	default:
		return r.renderText(classified)
	}
}

// resolveDeferred materializes URL and Directory items to filesystem
// content so the unification rule only sees file-backed items, and
// lowers Document and
// Archive items to Markdown text (spec §4.1's unification note).
func (r *pipelineRun) resolveDeferred(classified []classify.Classified) ([]classify.Classified, error) {
	out := make([]classify.Classified, 0, len(classified))
	for _, c := range classified {
		switch c.Kind {
		case classify.KindURL:
			resolved, err := r.materializeURL(c)
			if err != nil {
				r.warnf("skipping %s: %v", c.Item.PathOrURL, err)
				continue
			}
			out = append(out, resolved)
		case classify.KindDirectory:
			expanded, err := r.expandDirectory(c)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		case classify.KindDocument:
			out = append(out, r.lowerToMarkdown(c, mediaio.DocumentToMarkdown))
		case classify.KindArchive:
			out = append(out, r.lowerToMarkdown(c, mediaio.ArchiveToMarkdown))
		default:
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *pipelineRun) materializeURL(c classify.Classified) (classify.Classified, error) {
	data, err := mediaio.FetchMedia(c.Item.PathOrURL)
	if err != nil {
		return classify.Classified{}, err
	}
	kind := classify.KindText
	if _, _, err := goimage.Decode(bytes.NewReader(data)); err == nil {
		kind = classify.KindImage
	}
	f, err := r.arena.NewFile("url")
	if err != nil {
		return classify.Classified{}, err
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return classify.Classified{}, errs.Wrap(errs.KindIOFailure, "materializing "+c.Item.PathOrURL, err)
	}
	return classify.Classified{Item: c.Item, Kind: kind, Path: f.Name()}, nil
}

func (r *pipelineRun) expandDirectory(c classify.Classified) ([]classify.Classified, error) {
	entries, err := classify.Enumerate(c.Path, r.flags.Hidden)
	if err != nil {
		return nil, err
	}
	paths, err := classify.ExpandSelection(c.Path, entries)
	if err != nil {
		return nil, err
	}
	items := make([]classify.Item, len(paths))
	for i, p := range paths {
		items[i] = classify.Item{PathOrURL: p, OriginLabel: p}
	}
	return classify.Classify(items, r.arena)
}

func (r *pipelineRun) lowerToMarkdown(c classify.Classified, adapt func(string) (string, error)) classify.Classified {
	md, err := adapt(c.Path)
	if err != nil {
		r.warnf("degrading %s to plain text: %v", c.Path, err)
		md = "# " + c.Item.OriginLabel + "\n\n_unreadable_\n"
	}
	f, err := r.arena.NewFile("md")
	if err == nil {
		_, _ = f.WriteString(md)
		f.Close()
		return classify.Classified{Item: c.Item, Kind: classify.KindText, Path: f.Name()}
	}
	return c
}

func (r *pipelineRun) renderText(classified []classify.Classified) error {
	body, err := concat.Text(classified)
	if err != nil {
		return err
	}

	switch r.flags.Output {
	case "md":
		return r.write([]byte(body))
	case "html":
		html, err := markdown.RenderHTML([]byte(body), r.palette, r.flags.StyleHTML)
		if err != nil {
			return err
		}
		return r.write([]byte(html))
	case "image":
		return r.renderTextAsImage(body)
	default: // inline, interactive
		out := markdown.Render([]byte(body), markdown.RenderOptions{
			Palette: r.palette,
			ScWidth: r.win.ScWidth,
			Kind:    r.encoder,
			Win:     r.win,
		})
		return r.write([]byte(out + "\n"))
	}
}

// renderTextAsImage implements spec §4.6's Text|image dispatch row:
// Markdown renders to themed HTML, chromium screenshots it headlessly,
// and the resulting PNG is encoded inline through the selected image
// encoder, the same way renderImage inlines an image.
func (r *pipelineRun) renderTextAsImage(body string) error {
	html, err := markdown.RenderHTML([]byte(body), r.palette, true)
	if err != nil {
		return err
	}

	htmlFile, err := r.arena.NewFile("html")
	if err != nil {
		return err
	}
	htmlFile.Close()

	png, err := screenshotHTML([]byte(html), htmlFile.Name())
	if err != nil {
		return err
	}
	img, _, err := goimage.Decode(bytes.NewReader(png))
	if err != nil {
		return errs.Wrap(errs.KindEncodingFailure, "decoding html screenshot", err)
	}
	return r.encodeAndWrite(imageenc.Request{Still: img, Center: r.opts.Center})
}

func (r *pipelineRun) renderImage(classified []classify.Classified) error {
	paths := make([]string, len(classified))
	for i, c := range classified {
		paths[i] = c.Path
	}

	tiled, err := concat.Images(paths, r.flags.Hori)
	if err != nil {
		return err
	}

	if r.flags.Output == "image" {
		return r.write(tiled)
	}

	img, _, err := goimage.Decode(bytes.NewReader(tiled))
	if err != nil {
		return errs.Wrap(errs.KindEncodingFailure, "decoding tiled image", err)
	}
	return r.encodeAndWrite(imageenc.Request{Still: img, Center: r.opts.Center})
}

func (r *pipelineRun) renderVideo(classified []classify.Classified) error {
	paths := make([]string, len(classified))
	for i, c := range classified {
		paths[i] = c.Path
	}

	if len(paths) == 1 && r.flags.Output != "video" {
		frames, delays, err := mediaio.VideoFrames(paths[0], 24)
		if err != nil {
			return err
		}
		return r.encodeAndWrite(imageenc.Request{Frames: frames, DelaysMs: delays, Center: r.opts.Center})
	}

	var gifBytes []byte
	var err error
	if len(paths) == 1 {
		gifBytes, err = mediaio.VideoToGIF(paths[0], 24)
	} else {
		gifBytes, err = concat.Video(paths, r.arena)
	}
	if err != nil {
		return err
	}

	if r.flags.Output == "video" {
		return r.write(gifBytes)
	}

	frames, delays, err := decodeGIFFrames(gifBytes)
	if err != nil {
		return err
	}
	return r.encodeAndWrite(imageenc.Request{Frames: frames, DelaysMs: delays, Center: r.opts.Center})
}

func (r *pipelineRun) encodeAndWrite(req imageenc.Request) error {
	cells, rows := r.win.ScWidth, r.win.ScHeight
	if req.Still != nil {
		b := req.Still.Bounds()
		cells = geometry.PxToCells(b.Dx(), r.win.SpxWidth, r.win.ScWidth)
		rows = geometry.PxToCells(b.Dy(), r.win.SpxHeight, r.win.ScHeight)
	}
	if r.opts.Width != nil {
		if c, err := r.opts.Width.ToCells(r.win, geometry.AxisWidth, true); err == nil {
			cells = c
		}
	}
	if r.opts.Height != nil {
		if c, err := r.opts.Height.ToCells(r.win, geometry.AxisHeight, true); err == nil {
			rows = c
		}
	}
	req.TargetCells, req.TargetRows = cells, rows
	if r.opts.HasXY {
		req.HasPrintAt, req.PrintAtCol, req.PrintAtRow = true, r.opts.X, r.opts.Y
	}

	out, err := imageenc.Encode(r.encoder, req, r.win)
	if err != nil {
		return err
	}
	return r.write(out)
}

func (r *pipelineRun) write(b []byte) error {
	if _, err := os.Stdout.Write(b); err != nil {
		return errs.Wrap(errs.KindIOFailure, "writing to stdout", err)
	}
	return nil
}

func (r *pipelineRun) warnf(format string, args ...any) {
	if !r.flags.Silent {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func (r *pipelineRun) reportf(format string, args ...any) {
	if r.flags.Report {
		fmt.Fprintf(os.Stderr, "[%s] "+format+"\n", append([]any{time.Since(r.startedAt).Round(time.Millisecond)}, args...)...)
	}
}

// decodeGIFFrames decodes a multi-frame GIF stream (the video tool's
// GIF output for one file, or concat.Video's concatenated result) into the frame/delay
// pair imageenc.Request's animated path expects.
func decodeGIFFrames(gifBytes []byte) ([]goimage.Image, []int, error) {
	g, err := gif.DecodeAll(bytes.NewReader(gifBytes))
	if err != nil {
		return nil, nil, errs.Wrap(errs.KindEncodingFailure, "decoding gif", err)
	}
	frames := make([]goimage.Image, len(g.Image))
	delaysMs := make([]int, len(g.Image))
	for i, paletted := range g.Image {
		frames[i] = paletted
		delaysMs[i] = g.Delay[i] * 10
	}
	return frames, delaysMs, nil
}
