package cmd

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/skardyy/mcat/internal/errs"
	"github.com/skardyy/mcat/internal/imageenc"
)

// companionFetchTimeout bounds the one-shot binary download for
// --fetch-chromium/--fetch-ffmpeg; these are interactive operator
// commands, not part of the render pipeline's own timeout budget.
const companionFetchTimeout = 2 * time.Minute

// chromiumScreenshotTimeout bounds one headless-render invocation of the
// fetched chromium companion (Text|image dispatch row, spec §4.6).
const chromiumScreenshotTimeout = 30 * time.Second

// chromiumBinaryNames are the executable names a Playwright chromium
// build ships under; findChromiumBinary takes the first file, in walk
// order, whose name is any of them.
var chromiumBinaryNames = []string{"headless_shell", "chrome", "chromium", "Chromium"}

// companionSources names where each companion binary is fetched from
// per platform. mcat itself never bundles these; it downloads on request
// so the default install stays dependency-free (spec §1).
var companionSources = map[string]map[string]string{
	"ffmpeg": {
		"linux":  "https://johnvansickle.com/ffmpeg/releases/ffmpeg-release-amd64-static.tar.xz",
		"darwin": "https://evermeet.cx/ffmpeg/getrelease/zip",
	},
	"chromium": {
		"linux":  "https://playwright.azureedge.net/builds/chromium/linux.zip",
		"darwin": "https://playwright.azureedge.net/builds/chromium/mac.zip",
	},
}

func companionDir() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", errs.Wrap(errs.KindIOFailure, "resolving cache directory", err)
	}
	dir := filepath.Join(cache, "mcat", "companions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(errs.KindIOFailure, "creating companion directory", err)
	}
	return dir, nil
}

// fetchCompanion downloads the named companion binary's archive into
// mcat's cache directory for the caller to unpack, per --fetch-chromium
// / --fetch-ffmpeg.
func fetchCompanion(name string) error {
	byOS, ok := companionSources[name]
	if !ok {
		return errs.New(errs.KindInvalidInput, "unknown companion: "+name)
	}
	src, ok := byOS[runtime.GOOS]
	if !ok {
		return errs.New(errs.KindUnsupported, fmt.Sprintf("no %s build available for %s", name, runtime.GOOS))
	}

	dir, err := companionDir()
	if err != nil {
		return err
	}
	dest := filepath.Join(dir, name+filepath.Ext(src))

	ctx, cancel := context.WithTimeout(context.Background(), companionFetchTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return errs.Wrap(errs.KindInvalidInput, "building companion request", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errs.Wrap(errs.KindNetworkFailure, "downloading "+name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errs.New(errs.KindNetworkFailure, "unexpected status downloading "+name+": "+resp.Status)
	}

	f, err := os.Create(dest)
	if err != nil {
		return errs.Wrap(errs.KindIOFailure, "creating "+dest, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return errs.Wrap(errs.KindIOFailure, "writing "+dest, err)
	}

	fmt.Fprintf(os.Stderr, "fetched %s to %s\n", name, dest)
	return nil
}

// chromiumBinary resolves the fetched chromium companion's executable,
// unzipping the downloaded archive into the companion directory on first
// use. It is the consumer --fetch-chromium's download exists to feed
// (spec §4.6's Text|image dispatch row).
func chromiumBinary() (string, error) {
	dir, err := companionDir()
	if err != nil {
		return "", err
	}
	archive := filepath.Join(dir, "chromium.zip")
	if _, err := os.Stat(archive); err != nil {
		return "", errs.New(errs.KindUnsupported, "chromium companion not fetched; run --fetch-chromium first")
	}

	extractDir := filepath.Join(dir, "chromium-extracted")
	if bin, err := findChromiumBinary(extractDir); err == nil {
		return bin, nil
	}
	if err := extractZip(archive, extractDir); err != nil {
		return "", err
	}
	return findChromiumBinary(extractDir)
}

// extractZip unpacks every member of src into dest, preserving the
// executable bit zip stores in each header's mode (the browser binary
// is useless without it).
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return errs.Wrap(errs.KindArchiveFailure, "opening chromium archive", err)
	}
	defer r.Close()

	for _, f := range r.File {
		target := filepath.Join(dest, f.Name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errs.Wrap(errs.KindIOFailure, "creating "+target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errs.Wrap(errs.KindIOFailure, "creating "+filepath.Dir(target), err)
		}
		if err := extractZipFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return errs.Wrap(errs.KindArchiveFailure, "reading "+f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode())
	if err != nil {
		return errs.Wrap(errs.KindIOFailure, "creating "+target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, rc); err != nil {
		return errs.Wrap(errs.KindIOFailure, "writing "+target, err)
	}
	return nil
}

// findChromiumBinary walks dir for one of chromiumBinaryNames.
func findChromiumBinary(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || found != "" {
			return nil
		}
		base := filepath.Base(path)
		for _, name := range chromiumBinaryNames {
			if base == name {
				found = path
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil && found == "" {
		return "", errs.Wrap(errs.KindIOFailure, "searching for chromium binary", err)
	}
	if found == "" {
		return "", errs.New(errs.KindUnsupported, "chromium binary not found in extracted companion archive")
	}
	return found, nil
}

// screenshotHTML renders html headlessly through the fetched chromium
// companion and returns the resulting PNG bytes (spec §4.6's Text|image
// dispatch row: "Markdown→HTML, screenshot to PNG, encode inline").
// chromedp drives the downloaded binary over the Chrome DevTools
// Protocol rather than shelling out to CLI screenshot flags, so the
// same allocator/context plumbing this module would need for any future
// browser-automation feature (link previews, JS-rendered pages) is
// already in place.
func screenshotHTML(html []byte, htmlPath string) ([]byte, error) {
	bin, err := chromiumBinary()
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(htmlPath, html, 0o644); err != nil {
		return nil, errs.Wrap(errs.KindIOFailure, "writing html for screenshot", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(),
		append(chromedp.DefaultExecAllocatorOptions[:], chromedp.ExecPath(bin))...)
	defer cancelAlloc()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, chromiumScreenshotTimeout)
	defer cancelTimeout()

	var png []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.FullScreenshot(&png, 90),
	)
	if err != nil {
		return nil, errs.Wrap(errs.KindExternalProcessFailure, "running chromium headless screenshot", err)
	}
	return png, nil
}

// cleanCompanions removes every downloaded companion binary.
func cleanCompanions() error {
	dir, err := companionDir()
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return errs.Wrap(errs.KindIOFailure, "removing companion directory", err)
	}
	fmt.Fprintln(os.Stderr, "removed", dir)
	return nil
}

// clearTerminalImages emits the Kitty deletion-protocol escape so
// --delete-images works even outside a render (spec §4.5.1).
func clearTerminalImages() error {
	_, err := os.Stdout.Write(imageenc.DeleteAll())
	return err
}
