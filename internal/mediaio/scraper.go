// Package mediaio adapts the external collaborators spec §1 names but
// does not define: a web scraper that returns a URL's largest inline
// media, a document-to-Markdown adapter, and a video-tool adapter. Each
// is a thin, best-effort implementation — the core render pipeline only
// depends on their narrow capability interfaces.
package mediaio

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/skardyy/mcat/internal/errs"
)

// FetchTimeout is the single provider-defined timeout for external
// fetches (spec §5): on expiry the fetch fails with no retry, and the
// Markdown renderer shows that image's alt text instead of a placeholder.
const FetchTimeout = 10 * time.Second

var imgTagPattern = regexp.MustCompile(`(?i)<img\s+([^>]*)>`)
var attrPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)

// FetchMedia retrieves rawURL's bytes. If the response is HTML, it
// scans for <img> tags and re-fetches the one with the largest
// width*height (falling back to the first with a src if none declare
// dimensions), per the scraper's "largest inline media" contract.
func FetchMedia(rawURL string) ([]byte, error) {
	client := &http.Client{Timeout: FetchTimeout}

	body, contentType, err := get(client, rawURL)
	if err != nil {
		return nil, err
	}

	if !strings.Contains(contentType, "text/html") {
		return body, nil
	}

	src, ok := largestImageSrc(string(body), rawURL)
	if !ok {
		return nil, errs.New(errs.KindNetworkFailure, "no image found at "+rawURL)
	}
	imgBody, _, err := get(client, src)
	return imgBody, err
}

func get(client *http.Client, rawURL string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", errs.Wrap(errs.KindInvalidInput, "building request for "+rawURL, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", errs.Wrap(errs.KindNetworkFailure, "fetching "+rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errs.New(errs.KindNetworkFailure, "unexpected status fetching "+rawURL+": "+resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<20))
	if err != nil {
		return nil, "", errs.Wrap(errs.KindNetworkFailure, "reading response body for "+rawURL, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func largestImageSrc(html, baseURL string) (string, bool) {
	base, _ := url.Parse(baseURL)

	var best string
	bestArea := -1
	for _, m := range imgTagPattern.FindAllStringSubmatch(html, -1) {
		attrs := map[string]string{}
		for _, a := range attrPattern.FindAllStringSubmatch(m[1], -1) {
			attrs[strings.ToLower(a[1])] = a[2]
		}
		src, ok := attrs["src"]
		if !ok || src == "" {
			continue
		}
		resolved := resolveURL(base, src)

		area := dim(attrs["width"], 1920) * dim(attrs["height"], 1080)
		if area > bestArea {
			bestArea = area
			best = resolved
		}
	}
	return best, best != ""
}

func resolveURL(base *url.URL, ref string) string {
	if base == nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(refURL).String()
}

func dim(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return fallback
		}
		return int(float64(fallback) * pct / 100)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
