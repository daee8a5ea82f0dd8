package fetch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
)

// ErrNoReleaseDate is returned when a film page was fetched but no
// release-date content could be located in it.
var ErrNoReleaseDate = errors.New("release date not found in page content")

const defaultUserAgent = "kinodays (+https://github.com/varoOP/kinodays)"

// ReleaseDateSource locates the raw release-date string on a film's
// detail page. Validation of the string is the caller's concern.
type ReleaseDateSource interface {
	ReleaseDate(ctx context.Context, url string) (string, error)
}

// HTTPSource fetches film pages over HTTP and extracts the release
// date from the parsed document.
type HTTPSource struct {
	log       zerolog.Logger
	client    *http.Client
	userAgent string
}

// NewHTTPSource creates a new HTTP-backed release-date source.
func NewHTTPSource(log zerolog.Logger, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		log:       log.With().Str("module", "fetch").Logger(),
		client:    &http.Client{Timeout: timeout},
		userAgent: defaultUserAgent,
	}
}

// ReleaseDate fetches url and returns the first release-date string
// found in its content.
func (s *HTTPSource) ReleaseDate(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse page at %s", url)
	}

	date := findReleaseDate(doc)
	if date == "" {
		return "", errors.Wrapf(ErrNoReleaseDate, "no release date at %s", url)
	}

	s.log.Debug().Str("url", url).Str("release_date", date).Msg("extracted release date")
	return date, nil
}

// findReleaseDate walks the document for, in order of preference, a
// datePublished meta/itemprop node, a <time datetime> attribute, and
// finally the text of any node carrying a release-date class.
func findReleaseDate(doc *html.Node) string {
	var fromMeta, fromTime, fromClass string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "meta" && attr(n, "itemprop") == "datePublished":
				if fromMeta == "" {
					fromMeta = strings.TrimSpace(attr(n, "content"))
				}
			case attr(n, "itemprop") == "datePublished":
				if fromMeta == "" {
					fromMeta = strings.TrimSpace(nodeText(n))
				}
			case n.Data == "time" && attr(n, "datetime") != "":
				if fromTime == "" {
					fromTime = strings.TrimSpace(attr(n, "datetime"))
				}
			case strings.Contains(attr(n, "class"), "release-date"):
				if fromClass == "" {
					fromClass = strings.TrimSpace(nodeText(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if fromMeta != "" {
		return fromMeta
	}
	if fromTime != "" {
		return fromTime
	}
	return fromClass
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		} else {
			b.WriteString(nodeText(c))
		}
	}
	return b.String()
}
