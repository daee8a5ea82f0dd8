package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/gocolly/colly"
	"github.com/gocolly/colly/extensions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
)

// Service scrapes a catalog listing page for film references.
type Service interface {
	FilmRefs(ctx context.Context, listURL string) ([]domain.FilmRef, error)
}

type service struct {
	log zerolog.Logger
}

// NewService creates a new listing scraper.
func NewService(log zerolog.Logger) Service {
	return &service{
		log: log.With().Str("module", "scrape").Logger(),
	}
}

// FilmRefs visits listURL and collects every film detail link on it,
// deduplicated by URL in first-seen order. Titles come from the anchor
// text or its title attribute.
func (s *service) FilmRefs(ctx context.Context, listURL string) ([]domain.FilmRef, error) {
	parsed, err := url.Parse(listURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid list url %s", listURL)
	}

	cc := colly.NewCollector(
		colly.AllowedDomains(parsed.Host, parsed.Hostname()),
	)
	extensions.RandomUserAgent(cc)

	refs := []domain.FilmRef{}
	seen := map[string]bool{}

	cc.OnHTML("a[href]", func(e *colly.HTMLElement) {
		href := e.Attr("href")
		if !strings.Contains(href, "/film/") {
			return
		}

		abs := e.Request.AbsoluteURL(href)
		if abs == "" || seen[abs] {
			return
		}

		title := strings.TrimSpace(e.Text)
		if title == "" {
			title = strings.TrimSpace(e.Attr("title"))
		}
		if title == "" {
			return
		}

		seen[abs] = true
		refs = append(refs, domain.FilmRef{Title: title, URL: abs})
		s.log.Debug().Str("title", title).Str("url", abs).Msg("found film link")
	})

	cc.OnRequest(func(r *colly.Request) {
		if err := ctx.Err(); err != nil {
			r.Abort()
			return
		}
		s.log.Debug().Str("url", r.URL.String()).Msg("visiting")
	})

	if err := cc.Visit(listURL); err != nil {
		return nil, errors.Wrapf(err, "failed to scrape %s", listURL)
	}
	cc.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Info().Int("count", len(refs)).Str("url", listURL).Msg("scraped film references")
	return refs, nil
}
