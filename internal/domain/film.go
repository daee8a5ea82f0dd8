package domain

import "time"

// CacheTTL is how long a cached release date stays usable before a
// refetch is required. Fixed, not configurable per call.
const CacheTTL = 24 * time.Hour

// DateLayout is the canonical storage format for calendar dates in the
// cache database and in result files.
const DateLayout = "2006-01-02"

// FilmRef identifies a catalog entry prior to resolution. The detail
// URL is the unique key across a run.
type FilmRef struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// CacheEntry is one row of the release-date cache, keyed by detail URL.
type CacheEntry struct {
	URL             string
	Title           string
	ReleaseDate     time.Time
	NextAnniversary time.Time
	LastFetched     time.Time
}

// Valid reports whether the entry is usable without a refetch.
func (e *CacheEntry) Valid(now time.Time) bool {
	return now.Sub(e.LastFetched) < CacheTTL
}

// Anniversary is the resolved output record for one film.
type Anniversary struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	ReleaseDate     string `json:"releaseDate"`
	NextAnniversary string `json:"nextAnniversary"`
	MilestoneDate   string `json:"milestoneDate,omitempty"`
	MilestoneYears  int    `json:"milestoneYears,omitempty"`
}

// Statistics summarizes a completed run.
type Statistics struct {
	Total     int
	Resolved  int
	Failed    int
	CacheHits int
}
