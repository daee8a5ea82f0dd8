package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<html><body>
<ul class="film-list">
	<li><a href="/film/blade-runner/">Blade Runner</a></li>
	<li><a href="/film/alien/">Alien</a></li>
	<li><a href="/film/blade-runner/">Blade Runner</a></li>
	<li><a href="/film/heat/" title="Heat"><img src="poster.jpg"></a></li>
	<li><a href="/about/">About this site</a></li>
</ul>
</body></html>`

func TestFilmRefs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listPage))
	}))
	defer srv.Close()

	s := NewService(zerolog.Nop())
	refs, err := s.FilmRefs(context.Background(), srv.URL+"/list/classics/")
	require.NoError(t, err)

	require.Len(t, refs, 3)
	assert.Equal(t, "Blade Runner", refs[0].Title)
	assert.Equal(t, srv.URL+"/film/blade-runner/", refs[0].URL)
	assert.Equal(t, "Alien", refs[1].Title)
	assert.Equal(t, "Heat", refs[2].Title, "title attribute used when anchor has no text")
}

func TestFilmRefsInvalidURL(t *testing.T) {
	s := NewService(zerolog.Nop())
	_, err := s.FilmRefs(context.Background(), "://not-a-url")
	require.Error(t, err)
}

func TestFilmRefsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewService(zerolog.Nop())
	_, err := s.FilmRefs(context.Background(), srv.URL+"/list/classics/")
	require.Error(t, err)
}
