package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/varoOP/kinodays/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileRepository implements domain.FilmRepository using file storage:
// YAML watchlists in, JSON anniversary documents out.
type FileRepository struct {
	log zerolog.Logger
}

// NewFileRepository creates a new file-based repository
func NewFileRepository(log zerolog.Logger) *FileRepository {
	return &FileRepository{
		log: log.With().Str("module", "repository").Logger(),
	}
}

var _ domain.FilmRepository = (*FileRepository)(nil)

// watchlist is the on-disk shape of a watchlist file.
type watchlist struct {
	Films []domain.FilmRef `yaml:"films"`
}

// GetWatchlist reads film references from a YAML watchlist file.
func (r *FileRepository) GetWatchlist(ctx context.Context, path string) ([]domain.FilmRef, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file does not exist: %s: %w", path, err)
		}
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	wl := watchlist{}
	if err := yaml.Unmarshal(body, &wl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml from %s: %w", path, err)
	}

	for i, ref := range wl.Films {
		if ref.Title == "" || ref.URL == "" {
			return nil, fmt.Errorf("watchlist entry %d in %s is missing title or url", i, path)
		}
	}

	r.log.Debug().Str("path", path).Int("count", len(wl.Films)).Msg("loaded watchlist")
	return wl.Films, nil
}

// StoreAnniversaries saves resolved anniversaries to a JSON file.
func (r *FileRepository) StoreAnniversaries(ctx context.Context, path string, anniversaries []domain.Anniversary) error {
	j, err := json.MarshalIndent(anniversaries, "", "   ")
	if err != nil {
		return fmt.Errorf("failed to marshal anniversary data: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer f.Close()

	if _, err = f.Write(j); err != nil {
		return fmt.Errorf("failed to write to file %s: %w", path, err)
	}

	r.log.Debug().Str("path", path).Int("count", len(anniversaries)).Msg("stored anniversaries")
	return nil
}
