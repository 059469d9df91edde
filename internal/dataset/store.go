package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-gota/gota/dataframe"
	"golang.org/x/sync/errgroup"

	apperrors "edacli/internal/errors"
	"edacli/internal/files"
)

// DefaultListConcurrency bounds how many datasets List loads at once.
const DefaultListConcurrency = 4

// Info describes one dataset of a Store.
type Info struct {
	files.FileInfo
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
	Error   string   `json:"error,omitempty"`
}

// Store serves the datasets found in a data directory.
type Store struct {
	discovery   *files.Discovery
	concurrency int
	logger      *slog.Logger
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		discovery:   files.NewDiscovery(dir),
		concurrency: DefaultListConcurrency,
		logger:      logger.With(slog.String("component", "dataset_store")),
	}
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.discovery.BasePath()
}

// List loads every dataset of the directory to report its shape. A dataset
// that fails to parse is listed with its Error set rather than failing the
// whole listing.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	found, err := s.discovery.FindDatasets()
	if err != nil {
		return nil, apperrors.NewStorageError("list datasets", err).WithContext("dir", s.Dir())
	}

	infos := make([]Info, len(found))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, fi := range found {
		i, fi := i, fi
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info := Info{FileInfo: fi, Columns: []string{}}
			df, err := Load(fi.Path, LoadOptions{})
			if err != nil {
				info.Error = err.Error()
				s.logger.WarnContext(ctx, "dataset unreadable",
					slog.String("dataset", fi.Name),
					slog.String("error", err.Error()))
			} else {
				info.Rows = df.Nrow()
				info.Columns = df.Names()
			}
			infos[i] = info
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Open loads the named dataset. Names are plain file names inside the data
// directory; anything else is rejected.
func (s *Store) Open(ctx context.Context, name string) (dataframe.DataFrame, error) {
	if err := ctx.Err(); err != nil {
		return dataframe.DataFrame{}, err
	}

	start := time.Now()
	fi, err := s.discovery.Resolve(name)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrInvalidName), errors.Is(err, files.ErrUnsupportedFormat):
			return dataframe.DataFrame{}, apperrors.NewAppValidationError(err.Error()).WithContext("dataset", name)
		case errors.Is(err, os.ErrNotExist):
			return dataframe.DataFrame{}, apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", name), err).
				WithContext("dataset", name)
		default:
			return dataframe.DataFrame{}, apperrors.NewStorageError("resolve dataset", err).WithContext("dataset", name)
		}
	}

	df, err := Load(fi.Path, LoadOptions{})
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	s.logger.DebugContext(ctx, "dataset loaded",
		slog.String("dataset", name),
		slog.Int("rows", df.Nrow()),
		slog.Int("columns", df.Ncol()),
		slog.Duration("duration", time.Since(start)))
	return df, nil
}
