package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/fars-report/internal/domain"
	"github.com/couchcryptid/fars-report/internal/observability"
)

// Resolver maps a year to the file expected to hold that year's records.
type Resolver interface {
	Path(year domain.Year) string
}

// Loader reads one records file into a table.
type Loader interface {
	ReadRecords(path string) (*domain.Table, error)
}

// Renderer draws a cleaned state coordinate set. Implementations own all
// presentation concerns; the pipeline's responsibility ends at the StateMap.
type Renderer interface {
	Render(ctx context.Context, m *domain.StateMap) error
}

// Pipeline orchestrates the reporting operations over a resolver and loader.
// Years are processed sequentially in request order; the operations hold no
// state between calls, so a single Pipeline serves any number of reports.
type Pipeline struct {
	resolver Resolver
	loader   Loader
	renderer Renderer
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Pipeline with the given stages and observability. A nil
// renderer disables drawing in MapState; the cleaned coordinates are still
// computed and returned.
func New(r Resolver, l Loader, rend Renderer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		resolver: r,
		loader:   l,
		renderer: rend,
		logger:   logger,
		metrics:  metrics,
	}
}
