package pipeline

import (
	"context"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// SummarizeYears aggregates the requested years and pivots the result into a
// month-by-year count matrix. Failed years contribute nothing beyond their
// ReadYears warning; when every year fails the matrix is empty with zero
// year columns. The returned error covers internal invariant violations
// only, never an individual bad year.
func (p *Pipeline) SummarizeYears(ctx context.Context, tokens []string) (*domain.SummaryMatrix, error) {
	results := p.ReadYears(ctx, tokens)

	tables := make([]*domain.Table, 0, len(results))
	for _, r := range results {
		if r.Failed() {
			continue
		}
		tables = append(tables, r.Table)
	}

	agg, err := domain.Concat(tables...)
	if err != nil {
		return nil, err
	}
	matrix, skipped, err := domain.Summarize(agg)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		p.logger.Warn("ignoring rows with no MONTH value", "rows", skipped)
		p.metrics.RowsSkipped.Add(float64(skipped))
	}

	p.logger.Info("summarized years",
		"requested", len(tokens),
		"loaded", len(tables),
		"months", len(matrix.Months()),
		"years", len(matrix.Years()),
	)
	return matrix, nil
}
