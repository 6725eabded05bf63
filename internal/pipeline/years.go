package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// YearResult is one slot of a ReadYears call: either a narrowed MONTH+year
// table or the error that disqualified the year. Slots align one-to-one with
// the requested tokens, in request order.
type YearResult struct {
	Token string
	Year  domain.Year // zero when the token did not parse
	Table *domain.Table
	Err   error
}

// Failed reports whether the slot carries an error instead of a table.
func (r YearResult) Failed() bool { return r.Err != nil }

// ReadYears loads and narrows each requested year independently. A year that
// cannot be parsed, located, or validated is downgraded to a warning and an
// errored slot; one bad year never aborts the others. The result always has
// len(tokens) slots.
func (p *Pipeline) ReadYears(ctx context.Context, tokens []string) []YearResult {
	results := make([]YearResult, len(tokens))
	for i, token := range tokens {
		if err := ctx.Err(); err != nil {
			results[i] = YearResult{Token: token, Err: err}
			continue
		}
		p.metrics.YearsRequested.Inc()
		results[i] = p.readYear(token)
		if results[i].Failed() {
			p.logger.Warn("skipping year", "year", token, "error", results[i].Err)
			p.metrics.YearLoadFailures.Inc()
		}
	}
	return results
}

// readYear parses one token, loads its file, and narrows the table for
// aggregation. Every failure mode returns through the slot error.
func (p *Pipeline) readYear(token string) YearResult {
	year, err := domain.ParseYear(token)
	if err != nil {
		return YearResult{Token: token, Err: err}
	}

	start := time.Now()
	tbl, err := p.loader.ReadRecords(p.resolver.Path(year))
	if err != nil {
		return YearResult{Token: token, Year: year, Err: err}
	}
	p.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	p.metrics.RecordsLoaded.Add(float64(tbl.NumRows()))

	narrowed, err := narrowForSummary(tbl, year)
	if err != nil {
		return YearResult{Token: token, Year: year, Err: err}
	}
	return YearResult{Token: token, Year: year, Table: narrowed}
}

// narrowForSummary tags a year's records with a constant year column and
// projects down to the two columns summarization needs. The MONTH column
// must be numeric with whole values; null months pass through and are
// handled at pivot time.
func narrowForSummary(tbl *domain.Table, year domain.Year) (*domain.Table, error) {
	if err := tbl.Require(domain.ColMonth); err != nil {
		return nil, err
	}
	months, err := tbl.Column(domain.ColMonth)
	if err != nil {
		return nil, err
	}
	for i, c := range months {
		if c.IsNull() {
			continue
		}
		if _, ok := c.Int(); !ok {
			return nil, fmt.Errorf("row %d: non-integer MONTH value %q", i, c.Text())
		}
	}

	tagged, err := tbl.WithColumn(domain.ColYear, domain.NumberCell(float64(year.Int())))
	if err != nil {
		return nil, err
	}
	return tagged.Select(domain.ColMonth, domain.ColYear)
}
