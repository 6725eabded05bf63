package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-report/internal/domain"
)

// MapState loads one year's full records, filters them to a state, cleans
// unusable coordinates, and hands the result to the renderer. Unlike the
// aggregation path, failures here are hard: a bad token, a missing file, or
// a state absent from the data aborts the call. A state with nothing to draw
// is not a failure; the StateMap comes back with zero points and the
// renderer is not invoked.
func (p *Pipeline) MapState(ctx context.Context, stateToken, yearToken string) (*domain.StateMap, error) {
	year, err := domain.ParseYear(yearToken)
	if err != nil {
		return nil, err
	}
	state, err := parseState(stateToken, year)
	if err != nil {
		return nil, err
	}

	tbl, err := p.loader.ReadRecords(p.resolver.Path(year))
	if err != nil {
		return nil, err
	}

	sm, err := domain.NewStateMap(tbl, state, year)
	if err != nil {
		return nil, err
	}
	p.metrics.PointsPlotted.Add(float64(len(sm.Points)))
	p.metrics.PointsExcluded.Add(float64(sm.Excluded))

	if len(sm.Points) == 0 {
		if sm.Matched == 0 {
			p.logger.Info("no accidents to plot", "state", stateToken, "year", year)
		} else {
			p.logger.Info("no mappable coordinates", "state", stateToken, "year", year, "matched", sm.Matched)
		}
		return sm, nil
	}

	p.logger.Info("mapped state",
		"state", stateToken,
		"state_name", sm.StateName,
		"year", year,
		"points", len(sm.Points),
		"excluded", sm.Excluded,
	)

	if p.renderer == nil {
		return sm, nil
	}
	if err := p.renderer.Render(ctx, sm); err != nil {
		return nil, fmt.Errorf("render state map: %w", err)
	}
	return sm, nil
}

// parseState canonicalizes a state token. FARS identifies states by FIPS
// code, so the token must coerce to an integer; a token that does not is as
// invalid as a code absent from the data.
func parseState(token string, year domain.Year) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil {
		return 0, &domain.InvalidStateError{Token: token, Year: year}
	}
	return n, nil
}
