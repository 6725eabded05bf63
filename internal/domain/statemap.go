package domain

import "strconv"

// Coordinate bounds beyond which FARS encodes unknown locations (777.7777,
// 888.8888, 999.9999 for longitude and the two-digit equivalents for
// latitude). Values past these thresholds are unusable for plotting.
const (
	maxPlottableLongitude = 900.0
	maxPlottableLatitude  = 90.0
)

// Point is one accident location in decimal degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Bounds is the plotting window derived from the usable coordinates. Each
// axis ranges over that axis's usable values independently, so a row with a
// sentinel longitude still contributes its latitude.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// StateMap is the cleaned, state-filtered coordinate set handed to a
// renderer. Points keeps only rows where both coordinates are usable;
// Matched and Excluded preserve how much the cleaning removed.
type StateMap struct {
	State     int
	StateName string // empty when the FIPS code is not in the embedded table
	Year      Year
	Points    []Point
	Bounds    Bounds
	HasBounds bool // false when either axis has no usable value
	Matched   int  // rows matching the state, before coordinate cleaning
	Excluded  int  // matched rows dropped for sentinel or missing coordinates
}

// NewStateMap filters one year's records to a single state and cleans the
// coordinates for plotting. The table must carry STATE, LONGITUD and
// LATITUDE columns, and the state must appear among the table's distinct
// STATE values; otherwise the error is an [InvalidStateError]. A state with
// no usable coordinates is not an error: the caller decides how to present
// an empty map.
func NewStateMap(tbl *Table, state int, year Year) (*StateMap, error) {
	if err := tbl.Require(ColState, ColLongitude, ColLatitude); err != nil {
		return nil, err
	}
	states, err := tbl.Column(ColState)
	if err != nil {
		return nil, err
	}
	lons, err := tbl.Column(ColLongitude)
	if err != nil {
		return nil, err
	}
	lats, err := tbl.Column(ColLatitude)
	if err != nil {
		return nil, err
	}

	found := false
	for _, c := range states {
		if n, ok := c.Int(); ok && n == state {
			found = true
			break
		}
	}
	if !found {
		return nil, &InvalidStateError{Token: strconv.Itoa(state), Year: year}
	}

	sm := &StateMap{State: state, StateName: StateName(state), Year: year}
	lonSeen, latSeen := false, false
	for i := range states {
		if n, ok := states[i].Int(); !ok || n != state {
			continue
		}
		sm.Matched++

		lon, lonOK := plottable(lons[i], maxPlottableLongitude)
		lat, latOK := plottable(lats[i], maxPlottableLatitude)
		if lonOK {
			if !lonSeen || lon < sm.Bounds.MinLon {
				sm.Bounds.MinLon = lon
			}
			if !lonSeen || lon > sm.Bounds.MaxLon {
				sm.Bounds.MaxLon = lon
			}
			lonSeen = true
		}
		if latOK {
			if !latSeen || lat < sm.Bounds.MinLat {
				sm.Bounds.MinLat = lat
			}
			if !latSeen || lat > sm.Bounds.MaxLat {
				sm.Bounds.MaxLat = lat
			}
			latSeen = true
		}

		if lonOK && latOK {
			sm.Points = append(sm.Points, Point{Lon: lon, Lat: lat})
		} else {
			sm.Excluded++
		}
	}
	sm.HasBounds = lonSeen && latSeen

	return sm, nil
}

// plottable returns the coordinate value when the cell is numeric and within
// the plottable range. Null and text cells count as missing.
func plottable(c Cell, max float64) (float64, bool) {
	v, ok := c.Float()
	if !ok || v > max {
		return 0, false
	}
	return v, true
}
