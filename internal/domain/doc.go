// Package domain models yearly accident data from the Fatality Analysis
// Reporting System (FARS), the NHTSA census of fatal motor vehicle crashes.
//
// # Data Source
//
// Each calendar year of accident records lives in one flat file named
// accident_<year>.csv.bz2, a bzip2-compressed CSV exported from the FARS
// yearly release (https://www.nhtsa.gov/research-data/fatality-analysis-reporting-system-fars).
// Files are read from a local data directory; nothing is fetched over the
// network and nothing is written back.
//
// # FARS Data Conventions
//
// Columns used by the reporting operations (all other columns pass through
// untouched):
//
//	STATE     FIPS state code, e.g. 1 = Alabama, 48 = Texas. The embedded
//	          table in states.yaml maps codes to names.
//	MONTH     Calendar month of the crash, 1-12.
//	LONGITUD  Longitude in decimal degrees (negative across the US).
//	LATITUDE  Latitude in decimal degrees.
//
// Column labels are case-sensitive. Aggregation adds a lowercase "year"
// column, which never collides with the uppercase YEAR column FARS files
// already carry.
//
// Unknown coordinates:
//
//	The FARS coding manual encodes unreported or unknown coordinates as
//	large sentinel values rather than leaving the field empty:
//
//	  LONGITUD  777.7777 not reported | 888.8888 reported as unknown | 999.9999 unavailable
//	  LATITUDE   77.7777 not reported |  88.8888 reported as unknown |  99.9999 unavailable
//
//	Coordinate cleaning treats LONGITUD > 900 and LATITUDE > 90 as
//	unusable, per axis. See [NewStateMap].
//
// # Typing
//
// Loaded tables infer a column as numeric when every non-empty field in it
// parses as a decimal number; empty fields become null cells and do not
// influence the inference. A single stray non-numeric value demotes the whole
// column to text, which downstream validation then rejects, rather than
// silently coercing.
package domain
