package domain

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed states.yaml
var statesYAML []byte

type stateInfo struct {
	Code int    `yaml:"code"`
	Abbr string `yaml:"abbr"`
	Name string `yaml:"name"`
}

var statesByCode = mustLoadStates()

// mustLoadStates parses the embedded FIPS table. The file ships inside the
// binary, so a parse failure is a packaging bug, not a runtime condition.
func mustLoadStates() map[int]stateInfo {
	var list []stateInfo
	if err := yaml.Unmarshal(statesYAML, &list); err != nil {
		panic(fmt.Sprintf("domain: parse embedded state table: %v", err))
	}
	m := make(map[int]stateInfo, len(list))
	for _, s := range list {
		m[s.Code] = s
	}
	return m
}

// StateName returns the full name for a FIPS state code, or "" when the code
// is not in the embedded table. An unknown code is not an error here: the
// data decides which states exist, the table only decorates them.
func StateName(code int) string { return statesByCode[code].Name }

// StateAbbr returns the postal abbreviation for a FIPS state code, or "".
func StateAbbr(code int) string { return statesByCode[code].Abbr }

// StateCodes returns every FIPS code in the embedded table, ascending.
func StateCodes() []int {
	codes := make([]int, 0, len(statesByCode))
	for c := range statesByCode {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}
