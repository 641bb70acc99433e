package tables

import (
	"fmt"

	"projectdash/pkg/domain"
)

// Canonical column names.
const (
	ColTestCase      = "Test Case"
	ColResearcher    = "Researcher"
	ColFacility      = "Facility"
	ColTestEquipment = "Test Equipment"
	ColDurationValue = "Duration Value"
	ColOccursBefore  = "Occurs Before"
	ColTestFacility  = "Test Facility"
	ColEquipment     = "Equipment"
)

// MissingColumnError reports a required column absent from a dataset.
type MissingColumnError struct {
	Dataset string
	Column  string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Dataset, e.Column)
}

func require(t Table, dataset string, cols ...string) (map[string]int, error) {
	out := make(map[string]int, len(cols))
	for _, c := range cols {
		i, ok := t.Index(c)
		if !ok {
			return nil, &MissingColumnError{Dataset: dataset, Column: c}
		}
		out[c] = i
	}
	return out, nil
}

// DecodeTestStrategy maps a TestStrategy table to records. Occurs Before is
// optional; fully blank rows are skipped.
func DecodeTestStrategy(t Table) ([]domain.TestStrategyRecord, error) {
	idx, err := require(t, DatasetTestStrategy, ColTestCase, ColResearcher, ColFacility, ColTestEquipment, ColDurationValue)
	if err != nil {
		return nil, err
	}
	next, hasNext := t.Index(ColOccursBefore)
	out := make([]domain.TestStrategyRecord, 0, len(t.Rows))
	for row := range t.Rows {
		if t.blankRow(row) {
			continue
		}
		rec := domain.TestStrategyRecord{
			TestCase:      t.Value(row, idx[ColTestCase]),
			Researcher:    t.Value(row, idx[ColResearcher]),
			Facility:      t.Value(row, idx[ColFacility]),
			TestEquipment: t.Value(row, idx[ColTestEquipment]),
			DurationRaw:   t.Value(row, idx[ColDurationValue]),
		}
		if hasNext {
			rec.OccursBefore = t.Value(row, next)
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeTestFacilities maps a TestFacilities table to records.
func DecodeTestFacilities(t Table) ([]domain.TestFacilityRecord, error) {
	idx, err := require(t, DatasetTestFacilities, ColTestFacility)
	if err != nil {
		return nil, err
	}
	eq, hasEq := t.Index(ColEquipment)
	out := make([]domain.TestFacilityRecord, 0, len(t.Rows))
	for row := range t.Rows {
		if t.blankRow(row) {
			continue
		}
		rec := domain.TestFacilityRecord{Facility: t.Value(row, idx[ColTestFacility])}
		if hasEq {
			rec.Equipment = t.Value(row, eq)
		}
		out = append(out, rec)
	}
	return out, nil
}
