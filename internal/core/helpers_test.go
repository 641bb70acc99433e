package core

import "projectdash/pkg/domain"

func row(tc, researcher, facility, equipment, duration, before string) domain.TestStrategyRecord {
	return domain.TestStrategyRecord{
		TestCase:      tc,
		Researcher:    researcher,
		Facility:      facility,
		TestEquipment: equipment,
		DurationRaw:   duration,
		OccursBefore:  before,
	}
}

func strategyTables(rows ...domain.TestStrategyRecord) *Tables {
	return &Tables{Strategy: rows}
}
