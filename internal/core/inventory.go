package core

import (
	"sort"
	"strings"
)

// EquipmentCount is the number of rows listing a piece of equipment at a facility.
type EquipmentCount struct {
	Equipment string `json:"equipment"`
	Count     int    `json:"count"`
}

// FacilityEquipment is the inventory of one facility.
type FacilityEquipment struct {
	Facility    string           `json:"facility"`
	DisplayName string           `json:"display_name"`
	Equipment   []EquipmentCount `json:"equipment"`
}

// FacilityInventory groups equipment by facility. Facilities keep their first
// appearance order; equipment is sorted by count descending then name, and
// blank equipment cells are dropped.
func FacilityInventory(records []TestFacilityRecord) []FacilityEquipment {
	var order []string
	counts := make(map[string]map[string]int)
	for _, r := range records {
		if r.Facility == "" {
			continue
		}
		if _, ok := counts[r.Facility]; !ok {
			order = append(order, r.Facility)
			counts[r.Facility] = make(map[string]int)
		}
		if r.Equipment != "" {
			counts[r.Facility][r.Equipment]++
		}
	}
	out := make([]FacilityEquipment, 0, len(order))
	for _, fac := range order {
		eq := make([]EquipmentCount, 0, len(counts[fac]))
		for name, n := range counts[fac] {
			eq = append(eq, EquipmentCount{Equipment: name, Count: n})
		}
		sort.Slice(eq, func(i, j int) bool {
			if eq[i].Count != eq[j].Count {
				return eq[i].Count > eq[j].Count
			}
			return eq[i].Equipment < eq[j].Equipment
		})
		out = append(out, FacilityEquipment{
			Facility:    fac,
			DisplayName: strings.ReplaceAll(fac, "_", " "),
			Equipment:   eq,
		})
	}
	return out
}
