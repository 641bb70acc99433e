package tables

import (
	"errors"
	"strings"
	"testing"
)

const strategyCSV = "TestCase,Researcher,Facility,TestEquipment,DurationValue,OccursBefore\n" +
	"TC1,SITE_R1,SITE_A,SITE_EQ1,10,TC2\n" +
	"TC1,SITE_R1,SITE_A,SITE_EQ1,15,TC2\n" +
	",,,,,\n" +
	"TC2,NORTH_B,SOUTH_C,SOUTH_EQ,tbd\n"

func TestParseCSVAndDecodeStrategy(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader(strategyCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tbl.Columns[0] != "Test Case" || !tbl.Has("Occurs Before") || !tbl.Has("TestEquipment") {
		t.Fatalf("unexpected columns %v", tbl.Columns)
	}
	recs, err := DecodeTestStrategy(tbl)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected blank row skipped, got %d records", len(recs))
	}
	last := recs[2]
	if last.TestCase != "TC2" || last.OccursBefore != "" || last.DurationRaw != "tbd" {
		t.Fatalf("unexpected padded record %+v", last)
	}
	if _, err := last.Duration(); err == nil {
		t.Fatalf("expected non-numeric duration")
	}
}

func TestParseCSVStripsBOMAndRejectsEmpty(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("\ufeffTestFacility,Equipment\nLAB_1,Scope\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	recs, err := DecodeTestFacilities(tbl)
	if err != nil || len(recs) != 1 || recs[0].Facility != "LAB_1" || recs[0].Equipment != "Scope" {
		t.Fatalf("decode facilities: %v %+v", err, recs)
	}
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatalf("expected empty table error")
	}
	if _, err := ParseCSV(strings.NewReader("a,\"b\n")); err == nil {
		t.Fatalf("expected malformed csv error")
	}
}

func TestDecodeMissingColumn(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("TestCase,Facility\nTC1,SITE_A\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = DecodeTestStrategy(tbl)
	var mc *MissingColumnError
	if !errors.As(err, &mc) || mc.Column != ColResearcher || mc.Dataset != DatasetTestStrategy {
		t.Fatalf("expected missing researcher column, got %v", err)
	}
	_, err = DecodeTestFacilities(tbl)
	if !errors.As(err, &mc) || mc.Column != ColTestFacility {
		t.Fatalf("expected missing test facility column, got %v", err)
	}
}

func TestTableValueBounds(t *testing.T) {
	tbl := NewTable([]string{"A"}, [][]string{{" x "}})
	if tbl.Value(0, 0) != "x" || tbl.Value(1, 0) != "" || tbl.Value(0, 3) != "" || tbl.Value(-1, 0) != "" {
		t.Fatalf("unexpected value bounds handling")
	}
}
