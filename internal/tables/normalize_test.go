package tables

import "testing"

func TestNormalizeColumn(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"TestCase", "Test Case"},
		{"DurationValue", "Duration Value"},
		{"OccursBefore", "Occurs Before"},
		{"Duration Value", "Duration Value"},
		{"Test   Equipment", "Test Equipment"},
		{"  Researcher  ", "Researcher"},
		{"ResponsibleOrg", "Responsible Organization"},
		{"Responsible Org", "Responsible Organization"},
		{"Organization", "Organization"},
		{"OrgChart", "Org Chart"},
		{"TestID", "Test I D"},
		{"facility", "facility"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeColumn(tc.in); got != tc.want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeColumnIdempotent(t *testing.T) {
	for _, in := range []string{"TestCase", "Test  Equipment", "LeadOrg", "Occurs Before"} {
		once := NormalizeColumn(in)
		if twice := NormalizeColumn(once); twice != once {
			t.Errorf("NormalizeColumn not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCanonical(t *testing.T) {
	if Canonical("Test\tCase") != "Test Case" || Canonical("TestCase") != "Test Case" {
		t.Fatalf("unexpected canonical forms")
	}
	if Canonical("testcase") == Canonical("Test Case") {
		t.Fatalf("lookup must stay case-sensitive")
	}
	got := NormalizeHeader([]string{"TestCase", "Facility"})
	if len(got) != 2 || got[0] != "Test Case" || got[1] != "Facility" {
		t.Fatalf("NormalizeHeader = %v", got)
	}
}
