package identity

import "testing"

func TestNormalizeAppliesReplacementsThenStripsPeriods(t *testing.T) {
	n := NewNormalizer([]Replacement{
		{Old: "CJ", New: "C.J."},
		{Old: "Herbert", New: "Herb"},
		{Old: "Derrick Jones Jr", New: "Derrick Jones"},
		{Old: "PJ Washington", New: "P.J. Washington"},
	})

	cases := []struct {
		in, want string
	}{
		// "CJ" expands to "C.J." and the periods are stripped right back out.
		{"CJ McCollum", "CJ McCollum"},
		{"C.J. McCollum", "CJ McCollum"},
		{"Herbert Jones", "Herb Jones"},
		{"Derrick Jones Jr", "Derrick Jones"},
		{"PJ Washington", "PJ Washington"},
		{"P.J. Washington", "PJ Washington"},
		{"LeBron James", "LeBron James"},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeReplacementOrderIsStable(t *testing.T) {
	n := NewNormalizer([]Replacement{
		{Old: "AB", New: "B"},
		{Old: "B", New: "C"},
	})
	if got := n.Normalize("AB"); got != "C" {
		t.Fatalf("Normalize(%q) = %q, want %q", "AB", got, "C")
	}
}

func TestNormalizeNoReplacements(t *testing.T) {
	n := NewNormalizer(nil)
	if got := n.Normalize("A.J. Brown"); got != "AJ Brown" {
		t.Fatalf("Normalize stripped periods wrong: %q", got)
	}
}
