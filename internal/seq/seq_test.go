package seq

import "testing"

func TestNext(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"", "1"},
		{"1", "2"},
		{"9", "10"},
		{"19", "20"},
		{"99", "100"},
		{"a", "b"},
		{"z", "aa"},
		{"az", "ba"},
		{"zz", "aaa"},
		{"Z", "AA"},
		{"Az", "Ba"},
		{"INV-001", "INV-002"},
		{"INV-009", "INV-010"},
		{"INV-999", "INV-1000"},
		{"INV-9", "INV-10"},
		{"A9", "B0"},
		{"INV-", "INV-1"},
		{"1.", "1.1"},
		{"-", "-1"},
	}
	for _, tc := range cases {
		if got := Next(tc.current); got != tc.want {
			t.Errorf("Next(%q) = %q, want %q", tc.current, got, tc.want)
		}
	}
}

func TestNextNeverReturnsInput(t *testing.T) {
	n := "1"
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		if seen[n] {
			t.Fatalf("sequence repeated %q after %d steps", n, i)
		}
		seen[n] = true
		n = Next(n)
	}
}
