package objectname

import "testing"

func TestName(t *testing.T) {
	if got := Name(7, 2, 0); got != "7_2_0" {
		t.Errorf("Name(7,2,0) = %q, want %q", got, "7_2_0")
	}
}

func TestName_Injective(t *testing.T) {
	triples := [][3]uint64{
		{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {2, 0, 0}, {10, 1, 1}, {1, 10, 1},
	}
	seen := make(map[string][3]uint64)
	for _, tr := range triples {
		name := Name(tr[0], tr[1], tr[2])
		if prev, ok := seen[name]; ok {
			t.Fatalf("collision: %v and %v both map to %q", prev, tr, name)
		}
		seen[name] = tr
	}
}

func TestParse_RoundTrip(t *testing.T) {
	cases := [][3]uint64{{0, 0, 0}, {123456789, 15, 7}, {1, 1, 1}}
	for _, c := range cases {
		name := Name(c[0], c[1], c[2])
		chunkID, blockIndex, version, err := Parse(name)
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		if chunkID != c[0] || blockIndex != c[1] || version != c[2] {
			t.Errorf("Parse(%q) = (%d,%d,%d), want %v", name, chunkID, blockIndex, version, c)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{"", "1_2", "1_2_3_4", "a_2_3", "1_b_3", "1_2_c"}
	for _, name := range cases {
		if _, _, _, err := Parse(name); err == nil {
			t.Errorf("Parse(%q): expected error", name)
		}
	}
}
