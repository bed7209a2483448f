package manifest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{"leading zeros kept", "03_main", "03", true},
		{"multi digit", "123abc", "123", true},
		{"only digits", "42", "42", true},
		{"no number", "readme", "", false},
		{"digit later", "intro_01", "", false},
		{"empty", "", "", false},
		{"arabic-indic digit", "٣_main", "٣", true},
		{"fullwidth digits", "０３_main", "０３", true},
		{"non-digit number rune", "½_half", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractNumber(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ExtractNumber(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestSortNames(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"numeric not lexical", []string{"10_b", "2_a", "1_c"}, []string{"1_c", "2_a", "10_b"}},
		{"nine before ten", []string{"10_y", "9_x"}, []string{"9_x", "10_y"}},
		{"unnumbered trail", []string{"readme", "1_intro"}, []string{"1_intro", "readme"}},
		{"unnumbered by name", []string{"zeta", "alpha", "00_start"}, []string{"00_start", "alpha", "zeta"}},
		{"equal value by name", []string{"3_b", "03_a"}, []string{"03_a", "3_b"}},
		{"huge numbers", []string{"100000000000000000000000_x", "99999999999999999999999_y"}, []string{"99999999999999999999999_y", "100000000000000000000000_x"}},
		{"zero", []string{"1_a", "0_b", "000_c"}, []string{"000_c", "0_b", "1_a"}},
		{"fullwidth by value", []string{"１０_b", "2_a", "０３_c"}, []string{"2_a", "０３_c", "１０_b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := append([]string(nil), tt.input...)
			SortNames(names)
			if diff := cmp.Diff(tt.expected, names); diff != "" {
				t.Errorf("SortNames(%v) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestSortKeyCompare(t *testing.T) {
	if c := SortKey("05_x").Compare(SortKey("5_x")); c == 0 {
		t.Error("expected distinct names with equal numbers to compare unequal")
	}
	if c := SortKey("a").Compare(SortKey("a")); c != 0 {
		t.Errorf("expected identical names to compare equal, got %d", c)
	}
	if !Less("999_z", "readme") {
		t.Error("expected numbered name before unnumbered name")
	}
}
