package plan

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/convplan/internal/errors"
)

func TestParseIndexSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		spec string
		want []int
	}{
		{"dense list", "0,1,2,3", []int{0, 1, 2, 3}},
		{"absent underscores", "0,_,2,_", []int{0, Absent, 2, Absent}},
		{"absent x markers", "x,1,X,3", []int{Absent, 1, Absent, 3}},
		{"empty tokens absent", "0,,2,", []int{0, Absent, 2, Absent}},
		{"range shorthand", "0..7", []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{"whitespace tolerated", " 4 , 5 ", []int{4, 5}},
		{"empty spec", "", nil},
		{"scattered indexes", "9,0,4", []int{9, 0, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseIndexSpec(tc.spec)
			if err != nil {
				t.Fatalf("ParseIndexSpec(%q) error: %v", tc.spec, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ParseIndexSpec(%q) = %v, want %v", tc.spec, got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("ParseIndexSpec(%q)[%d] = %d, want %d", tc.spec, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseIndexSpec_ConversionErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		spec     string
		token    string
		position int
	}{
		{"alphabetic token", "0,abc,2", "abc", 1},
		{"float token", "1.5,2", "1.5", 0},
		{"negative index", "0,-4", "-4", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseIndexSpec(tc.spec)
			var conv apperrors.ConversionError
			if !errors.As(err, &conv) {
				t.Fatalf("ParseIndexSpec(%q) error = %v, want ConversionError", tc.spec, err)
			}
			if conv.Token != tc.token || conv.Position != tc.position {
				t.Errorf("ConversionError = %+v, want token %q at %d", conv, tc.token, tc.position)
			}
		})
	}
}

func TestParseMaskSpec(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		spec string
		want []bool
	}{
		{"bitstring", "1101", []bool{true, true, false, true}},
		{"comma separated", "1,0,t,f", []bool{true, false, true, false}},
		{"words", "true,false", []bool{true, false}},
		{"empty means all", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseMaskSpec(tc.spec)
			if err != nil {
				t.Fatalf("ParseMaskSpec(%q) error: %v", tc.spec, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ParseMaskSpec(%q) = %v, want %v", tc.spec, got, tc.want)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("ParseMaskSpec(%q)[%d] = %v, want %v", tc.spec, i, got[i], tc.want[i])
				}
			}
		})
	}

	t.Run("bad token", func(t *testing.T) {
		_, err := ParseMaskSpec("1,2,0")
		var conv apperrors.ConversionError
		if !errors.As(err, &conv) {
			t.Errorf("error = %v, want ConversionError", err)
		}
	})
}
