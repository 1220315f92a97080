package plan

import (
	"strconv"
	"strings"

	apperrors "github.com/agbru/convplan/internal/errors"
)

// ParseIndexSpec parses a comma-separated index list into the vector form
// Compile accepts. Each element is either a non-negative integer index or
// one of "_", "x", "" marking an absent position:
//
//	"0,1,2,3"  -> [0 1 2 3]
//	"0,_,2,_"  -> [0 Absent 2 Absent]
//	"0..7"     -> [0 1 2 3 4 5 6 7]
//
// A token that is neither an absent marker nor an integer yields an
// apperrors.ConversionError naming the token and its position.
func ParseIndexSpec(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if from, to, ok := parseRange(s); ok {
		out := make([]int, 0, to-from+1)
		for i := from; i <= to; i++ {
			out = append(out, i)
		}
		return out, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, part := range parts {
		tok := strings.TrimSpace(part)
		switch tok {
		case "", "_", "x", "X":
			out[i] = Absent
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 {
			return nil, apperrors.ConversionError{Token: tok, Position: i}
		}
		out[i] = v
	}
	return out, nil
}

// parseRange recognizes the "a..b" shorthand for a dense inclusive index
// range.
func parseRange(s string) (from, to int, ok bool) {
	lo, hi, found := strings.Cut(s, "..")
	if !found {
		return 0, 0, false
	}
	from, err1 := strconv.Atoi(strings.TrimSpace(lo))
	to, err2 := strconv.Atoi(strings.TrimSpace(hi))
	if err1 != nil || err2 != nil || from < 0 || to < from {
		return 0, 0, false
	}
	return from, to, true
}

// ParseMaskSpec parses an output selection mask. Accepts a compact
// bitstring ("111101") or a comma-separated list of 1/0/t/f values. An
// empty spec returns a nil mask, meaning all outputs.
func ParseMaskSpec(s string) ([]bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var toks []string
	if strings.Contains(s, ",") {
		toks = strings.Split(s, ",")
	} else {
		toks = strings.Split(s, "")
	}

	out := make([]bool, len(toks))
	for i, tok := range toks {
		switch strings.ToLower(strings.TrimSpace(tok)) {
		case "1", "t", "true":
			out[i] = true
		case "0", "f", "false":
			out[i] = false
		default:
			return nil, apperrors.ConversionError{Token: tok, Position: i}
		}
	}
	return out, nil
}
