// Package phonetic implements Kölner Phonetik ("Cologne phonetic"), a
// German-oriented phonetic algorithm mapping names to digit strings.
//
// The encoder walks the normalized name once, left to right, keeping a
// cursor so context-sensitive rules can look at the previous and next
// letter (the letter before a/h/k/l/o/q/r/u/x, the letter after s/z, and
// so on), the same scanning shape a hand-rolled phonetic algorithm needs
// regardless of which language's rule table it implements.
//
// Rules (per published Kölner Phonetik table):
//
//	0: A E I J O U Y
//	1: B; P except before H
//	2: D T except before C S Z
//	3: F V W; P before H
//	4: G K Q; C at word start before A H K L O Q R U X; C before A H K O Q U X
//	   unless the preceding letter is S or Z; X except after C K Q
//	5: L
//	6: M N
//	7: R
//	8: C in all other cases; S Z; D T before C S Z; X after C K Q
//
// H carries no code and is otherwise transparent — it neither breaks nor
// contributes to adjacency. After coding, adjacent repeated digits collapse
// to one, and any 0 is dropped unless it is the very first code produced.
package phonetic

// Encode computes the Kölner Phonetik code for a normalized name. The
// caller is expected to have already lowercased and accent-folded the
// input (internal/normalize does this); Encode additionally drops hyphens,
// spaces, and digits so a hyphenated compound name encodes as one token
// (spec §9: hyphens are dropped before encoding). Empty input yields "".
func Encode(name string) string {
	letters := onlyLetters(name)
	if len(letters) == 0 {
		return ""
	}

	codes := make([]byte, 0, len(letters))
	for i, c := range letters {
		switch c {
		case 'h':
			continue // silent
		case 'p':
			if peek(letters, i+1) == 'h' {
				codes = append(codes, '3')
			} else {
				codes = append(codes, '1')
			}
		case 'd', 't':
			if isCSZ(peek(letters, i+1)) {
				codes = append(codes, '8')
			} else {
				codes = append(codes, '2')
			}
		case 'x':
			if isCKQ(peek(letters, i-1)) {
				codes = append(codes, '8')
			} else {
				codes = append(codes, '4')
			}
		case 'c':
			codes = append(codes, cCode(letters, i))
		default:
			if code, ok := baseCode(c); ok {
				codes = append(codes, code)
			}
		}
	}

	return collapse(codes)
}

// Equal reports whether two normalized names encode to the same non-empty
// code. Two empty codes are intentionally not considered equal: phonetic
// equality with no information on either side is meaningless (see
// internal/matching, which always gates phonetic fallback on both codes
// being computed from non-empty names).
func Equal(a, b string) bool {
	ca, cb := Encode(a), Encode(b)
	return ca != "" && ca == cb
}

func peek(letters []byte, i int) byte {
	if i < 0 || i >= len(letters) {
		return 0
	}
	return letters[i]
}

func isCSZ(b byte) bool { return b == 'c' || b == 's' || b == 'z' }
func isCKQ(b byte) bool { return b == 'c' || b == 'k' || b == 'q' }

func inSet(b byte, set string) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == b {
			return true
		}
	}
	return false
}

// cCode resolves the context-sensitive code for the letter C at position i.
func cCode(letters []byte, i int) byte {
	next := peek(letters, i+1)
	prev := peek(letters, i-1)

	if i == 0 && inSet(next, "ahklorux") {
		return '4'
	}
	if inSet(next, "ahkoqux") && prev != 's' && prev != 'z' {
		return '4'
	}
	return '8'
}

// baseCode returns the context-free digit for letters whose code never
// depends on neighbors. C, D, P, T, X are handled by their callers above;
// H is silent.
func baseCode(c byte) (byte, bool) {
	switch c {
	case 'a', 'e', 'i', 'j', 'o', 'u', 'y':
		return '0', true
	case 'b':
		return '1', true
	case 'f', 'v', 'w':
		return '3', true
	case 'g', 'k', 'q':
		return '4', true
	case 'l':
		return '5', true
	case 'm', 'n':
		return '6', true
	case 'r':
		return '7', true
	case 's', 'z':
		return '8', true
	default:
		return 0, false
	}
}

// collapse merges adjacent repeated digits and drops every 0 except a
// leading one.
func collapse(codes []byte) string {
	if len(codes) == 0 {
		return ""
	}

	deduped := make([]byte, 0, len(codes))
	var prev byte = 255
	for _, c := range codes {
		if c != prev {
			deduped = append(deduped, c)
		}
		prev = c
	}

	out := make([]byte, 0, len(deduped))
	for i, c := range deduped {
		if c == '0' && i != 0 {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// onlyLetters lowercases s and retains a-z only, dropping hyphens, spaces,
// digits and any other punctuation that survived upstream normalization.
func onlyLetters(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 'a' && c <= 'z' {
			out = append(out, c)
		}
	}
	return out
}
