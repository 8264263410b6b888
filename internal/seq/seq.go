// Package seq produces human-friendly invoice number sequences.
package seq

// Next returns the invoice number that follows current: the trailing
// alphanumeric run is incremented odometer-style with carry ("9" -> "10",
// "a" -> "b", "Az" -> "Ba", "zz" -> "aaa", "INV-009" -> "INV-010"). A carry
// past a non-alphanumeric character, or past the start of the string, grows
// the number by one position instead of crossing it.
func Next(current string) string {
	if current == "" {
		return "1"
	}
	b := []byte(current)
	for i := len(b) - 1; i >= 0; i-- {
		c := b[i]
		switch {
		case c >= '0' && c <= '8', c >= 'a' && c <= 'y', c >= 'A' && c <= 'Y':
			b[i] = c + 1
			return string(b)
		case c == '9':
			b[i] = '0'
		case c == 'z':
			b[i] = 'a'
		case c == 'Z':
			b[i] = 'A'
		default:
			// A trailing non-alphanumeric ("INV-") has nothing to
			// increment; start a new counter after it.
			if i == len(b)-1 {
				return current + "1"
			}
			return string(b[:i+1]) + seedFor(b[i+1]) + string(b[i+1:])
		}
	}
	return seedFor(b[0]) + string(b)
}

func seedFor(c byte) string {
	switch {
	case c >= 'a' && c <= 'z':
		return "a"
	case c >= 'A' && c <= 'Z':
		return "A"
	default:
		return "1"
	}
}
