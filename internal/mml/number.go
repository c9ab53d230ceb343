package mml

import "math"

// readNumber scans an unsigned decimal literal starting at at. It returns -1
// and at unchanged when no digit is present. Oversized literals saturate.
func readNumber(s string, at int) (int, int) {
	i := at
	v := 0
	for i < len(s) && isDigit(s[i]) {
		if v <= (math.MaxInt32-9)/10 {
			v = v*10 + int(s[i]-'0')
		} else {
			v = math.MaxInt32
		}
		i++
	}
	if i == at {
		return -1, at
	}
	return v, i
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isBlank(ch byte) bool { return ch == ' ' || ch == '\t' || ch == '\n' }

func upper(ch byte) byte {
	if ch >= 'a' && ch <= 'z' {
		return ch - 'a' + 'A'
	}
	return ch
}
