package regtree

// Registry key and value names may contain characters which can not
// appear in a filesystem name, most importantly the / path
// separator. We expose names percent encoded and reverse the
// encoding when matching an incoming path segment. The transform is
// a bijection on the escaped character class so readdir output fed
// back into lookup always round trips.

var hexTable = []byte("0123456789ABCDEF")

func shouldEscape(c byte) bool {
	return c == '/' || c == '%' || c < 0x20
}

func Escape(name string) string {
	escaped := false
	for i := 0; i < len(name); i++ {
		if shouldEscape(name[i]) {
			escaped = true
			break
		}
	}
	if !escaped {
		return name
	}

	result := make([]byte, 0, len(name)+8)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if shouldEscape(c) {
			result = append(result, '%', hexTable[c>>4], hexTable[c&15])
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}

func Unescape(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '%' && i+2 < len(name) {
			hi, ok1 := unhex(name[i+1])
			lo, ok2 := unhex(name[i+2])
			if ok1 && ok2 {
				result = append(result, hi<<4|lo)
				i += 2
				continue
			}
		}
		result = append(result, c)
	}
	return string(result)
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
