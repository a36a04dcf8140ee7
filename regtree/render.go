package regtree

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"www.velocidex.com/golang/winregfs/parser"
)

// Types whose rendering is text. Numeric types count as text because
// we render them in decimal, e.g. a DWORD of 84 reads back as "84"
// and not a raw little endian quad.
func isTextType(t parser.ValueType) bool {
	switch t {
	case parser.REG_SZ, parser.REG_EXPAND_SZ, parser.REG_MULTI_SZ,
		parser.REG_DWORD, parser.REG_DWORD_BIG_ENDIAN,
		parser.REG_QWORD, parser.REG_LINK:
		return true
	}
	return false
}

// renderValue produces the exact bytes exposed as the file content
// for a value. It is a pure function of the declared type and the
// stored payload:
//
//   - REG_SZ / REG_EXPAND_SZ: decoded text with trailing NULs
//     stripped. Environment variable placeholders are left
//     unexpanded.
//   - REG_MULTI_SZ: component strings joined with \n. The delimiter
//     is a documented policy - the joined form is not reversible
//     without knowing it.
//   - REG_DWORD / REG_DWORD_BIG_ENDIAN / REG_QWORD: decimal text.
//   - REG_LINK: the UTF-16LE target decoded to UTF-8.
//   - Everything else, including unknown types: raw bytes unmodified.
//
// When append_newline is set a single trailing newline is added to
// non-empty text renderings that do not already end in one.
func renderValue(vd *parser.ValueData, append_newline bool) []byte {
	var data []byte

	switch vd.Type {
	case parser.REG_SZ, parser.REG_EXPAND_SZ:
		data = []byte(strings.TrimRight(vd.String, "\x00"))

	case parser.REG_MULTI_SZ:
		data = []byte(strings.Join(vd.MultiSz, "\n"))

	case parser.REG_DWORD, parser.REG_DWORD_BIG_ENDIAN, parser.REG_QWORD:
		data = []byte(strconv.FormatUint(vd.Uint64, 10))

	case parser.REG_LINK:
		data = []byte(decodeUTF16String(vd.Data))

	default:
		// REG_BINARY, REG_NONE and anything we do not model pass
		// through raw.
		data = vd.Data
	}

	if append_newline && isTextType(vd.Type) &&
		len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}

	return data
}

func decodeUTF16String(data []byte) string {
	decoder := unicode.UTF16(
		unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(data)
	if err != nil {
		// Undecodable link data degrades to raw bytes.
		return string(data)
	}
	return strings.TrimRight(string(decoded), "\x00")
}
