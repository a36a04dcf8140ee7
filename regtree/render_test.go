package regtree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/winregfs/parser"
)

func TestRenderStrings(t *testing.T) {
	// Trailing NUL terminators are stripped from string types.
	vd := &parser.ValueData{
		Type:   parser.REG_SZ,
		String: "Rapid7\x00",
	}
	assert.Equal(t, "Rapid7", string(renderValue(vd, false)))

	vd = &parser.ValueData{
		Type:   parser.REG_EXPAND_SZ,
		String: "%SystemRoot%\\system32\x00",
	}
	// Placeholders are not expanded.
	assert.Equal(t, "%SystemRoot%\\system32", string(renderValue(vd, false)))
}

func TestRenderMultiSz(t *testing.T) {
	vd := &parser.ValueData{
		Type:    parser.REG_MULTI_SZ,
		MultiSz: []string{"first", "second", "third"},
	}
	assert.Equal(t, "first\nsecond\nthird", string(renderValue(vd, false)))
	assert.Equal(t, "first\nsecond\nthird\n", string(renderValue(vd, true)))

	// Single element - no delimiter.
	vd = &parser.ValueData{
		Type:    parser.REG_MULTI_SZ,
		MultiSz: []string{"only"},
	}
	assert.Equal(t, "only", string(renderValue(vd, false)))
}

func TestRenderNumbers(t *testing.T) {
	vd := &parser.ValueData{Type: parser.REG_DWORD, Uint64: 84}
	assert.Equal(t, "84", string(renderValue(vd, false)))
	assert.Equal(t, "84\n", string(renderValue(vd, true)))

	vd = &parser.ValueData{Type: parser.REG_DWORD_BIG_ENDIAN, Uint64: 0}
	assert.Equal(t, "0", string(renderValue(vd, false)))

	vd = &parser.ValueData{Type: parser.REG_QWORD, Uint64: 18446744073709551615}
	assert.Equal(t, "18446744073709551615", string(renderValue(vd, false)))
}

func TestRenderLink(t *testing.T) {
	// UTF-16LE encoded link target.
	vd := &parser.ValueData{
		Type: parser.REG_LINK,
		Data: []byte("\\\x00R\x00e\x00g\x00i\x00s\x00t\x00r\x00y\x00\x00\x00"),
	}
	assert.Equal(t, "\\Registry", string(renderValue(vd, false)))
}

func TestRenderBinary(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x0a}

	vd := &parser.ValueData{Type: parser.REG_BINARY, Data: raw}
	assert.Equal(t, raw, renderValue(vd, false))

	// Binary content never gains a newline.
	assert.Equal(t, raw, renderValue(vd, true))

	// Unknown types degrade to raw too.
	vd = &parser.ValueData{Type: parser.ValueType(0x77), Data: raw}
	assert.Equal(t, raw, renderValue(vd, false))
}

func TestRenderEmpty(t *testing.T) {
	// Empty renderings never gain a newline.
	vd := &parser.ValueData{Type: parser.REG_SZ, String: "\x00"}
	assert.Equal(t, "", string(renderValue(vd, true)))
}
