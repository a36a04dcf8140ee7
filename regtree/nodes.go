package regtree

import (
	"strings"
	"sync"
	"time"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/winregfs/parser"
)

const (
	MAX_EMBEDDED_REG_VALUE = 4 * 1024
)

// A resolved node is either a KeyNode (directory) or a ValueNode
// (file), never both.
type Node interface {
	// The escaped name as it appears in directory listings.
	Name() string
	FullPath() string
	IsDir() bool
	Size() int64
	ModTime() time.Time
	Data() *ordereddict.Dict
}

type KeyNode struct {
	components []string
	modtime    time.Time

	// nil for directories synthesized from hive mount prefixes
	// (e.g. HKLM when mounting a config directory).
	key parser.KeyRef

	ambiguous bool
}

func (self *KeyNode) Name() string {
	if len(self.components) == 0 {
		return ""
	}
	return self.components[len(self.components)-1]
}

func (self *KeyNode) FullPath() string {
	return strings.Join(self.components, "/")
}

func (self *KeyNode) IsDir() bool {
	return true
}

func (self *KeyNode) Size() int64 {
	return 0
}

func (self *KeyNode) ModTime() time.Time {
	return self.modtime
}

func (self *KeyNode) Data() *ordereddict.Dict {
	return ordereddict.NewDict().Set("type", "Key")
}

type ValueNode struct {
	components []string

	// The original stored name - may differ from the display name
	// through escaping, the type extension or the @ convention for
	// the default value.
	value_name string

	type_name  string
	value_type parser.ValueType

	// Values are not timestamped in the hive, they inherit the
	// owning key's last write time.
	modtime time.Time

	value parser.ValueRef

	append_newline bool
	ambiguous      bool

	mu       sync.Mutex
	rendered []byte
	is_set   bool
}

func (self *ValueNode) Name() string {
	return self.components[len(self.components)-1]
}

func (self *ValueNode) FullPath() string {
	return strings.Join(self.components, "/")
}

func (self *ValueNode) IsDir() bool {
	return false
}

// Size is the length of the rendered content, not the raw stored
// length - rendering may re-encode.
func (self *ValueNode) Size() int64 {
	return int64(len(self.Render()))
}

func (self *ValueNode) ModTime() time.Time {
	return self.modtime
}

func (self *ValueNode) TypeTag() string {
	return self.type_name
}

func (self *ValueNode) IsText() bool {
	return isTextType(self.value_type)
}

// Render produces the file content for this value. The result is
// cached on the node - the hive is immutable for the life of the
// mount so it can never go stale.
func (self *ValueNode) Render() []byte {
	self.mu.Lock()
	defer self.mu.Unlock()

	if !self.is_set {
		metricsRenderValue.Inc()
		self.rendered = renderValue(
			self.value.ValueData(), self.append_newline)
		self.is_set = true
	}

	return self.rendered
}

// ReadRange returns content[offset:offset+length] clipped to the
// available bytes. An offset past the end yields an empty slice,
// never an error.
func (self *ValueNode) ReadRange(offset, length int64) []byte {
	data := self.Render()

	if offset < 0 || offset >= int64(len(data)) {
		return nil
	}

	end := offset + length
	if end > int64(len(data)) {
		end = int64(len(data))
	}

	return data[offset:end]
}

func (self *ValueNode) Data() *ordereddict.Dict {
	vd := self.value.ValueData()
	result := ordereddict.NewDict().
		Set("type", self.type_name).
		Set("data_len", len(vd.Data))

	switch vd.Type {
	case parser.REG_SZ, parser.REG_EXPAND_SZ:
		result.Set("value", strings.TrimRight(vd.String, "\x00"))

	case parser.REG_MULTI_SZ:
		result.Set("value", vd.MultiSz)

	case parser.REG_DWORD, parser.REG_QWORD, parser.REG_DWORD_BIG_ENDIAN:
		result.Set("value", vd.Uint64)

	default:
		if len(vd.Data) < MAX_EMBEDDED_REG_VALUE {
			result.Set("value", vd.Data)
		}
	}

	return result
}
