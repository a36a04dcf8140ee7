// The mapping layer does not decode hives itself - it consumes a
// small capability set from the hive parser: list subkeys, list
// values, read a value's type and data, read a key's last write
// time. This package states that capability set as interfaces so the
// tree logic can be driven by regparser in production and by a fake
// hive in tests.
package parser

import (
	"time"
)

// Registry value types as stored in the hive. The numeric values are
// fixed by the registry file format.
type ValueType int

const (
	REG_NONE ValueType = iota
	REG_SZ
	REG_EXPAND_SZ
	REG_BINARY
	REG_DWORD
	REG_DWORD_BIG_ENDIAN
	REG_LINK
	REG_MULTI_SZ
	REG_RESOURCE_LIST
	REG_FULL_RESOURCE_DESCRIPTOR
	REG_RESOURCE_REQUIREMENTS_LIST
	REG_QWORD
)

// Decoded representation of a value's payload. Data always holds the
// raw bytes as stored in the hive; the other fields are only
// meaningful for the corresponding types.
type ValueData struct {
	Type    ValueType
	Data    []byte
	String  string
	MultiSz []string
	Uint64  uint64
}

type KeyRef interface {
	Name() string
	Subkeys() []KeyRef
	Values() []ValueRef
	LastWriteTime() time.Time
}

type ValueRef interface {
	ValueName() string
	Type() ValueType

	// The type name as stored in the hive (e.g. "REG_SZ"). Unknown
	// types get a name too so they can still be tagged.
	TypeString() string

	ValueData() *ValueData
}

// A parsed hive. The handle is owned by a single mount session and
// is immutable for its lifetime.
type Hive interface {
	Root() (KeyRef, error)
	Close() error
}
