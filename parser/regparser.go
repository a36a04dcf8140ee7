package parser

import (
	"io"
	"os"
	"time"

	errors "github.com/go-errors/errors"
	"www.velocidex.com/golang/regparser"
)

// RegparserHive adapts www.velocidex.com/golang/regparser to the
// Hive capability set.
type RegparserHive struct {
	registry *regparser.Registry

	// Set when we own the underlying file.
	fd io.Closer
}

// NewHive parses a hive from a reader. The reader must remain valid
// for the lifetime of the hive.
func NewHive(reader io.ReaderAt) (*RegparserHive, error) {
	// Make sure we can read the header so we can propagate errors
	// properly.
	header := make([]byte, 4)
	_, err := reader.ReadAt(header, 0)
	if err != nil {
		return nil, err
	}

	registry, err := regparser.NewRegistry(reader)
	if err != nil {
		return nil, err
	}

	return &RegparserHive{registry: registry}, nil
}

// OpenFile parses the hive file at the given path. Closing the hive
// closes the file.
func OpenFile(path string) (*RegparserHive, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	hive, err := NewHive(fd)
	if err != nil {
		fd.Close()
		return nil, err
	}

	hive.fd = fd
	return hive, nil
}

func (self *RegparserHive) Root() (KeyRef, error) {
	root_cell := self.registry.Profile.HCELL(self.registry.Reader,
		0x1000+int64(self.registry.BaseBlock.RootCell()))

	nk := root_cell.KeyNode()
	if nk == nil {
		return nil, errors.New("hive has no root cell")
	}

	return &regKeyRef{key: nk}, nil
}

func (self *RegparserHive) Close() error {
	if self.fd != nil {
		return self.fd.Close()
	}
	return nil
}

type regKeyRef struct {
	key *regparser.CM_KEY_NODE
}

func (self *regKeyRef) Name() string {
	return self.key.Name()
}

func (self *regKeyRef) Subkeys() []KeyRef {
	subkeys := self.key.Subkeys()
	result := make([]KeyRef, 0, len(subkeys))
	for _, subkey := range subkeys {
		result = append(result, &regKeyRef{key: subkey})
	}
	return result
}

func (self *regKeyRef) Values() []ValueRef {
	values := self.key.Values()
	result := make([]ValueRef, 0, len(values))
	for _, value := range values {
		result = append(result, &regValueRef{value: value})
	}
	return result
}

func (self *regKeyRef) LastWriteTime() time.Time {
	return self.key.LastWriteTime().Time
}

type regValueRef struct {
	value *regparser.CM_KEY_VALUE
}

func (self *regValueRef) ValueName() string {
	return self.value.ValueName()
}

func (self *regValueRef) Type() ValueType {
	return ValueType(self.value.ValueData().Type)
}

func (self *regValueRef) TypeString() string {
	return self.value.TypeString()
}

func (self *regValueRef) ValueData() *ValueData {
	vd := self.value.ValueData()
	return &ValueData{
		Type:    ValueType(vd.Type),
		Data:    vd.Data,
		String:  vd.String,
		MultiSz: vd.MultiSz,
		Uint64:  vd.Uint64,
	}
}
