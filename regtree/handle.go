package regtree

// An open value. The content is captured at open time: content is
// re-derived rather than buffered globally, so release is pure
// bookkeeping and reads survive a concurrent unmount.
type FileHandle struct {
	node *ValueNode
	data []byte
}

func (self *FileHandle) Node() *ValueNode {
	return self.node
}

func (self *FileHandle) Size() int64 {
	return int64(len(self.data))
}

// ReadRange returns data[offset:offset+length] clipped to the
// captured content. Offsets past the end yield an empty slice.
func (self *FileHandle) ReadRange(offset, length int64) []byte {
	if offset < 0 || offset >= int64(len(self.data)) {
		return nil
	}

	end := offset + length
	if end > int64(len(self.data)) {
		end = int64(len(self.data))
	}

	return self.data[offset:end]
}

func (self *FileHandle) Release() {}
