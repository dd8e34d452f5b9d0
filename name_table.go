package fsb5

import (
	"encoding/binary"
	"fmt"
)

// ParseNameTable decodes count sample names. The table starts with count
// uint32 offsets, relative to the table start, each pointing at a
// NUL-terminated name. An empty table yields nil.
func ParseNameTable(table []byte, count int) ([]string, error) {
	if len(table) == 0 {
		return nil, nil
	}

	if count < 0 || len(table)/4 < count {
		return nil, fmt.Errorf("%w: name table of %d bytes can't hold %d offsets", ErrTruncated, len(table), count)
	}

	names := make([]string, count)
	for i := 0; i < count; i++ {
		off := binary.LittleEndian.Uint32(table[i*4 : i*4+4])
		if uint64(off) >= uint64(len(table)) {
			return nil, fmt.Errorf("%w: name %d at offset %d, table is %d bytes", ErrTruncated, i, off, len(table))
		}

		b := table[off:]
		if clen(b) == len(b) {
			return nil, fmt.Errorf("%w: name %d at offset %d isn't terminated", ErrTruncated, i, off)
		}

		names[i] = nullTermStr(b)
	}

	return names, nil
}
