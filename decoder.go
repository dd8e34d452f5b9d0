package fsb5

import "fmt"

// Open parses a complete bank held in memory. b is referenced, not copied,
// by the returned Bank and its samples. On failure no Bank is returned.
func Open(b []byte) (*Bank, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return nil, err
	}

	if uint64(len(b)) < h.BankSize() {
		return nil, fmt.Errorf("%w: header declares %d bytes, got %d", ErrTruncated, h.BankSize(), len(b))
	}

	off := h.Size
	table := b[off : off+int(h.SampleHeadersSize)]
	off += int(h.SampleHeadersSize)

	descriptors, err := parseSamples(newDefaultChunkRegistry(), table, int(h.SampleCount), h.DataSize)
	if err != nil {
		return nil, fmt.Errorf("sample headers: %w", err)
	}

	names, err := ParseNameTable(b[off:off+int(h.NameTableSize)], len(descriptors))
	if err != nil {
		return nil, fmt.Errorf("name table: %w", err)
	}

	off += int(h.NameTableSize)
	data := b[off : off+int(h.DataSize) : off+int(h.DataSize)]

	bank := &Bank{
		header:  *h,
		samples: make([]*Sample, len(descriptors)),
	}

	for i, desc := range descriptors {
		start, end := desc.DataOffset, desc.DataOffset+desc.DataLength

		s := &Sample{
			desc: desc,
			data: data[start:end:end],
			mode: h.Mode,
		}
		if names != nil {
			s.name, s.hasName = names[i], true
		}

		bank.samples[i] = s
	}

	return bank, nil
}
