package fsb5

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSizeV0 is the header size of version 0 banks, which carry one
	// extra word after the hash.
	HeaderSizeV0 = 64
	// HeaderSizeV1 is the header size of version 1 banks.
	HeaderSizeV1 = 60
)

// Header is the fixed-size bank header.
type Header struct {
	Magic             [4]byte
	Version           uint32
	SampleCount       uint32
	SampleHeadersSize uint32
	NameTableSize     uint32
	DataSize          uint32
	Mode              Mode

	Zero    [8]byte
	Hash    [16]byte
	Dummy   [8]byte
	Unknown uint32 // version 0 only

	// Size is the number of bytes the header occupies, 60 or 64.
	Size int
}

// ParseHeader decodes the bank header at the start of b.
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < len(Magic) {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for the magic", ErrTruncated, len(b), len(Magic))
	}

	if string(b[:4]) != Magic {
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, b[:4])
	}

	if len(b) < 8 {
		return nil, fmt.Errorf("%w: %d bytes, need at least 8 for the version", ErrTruncated, len(b))
	}

	h := &Header{Version: binary.LittleEndian.Uint32(b[4:8])}
	copy(h.Magic[:], b[:4])

	switch h.Version {
	case 0:
		h.Size = HeaderSizeV0
	case 1:
		h.Size = HeaderSizeV1
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	if len(b) < h.Size {
		return nil, fmt.Errorf("%w: %d bytes, version %d header needs %d", ErrTruncated, len(b), h.Version, h.Size)
	}

	h.SampleCount = binary.LittleEndian.Uint32(b[8:12])
	h.SampleHeadersSize = binary.LittleEndian.Uint32(b[12:16])
	h.NameTableSize = binary.LittleEndian.Uint32(b[16:20])
	h.DataSize = binary.LittleEndian.Uint32(b[20:24])
	h.Mode = Mode(binary.LittleEndian.Uint32(b[24:28]))
	copy(h.Zero[:], b[28:36])
	copy(h.Hash[:], b[36:52])
	copy(h.Dummy[:], b[52:60])

	if h.Version == 0 {
		h.Unknown = binary.LittleEndian.Uint32(b[60:64])
	}

	return h, nil
}

// BankSize returns the number of bytes the header says the bank spans.
func (h *Header) BankSize() uint64 {
	if h == nil {
		return 0
	}

	return uint64(h.Size) + uint64(h.SampleHeadersSize) + uint64(h.NameTableSize) + uint64(h.DataSize)
}

func (h *Header) String() string {
	if h == nil {
		return "<nil>"
	}

	return fmt.Sprintf("FSB5 v%d, %d sample(s), %s, %d bytes of sample data", h.Version, h.SampleCount, h.Mode, h.DataSize)
}
