package fsb5

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type testChunkDef struct {
	typ     ChunkType
	payload []byte
	// declared overrides the size written in the chunk header when non-zero.
	declared int
}

type testSample struct {
	freqIndex uint8
	stereo    bool
	frames    uint32
	chunks    []testChunkDef
	name      string
	data      []byte
	// offset overrides the data offset (in bytes) when non-nil.
	offset *uint32
}

type testBank struct {
	version uint32
	mode    Mode
	samples []testSample
	names   bool
	// truncate cuts the final buffer to this many bytes when non-zero.
	truncate int
}

func packDescriptor(freqIndex uint8, stereo bool, offset uint32, frames uint32, hasChunks bool) uint64 {
	var raw uint64
	if hasChunks {
		raw |= 1
	}

	raw |= uint64(freqIndex&0xF) << 1
	if stereo {
		raw |= 1 << 5
	}

	raw |= uint64(offset/offsetAlignment&(1<<28-1)) << 6
	raw |= uint64(frames&(1<<30-1)) << 34

	return raw
}

func packChunkHeader(typ ChunkType, size int, next bool) uint32 {
	var raw uint32
	if next {
		raw |= 1
	}

	raw |= uint32(size&(1<<24-1)) << 1
	raw |= uint32(typ&0x7F) << 25

	return raw
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)

	return b
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)

	return b
}

// buildBank serializes tb. Sample data is placed on 16-byte boundaries in
// table order unless a sample overrides its offset.
func buildBank(tb testBank) []byte {
	var (
		table   []byte
		dataBuf []byte
	)

	for _, s := range tb.samples {
		for len(dataBuf)%offsetAlignment != 0 {
			dataBuf = append(dataBuf, 0)
		}

		offset := uint32(len(dataBuf))
		if s.offset != nil {
			offset = *s.offset
		}

		dataBuf = append(dataBuf, s.data...)

		table = append(table, le64(packDescriptor(s.freqIndex, s.stereo, offset, s.frames, len(s.chunks) > 0))...)
		for i, c := range s.chunks {
			size := len(c.payload)
			if c.declared != 0 {
				size = c.declared
			}

			table = append(table, le32(packChunkHeader(c.typ, size, i+1 < len(s.chunks)))...)
			table = append(table, c.payload...)
		}
	}

	var names []byte
	if tb.names {
		names = make([]byte, 4*len(tb.samples))
		for i, s := range tb.samples {
			binary.LittleEndian.PutUint32(names[i*4:], uint32(len(names)))
			names = append(names, s.name...)
			names = append(names, 0)
		}
	}

	headerSize := HeaderSizeV1
	if tb.version == 0 {
		headerSize = HeaderSizeV0
	}

	out := make([]byte, headerSize)
	copy(out, Magic)
	binary.LittleEndian.PutUint32(out[4:], tb.version)
	binary.LittleEndian.PutUint32(out[8:], uint32(len(tb.samples)))
	binary.LittleEndian.PutUint32(out[12:], uint32(len(table)))
	binary.LittleEndian.PutUint32(out[16:], uint32(len(names)))
	binary.LittleEndian.PutUint32(out[20:], uint32(len(dataBuf)))
	binary.LittleEndian.PutUint32(out[24:], uint32(tb.mode))

	out = append(out, table...)
	out = append(out, names...)
	out = append(out, dataBuf...)

	if tb.truncate > 0 && tb.truncate < len(out) {
		out = out[:tb.truncate]
	}

	return out
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7)
	}

	return b
}

type testChunk struct {
	id   string
	size uint32
	data []byte
}

var (
	errFileTooSmall         = errors.New("file too small")
	errInvalidRiffWaveHdr   = errors.New("invalid riff/wave header")
	errChunkExceedsFileSize = errors.New("chunk exceeds file size")
)

func parseWavChunks(data []byte) ([]testChunk, error) {
	if len(data) < 12 {
		return nil, errFileTooSmall
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errInvalidRiffWaveHdr
	}

	chunks := make([]testChunk, 0)

	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])
		offset += 8

		end := offset + int(size)
		if end > len(data) {
			return nil, fmt.Errorf("%w: %q", errChunkExceedsFileSize, id)
		}

		payload := append([]byte(nil), data[offset:end]...)
		chunks = append(chunks, testChunk{id: id, size: size, data: payload})

		offset = end
		if size%2 == 1 {
			offset++
		}
	}

	return chunks, nil
}

func findChunk(chunks []testChunk, id string) (*testChunk, int) {
	for i := range chunks {
		if chunks[i].id == id {
			return &chunks[i], i
		}
	}

	return nil, -1
}
