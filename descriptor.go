package fsb5

import (
	"encoding/binary"
	"fmt"
)

// frequencies maps the 4-bit descriptor frequency index to Hz.
var frequencies = [...]uint32{
	0:  4000,
	1:  8000,
	2:  11000,
	3:  11025,
	4:  16000,
	5:  22050,
	6:  24000,
	7:  32000,
	8:  44100,
	9:  48000,
	10: 96000,
}

// SampleDescriptor is one decoded entry of the sample header table.
type SampleDescriptor struct {
	// Index is the position in the table.
	Index int
	// Frequency in Hz, from the frequency table or a FrequencyOverride chunk.
	Frequency uint32
	// FrequencyIndex is the raw 4-bit table index.
	FrequencyIndex uint8
	// Channels, from the channel bit or a ChannelOverride chunk.
	Channels int
	// DataOffset is relative to the start of the data region.
	DataOffset uint32
	// DataLength is the distance to the next sample's offset, or to the end of
	// the data region for the last sample.
	DataLength uint32
	// SampleCount is the number of sample frames the descriptor declares.
	SampleCount uint32
	// Chunks are the extended chunks in table order.
	Chunks []ExtendedChunk
}

// Chunk returns the first chunk of type t.
func (d *SampleDescriptor) Chunk(t ChunkType) (ExtendedChunk, bool) {
	for _, c := range d.Chunks {
		if c.Type() == t {
			return c, true
		}
	}

	return nil, false
}

// ParseSamples decodes count descriptors from the sample header table and
// derives each sample's data length from dataSize.
func ParseSamples(table []byte, count int, dataSize uint32) ([]SampleDescriptor, error) {
	return parseSamples(newDefaultChunkRegistry(), table, count, dataSize)
}

func parseSamples(chunks *chunkRegistry, table []byte, count int, dataSize uint32) ([]SampleDescriptor, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: negative sample count %d", ErrTruncated, count)
	}

	// each descriptor needs at least 8 bytes, don't trust count for the allocation
	descriptors := make([]SampleDescriptor, 0, min(count, len(table)/8))

	pos := 0
	for i := 0; i < count; i++ {
		if len(table)-pos < 8 {
			return nil, fmt.Errorf("%w: descriptor %d of %d at table offset %d, table is %d bytes", ErrTruncated, i, count, pos, len(table))
		}

		raw := binary.LittleEndian.Uint64(table[pos : pos+8])
		pos += 8

		desc := SampleDescriptor{
			Index:          i,
			FrequencyIndex: uint8(bits(raw, 1, 4)),
			Channels:       int(bits(raw, 5, 1)) + 1,
			DataOffset:     uint32(bits(raw, 6, 28)) * offsetAlignment,
			SampleCount:    uint32(bits(raw, 34, 30)),
		}

		next := bits(raw, 0, 1) == 1
		for next {
			if len(table)-pos < 4 {
				return nil, fmt.Errorf("%w: sample %d: chunk header at table offset %d", ErrTruncatedChunk, i, pos)
			}

			hdr := uint64(binary.LittleEndian.Uint32(table[pos : pos+4]))
			pos += 4

			next = bits(hdr, 0, 1) == 1
			size := int(bits(hdr, 1, 24))
			chunkType := ChunkType(bits(hdr, 25, 7))

			if size > len(table)-pos {
				return nil, fmt.Errorf("%w: sample %d: %s declares %d bytes, %d left", ErrTruncatedChunk, i, chunkType, size, len(table)-pos)
			}

			chunk, err := chunks.Decode(chunkType, table[pos:pos+size:pos+size])
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}

			desc.Chunks = append(desc.Chunks, chunk)
			pos += size
		}

		if err := desc.resolve(); err != nil {
			return nil, err
		}

		descriptors = append(descriptors, desc)
	}

	if err := deriveLengths(descriptors, dataSize); err != nil {
		return nil, err
	}

	return descriptors, nil
}

// resolve applies override chunks to the values decoded from the bit fields.
func (d *SampleDescriptor) resolve() error {
	if c, ok := d.Chunk(ChunkChannels); ok {
		d.Channels = int(c.(ChannelOverride).Channels)
		if d.Channels == 0 {
			return fmt.Errorf("%w: sample %d: channel chunk declares 0 channels", ErrBadChannels, d.Index)
		}
	}

	if c, ok := d.Chunk(ChunkFrequency); ok {
		d.Frequency = c.(FrequencyOverride).Hz
		if d.Frequency == 0 {
			return fmt.Errorf("%w: sample %d: frequency chunk declares 0 Hz", ErrBadFrequency, d.Index)
		}

		return nil
	}

	if int(d.FrequencyIndex) >= len(frequencies) {
		return fmt.Errorf("%w: sample %d: index %d", ErrBadFrequency, d.Index, d.FrequencyIndex)
	}

	d.Frequency = frequencies[d.FrequencyIndex]

	return nil
}

// deriveLengths fills DataLength so that the samples tile the data region,
// starting at offset 0.
func deriveLengths(descriptors []SampleDescriptor, dataSize uint32) error {
	if len(descriptors) > 0 && descriptors[0].DataOffset != 0 {
		return fmt.Errorf("%w: sample 0 starts at %d, leaving a gap at the start of the data region", ErrCorruptOffsets, descriptors[0].DataOffset)
	}

	for i := range descriptors {
		end := dataSize
		if i+1 < len(descriptors) {
			end = descriptors[i+1].DataOffset
		}

		if end < descriptors[i].DataOffset {
			if i+1 < len(descriptors) {
				return fmt.Errorf("%w: sample %d starts at %d, sample %d at %d", ErrCorruptOffsets, i, descriptors[i].DataOffset, i+1, end)
			}

			return fmt.Errorf("%w: sample %d starts at %d, past the %d byte data region", ErrCorruptOffsets, i, descriptors[i].DataOffset, dataSize)
		}

		descriptors[i].DataLength = end - descriptors[i].DataOffset
	}

	return nil
}

// bits extracts length bits of v starting at bit start, LSB first.
func bits(v uint64, start, length uint) uint64 {
	return (v >> start) & (1<<length - 1)
}
