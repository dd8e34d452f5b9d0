package fsb5

import (
	"fmt"
	"math"
)

const (
	wavFormatPCM       = 1
	wavFormatIEEEFloat = 3

	fmtChunkSize = 16
)

var (
	errInvalidChannelCount error = formatError("invalid channel count")
	errInvalidSampleRate   error = formatError("invalid sample rate")
	errInvalidBitDepth     error = formatError("invalid bit depth")
	errByteRateOverflow    error = formatError("byte rate overflows 32 bits")
)

// fmtChunk is the 16-byte WAVE fmt chunk payload.
type fmtChunk struct {
	FormatTag      uint16
	NumChannels    uint16
	SampleRate     uint32
	AvgBytesPerSec uint32
	BlockAlign     uint16
	BitsPerSample  uint16
}

func newFmtChunk(formatTag uint16, sampleRate, bitDepth, numChans int) (*fmtChunk, error) {
	if numChans < 1 || numChans > 0xFFFF {
		return nil, errInvalidChannelCount
	}

	if sampleRate < 1 {
		return nil, errInvalidSampleRate
	}

	if bitDepth < 8 || bitDepth%8 != 0 {
		return nil, errInvalidBitDepth
	}

	blockAlign := numChans * bytesPerSample(bitDepth)

	byteRate := uint64(sampleRate) * uint64(blockAlign)
	if byteRate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d Hz * %d bytes per frame", errByteRateOverflow, sampleRate, blockAlign)
	}

	return &fmtChunk{
		FormatTag:      formatTag,
		NumChannels:    uint16(numChans),
		SampleRate:     uint32(sampleRate),
		AvgBytesPerSec: uint32(byteRate),
		BlockAlign:     uint16(blockAlign),
		BitsPerSample:  uint16(bitDepth),
	}, nil
}

func bytesPerSample(bitDepth int) int {
	return (bitDepth-1)/8 + 1
}
