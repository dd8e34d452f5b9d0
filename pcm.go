package fsb5

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/audio"
)

const (
	scalePCMInt24 = 8388608.0
	maxPCMInt24   = 8388607

	// floatSourceDepth is the integer depth PCM float samples are scaled to.
	floatSourceDepth = 24
)

// PCMBuffer decodes the sample's PCM bytes into interleaved integer frames.
// 8-bit data is re-centered around zero and float data is scaled to 24 bits,
// so the buffer always holds signed values of SourceBitDepth bits. Trailing
// bytes that don't form a whole frame are dropped. Compressed modes fail with
// ErrUnsupportedCodec.
func (s *Sample) PCMBuffer() (*audio.IntBuffer, error) {
	depth := s.mode.BitDepth()
	if depth == 0 {
		return nil, fmt.Errorf("sample %d: %w: %s isn't PCM", s.desc.Index, ErrUnsupportedCodec, s.mode)
	}

	if s.desc.Channels < 1 {
		return nil, fmt.Errorf("sample %d: %w", s.desc.Index, errInvalidChannelCount)
	}

	width := bytesPerSample(depth)
	frames := len(s.data) / (width * s.desc.Channels)

	buf := &audio.IntBuffer{
		Format:         s.Format(),
		Data:           make([]int, frames*s.desc.Channels),
		SourceBitDepth: depth,
	}
	if s.mode == ModePCMFloat {
		buf.SourceBitDepth = floatSourceDepth
	}

	for i := range buf.Data {
		b := s.data[i*width : (i+1)*width]

		switch s.mode {
		case ModePCM8:
			buf.Data[i] = int(b[0]) - 128
		case ModePCM16:
			buf.Data[i] = int(int16(binary.LittleEndian.Uint16(b)))
		case ModePCM24:
			buf.Data[i] = int(int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8)
		case ModePCM32:
			buf.Data[i] = int(int32(binary.LittleEndian.Uint32(b)))
		case ModePCMFloat:
			buf.Data[i] = int(float32ToPCMInt24(math.Float32frombits(binary.LittleEndian.Uint32(b))))
		}
	}

	return buf, nil
}

func clampFloat32(value, min, max float32) float32 {
	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

func float32ToPCMInt24(value float32) int32 {
	if math.IsNaN(float64(value)) {
		return 0
	}

	value = clampFloat32(value, -1, 1)

	sample := min(int64(math.Round(float64(value)*scalePCMInt24)), maxPCMInt24)
	if sample < -scalePCMInt24 {
		sample = -scalePCMInt24
	}

	return int32(sample)
}
