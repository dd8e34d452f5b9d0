package fsb5

import "fmt"

// ChunkType identifies an extended descriptor chunk.
type ChunkType uint8

// Chunk types known to this package. Any other value decodes to an UnknownChunk.
const (
	ChunkChannels        ChunkType = 1
	ChunkFrequency       ChunkType = 2
	ChunkLoop            ChunkType = 3
	ChunkXMASeek         ChunkType = 6
	ChunkDSPCoefficients ChunkType = 7
	ChunkXWMAData        ChunkType = 10
	ChunkVorbisData      ChunkType = 11
)

func (t ChunkType) String() string {
	switch t {
	case ChunkChannels:
		return "channels"
	case ChunkFrequency:
		return "frequency"
	case ChunkLoop:
		return "loop"
	case ChunkXMASeek:
		return "xma seek table"
	case ChunkDSPCoefficients:
		return "dsp coefficients"
	case ChunkXWMAData:
		return "xwma data"
	case ChunkVorbisData:
		return "vorbis data"
	default:
		return fmt.Sprintf("chunk type %d", uint8(t))
	}
}

// ExtendedChunk is one optional metadata record chained onto a sample
// descriptor. The concrete types are ChannelOverride, FrequencyOverride,
// LoopInfo, SeekTable, DSPCoefficients, XWMAData, VorbisSetup and UnknownChunk.
type ExtendedChunk interface {
	Type() ChunkType
	// Size is the payload size declared in the chunk header.
	Size() int

	isExtendedChunk()
}

// ChannelOverride replaces the channel count encoded in the descriptor bits.
type ChannelOverride struct {
	Channels uint8
	// DeclaredSize mirrors the chunk header's payload size.
	DeclaredSize int
}

// FrequencyOverride replaces the frequency table lookup.
type FrequencyOverride struct {
	Hz           uint32
	DeclaredSize int
}

// LoopInfo holds loop points, in sample frames.
type LoopInfo struct {
	Start        uint32
	End          uint32
	DeclaredSize int
}

// SeekTable is an opaque XMA seek table.
type SeekTable struct {
	Data []byte
}

// DSPCoefficients is the opaque GameCube ADPCM coefficient block.
type DSPCoefficients struct {
	Data []byte
}

// XWMAData is opaque xWMA setup data.
type XWMAData struct {
	Data []byte
}

// VorbisSetup references the shared Vorbis setup header by CRC32. Data holds
// the payload bytes following the CRC.
type VorbisSetup struct {
	CRC32 uint32
	Data  []byte
}

// UnknownChunk preserves a chunk whose type this package doesn't know.
type UnknownChunk struct {
	ID   ChunkType
	Data []byte
}

func (c ChannelOverride) Type() ChunkType   { return ChunkChannels }
func (c FrequencyOverride) Type() ChunkType { return ChunkFrequency }
func (c LoopInfo) Type() ChunkType          { return ChunkLoop }
func (c SeekTable) Type() ChunkType         { return ChunkXMASeek }
func (c DSPCoefficients) Type() ChunkType   { return ChunkDSPCoefficients }
func (c XWMAData) Type() ChunkType          { return ChunkXWMAData }
func (c VorbisSetup) Type() ChunkType       { return ChunkVorbisData }
func (c UnknownChunk) Type() ChunkType      { return c.ID }

func (c ChannelOverride) Size() int   { return c.DeclaredSize }
func (c FrequencyOverride) Size() int { return c.DeclaredSize }
func (c LoopInfo) Size() int          { return c.DeclaredSize }
func (c SeekTable) Size() int         { return len(c.Data) }
func (c DSPCoefficients) Size() int   { return len(c.Data) }
func (c XWMAData) Size() int          { return len(c.Data) }
func (c VorbisSetup) Size() int       { return 4 + len(c.Data) }
func (c UnknownChunk) Size() int      { return len(c.Data) }

func (ChannelOverride) isExtendedChunk()   {}
func (FrequencyOverride) isExtendedChunk() {}
func (LoopInfo) isExtendedChunk()          {}
func (SeekTable) isExtendedChunk()         {}
func (DSPCoefficients) isExtendedChunk()   {}
func (XWMAData) isExtendedChunk()          {}
func (VorbisSetup) isExtendedChunk()       {}
func (UnknownChunk) isExtendedChunk()      {}

// cloneChunks deep-copies opaque payloads so callers can't reach the bank buffer.
func cloneChunks(chunks []ExtendedChunk) []ExtendedChunk {
	if len(chunks) == 0 {
		return nil
	}

	out := make([]ExtendedChunk, len(chunks))
	for i, c := range chunks {
		switch v := c.(type) {
		case SeekTable:
			v.Data = append([]byte(nil), v.Data...)
			out[i] = v
		case DSPCoefficients:
			v.Data = append([]byte(nil), v.Data...)
			out[i] = v
		case XWMAData:
			v.Data = append([]byte(nil), v.Data...)
			out[i] = v
		case VorbisSetup:
			v.Data = append([]byte(nil), v.Data...)
			out[i] = v
		case UnknownChunk:
			v.Data = append([]byte(nil), v.Data...)
			out[i] = v
		default:
			out[i] = c
		}
	}

	return out
}
