package fsb5

import (
	"bytes"
	"encoding/binary"
	"time"
)

// smpl chunk is documented here:
// https://sites.google.com/site/musicgapi/technical-documents/wav-file-format#smpl

var cidSmpl = [4]byte{'s', 'm', 'p', 'l'}

const (
	smplLoopForward = 0
	midiUnityNoteC4 = 60
)

// samplerInfo is the fixed part of a smpl chunk.
type samplerInfo struct {
	Manufacturer      [4]byte
	Product           [4]byte
	SamplePeriod      uint32
	MIDIUnityNote     uint32
	MIDIPitchFraction uint32
	SMPTEFormat       uint32
	SMPTEOffset       uint32
	NumSampleLoops    uint32
	SamplerData       uint32
}

type sampleLoop struct {
	CuePointID uint32
	Type       uint32
	Start      uint32
	End        uint32
	Fraction   uint32
	PlayCount  uint32
}

// encodeSamplerChunk builds a smpl payload with one forward loop that plays
// forever.
func encodeSamplerChunk(loop LoopInfo, sampleRate uint32) []byte {
	var period uint32
	if sampleRate > 0 {
		period = uint32(time.Second / time.Duration(sampleRate))
	}

	info := samplerInfo{
		SamplePeriod:   period,
		MIDIUnityNote:  midiUnityNoteC4,
		NumSampleLoops: 1,
	}

	l := sampleLoop{
		Type:  smplLoopForward,
		Start: loop.Start,
		End:   loop.End,
	}

	var buf bytes.Buffer
	// writes into a bytes.Buffer of fixed-size structs can't fail
	_ = binary.Write(&buf, binary.LittleEndian, info)
	_ = binary.Write(&buf, binary.LittleEndian, l)

	return buf.Bytes()
}
