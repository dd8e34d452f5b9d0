package fsb5

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-audio/riff"
)

// waveHeaderSize is the size of a RIFF/WAVE file holding only fmt and data.
const waveHeaderSize = 44

var errDataTooLarge error = formatError("PCM data too large for a RIFF container")

// waveEncoder wraps raw little-endian PCM bytes in a RIFF/WAVE container.
// The PCM bytes are copied verbatim.
type waveEncoder struct {
	buf *bytes.Buffer

	SampleRate int
	BitDepth   int
	NumChans   int

	// PCM = 1, IEEE float = 3.
	WavAudioFormat int
	// Loop, if set, is written as a smpl chunk after the data chunk.
	Loop *LoopInfo

	WrittenBytes int
}

func newWaveEncoder(sampleRate, bitDepth, numChans, audioFormat int) *waveEncoder {
	return &waveEncoder{
		buf:            &bytes.Buffer{},
		SampleRate:     sampleRate,
		BitDepth:       bitDepth,
		NumChans:       numChans,
		WavAudioFormat: audioFormat,
	}
}

// AddLE serializes and adds the passed value using little endian.
func (e *waveEncoder) AddLE(src any) error {
	e.WrittenBytes += binary.Size(src)

	err := binary.Write(e.buf, binary.LittleEndian, src)
	if err != nil {
		return fmt.Errorf("failed to write little endian: %w", err)
	}

	return nil
}

// Encode returns the complete WAVE file for pcm.
func (e *waveEncoder) Encode(pcm []byte) ([]byte, error) {
	fmtChunk, err := newFmtChunk(uint16(e.WavAudioFormat), e.SampleRate, e.BitDepth, e.NumChans)
	if err != nil {
		return nil, err
	}

	var smpl []byte
	if e.Loop != nil {
		smpl = encodeSamplerChunk(*e.Loop, uint32(e.SampleRate))
	}

	total := uint64(waveHeaderSize) + uint64(len(pcm)) + uint64(len(pcm)%2)
	if smpl != nil {
		total += 8 + uint64(len(smpl))
	}

	if total-8 > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", errDataTooLarge, len(pcm))
	}

	e.buf.Grow(int(total))

	if err := e.writeHeader(uint32(total - 8)); err != nil {
		return nil, err
	}

	if err := e.writeFmtChunk(fmtChunk); err != nil {
		return nil, err
	}

	if err := e.writeRawChunk(riff.DataFormatID, pcm); err != nil {
		return nil, err
	}

	if smpl != nil {
		if err := e.writeRawChunk(cidSmpl, smpl); err != nil {
			return nil, err
		}
	}

	return e.buf.Bytes(), nil
}

func (e *waveEncoder) writeHeader(riffSize uint32) error {
	// riff ID
	err := e.AddLE(riff.RiffID)
	if err != nil {
		return err
	}

	err = e.AddLE(riffSize)
	if err != nil {
		return err
	}
	// wave headers
	return e.AddLE(riff.WavFormatID)
}

func (e *waveEncoder) writeFmtChunk(chunk *fmtChunk) error {
	err := e.AddLE(riff.FmtID)
	if err != nil {
		return err
	}

	err = e.AddLE(uint32(fmtChunkSize))
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.FormatTag)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.NumChannels)
	if err != nil {
		return fmt.Errorf("error encoding the number of channels - %w", err)
	}

	err = e.AddLE(chunk.SampleRate)
	if err != nil {
		return fmt.Errorf("error encoding the sample rate - %w", err)
	}

	err = e.AddLE(chunk.AvgBytesPerSec)
	if err != nil {
		return fmt.Errorf("error encoding the avg bytes per sec - %w", err)
	}

	err = e.AddLE(chunk.BlockAlign)
	if err != nil {
		return err
	}

	err = e.AddLE(chunk.BitsPerSample)
	if err != nil {
		return fmt.Errorf("error encoding bits per sample - %w", err)
	}

	return nil
}

func (e *waveEncoder) writeRawChunk(id [4]byte, data []byte) error {
	size := uint32(len(data))

	err := e.AddLE(id)
	if err != nil {
		return fmt.Errorf("failed to write chunk id %q: %w", id, err)
	}

	err = e.AddLE(size)
	if err != nil {
		return fmt.Errorf("failed to write chunk size %q: %w", id, err)
	}

	n, _ := e.buf.Write(data)
	e.WrittenBytes += n

	if size%2 == 1 {
		e.buf.WriteByte(0)
		e.WrittenBytes++
	}

	return nil
}

func buildWave(s *Sample) ([]byte, error) {
	format := wavFormatPCM
	if s.mode == ModePCMFloat {
		format = wavFormatIEEEFloat
	}

	enc := newWaveEncoder(int(s.desc.Frequency), s.mode.BitDepth(), s.desc.Channels, format)
	if loop, ok := s.Loop(); ok {
		enc.Loop = &loop
	}

	out, err := enc.Encode(s.Data())
	if err != nil {
		return nil, fmt.Errorf("sample %d: %w", s.desc.Index, err)
	}

	return out, nil
}
