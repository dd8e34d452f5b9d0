package fsb5

import "fmt"

// Mode is the bank-wide codec of every sample.
type Mode uint32

// Codec modes as stored in the header.
const (
	ModeNone Mode = iota
	ModePCM8
	ModePCM16
	ModePCM24
	ModePCM32
	ModePCMFloat
	ModeGCADPCM
	ModeIMAADPCM
	ModeVAG
	ModeHEVAG
	ModeXMA
	ModeMPEG
	ModeCELT
	ModeAT9
	ModeXWMA
	ModeVorbis
)

var modeNames = [...]string{
	ModeNone:     "none",
	ModePCM8:     "PCM8",
	ModePCM16:    "PCM16",
	ModePCM24:    "PCM24",
	ModePCM32:    "PCM32",
	ModePCMFloat: "PCM float",
	ModeGCADPCM:  "GC ADPCM",
	ModeIMAADPCM: "IMA ADPCM",
	ModeVAG:      "VAG",
	ModeHEVAG:    "HEVAG",
	ModeXMA:      "XMA",
	ModeMPEG:     "MPEG",
	ModeCELT:     "CELT",
	ModeAT9:      "ATRAC9",
	ModeXWMA:     "xWMA",
	ModeVorbis:   "Vorbis",
}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}

	return fmt.Sprintf("mode %d", uint32(m))
}

// Known reports whether m is one of the defined codec modes.
func (m Mode) Known() bool {
	return int(m) < len(modeNames)
}

// IsPCM reports whether samples are uncompressed PCM.
func (m Mode) IsPCM() bool {
	return m.BitDepth() > 0
}

// BitDepth returns the bits per PCM sample, or 0 for compressed modes.
func (m Mode) BitDepth() int {
	switch m {
	case ModePCM8:
		return 8
	case ModePCM16:
		return 16
	case ModePCM24:
		return 24
	case ModePCM32, ModePCMFloat:
		return 32
	default:
		return 0
	}
}

// FileExtension returns the extension, without dot, of the files
// ContainerBytes produces for this mode. Modes without a builder, Vorbis
// included, get "bin", the extension of their raw payload.
func (m Mode) FileExtension() string {
	switch m {
	case ModeMPEG:
		return "mp3"
	case ModePCM8, ModePCM16, ModePCM24, ModePCM32, ModePCMFloat:
		return "wav"
	default:
		return "bin"
	}
}

// Builder turns one sample into a standalone file.
type Builder func(s *Sample) ([]byte, error)

// Builder returns the container builder for the mode. Vorbis is recognized
// but yields ErrNotImplemented; modes without a builder yield
// ErrUnsupportedCodec.
func (m Mode) Builder() (Builder, error) {
	switch m {
	case ModePCM8, ModePCM16, ModePCM24, ModePCM32, ModePCMFloat:
		return buildWave, nil
	case ModeMPEG:
		return buildPassthrough, nil
	case ModeVorbis:
		// TODO: rebuild Ogg Vorbis once the CRC-keyed setup header table is verified.
		return nil, fmt.Errorf("%w: %s container reconstruction", ErrNotImplemented, m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCodec, m)
	}
}

// buildPassthrough returns a copy so callers can't write into the bank buffer.
func buildPassthrough(s *Sample) ([]byte, error) {
	out := make([]byte, len(s.Data()))
	copy(out, s.Data())

	return out, nil
}
