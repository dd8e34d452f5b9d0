package fsb5

import (
	"fmt"
	"time"

	"github.com/go-audio/audio"
)

// Bank is a parsed FSB5 bank. Its samples reference the buffer passed to
// Open, which must not be modified while the bank is in use.
type Bank struct {
	header  Header
	samples []*Sample
}

// Header returns a copy of the bank header.
func (b *Bank) Header() Header {
	return b.header
}

// Mode returns the codec shared by all samples.
func (b *Bank) Mode() Mode {
	return b.header.Mode
}

// Samples returns the samples in table order.
func (b *Bank) Samples() []*Sample {
	return append([]*Sample(nil), b.samples...)
}

// Sample is one embedded sample. It is safe for concurrent use.
type Sample struct {
	desc    SampleDescriptor
	data    []byte
	name    string
	hasName bool
	mode    Mode
}

// Index returns the position of the sample in the bank.
func (s *Sample) Index() int {
	return s.desc.Index
}

// Name returns the sample name, if the bank has a name table.
func (s *Sample) Name() (string, bool) {
	return s.name, s.hasName
}

// Data returns the sample's encoded bytes as stored in the bank. The slice
// aliases the bank buffer and must not be modified.
func (s *Sample) Data() []byte {
	return s.data
}

// Mode returns the codec of the sample data.
func (s *Sample) Mode() Mode {
	return s.mode
}

// Descriptor returns a copy of the decoded sample header.
func (s *Sample) Descriptor() SampleDescriptor {
	d := s.desc
	d.Chunks = cloneChunks(s.desc.Chunks)

	return d
}

// Format returns the channel count and sample rate.
func (s *Sample) Format() *audio.Format {
	return &audio.Format{
		NumChannels: s.desc.Channels,
		SampleRate:  int(s.desc.Frequency),
	}
}

// Loop returns the sample's loop points, if any.
func (s *Sample) Loop() (LoopInfo, bool) {
	c, ok := s.desc.Chunk(ChunkLoop)
	if !ok {
		return LoopInfo{}, false
	}

	return c.(LoopInfo), true
}

// Duration is computed from the frame count stored in the descriptor.
func (s *Sample) Duration() time.Duration {
	return durationFromFrames(s.desc.SampleCount, s.desc.Frequency)
}

// FileName returns "<name>.<ext>", or "<index>.<ext>" for unnamed samples.
func (s *Sample) FileName() string {
	base := fmt.Sprint(s.desc.Index)
	if s.hasName && s.name != "" {
		base = s.name
	}

	return base + "." + s.mode.FileExtension()
}

// ContainerBytes returns the sample as a standalone file: a RIFF/WAVE file for
// PCM modes, the unchanged stream for MPEG. Other modes fail with an error
// matching ErrCodec.
func (s *Sample) ContainerBytes() ([]byte, error) {
	build, err := s.mode.Builder()
	if err != nil {
		return nil, fmt.Errorf("sample %d: %w", s.desc.Index, err)
	}

	return build(s)
}

func (s *Sample) String() string {
	name, ok := s.Name()
	if !ok {
		name = "-"
	}

	return fmt.Sprintf("#%d %q: %d Hz, %d channel(s), %d bytes at %d, %d frames, %d chunk(s)",
		s.desc.Index, name, s.desc.Frequency, s.desc.Channels, s.desc.DataLength, s.desc.DataOffset,
		s.desc.SampleCount, len(s.desc.Chunks))
}
