package fsb5

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestOpenPCM16WithNames(t *testing.T) {
	first := pattern(400, 1)
	second := pattern(100, 2)

	b := buildBank(testBank{
		version: 1,
		mode:    ModePCM16,
		names:   true,
		samples: []testSample{
			{freqIndex: 8, stereo: true, frames: 100, name: "kick", data: first},
			{freqIndex: 5, frames: 50, name: "snare", data: second, chunks: []testChunkDef{
				{typ: ChunkLoop, payload: append(le32(10), le32(40)...)},
			}},
		},
	})

	bank, err := Open(b)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if bank.Mode() != ModePCM16 {
		t.Fatalf("Mode=%s, want %s", bank.Mode(), ModePCM16)
	}

	if bank.Header().Version != 1 {
		t.Fatalf("Version=%d, want 1", bank.Header().Version)
	}

	samples := bank.Samples()
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}

	tests := []struct {
		name     string
		rate     int
		channels int
		data     []byte
		duration time.Duration
		file     string
		loop     bool
	}{
		{"kick", 44100, 2, first, durationFromFrames(100, 44100), "kick.wav", false},
		{"snare", 22050, 1, second, durationFromFrames(50, 22050), "snare.wav", true},
	}

	for i, tt := range tests {
		s := samples[i]

		if s.Index() != i {
			t.Fatalf("sample %d: Index=%d", i, s.Index())
		}

		name, ok := s.Name()
		if !ok || name != tt.name {
			t.Fatalf("sample %d: Name=%q,%v, want %q", i, name, ok, tt.name)
		}

		if f := s.Format(); f.SampleRate != tt.rate || f.NumChannels != tt.channels {
			t.Fatalf("sample %d: format=%+v", i, f)
		}

		if !bytes.Equal(s.Data(), tt.data) {
			t.Fatalf("sample %d: data mismatch", i)
		}

		if s.Duration() != tt.duration {
			t.Fatalf("sample %d: Duration=%v, want %v", i, s.Duration(), tt.duration)
		}

		if s.FileName() != tt.file {
			t.Fatalf("sample %d: FileName=%q, want %q", i, s.FileName(), tt.file)
		}

		if _, ok := s.Loop(); ok != tt.loop {
			t.Fatalf("sample %d: has loop=%v, want %v", i, ok, tt.loop)
		}

		out, err := s.ContainerBytes()
		if err != nil {
			t.Fatalf("sample %d: ContainerBytes: %v", i, err)
		}

		if !bytes.Contains(out, tt.data) {
			t.Fatalf("sample %d: container doesn't hold the PCM", i)
		}

		if !tt.loop && len(out) != waveHeaderSize+len(tt.data) {
			t.Fatalf("sample %d: container is %d bytes, want %d", i, len(out), waveHeaderSize+len(tt.data))
		}
	}
}

func TestOpenVersion0(t *testing.T) {
	b := buildBank(testBank{
		version: 0,
		mode:    ModeMPEG,
		samples: []testSample{{freqIndex: 9, data: pattern(20, 3)}},
	})

	bank, err := Open(b)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if bank.Header().Size != HeaderSizeV0 {
		t.Fatalf("header size=%d, want %d", bank.Header().Size, HeaderSizeV0)
	}

	s := bank.Samples()[0]
	if _, ok := s.Name(); ok {
		t.Fatal("sample has a name without a name table")
	}

	if s.FileName() != "0.mp3" {
		t.Fatalf("FileName=%q, want 0.mp3", s.FileName())
	}

	if !bytes.Equal(s.Data(), pattern(20, 3)) {
		t.Fatal("data mismatch")
	}
}

func TestOpenMPEGIsIdentity(t *testing.T) {
	frames := [][]byte{pattern(417, 1), pattern(418, 2), pattern(1, 3)}

	var samples []testSample
	for _, f := range frames {
		samples = append(samples, testSample{freqIndex: 8, stereo: true, data: f})
	}

	bank, err := Open(buildBank(testBank{version: 1, mode: ModeMPEG, samples: samples}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	for i, s := range bank.Samples() {
		out, err := s.ContainerBytes()
		if err != nil {
			t.Fatalf("sample %d: %v", i, err)
		}

		// lengths include padding up to the next 16-byte boundary
		if !bytes.HasPrefix(out, frames[i]) || !bytes.Equal(out, s.Data()) {
			t.Fatalf("sample %d: MPEG stream altered", i)
		}
	}
}

func TestOpenCodecErrors(t *testing.T) {
	tests := []struct {
		mode Mode
		want error
	}{
		{ModeVorbis, ErrNotImplemented},
		{ModeXMA, ErrUnsupportedCodec},
		{ModeGCADPCM, ErrUnsupportedCodec},
		{Mode(77), ErrUnsupportedCodec},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			bank, err := Open(buildBank(testBank{
				version: 1,
				mode:    tt.mode,
				samples: []testSample{{freqIndex: 8, data: pattern(32, 0)}},
			}))
			if err != nil {
				t.Fatalf("Open: %v", err)
			}

			out, err := bank.Samples()[0].ContainerBytes()
			if !errors.Is(err, tt.want) || !errors.Is(err, ErrCodec) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}

			if out != nil {
				t.Fatalf("got %d bytes on error", len(out))
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	valid := buildBank(testBank{
		version: 1,
		mode:    ModePCM16,
		names:   true,
		samples: []testSample{
			{freqIndex: 8, name: "a", data: pattern(32, 0)},
			{freqIndex: 8, name: "b", data: pattern(32, 1)},
		},
	})

	badNameOffset := append([]byte(nil), valid...)
	// first name table offset sits right after the 16 byte descriptor table
	binary.LittleEndian.PutUint32(badNameOffset[HeaderSizeV1+16:], 1000)

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"bad magic", append([]byte("FSB3"), valid[4:]...), ErrBadMagic},
		{"data cut short", valid[:len(valid)-1], ErrTruncated},
		{"table cut short", valid[:HeaderSizeV1+4], ErrTruncated},
		{"bad name offset", badNameOffset, ErrTruncated},
		{"bad frequency", buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{{freqIndex: 12}}}), ErrBadFrequency},
		{"decreasing offsets", buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{
			{freqIndex: 8, data: pattern(32, 0)},
			{freqIndex: 8, data: pattern(32, 0), offset: uint32Ptr(64)},
			{freqIndex: 8, data: pattern(16, 0), offset: uint32Ptr(16)},
		}}), ErrCorruptOffsets},
		{"zero channel override", buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{
			{freqIndex: 8, data: pattern(16, 0), chunks: []testChunkDef{{typ: ChunkChannels, payload: []byte{0}}}},
		}}), ErrBadChannels},
		{"zero frequency override", buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{
			{freqIndex: 8, data: pattern(16, 0), chunks: []testChunkDef{{typ: ChunkFrequency, payload: le32(0)}}},
		}}), ErrBadFrequency},
		{"oversized chunk", buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{
			{freqIndex: 8, data: pattern(16, 0), chunks: []testChunkDef{{typ: ChunkLoop, payload: make([]byte, 8), declared: 1 << 20}}},
		}}), ErrTruncatedChunk},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bank, err := Open(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v, want %v", err, tt.want)
			}

			if !errors.Is(err, ErrFormat) {
				t.Fatalf("err=%v doesn't match ErrFormat", err)
			}

			if bank != nil {
				t.Fatal("got a bank on error")
			}
		})
	}
}

func TestOpenTrailingBytesIgnored(t *testing.T) {
	b := buildBank(testBank{version: 1, mode: ModePCM8, samples: []testSample{{freqIndex: 1, data: pattern(10, 0)}}})
	b = append(b, "trailer"...)

	bank, err := Open(b)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got := len(bank.Samples()[0].Data()); got != 10 {
		t.Fatalf("data length=%d, want 10", got)
	}
}

func TestOpenEmptyBank(t *testing.T) {
	bank, err := Open(buildBank(testBank{version: 1, mode: ModePCM16}))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if len(bank.Samples()) != 0 {
		t.Fatalf("got %d samples, want 0", len(bank.Samples()))
	}
}

func TestSampleDataCannotGrowIntoNeighbour(t *testing.T) {
	bank, err := Open(buildBank(testBank{version: 1, mode: ModePCM8, samples: []testSample{
		{freqIndex: 1, data: pattern(16, 1)},
		{freqIndex: 1, data: pattern(16, 2)},
	}}))
	if err != nil {
		t.Fatal(err)
	}

	samples := bank.Samples()
	first := samples[0].Data()

	if cap(first) != len(first) {
		t.Fatalf("cap=%d, want %d", cap(first), len(first))
	}

	_ = append(first, 0xFF)

	if !bytes.Equal(samples[1].Data(), pattern(16, 2)) {
		t.Fatal("appending to one sample overwrote the next")
	}
}

func TestDescriptorIsACopy(t *testing.T) {
	bank, err := Open(buildBank(testBank{version: 1, mode: ModePCM16, samples: []testSample{
		{freqIndex: 8, data: pattern(16, 0), chunks: []testChunkDef{{typ: ChunkLoop, payload: append(le32(1), le32(2)...)}}},
	}}))
	if err != nil {
		t.Fatal(err)
	}

	s := bank.Samples()[0]
	d := s.Descriptor()
	d.Chunks[0] = UnknownChunk{ID: 99}
	d.Frequency = 1

	if loop, ok := s.Loop(); !ok || loop.Start != 1 || loop.End != 2 {
		t.Fatalf("Loop()=%+v,%v after mutating a descriptor copy", loop, ok)
	}

	if s.Format().SampleRate != 44100 {
		t.Fatal("descriptor copy shares state with the sample")
	}
}

func TestContainerBytesConcurrent(t *testing.T) {
	var samples []testSample
	for i := 0; i < 8; i++ {
		samples = append(samples, testSample{freqIndex: 8, stereo: true, data: pattern(256, byte(i))})
	}

	bank, err := Open(buildBank(testBank{version: 1, mode: ModePCM16, samples: samples}))
	if err != nil {
		t.Fatal(err)
	}

	want := make([][]byte, len(samples))
	for i, s := range bank.Samples() {
		if want[i], err = s.ContainerBytes(); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup

	errs := make(chan error, 4*len(samples))

	for n := 0; n < 4; n++ {
		for i, s := range bank.Samples() {
			i, s := i, s
			wg.Add(1)

			go func() {
				defer wg.Done()

				out, err := s.ContainerBytes()
				if err != nil {
					errs <- err
					return
				}

				if !bytes.Equal(out, want[i]) {
					errs <- errors.New("concurrent output differs")
				}
			}()
		}
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Fatal(err)
	}
}
