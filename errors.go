package fsb5

import "errors"

var (
	// ErrFormat is matched by every error reporting a malformed bank.
	ErrFormat = errors.New("fsb5: invalid bank")
	// ErrCodec is matched by every error reporting a codec that can't be
	// repackaged.
	ErrCodec = errors.New("fsb5: codec error")

	// ErrBadMagic is returned when the buffer doesn't start with "FSB5".
	ErrBadMagic error = formatError("bad magic")
	// ErrUnsupportedVersion is returned for header versions other than 0 and 1.
	ErrUnsupportedVersion error = formatError("unsupported version")
	// ErrTruncated is returned when a region declared by the header, a
	// descriptor or a name table entry lies beyond the end of the buffer.
	ErrTruncated error = formatError("truncated")
	// ErrTruncatedChunk is returned when an extended chunk declares more bytes
	// than the descriptor table has left, or fewer than its fixed fields need.
	ErrTruncatedChunk error = formatError("truncated chunk")
	// ErrCorruptOffsets is returned when sample data offsets decrease or point
	// past the data region. The first sample must start at offset 0.
	ErrCorruptOffsets error = formatError("corrupt sample offsets")
	// ErrBadFrequency is returned when a descriptor's frequency index has no
	// table entry and no frequency chunk overrides it, or when a frequency
	// chunk declares 0 Hz.
	ErrBadFrequency error = formatError("invalid frequency")
	// ErrBadChannels is returned when a channel chunk declares 0 channels.
	ErrBadChannels error = formatError("invalid channel count")

	// ErrUnsupportedCodec is returned for codec modes without a container builder.
	ErrUnsupportedCodec error = codecError("unsupported codec")
	// ErrNotImplemented is returned for recognized codecs whose container
	// reconstruction isn't available yet (Vorbis).
	ErrNotImplemented error = codecError("not implemented")
)

type formatError string

func (e formatError) Error() string { return "fsb5: " + string(e) }

func (e formatError) Is(target error) bool { return target == ErrFormat }

type codecError string

func (e codecError) Error() string { return "fsb5: " + string(e) }

func (e codecError) Is(target error) bool { return target == ErrCodec }
