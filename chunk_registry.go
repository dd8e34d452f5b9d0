package fsb5

import (
	"encoding/binary"
	"fmt"
)

// chunkHandler decodes the payload of one extended chunk type. The payload
// slice is exactly the declared chunk size.
type chunkHandler interface {
	CanHandle(t ChunkType) bool
	Decode(payload []byte) (ExtendedChunk, error)
}

// chunkRegistry resolves chunk types to handlers.
type chunkRegistry struct {
	handlers []chunkHandler
}

func newDefaultChunkRegistry() *chunkRegistry {
	return &chunkRegistry{
		handlers: []chunkHandler{
			&channelsChunkHandler{},
			&frequencyChunkHandler{},
			&loopChunkHandler{},
			&opaqueChunkHandler{chunkType: ChunkXMASeek, wrap: func(b []byte) ExtendedChunk { return SeekTable{Data: b} }},
			&opaqueChunkHandler{chunkType: ChunkDSPCoefficients, wrap: func(b []byte) ExtendedChunk { return DSPCoefficients{Data: b} }},
			&opaqueChunkHandler{chunkType: ChunkXWMAData, wrap: func(b []byte) ExtendedChunk { return XWMAData{Data: b} }},
			&vorbisChunkHandler{},
		},
	}
}

// Decode dispatches a chunk payload to the first matching handler. Types
// without a handler are preserved as UnknownChunk.
func (r *chunkRegistry) Decode(t ChunkType, payload []byte) (ExtendedChunk, error) {
	if r != nil {
		for _, handler := range r.handlers {
			if !handler.CanHandle(t) {
				continue
			}

			chunk, err := handler.Decode(payload)
			if err != nil {
				return nil, fmt.Errorf("%s chunk: %w", t, err)
			}

			return chunk, nil
		}
	}

	return UnknownChunk{ID: t, Data: payload}, nil
}

func needPayload(payload []byte, n int) error {
	if len(payload) < n {
		return fmt.Errorf("%w: payload is %d bytes, need %d", ErrTruncatedChunk, len(payload), n)
	}

	return nil
}

type channelsChunkHandler struct{}

func (h *channelsChunkHandler) CanHandle(t ChunkType) bool {
	return t == ChunkChannels
}

func (h *channelsChunkHandler) Decode(payload []byte) (ExtendedChunk, error) {
	if err := needPayload(payload, 1); err != nil {
		return nil, err
	}

	return ChannelOverride{Channels: payload[0], DeclaredSize: len(payload)}, nil
}

type frequencyChunkHandler struct{}

func (h *frequencyChunkHandler) CanHandle(t ChunkType) bool {
	return t == ChunkFrequency
}

func (h *frequencyChunkHandler) Decode(payload []byte) (ExtendedChunk, error) {
	if err := needPayload(payload, 4); err != nil {
		return nil, err
	}

	return FrequencyOverride{Hz: binary.LittleEndian.Uint32(payload), DeclaredSize: len(payload)}, nil
}

type loopChunkHandler struct{}

func (h *loopChunkHandler) CanHandle(t ChunkType) bool {
	return t == ChunkLoop
}

func (h *loopChunkHandler) Decode(payload []byte) (ExtendedChunk, error) {
	if err := needPayload(payload, 8); err != nil {
		return nil, err
	}

	return LoopInfo{
		Start:        binary.LittleEndian.Uint32(payload[0:4]),
		End:          binary.LittleEndian.Uint32(payload[4:8]),
		DeclaredSize: len(payload),
	}, nil
}

type opaqueChunkHandler struct {
	chunkType ChunkType
	wrap      func([]byte) ExtendedChunk
}

func (h *opaqueChunkHandler) CanHandle(t ChunkType) bool {
	return t == h.chunkType
}

func (h *opaqueChunkHandler) Decode(payload []byte) (ExtendedChunk, error) {
	return h.wrap(payload), nil
}

type vorbisChunkHandler struct{}

func (h *vorbisChunkHandler) CanHandle(t ChunkType) bool {
	return t == ChunkVorbisData
}

func (h *vorbisChunkHandler) Decode(payload []byte) (ExtendedChunk, error) {
	if err := needPayload(payload, 4); err != nil {
		return nil, err
	}

	return VorbisSetup{CRC32: binary.LittleEndian.Uint32(payload[:4]), Data: payload[4:]}, nil
}
