// Package fsb5 parses FMOD sample banks (FSB5) and extracts the embedded
// samples as standalone files.
//
// A bank is parsed from memory with Open. Each Sample references the input
// buffer; ContainerBytes turns it into a playable file:
//
//   - PCM8/16/24/32 and PCM float samples are wrapped in a RIFF/WAVE header,
//     with a smpl chunk when the sample has loop points.
//   - MPEG samples are returned unchanged.
//   - Vorbis samples fail with ErrNotImplemented, other codecs with
//     ErrUnsupportedCodec.
//
// PCMBuffer decodes PCM samples into a go-audio IntBuffer for re-encoding.
//
// Parse failures match ErrFormat, codec failures match ErrCodec:
//
//	bank, err := fsb5.Open(buf)
//	if errors.Is(err, fsb5.ErrFormat) {
//		...
//	}
//
// Nothing in the package mutates the input buffer or shared state, so samples
// can be converted concurrently.
package fsb5
