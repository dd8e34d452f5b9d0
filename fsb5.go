package fsb5

import "time"

const (
	// Magic is the four byte signature every bank starts with.
	Magic = "FSB5"

	// offsetAlignment is the unit data offsets are stored in.
	offsetAlignment = 16
)

func nullTermStr(b []byte) string {
	return string(b[:clen(b)])
}

func clen(num []byte) int {
	for i := range num {
		if num[i] == 0 {
			return i
		}
	}

	return len(num)
}

func durationFromFrames(frames, sampleRate uint32) time.Duration {
	if sampleRate == 0 {
		return 0
	}

	return time.Duration(uint64(frames) * uint64(time.Second) / uint64(sampleRate))
}
