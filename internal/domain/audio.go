package domain

import (
	"encoding/binary"
	"fmt"
)

// WAV framing for the speech pipeline. Recognition wants raw 16kHz mono
// s16le samples; uploads arrive as WAV containers.

// ExtractPCM pulls the sample data out of a WAV container and verifies the
// format the recognizer expects: PCM, mono, 16-bit.
func ExtractPCM(wav []byte) ([]byte, int, error) {
	if len(wav) < 44 || string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a WAV file")
	}

	var (
		sampleRate int
		channels   uint16
		bits       uint16
		format     uint16
		data       []byte
	)

	for off := 12; off+8 <= len(wav); {
		id := string(wav[off : off+4])
		size := int(binary.LittleEndian.Uint32(wav[off+4 : off+8]))
		body := off + 8
		if body+size > len(wav) {
			size = len(wav) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("short fmt chunk")
			}
			format = binary.LittleEndian.Uint16(wav[body : body+2])
			channels = binary.LittleEndian.Uint16(wav[body+2 : body+4])
			sampleRate = int(binary.LittleEndian.Uint32(wav[body+4 : body+8]))
			bits = binary.LittleEndian.Uint16(wav[body+14 : body+16])
		case "data":
			data = wav[body : body+size]
		}

		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	if format != 1 || channels != 1 || bits != 16 {
		return nil, 0, fmt.Errorf("audio must be mono 16-bit PCM WAV")
	}
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("no audio data")
	}
	return data, sampleRate, nil
}

// BuildWAV wraps raw s16le PCM in a mono WAV header.
func BuildWAV(pcm []byte, sampleRate int) []byte {
	out := make([]byte, 44+len(pcm))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+len(pcm)))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], 1) // mono
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(sampleRate*2))
	binary.LittleEndian.PutUint16(out[32:34], 2)
	binary.LittleEndian.PutUint16(out[34:36], 16)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(len(pcm)))
	copy(out[44:], pcm)
	return out
}
