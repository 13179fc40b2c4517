package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeWAV serializes the buffer as a 16-bit PCM mono WAV file.
func EncodeWAV(b Buffer) []byte {
	const (
		numChannels   = 1
		bitsPerSample = 16
	)
	dataSize := len(b) * 2
	byteRate := SampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	var buf bytes.Buffer
	buf.Grow(44 + dataSize)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(&buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range b {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		binary.Write(&buf, binary.LittleEndian, int16(s*32767))
	}

	return buf.Bytes()
}

// DecodeWAV parses a 16-bit PCM WAV file into a mono buffer at the engine
// sample rate. Multi-channel input is averaged down, other rates resampled.
func DecodeWAV(data []byte) (Buffer, error) {
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("failed to decode wav: not a RIFF/WAVE file")
	}

	var (
		format, channels, bits uint16
		rate                   uint32
		samples                Buffer
	)
	sawFmt := false

	// Walk the chunk list; fmt must precede data.
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			size = len(data) - body
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("failed to decode wav: short fmt chunk")
			}
			format = binary.LittleEndian.Uint16(data[body : body+2])
			channels = binary.LittleEndian.Uint16(data[body+2 : body+4])
			rate = binary.LittleEndian.Uint32(data[body+4 : body+8])
			bits = binary.LittleEndian.Uint16(data[body+14 : body+16])
			sawFmt = true
		case "data":
			if !sawFmt {
				return nil, fmt.Errorf("failed to decode wav: data before fmt")
			}
			if format != 1 || bits != 16 {
				return nil, fmt.Errorf("failed to decode wav: unsupported format %d/%d-bit", format, bits)
			}
			if channels == 0 {
				return nil, fmt.Errorf("failed to decode wav: zero channels")
			}
			frames := size / (2 * int(channels))
			samples = make(Buffer, frames)
			for i := 0; i < frames; i++ {
				sum := 0.0
				for c := 0; c < int(channels); c++ {
					off := body + (i*int(channels)+c)*2
					sum += float64(int16(binary.LittleEndian.Uint16(data[off:off+2]))) / 32768
				}
				samples[i] = sum / float64(channels)
			}
		}
		pos = body + size
		if size%2 == 1 {
			pos++
		}
	}

	if samples == nil {
		return nil, fmt.Errorf("failed to decode wav: missing data chunk")
	}
	if rate != SampleRate && rate > 0 {
		samples = Resample(samples, int(float64(len(samples))*SampleRate/float64(rate)))
	}
	return samples, nil
}
