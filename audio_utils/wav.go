package audio_utils

import (
	"bytes"
	"encoding/binary"
	"errors"
	"regexp"
	"strconv"
)

const (
	// DefaultSampleRate is assumed when the provider media type carries no
	// usable rate parameter.
	DefaultSampleRate = 24000

	bitsPerSample  = 16
	audioFormatPCM = 1
	fmtChunkSize   = 16
)

var rateParamRegexp = regexp.MustCompile(`rate=(\d+)`)

// SampleRateFromMediaType extracts the rate parameter from a media type such
// as "audio/L16;codec=pcm;rate=24000". Missing or malformed rates fall back
// to DefaultSampleRate.
func SampleRateFromMediaType(mediaType string) int {
	match := rateParamRegexp.FindStringSubmatch(mediaType)
	if match == nil {
		return DefaultSampleRate
	}
	rate, err := strconv.Atoi(match[1])
	if err != nil || rate <= 0 {
		return DefaultSampleRate
	}
	return rate
}

// EncodeWAV wraps raw 16-bit little-endian PCM bytes in a WAV container.
func EncodeWAV(pcm []byte, sampleRate, numChannels int) ([]byte, error) {
	if err := ValidatePCM(pcm, numChannels); err != nil {
		return nil, err
	}
	if sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	if numChannels > 2 {
		return nil, errors.New("only mono (1) or stereo (2) channels supported")
	}

	blockAlign := numChannels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	dataSize := len(pcm)

	buf := bytes.NewBuffer(make([]byte, 0, 44+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(fmtChunkSize))
	binary.Write(buf, binary.LittleEndian, uint16(audioFormatPCM))
	binary.Write(buf, binary.LittleEndian, uint16(numChannels))
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// ValidatePCM checks that a payload is plausible 16-bit PCM for the given
// channel count.
func ValidatePCM(pcm []byte, numChannels int) error {
	if len(pcm) == 0 {
		return errors.New("PCM data is empty")
	}
	if numChannels <= 0 {
		return errors.New("invalid number of channels")
	}
	if len(pcm)%2 != 0 {
		return errors.New("PCM data must have even length (16-bit samples)")
	}
	if len(pcm)%(2*numChannels) != 0 {
		return errors.New("PCM data length doesn't match channel count")
	}
	return nil
}

// DurationSeconds returns the playback duration of a PCM payload.
func DurationSeconds(pcm []byte, sampleRate, numChannels int) (float64, error) {
	if err := ValidatePCM(pcm, numChannels); err != nil {
		return 0, err
	}
	if sampleRate <= 0 {
		return 0, errors.New("invalid sample rate")
	}
	frameCount := len(pcm) / 2 / numChannels
	return float64(frameCount) / float64(sampleRate), nil
}
