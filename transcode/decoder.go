package transcode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/sonido-mfcc/logging"
)

// WAV format tags accepted by the decoder
const (
	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE
)

// ErrDecode is the sentinel wrapped by every DecodeError
var ErrDecode = errors.New("decode error")

// DecodeError reports an unreadable or unsupported audio source. It is
// propagated unchanged; nothing downstream attempts to recover.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("decode error: %v", e.Err)
	}
	return fmt.Sprintf("decode error: %s: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrDecode) match any DecodeError
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// AudioData represents decoded, downmixed audio
type AudioData struct {
	PCM        []float64     `json:"-"` // mono samples in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Channels   int           `json:"channels"` // channel count of the source
	BitDepth   int           `json:"bit_depth"`
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source,omitempty"`
}

// FileProperties describes a WAV file without decoding its samples
type FileProperties struct {
	Path       string        `json:"path" yaml:"path"`
	Channels   int           `json:"channels" yaml:"channels"`
	SampleRate int           `json:"sample_rate" yaml:"sample_rate"`
	BitDepth   int           `json:"bit_depth" yaml:"bit_depth"`
	NumSamples int           `json:"num_samples" yaml:"num_samples"` // per channel
	Duration   time.Duration `json:"duration" yaml:"duration"`
}

// Decoder reads PCM WAV data
type Decoder struct {
	logger logging.Logger
}

// NewDecoder creates a WAV decoder
func NewDecoder() *Decoder {
	return &Decoder{
		logger: logging.WithFields(logging.Fields{
			"component": "wav_decoder",
		}),
	}
}

// DecodeFile decodes the WAV file at path
func (d *Decoder) DecodeFile(path string) (*AudioData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	defer file.Close()

	data, err := d.decode(file, path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// DecodeBytes decodes an in-memory WAV file
func (d *Decoder) DecodeBytes(b []byte) (*AudioData, error) {
	return d.decode(bytes.NewReader(b), "")
}

// Decode decodes a WAV stream
func (d *Decoder) Decode(r io.ReadSeeker) (*AudioData, error) {
	return d.decode(r, "")
}

func (d *Decoder) decode(r io.ReadSeeker, source string) (*AudioData, error) {
	logger := d.logger.WithFields(logging.Fields{
		"function": "decode",
		"source":   source,
	})

	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		err := &DecodeError{Source: source, Err: errors.New("invalid WAV file")}
		logger.Error(err, "Rejected input")
		return nil, err
	}

	switch decoder.WavAudioFormat {
	case wavFormatPCM:
	case wavFormatExtensible:
		subFormat, err := extensibleSubFormat(r, start)
		if err != nil {
			return nil, &DecodeError{Source: source, Err: err}
		}
		if subFormat != wavFormatPCM {
			return nil, &DecodeError{
				Source: source,
				Err:    fmt.Errorf("unsupported WAVE_FORMAT_EXTENSIBLE sub-format %d (only integer PCM)", subFormat),
			}
		}
	default:
		return nil, &DecodeError{
			Source: source,
			Err:    fmt.Errorf("unsupported WAV format tag %d (only integer PCM)", decoder.WavAudioFormat),
		}
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, &DecodeError{Source: source, Err: fmt.Errorf("could not read PCM buffer: %w", err)}
	}

	data, err := fromIntBuffer(buf, int(decoder.BitDepth))
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}
	data.Source = source

	logger.Debug("Decoded audio", logging.Fields{
		"sample_rate": data.SampleRate,
		"channels":    data.Channels,
		"bit_depth":   data.BitDepth,
		"samples":     len(data.PCM),
	})

	return data, nil
}

// extensibleSubFormat reads the format code carried in the first two bytes
// of the SubFormat GUID of a WAVE_FORMAT_EXTENSIBLE fmt chunk. The RIFF
// stream is re-read from start and r is left where it was.
func extensibleSubFormat(r io.ReadSeeker, start int64) (uint16, error) {
	resume, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer r.Seek(resume, io.SeekStart)

	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return 0, err
	}

	parser := riff.New(r)
	if err := parser.ParseHeaders(); err != nil {
		return 0, fmt.Errorf("could not read RIFF header: %w", err)
	}

	for {
		chunk, err := parser.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("fmt chunk not found: %w", err)
		}
		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}

		// 16-byte base header, cbSize, valid bits, channel mask, then the GUID
		body := make([]byte, chunk.Size)
		if _, err := io.ReadFull(chunk, body); err != nil {
			return 0, fmt.Errorf("could not read fmt chunk: %w", err)
		}
		if len(body) < 26 {
			return 0, fmt.Errorf("fmt chunk of %d bytes is too short for WAVE_FORMAT_EXTENSIBLE", len(body))
		}
		return binary.LittleEndian.Uint16(body[24:26]), nil
	}
}

func fromIntBuffer(buf *audio.IntBuffer, bitDepth int) (*AudioData, error) {
	if buf == nil || buf.Format == nil {
		return nil, errors.New("missing PCM format")
	}
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}

	channels := buf.Format.NumChannels
	sampleRate := buf.Format.SampleRate
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	samples, err := NormalizePCM(buf.Data, bitDepth)
	if err != nil {
		return nil, err
	}

	mono, err := Downmix(samples, channels)
	if err != nil {
		return nil, err
	}

	return &AudioData{
		PCM:        mono,
		SampleRate: sampleRate,
		Channels:   channels,
		BitDepth:   bitDepth,
		Duration:   samplesToDuration(len(mono), sampleRate),
	}, nil
}

// FullScale returns the divisor mapping integer PCM of the given bit
// depth to [-1, 1]: 2^(bitDepth−1) − 1, i.e. 32767 for 16-bit audio.
func FullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// NormalizePCM converts integer samples to floats in [-1, 1]. 8-bit WAV
// samples are unsigned and are re-centred around zero first. The most
// negative code (e.g. -32768) maps slightly below -1 and is clamped.
func NormalizePCM(data []int, bitDepth int) ([]float64, error) {
	scale, err := FullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	out := make([]float64, len(data))
	for i, v := range data {
		s := float64(v-offset) / scale
		if s < -1 {
			s = -1
		}
		out[i] = s
	}
	return out, nil
}

// Downmix averages interleaved channels into one mono channel. A trailing
// partial frame is dropped.
func Downmix(interleaved []float64, channels int) ([]float64, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("invalid channel count: %d", channels)
	}
	if channels == 1 {
		mono := make([]float64, len(interleaved))
		copy(mono, interleaved)
		return mono, nil
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := range mono {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono, nil
}

// Probe reads the header of a WAV file
func Probe(path string) (*FileProperties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Source: path, Err: err}
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, &DecodeError{Source: path, Err: errors.New("invalid WAV file")}
	}

	props := &FileProperties{
		Path:       path,
		Channels:   int(decoder.NumChans),
		SampleRate: int(decoder.SampleRate),
		BitDepth:   int(decoder.BitDepth),
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, &DecodeError{Source: path, Err: fmt.Errorf("could not locate PCM data: %w", err)}
	}

	if bytesPerFrame := props.Channels * props.BitDepth / 8; bytesPerFrame > 0 {
		props.NumSamples = decoder.PCMSize / bytesPerFrame
	}
	if props.SampleRate > 0 {
		props.Duration = samplesToDuration(props.NumSamples, props.SampleRate)
	}

	return props, nil
}

func samplesToDuration(samples, sampleRate int) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
