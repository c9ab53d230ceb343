// Package wavfile writes and reads mono 16-bit PCM RIFF/WAVE files.
package wavfile

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

const (
	FormatPCM     = 1
	NumChannels   = 1
	BitsPerSample = 16
	HeaderSize    = 44
)

// Header holds every field of the canonical 44-byte header. All of them are
// derived from the sample count and sample rate.
type Header struct {
	ChunkSize     uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

func NewHeader(samples int, sampleRate int) Header {
	blockAlign := NumChannels * BitsPerSample / 8
	dataSize := samples * blockAlign
	return Header{
		ChunkSize:     uint32(36 + dataSize),
		AudioFormat:   FormatPCM,
		NumChannels:   NumChannels,
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: BitsPerSample,
		DataSize:      uint32(dataSize),
	}
}

func (h Header) put(out []byte) {
	copy(out[0:], []byte("RIFF"))
	binary.LittleEndian.PutUint32(out[4:], h.ChunkSize)
	copy(out[8:], []byte("WAVE"))
	copy(out[12:], []byte("fmt "))
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], h.AudioFormat)
	binary.LittleEndian.PutUint16(out[22:], h.NumChannels)
	binary.LittleEndian.PutUint32(out[24:], h.SampleRate)
	binary.LittleEndian.PutUint32(out[28:], h.ByteRate)
	binary.LittleEndian.PutUint16(out[32:], h.BlockAlign)
	binary.LittleEndian.PutUint16(out[34:], h.BitsPerSample)
	copy(out[36:], []byte("data"))
	binary.LittleEndian.PutUint32(out[40:], h.DataSize)
}

// Encode builds the whole file in memory, for writers that cannot seek.
func Encode(samples []int16, sampleRate int) []byte {
	h := NewHeader(len(samples), sampleRate)
	out := make([]byte, HeaderSize+int(h.DataSize))
	h.put(out)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[HeaderSize+i*2:], uint16(s))
	}
	return out
}

// Write streams samples through a go-audio encoder, which patches the chunk
// sizes on Close.
func Write(ws io.WriteSeeker, samples []int16, sampleRate int) error {
	enc := wav.NewEncoder(ws, sampleRate, BitsPerSample, NumChannels, FormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: NumChannels,
			SampleRate:  sampleRate,
		},
		Data:           make([]int, len(samples)),
		SourceBitDepth: BitsPerSample,
	}
	for i, s := range samples {
		buf.Data[i] = int(s)
	}
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "wavfile: write samples")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "wavfile: finish header")
	}
	return nil
}

// WriteFile creates path and writes the container. The file is closed on
// every return path.
func WriteFile(path string, samples []int16, sampleRate int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "%s: cannot write file", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "%s: cannot write file", path)
		}
	}()
	if err := Write(f, samples, sampleRate); err != nil {
		return errors.Wrapf(err, "%s: cannot write file", path)
	}
	return nil
}

// Read decodes a mono 16-bit file written by this package.
func Read(r io.ReadSeeker) ([]int16, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, errors.New("wavfile: not a valid WAV file")
	}
	if dec.NumChans != NumChannels || dec.BitDepth != BitsPerSample {
		return nil, 0, errors.Errorf("wavfile: want mono 16-bit, got %d channels at %d bits", dec.NumChans, dec.BitDepth)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, errors.Wrap(err, "wavfile: decode samples")
	}
	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = int16(v)
	}
	return out, int(dec.SampleRate), nil
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) ([]int16, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}
	defer f.Close()
	return Read(f)
}
