package eq

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// State layout: the low-pass cutoff then the high-pass cutoff, each as a
// little-endian IEEE-754 float32. Filter history is never persisted.

// MarshalBinary implements encoding.BinaryMarshaler.
func (ps *Params) MarshalBinary() ([]byte, error) {
	data := make([]byte, stateSize)
	binary.LittleEndian.PutUint32(data, math.Float32bits(float32(ps.Lowpass.Get())))
	binary.LittleEndian.PutUint32(data[float32Size:], math.Float32bits(float32(ps.Highpass.Get())))
	return data, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Values are
// clamped into range; non-finite values reject the whole blob and leave
// the store unchanged.
func (ps *Params) UnmarshalBinary(data []byte) error {
	if len(data) != stateSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidState, len(data), stateSize)
	}

	lp := float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	hp := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[float32Size:])))
	if math.IsNaN(lp) || math.IsInf(lp, 0) || math.IsNaN(hp) || math.IsInf(hp, 0) {
		return fmt.Errorf("%w: non-finite cutoff", ErrInvalidState)
	}

	ps.Lowpass.Set(lp)
	ps.Highpass.Set(hp)
	return nil
}

// WriteTo implements io.WriterTo.
func (ps *Params) WriteTo(w io.Writer) (int64, error) {
	data, err := ps.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// ReadFrom implements io.ReaderFrom. It reads exactly one state blob.
func (ps *Params) ReadFrom(r io.Reader) (int64, error) {
	data := make([]byte, stateSize)
	n, err := io.ReadFull(r, data)
	if err != nil {
		return int64(n), fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return int64(n), ps.UnmarshalBinary(data)
}

// SaveState writes the current cutoffs to w.
func (p *Processor[F]) SaveState(w io.Writer) error {
	_, err := p.params.WriteTo(w)
	return err
}

// LoadState restores cutoffs written by SaveState. The next processed block
// picks up the new values through the change gate.
func (p *Processor[F]) LoadState(r io.Reader) error {
	_, err := p.params.ReadFrom(r)
	return err
}
