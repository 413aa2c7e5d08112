package gridmaker

import (
	"errors"
	"fmt"
	"io"
	"os"

	gio "github.com/molgrid/gridmaker/io"
)

var (
	// ErrNotInitialized is returned when a channel is exported before
	// MakeGrid has set the grid origin.
	ErrNotInitialized = errors.New(
		"grid origin is not set; call MakeGrid before exporting",
	)
	// ErrInvalidChannel is returned when an exported channel is outside of
	// the tensor.
	ErrInvalidChannel = errors.New("invalid channel")
	// ErrDimensionMismatch is returned when an exported tensor was not made
	// with the dimension of the exporting Maker.
	ErrDimensionMismatch = errors.New("tensor dimension does not match grid")
)

// checkExport returns an error if channel c of t cannot be exported by m.
func (m *Maker) checkExport(t *Tensor, c int) error {
	if m.origin == nil {
		return ErrNotInitialized
	}
	if t.Dimension != m.dimension {
		return fmt.Errorf(
			"%w: tensor has dimension %d, but grid has dimension %d",
			ErrDimensionMismatch, t.Dimension, m.dimension,
		)
	}
	if c < 0 || c >= t.Channels {
		return fmt.Errorf(
			"%w %d: must be between 0 and %d", ErrInvalidChannel,
			c, t.Channels-1,
		)
	}
	return nil
}

// ExportChannel writes channel c of t to wr in DX format, using the origin
// of the last grid made by m. Nothing is written if c is invalid.
func (m *Maker) ExportChannel(t *Tensor, c int, wr io.Writer) error {
	if err := m.checkExport(t, c); err != nil {
		return err
	}

	d := t.Dimension
	hd := &gio.DXHeader{
		Counts: [3]int{d, d, d},
		Origin: m.origin.Float64(),
		Delta:  m.resolution.Float64(),
	}
	return gio.WriteDX(wr, hd, t.Channel(c))
}

// ExportChannelFile writes channel c of t to the file fname in DX format.
// fname is not touched if c is invalid.
func (m *Maker) ExportChannelFile(t *Tensor, c int, fname string) error {
	if err := m.checkExport(t, c); err != nil {
		return err
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}

	if err := m.ExportChannel(t, c, f); err != nil {
		f.Close()
		os.Remove(fname)
		return err
	}
	return f.Close()
}
