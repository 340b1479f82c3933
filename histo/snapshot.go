package histo

import (
	"encoding/json"
	"io"

	"github.com/jennyfothergill/freud"
	"github.com/klauspost/compress/zstd"
)

// WriteSnapshot writes h to w as zstd-compressed JSON, including its axes,
// so it can later be read with ReadSnapshot and merged with other results.
func WriteSnapshot[T Value](w io.Writer, h *Histogram[T]) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return freud.NewError(freud.ErrCompute, "histo.WriteSnapshot", "Can't create the encoder: %s", err.Error())
	}
	if err = json.NewEncoder(zw).Encode(h); err != nil {
		zw.Close()
		return freud.NewError(freud.ErrCompute, "histo.WriteSnapshot", "Can't encode the histogram: %s", err.Error())
	}
	if err = zw.Close(); err != nil {
		return freud.NewError(freud.ErrCompute, "histo.WriteSnapshot", "Can't flush the encoder: %s", err.Error())
	}
	return nil
}

// ReadSnapshot reads a histogram written by WriteSnapshot from r.
func ReadSnapshot[T Value](r io.Reader) (*Histogram[T], error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, freud.NewError(freud.ErrConfig, "histo.ReadSnapshot", "Can't create the decoder: %s", err.Error())
	}
	defer zr.Close()
	h := new(Histogram[T])
	if err = json.NewDecoder(zr).Decode(h); err != nil {
		return nil, freud.ErrDecorate(err, "histo.ReadSnapshot")
	}
	return h, nil
}
