// Package msd computes the mean squared displacement of particles along a
// trajectory, either directly or with the FFT-based window method.
package msd

import (
	"fmt"
	"strings"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/histo"
	"github.com/jennyfothergill/freud/logging"
	v3 "github.com/jennyfothergill/freud/v3"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the method used to compute the MSD.
type Mode int

const (
	// Window is the FFT-based method, O(N log N) in the number of frames.
	Window Mode = iota
	// Direct averages the displacements over every time origin, O(N^2).
	Direct
)

// ParseMode returns the mode named s, "window" or "direct". The empty string is Window.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "window":
		return Window, nil
	case "direct":
		return Direct, nil
	}
	return Window, freud.ConfigError("msd.ParseMode", "Unknown MSD mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case Window:
		return "window"
	case Direct:
		return "direct"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// workspace holds the buffers one worker needs for one particle.
type workspace struct {
	fft *fourier.CmplxFFT
	buf []complex128
	d   []float64
	msd []float64
}

// MSD accumulates the per-lag mean squared displacement of sets of particles
// that share the same number of frames.
type MSD struct {
	opts      *freud.Options
	mode      Mode
	nframes   int
	particles int
	hist      *histo.Histogram[float64]
	local     *histo.Local[float64]
	work      []*workspace
	dirty     bool
	msd       []float64
}

// New returns a new MSD that uses the given mode.
func New(mode Mode, opts ...*freud.Options) (*MSD, error) {
	if mode != Window && mode != Direct {
		return nil, freud.ConfigError("msd.New", "Unknown MSD mode %d", int(mode))
	}
	return &MSD{opts: freud.PickOptions(opts...), mode: mode}, nil
}

// Mode returns the method used.
func (M *MSD) Mode() Mode { return M.mode }

// setup prepares the storage for n frames.
func (M *MSD) setup(n int) error {
	lags, err := histo.NewAxis(n, 0, float64(n))
	if err != nil {
		return err
	}
	M.hist, err = histo.New[float64](lags)
	if err != nil {
		return err
	}
	M.local = histo.NewLocal(M.hist, M.opts.Workers())
	M.work = nil
	M.nframes = n
	M.msd = make([]float64, n)
	return nil
}

// Accumulate adds the particles in frames to the MSD. frames[t] contains
// the positions of every particle at time t, with the same particles in the
// same order in all frames. The positions must be unwrapped.
// The number of frames must be the same in every call since the last Reset.
func (M *MSD) Accumulate(frames []*v3.Matrix) error {
	defer logging.Track("msd.MSD.Accumulate")()
	if len(frames) == 0 {
		return freud.ConfigError("msd.MSD.Accumulate", "No frames given")
	}
	for _, f := range frames {
		if f == nil {
			panic(freud.ErrNilPoints)
		}
	}
	np := frames[0].NVecs()
	for t, f := range frames {
		if f.NVecs() != np {
			return freud.ConfigError("msd.MSD.Accumulate", "Frame %d has %d particles, frame 0 has %d", t, f.NVecs(), np)
		}
	}
	n := len(frames)
	if M.hist == nil || (M.particles == 0 && n != M.nframes) {
		if err := M.setup(n); err != nil {
			return freud.ErrDecorate(err, "msd.MSD.Accumulate")
		}
	} else if n != M.nframes {
		return freud.ConfigError("msd.MSD.Accumulate", "Got %d frames, expected %d as in previous calls", n, M.nframes)
	}
	logging.Printf("msd.MSD.Accumulate: %s mode, %d frames, %d particles", M.mode, n, np)
	w := M.opts.Workers()
	M.local.EnsureWorkers(w)
	if len(M.work) < w {
		nw := make([]*workspace, w)
		copy(nw, M.work)
		M.work = nw
	}
	M.opts.For(np, func(p, worker int) {
		ws := M.workspace(worker)
		var msd []float64
		if M.mode == Direct {
			msd = direct(frames, p, ws)
		} else {
			msd = window(frames, p, ws)
		}
		slot := M.local.Slot(worker)
		for m, v := range msd {
			slot[m] += v
		}
	})
	M.particles += np
	M.dirty = true
	return nil
}

func (M *MSD) workspace(worker int) *workspace {
	ws := M.work[worker]
	if ws == nil {
		n := M.nframes
		ws = &workspace{d: make([]float64, n), msd: make([]float64, n)}
		if M.mode == Window {
			ws.fft = fourier.NewCmplxFFT(2 * n)
			ws.buf = make([]complex128, 2*n)
		}
		M.work[worker] = ws
	}
	return ws
}

// direct returns the MSD of particle p averaging over all time origins.
func direct(frames []*v3.Matrix, p int, ws *workspace) []float64 {
	n := len(frames)
	clear(ws.msd)
	for m := 1; m < n; m++ {
		var s float64
		for t := 0; t+m < n; t++ {
			s += r3.Norm2(r3.Sub(frames[t+m].Vec(p), frames[t].Vec(p)))
		}
		ws.msd[m] = s / float64(n-m)
	}
	return ws.msd
}

// window returns the MSD of particle p as S1 - 2 S2, where S2 is the
// autocorrelation of the positions, computed with an FFT.
func window(frames []*v3.Matrix, p int, ws *workspace) []float64 {
	n := len(frames)
	var q float64
	for t, f := range frames {
		ws.d[t] = r3.Norm2(f.Vec(p))
		q += ws.d[t]
	}
	q *= 2
	for m := 0; m < n; m++ {
		if m > 0 {
			q -= ws.d[m-1] + ws.d[n-m]
		}
		ws.msd[m] = q / float64(n-m)
	}
	for dim := 0; dim < 3; dim++ {
		clear(ws.buf)
		for t, f := range frames {
			ws.buf[t] = complex(f.At(p, dim), 0)
		}
		ws.fft.Coefficients(ws.buf, ws.buf)
		for i, v := range ws.buf {
			ws.buf[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
		}
		ws.fft.Sequence(ws.buf, ws.buf)
		//Sequence is not normalized
		norm := 1 / float64(len(ws.buf))
		for m := 0; m < n; m++ {
			ws.msd[m] -= 2 * real(ws.buf[m]) * norm / float64(n-m)
		}
	}
	return ws.msd
}

// Compute resets M and accumulates frames.
func (M *MSD) Compute(frames []*v3.Matrix) error {
	M.Reset()
	return freud.ErrDecorate(M.Accumulate(frames), "msd.MSD.Compute")
}

// MSD returns the mean squared displacement for each lag, averaged over
// all the particles accumulated since the last Reset. The slice belongs to M.
func (M *MSD) MSD() []float64 {
	if M.hist == nil {
		return nil
	}
	if M.dirty {
		M.local.ReduceInto(M.hist, M.opts)
		M.dirty = false
		if M.particles > 0 {
			for i, v := range M.hist.View() {
				M.msd[i] = v / float64(M.particles)
			}
		}
	}
	return M.msd
}

// Particles returns the number of particles accumulated since the last Reset.
func (M *MSD) Particles() int { return M.particles }

// Frames returns the number of frames expected by Accumulate, 0 if any number
// is accepted.
func (M *MSD) Frames() int {
	if M.particles == 0 {
		return 0
	}
	return M.nframes
}

// Reset clears all the accumulated data.
func (M *MSD) Reset() {
	if M.local != nil {
		M.local.Reset()
		M.hist.Reset()
		clear(M.msd)
	}
	M.particles = 0
	M.dirty = false
}
