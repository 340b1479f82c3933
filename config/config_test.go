package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/logging"
	"github.com/jennyfothergill/freud/msd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const full = `
workers = 3
log_mode = "nil"

[pmftxyz]
max_x = 2.0
max_y = 3.0
max_z = 1.0
nbins_x = 4
nbins_y = 6
nbins_z = 2

[structure_factor]
bins = 50
k_max = 10.0
k_min = 1.0
direct = true

[rdf]
bins = 20
r_max = 4.0
r_min = 0.5

[msd]
mode = "direct"
`

func TestLoad(Te *testing.T) {
	c, err := Load(strings.NewReader(full))
	require.NoError(Te, err)
	assert.Equal(Te, 3, c.Options().Workers())
	assert.Equal(Te, logging.Nil, c.Mode())

	p, err := c.NewPMFXYZ()
	require.NoError(Te, err)
	assert.Equal(Te, [3]int{4, 6, 2}, p.NBins())
	assert.Equal(Te, 3.0, p.Bounds().Y)

	s, err := c.NewStaticStructureFactor()
	require.NoError(Te, err)
	assert.True(Te, s.Direct())
	kmin, kmax := s.Bounds()
	assert.Equal(Te, 1.0, kmin)
	assert.Equal(Te, 10.0, kmax)
	assert.Len(Te, s.BinCenters(), 50)

	r, err := c.NewRDF()
	require.NoError(Te, err)
	rmin, rmax := r.Bounds()
	assert.Equal(Te, 0.5, rmin)
	assert.Equal(Te, 4.0, rmax)

	m, err := c.NewMSD()
	require.NoError(Te, err)
	assert.Equal(Te, msd.Direct, m.Mode())
}

func TestLoadDefaults(Te *testing.T) {
	old := logging.Mode
	defer func() { logging.Mode = old }()
	c, err := Load(strings.NewReader(`log_mode = "performance"`))
	require.NoError(Te, err)
	assert.Equal(Te, runtime.NumCPU(), c.Options().Workers())
	assert.Equal(Te, logging.Performance, logging.Mode)
	m, err := c.NewMSD()
	require.NoError(Te, err)
	assert.Equal(Te, msd.Window, m.Mode())
	//missing sections give invalid parameters.
	_, err = c.NewPMFXYZ()
	assert.True(Te, errors.Is(err, freud.ErrConfig))
	_, err = c.NewRDF()
	assert.True(Te, errors.Is(err, freud.ErrConfig))
	_, err = c.NewStaticStructureFactor()
	assert.True(Te, errors.Is(err, freud.ErrConfig))
}

func TestLoadErrors(Te *testing.T) {
	for _, text := range []string{
		`workers = -1`,
		`log_mode = "loud"`,
		"[msd]\nmode = \"fft\"",
		`workers = "many"`,
		`this is not toml`,
	} {
		_, err := Load(strings.NewReader(text))
		assert.True(Te, errors.Is(err, freud.ErrConfig), text)
	}
	_, err := LoadFile(filepath.Join(Te.TempDir(), "missing.toml"))
	assert.True(Te, errors.Is(err, freud.ErrConfig))
}

func TestLoadFile(Te *testing.T) {
	path := filepath.Join(Te.TempDir(), "freud.toml")
	require.NoError(Te, os.WriteFile(path, []byte(full), 0o644))
	c, err := LoadFile(path)
	require.NoError(Te, err)
	assert.Equal(Te, 20, c.RDF.Bins)
}
