// Package config reads TOML files that describe the accumulators of an
// analysis and the way they should run, and builds the accumulators.
//
//	workers = 4
//	log_mode = "performance"
//
//	[pmftxyz]
//	max_x = 2.0
//	max_y = 2.0
//	max_z = 2.0
//	nbins_x = 4
//	nbins_y = 4
//	nbins_z = 4
//
//	[structure_factor]
//	bins = 100
//	k_max = 10.0
//	k_min = 0.0
//	direct = true
//
//	[rdf]
//	bins = 100
//	r_max = 5.0
//	r_min = 0.0
//
//	[msd]
//	mode = "window"
//
// Every section is optional, but building an accumulator from a missing
// section fails, as its parameters are then invalid.
package config

import (
	"io"
	"os"

	"github.com/jennyfothergill/freud"
	"github.com/jennyfothergill/freud/density"
	"github.com/jennyfothergill/freud/diffraction"
	"github.com/jennyfothergill/freud/logging"
	"github.com/jennyfothergill/freud/msd"
	"github.com/jennyfothergill/freud/pmft"
	"github.com/pelletier/go-toml"
)

// PMFXYZ contains the parameters of a pmft.PMFXYZ.
type PMFXYZ struct {
	MaxX   float64 `toml:"max_x"`
	MaxY   float64 `toml:"max_y"`
	MaxZ   float64 `toml:"max_z"`
	NBinsX int     `toml:"nbins_x"`
	NBinsY int     `toml:"nbins_y"`
	NBinsZ int     `toml:"nbins_z"`
}

// StructureFactor contains the parameters of a diffraction.StaticStructureFactor.
type StructureFactor struct {
	Bins   int     `toml:"bins"`
	KMax   float64 `toml:"k_max"`
	KMin   float64 `toml:"k_min"`
	Direct bool    `toml:"direct"`
}

// RDF contains the parameters of a density.RDF.
type RDF struct {
	Bins int     `toml:"bins"`
	RMax float64 `toml:"r_max"`
	RMin float64 `toml:"r_min"`
}

// MSD contains the parameters of an msd.MSD.
type MSD struct {
	Mode string `toml:"mode"`
}

// Config is the content of a configuration file.
type Config struct {
	// Workers is the number of goroutines used, 0 means one per logical CPU.
	Workers int    `toml:"workers"`
	LogMode string `toml:"log_mode"`

	PMFXYZ          PMFXYZ          `toml:"pmftxyz"`
	StructureFactor StructureFactor `toml:"structure_factor"`
	RDF             RDF             `toml:"rdf"`
	MSD             MSD             `toml:"msd"`

	logMode logging.Flag
	opts    *freud.Options
}

// Load reads a configuration from r and sets the global logging mode
// to the one given in it.
func Load(r io.Reader) (*Config, error) {
	c := new(Config)
	if err := toml.NewDecoder(r).Decode(c); err != nil {
		return nil, freud.ConfigError("config.Load", "Can't decode the configuration: %s", err.Error())
	}
	if c.Workers < 0 {
		return nil, freud.ConfigError("config.Load", "workers must not be negative, got %d", c.Workers)
	}
	var err error
	c.logMode, err = logging.ParseFlag(c.LogMode)
	if err != nil {
		return nil, freud.ConfigError("config.Load", "%s", err.Error())
	}
	if _, err = msd.ParseMode(c.MSD.Mode); err != nil {
		return nil, freud.ErrDecorate(err, "config.Load")
	}
	c.opts = freud.DefaultOptions()
	c.opts.Workers(c.Workers)
	logging.Mode = c.logMode
	return c, nil
}

// LoadFile reads the configuration in the file named path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, freud.ConfigError("config.LoadFile", "Can't open %s: %s", path, err.Error())
	}
	defer f.Close()
	c, err := Load(f)
	return c, freud.ErrDecorate(err, "config.LoadFile")
}

// Mode returns the logging mode of the configuration.
func (c *Config) Mode() logging.Flag { return c.logMode }

// Options returns the run options given in the configuration. All the
// accumulators built by c share them.
func (c *Config) Options() *freud.Options { return c.opts }

// NewPMFXYZ builds the PMFXYZ described in the pmftxyz section.
func (c *Config) NewPMFXYZ() (*pmft.PMFXYZ, error) {
	p := c.PMFXYZ
	r, err := pmft.NewPMFXYZ(p.MaxX, p.MaxY, p.MaxZ, p.NBinsX, p.NBinsY, p.NBinsZ, c.opts)
	if err != nil {
		return nil, freud.ErrDecorate(err, "config.Config.NewPMFXYZ")
	}
	return r, nil
}

// NewStaticStructureFactor builds the structure factor described in
// the structure_factor section.
func (c *Config) NewStaticStructureFactor() (*diffraction.StaticStructureFactor, error) {
	s := c.StructureFactor
	r, err := diffraction.NewStaticStructureFactor(s.Bins, s.KMax, s.KMin, s.Direct, c.opts)
	if err != nil {
		return nil, freud.ErrDecorate(err, "config.Config.NewStaticStructureFactor")
	}
	return r, nil
}

// NewRDF builds the RDF described in the rdf section.
func (c *Config) NewRDF() (*density.RDF, error) {
	r, err := density.NewRDF(c.RDF.Bins, c.RDF.RMax, c.RDF.RMin, c.opts)
	if err != nil {
		return nil, freud.ErrDecorate(err, "config.Config.NewRDF")
	}
	return r, nil
}

// NewMSD builds the MSD described in the msd section. The default mode is window.
func (c *Config) NewMSD() (*msd.MSD, error) {
	mode, err := msd.ParseMode(c.MSD.Mode)
	if err != nil {
		return nil, freud.ErrDecorate(err, "config.Config.NewMSD")
	}
	r, err := msd.New(mode, c.opts)
	if err != nil {
		return nil, freud.ErrDecorate(err, "config.Config.NewMSD")
	}
	return r, nil
}
