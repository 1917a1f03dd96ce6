// Package config loads the driver and rheology parameters from a YAML
// run file, the way the reference stack's InputParameters package
// unmarshals its 2D solver configuration. Fields absent from the file keep
// their defaults; the package does not read flags or environment variables.
package config

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/geoflows/avaflow/driver"
	"github.com/geoflows/avaflow/params"
	"github.com/geoflows/avaflow/solver"
)

// RunConfig is the on-disk/flag-bindable configuration for a run: the grid
// cell size, the driver stop conditions, and the scalar rheology bundle.
// Per-cell parameter rasters are a construction-time override the DEM
// container collaborator supplies directly to solver.New — they have no
// representation here.
type RunConfig struct {
	Title string `yaml:"title"`

	Dx float64 `yaml:"dx"`
	Dy float64 `yaml:"dy"`

	MaxSteps    int     `yaml:"maxSteps"`
	MaxTime     float64 `yaml:"maxTime"`
	DtMax       float64 `yaml:"dtMax"`
	CFL         float64 `yaml:"cfl"`
	OutputEvery int     `yaml:"outputEvery"`

	Mu   float64 `yaml:"mu"`
	Xi   float64 `yaml:"xi"`
	Vc   float64 `yaml:"vc"`
	HMin float64 `yaml:"hMin"`
	DMin float64 `yaml:"dMin"`
	Cent bool    `yaml:"cent"`
	G    float64 `yaml:"g"`
}

// Default returns the configuration matching every default named in the
// model description's external interfaces and data model sections.
func Default() RunConfig {
	return RunConfig{
		Title:       "avaflow run",
		Dx:          1,
		Dy:          1,
		MaxSteps:    1 << 30,
		MaxTime:     1000,
		DtMax:       1,
		CFL:         0.7,
		OutputEvery: 0,
		Mu:          0.2,
		Xi:          500,
		Vc:          4,
		HMin:        0,
		DMin:        0,
		Cent:        true,
		G:           9.81,
	}
}

// Parse unmarshals YAML run configuration into c, leaving fields absent
// from the document untouched.
func (c *RunConfig) Parse(data []byte) error {
	return yaml.Unmarshal(data, c)
}

// Print renders the resolved configuration, in the spirit of the
// reference stack's InputParameters2D.Print.
func (c *RunConfig) Print() {
	fmt.Printf("%q\t\t= Title\n", c.Title)
	fmt.Printf("%8.4f, %8.4f\t= Dx, Dy\n", c.Dx, c.Dy)
	fmt.Printf("%8.4f\t\t= CFL\n", c.CFL)
	fmt.Printf("%8.4f\t\t= DtMax\n", c.DtMax)
	fmt.Printf("%8.4f\t\t= MaxTime\n", c.MaxTime)
	fmt.Printf("%8d\t\t= MaxSteps\n", c.MaxSteps)
	fmt.Printf("%8d\t\t= OutputEvery\n", c.OutputEvery)
	fmt.Printf("%8.4f\t\t= Mu\n", c.Mu)
	fmt.Printf("%8.4f\t\t= Xi\n", c.Xi)
	fmt.Printf("%8.4f\t\t= Vc\n", c.Vc)
	fmt.Printf("%8.4f\t\t= HMin\n", c.HMin)
	fmt.Printf("%8.4f\t\t= DMin\n", c.DMin)
	fmt.Printf("%8v\t\t= Cent\n", c.Cent)
	fmt.Printf("%8.4f\t\t= G\n", c.G)
}

// Validate reports the construction-time errors named in the error
// handling design: non-positive cell sizes, invalid CFL, non-positive
// gravity, or a negative motion threshold.
func (c RunConfig) Validate() error {
	if c.Dx <= 0 || c.Dy <= 0 {
		return fmt.Errorf("config: dx and dy must be > 0, got %g, %g", c.Dx, c.Dy)
	}
	if c.CFL <= 0 || c.CFL > 1 {
		return fmt.Errorf("config: cfl must satisfy 0 < cfl <= 1, got %g", c.CFL)
	}
	if c.G <= 0 {
		return fmt.Errorf("config: g must be > 0, got %g", c.G)
	}
	if c.HMin < 0 {
		return fmt.Errorf("config: hMin must be >= 0, got %g", c.HMin)
	}
	return nil
}

// SolverParams builds the scalar rheology bundle solver.New expects.
func (c RunConfig) SolverParams() solver.Params {
	return solver.Params{
		Mu:   params.Scalar(c.Mu),
		Xi:   params.Scalar(c.Xi),
		Vc:   params.Scalar(c.Vc),
		HMin: params.Scalar(c.HMin),
		DMin: params.Scalar(c.DMin),
		Cent: c.Cent,
		G:    c.G,
	}
}

// DriverConfig builds the outer run-loop configuration.
func (c RunConfig) DriverConfig() driver.Config {
	cfl := c.CFL
	return driver.Config{
		MaxSteps:    c.MaxSteps,
		MaxTime:     c.MaxTime,
		DtMax:       c.DtMax,
		CFL:         &cfl,
		OutputEvery: c.OutputEvery,
	}
}
