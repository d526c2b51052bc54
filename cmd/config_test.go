package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomsim/atomsim/mc"
	"github.com/atomsim/atomsim/mc/calc"
)

const sampleConfig = `
seed: 42
max_iterations: 100
temperature: 300
system:
  cell:
    - [20, 0, 0]
    - [0, 20, 0]
    - [0, 0, 20]
  sites:
    - symbol: O
      position: [5, 5, 5]
      tag: 1
    - symbol: H
      position: [5.96, 5, 5]
      tag: 1
    - symbol: H
      position: [4.76, 5.93, 5]
      tag: 1
calculator:
  type: lennard-jones
  epsilon: 0.0104
  sigma: 3.4
  cutoff: 10
samplers:
  - type: translate
    weight: 2
    x_range: [-0.2, 0.2]
  - type: euler-rotate
    weight: 1
    center: cop
observers:
  - type: memory
    interval: 5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSimConfig(t *testing.T) {
	cfg, err := LoadSimConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.MaxIterations)
	assert.Equal(t, 300.0, cfg.Temperature)
	require.Len(t, cfg.Samplers, 2)
	assert.Equal(t, "translate", cfg.Samplers[0].Type)
	assert.Equal(t, []float64{-0.2, 0.2}, cfg.Samplers[0].XRange)
	assert.Equal(t, "cop", cfg.Samplers[1].Center)
	require.Len(t, cfg.Observers, 1)
	assert.Equal(t, 5, cfg.Observers[0].Interval)
}

func TestLoadSimConfig_Errors(t *testing.T) {
	_, err := LoadSimConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadSimConfig(writeConfig(t, "seed: [not an int\n"))
	assert.Error(t, err)
}

func TestBuildSystem_InlineSites(t *testing.T) {
	cfg, err := LoadSimConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	assert.Equal(t, 3, sys.Len())
	assert.Equal(t, []string{"O", "H", "H"}, sys.ChemicalSymbols())
	assert.Equal(t, []int{1, 1, 1}, sys.Tags())
	assert.InDelta(t, 8000.0, sys.Volume(), 1e-9)

	lj, ok := sys.Calculator().(calc.LennardJones)
	require.True(t, ok)
	assert.Equal(t, 0.0104, lj.Epsilon)
	assert.Equal(t, 3.4, lj.Sigma)
}

func TestBuildSystem_FromXYZ(t *testing.T) {
	dir := t.TempDir()
	xyzPath := filepath.Join(dir, "start.xyz")
	xyz := "2\nstart\nAr 1.0 2.0 3.0 1\nAr 4.0 5.0 6.0 2\n"
	require.NoError(t, os.WriteFile(xyzPath, []byte(xyz), 0o644))

	cfg := &SimConfig{
		System: SystemConfig{
			Cell: [3][3]float64{{10, 0, 0}, {0, 10, 0}, {0, 0, 10}},
			XYZ:  xyzPath,
		},
		Calculator: CalculatorConfig{Type: "constant", Value: -2},
	}
	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	assert.Equal(t, 2, sys.Len())
	assert.Equal(t, []int{1, 2}, sys.Tags())
	assert.Equal(t, calc.Constant{Value: -2}, sys.Calculator())
}

func TestBuildSystem_NeedsSource(t *testing.T) {
	cfg := &SimConfig{Calculator: CalculatorConfig{Type: "constant"}}
	_, err := cfg.BuildSystem()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))
}

func TestCalculatorConfig_UnknownType(t *testing.T) {
	_, err := CalculatorConfig{Type: "dft"}.build()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))
}

func TestSamplerConfig_BuildAllTypes(t *testing.T) {
	cell := cellOf([3][3]float64{{20, 0, 0}, {0, 20, 0}, {0, 0, 20}})
	additive := []SiteConfig{{Symbol: "Ar", Position: [3]float64{0, 0, 0}}}
	tagPair := &TagSelectorConfig{TargetTags: []int{1}}

	cases := []struct {
		cfg  SamplerConfig
		name string
	}{
		{SamplerConfig{Type: "translate"}, "Translate"},
		{SamplerConfig{Type: "euler-rotate"}, "EulerRotate"},
		{SamplerConfig{Type: "axis-rotate", Center: "cou"}, "AxisRotate"},
		{SamplerConfig{Type: "add", Additive: additive}, "Add"},
		{SamplerConfig{Type: "remove", Additive: additive}, "Remove"},
		{SamplerConfig{Type: "site-exchange", Tag1: tagPair, Tag2: tagPair}, "SiteExchange"},
		{SamplerConfig{Type: "symbol-exchange", Tag1: tagPair, Tag2: tagPair}, "SymbolExchange"},
		{SamplerConfig{Type: "cluster-generation", Tag1: tagPair, Tag2: tagPair}, "SiteExchangeClusterGeneration"},
	}
	for _, tc := range cases {
		s, err := tc.cfg.build(cell)
		require.NoError(t, err, tc.cfg.Type)
		assert.Equal(t, tc.name, s.Name())
	}
}

func TestSamplerConfig_BuildErrors(t *testing.T) {
	cell := cellOf([3][3]float64{{20, 0, 0}, {0, 20, 0}, {0, 0, 20}})

	_, err := SamplerConfig{Type: "teleport"}.build(cell)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))

	_, err = SamplerConfig{Type: "add"}.build(cell)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))

	_, err = SamplerConfig{Type: "site-exchange"}.build(cell)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))

	_, err = SamplerConfig{Type: "translate", XRange: []float64{1, 2, 3}}.build(cell)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))
}

func TestObserverConfig_Build(t *testing.T) {
	o, err := ObserverConfig{Type: "memory"}.build()
	require.NoError(t, err)
	assert.IsType(t, &mc.MemoryObserver{}, o)

	_, err = ObserverConfig{Type: "gui"}.build()
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))
}

func TestBuildEngine(t *testing.T) {
	cfg, err := LoadSimConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	engine, err := cfg.BuildEngine()
	require.NoError(t, err)
	assert.Equal(t, 100, engine.MaxIter())
	assert.Equal(t, 300.0, engine.Temperature())
}

func TestBuildEngine_NoSamplers(t *testing.T) {
	cfg := &SimConfig{MaxIterations: 10, Temperature: 300}
	_, err := cfg.BuildEngine()
	require.Error(t, err)
	assert.True(t, errors.Is(err, mc.ErrInvalidParameter))
}

func TestBuildEngine_EndToEnd(t *testing.T) {
	cfg, err := LoadSimConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	cfg.MaxIterations = 10

	sys, err := cfg.BuildSystem()
	require.NoError(t, err)
	engine, err := cfg.BuildEngine()
	require.NoError(t, err)

	final, err := engine.Run(sys, 0)
	require.NoError(t, err)
	assert.Equal(t, sys.Len(), final.Len())
}
