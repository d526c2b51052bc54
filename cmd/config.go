package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atomsim/atomsim/mc"
	"github.com/atomsim/atomsim/mc/atoms"
	"github.com/atomsim/atomsim/mc/calc"
)

// SimConfig is the top-level YAML simulation configuration.
type SimConfig struct {
	Seed          int64            `yaml:"seed"`
	MaxIterations int              `yaml:"max_iterations"`
	Temperature   float64          `yaml:"temperature"`
	System        SystemConfig     `yaml:"system"`
	Calculator    CalculatorConfig `yaml:"calculator"`
	Samplers      []SamplerConfig  `yaml:"samplers"`
	Observers     []ObserverConfig `yaml:"observers"`
}

// SystemConfig declares the initial configuration, either as inline sites or
// as an XYZ file path.
type SystemConfig struct {
	Cell  [3][3]float64 `yaml:"cell"`
	XYZ   string        `yaml:"xyz,omitempty"`
	Sites []SiteConfig  `yaml:"sites,omitempty"`
}

// SiteConfig is one inline site.
type SiteConfig struct {
	Symbol   string     `yaml:"symbol"`
	Position [3]float64 `yaml:"position"`
	Tag      int        `yaml:"tag"`
}

// CalculatorConfig selects and parameterizes the energy calculator.
type CalculatorConfig struct {
	Type    string      `yaml:"type"` // "constant", "harmonic", "lennard-jones"
	Value   float64     `yaml:"value,omitempty"`
	K       float64     `yaml:"k,omitempty"`
	Center  *[3]float64 `yaml:"center,omitempty"`
	Epsilon float64     `yaml:"epsilon,omitempty"`
	Sigma   float64     `yaml:"sigma,omitempty"`
	Cutoff  float64     `yaml:"cutoff,omitempty"`
}

// TagSelectorConfig parameterizes one tag selector.
type TagSelectorConfig struct {
	TargetTags []int `yaml:"target_tags,omitempty"`
	IgnoreTags []int `yaml:"ignore_tags,omitempty"`
	NotExist   bool  `yaml:"not_exist,omitempty"`
}

// SamplerConfig declares one weighted move strategy.
type SamplerConfig struct {
	Type   string  `yaml:"type"`
	Weight float64 `yaml:"weight"`

	Tags TagSelectorConfig  `yaml:"tags,omitempty"`
	Tag1 *TagSelectorConfig `yaml:"tag1,omitempty"` // exchange moves
	Tag2 *TagSelectorConfig `yaml:"tag2,omitempty"`

	XRange []float64 `yaml:"x_range,omitempty"`
	YRange []float64 `yaml:"y_range,omitempty"`
	ZRange []float64 `yaml:"z_range,omitempty"`

	PhiRange   []float64 `yaml:"phi_range,omitempty"`
	ThetaRange []float64 `yaml:"theta_range,omitempty"`
	PsiRange   []float64 `yaml:"psi_range,omitempty"`

	Center      string      `yaml:"center,omitempty"` // "com" (default), "cop", "cou"
	CenterPoint *[3]float64 `yaml:"center_point,omitempty"`

	Additive []SiteConfig `yaml:"additive,omitempty"` // add/remove moves
}

// ObserverConfig declares one step-result sink.
type ObserverConfig struct {
	Type     string `yaml:"type"` // "console", "file", "memory", "trajectory"
	Path     string `yaml:"path,omitempty"`
	Interval int    `yaml:"interval"`
	Force    bool   `yaml:"force,omitempty"`
}

// LoadSimConfig reads and parses a YAML simulation config.
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg SimConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

func vec3(p [3]float64) atoms.Vec3 { return atoms.Vec3{p[0], p[1], p[2]} }

func cellOf(c [3][3]float64) atoms.Cell {
	return atoms.Cell{vec3(c[0]), vec3(c[1]), vec3(c[2])}
}

// BuildSystem constructs the initial configuration with its calculator
// attached.
func (c *SimConfig) BuildSystem() (*atoms.Atoms, error) {
	cell := cellOf(c.System.Cell)

	var sys *atoms.Atoms
	var err error
	switch {
	case c.System.XYZ != "":
		f, err := os.Open(c.System.XYZ)
		if err != nil {
			return nil, fmt.Errorf("opening structure: %w", err)
		}
		defer f.Close()
		sys, err = atoms.ReadXYZ(f, cell)
		if err != nil {
			return nil, fmt.Errorf("reading structure %s: %w", c.System.XYZ, err)
		}
	case len(c.System.Sites) > 0:
		sys, err = buildSites(c.System.Sites, cell)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: system needs either xyz or sites", mc.ErrInvalidParameter)
	}

	calculator, err := c.Calculator.build()
	if err != nil {
		return nil, err
	}
	sys.SetCalculator(calculator)
	return sys, nil
}

func buildSites(sites []SiteConfig, cell atoms.Cell) (*atoms.Atoms, error) {
	symbols := make([]string, len(sites))
	positions := make([]atoms.Vec3, len(sites))
	tags := make([]int, len(sites))
	for i, s := range sites {
		symbols[i] = s.Symbol
		positions[i] = vec3(s.Position)
		tags[i] = s.Tag
	}
	a, err := atoms.New(symbols, positions, cell)
	if err != nil {
		return nil, err
	}
	if err := a.SetTags(tags); err != nil {
		return nil, err
	}
	return a, nil
}

func (c CalculatorConfig) build() (atoms.Calculator, error) {
	switch c.Type {
	case "constant":
		return calc.Constant{Value: c.Value}, nil
	case "harmonic":
		h := calc.Harmonic{K: c.K}
		if c.Center != nil {
			h.Center = vec3(*c.Center)
		}
		return h, nil
	case "lennard-jones":
		return calc.LennardJones{Epsilon: c.Epsilon, Sigma: c.Sigma, Cutoff: c.Cutoff}, nil
	default:
		return nil, fmt.Errorf("%w: unknown calculator type %q", mc.ErrInvalidParameter, c.Type)
	}
}

func (c TagSelectorConfig) build() mc.TagSelector {
	if c.NotExist {
		return mc.NewNotExistTagSelector(c.IgnoreTags)
	}
	return mc.NewRandomTagSelector(c.TargetTags, c.IgnoreTags)
}

func (c SamplerConfig) center() mc.Center {
	if c.CenterPoint != nil {
		return mc.CenterAt(vec3(*c.CenterPoint))
	}
	switch c.Center {
	case "cop":
		return mc.CenterOfPositions()
	case "cou":
		return mc.CenterOfCell()
	default:
		return mc.CenterOfMass()
	}
}

func (c SamplerConfig) exchangeSelectors() (mc.TagSelector, mc.TagSelector, error) {
	if c.Tag1 == nil || c.Tag2 == nil {
		return nil, nil, fmt.Errorf("%w: %s sampler needs tag1 and tag2 selectors", mc.ErrInvalidParameter, c.Type)
	}
	return c.Tag1.build(), c.Tag2.build(), nil
}

func (c SamplerConfig) buildAdditive(cell atoms.Cell) (*atoms.Atoms, error) {
	if len(c.Additive) == 0 {
		return nil, fmt.Errorf("%w: %s sampler needs an additive fragment", mc.ErrInvalidParameter, c.Type)
	}
	return buildSites(c.Additive, cell)
}

func (c SamplerConfig) build(cell atoms.Cell) (mc.Sampler, error) {
	switch c.Type {
	case "translate":
		return mc.NewTranslateSampler(c.Tags.build(), c.XRange, c.YRange, c.ZRange)
	case "euler-rotate":
		return mc.NewEulerRotateSampler(c.Tags.build(), c.PhiRange, c.ThetaRange, c.PsiRange, c.center())
	case "axis-rotate":
		return mc.NewAxisRotateSampler(c.Tags.build(), c.XRange, c.YRange, c.ZRange, c.center())
	case "add":
		additive, err := c.buildAdditive(cell)
		if err != nil {
			return nil, err
		}
		selector := mc.TagSelector(mc.NewNotExistTagSelector(c.Tags.IgnoreTags))
		if !c.Tags.NotExist && c.Tags.TargetTags != nil {
			selector = c.Tags.build()
		}
		return mc.NewAddSampler(selector, additive)
	case "remove":
		additive, err := c.buildAdditive(cell)
		if err != nil {
			return nil, err
		}
		return mc.NewRemoveSampler(c.Tags.build(), additive)
	case "site-exchange":
		t1, t2, err := c.exchangeSelectors()
		if err != nil {
			return nil, err
		}
		return mc.NewSiteExchangeSampler(t1, t2), nil
	case "symbol-exchange":
		t1, t2, err := c.exchangeSelectors()
		if err != nil {
			return nil, err
		}
		return mc.NewSymbolExchangeSampler(t1, t2), nil
	case "cluster-generation":
		t1, t2, err := c.exchangeSelectors()
		if err != nil {
			return nil, err
		}
		return mc.NewSiteExchangeClusterGenerationSampler(t1, t2), nil
	default:
		return nil, fmt.Errorf("%w: unknown sampler type %q", mc.ErrInvalidParameter, c.Type)
	}
}

func (c ObserverConfig) build() (mc.Observer, error) {
	interval := c.Interval
	if interval == 0 {
		interval = 1
	}
	switch c.Type {
	case "console":
		return mc.NewConsoleObserver(nil, interval)
	case "file":
		return mc.NewFileObserver(c.Path, interval, c.Force)
	case "memory":
		return mc.NewMemoryObserver(interval)
	case "trajectory":
		return mc.NewTrajectoryObserver(c.Path, interval, c.Force)
	default:
		return nil, fmt.Errorf("%w: unknown observer type %q", mc.ErrInvalidParameter, c.Type)
	}
}

// BuildEngine assembles the full engine from the config: samplers with their
// weights, observers, and the seeded RNG.
func (c *SimConfig) BuildEngine() (*mc.MonteCarlo, error) {
	if len(c.Samplers) == 0 {
		return nil, fmt.Errorf("%w: at least one sampler is required", mc.ErrInvalidParameter)
	}
	cell := cellOf(c.System.Cell)

	samplers := make([]mc.Sampler, 0, len(c.Samplers))
	weights := make([]float64, 0, len(c.Samplers))
	for _, sc := range c.Samplers {
		s, err := sc.build(cell)
		if err != nil {
			return nil, err
		}
		samplers = append(samplers, s)
		weights = append(weights, sc.Weight)
	}
	selector, err := mc.NewRandomSamplerSelector(samplers, weights)
	if err != nil {
		return nil, err
	}

	observers := make([]mc.Observer, 0, len(c.Observers))
	for _, oc := range c.Observers {
		o, err := oc.build()
		if err != nil {
			return nil, err
		}
		observers = append(observers, o)
	}

	return mc.NewMonteCarlo(c.MaxIterations, c.Temperature,
		selector, mc.NewPartitionedRNG(c.Seed), observers...)
}
