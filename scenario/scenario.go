// Package scenario implements declarative YAML descriptions of
// evolution problems: a Hamiltonian, an initial state, collapse
// operators, observables and a time grid.
package scenario

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"bitbucket.org/mrrlab/qevo/qobj"
)

// Complex is a YAML-friendly complex number. It accepts a plain
// scalar ("0.5", "1+2i") or a two-element [re, im] sequence.
type Complex complex128

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Complex) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		v, err := strconv.ParseComplex(strings.ReplaceAll(value.Value, " ", ""), 128)
		if err != nil {
			return fmt.Errorf("scenario: cannot parse complex number %q", value.Value)
		}
		*c = Complex(v)
		return nil
	case yaml.SequenceNode:
		var parts []float64
		if err := value.Decode(&parts); err != nil || len(parts) != 2 {
			return fmt.Errorf("scenario: complex number sequence must be [re, im]")
		}
		*c = Complex(complex(parts[0], parts[1]))
		return nil
	}
	return fmt.Errorf("scenario: cannot parse complex number")
}

// MarshalYAML implements yaml.Marshaler.
func (c Complex) MarshalYAML() (interface{}, error) {
	if imag(complex128(c)) == 0 {
		return real(complex128(c)), nil
	}
	return strconv.FormatComplex(complex128(c), 'g', -1, 128), nil
}

// Matrix is a row-major complex matrix in YAML form.
type Matrix [][]Complex

// ToQobj converts a square matrix to an operator.
func (m Matrix) ToQobj() (*qobj.Qobj, error) {
	d := len(m)
	if d == 0 {
		return nil, fmt.Errorf("scenario: empty matrix")
	}
	data := make([]complex128, 0, d*d)
	for _, row := range m {
		if len(row) != d {
			return nil, fmt.Errorf("scenario: matrix is not square (%d rows, row of length %d)", d, len(row))
		}
		for _, v := range row {
			data = append(data, complex128(v))
		}
	}
	return qobj.NewOper(d, data), nil
}

// Observable is a named operator whose expectation values are
// requested.
type Observable struct {
	Name   string `yaml:"name"`
	Matrix Matrix `yaml:"matrix"`
}

// TimeGrid describes the requested time points: either an explicit
// list or an evenly spaced range.
type TimeGrid struct {
	Start float64   `yaml:"start"`
	Stop  float64   `yaml:"stop"`
	Steps int       `yaml:"steps,omitempty"`
	List  []float64 `yaml:"list,omitempty"`
}

// Grid returns the time points.
func (g TimeGrid) Grid() []float64 {
	if len(g.List) > 0 {
		return append([]float64(nil), g.List...)
	}
	n := g.Steps
	if n < 1 {
		n = 1
	}
	ts := make([]float64, n)
	if n == 1 {
		ts[0] = g.Start
		return ts
	}
	dt := (g.Stop - g.Start) / float64(n-1)
	for i := range ts {
		ts[i] = g.Start + float64(i)*dt
	}
	return ts
}

// Scenario is a complete evolution problem. Exactly one of Ket and
// Rho describes the initial state.
type Scenario struct {
	Name        string       `yaml:"name"`
	Hamiltonian Matrix       `yaml:"hamiltonian"`
	Ket         []Complex    `yaml:"ket,omitempty"`
	Rho         Matrix       `yaml:"rho,omitempty"`
	Collapse    []Matrix     `yaml:"collapse,omitempty"`
	Observables []Observable `yaml:"observables,omitempty"`
	Times       TimeGrid     `yaml:"times"`
}

// Compiled holds a scenario converted to solver inputs.
type Compiled struct {
	H           *qobj.Qobj
	State       *qobj.Qobj
	Times       []float64
	Collapse    []*qobj.Qobj
	Observables []*qobj.Qobj
	Names       []string
}

// Compile validates the scenario and converts it to solver inputs.
func (s *Scenario) Compile() (*Compiled, error) {
	h, err := s.Hamiltonian.ToQobj()
	if err != nil {
		return nil, fmt.Errorf("scenario %q: hamiltonian: %v", s.Name, err)
	}

	var state *qobj.Qobj
	switch {
	case len(s.Ket) > 0 && len(s.Rho) > 0:
		return nil, fmt.Errorf("scenario %q: both ket and rho given", s.Name)
	case len(s.Ket) > 0:
		amps := make([]complex128, len(s.Ket))
		for i, v := range s.Ket {
			amps[i] = complex128(v)
		}
		state = qobj.NewKet(amps)
	case len(s.Rho) > 0:
		state, err = s.Rho.ToQobj()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: rho: %v", s.Name, err)
		}
	default:
		return nil, fmt.Errorf("scenario %q: no initial state", s.Name)
	}
	if state.Dim() != h.Dim() {
		return nil, fmt.Errorf("scenario %q: state dimension %d doesn't match hamiltonian dimension %d",
			s.Name, state.Dim(), h.Dim())
	}

	c := &Compiled{H: h, State: state, Times: s.Times.Grid()}
	for i, m := range s.Collapse {
		op, err := m.ToQobj()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: collapse %d: %v", s.Name, i, err)
		}
		c.Collapse = append(c.Collapse, op)
	}
	for _, o := range s.Observables {
		op, err := o.Matrix.ToQobj()
		if err != nil {
			return nil, fmt.Errorf("scenario %q: observable %q: %v", s.Name, o.Name, err)
		}
		c.Observables = append(c.Observables, op)
		c.Names = append(c.Names, o.Name)
	}
	return c, nil
}

// Default returns the default scenario (two-level Rabi oscillation).
func Default() *Scenario {
	return Presets["rabi"]
}

// Load reads a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes a scenario to a YAML file.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
