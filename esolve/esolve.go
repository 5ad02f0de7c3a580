// Package esolve computes time-independent quantum evolution in
// closed form. The generator (a Hamiltonian or a Liouvillian) is
// diagonalized once and the solution expressed as an exponential
// series sum_i ampl_i * exp(w_i * t), which can then be evaluated at
// arbitrary times and contracted against observables.
//
// Time-dependent generators are not supported, and the method assumes
// the generator is diagonalizable.
package esolve

import (
	"errors"
	"fmt"

	"github.com/op/go-logging"

	"bitbucket.org/mrrlab/qevo/eseries"
	"bitbucket.org/mrrlab/qevo/linalg"
	"bitbucket.org/mrrlab/qevo/qobj"
)

// log is the global logging variable.
var log = logging.MustGetLogger("esolve")

const (
	// RateTol is the tolerance for merging series terms whose rates
	// coincide.
	RateTol = 1e-10
	// hermTol is the tolerance for the observable Hermiticity check.
	hermTol = 1e-10
)

// ErrGenerator is returned when the generator is neither a
// Hamiltonian nor a Liouvillian.
var ErrGenerator = errors.New("esolve: first argument must be a Hamiltonian or Liouvillian")

// ErrStateType is returned when a Hamiltonian generator is paired
// with a non-ket state.
var ErrStateType = errors.New("esolve: second argument must be a ket when the first argument is a Hamiltonian")

// Form tags the two evolution modes of a classified generator.
type Form int

const (
	// Unitary evolution of a ket under a Hamiltonian.
	Unitary Form = iota
	// Dissipative evolution of a vectorized density matrix under a
	// Liouvillian.
	Dissipative
)

func (f Form) String() string {
	if f == Unitary {
		return "unitary"
	}
	return "dissipative"
}

// Generator is a classified evolution generator: the form, the
// generator matrix and the initial state (promoted to a density
// matrix in the dissipative case). It is built once by
// ClassifyGenerator; nothing downstream re-inspects matrix shapes.
type Generator struct {
	Form  Form
	M     *qobj.Qobj
	State *qobj.Qobj
}

// ClassifyGenerator decides the evolution mode from the declared
// categories of the generator and the state.
func ClassifyGenerator(l, rho0 *qobj.Qobj) (*Generator, error) {
	switch {
	case l.IsSuper():
		state := rho0
		if rho0.IsKet() {
			state = rho0.Outer()
		}
		if !state.IsOper() {
			return nil, fmt.Errorf("esolve: initial state is a %v, want ket or density matrix", rho0.Kind())
		}
		if state.Dim() != l.Dim() {
			return nil, fmt.Errorf("esolve: Liouvillian dimension %d doesn't match state dimension %d",
				l.Dim(), state.Dim())
		}
		return &Generator{Form: Dissipative, M: l, State: state}, nil
	case l.IsOper():
		if !rho0.IsKet() {
			return nil, ErrStateType
		}
		if rho0.Dim() != l.Dim() {
			return nil, fmt.Errorf("esolve: Hamiltonian dimension %d doesn't match state dimension %d",
				l.Dim(), rho0.Dim())
		}
		return &Generator{Form: Unitary, M: l, State: rho0}, nil
	}
	return nil, ErrGenerator
}

// Ode2ES builds the exponential series describing the evolution of
// the initial state rho0 (a ket or a density matrix) under the
// generator l (a Hamiltonian or a Liouvillian).
func Ode2ES(l, rho0 *qobj.Qobj) (*eseries.ESeries, error) {
	gen, err := ClassifyGenerator(l, rho0)
	if err != nil {
		return nil, err
	}
	return gen.Series()
}

// Series diagonalizes the generator, projects the initial state onto
// the eigenbasis and assembles the exponential series. Unitary rates
// are -i*w (Schrödinger convention, hbar = 1); Liouvillian
// eigenvalues already carry their signs and are used directly.
func (g *Generator) Series() (*eseries.ESeries, error) {
	w, v, err := linalg.Eigen(g.M)
	if err != nil {
		return nil, err
	}

	var r0 []complex128
	if g.Form == Dissipative {
		r0 = g.State.Vec()
	} else {
		r0 = append([]complex128(nil), g.State.Data()...)
	}
	rlen := len(r0)

	// Express the initial condition as a combination of eigenvectors.
	// A (near-)singular eigenvector matrix means the generator is not
	// diagonalizable and surfaces here.
	v0, err := linalg.Solve(v, r0)
	if err != nil {
		return nil, err
	}

	terms := make([]eseries.Term, rlen)
	col := make([]complex128, rlen)
	for i := 0; i < rlen; i++ {
		for r := 0; r < rlen; r++ {
			col[r] = v.At(r, i) * v0[i]
		}
		if g.Form == Dissipative {
			terms[i] = eseries.Term{Ampl: qobj.UnVec(col, g.State.Dim()), Rate: w[i]}
		} else {
			terms[i] = eseries.Term{Ampl: qobj.NewKet(col), Rate: complex(0, -1) * w[i]}
		}
	}

	es := eseries.New(terms...).Tidy(RateTol)
	log.Debugf("%v evolution, dimension %d, %d series terms after tidy",
		g.Form, rlen, es.Len())
	return es, nil
}
