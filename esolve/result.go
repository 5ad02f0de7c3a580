package esolve

import (
	"fmt"
	"runtime"

	"bitbucket.org/mrrlab/qevo/eseries"
	"bitbucket.org/mrrlab/qevo/qobj"
)

// Expectation is the expectation-value trajectory of one observable.
// For a Hermitian observable only the real part is stored; residual
// imaginary noise is discarded.
type Expectation struct {
	// Name is an optional observable label, filled by callers.
	Name string `json:"name,omitempty"`
	// Herm is the observable Hermiticity flag.
	Herm bool `json:"hermitian"`
	// Re holds the real parts of the expectation values.
	Re []float64 `json:"re"`
	// Im holds the imaginary parts for non-Hermitian observables.
	Im []float64 `json:"im,omitempty"`
}

// Result stores the output of one Solve call.
type Result struct {
	// Solver is the solver identifier.
	Solver string `json:"solver"`
	// Times is the input time grid.
	Times []float64 `json:"times"`
	// Expect holds one trajectory per observable.
	Expect []Expectation `json:"expect,omitempty"`
	// States holds the evaluated states when no observables were
	// requested.
	States []*qobj.Qobj `json:"-"`
}

// Solve evolves the initial state under the Hamiltonian h and
// collapse operators cops using the exponential-series method, and
// returns expectation values of the observables eops over the time
// grid tlist. With no collapse operators and a ket state the
// Hamiltonian is used directly; otherwise the Liouvillian is built
// first. A prebuilt Liouvillian may be passed as h with empty cops.
func Solve(h, rho0 *qobj.Qobj, tlist []float64, cops, eops []*qobj.Qobj) (*Result, error) {
	l := h
	switch {
	case h.IsSuper():
		if len(cops) > 0 {
			return nil, fmt.Errorf("esolve: collapse operators cannot be combined with a prebuilt Liouvillian")
		}
	case len(cops) > 0 || !rho0.IsKet():
		if !h.IsOper() {
			return nil, ErrGenerator
		}
		for _, c := range cops {
			if !c.IsOper() || c.Dim() != h.Dim() {
				return nil, fmt.Errorf("esolve: collapse operator dimension doesn't match the Hamiltonian")
			}
		}
		l = qobj.Liouvillian(h, cops)
	}
	for _, op := range eops {
		if !op.IsOper() || op.Dim() != rho0.Dim() {
			return nil, fmt.Errorf("esolve: observable dimension doesn't match the state")
		}
	}

	es, err := Ode2ES(l, rho0)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Solver: "essolve",
		Times:  append([]float64(nil), tlist...),
	}
	states := evalStates(es, tlist)

	if len(eops) == 0 {
		// A state-only result is still a valid output.
		res.States = states
		return res, nil
	}

	res.Expect = make([]Expectation, len(eops))
	for k, op := range eops {
		herm := op.IsHerm(hermTol)
		e := Expectation{Herm: herm, Re: make([]float64, len(tlist))}
		if !herm {
			e.Im = make([]float64, len(tlist))
		}
		for i, st := range states {
			ev := qobj.Expect(op, st)
			e.Re[i] = real(ev)
			if !herm {
				e.Im[i] = imag(ev)
			}
		}
		res.Expect[k] = e
	}
	return res, nil
}

// evalStates evaluates the series at every time point. Time points
// are independent, so they are assigned to workers; the series is
// immutable and safe to read concurrently.
func evalStates(es *eseries.ESeries, tlist []float64) []*qobj.Qobj {
	states := make([]*qobj.Qobj, len(tlist))
	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > len(tlist) {
		nWorkers = len(tlist)
	}
	if nWorkers <= 1 {
		for i, t := range tlist {
			states[i] = es.Value(t)
		}
		return states
	}

	done := make(chan struct{}, nWorkers)
	tasks := make(chan int, len(tlist))
	for i := 0; i < nWorkers; i++ {
		go func() {
			for i := range tasks {
				states[i] = es.Value(tlist[i])
			}
			done <- struct{}{}
		}()
	}
	for i := range tlist {
		tasks <- i
	}
	close(tasks)

	// wait for all assignments to finish
	for i := 0; i < nWorkers; i++ {
		<-done
	}
	return states
}
