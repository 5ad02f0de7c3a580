package qobj

import "math/cmplx"

// Expect computes the expectation value of an operator on a state:
// <psi|op|psi> for kets, Tr(op rho) for density matrices.
func Expect(op, state *Qobj) complex128 {
	if op.kind != Oper {
		panic("qobj: expectation requires an operator observable")
	}
	switch state.kind {
	case Ket:
		if state.dim != op.dim {
			panic("qobj: observable and state dimension mismatch")
		}
		d := op.dim
		var s complex128
		for i := 0; i < d; i++ {
			var row complex128
			for j := 0; j < d; j++ {
				row += op.data[i*d+j] * state.data[j]
			}
			s += cmplx.Conj(state.data[i]) * row
		}
		return s
	case Oper:
		if state.dim != op.dim {
			panic("qobj: observable and state dimension mismatch")
		}
		d := op.dim
		var s complex128
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				s += op.data[i*d+j] * state.data[j*d+i]
			}
		}
		return s
	}
	panic("qobj: expectation requires a ket or density-matrix state")
}
