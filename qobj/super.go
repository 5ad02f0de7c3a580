package qobj

import "math/cmplx"

// Trans returns the (non-conjugating) transpose.
func (q *Qobj) Trans() *Qobj {
	n := &Qobj{rows: q.cols, cols: q.rows, dim: q.dim, kind: q.kind,
		data: make([]complex128, len(q.data))}
	for i := 0; i < q.rows; i++ {
		for j := 0; j < q.cols; j++ {
			n.data[j*q.rows+i] = q.data[i*q.cols+j]
		}
	}
	return n
}

// Conj returns the element-wise complex conjugate.
func (q *Qobj) Conj() *Qobj {
	n := q.Copy()
	for i := range n.data {
		n.data[i] = cmplx.Conj(n.data[i])
	}
	return n
}

// Vec returns the column-stacked vectorization of a square matrix:
// vec[j*d+i] = m[i][j].
func (q *Qobj) Vec() []complex128 {
	if q.rows != q.cols {
		panic("qobj: vectorization of a non-square matrix")
	}
	d := q.rows
	v := make([]complex128, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			v[j*d+i] = q.data[i*d+j]
		}
	}
	return v
}

// UnVec reverses Vec, reshaping a length d^2 vector into a d x d
// operator.
func UnVec(v []complex128, d int) *Qobj {
	if len(v) != d*d {
		panic("qobj: vector length doesn't match dimension")
	}
	n := Zeros(Oper, d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			n.data[i*d+j] = v[j*d+i]
		}
	}
	return n
}

// Kron returns the Kronecker product q ⊗ o. The product of two
// operators on the same space is a superoperator on that space.
func (q *Qobj) Kron(o *Qobj) *Qobj {
	rows := q.rows * o.rows
	cols := q.cols * o.cols
	kind := Oper
	dim := rows
	if q.kind == Oper && o.kind == Oper && q.dim == o.dim {
		kind = Super
		dim = q.dim
	}
	n := &Qobj{rows: rows, cols: cols, dim: dim, kind: kind,
		data: make([]complex128, rows*cols)}
	for i := 0; i < q.rows; i++ {
		for j := 0; j < q.cols; j++ {
			a := q.data[i*q.cols+j]
			if a == 0 {
				continue
			}
			for k := 0; k < o.rows; k++ {
				for l := 0; l < o.cols; l++ {
					n.data[(i*o.rows+k)*cols+j*o.cols+l] = a * o.data[k*o.cols+l]
				}
			}
		}
	}
	return n
}

// SPre returns the superoperator of left multiplication:
// vec(A X) = SPre(A) vec(X).
func SPre(a *Qobj) *Qobj {
	return Identity(a.dim).Kron(a)
}

// SPost returns the superoperator of right multiplication:
// vec(X A) = SPost(A) vec(X).
func SPost(a *Qobj) *Qobj {
	return a.Trans().Kron(Identity(a.dim))
}

// Liouvillian builds the generator of the master equation
//
//	drho/dt = -i[H, rho] + sum_k C_k rho C_k† - (C_k†C_k rho + rho C_k†C_k)/2
//
// as a superoperator on column-stacked density matrices.
func Liouvillian(h *Qobj, cops []*Qobj) *Qobj {
	if h.kind != Oper {
		panic("qobj: Liouvillian requires an operator Hamiltonian")
	}
	l := SPre(h).Sub(SPost(h)).Scale(complex(0, -1))
	for _, c := range cops {
		if c.kind != Oper || c.dim != h.dim {
			panic("qobj: collapse operator dimension mismatch")
		}
		cdc := c.Dag().Mul(c)
		diss := c.Conj().Kron(c)
		diss = diss.Sub(SPre(cdc).Scale(0.5))
		diss = diss.Sub(SPost(cdc).Scale(0.5))
		l = l.Add(diss)
	}
	return l
}
