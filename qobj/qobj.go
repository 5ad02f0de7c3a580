// Package qobj implements complex dense operators and states for
// quantum dynamics: kets, density matrices and superoperators,
// together with the small amount of algebra the solvers need.
package qobj

import (
	"bytes"
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
)

// Kind is the algebraic category of a Qobj. It is declared once at
// construction; no code inspects shapes to guess the category later.
type Kind int

const (
	// Ket is a column state vector.
	Ket Kind = iota
	// Bra is a row state vector.
	Bra
	// Oper is a square operator acting on kets (Hamiltonians,
	// observables, density matrices).
	Oper
	// Super is a superoperator acting on vectorized density matrices.
	Super
)

func (k Kind) String() string {
	switch k {
	case Ket:
		return "ket"
	case Bra:
		return "bra"
	case Oper:
		return "oper"
	case Super:
		return "super"
	}
	return "unknown"
}

// Qobj is a complex dense matrix with a declared algebraic category.
// Data is stored row-major. The dim field is the dimension of the
// underlying Hilbert space (rows for kets and operators, sqrt(rows)
// for superoperators).
type Qobj struct {
	rows, cols int
	dim        int
	kind       Kind
	data       []complex128
}

// NewKet creates a ket from a slice of amplitudes.
func NewKet(data []complex128) *Qobj {
	d := len(data)
	if d < 1 {
		panic("qobj: empty ket")
	}
	q := &Qobj{rows: d, cols: 1, dim: d, kind: Ket, data: make([]complex128, d)}
	copy(q.data, data)
	return q
}

// NewOper creates a d x d operator from row-major data.
func NewOper(d int, data []complex128) *Qobj {
	if len(data) != d*d {
		panic("qobj: operator dimensions don't match slice size")
	}
	q := &Qobj{rows: d, cols: d, dim: d, kind: Oper, data: make([]complex128, d*d)}
	copy(q.data, data)
	return q
}

// NewSuper creates a d^2 x d^2 superoperator acting on vectorized
// d x d density matrices.
func NewSuper(d int, data []complex128) *Qobj {
	dd := d * d
	if len(data) != dd*dd {
		panic("qobj: superoperator dimensions don't match slice size")
	}
	q := &Qobj{rows: dd, cols: dd, dim: d, kind: Super, data: make([]complex128, dd*dd)}
	copy(q.data, data)
	return q
}

// Zeros creates a zero-filled Qobj of the given kind and Hilbert
// dimension.
func Zeros(kind Kind, d int) *Qobj {
	switch kind {
	case Ket:
		return &Qobj{rows: d, cols: 1, dim: d, kind: Ket, data: make([]complex128, d)}
	case Bra:
		return &Qobj{rows: 1, cols: d, dim: d, kind: Bra, data: make([]complex128, d)}
	case Oper:
		return &Qobj{rows: d, cols: d, dim: d, kind: Oper, data: make([]complex128, d*d)}
	case Super:
		dd := d * d
		return &Qobj{rows: dd, cols: dd, dim: d, kind: Super, data: make([]complex128, dd*dd)}
	}
	panic("qobj: unknown kind")
}

// Identity creates the identity operator on a d-dimensional space.
func Identity(d int) *Qobj {
	q := Zeros(Oper, d)
	for i := 0; i < d; i++ {
		q.data[i*d+i] = 1
	}
	return q
}

// Rows returns the number of matrix rows.
func (q *Qobj) Rows() int { return q.rows }

// Cols returns the number of matrix columns.
func (q *Qobj) Cols() int { return q.cols }

// Dim returns the underlying Hilbert-space dimension.
func (q *Qobj) Dim() int { return q.dim }

// Kind returns the declared algebraic category.
func (q *Qobj) Kind() Kind { return q.kind }

// IsKet returns true for kets.
func (q *Qobj) IsKet() bool { return q.kind == Ket }

// IsOper returns true for operators.
func (q *Qobj) IsOper() bool { return q.kind == Oper }

// IsSuper returns true for superoperators.
func (q *Qobj) IsSuper() bool { return q.kind == Super }

// At returns the element at row i, column j.
func (q *Qobj) At(i, j int) complex128 {
	return q.data[i*q.cols+j]
}

// Set sets the element at row i, column j.
func (q *Qobj) Set(i, j int, v complex128) {
	q.data[i*q.cols+j] = v
}

// Data returns the row-major backing slice. The slice is shared, not
// copied.
func (q *Qobj) Data() []complex128 { return q.data }

// Copy creates a deep copy.
func (q *Qobj) Copy() *Qobj {
	n := &Qobj{rows: q.rows, cols: q.cols, dim: q.dim, kind: q.kind,
		data: make([]complex128, len(q.data))}
	copy(n.data, q.data)
	return n
}

func (q *Qobj) sameShape(o *Qobj) {
	if q.rows != o.rows || q.cols != o.cols {
		panic(fmt.Sprintf("qobj: shape mismatch %dx%d vs %dx%d",
			q.rows, q.cols, o.rows, o.cols))
	}
}

// Add returns q + o. Shapes must match.
func (q *Qobj) Add(o *Qobj) *Qobj {
	q.sameShape(o)
	n := q.Copy()
	for i := range n.data {
		n.data[i] += o.data[i]
	}
	return n
}

// Sub returns q - o. Shapes must match.
func (q *Qobj) Sub(o *Qobj) *Qobj {
	q.sameShape(o)
	n := q.Copy()
	for i := range n.data {
		n.data[i] -= o.data[i]
	}
	return n
}

// Scale returns q multiplied by a complex scalar.
func (q *Qobj) Scale(x complex128) *Qobj {
	n := q.Copy()
	for i := range n.data {
		n.data[i] *= x
	}
	return n
}

// Mul returns the matrix product q * o.
func (q *Qobj) Mul(o *Qobj) *Qobj {
	if q.cols != o.rows {
		panic(fmt.Sprintf("qobj: product shape mismatch %dx%d * %dx%d",
			q.rows, q.cols, o.rows, o.cols))
	}
	kind := q.kind
	if o.cols == 1 {
		kind = Ket
	} else if q.rows == 1 {
		kind = Bra
	}
	n := &Qobj{rows: q.rows, cols: o.cols, dim: q.dim, kind: kind,
		data: make([]complex128, q.rows*o.cols)}
	for i := 0; i < q.rows; i++ {
		for k := 0; k < q.cols; k++ {
			a := q.data[i*q.cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < o.cols; j++ {
				n.data[i*o.cols+j] += a * o.data[k*o.cols+j]
			}
		}
	}
	return n
}

// Dag returns the conjugate transpose. Kets become bras and vice
// versa.
func (q *Qobj) Dag() *Qobj {
	kind := q.kind
	switch q.kind {
	case Ket:
		kind = Bra
	case Bra:
		kind = Ket
	}
	n := &Qobj{rows: q.cols, cols: q.rows, dim: q.dim, kind: kind,
		data: make([]complex128, len(q.data))}
	for i := 0; i < q.rows; i++ {
		for j := 0; j < q.cols; j++ {
			n.data[j*q.rows+i] = cmplx.Conj(q.data[i*q.cols+j])
		}
	}
	return n
}

// Outer promotes a ket to the density matrix |psi><psi|.
func (q *Qobj) Outer() *Qobj {
	if q.kind != Ket {
		panic("qobj: outer product requires a ket")
	}
	d := q.dim
	n := Zeros(Oper, d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			n.data[i*d+j] = q.data[i] * cmplx.Conj(q.data[j])
		}
	}
	return n
}

// Trace returns the matrix trace.
func (q *Qobj) Trace() complex128 {
	if q.rows != q.cols {
		panic("qobj: trace of a non-square matrix")
	}
	var s complex128
	for i := 0; i < q.rows; i++ {
		s += q.data[i*q.cols+i]
	}
	return s
}

// Norm returns the largest absolute value of any element.
func (q *Qobj) Norm() float64 {
	m := 0.0
	for _, v := range q.data {
		a := cmplx.Abs(v)
		if a > m {
			m = a
		}
	}
	return m
}

// Equal reports whether q and o have the same shape and elements
// within an absolute tolerance.
func (q *Qobj) Equal(o *Qobj, tol float64) bool {
	if q.rows != o.rows || q.cols != o.cols {
		return false
	}
	for i := range q.data {
		if cmplx.Abs(q.data[i]-o.data[i]) > tol {
			return false
		}
	}
	return true
}

// IsHerm reports whether the matrix equals its conjugate transpose
// within an absolute tolerance. Used as the observable Hermiticity
// flag.
func (q *Qobj) IsHerm(tol float64) bool {
	if q.rows != q.cols {
		return false
	}
	for i := 0; i < q.rows; i++ {
		if math.Abs(imag(q.data[i*q.cols+i])) > tol {
			return false
		}
		for j := i + 1; j < q.cols; j++ {
			if cmplx.Abs(q.data[i*q.cols+j]-cmplx.Conj(q.data[j*q.cols+i])) > tol {
				return false
			}
		}
	}
	return true
}

func (q *Qobj) String() string {
	var buffer bytes.Buffer
	buffer.WriteString("<Qobj " + q.kind.String() + " ")
	buffer.WriteString(strconv.Itoa(q.rows) + "x" + strconv.Itoa(q.cols) + "\n")
	for i := 0; i < q.rows; i++ {
		if i == 10 {
			buffer.WriteString("...\n")
			break
		}
		buffer.WriteString("  ")
		for j := 0; j < q.cols; j++ {
			if j == 10 {
				buffer.WriteString("...")
				break
			}
			v := q.data[i*q.cols+j]
			buffer.WriteString(fmt.Sprintf("%.4g%+.4gi", real(v), imag(v)))
			if j < q.cols-1 {
				buffer.WriteByte('\t')
			}
		}
		buffer.WriteByte('\n')
	}
	buffer.WriteByte('>')
	return buffer.String()
}
