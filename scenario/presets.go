package scenario

// Presets are ready-made two-level scenarios. Basis convention:
// index 0 is the excited state, index 1 the ground state.
var Presets = map[string]*Scenario{
	// Rabi oscillation: H = sigma_x drives |e> <-> |g>;
	// <sigma_z>(t) = cos(2t).
	"rabi": {
		Name: "rabi",
		Hamiltonian: Matrix{
			{0, 1},
			{1, 0},
		},
		Ket: []Complex{1, 0},
		Observables: []Observable{
			{Name: "sz", Matrix: Matrix{{1, 0}, {0, -1}}},
			{Name: "sx", Matrix: Matrix{{0, 1}, {1, 0}}},
		},
		Times: TimeGrid{Start: 0, Stop: 6.2831853, Steps: 101},
	},
	// Amplitude damping: excited population decays as e^{-gamma t}
	// with gamma = 0.2.
	"decay": {
		Name: "decay",
		Hamiltonian: Matrix{
			{0.5, 0},
			{0, -0.5},
		},
		Ket: []Complex{1, 0},
		Collapse: []Matrix{
			{{0, 0}, {0.4472135954999579, 0}}, // sqrt(0.2) sigma_minus
		},
		Observables: []Observable{
			{Name: "pe", Matrix: Matrix{{1, 0}, {0, 0}}},
		},
		Times: TimeGrid{Start: 0, Stop: 25, Steps: 201},
	},
	// Pure dephasing of a superposition: coherence decays while
	// populations stay fixed.
	"dephasing": {
		Name: "dephasing",
		Hamiltonian: Matrix{
			{0.5, 0},
			{0, -0.5},
		},
		Ket: []Complex{0.7071067811865476, 0.7071067811865476},
		Collapse: []Matrix{
			{{0.31622776601683794, 0}, {0, -0.31622776601683794}}, // sqrt(0.1) sigma_z
		},
		Observables: []Observable{
			{Name: "sx", Matrix: Matrix{{0, 1}, {1, 0}}},
			{Name: "sz", Matrix: Matrix{{1, 0}, {0, -1}}},
		},
		Times: TimeGrid{Start: 0, Stop: 30, Steps: 201},
	},
}
