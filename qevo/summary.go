package main

import "bitbucket.org/mrrlab/qevo/esolve"

// CallSummary stores the qevo invocation summary.
type CallSummary struct {
	// Version stores qevo version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// NThreads is the number of threads used.
	NThreads int `json:"nThreads"`
	// TotalTime is the computations time in seconds.
	TotalTime float64 `json:"time"`
	// Run is the solver run summary.
	Run *RunSummary `json:"run"`
}

// RunSummary stores the summary of one solver run.
type RunSummary struct {
	// Scenario is the scenario name.
	Scenario string `json:"scenario"`
	// Mode is the evolution mode (unitary or dissipative).
	Mode string `json:"mode"`
	// Time is the computations time in seconds.
	Time float64 `json:"runTime"`
	// Result is the solver result with the trajectories.
	Result *esolve.Result `json:"result"`
}
