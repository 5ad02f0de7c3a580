/*

Qevo computes the time evolution of a small quantum system with a
time-independent Hamiltonian and optional collapse operators by
diagonalizing the generator once and representing the solution as an
exponential series.

The basic usage of qevo looks like this:

	qevo scenario.yml

, this will solve the scenario and print a JSON summary with the
expectation-value trajectories.

Built-in scenarios are available through -preset:

	qevo -preset decay -graph

The above will solve an amplitude-damped two-level system and draw the
trajectories in the terminal.

To see all the options run:

	qevo -h

*/
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/mrrlab/qevo/esolve"
	"bitbucket.org/mrrlab/qevo/scenario"
	"bitbucket.org/mrrlab/qevo/store"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("qevo")
var formatter = logging.MustStringFormatter(`%{message}`)

// command-line options
var (
	// application
	app = kingpin.New("qevo", "closed-form quantum evolution by exponential series").Version(version)

	// scenario
	scenarioFileName = app.Arg("scenario", "scenario file (YAML)").ExistingFile()
	preset           = app.Flag("preset", "use a built-in scenario (rabi, decay or dephasing)").String()

	// output
	graphOut      = app.Flag("graph", "draw trajectories as terminal graphs").Bool()
	plotF         = app.Flag("plot", "write a trajectory plot to an image file").String()
	dbFileName    = app.Flag("db", "save the result to a bolt database").String()
	jsonF         = app.Flag("json", "write json output to a file").String()
	saveScenarioF = app.Flag("outscenario", "write the effective scenario to a YAML file").String()

	// technical
	nThreads = app.Flag("nt", "number of threads to use").Int()
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
)

// run solves a single scenario and returns its summary.
func run(s *scenario.Scenario) (summary *RunSummary) {
	startTime := time.Now()
	summary = &RunSummary{Scenario: s.Name}

	c, err := s.Compile()
	if err != nil {
		log.Fatal(err)
	}

	if len(c.Collapse) > 0 || !c.State.IsKet() {
		summary.Mode = esolve.Dissipative.String()
	} else {
		summary.Mode = esolve.Unitary.String()
	}
	log.Infof("Scenario %q: dimension %d, %d collapse operator(s), %d observable(s), %d time point(s)",
		s.Name, c.H.Dim(), len(c.Collapse), len(c.Observables), len(c.Times))
	log.Infof("Evolution mode: %s", summary.Mode)

	res, err := esolve.Solve(c.H, c.State, c.Times, c.Collapse, c.Observables)
	if err != nil {
		log.Fatal(err)
	}
	for i, name := range c.Names {
		res.Expect[i].Name = name
	}
	summary.Result = res

	deltaT := time.Since(startTime)
	log.Noticef("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()

	return
}

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	logging.SetLevel(level, "qevo")
	logging.SetLevel(level, "esolve")
	logging.SetLevel(level, "store")

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	if *nThreads > 0 {
		runtime.GOMAXPROCS(*nThreads)
	}
	effectiveNThreads := runtime.GOMAXPROCS(0)
	log.Infof("Using threads: %d.", effectiveNThreads)

	var s *scenario.Scenario
	switch {
	case *preset != "" && *scenarioFileName != "":
		log.Fatal("Both a scenario file and a preset were given")
	case *preset != "":
		var ok bool
		s, ok = scenario.Presets[*preset]
		if !ok {
			log.Fatalf("Unknown preset: %s", *preset)
		}
	case *scenarioFileName != "":
		s, err = scenario.Load(*scenarioFileName)
		if err != nil {
			log.Fatal("Error reading scenario:", err)
		}
	default:
		log.Notice("No scenario given, using the default one")
		s = scenario.Default()
	}

	if *saveScenarioF != "" {
		if err := scenario.Save(*saveScenarioF, s); err != nil {
			log.Error("Error writing scenario:", err)
		}
	}

	runSummary := run(s)

	summary := &CallSummary{
		Version:     version,
		CommandLine: os.Args,
		NThreads:    effectiveNThreads,
		Run:         runSummary,
	}
	summary.TotalTime = runSummary.Time

	if *graphOut {
		printGraphs(runSummary.Result)
	}

	if *plotF != "" {
		if err := savePlot(runSummary.Result, *plotF); err != nil {
			log.Error("Error writing plot:", err)
		}
	}

	if *dbFileName != "" {
		db, err := bolt.Open(*dbFileName, 0644, nil)
		if err != nil {
			log.Error("Error opening database:", err)
		} else {
			rio := store.NewResultIO(db)
			if err := rio.Save(s.Name, runSummary.Result); err != nil {
				log.Error("Error saving result:", err)
			}
			db.Close()
		}
	}

	// output summary in json format
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
	} else if *jsonF != "" {
		f, err := os.Create(*jsonF)
		if err != nil {
			log.Error("Error creating json output file:", err)
		} else {
			f.Write(j)
			f.Close()
		}
	} else {
		fmt.Println(string(j))
	}
}
