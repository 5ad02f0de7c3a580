package store

import (
	"path/filepath"
	"testing"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"

	"bitbucket.org/mrrlab/qevo/esolve"
)

func init() {
	// disable logging for tests
	logging.SetLevel(logging.CRITICAL, "store")
}

func openTestDB(tst *testing.T) *bolt.DB {
	fn := filepath.Join(tst.TempDir(), "results.db")
	db, err := bolt.Open(fn, 0644, nil)
	if err != nil {
		tst.Fatal("Error opening database:", err)
	}
	tst.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoad(tst *testing.T) {
	db := openTestDB(tst)
	rio := NewResultIO(db)

	res := &esolve.Result{
		Solver: "essolve",
		Times:  []float64{0, 1, 2},
		Expect: []esolve.Expectation{
			{Name: "sz", Herm: true, Re: []float64{1, 0.5, 0.25}},
		},
	}
	if err := rio.Save("decay", res); err != nil {
		tst.Fatal("Error saving result:", err)
	}

	got, err := rio.Load("decay")
	if err != nil {
		tst.Fatal("Error loading result:", err)
	}
	if got == nil {
		tst.Fatal("Result not found after save")
	}
	if got.Solver != "essolve" || len(got.Times) != 3 ||
		len(got.Expect) != 1 || got.Expect[0].Re[2] != 0.25 {
		tst.Error("Round trip changed the result:", got)
	}

	keys, err := rio.Keys()
	if err != nil {
		tst.Fatal("Error listing keys:", err)
	}
	if len(keys) != 1 || keys[0] != "decay" {
		tst.Error("Wrong key list:", keys)
	}
}

func TestMissingKey(tst *testing.T) {
	rio := NewResultIO(openTestDB(tst))
	res, err := rio.Load("nothing")
	if err != nil {
		tst.Error("Error loading missing key:", err)
	}
	if res != nil {
		tst.Error("Expected nil result for a missing key")
	}
}

func TestNilDB(tst *testing.T) {
	rio := NewResultIO(nil)
	if err := rio.Save("x", &esolve.Result{Solver: "essolve"}); err != nil {
		tst.Error("Nil database save must be a no-op:", err)
	}
	res, err := rio.Load("x")
	if err != nil || res != nil {
		tst.Error("Nil database load must return nothing")
	}
}
