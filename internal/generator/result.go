package generator

import (
	"sort"
	"time"
)

// Status is the outcome of processing one table.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "skipped"
}

// Result is the outcome for one table. Err is set when Status is
// StatusSkipped.
type Result struct {
	Table  string
	Worker string
	Status Status
	Paths  []string
	Err    error
}

// Summary aggregates the results of one run.
type Summary struct {
	RunID   string
	Tables  int // tables handed to the workers
	Results []Result
	Elapsed time.Duration
}

// Processed returns how many tables produced their artifacts.
func (s *Summary) Processed() int {
	n := 0
	for _, r := range s.Results {
		if r.Status == StatusOK {
			n++
		}
	}
	return n
}

// Skipped returns how many tables failed.
func (s *Summary) Skipped() int {
	return len(s.Results) - s.Processed()
}

// Result returns the first result for table.
func (s *Summary) Result(table string) (Result, bool) {
	for _, r := range s.Results {
		if r.Table == table {
			return r, true
		}
	}
	return Result{}, false
}

func (s *Summary) sort() {
	sort.SliceStable(s.Results, func(i, j int) bool {
		return s.Results[i].Table < s.Results[j].Table
	})
}
