package generator

import (
	"context"
	"strings"

	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/queue"
)

// State is a step of the discoverer state machine.
type State int

const (
	StateStart State = iota
	StateEnumerating
	StateEmitting
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateEnumerating:
		return "enumerating"
	case StateEmitting:
		return "emitting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// TableLister enumerates the tables of a database.
type TableLister interface {
	ListTables(ctx context.Context) ([]string, error)
}

// Discoverer pushes the tables of a run onto the queue, then one sentinel
// per worker.
type Discoverer struct {
	cfg   *Config
	db    TableLister
	queue *queue.Queue
	log   *logger.Logger
	state State
}

// NewDiscoverer returns a discoverer in StateStart.
func NewDiscoverer(cfg *Config, db TableLister, q *queue.Queue, log *logger.Logger) *Discoverer {
	return &Discoverer{cfg: cfg, db: db, queue: q, log: log}
}

// State returns the current state. It is not synchronised; read it after
// Run returns.
func (d *Discoverer) State() State {
	return d.state
}

// Run enqueues the tables and returns how many it enqueued.
//
// The sentinels are pushed on every path out of Run, including a failed
// enumeration and a panic, so workers always terminate. An enumeration
// failure is logged and leaves the run with zero tables.
func (d *Discoverer) Run(ctx context.Context) (n int) {
	d.transition(StateEnumerating)
	defer func() {
		d.transition(StateEmitting)
		for i := 0; i < d.cfg.Workers; i++ {
			d.queue.Push(queue.Sentinel())
		}
		d.transition(StateDone)
		d.log.Info("DONE")
	}()

	names, err := d.enumerate(ctx)
	if err != nil {
		d.log.Errorf("failed to enumerate tables: %s", err)
		return 0
	}

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			d.log.Warn("skipping blank table name")
			continue
		}
		d.queue.Push(queue.Table(name))
		n++
	}
	d.log.Debugf("enqueued %d tables", n)
	return n
}

func (d *Discoverer) enumerate(ctx context.Context) ([]string, error) {
	if d.cfg.Explicit() {
		d.log.Info("reading tables list from configuration...")
		return d.cfg.Tables, nil
	}
	d.log.Info("reading all tables from database...")
	return d.db.ListTables(ctx)
}

func (d *Discoverer) transition(to State) {
	d.log.Debugf("discovery %s -> %s", d.state, to)
	d.state = to
}
