// Package generator runs the generation pipeline: one discoverer feeding
// table names through a queue to a fixed set of workers.
package generator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/output"
	"github.com/koustreak/tablegen/internal/queue"
	"github.com/koustreak/tablegen/internal/render"
)

// Coordinator wires the discoverer and the workers of a run.
type Coordinator struct {
	cfg      Config
	db       database.DB
	renderer *render.Renderer
	writer   output.Writer
	log      *logger.Logger
}

// New validates cfg and returns a Coordinator. A nil log means the logger
// carried by the context passed to Run.
func New(cfg Config, db database.DB, r *render.Renderer, w output.Writer, log *logger.Logger) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if db == nil || r == nil || w == nil {
		return nil, errs.New(errs.ErrKindInvalidInput, "database, renderer and writer are required")
	}
	return &Coordinator{cfg: cfg, db: db, renderer: r, writer: w, log: log}, nil
}

// Run starts the discoverer and the workers and waits for all of them.
//
// The summary is always returned and the elapsed time is always logged. The
// error is non-nil only when ctx was cancelled before every worker received
// its sentinel.
func (c *Coordinator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	summary := &Summary{RunID: uuid.NewString()}
	base := c.log
	if base == nil {
		base = logger.FromContext(ctx)
	}
	log := base.With().Str(logger.RunField, summary.RunID).Logger()

	defer func() {
		summary.Elapsed = time.Since(start)
		log.Infof("processed=%d skipped=%d", summary.Processed(), summary.Skipped())
		log.Infof("ALL DONE! (elapsed: %dms)", summary.Elapsed.Milliseconds())
	}()

	q := queue.New()
	var (
		g  errgroup.Group
		mu sync.Mutex
	)

	discoverer := NewDiscoverer(&c.cfg, c.db, q, log.Task("reader-0"))
	g.Go(func() error {
		n := discoverer.Run(ctx)
		mu.Lock()
		summary.Tables = n
		mu.Unlock()
		return nil
	})

	for i := 0; i < c.cfg.Workers; i++ {
		w := NewWorker(i, c.db, q, c.renderer, c.writer, log)
		g.Go(func() error {
			results, err := w.Run(ctx)
			mu.Lock()
			summary.Results = append(summary.Results, results...)
			mu.Unlock()
			return err
		})
	}

	err := g.Wait()
	summary.sort()
	return summary, err
}
