package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/output"
	"github.com/koustreak/tablegen/internal/queue"
	"github.com/koustreak/tablegen/internal/render"
	"github.com/koustreak/tablegen/internal/schema"
)

// Worker consumes table names from the queue until it receives a sentinel.
// Every table is introspected on a connection checked out for that table
// alone.
type Worker struct {
	name     string
	db       database.DB
	queue    *queue.Queue
	renderer *render.Renderer
	writer   output.Writer
	log      *logger.Logger
}

// NewWorker returns the worker called "writer-<id>".
func NewWorker(id int, db database.DB, q *queue.Queue, r *render.Renderer, w output.Writer, log *logger.Logger) *Worker {
	name := fmt.Sprintf("writer-%d", id)
	return &Worker{
		name:     name,
		db:       db,
		queue:    q,
		renderer: r,
		writer:   w,
		log:      log.Task(name),
	}
}

// Name returns the task label of w.
func (w *Worker) Name() string {
	return w.name
}

// Run processes tables until a sentinel or blank name is dequeued. Per-table
// failures are recorded in the results and never stop the loop. The error
// is non-nil only when the dequeue was interrupted.
func (w *Worker) Run(ctx context.Context) ([]Result, error) {
	var results []Result
	defer w.log.Info("DONE")

	for {
		task, err := w.queue.Pop(ctx)
		if err != nil {
			w.log.Errorf("stopped waiting for tables: %s", err)
			return results, err
		}
		if task.IsSentinel() {
			return results, nil
		}
		if strings.TrimSpace(task.Name()) == "" {
			w.log.Warn("received blank table name, stopping")
			return results, nil
		}

		results = append(results, w.process(ctx, task.Name()))
	}
}

func (w *Worker) process(ctx context.Context, table string) Result {
	log := w.log.Table(table)
	res := Result{Table: table, Worker: w.name}

	paths, err := w.generate(ctx, table, log)
	res.Paths = paths
	if err != nil {
		log.Errorf("[table=%s] %s", table, strings.TrimSpace(err.Error()))
		res.Status = StatusSkipped
		res.Err = err
		return res
	}
	res.Status = StatusOK
	return res
}

func (w *Worker) generate(ctx context.Context, name string, log *logger.Logger) ([]string, error) {
	columns, err := w.describe(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, errs.New(errs.ErrKindNoColumns, "no columns found in table")
	}

	for i := range columns {
		c := &columns[i]
		if err := c.Resolve(); err != nil {
			return nil, err
		}
		if log.DebugEnabled() {
			log.Debugf("[table=%s] column %s %s(%d,%d) code=%s -> %s",
				name, c.Name, c.TypeName, c.Precision, c.Scale, c.TypeCode, c.TargetType)
		}
	}

	// Both artifacts are rendered before either is written.
	artifacts, err := w.renderer.Render(&schema.Table{Name: name, Columns: columns})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path, err := w.writer.Write(ctx, a)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
		log.Infof("[table=%s] generated %s file: %s", name, artifactLabel(a.Kind), path)
	}
	return paths, nil
}

// describe runs the metadata query on a connection held only for this table.
func (w *Worker) describe(ctx context.Context, table string) ([]schema.Column, error) {
	conn, err := w.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	return conn.Describe(ctx, table)
}

func artifactLabel(k render.Kind) string {
	if k == render.KindRecordType {
		return "pojo"
	}
	return "mapping"
}
