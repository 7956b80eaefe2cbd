// Command tablegen reads table schemas from a relational database and
// writes a record type and a mapping descriptor for every table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/koustreak/tablegen/internal/config"
	"github.com/koustreak/tablegen/internal/database/connect"
	"github.com/koustreak/tablegen/internal/filestore/minio"
	"github.com/koustreak/tablegen/internal/generator"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/output"
	"github.com/koustreak/tablegen/internal/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tablegen error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one generation run. Skipped tables do not make it fail;
// configuration, connection and interruption errors do.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	cfg, err := config.Load(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logger(stdout))
	logger.SetGlobal(log)
	logSettings(log, cfg)

	renderer, err := render.New(cfg.Render())
	if err != nil {
		return err
	}

	writer, closeWriter, err := openWriter(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeWriter()

	log.Info("connecting to database...")
	db, err := connect.Open(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	coord, err := generator.New(cfg.Generator(), db, renderer, writer, log)
	if err != nil {
		return err
	}

	log.Info("processing tables...")
	_, err = coord.Run(ctx)
	return err
}

func logSettings(log *logger.Logger, cfg *config.Config) {
	if len(cfg.Generate.Tables) > 0 {
		log.Infof("tables=[%s]", strings.Join(cfg.Generate.Tables, ", "))
	} else {
		log.Info("tables=all")
	}
	log.Infof("package=%s", cfg.Generate.Package)
	if cfg.Storage.Enabled() {
		log.Infof("bucket=%s", cfg.Storage.Bucket)
	} else {
		log.Infof("directory=%s", cfg.Generate.Dir)
	}
	log.Infof("threads=%d", cfg.Generate.Threads)
}

// openWriter returns the artifact sink: the object store when a bucket is
// configured, the local directory otherwise.
func openWriter(ctx context.Context, cfg *config.Config) (output.Writer, func(), error) {
	if !cfg.Storage.Enabled() {
		return output.NewFS(cfg.Generate.Dir), func() {}, nil
	}

	store, err := minio.New(ctx, &cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	w := output.NewStore(store, cfg.Storage.Bucket, cfg.Storage.Prefix)
	if err := w.Prepare(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return w, func() { store.Close() }, nil
}
