// Package config loads the run configuration from a YAML file and the
// command line. Flags that were given override the file.
package config

import (
	"errors"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/filestore"
	"github.com/koustreak/tablegen/internal/generator"
	"github.com/koustreak/tablegen/internal/logger"
	"github.com/koustreak/tablegen/internal/render"
)

// DefaultPath is read when no --config flag is given. It may be absent.
const DefaultPath = "tablegen.yaml"

type Config struct {
	Database database.Config  `yaml:"database"`
	Generate GenerateConfig   `yaml:"generate"`
	Storage  filestore.Config `yaml:"storage"`
	Log      LogConfig        `yaml:"log"`
}

type GenerateConfig struct {
	All      bool     `yaml:"all"`
	Tables   []string `yaml:"tables"`
	Package  string   `yaml:"package"`
	Dir      string   `yaml:"dir"`
	Threads  int      `yaml:"threads"`
	Lang     string   `yaml:"lang"`
	Suffix   string   `yaml:"suffix"`
	Singular bool     `yaml:"singular"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration of a run with no file and no flags.
func Default() *Config {
	return &Config{
		Database: database.Config{
			Driver:         database.DriverPostgres,
			ConnectTimeout: 10 * time.Second,
		},
		Generate: GenerateConfig{
			Package: "pojo",
			Dir:     "out",
			Threads: generator.DefaultWorkers,
			Lang:    string(render.LangJava),
			Suffix:  "Entity",
		},
		Storage: *filestore.DefaultConfig("", "", "", ""),
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// LoadFile overlays the YAML file at path onto cfg. A missing file is an
// error only when required is set.
func LoadFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return errs.Wrap(errs.ErrKindInvalidInput, "read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errs.Wrap(errs.ErrKindInvalidInput, "parse config", err)
	}
	cfg.Database.DSN = os.ExpandEnv(cfg.Database.DSN)
	cfg.Storage.AccessKey = os.ExpandEnv(cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = os.ExpandEnv(cfg.Storage.SecretKey)
	return nil
}

// Load builds the configuration from the command-line arguments (without
// the program name). It returns flag.ErrHelp after printing usage to out
// when -h or --help is given.
func Load(args []string, out io.Writer) (*Config, error) {
	flags := NewFlags(out)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg := Default()
	path, explicit := flags.ConfigPath()
	if err := LoadFile(cfg, path, explicit); err != nil {
		return nil, err
	}
	flags.Apply(cfg)
	cfg.finalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finalize fills settings derived from others.
func (c *Config) finalize() {
	c.Generate.Tables = cleanTables(c.Generate.Tables)
	if len(c.Generate.Tables) > 0 {
		c.Generate.All = false
	}
	if c.Database.MaxConns == 0 && c.Generate.Threads > 0 {
		c.Database.MaxConns = int32(c.Generate.Threads + 1)
	}
	if c.Database.Driver == "" {
		c.Database.Driver = database.DriverPostgres
	}
}

// Validate reports the first problem that must stop the run before it
// connects to anything.
func (c *Config) Validate() error {
	gen := c.Generator()
	if err := gen.Validate(); err != nil {
		return err
	}
	if !render.Lang(c.Generate.Lang).Valid() {
		return errs.Newf(errs.ErrKindInvalidInput, "unsupported language %q (want java or go)", c.Generate.Lang)
	}
	if !c.Database.Driver.Valid() {
		return errs.Newf(errs.ErrKindInvalidInput, "unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errs.New(errs.ErrKindInvalidInput, "database.dsn is required")
	}
	switch c.Log.Format {
	case "text", "json", "console":
	default:
		return errs.Newf(errs.ErrKindInvalidInput, "unsupported log format %q", c.Log.Format)
	}
	if c.Storage.Enabled() && c.Storage.Endpoint == "" {
		return errs.New(errs.ErrKindInvalidInput, "storage.endpoint is required when storage.bucket is set")
	}
	return nil
}

// Generator returns the pipeline configuration.
func (c *Config) Generator() generator.Config {
	return generator.Config{
		All:     c.Generate.All,
		Tables:  c.Generate.Tables,
		Workers: c.Generate.Threads,
	}
}

// Render returns the renderer options.
func (c *Config) Render() render.Options {
	return render.Options{
		Namespace: c.Generate.Package,
		Lang:      render.Lang(c.Generate.Lang),
		Suffix:    c.Generate.Suffix,
		Singular:  c.Generate.Singular,
	}
}

// Logger returns the logger configuration writing to out.
func (c *Config) Logger(out io.Writer) *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = c.Log.Format
	cfg.Output = out
	return cfg
}

// cleanTables trims names and drops blank entries. Entries may themselves
// hold ";"-delimited lists.
func cleanTables(names []string) []string {
	var tables []string
	for _, name := range names {
		tables = append(tables, generator.ParseTables(name)...)
	}
	return tables
}
