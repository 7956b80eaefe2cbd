package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koustreak/tablegen/internal/database"
	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/render"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tablegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const fileBody = `
database:
  driver: mysql
  dsn: user:pass@tcp(localhost:3306)/shop
  connect_timeout: 3s
generate:
  tables: [ACCOUNTS, ORDERS]
  package: com.acme.model
  dir: gen
  threads: 3
  lang: go
  suffix: ""
log:
  level: debug
`

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, fileBody)

	cfg, err := Load([]string{"-c", path}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, database.DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3*time.Second, cfg.Database.ConnectTimeout)
	assert.Equal(t, int32(4), cfg.Database.MaxConns)
	assert.Equal(t, []string{"ACCOUNTS", "ORDERS"}, cfg.Generate.Tables)
	assert.Equal(t, "com.acme.model", cfg.Generate.Package)
	assert.Equal(t, "gen", cfg.Generate.Dir)
	assert.Equal(t, 3, cfg.Generate.Threads)
	assert.Equal(t, "", cfg.Generate.Suffix)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	opts := cfg.Render()
	assert.Equal(t, render.LangGo, opts.Lang)
	assert.Equal(t, "com.acme.model", opts.Namespace)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, fileBody)

	cfg, err := Load([]string{
		"--config", path,
		"-t", " USERS ; ;ROLES",
		"-p", "pojo",
		"--dir", "out2",
		"-r", "7",
		"--lang", "java",
		"--suffix", "Row",
		"--singular",
		"--log-format", "json",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, []string{"USERS", "ROLES"}, cfg.Generate.Tables)
	assert.Equal(t, "pojo", cfg.Generate.Package)
	assert.Equal(t, "out2", cfg.Generate.Dir)
	assert.Equal(t, 7, cfg.Generate.Threads)
	assert.Equal(t, int32(8), cfg.Database.MaxConns)
	assert.Equal(t, "Row", cfg.Generate.Suffix)
	assert.True(t, cfg.Generate.Singular)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_TablesOverrideAll(t *testing.T) {
	path := writeConfig(t, "database:\n  dsn: postgres://localhost/db\n")

	cfg, err := Load([]string{"-c", path, "--all", "--tables", "A;B"}, &bytes.Buffer{})
	require.NoError(t, err)

	gen := cfg.Generator()
	assert.False(t, gen.All)
	assert.True(t, gen.Explicit())
	assert.Equal(t, []string{"A", "B"}, gen.Tables)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "database:\n  dsn: postgres://localhost/db\n")

	cfg, err := Load([]string{"-c", path, "-a"}, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.Generate.All)
	assert.Equal(t, "pojo", cfg.Generate.Package)
	assert.Equal(t, "out", cfg.Generate.Dir)
	assert.Equal(t, 5, cfg.Generate.Threads)
	assert.Equal(t, int32(6), cfg.Database.MaxConns)
	assert.Equal(t, "Entity", cfg.Generate.Suffix)
	assert.Equal(t, render.LangJava, cfg.Render().Lang)
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TABLEGEN_TEST_DSN", "postgres://env/db")
	path := writeConfig(t, "database:\n  dsn: ${TABLEGEN_TEST_DSN}\n")

	cfg, err := Load([]string{"-c", path, "-a"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
}

func TestLoad_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := Load([]string{"-h"}, &out)
	assert.True(t, errors.Is(err, flag.ErrHelp))
	assert.Contains(t, out.String(), "Usage:")
	assert.Contains(t, out.String(), "--tables")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load([]string{"-c", filepath.Join(t.TempDir(), "nope.yaml"), "-a"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	cfg := Default()
	require.NoError(t, LoadFile(cfg, filepath.Join(t.TempDir(), DefaultPath), false))
	assert.Equal(t, "pojo", cfg.Generate.Package)
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeConfig(t, "database: [oops\n")
	_, err := Load([]string{"-c", path, "-a"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestLoad_UnexpectedArgument(t *testing.T) {
	_, err := Load([]string{"-a", "extra"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errs.IsInvalidInput(err))
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Database.DSN = "postgres://localhost/db"
		cfg.Generate.All = true
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"no interpretation", func(c *Config) { c.Generate.All = false }, `choose "all" or "tables"`},
		{"zero threads", func(c *Config) { c.Generate.Threads = 0 }, "threads must be at least 1"},
		{"unknown lang", func(c *Config) { c.Generate.Lang = "cobol" }, "unsupported language"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "oracle" }, "unsupported database driver"},
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn is required"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "unsupported log format"},
		{"bucket without endpoint", func(c *Config) { c.Storage.Bucket = "gen" }, "storage.endpoint is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFlags_Bucket(t *testing.T) {
	cfg := Default()
	cfg.Storage.Provider = ""
	f := NewFlags(&bytes.Buffer{})
	require.NoError(t, f.Parse([]string{"--bucket", "generated"}))
	f.Apply(cfg)

	assert.Equal(t, "generated", cfg.Storage.Bucket)
	assert.True(t, cfg.Storage.Enabled())
}

func TestConfig_Logger(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "warn"
	var out bytes.Buffer
	lc := cfg.Logger(&out)
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "text", lc.Format)
	assert.Same(t, &out, lc.Output)
}
