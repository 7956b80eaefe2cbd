package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/koustreak/tablegen/internal/errs"
	"github.com/koustreak/tablegen/internal/filestore"
)

const usage = `tablegen - generate record types and mapping descriptors from table schemas

Usage:
  tablegen [--all | --tables "A;B;C"] [options]

Options:
  -a, --all             generate for all the tables in the database
  -t, --tables <list>   tables delimited by ; (semicolon), overrides --all
  -p, --pkg <name>      package of the generated types (default "pojo")
  -d, --dir <path>      output root directory (default "out")
  -r, --threads <n>     number of concurrent workers (default 5)
  -c, --config <path>   config file (default "tablegen.yaml" when present)
      --lang <lang>     java or go (default "java")
      --suffix <s>      type name suffix (default "Entity")
      --singular        singularise table names in type names
      --bucket <name>   upload artifacts to this object store bucket
      --log-level <l>   debug, info, warn or error (default "info")
      --log-format <f>  text, json or console (default "text")
  -h, --help            print help
`

// Flags holds the command-line values of one invocation.
type Flags struct {
	fs  *flag.FlagSet
	out io.Writer

	all        bool
	tables     string
	pkg        string
	dir        string
	threads    int
	configPath string
	lang       string
	suffix     string
	singular   bool
	bucket     string
	logLevel   string
	logFormat  string
}

// NewFlags registers every flag, with its short alias where one exists.
func NewFlags(out io.Writer) *Flags {
	f := &Flags{fs: flag.NewFlagSet("tablegen", flag.ContinueOnError), out: out}
	f.fs.SetOutput(out)
	f.fs.Usage = f.Usage

	f.fs.BoolVar(&f.all, "all", false, "")
	f.fs.BoolVar(&f.all, "a", false, "")
	f.fs.StringVar(&f.tables, "tables", "", "")
	f.fs.StringVar(&f.tables, "t", "", "")
	f.fs.StringVar(&f.pkg, "pkg", "", "")
	f.fs.StringVar(&f.pkg, "p", "", "")
	f.fs.StringVar(&f.dir, "dir", "", "")
	f.fs.StringVar(&f.dir, "d", "", "")
	f.fs.IntVar(&f.threads, "threads", 0, "")
	f.fs.IntVar(&f.threads, "r", 0, "")
	f.fs.StringVar(&f.configPath, "config", "", "")
	f.fs.StringVar(&f.configPath, "c", "", "")
	f.fs.StringVar(&f.lang, "lang", "", "")
	f.fs.StringVar(&f.suffix, "suffix", "", "")
	f.fs.BoolVar(&f.singular, "singular", false, "")
	f.fs.StringVar(&f.bucket, "bucket", "", "")
	f.fs.StringVar(&f.logLevel, "log-level", "", "")
	f.fs.StringVar(&f.logFormat, "log-format", "", "")
	return f
}

// Parse parses args. -h and --help print usage and return flag.ErrHelp.
func (f *Flags) Parse(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	if f.fs.NArg() > 0 {
		return errs.Newf(errs.ErrKindInvalidInput, "unexpected argument %q", f.fs.Arg(0))
	}
	return nil
}

// Usage prints the help text.
func (f *Flags) Usage() {
	fmt.Fprint(f.out, usage)
}

// ConfigPath returns the config file to read and whether it was given
// explicitly.
func (f *Flags) ConfigPath() (string, bool) {
	if f.isSet("config", "c") {
		return f.configPath, true
	}
	return DefaultPath, false
}

// Apply overlays every flag that was given onto cfg.
func (f *Flags) Apply(cfg *Config) {
	g := &cfg.Generate
	if f.isSet("all", "a") {
		g.All = f.all
	}
	if f.isSet("tables", "t") {
		g.Tables = strings.Split(f.tables, ";")
	}
	if f.isSet("pkg", "p") {
		g.Package = f.pkg
	}
	if f.isSet("dir", "d") {
		g.Dir = f.dir
	}
	if f.isSet("threads", "r") {
		g.Threads = f.threads
	}
	if f.isSet("lang") {
		g.Lang = f.lang
	}
	if f.isSet("suffix") {
		g.Suffix = f.suffix
	}
	if f.isSet("singular") {
		g.Singular = f.singular
	}
	if f.isSet("bucket") {
		cfg.Storage.Bucket = f.bucket
		if cfg.Storage.Provider == "" {
			cfg.Storage.Provider = filestore.ProviderMinIO
		}
	}
	if f.isSet("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if f.isSet("log-format") {
		cfg.Log.Format = f.logFormat
	}
}

func (f *Flags) isSet(names ...string) bool {
	set := false
	f.fs.Visit(func(fl *flag.Flag) {
		for _, n := range names {
			if fl.Name == n {
				set = true
			}
		}
	})
	return set
}
