package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"copyck/internal/clauses"
	"copyck/internal/config"
	"copyck/internal/logging"
	"copyck/internal/ty"
	"copyck/internal/typedb"
)

// app is what every subcommand works against once the root has booted.
type app struct {
	cfg     *config.Config
	db      *typedb.Memory
	binders ty.Binders
	gen     clauses.Generator
}

type rootOptions struct {
	verbose    bool
	configPath string
	dbPath     string
	binders    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "copyck",
		Short: "copyck - structural Copy eligibility checker",
		Long: `copyck generates the program clauses that decide whether a type is Copy
and resolves them with Google Mangle (Datalog).

Types are written in a compact syntax, for example:
  copyck classify "(u8, &mut u8)" "[f32; 4]"
  copyck solve "closure#adder<i32>" --db types.yaml
  copyck explain "(^0.0, char)" --binders int`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.boot(opts)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Sync()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "copyck.yaml", "Config file")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Type database file (or set COPYCK_DB env)")
	rootCmd.PersistentFlags().StringVar(&opts.binders, "binders", "", "Binder kinds for ^D.I variables, e.g. int,float,ty,const,lifetime")

	rootCmd.AddCommand(newClassifyCmd(a))
	rootCmd.AddCommand(newSolveCmd(a))
	rootCmd.AddCommand(newExplainCmd(a))
	rootCmd.AddCommand(newDBCmd(a))
	rootCmd.AddCommand(newInitConfigCmd())

	return rootCmd
}

// boot loads configuration, logging and the type database.
func (a *app) boot(opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.dbPath != "" {
		cfg.Database = opts.dbPath
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := logging.Initialize(logging.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Categories: cfg.Logging.Categories,
	}); err != nil {
		return err
	}
	logging.Boot("config loaded from %s", opts.configPath)

	db := typedb.New()
	if cfg.Database != "" {
		db, err = typedb.LoadFile(cfg.Database)
		if err != nil {
			return err
		}
	}

	binders, err := ty.ParseBinders(opts.binders)
	if err != nil {
		return fmt.Errorf("invalid --binders: %w", err)
	}

	gen := clauses.Chain(clauses.NewClassifier(db), clauses.Libcore, clauses.Declared(db))
	if cfg.Cache.Size > 0 {
		cached, err := clauses.NewCache(gen, cfg.Cache.Size)
		if err != nil {
			return err
		}
		gen = cached
	}

	a.cfg = cfg
	a.db = db
	a.binders = binders
	a.gen = gen
	return nil
}

// goal parses a type argument into a goal for the configured trait.
func (a *app) goal(src string) (ty.TraitRef, error) {
	self, err := ty.Parse(src)
	if err != nil {
		return ty.TraitRef{}, err
	}
	if err := a.checkWellFormed(self); err != nil {
		return ty.TraitRef{}, err
	}
	return ty.TraitRef{Trait: ty.TraitID(a.cfg.Trait), Self: self}, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
