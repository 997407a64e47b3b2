package main

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"copyck/internal/clauses"
	"copyck/internal/config"
	"copyck/internal/solver"
)

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [type...]",
		Short: "Print the structural clause emitted for each type",
		Long: `Runs the structural classifier once per type, concurrently, and prints
what it emits: a fact, a conditional clause, or nothing when the question
is left to other rules.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			goals := make([]clauses.Goal, len(args))
			for i, src := range args {
				ref, err := a.goal(src)
				if err != nil {
					return err
				}
				goals[i] = clauses.Goal{Ref: ref, Binders: a.binders}
			}

			results, err := clauses.ClassifyAll(commandContext(cmd), a.gen, goals, runtime.NumCPU())
			if err != nil {
				return fmt.Errorf("classification failed: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, emitted := range results {
				fmt.Fprintf(out, "%s\n", goals[i].Ref)
				if len(emitted) == 0 {
					fmt.Fprintln(out, "  (no clause)")
				}
				for _, c := range emitted {
					fmt.Fprintf(out, "  %s\n", c)
				}
			}
			return nil
		},
	}
}

func (a *app) solve(cmd *cobra.Command, src string) (*solver.Result, error) {
	ref, err := a.goal(src)
	if err != nil {
		return nil, err
	}
	s := solver.New(a.gen, solver.Config{
		FactLimit: a.cfg.Solver.FactLimit,
		MaxGoals:  a.cfg.Solver.MaxGoals,
		Timeout:   a.cfg.GetTimeout(),
	})
	return s.Solve(commandContext(cmd), ref, a.binders)
}

func newSolveCmd(a *app) *cobra.Command {
	var showProgram, showMangle bool
	cmd := &cobra.Command{
		Use:   "solve [type]",
		Short: "Decide whether a type is Copy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.solve(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verdict := "does not hold"
			if res.Holds {
				verdict = "holds"
			}
			fmt.Fprintf(out, "%s %s\n", res.Goal, verdict)

			if showProgram {
				fmt.Fprintln(out, "\nProgram:")
				for _, c := range res.Clauses {
					fmt.Fprintf(out, "  %s\n", c)
				}
			}
			if showMangle {
				fmt.Fprintln(out, "\nMangle:")
				for _, line := range strings.Split(res.Program.String(), "\n") {
					fmt.Fprintf(out, "  %s\n", line)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showProgram, "program", false, "Also print every clause reached")
	cmd.Flags().BoolVar(&showMangle, "mangle", false, "Also print the generated Mangle facts and rules")
	return cmd
}

func newExplainCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "explain [type]",
		Short: "Show the derivation tree behind a verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.solve(cmd, args[0])
			if err != nil {
				return err
			}

			trace := res.Explain()
			if asJSON {
				data, err := trace.RenderJSON()
				if err != nil {
					return fmt.Errorf("failed to render trace: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), trace.RenderASCII())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render the tree as JSON")
	return cmd
}

func newDBCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "db",
		Short: "List the loaded type database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			closures := a.db.Closures()
			fmt.Fprintf(out, "Closures (%d):\n", len(closures))
			for _, c := range closures {
				captures := make([]string, len(c.Captures))
				for i, t := range c.Captures {
					captures[i] = t.String()
				}
				fmt.Fprintf(out, "  %s  %s  captures [%s]\n", c.ID, c.Signature(), strings.Join(captures, ", "))
			}

			adts := a.db.Adts()
			fmt.Fprintf(out, "Types (%d):\n", len(adts))
			for _, adt := range adts {
				impl := "no impl"
				if adt.CopyImpl {
					impl = "impl"
					if len(adt.CopyBounds) > 0 {
						impl += fmt.Sprintf(" where params %v", adt.CopyBounds)
					}
				}
				fmt.Fprintf(out, "  %s/%d  %s\n", adt.ID, adt.Params, impl)
			}
			return nil
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file",
		Args:  cobra.ExactArgs(1),
		// The config being written need not exist or be valid yet.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultConfig().Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}
