// Package main provides the layout solver CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/layout/funcs"
	"github.com/born-ml/layout/optim"
	"github.com/born-ml/layout/problem"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("layout %s\n", version)
		return
	}

	if len(os.Args) > 2 && os.Args[1] == "solve" {
		verbose := len(os.Args) > 3 && os.Args[3] == "-v"
		if err := solve(os.Args[2], verbose, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "layout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println("layout - constrained layout optimizer")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version              Show version")
	fmt.Println("  solve <file> [-v]    Optimize a YAML problem file and print the layout")
}

// Solution is the YAML report written by solve.
type Solution struct {
	Run        string             `yaml:"run"`
	Phase      string             `yaml:"phase"`
	Energy     float64            `yaml:"energy"`
	Objective  float64            `yaml:"objective"`
	Constraint float64            `yaml:"constraint"`
	Satisfied  bool               `yaml:"satisfied"`
	Rounds     int                `yaml:"rounds"`
	Iterations int                `yaml:"iterations"`
	Start      int                `yaml:"start"`
	Variables  map[string]float64 `yaml:"variables"`
}

func solve(path string, verbose bool, out io.Writer) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	file, err := problem.Load(f)
	if err != nil {
		return err
	}
	p, err := file.Problem(funcs.Default())
	if err != nil {
		return err
	}

	cfg := optim.DefaultResampleConfig()
	cfg.Optim.Logger = logger
	cfg.Optim.TraceDescent = verbose
	if cfg, err = file.Options.Config(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := optim.Resample(ctx, p, cfg)
	if err != nil && !errors.Is(err, optim.ErrNoStart) {
		return err
	}

	best := result.State()
	start := result.Best
	if best == nil {
		// Report the first attempt so the caller sees how far it got.
		best = result.Attempts[0].State
		start = 0
	}
	if best == nil {
		return result.Attempts[0].Err
	}

	b := best.Breakdown()
	sol := Solution{
		Run:        best.ID().String(),
		Phase:      best.Phase().String(),
		Energy:     best.Energy(),
		Objective:  b.Objective,
		Constraint: b.Constraint,
		Satisfied:  b.Satisfied(cfg.Tolerance),
		Rounds:     best.Rounds(),
		Iterations: best.Iterations(),
		Start:      start,
		Variables:  optim.Bindings(best.Paths(), best.Variables()),
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(sol); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	if best.Phase() != optim.EPConverged {
		if serr := best.Err(); serr != nil {
			return serr
		}
		return err
	}
	return nil
}
