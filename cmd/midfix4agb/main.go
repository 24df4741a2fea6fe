package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Garik-/midfix4agb/pkg/agb"
	"github.com/Garik-/midfix4agb/pkg/config"
	"github.com/Garik-/midfix4agb/pkg/midi"
	"go.uber.org/zap"
)

const usage = `Usage: %s "inputfile.mid" ["outputfile.mid"] [optional arguments]

Optional arguments (defaults):
  modscale=0.5       scale applied to modulation
  modt=0             MODT: 0 vibrato, 1 tremolo, 2 auto-panning
  fixloop=true       restore loop-start state at the loop point
  fixvolscale=true   combine volume/expression and apply the exponential scale
  addagbevents=true  add MODT, LFOS and BENDR events
  debug=false        log every inserted event
`

func printUsage(w io.Writer) {
	fmt.Fprintf(w, usage, os.Args[0])
}

func convert(cfg *config.Config, log *zap.Logger) error {
	score, err := midi.ReadFile(cfg.InputPath)
	if err != nil {
		return err
	}
	log.Debug("decoded",
		zap.Int("tracks", len(score.Tracks)),
		zap.Uint16("division", score.TimeDivision))

	if err := agb.NewPipeline(cfg.PipelineOptions(), log).Run(score); err != nil {
		return err
	}

	return midi.WriteFile(cfg.OutputPath, score)
}

func run(args []string, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		printUsage(stderr)
		var ae *config.ArgumentError
		if errors.As(err, &ae) {
			fmt.Fprintln(stderr, ae)
		}
		return 2
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	start := time.Now()
	log.Info("converting", zap.String("input", cfg.InputPath), zap.String("output", cfg.OutputPath))

	if err := convert(cfg, log); err != nil {
		log.Error("conversion failed", zap.Error(err))
		return 1
	}

	log.Info("done", zap.Duration("elapsed", time.Since(start)))
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}
