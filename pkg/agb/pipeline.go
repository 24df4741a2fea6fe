package agb

import (
	"errors"

	"github.com/Garik-/midfix4agb/pkg/midi"
	"go.uber.org/zap"
)

// Options selects the passes a Pipeline runs.
type Options struct {
	// AddAgbEvents enables MODT/LFOS/BENDR injection.
	AddAgbEvents bool
	// FixVolScale enables both the volume/expression combination and the
	// exponential curve.
	FixVolScale bool
	// FixLoop enables the loop carryback fix.
	FixLoop bool
	// ModScale multiplies modulation. The modulation pass always runs; 1 leaves it unchanged.
	ModScale float64
	// ModType is the MODT value, 0 (vibrato), 1 (tremolo) or 2 (auto-panning).
	ModType uint8
}

// DefaultOptions enables every pass with half modulation and vibrato.
func DefaultOptions() Options {
	return Options{
		AddAgbEvents: true,
		FixVolScale:  true,
		FixLoop:      true,
		ModScale:     0.5,
		ModType:      0,
	}
}

// Validate returns ErrInvalidModType or ErrInvalidModScale for out-of-range options.
func (o Options) Validate() error {
	if o.ModType > 2 {
		return ErrInvalidModType
	}
	return validateModScale(o.ModScale)
}

type pass struct {
	name    string
	enabled bool
	run     func(log *zap.Logger, s *midi.Score) error
}

// Pipeline runs the passes in their fixed order over one score.
type Pipeline struct {
	opts Options
	log  *zap.Logger
}

// NewPipeline returns a pipeline that reports to log; nil discards.
func NewPipeline(opts Options, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{opts: opts, log: log.Named("pipeline")}
}

// Run transforms s in place. Options are checked before any pass touches s;
// the first failing pass stops the run.
func (p *Pipeline) Run(s *midi.Score) error {
	if err := p.opts.Validate(); err != nil {
		return err
	}

	for _, ps := range p.passes() {
		log := p.log.Named(ps.name)
		if !ps.enabled {
			log.Debug("skipped")
			continue
		}
		if err := ps.run(log, s); err != nil {
			log.Error("failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Pipeline) passes() []pass {
	return []pass{
		{"agb", p.opts.AddAgbEvents, p.addAgbEvents},
		{"volume", p.opts.FixVolScale, p.combineVolume},
		{"modulation", true, p.scaleModulation},
		{"curve", p.opts.FixVolScale, p.exponentialCurve},
		{"loop", p.opts.FixLoop, p.fixLoop},
	}
}

func (p *Pipeline) addAgbEvents(log *zap.Logger, s *midi.Score) error {
	log.Info("adding MODT, LFOS and BENDR events", zap.Uint8("modt", p.opts.ModType))
	n, err := AddAgbCompatibleEvents(s, p.opts.ModType)
	if err != nil {
		return err
	}
	log.Debug("done", zap.Int("bendr", n))
	return nil
}

func (p *Pipeline) combineVolume(log *zap.Logger, s *midi.Score) error {
	log.Info("combining volume and expression events")
	log.Debug("done", zap.Int("events", CombineVolumeAndExpression(s)))
	return nil
}

func (p *Pipeline) scaleModulation(log *zap.Logger, s *midi.Score) error {
	log.Info("scaling modulation", zap.Float64("scale", p.opts.ModScale))
	n, err := ScaleModulation(s, p.opts.ModScale)
	if err != nil {
		return err
	}
	log.Debug("done", zap.Int("events", n))
	return nil
}

func (p *Pipeline) exponentialCurve(log *zap.Logger, s *midi.Score) error {
	log.Info("applying exponential volume and velocity scale")
	log.Debug("done", zap.Int("events", ApplyExponentialCurve(s)))
	return nil
}

func (p *Pipeline) fixLoop(log *zap.Logger, s *midi.Score) error {
	log.Info("fixing loop carryback")
	fixes, err := FixLoopCarryback(s)
	if errors.Is(err, ErrLoopNotFound) {
		log.Info("MIDI is not looped")
		return nil
	}
	if err != nil {
		return err
	}

	for _, fix := range fixes {
		for _, e := range fix.Events {
			log.Debug("inserted",
				zap.Int("track", fix.Track),
				zap.Int64("tick", e.Tick),
				zap.Stringer("event", e.Msg))
		}
	}
	log.Debug("done", zap.Int("tracks", len(fixes)))
	return nil
}
