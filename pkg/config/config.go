// Package config turns the converter's command line into a Config.
//
// Arguments are either bare paths (input, then optional output) or
// key=value options:
//
//	modscale=0.5  modt=0  fixloop=true  fixvolscale=true  addagbevents=true  debug=false
package config

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Garik-/midfix4agb/pkg/agb"
)

const outputSuffix = "_FINAL.mid"

// ErrUsage means no input file was given.
var ErrUsage = errors.New("no input file given")

// ArgumentError reports an option that cannot be parsed or is out of range.
type ArgumentError struct {
	Arg    string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Arg, e.Reason)
}

// Config holds everything the converter needs to run.
type Config struct {
	InputPath  string
	OutputPath string
	Debug      bool

	AddAgbEvents bool
	FixVolScale  bool
	FixLoop      bool
	ModScale     float64
	ModType      uint8
}

// Default returns the configuration used for options that are not given.
func Default() *Config {
	opts := agb.DefaultOptions()
	return &Config{
		AddAgbEvents: opts.AddAgbEvents,
		FixVolScale:  opts.FixVolScale,
		FixLoop:      opts.FixLoop,
		ModScale:     opts.ModScale,
		ModType:      opts.ModType,
	}
}

// Parse reads args, which exclude the program name.
func Parse(args []string) (*Config, error) {
	c := Default()
	paths := 0

	for _, arg := range args {
		key, value, isOption := strings.Cut(arg, "=")
		if !isOption {
			switch paths {
			case 0:
				c.InputPath = arg
			case 1:
				c.OutputPath = arg
			default:
				return nil, &ArgumentError{Arg: arg, Reason: "unexpected extra path"}
			}
			paths++
			continue
		}

		if err := c.set(strings.ToLower(key), value); err != nil {
			return nil, &ArgumentError{Arg: arg, Reason: err.Error()}
		}
	}

	if c.InputPath == "" {
		return nil, ErrUsage
	}
	if c.OutputPath == "" {
		c.OutputPath = OutputPath(c.InputPath)
	}
	return c, nil
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "modscale":
		c.ModScale, err = parseScale(value)
	case "modt":
		c.ModType, err = parseModType(value)
	case "fixloop":
		c.FixLoop, err = strconv.ParseBool(value)
	case "fixvolscale":
		c.FixVolScale, err = strconv.ParseBool(value)
	case "addagbevents":
		c.AddAgbEvents, err = strconv.ParseBool(value)
	case "debug":
		c.Debug, err = strconv.ParseBool(value)
	default:
		return errors.New("unknown option")
	}
	return err
}

// parseScale accepts a decimal comma as well as a point.
func parseScale(value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil {
		return 0, errors.New("not a number")
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("the mod scale must not be negative")
	}
	return f, nil
}

func parseModType(value string) (uint8, error) {
	n, err := strconv.ParseUint(value, 10, 8)
	if err != nil || n > 2 {
		return 0, errors.New("the MODT must be 0, 1 or 2")
	}
	return uint8(n), nil
}

// OutputPath derives the default output file: <dir>/<name>_FINAL.mid.
func OutputPath(input string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(input), name+outputSuffix)
}

// PipelineOptions selects the passes this configuration enables.
func (c *Config) PipelineOptions() agb.Options {
	return agb.Options{
		AddAgbEvents: c.AddAgbEvents,
		FixVolScale:  c.FixVolScale,
		FixLoop:      c.FixLoop,
		ModScale:     c.ModScale,
		ModType:      c.ModType,
	}
}
