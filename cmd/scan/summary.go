package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Garik-/midfix4agb/pkg/agb"
	"github.com/Garik-/midfix4agb/pkg/midi"
	"go.uber.org/zap"
)

type position struct {
	tick      int64
	bar, beat int
}

func (p position) String() string {
	return fmt.Sprintf("%d (%d:%d)", p.tick, p.bar+1, p.beat+1)
}

type report struct {
	name     string
	title    string
	tracks   int
	channels []uint8
	looped   bool
	start    position
	end      position
	// track index -> number of events the loop fix would insert
	pending map[int]int
	err     error
}

type summary struct {
	reports []*report

	failed  int
	looped  int
	pending int
}

func newReport(name string, s *midi.Score) *report {
	r := &report{name: name, tracks: len(s.Tracks), pending: map[int]int{}}

	for i, t := range s.Tracks {
		if ch, ok := t.Channel(); ok {
			r.channels = append(r.channels, ch)
		}
		if i != 0 || r.title != "" {
			continue
		}
		for _, e := range t.Events {
			if m, ok := e.Msg.(*midi.MetaMessage); ok && m.Type == midi.MetaTrackName {
				r.title = m.Text()
				break
			}
		}
	}

	loop, err := agb.FindLoop(s)
	if err != nil {
		if !errors.Is(err, agb.ErrLoopNotFound) {
			r.err = err
		}
		return r
	}

	r.looped = true
	r.start = position{tick: loop.Start}
	r.start.bar, r.start.beat = s.BarBeat(loop.Start)
	r.end = position{tick: loop.End}
	r.end.bar, r.end.beat = s.BarBeat(loop.End)

	fixes, err := agb.InspectCarryback(s)
	if err != nil {
		r.err = err
		return r
	}
	for _, fix := range fixes {
		r.pending[fix.Track] = len(fix.Events)
	}
	return r
}

func newSummary(parent context.Context, paths <-chan string, cntRoutines int) (*summary, error) {
	log := summaryLog.Named("newSummary")
	ctx, cancel := context.WithCancel(parent)
	results, done := decodeWorker(ctx, paths, cntRoutines)

	defer func() {
		log.Debug("cancel")
		cancel()
		<-done // wait decodeWorker closed
	}()

	sum := &summary{}

	for res := range results {
		if err := parent.Err(); err != nil {
			return nil, err
		}

		var r *report
		if res.err != nil {
			r = &report{name: res.name, err: res.err}
		} else {
			r = newReport(res.name, res.score)
		}

		log.Debug("result",
			zap.String("name", r.name),
			zap.Int("tracks", r.tracks),
			zap.Bool("looped", r.looped),
			zap.Error(r.err))

		switch {
		case r.err != nil:
			sum.failed++
		case r.looped:
			sum.looped++
			if len(r.pending) > 0 {
				sum.pending++
			}
		}
		sum.reports = append(sum.reports, r)
	}

	if err := parent.Err(); err != nil {
		return nil, err
	}

	sort.Slice(sum.reports, func(i, j int) bool {
		return sum.reports[i].name < sum.reports[j].name
	})

	return sum, nil
}

func (r *report) write(w io.Writer) {
	if r.err != nil {
		fmt.Fprintf(w, "%s: error: %v\n", r.name, r.err)
		return
	}

	channels := make([]string, len(r.channels))
	for i, ch := range r.channels {
		channels[i] = fmt.Sprint(ch)
	}

	fmt.Fprintf(w, "%s: tracks=%d channels=[%s]", r.name, r.tracks, strings.Join(channels, " "))
	if r.title != "" {
		fmt.Fprintf(w, " title=%q", r.title)
	}
	if !r.looped {
		fmt.Fprintln(w, " not looped")
		return
	}

	fmt.Fprintf(w, " loop=%s..%s", r.start, r.end)

	tracks := make([]int, 0, len(r.pending))
	for t := range r.pending {
		tracks = append(tracks, t)
	}
	sort.Ints(tracks)
	for _, t := range tracks {
		fmt.Fprintf(w, " track%d+%d", t, r.pending[t])
	}
	fmt.Fprintln(w)
}

func (s *summary) write(w io.Writer) {
	for _, r := range s.reports {
		r.write(w)
	}
	fmt.Fprintf(w, "files=%d failed=%d looped=%d need_loop_fix=%d\n",
		len(s.reports), s.failed, s.looped, s.pending)
}
