// Package perf keeps frame timing samples and can capture pprof profiles of
// a running session on demand.
package perf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/logger"
)

const (
	numSamples = 64
)

// Perf times frames and, while requested, writes profiles after every frame.
type Perf struct {
	outputBase    string
	shouldProfile bool
	profiling     bool
	err           error
	cpuProfF      *os.File
	profDebug     int
	now           func() time.Time
	log           *logrus.Entry

	round    int
	i        int
	time     [numSamples]struct{ start, end time.Time }
	memStats [numSamples]runtime.MemStats
}

// Init sets up the perf system, writing results into a timestamped directory
// under dir with an optional name prefix.
func (perf *Perf) Init(dir, name string) {
	const timeFormat = "20060102T150405Z0700"
	perf.profDebug = 2
	if perf.now == nil {
		perf.now = time.Now
	}
	perf.log = logger.Component("perf")
	base := fmt.Sprintf("prof-%s", perf.now().Format(timeFormat))
	if name != "" {
		base = fmt.Sprintf("%s-%s", name, base)
	}
	perf.outputBase = filepath.Join(dir, base)
}

// Measure runs a round of the perf system, timing fn as one frame.
func (perf *Perf) Measure(fn func()) {
	perf.round++

	if err := perf.maybeProfile(); err != nil {
		perf.fail(err)
	}

	perf.time[perf.i].start = perf.now()
	fn()
	perf.time[perf.i].end = perf.now()

	runtime.ReadMemStats(&perf.memStats[perf.i])

	if perf.profiling {
		if err := perf.takeProfile(); err != nil {
			perf.fail(err)
		}
	}

	perf.i = (perf.i + 1) % numSamples
}

func (perf *Perf) fail(err error) {
	perf.err = err
	_ = perf.stopProfiling()
	perf.log.WithError(err).Error("profiling stopped")
}

// Start requests profiling to start, this happens during the next round.
func (perf *Perf) Start() { perf.shouldProfile = true }

// Stop requests profiling to stop, this happens during the next round.
func (perf *Perf) Stop() { perf.shouldProfile = false }

// Toggle flips the profiling request.
func (perf *Perf) Toggle() { perf.shouldProfile = !perf.shouldProfile }

// Close cleans up the profiler, returning any error.
func (perf *Perf) Close() error {
	if serr := perf.stopProfiling(); perf.err == nil {
		perf.err = serr
	}
	return perf.err
}

// Err return any profiling error encountered; if this is non-nil, then
// profiling will not start.
func (perf *Perf) Err() error { return perf.err }

// Running returns whether profiling has been requested, and whether it
// actually active.
func (perf *Perf) Running() (should, are bool) {
	return perf.shouldProfile,
		perf.profiling
}

// Dir returns where profiles are written.
func (perf *Perf) Dir() string { return perf.outputBase }

// Round returns how many frames have been measured.
func (perf *Perf) Round() int { return perf.round }

func (perf *Perf) lastI() int {
	i := perf.i - 1
	if i < 0 {
		i += numSamples
	}
	return i
}

// Last returns how long the last frame took.
func (perf *Perf) Last() time.Duration {
	if perf.round == 0 {
		return 0
	}
	i := perf.lastI()
	return perf.time[i].end.Sub(perf.time[i].start)
}

// FPS returns the frame rate over the sampled frames, from the spacing of
// their start times.
func (perf *Perf) FPS() float64 {
	n := perf.round
	if n > numSamples {
		n = numSamples
	}
	if n < 2 {
		return 0
	}
	last := perf.lastI()
	first := (last - (n - 1) + numSamples) % numSamples
	span := perf.time[last].start.Sub(perf.time[first].start)
	if span <= 0 {
		return 0
	}
	return float64(n-1) / span.Seconds()
}

// HeapAlloc returns the heap size sampled after the last frame.
func (perf *Perf) HeapAlloc() uint64 {
	return perf.memStats[perf.lastI()].HeapAlloc
}

func (perf *Perf) maybeProfile() error {
	if perf.err != nil {
		return perf.err
	} else if perf.profiling && !perf.shouldProfile {
		return perf.stopProfiling()
	} else if !perf.profiling && perf.shouldProfile {
		return perf.startProfiling()
	}
	return nil
}

func (perf *Perf) startProfiling() error {
	if perf.profiling {
		return nil
	}
	if err := perf.copyExecutable(); err != nil {
		return errors.Wrap(err, "copying executable")
	}
	f, err := perf.createOutput("cpu")
	if err != nil {
		return err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return errors.Wrap(err, "starting cpu profile")
	}
	perf.cpuProfF = f
	perf.profiling = true
	perf.log.WithField("dir", perf.outputBase).Info("profiling started")
	return perf.takeProfile()
}

func (perf *Perf) stopProfiling() (err error) {
	if perf.cpuProfF != nil {
		pprof.StopCPUProfile()
		err = perf.cpuProfF.Close()
		perf.cpuProfF = nil
		if err != nil {
			err = errors.Wrap(err, `failed to close "cpu" output file`)
		}
		perf.log.Info("profiling stopped")
	}
	perf.shouldProfile = false
	perf.profiling = false
	return err
}

func (perf *Perf) takeProfile() error {
	for _, prof := range pprof.Profiles() {
		f, err := perf.createOutput(prof.Name())
		if err != nil {
			return err
		}
		err = prof.WriteTo(f, perf.profDebug)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Wrapf(err, "writing %q profile", prof.Name())
		}
	}
	return nil
}

func (perf *Perf) copyExecutable() (rerr error) {
	dstName := filepath.Join(perf.outputBase, "exe")
	if _, err := os.Stat(dstName); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	dst, err := createMkdirAll(dstName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	srcName, err := os.Executable()
	if err != nil {
		return err
	}
	src, err := os.Open(srcName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); rerr == nil {
			rerr = cerr
		}
	}()

	_, err = io.Copy(dst, src)
	return err
}

func (perf *Perf) createOutput(name string) (*os.File, error) {
	pth := filepath.Join(perf.outputBase, fmt.Sprintf("t%d", perf.round), name)
	f, err := createMkdirAll(pth)
	if err != nil {
		err = errors.Wrapf(err, "failed to create %q output file", name)
	}
	return f, err
}

func createMkdirAll(name string) (*os.File, error) {
	f, err := os.Create(name)
	if os.IsNotExist(err) {
		err = os.MkdirAll(filepath.Dir(name), 0777)
		if err == nil {
			return os.Create(name)
		}
	}
	return f, err
}
