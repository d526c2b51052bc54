package mc

import (
	"fmt"
	"io"
	"os"

	"github.com/atomsim/atomsim/mc/atoms"
)

// Observer receives step results. Initialize is called exactly once before
// the first step of a fresh run; Log is called once per step, in observer
// registration order, synchronously. Observers apply their own sampling
// interval and must not mutate the StepInfo or the configurations in it.
type Observer interface {
	Initialize() error
	Log(info StepInfo) error
}

// logColumns is the canonical column-name tuple of the text schema.
var logColumns = []string{
	"iteration", "sampler.name", "latest_accepted_energy",
	"delta_e", "acceptability", "is_accepted", "tags",
}

func headerLine() string {
	return fmt.Sprintf("%10s, %15s, %22s, %10s, %15s, %12s, %20s",
		logColumns[0], logColumns[1], logColumns[2], logColumns[3],
		logColumns[4], logColumns[5], logColumns[6])
}

func rowLine(info StepInfo) string {
	return fmt.Sprintf("%10d, %15s, %22.6f, %10.6f, %15.6f, %12t, %20v",
		info.Iteration, info.SamplerName(), info.LatestAcceptedEnergy,
		info.DeltaEnergy, info.Acceptability, info.IsAccepted, info.Tags)
}

func rowFields(info StepInfo) []string {
	return []string{
		fmt.Sprintf("%d", info.Iteration),
		info.SamplerName(),
		fmt.Sprintf("%.6f", info.LatestAcceptedEnergy),
		fmt.Sprintf("%.6f", info.DeltaEnergy),
		fmt.Sprintf("%.6f", info.Acceptability),
		fmt.Sprintf("%t", info.IsAccepted),
		fmt.Sprintf("%v", info.Tags),
	}
}

// ConsoleObserver writes the canonical text schema to a writer, typically
// os.Stdout, every logInterval iterations.
type ConsoleObserver struct {
	w        io.Writer
	interval int
}

// NewConsoleObserver creates a console sink. A nil writer defaults to
// os.Stdout.
func NewConsoleObserver(w io.Writer, logInterval int) (*ConsoleObserver, error) {
	if logInterval < 1 {
		return nil, fmt.Errorf("%w: log interval must be >= 1, got %d", ErrInvalidParameter, logInterval)
	}
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleObserver{w: w, interval: logInterval}, nil
}

// Initialize prints the column header.
func (o *ConsoleObserver) Initialize() error {
	_, err := fmt.Fprintln(o.w, headerLine())
	return err
}

// Log prints one row when the iteration falls on the log interval.
func (o *ConsoleObserver) Log(info StepInfo) error {
	if info.Iteration%o.interval != 0 {
		return nil
	}
	_, err := fmt.Fprintln(o.w, rowLine(info))
	return err
}

// FileObserver writes the canonical text schema to a file. It refuses to
// overwrite an existing target unless force is set; with force it truncates.
// When a run is resumed (Initialize never called), Log reopens the target in
// append mode without rewriting the header.
type FileObserver struct {
	path     string
	force    bool
	interval int
	f        *os.File
}

// NewFileObserver creates a file sink for the given path.
func NewFileObserver(path string, logInterval int, force bool) (*FileObserver, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty log path", ErrInvalidParameter)
	}
	if logInterval < 1 {
		return nil, fmt.Errorf("%w: log interval must be >= 1, got %d", ErrInvalidParameter, logInterval)
	}
	return &FileObserver{path: path, force: force, interval: logInterval}, nil
}

// Initialize opens the target and writes the column header. It fails with
// ErrResourceConflict, before any write, when the target exists and force
// was not set.
func (o *FileObserver) Initialize() error {
	if !o.force {
		if _, err := os.Stat(o.path); err == nil {
			return fmt.Errorf("%w: %s already exists (set force to overwrite)", ErrResourceConflict, o.path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	o.f = f
	_, err = fmt.Fprintln(o.f, headerLine())
	return err
}

// Log appends one row when the iteration falls on the log interval.
func (o *FileObserver) Log(info StepInfo) error {
	if info.Iteration%o.interval != 0 {
		return nil
	}
	if o.f == nil {
		// Resumed run: reopen in append mode, no header.
		f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		o.f = f
	}
	_, err := fmt.Fprintln(o.f, rowLine(info))
	return err
}

// Close releases the underlying file, if open.
func (o *FileObserver) Close() error {
	if o.f == nil {
		return nil
	}
	err := o.f.Close()
	o.f = nil
	return err
}

// MemoryObserver accumulates rows in memory, one per logged step.
type MemoryObserver struct {
	interval int
	rows     [][]string
}

// NewMemoryObserver creates an in-memory sink.
func NewMemoryObserver(logInterval int) (*MemoryObserver, error) {
	if logInterval < 1 {
		return nil, fmt.Errorf("%w: log interval must be >= 1, got %d", ErrInvalidParameter, logInterval)
	}
	return &MemoryObserver{interval: logInterval}, nil
}

// Initialize clears any previously accumulated rows.
func (o *MemoryObserver) Initialize() error {
	o.rows = nil
	return nil
}

// Log records one row when the iteration falls on the log interval.
func (o *MemoryObserver) Log(info StepInfo) error {
	if info.Iteration%o.interval != 0 {
		return nil
	}
	o.rows = append(o.rows, rowFields(info))
	return nil
}

// Columns returns the column-name tuple matching the accumulated rows.
func (o *MemoryObserver) Columns() []string {
	return append([]string(nil), logColumns...)
}

// Rows returns the bare accumulated rows.
func (o *MemoryObserver) Rows() [][]string {
	out := make([][]string, len(o.rows))
	for i, r := range o.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// RowsWithHeader returns the accumulated rows prefixed with the column names.
func (o *MemoryObserver) RowsWithHeader() [][]string {
	return append([][]string{o.Columns()}, o.Rows()...)
}

// TrajectoryObserver writes the surviving configuration of each logged step
// as an XYZ frame, producing a trajectory of the walk.
type TrajectoryObserver struct {
	path     string
	force    bool
	interval int
	f        *os.File
}

// NewTrajectoryObserver creates an XYZ trajectory sink for the given path.
func NewTrajectoryObserver(path string, logInterval int, force bool) (*TrajectoryObserver, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty trajectory path", ErrInvalidParameter)
	}
	if logInterval < 1 {
		return nil, fmt.Errorf("%w: log interval must be >= 1, got %d", ErrInvalidParameter, logInterval)
	}
	return &TrajectoryObserver{path: path, force: force, interval: logInterval}, nil
}

// Initialize opens the target, refusing an existing path unless force is set.
func (o *TrajectoryObserver) Initialize() error {
	if !o.force {
		if _, err := os.Stat(o.path); err == nil {
			return fmt.Errorf("%w: %s already exists (set force to overwrite)", ErrResourceConflict, o.path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	o.f = f
	return nil
}

// Log appends the step's surviving configuration as one frame.
func (o *TrajectoryObserver) Log(info StepInfo) error {
	if info.Iteration%o.interval != 0 {
		return nil
	}
	if o.f == nil {
		f, err := os.OpenFile(o.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		o.f = f
	}
	frame := info.System
	if info.IsAccepted {
		frame = info.Candidate
	}
	comment := fmt.Sprintf("iteration=%d energy=%.6f accepted=%t",
		info.Iteration, info.LatestAcceptedEnergy, info.IsAccepted)
	return atoms.WriteXYZFrame(o.f, frame, comment)
}

// Close releases the underlying file, if open.
func (o *TrajectoryObserver) Close() error {
	if o.f == nil {
		return nil
	}
	err := o.f.Close()
	o.f = nil
	return err
}
