package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klytics/stampkit/internal/fs"
	"github.com/klytics/stampkit/internal/output"
	"github.com/klytics/stampkit/internal/progress"
	"github.com/klytics/stampkit/internal/stamp"
)

// Result records the outcome for one file.
type Result struct {
	File   string `json:"file"`
	Output string `json:"output,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Summary aggregates a run's per-file outcomes.
type Summary struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
}

// Runner executes a stamping request file by file, strictly sequentially.
// Per-file failures are recorded and reported; they never abort the run.
type Runner struct {
	Verbose bool
}

// Run processes the request. The returned error is reserved for failures
// that prevent the run from starting at all (for example an unscannable
// directory); per-file outcomes land in the Summary.
func (r *Runner) Run(req stamp.Request) (*Summary, error) {
	summary := &Summary{}

	if req.Source != "" {
		res := r.ProcessFile(req.Source, "", req)
		summary.record(res)
		return summary, nil
	}

	entries, err := fs.Discover(req.Directory)
	if err != nil {
		return nil, err
	}

	bar := progress.New("Stamping", len(entries))
	for i, e := range entries {
		if r.Verbose {
			fmt.Printf("[%d/%d] %s\n", i+1, len(entries), e.RelPath)
		}
		res := r.ProcessFile(e.Path, e.RelPath, req)
		summary.record(res)
		bar.Increment(filepath.Base(e.Path))
	}
	bar.Finish(fmt.Sprintf("%d succeeded, %d failed", summary.Succeeded, summary.Failed))

	return summary, nil
}

func (s *Summary) record(res Result) {
	s.Results = append(s.Results, res)
	if res.Status == "ok" {
		s.Succeeded++
	} else {
		s.Failed++
		output.WriteError("%s", res.Error)
	}
}

// ProcessFile resolves the destination and stamps a single file. Also used
// by watch mode, which produces its own file events instead of discovery.
func (r *Runner) ProcessFile(src, rel string, req stamp.Request) Result {
	dest := stamp.ResolveDest(src, rel, req.OutputDir, req.Overwrite)

	if req.OutputDir != "" {
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			werr := &stamp.WriteError{Path: dest, Err: err}
			return Result{File: src, Status: "failed", Error: werr.Error()}
		}
	}

	target := dest
	if req.Overwrite {
		target = stamp.OverwriteTmp(dest)
	}

	if err := Stamp(src, target, req.Options); err != nil {
		if req.Overwrite {
			os.Remove(target)
		}
		return Result{File: src, Status: "failed", Error: err.Error()}
	}

	if req.Overwrite {
		if err := os.Rename(target, dest); err != nil {
			os.Remove(target)
			werr := &stamp.WriteError{Path: dest, Err: err}
			return Result{File: src, Status: "failed", Error: werr.Error()}
		}
	}

	return Result{File: src, Output: dest, Status: "ok"}
}
