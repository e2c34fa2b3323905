// Package pipeline drives one batch run: per-line mapping, partitioning into
// valid and invalid sets, result persistence, and the run summary.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/crimson-sun/sift/internal/engine"
	"github.com/crimson-sun/sift/internal/input"
	"github.com/crimson-sun/sift/internal/model"
	"github.com/crimson-sun/sift/internal/output"
)

// badJSONReason is the single rejection reason for lines that never parsed.
const badJSONReason = "Bad JSON"

// Result holds both partitions of a run, each in input line order.
type Result struct {
	Valid   []model.UnifiedEvent
	Invalid []model.Rejection
}

// Total returns the number of processed (non-blank) lines.
func (r Result) Total() int { return len(r.Valid) + len(r.Invalid) }

// SuccessRate returns valid/(valid+invalid) as a percentage. Zero processed
// lines yield 0.
func (r Result) SuccessRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(len(r.Valid)) / float64(r.Total()) * 100
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress redirects the per-line accept/reject marks and the summary.
// Default: stderr.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) { p.progress = w }
}

// Pipeline connects the mapping engine to a result writer.
type Pipeline struct {
	engine   *engine.Engine
	writer   output.ResultWriter
	progress io.Writer
	runID    uuid.UUID
}

// New creates a Pipeline. Every run is tagged with a fresh run id for log
// correlation.
func New(eng *engine.Engine, w output.ResultWriter, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:   eng,
		writer:   w,
		progress: os.Stderr,
		runID:    uuid.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RunID returns the identifier tagged onto this pipeline's logs.
func (p *Pipeline) RunID() uuid.UUID { return p.runID }

// Run processes every line, writes both result sets, and emits the summary.
// A failure on one line never aborts the batch; only result persistence can
// return an error.
func (p *Pipeline) Run(lines []input.Line) (Result, error) {
	slog.Info("processing events", "run_id", p.runID, "lines", len(lines))

	res := p.Process(lines)
	p.summarize(res)

	if err := p.writer.WriteValid(res.Valid); err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}
	if err := p.writer.WriteInvalid(res.Invalid); err != nil {
		return res, fmt.Errorf("pipeline: %w", err)
	}

	slog.Info("run complete", "run_id", p.runID,
		"valid", len(res.Valid), "invalid", len(res.Invalid))
	return res, nil
}

// Process maps each line and partitions the outcomes, preserving input
// order in both partitions. Unparseable lines become rejections without a
// record; mapped lines either join the valid set or carry their ordered
// rejection reasons.
func (p *Pipeline) Process(lines []input.Line) Result {
	var res Result
	for _, ln := range lines {
		rec, err := model.ParseRecord(ln.Text)
		if err != nil {
			res.Invalid = append(res.Invalid, model.Rejection{
				Line:   ln.Number,
				Errors: []string{badJSONReason},
			})
			fmt.Fprintf(p.progress, "✗ Line %d: %s\n", ln.Number, badJSONReason)
			continue
		}

		ev, errs := p.engine.Map(rec, ln.Number)
		if ev != nil {
			res.Valid = append(res.Valid, *ev)
			fmt.Fprintf(p.progress, "✓ Line %d\n", ln.Number)
			continue
		}
		res.Invalid = append(res.Invalid, model.Rejection{
			Line:   ln.Number,
			Errors: errs,
			Record: rec,
		})
		fmt.Fprintf(p.progress, "✗ Line %d: %s\n", ln.Number, strings.Join(errs, ", "))
	}
	return res
}

// summarize prints the run totals and success rate to the progress channel.
func (p *Pipeline) summarize(res Result) {
	fmt.Fprintf(p.progress, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(p.progress, "Valid: %d\n", len(res.Valid))
	fmt.Fprintf(p.progress, "Invalid: %d\n", len(res.Invalid))
	if res.Total() > 0 {
		fmt.Fprintf(p.progress, "Success rate: %.1f%%\n", res.SuccessRate())
	}
}
