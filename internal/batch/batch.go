// Package batch runs files of expressions with expected outcomes and reports
// which ones hold.
//
// A batch file is YAML:
//
//	name: smoke
//	cases:
//	  - name: precedence
//	    expr: "2+3*4"
//	    want: 14
//	  - name: div0
//	    expr: "5/0"
//	    error: DivisionByZero
//
// A case passes when its result equals want (within tolerance, if given) or
// when it fails with the named error kind. A case with neither expectation
// passes whenever it evaluates without error.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// File is a decoded batch file.
type File struct {
	Name  string `yaml:"name,omitempty"`
	Cases []Case `yaml:"cases"`
}

// Case is one expression and its expected outcome.
type Case struct {
	Name      string         `yaml:"name"`
	Expr      string         `yaml:"expr"`
	Want      *float64       `yaml:"want,omitempty"`
	Error     calc.ErrorKind `yaml:"error,omitempty"`
	Tolerance float64        `yaml:"tolerance,omitempty"`
}

// Load reads and decodes a batch file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a batch file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that every case is well-formed.
func (f *File) Validate() error {
	if len(f.Cases) == 0 {
		return errors.New("batch file has no cases")
	}
	seen := make(map[string]bool, len(f.Cases))
	for i, c := range f.Cases {
		switch {
		case c.Name == "":
			return fmt.Errorf("case %d has no name", i+1)
		case seen[c.Name]:
			return fmt.Errorf("case %q is defined twice", c.Name)
		case c.Want != nil && c.Error != calc.NoError:
			return fmt.Errorf("case %q expects both a value and an error", c.Name)
		case c.Error == calc.UnknownError:
			return fmt.Errorf("case %q expects %v, which evaluation never produces", c.Name, c.Error)
		case c.Tolerance < 0 || math.IsNaN(c.Tolerance):
			return fmt.Errorf("case %q has invalid tolerance %g", c.Name, c.Tolerance)
		}
		seen[c.Name] = true
	}
	return nil
}

// Result is the outcome of one case.
type Result struct {
	Name  string         `yaml:"name"`
	Expr  string         `yaml:"expr"`
	Value *float64       `yaml:"value,omitempty"`
	Kind  calc.ErrorKind `yaml:"kind,omitempty"`
	Error string         `yaml:"error,omitempty"`
	// Postfix is the compiled form of the expression, if it compiled.
	Postfix string `yaml:"postfix,omitempty"`
	Passed  bool   `yaml:"passed"`
	// Reason explains a failure.
	Reason string `yaml:"reason,omitempty"`
}

// Report summarizes a run.
type Report struct {
	RunID   string   `yaml:"run_id"`
	Name    string   `yaml:"name,omitempty"`
	Passed  int      `yaml:"passed"`
	Failed  int      `yaml:"failed"`
	Results []Result `yaml:"results"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Marshal renders the report as YAML.
func (r *Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Run evaluates every case in order. If ctx is canceled between cases, Run
// returns the partial report along with the context's error.
func Run(ctx context.Context, f *File, logger *slog.Logger) (*Report, error) {
	rep := &Report{
		RunID:   uuid.New().String(),
		Name:    f.Name,
		Results: make([]Result, 0, len(f.Cases)),
	}
	logger = logger.With("run_id", rep.RunID)
	logger.Debug("starting batch", "name", f.Name, "cases", len(f.Cases))
	for _, c := range f.Cases {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch interrupted", "done", len(rep.Results), "error", err)
			return rep, err
		}
		r := runCase(c)
		if r.Passed {
			rep.Passed++
			logger.Debug("case passed", "case", c.Name)
		} else {
			rep.Failed++
			logger.Warn("case failed", "case", c.Name, "expr", c.Expr, "reason", r.Reason)
		}
		rep.Results = append(rep.Results, r)
	}
	logger.Info("batch finished", "name", f.Name, "passed", rep.Passed, "failed", rep.Failed)
	return rep, nil
}

func runCase(c Case) Result {
	r := Result{Name: c.Name, Expr: c.Expr}
	x, err := eval(c.Expr, &r)
	if err != nil {
		r.Kind = calc.KindOf(err)
		r.Error = err.Error()
	} else {
		r.Value = &x
	}

	switch {
	case c.Error != calc.NoError:
		r.Passed = r.Kind == c.Error
		if !r.Passed {
			r.Reason = fmt.Sprintf("want error %v, got %s", c.Error, outcome(&r))
		}
	case err != nil:
		r.Reason = "unexpected error: " + r.Error
	case c.Want != nil:
		r.Passed = x == *c.Want || math.Abs(x-*c.Want) <= c.Tolerance
		if !r.Passed {
			r.Reason = fmt.Sprintf("want %g, got %g", *c.Want, x)
		}
	default:
		r.Passed = true
	}
	return r
}

func eval(src string, r *Result) (float64, error) {
	e, err := calc.CompileString(src)
	if err != nil {
		return 0, err
	}
	r.Postfix = e.String()
	return e.Eval()
}

func outcome(r *Result) string {
	if r.Value != nil {
		return fmt.Sprintf("value %g", *r.Value)
	}
	return r.Kind.String()
}
