package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/internal/config"
)

type evalOptions struct {
	in     string
	lines  bool
	format string
	echo   bool
}

// source is one expression to evaluate and where it came from.
type source struct {
	name string
	text string
}

func newEvalCmd(a *app) *cobra.Command {
	var o evalOptions
	cmd := &cobra.Command{
		Use:   "eval [expr ...]",
		Short: "Evaluate expressions",
		Long: `Evaluate each argument as an expression and print the results.

With no arguments, the whole of standard input is one expression, or each
line is one expression with --lines. Expressions from --in are evaluated
before those given as arguments.`,
		Example: `  calc eval "2 + 3 * 4"
  calc eval --echo "10/2-3" "8-3-2"
  printf '1+1\n2*3\n' | calc eval -n`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEval(cmd, &o, args)
		},
	}
	cmd.Flags().StringVar(&o.in, "in", "", "input file (default stdin if no args given; - for stdin)")
	cmd.Flags().BoolVarP(&o.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	cmd.Flags().StringVar(&o.format, "fmt", "", "result formatting verb (default from config, %g)")
	cmd.Flags().BoolVar(&o.echo, "echo", false, "print the postfix form of each expression")
	return cmd
}

func (a *app) runEval(cmd *cobra.Command, o *evalOptions, args []string) error {
	format := a.cfg.Output.Format
	if o.format != "" {
		if err := config.ValidateFormat(o.format); err != nil {
			return err
		}
		format = o.format
	}
	echo := o.echo || a.cfg.Output.Echo

	srcs, err := o.sources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	failed := 0
	for _, src := range srcs {
		e, err := calc.CompileString(src.text)
		var r float64
		if err == nil {
			r, err = e.Eval()
		}
		if err != nil {
			failed++
			a.logger.Debug("evaluation failed", "source", src.name, "kind", calc.KindOf(err), "error", err)
			fmt.Fprintln(errOut, a.describe(src.name, src.text, err))
			continue
		}
		a.logger.Debug("evaluated", "source", src.name, "postfix", e.String(), "result", r)
		if echo {
			fmt.Fprint(out, a.render(echoStyle, e.String()+" : "))
		}
		fmt.Fprintf(out, format+"\n", r)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(srcs))
	}
	return nil
}

// sources collects the expressions to evaluate, in order.
func (o *evalOptions) sources(stdin io.Reader, args []string) ([]source, error) {
	var srcs []source
	in, name, err := o.input(stdin, len(args) == 0)
	if err != nil {
		return nil, err
	}
	if in != nil {
		s, err := readSources(in, name, o.lines)
		in.Close()
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s...)
	}
	for i, arg := range args {
		srcs = append(srcs, source{name: "arg " + strconv.Itoa(i+1), text: arg})
	}
	return srcs, nil
}

func (o *evalOptions) input(stdin io.Reader, std bool) (io.ReadCloser, string, error) {
	switch {
	case o.in != "" && o.in != "-":
		f, err := os.Open(o.in)
		if err != nil {
			return nil, "", err
		}
		return f, o.in, nil
	case o.in == "-", std:
		return io.NopCloser(stdin), "stdin", nil
	}
	return nil, "", nil
}

func readSources(in io.Reader, name string, lines bool) ([]source, error) {
	if !lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		return []source{{name: name, text: string(b)}}, nil
	}
	var srcs []source
	scan := bufio.NewScanner(in)
	for n := 1; scan.Scan(); n++ {
		line := scan.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		srcs = append(srcs, source{name: name + ":" + strconv.Itoa(n), text: line})
	}
	return srcs, scan.Err()
}
