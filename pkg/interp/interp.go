// Package interp wires the Mython lexer, parser, and executor into a
// ready-to-use interpreter.
package interp

import (
	"errors"
	"io"
	"os"

	"github.com/mython-lang/mython/pkg/ast"
	"github.com/mython-lang/mython/pkg/parser"
	"github.com/mython-lang/mython/pkg/runtime"
)

// Interpreter executes Mython programs against a configured output sink.
type Interpreter struct {
	out io.Writer
}

// Option is a functional option for configuring the Interpreter.
type Option func(*Interpreter)

// WithOutput sets the output sink for print statements. The default is
// standard output.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) {
		ip.out = w
	}
}

// New creates a new Interpreter with the given options.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{out: os.Stdout}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// Run parses and executes a Mython program read from r. Program output goes
// to the configured sink; lex, parse, and runtime failures are returned as
// errors.
func (ip *Interpreter) Run(r io.Reader) error {
	prog, err := parser.Parse(r)
	if err != nil {
		return err
	}
	return ip.RunProgram(prog)
}

// RunProgram executes an already-parsed program in a fresh top-level scope.
func (ip *Interpreter) RunProgram(prog ast.Statement) error {
	closure := runtime.Closure{}
	ctx := runtime.NewContext(ip.out)
	if _, err := prog.Execute(closure, ctx); err != nil {
		var sig *ast.ReturnSignal
		if errors.As(err, &sig) {
			return runtime.NewError("return outside of a method body")
		}
		return err
	}
	return nil
}

// Check parses a Mython program without executing it.
func (ip *Interpreter) Check(r io.Reader) error {
	_, err := parser.Parse(r)
	return err
}
