// Package ast defines the Mython AST nodes and their execution semantics.
// Statements and expressions share a single capability: Execute evaluates
// the node against a closure and a context, yielding an ObjectHolder.
package ast

import (
	"github.com/mython-lang/mython/pkg/runtime"
)

// Statement is the interface implemented by all AST nodes, statements and
// expressions alike.
type Statement interface {
	Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error)
}

// ReturnSignal is the control signal unwinding a method body on return. It
// travels the error channel but is not an error: MethodBody consumes it and
// yields the carried value. A signal escaping the top-level program is a
// runtime error, surfaced by the interpreter.
type ReturnSignal struct {
	Value runtime.ObjectHolder
}

func (*ReturnSignal) Error() string {
	return "return outside of a method body"
}
