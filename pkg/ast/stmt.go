package ast

import (
	"errors"
	"io"

	"github.com/mython-lang/mython/pkg/runtime"
)

// Assignment binds the result of evaluating RHS to Var in the closure and
// returns the stored holder.
type Assignment struct {
	Var string
	RHS Statement
}

func (a *Assignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	val, err := a.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	closure[a.Var] = val
	return val, nil
}

// FieldAssignment stores the result of evaluating RHS into a field of the
// instance Object evaluates to. An empty object yields the empty holder.
type FieldAssignment struct {
	Object    Statement
	FieldName string
	RHS       Statement
}

func (f *FieldAssignment) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	obj, err := f.Object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if obj.Empty() {
		return runtime.None(), nil
	}
	inst, ok := runtime.As[*runtime.ClassInstance](obj)
	if !ok {
		return runtime.None(), runtime.NewError("field assignment on a value that is not a class instance")
	}
	val, err := f.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	inst.Fields()[f.FieldName] = val
	return val, nil
}

// Print evaluates its arguments and writes them to the context's output
// sink, space-separated and newline-terminated. Empty holders print as
// None.
type Print struct {
	Args []Statement
}

// PrintVariable creates a print statement for a single named variable.
func PrintVariable(name string) *Print {
	return &Print{Args: []Statement{NewVariableValue(name)}}
}

func (p *Print) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	out := ctx.Output()
	for i, arg := range p.Args {
		if i > 0 {
			if _, err := io.WriteString(out, " "); err != nil {
				return runtime.None(), err
			}
		}
		val, err := arg.Execute(closure, ctx)
		if err != nil {
			return runtime.None(), err
		}
		if val.Empty() {
			if _, err := io.WriteString(out, "None"); err != nil {
				return runtime.None(), err
			}
			continue
		}
		if err := val.Get().Print(out, ctx); err != nil {
			return runtime.None(), err
		}
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

// Compound executes a sequence of statements in order and yields the empty
// holder. Control signals and errors from children propagate.
type Compound struct {
	Statements []Statement
}

// AddStatement appends a statement to the sequence.
func (c *Compound) AddStatement(stmt Statement) {
	c.Statements = append(c.Statements, stmt)
}

func (c *Compound) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	for _, stmt := range c.Statements {
		if _, err := stmt.Execute(closure, ctx); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.None(), nil
}

// Return evaluates its expression (or the empty holder) and raises the
// return signal.
type Return struct {
	Expr Statement
}

func (r *Return) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	if r.Expr == nil {
		return runtime.None(), &ReturnSignal{Value: runtime.None()}
	}
	val, err := r.Expr.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.None(), &ReturnSignal{Value: val}
}

// ClassDefinition binds a class value to its name in the closure.
type ClassDefinition struct {
	Cls runtime.ObjectHolder
}

func (c *ClassDefinition) Execute(closure runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	cls, ok := runtime.As[*runtime.Class](c.Cls)
	if !ok {
		return runtime.None(), runtime.NewError("class definition holds no class value")
	}
	closure[cls.Name()] = c.Cls
	return runtime.None(), nil
}

// IfElse evaluates the condition and executes the branch its truthiness
// selects. A false condition with no else branch yields the empty holder.
type IfElse struct {
	Cond     Statement
	IfBody   Statement
	ElseBody Statement
}

func (s *IfElse) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	if s.Cond == nil {
		return runtime.None(), runtime.NewError("if statement without a condition")
	}
	cond, err := s.Cond.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(cond) {
		return s.IfBody.Execute(closure, ctx)
	}
	if s.ElseBody != nil {
		return s.ElseBody.Execute(closure, ctx)
	}
	return runtime.None(), nil
}

// MethodBody wraps a method's statements. It consumes the return signal and
// yields the carried value; a body completing normally yields the empty
// holder.
type MethodBody struct {
	Body Statement
}

func (m *MethodBody) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	if m.Body == nil {
		return runtime.None(), nil
	}
	if _, err := m.Body.Execute(closure, ctx); err != nil {
		var sig *ReturnSignal
		if errors.As(err, &sig) {
			return sig.Value, nil
		}
		return runtime.None(), err
	}
	return runtime.None(), nil
}
