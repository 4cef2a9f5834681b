package ast

import (
	"github.com/mython-lang/mython/pkg/runtime"
)

const (
	addMethod  = "__add__"
	initMethod = "__init__"
)

// VariableValue resolves a chain of dotted identifiers: x, x.y, x.y.z.
// Each resolved class instance becomes the scope for the next identifier.
type VariableValue struct {
	DottedIDs []string
}

// NewVariableValue creates a VariableValue for a single identifier.
func NewVariableValue(name string) *VariableValue {
	return &VariableValue{DottedIDs: []string{name}}
}

func (v *VariableValue) Execute(closure runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	if len(v.DottedIDs) == 0 {
		return runtime.None(), runtime.NewError("variable access without a name")
	}
	scope := closure
	var result runtime.ObjectHolder
	for _, id := range v.DottedIDs {
		val, ok := scope[id]
		if !ok {
			return runtime.None(), runtime.NewError("unknown name %q", id)
		}
		result = val
		if inst, ok := runtime.As[*runtime.ClassInstance](val); ok {
			scope = inst.Fields()
		}
	}
	return result, nil
}

// StringConst is a string literal.
type StringConst struct {
	Value string
}

func (s *StringConst) Execute(_ runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.NewString(s.Value)), nil
}

// NumberConst is an integer literal.
type NumberConst struct {
	Value int32
}

func (n *NumberConst) Execute(_ runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.NewNumber(n.Value)), nil
}

// BoolConst is a True or False literal.
type BoolConst struct {
	Value bool
}

func (b *BoolConst) Execute(_ runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.Own(runtime.NewBool(b.Value)), nil
}

// NoneConst is the None literal, evaluating to the empty holder.
type NoneConst struct{}

func (*NoneConst) Execute(_ runtime.Closure, _ runtime.Context) (runtime.ObjectHolder, error) {
	return runtime.None(), nil
}

// Stringify is the str(x) construct: the argument's printed representation
// wrapped in a String. A missing argument or an empty result stringifies to
// "None".
type Stringify struct {
	Arg Statement
}

func (s *Stringify) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	if s.Arg == nil {
		return runtime.Own(runtime.NewString("None")), nil
	}
	res, err := s.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if res.Empty() {
		return runtime.Own(runtime.NewString("None")), nil
	}
	capture := &runtime.CaptureContext{}
	if err := res.Get().Print(capture.Output(), capture); err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewString(capture.String())), nil
}

// Add computes lhs + rhs: numeric sum, string concatenation, or a forward
// to the left operand's __add__.
type Add struct {
	LHS, RHS Statement
}

func (a *Add) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalOperands(a.LHS, a.RHS, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if l, ok := runtime.As[*runtime.Number](lhs); ok {
		if r, ok := runtime.As[*runtime.Number](rhs); ok {
			return runtime.Own(runtime.NewNumber(l.Value + r.Value)), nil
		}
	}
	if l, ok := runtime.As[*runtime.String](lhs); ok {
		if r, ok := runtime.As[*runtime.String](rhs); ok {
			return runtime.Own(runtime.NewString(l.Value + r.Value)), nil
		}
	}
	if inst, ok := runtime.As[*runtime.ClassInstance](lhs); ok && inst.HasMethod(addMethod, 1) {
		return inst.Call(addMethod, []runtime.ObjectHolder{rhs}, ctx)
	}
	return runtime.None(), runtime.NewError("incompatible operand types for +")
}

// Sub computes lhs - rhs over numbers.
type Sub struct {
	LHS, RHS Statement
}

func (s *Sub) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalOperands(s.LHS, s.RHS, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if l, ok := runtime.As[*runtime.Number](lhs); ok {
		if r, ok := runtime.As[*runtime.Number](rhs); ok {
			return runtime.Own(runtime.NewNumber(l.Value - r.Value)), nil
		}
	}
	return runtime.None(), runtime.NewError("incompatible operand types for -")
}

// Mult computes lhs * rhs over numbers.
type Mult struct {
	LHS, RHS Statement
}

func (m *Mult) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalOperands(m.LHS, m.RHS, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if l, ok := runtime.As[*runtime.Number](lhs); ok {
		if r, ok := runtime.As[*runtime.Number](rhs); ok {
			return runtime.Own(runtime.NewNumber(l.Value * r.Value)), nil
		}
	}
	return runtime.None(), runtime.NewError("incompatible operand types for *")
}

// Div computes lhs / rhs over numbers. Division by zero raises.
type Div struct {
	LHS, RHS Statement
}

func (d *Div) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalOperands(d.LHS, d.RHS, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if l, ok := runtime.As[*runtime.Number](lhs); ok {
		if r, ok := runtime.As[*runtime.Number](rhs); ok {
			if r.Value == 0 {
				return runtime.None(), runtime.NewError("division by zero")
			}
			return runtime.Own(runtime.NewNumber(l.Value / r.Value)), nil
		}
	}
	return runtime.None(), runtime.NewError("incompatible operand types for /")
}

// Or computes the logical disjunction. The right operand is only evaluated
// when the left is falsy.
type Or struct {
	LHS, RHS Statement
}

func (o *Or) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := o.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	if runtime.IsTrue(lhs) {
		return runtime.Own(runtime.NewBool(true)), nil
	}
	rhs, err := o.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(runtime.IsTrue(rhs))), nil
}

// And computes the logical conjunction. Both operands are always evaluated;
// there is no short circuit.
type And struct {
	LHS, RHS Statement
}

func (a *And) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, err := a.LHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := a.RHS.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(runtime.IsTrue(lhs) && runtime.IsTrue(rhs))), nil
}

// Not computes the logical negation of its argument's truthiness.
type Not struct {
	Arg Statement
}

func (n *Not) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	arg, err := n.Arg.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(!runtime.IsTrue(arg))), nil
}

// Comparison applies a runtime comparator to its operands and wraps the
// outcome in a Bool.
type Comparison struct {
	Cmp      runtime.Comparator
	LHS, RHS Statement
}

func (c *Comparison) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	lhs, rhs, err := evalOperands(c.LHS, c.RHS, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	res, err := c.Cmp(lhs, rhs, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(runtime.NewBool(res)), nil
}

// NewInstance constructs a fresh instance of a class, invoking __init__
// when the class defines it with matching arity. The result is an owning
// holder; the caller's binding roots the instance.
type NewInstance struct {
	Class *runtime.Class
	Args  []Statement
}

func (n *NewInstance) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	inst := runtime.NewInstance(n.Class)
	if inst.HasMethod(initMethod, len(n.Args)) {
		args, err := evalArgs(n.Args, closure, ctx)
		if err != nil {
			return runtime.None(), err
		}
		if _, err := inst.Call(initMethod, args, ctx); err != nil {
			return runtime.None(), err
		}
	}
	return runtime.Own(inst), nil
}

// MethodCall invokes a method on the result of evaluating Object. A nil
// object expression, or an object that is not a class instance, yields the
// empty holder without error.
type MethodCall struct {
	Object Statement
	Method string
	Args   []Statement
}

func (m *MethodCall) Execute(closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, error) {
	if m.Object == nil {
		return runtime.None(), nil
	}
	obj, err := m.Object.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	inst, ok := runtime.As[*runtime.ClassInstance](obj)
	if !ok {
		return runtime.None(), nil
	}
	args, err := evalArgs(m.Args, closure, ctx)
	if err != nil {
		return runtime.None(), err
	}
	return inst.Call(m.Method, args, ctx)
}

func evalOperands(lhs, rhs Statement, closure runtime.Closure, ctx runtime.Context) (runtime.ObjectHolder, runtime.ObjectHolder, error) {
	if lhs == nil || rhs == nil {
		return runtime.None(), runtime.None(), runtime.NewError("missing operand")
	}
	l, err := lhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	r, err := rhs.Execute(closure, ctx)
	if err != nil {
		return runtime.None(), runtime.None(), err
	}
	return l, r, nil
}

func evalArgs(args []Statement, closure runtime.Closure, ctx runtime.Context) ([]runtime.ObjectHolder, error) {
	values := make([]runtime.ObjectHolder, 0, len(args))
	for _, arg := range args {
		v, err := arg.Execute(closure, ctx)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}
