// Package runtime implements the Mython value model: dynamically typed
// values held through ObjectHolder, classes with single-inheritance method
// tables, and the polymorphic comparison operators.
package runtime

import (
	"bytes"
	"fmt"
	"io"
)

// Context carries host-supplied execution state; every Execute call receives
// one. The output sink is written by print statements and value printing.
type Context interface {
	Output() io.Writer
}

type simpleContext struct {
	out io.Writer
}

func (c *simpleContext) Output() io.Writer {
	return c.out
}

// NewContext creates a Context writing to the given sink.
func NewContext(w io.Writer) Context {
	return &simpleContext{out: w}
}

// CaptureContext is a Context accumulating output in memory. It backs the
// str() construct and is handy in tests.
type CaptureContext struct {
	buf bytes.Buffer
}

func (c *CaptureContext) Output() io.Writer {
	return &c.buf
}

// String returns everything written so far.
func (c *CaptureContext) String() string {
	return c.buf.String()
}

// Object is the interface for all Mython runtime values.
type Object interface {
	// Print writes the value's printed representation to w.
	Print(w io.Writer, ctx Context) error
	object() // sealed marker
}

// Number represents an integer value.
type Number struct {
	Value int32
}

func (*Number) object() {}

func (n *Number) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "%d", n.Value)
	return err
}

// NewNumber creates a number value.
func NewNumber(n int32) *Number {
	return &Number{Value: n}
}

// String represents a text value.
type String struct {
	Value string
}

func (*String) object() {}

func (s *String) Print(w io.Writer, _ Context) error {
	_, err := io.WriteString(w, s.Value)
	return err
}

// NewString creates a string value.
func NewString(s string) *String {
	return &String{Value: s}
}

// Bool represents a boolean value, printed as True or False.
type Bool struct {
	Value bool
}

func (*Bool) object() {}

func (b *Bool) Print(w io.Writer, _ Context) error {
	repr := "False"
	if b.Value {
		repr = "True"
	}
	_, err := io.WriteString(w, repr)
	return err
}

// NewBool creates a boolean value.
func NewBool(b bool) *Bool {
	return &Bool{Value: b}
}

// ObjectHolder is the runtime's uniform reference to a value. A holder is
// owning, borrowing, or empty. Go's garbage collector makes owning and
// borrowing holders structurally identical; the split constructors keep the
// ownership intent visible at call sites.
type ObjectHolder struct {
	obj Object
}

// Own creates a holder owning the given value.
func Own(obj Object) ObjectHolder {
	return ObjectHolder{obj: obj}
}

// Share creates a borrowing holder aliasing an object owned elsewhere.
func Share(obj Object) ObjectHolder {
	return ObjectHolder{obj: obj}
}

// None returns the empty holder.
func None() ObjectHolder {
	return ObjectHolder{}
}

// Empty reports whether the holder refers to no value.
func (h ObjectHolder) Empty() bool {
	return h.obj == nil
}

// Get returns the held object, or nil for the empty holder.
func (h ObjectHolder) Get() Object {
	return h.obj
}

// MustGet returns the held object and panics on the empty holder.
// Dereferencing an empty holder is a programmer error, not a runtime error.
func (h ObjectHolder) MustGet() Object {
	if h.obj == nil {
		panic("runtime: dereference of empty ObjectHolder")
	}
	return h.obj
}

// As returns the held value if its variant matches T.
func As[T Object](h ObjectHolder) (T, bool) {
	v, ok := h.obj.(T)
	return v, ok
}

// Closure is a lexical scope: a mapping from identifiers to holders. The
// top-level scope, per-method local scopes, and instance field scopes are
// all Closures.
type Closure map[string]ObjectHolder

// Executable is the single capability AST nodes expose to the runtime:
// method bodies stored in classes are executed through it.
type Executable interface {
	Execute(closure Closure, ctx Context) (ObjectHolder, error)
}

// IsTrue is the truthiness predicate: the empty holder is false, numbers are
// true when non-zero, strings when non-empty, class instances always.
func IsTrue(h ObjectHolder) bool {
	switch v := h.obj.(type) {
	case *Number:
		return v.Value != 0
	case *Bool:
		return v.Value
	case *String:
		return v.Value != ""
	case *ClassInstance:
		return true
	default:
		return false
	}
}
