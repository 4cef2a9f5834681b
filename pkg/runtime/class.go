package runtime

import (
	"fmt"
	"io"
)

// Method is a named method with its formal parameters and body.
type Method struct {
	Name         string
	FormalParams []string
	Body         Executable
}

// Class is a class descriptor: a name, an ordered method list, an optional
// parent, and the vtable mapping method names to entries. A class outlives
// its instances and its vtable entries.
type Class struct {
	name    string
	methods []Method
	parent  *Class
	vtable  map[string]*Method
}

func (*Class) object() {}

// NewClass creates a class descriptor. The vtable adopts the parent's
// entries first, then overlays the class's own methods; a method with the
// same name overrides the inherited one. The parent, when present, must be
// fully constructed.
func NewClass(name string, methods []Method, parent *Class) *Class {
	c := &Class{
		name:    name,
		methods: methods,
		parent:  parent,
		vtable:  make(map[string]*Method),
	}
	if parent != nil {
		for methodName, m := range parent.vtable {
			c.vtable[methodName] = m
		}
	}
	for i := range c.methods {
		c.vtable[c.methods[i].Name] = &c.methods[i]
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// GetMethod looks up a method in the vtable, own or inherited. Returns nil
// when the class has no method with that name.
func (c *Class) GetMethod(name string) *Method {
	return c.vtable[name]
}

func (c *Class) Print(w io.Writer, _ Context) error {
	_, err := fmt.Fprintf(w, "Class %s", c.name)
	return err
}

// ClassInstance is a heap object of a user-defined class. It owns its field
// scope.
type ClassInstance struct {
	class  *Class
	fields Closure
}

func (*ClassInstance) object() {}

// NewInstance creates an instance of the class with an empty field scope.
func NewInstance(c *Class) *ClassInstance {
	return &ClassInstance{class: c, fields: Closure{}}
}

// Fields returns the instance's field scope.
func (i *ClassInstance) Fields() Closure {
	return i.fields
}

// HasMethod reports whether the instance's class has a method with the
// given name taking exactly argCount arguments.
func (i *ClassInstance) HasMethod(name string, argCount int) bool {
	m := i.class.GetMethod(name)
	return m != nil && len(m.FormalParams) == argCount
}

// Call invokes the named method on the instance. The method body runs in a
// fresh closure binding self to a borrow of the receiver plus one entry per
// formal parameter.
func (i *ClassInstance) Call(name string, args []ObjectHolder, ctx Context) (ObjectHolder, error) {
	if !i.HasMethod(name, len(args)) {
		return None(), NewError("call to undefined method %s(%d args) of class %s", name, len(args), i.class.Name())
	}
	m := i.class.GetMethod(name)
	closure := Closure{"self": Share(i)}
	for idx, param := range m.FormalParams {
		closure[param] = args[idx]
	}
	return m.Body.Execute(closure, ctx)
}

// Print writes the result of __str__ when the class defines it, and a
// stable opaque identifier of the instance otherwise.
func (i *ClassInstance) Print(w io.Writer, ctx Context) error {
	if i.HasMethod("__str__", 0) {
		res, err := i.Call("__str__", nil, ctx)
		if err != nil {
			return err
		}
		if res.Empty() {
			_, err = io.WriteString(w, "None")
			return err
		}
		return res.Get().Print(w, ctx)
	}
	_, err := fmt.Fprintf(w, "%p", i)
	return err
}
