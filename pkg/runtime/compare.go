package runtime

// Comparator is the signature shared by the comparison operators.
type Comparator func(lhs, rhs ObjectHolder, ctx Context) (bool, error)

// callBoolMethod forwards a comparison to a user-defined method (__eq__ or
// __lt__) and requires a Bool result.
func callBoolMethod(recv *ClassInstance, name string, rhs ObjectHolder, ctx Context) (bool, error) {
	res, err := recv.Call(name, []ObjectHolder{rhs}, ctx)
	if err != nil {
		return false, err
	}
	b, ok := As[*Bool](res)
	if !ok {
		return false, NewError("%s returned a non-boolean value", name)
	}
	return b.Value, nil
}

// Equal compares two values for equality. Two empty holders are equal;
// numbers, strings, and booleans compare by value; a class instance with
// __eq__ taking one argument forwards to it. Anything else cannot be
// compared.
func Equal(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if lhs.Empty() && rhs.Empty() {
		return true, nil
	}
	if l, ok := As[*Number](lhs); ok {
		if r, ok := As[*Number](rhs); ok {
			return l.Value == r.Value, nil
		}
	}
	if l, ok := As[*String](lhs); ok {
		if r, ok := As[*String](rhs); ok {
			return l.Value == r.Value, nil
		}
	}
	if l, ok := As[*Bool](lhs); ok {
		if r, ok := As[*Bool](rhs); ok {
			return l.Value == r.Value, nil
		}
	}
	if inst, ok := As[*ClassInstance](lhs); ok && inst.HasMethod("__eq__", 1) {
		return callBoolMethod(inst, "__eq__", rhs, ctx)
	}
	return false, NewError("cannot compare objects for equality")
}

// Less compares two values for ordering. Numbers, strings, and booleans
// compare by value; a class instance with __lt__ taking one argument
// forwards to it. Bool and Number never mix.
func Less(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	if l, ok := As[*Number](lhs); ok {
		if r, ok := As[*Number](rhs); ok {
			return l.Value < r.Value, nil
		}
	}
	if l, ok := As[*String](lhs); ok {
		if r, ok := As[*String](rhs); ok {
			return l.Value < r.Value, nil
		}
	}
	if l, ok := As[*Bool](lhs); ok {
		if r, ok := As[*Bool](rhs); ok {
			return !l.Value && r.Value, nil
		}
	}
	if inst, ok := As[*ClassInstance](lhs); ok && inst.HasMethod("__lt__", 1) {
		return callBoolMethod(inst, "__lt__", rhs, ctx)
	}
	return false, NewError("cannot compare objects for less")
}

// NotEqual is the negation of Equal.
func NotEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !eq, nil
}

// Greater holds when neither Less nor Equal does. Both are evaluated, so
// either side lacking a rule for the operand types raises.
func Greater(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	eq, err := Equal(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less && !eq, nil
}

// LessOrEqual holds when Less or Equal does.
func LessOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	if less {
		return true, nil
	}
	return Equal(lhs, rhs, ctx)
}

// GreaterOrEqual is the negation of Less.
func GreaterOrEqual(lhs, rhs ObjectHolder, ctx Context) (bool, error) {
	less, err := Less(lhs, rhs, ctx)
	if err != nil {
		return false, err
	}
	return !less, nil
}
