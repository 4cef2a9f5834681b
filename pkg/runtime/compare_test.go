package runtime

import (
	"testing"
)

// boolMethod builds a single-parameter method returning a fixed Bool.
func boolMethod(name string, result bool) Method {
	return Method{
		Name:         name,
		FormalParams: []string{"other"},
		Body:         constBody(Own(NewBool(result))),
	}
}

// ---------------------------------------------------------------------------
// Test: Equal and Less over primitive values
// ---------------------------------------------------------------------------
func TestEqualPrimitives(t *testing.T) {
	ctx := &CaptureContext{}
	tests := []struct {
		name     string
		lhs, rhs ObjectHolder
		want     bool
	}{
		{"none none", None(), None(), true},
		{"equal numbers", Own(NewNumber(3)), Own(NewNumber(3)), true},
		{"unequal numbers", Own(NewNumber(3)), Own(NewNumber(4)), false},
		{"equal strings", Own(NewString("ab")), Own(NewString("ab")), true},
		{"unequal strings", Own(NewString("ab")), Own(NewString("ba")), false},
		{"equal bools", Own(NewBool(true)), Own(NewBool(true)), true},
		{"unequal bools", Own(NewBool(true)), Own(NewBool(false)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal(tt.lhs, tt.rhs, ctx)
			if err != nil {
				t.Fatalf("Equal: %v", err)
			}
			if got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLessPrimitives(t *testing.T) {
	ctx := &CaptureContext{}
	tests := []struct {
		name     string
		lhs, rhs ObjectHolder
		want     bool
	}{
		{"number less", Own(NewNumber(2)), Own(NewNumber(3)), true},
		{"number equal", Own(NewNumber(3)), Own(NewNumber(3)), false},
		{"number greater", Own(NewNumber(4)), Own(NewNumber(3)), false},
		{"string less", Own(NewString("abc")), Own(NewString("abd")), true},
		{"string prefix", Own(NewString("ab")), Own(NewString("abc")), true},
		{"false less than true", Own(NewBool(false)), Own(NewBool(true)), true},
		{"true not less than false", Own(NewBool(true)), Own(NewBool(false)), false},
		{"true not less than true", Own(NewBool(true)), Own(NewBool(true)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Less(tt.lhs, tt.rhs, ctx)
			if err != nil {
				t.Fatalf("Less: %v", err)
			}
			if got != tt.want {
				t.Errorf("Less = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareTypeMismatch(t *testing.T) {
	ctx := &CaptureContext{}
	pairs := []struct {
		name     string
		lhs, rhs ObjectHolder
	}{
		{"number vs string", Own(NewNumber(1)), Own(NewString("1"))},
		{"number vs bool", Own(NewNumber(1)), Own(NewBool(true))},
		{"bool vs number", Own(NewBool(true)), Own(NewNumber(1))},
		{"none vs number", None(), Own(NewNumber(0))},
		{"plain instance vs number", Own(NewInstance(NewClass("C", nil, nil))), Own(NewNumber(0))},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Equal(tt.lhs, tt.rhs, ctx); err == nil {
				t.Error("Equal should fail")
			}
			if _, err := Less(tt.lhs, tt.rhs, ctx); err == nil {
				t.Error("Less should fail")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: user-defined __eq__ / __lt__
// ---------------------------------------------------------------------------
func TestEqualForwardsToUserMethod(t *testing.T) {
	ctx := &CaptureContext{}
	cls := NewClass("C", []Method{boolMethod("__eq__", true)}, nil)
	inst := Own(NewInstance(cls))

	got, err := Equal(inst, Own(NewNumber(5)), ctx)
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !got {
		t.Error("Equal did not forward to __eq__")
	}
}

func TestLessForwardsToUserMethod(t *testing.T) {
	ctx := &CaptureContext{}
	cls := NewClass("C", []Method{boolMethod("__lt__", false)}, nil)
	inst := Own(NewInstance(cls))

	got, err := Less(inst, Own(NewNumber(5)), ctx)
	if err != nil {
		t.Fatalf("Less: %v", err)
	}
	if got {
		t.Error("Less did not forward to __lt__")
	}
}

func TestUserMethodOnlyOnLeftSide(t *testing.T) {
	ctx := &CaptureContext{}
	cls := NewClass("C", []Method{boolMethod("__eq__", true)}, nil)
	inst := Own(NewInstance(cls))

	// __eq__ on the right operand is never consulted.
	if _, err := Equal(Own(NewNumber(5)), inst, ctx); err == nil {
		t.Error("Equal with instance on the right should fail")
	}
}

func TestComparisonResultMustBeBool(t *testing.T) {
	ctx := &CaptureContext{}
	cls := NewClass("C", []Method{
		{Name: "__eq__", FormalParams: []string{"other"}, Body: constBody(Own(NewNumber(1)))},
	}, nil)
	inst := Own(NewInstance(cls))

	if _, err := Equal(inst, Own(NewNumber(5)), ctx); err == nil {
		t.Error("non-Bool __eq__ result should be a runtime error")
	}
}

// ---------------------------------------------------------------------------
// Test: derived operators
// ---------------------------------------------------------------------------
func TestDerivedOperators(t *testing.T) {
	ctx := &CaptureContext{}
	values := []ObjectHolder{
		Own(NewNumber(1)),
		Own(NewNumber(2)),
		Own(NewNumber(2)),
		Own(NewString("a")),
		Own(NewString("b")),
		Own(NewBool(false)),
		Own(NewBool(true)),
	}

	// Identities hold wherever Equal and Less are both defined.
	for _, lhs := range values {
		for _, rhs := range values {
			eq, errEq := Equal(lhs, rhs, ctx)
			less, errLess := Less(lhs, rhs, ctx)
			if errEq != nil || errLess != nil {
				continue
			}

			if got, err := NotEqual(lhs, rhs, ctx); err != nil || got != !eq {
				t.Errorf("NotEqual mismatch: got (%v, %v), want %v", got, err, !eq)
			}
			if got, err := Greater(lhs, rhs, ctx); err != nil || got != !(less || eq) {
				t.Errorf("Greater mismatch: got (%v, %v), want %v", got, err, !(less || eq))
			}
			if got, err := LessOrEqual(lhs, rhs, ctx); err != nil || got != (less || eq) {
				t.Errorf("LessOrEqual mismatch: got (%v, %v), want %v", got, err, less || eq)
			}
			if got, err := GreaterOrEqual(lhs, rhs, ctx); err != nil || got != !less {
				t.Errorf("GreaterOrEqual mismatch: got (%v, %v), want %v", got, err, !less)
			}
		}
	}
}

func TestEqualIsReflexive(t *testing.T) {
	ctx := &CaptureContext{}
	values := []ObjectHolder{
		None(),
		Own(NewNumber(0)),
		Own(NewNumber(-7)),
		Own(NewString("")),
		Own(NewString("x")),
		Own(NewBool(false)),
		Own(NewBool(true)),
	}
	for _, v := range values {
		got, err := Equal(v, v, ctx)
		if err != nil {
			t.Fatalf("Equal(v, v): %v", err)
		}
		if !got {
			t.Error("Equal(v, v) = false")
		}
	}
}

// GreaterOrEqual is not the negation of LessOrEqual when a custom __lt__
// exists without __eq__: Greater needs Equal, GreaterOrEqual does not.
func TestGreaterRequiresEqualRule(t *testing.T) {
	ctx := &CaptureContext{}
	cls := NewClass("C", []Method{boolMethod("__lt__", false)}, nil)
	inst := Own(NewInstance(cls))
	rhs := Own(NewNumber(5))

	if got, err := GreaterOrEqual(inst, rhs, ctx); err != nil || !got {
		t.Errorf("GreaterOrEqual = (%v, %v), want (true, nil)", got, err)
	}
	if _, err := Greater(inst, rhs, ctx); err == nil {
		t.Error("Greater should fail without an equality rule")
	}
}
