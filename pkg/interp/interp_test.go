package interp

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/mython-lang/mython/internal/testutil"
	"github.com/mython-lang/mython/pkg/lexer"
	"github.com/mython-lang/mython/pkg/parser"
	"github.com/mython-lang/mython/pkg/runtime"
)

func runSource(t *testing.T, source string) string {
	t.Helper()
	var out bytes.Buffer
	ip := New(WithOutput(&out))
	if err := ip.Run(strings.NewReader(source)); err != nil {
		t.Fatalf("run error: %v", err)
	}
	return out.String()
}

func runError(t *testing.T, source string) error {
	t.Helper()
	var out bytes.Buffer
	ip := New(WithOutput(&out))
	err := ip.Run(strings.NewReader(source))
	if err == nil {
		t.Fatalf("expected an error for source %q", source)
	}
	return err
}

// ---------------------------------------------------------------------------
// Test: end-to-end programs
// ---------------------------------------------------------------------------
func TestPrograms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			"arithmetic precedence",
			"print 1 + 2 * 3\n",
			"7\n",
		},
		{
			"string concatenation",
			"x = 'hello'\n" +
				"y = ' world'\n" +
				"print x + y\n",
			"hello world\n",
		},
		{
			"counter class",
			"class Counter:\n" +
				"  def __init__(self, n):\n" +
				"    self.n = n\n" +
				"  def inc(self):\n" +
				"    self.n = self.n + 1\n" +
				"c = Counter(5)\n" +
				"c.inc()\n" +
				"c.inc()\n" +
				"print c.n\n",
			"7\n",
		},
		{
			"method override",
			"class A:\n" +
				"  def f(self):\n" +
				"    return 1\n" +
				"class B(A):\n" +
				"  def f(self):\n" +
				"    return 2\n" +
				"b = B()\n" +
				"print b.f()\n",
			"2\n",
		},
		{
			"if else",
			"if 0:\n" +
				"  print 'no'\n" +
				"else:\n" +
				"  print 'yes'\n",
			"yes\n",
		},
		{
			"stringify none",
			"print str(None) + '!'\n",
			"None!\n",
		},
		{
			"grandparent method",
			"class A:\n" +
				"  def hello(self):\n" +
				"    return 'hi'\n" +
				"class B(A):\n" +
				"  def noop(self):\n" +
				"    return None\n" +
				"class C(B):\n" +
				"  def noop2(self):\n" +
				"    return None\n" +
				"c = C()\n" +
				"print c.hello()\n",
			"hi\n",
		},
		{
			"str dunder",
			"class Point:\n" +
				"  def __init__(self, x, y):\n" +
				"    self.x = x\n" +
				"    self.y = y\n" +
				"  def __str__(self):\n" +
				"    return '(' + str(self.x) + ', ' + str(self.y) + ')'\n" +
				"p = Point(1, 2)\n" +
				"print p\n",
			"(1, 2)\n",
		},
		{
			"eq and lt forwarding",
			"class Box:\n" +
				"  def __init__(self, v):\n" +
				"    self.v = v\n" +
				"  def __eq__(self, other):\n" +
				"    return self.v == other.v\n" +
				"  def __lt__(self, other):\n" +
				"    return self.v < other.v\n" +
				"a = Box(1)\n" +
				"b = Box(2)\n" +
				"print a == b, a < b, a != b, a > b, a <= b, a >= b\n",
			"False True True False True False\n",
		},
		{
			"and evaluates both operands",
			"class Talker:\n" +
				"  def speak(self):\n" +
				"    print 'spoke'\n" +
				"    return 1\n" +
				"t = Talker()\n" +
				"x = 0 and t.speak()\n" +
				"print x\n",
			"spoke\nFalse\n",
		},
		{
			"or short circuits",
			"class Talker:\n" +
				"  def speak(self):\n" +
				"    print 'spoke'\n" +
				"    return 1\n" +
				"t = Talker()\n" +
				"x = 1 or t.speak()\n" +
				"print x\n",
			"True\n",
		},
		{
			"comments and blank lines",
			"# header comment\n" +
				"x = 1\n" +
				"\n" +
				"if x:\n" +
				"  # indented comment\n" +
				"  print 'ok'\n",
			"ok\n",
		},
		{
			"print multiple values",
			"print 1, 'two', True, None\n",
			"1 two True None\n",
		},
		{
			"print class value",
			"class Empty:\n" +
				"  def noop(self):\n" +
				"    return None\n" +
				"print Empty\n",
			"Class Empty\n",
		},
		{
			"nested method calls",
			"class Fib:\n" +
				"  def calc(self, n):\n" +
				"    if n < 2:\n" +
				"      return n\n" +
				"    return self.calc(n - 1) + self.calc(n - 2)\n" +
				"f = Fib()\n" +
				"print f.calc(10)\n",
			"55\n",
		},
		{
			"add dunder",
			"class Vec:\n" +
				"  def __init__(self, x):\n" +
				"    self.x = x\n" +
				"  def __add__(self, other):\n" +
				"    return self.x + other.x\n" +
				"print Vec(1) + Vec(2)\n",
			"3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := runSource(t, tt.source); got != tt.want {
				t.Errorf("output:\n%q\nwant:\n%q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Test: error surfacing
// ---------------------------------------------------------------------------
func TestRuntimeErrors(t *testing.T) {
	sources := map[string]string{
		"unknown variable":    "print missing\n",
		"division by zero":    "print 1 / 0\n",
		"type mismatch":       "print 1 + 'x'\n",
		"missing method":      "class C:\n  def f(self):\n    return 1\nc = C()\nc.g()\n",
		"top-level return":    "return 1\n",
		"incomparable values": "print 1 < 'x'\n",
	}

	for name, source := range sources {
		t.Run(name, func(t *testing.T) {
			err := runError(t, source)
			var rtErr *runtime.Error
			if !errors.As(err, &rtErr) {
				t.Errorf("expected runtime error, got %T: %v", err, err)
			}
		})
	}
}

func TestLexAndParseErrors(t *testing.T) {
	var lexErr *lexer.Error
	if err := runError(t, "x = 'oops\n"); !errors.As(err, &lexErr) {
		t.Errorf("expected lex error, got %v", err)
	}

	var parseErr *parser.Error
	if err := runError(t, "x = notaclass()\n"); !errors.As(err, &parseErr) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestCheckDoesNotExecute(t *testing.T) {
	var out bytes.Buffer
	ip := New(WithOutput(&out))
	if err := ip.Check(strings.NewReader("print 'side effect'\n")); err != nil {
		t.Fatalf("check error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("check produced output: %q", out.String())
	}
}

// ---------------------------------------------------------------------------
// Test: golden programs under testdata/
// ---------------------------------------------------------------------------
func TestGoldenPrograms(t *testing.T) {
	for _, program := range testutil.ListPrograms(t, "testdata") {
		program := program
		t.Run(program, func(t *testing.T) {
			source, err := os.ReadFile(program)
			if err != nil {
				t.Fatalf("reading %s: %v", program, err)
			}
			var out bytes.Buffer
			ip := New(WithOutput(&out))
			if err := ip.Run(bytes.NewReader(source)); err != nil {
				t.Fatalf("running %s: %v", program, err)
			}
			testutil.CheckGolden(t, program, out.String())
		})
	}
}
