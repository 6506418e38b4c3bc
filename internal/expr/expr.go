// Package expr compiles JavaScript expressions in x into calculus functions.
//
// Expressions run in a sandboxed goja runtime with the Math functions available
// as bare names (sin, cos, sqrt, ln, pi, e, ...). The ^ operator means
// exponentiation, so "x^2" and "x**2" are the same expression, and a leading minus
// binds looser than it: "-x^2" is -(x^2).
package expr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/averycrespi/calculatte-mcp/pkg/calculus"

	"github.com/dop251/goja"
)

// Point where a freshly compiled expression is evaluated once to surface unknown names
const probePoint = 0.5

// probeTimeout bounds the trial evaluation done at compile time and constant evaluations
var probeTimeout = time.Second

const prelude = `
var sin = Math.sin, cos = Math.cos, tan = Math.tan;
var asin = Math.asin, acos = Math.acos, atan = Math.atan, atan2 = Math.atan2;
var sinh = Math.sinh, cosh = Math.cosh, tanh = Math.tanh;
var exp = Math.exp, log = Math.log, ln = Math.log, log10 = Math.log10, log2 = Math.log2;
var sqrt = Math.sqrt, cbrt = Math.cbrt, abs = Math.abs, pow = Math.pow, sign = Math.sign;
var floor = Math.floor, ceil = Math.ceil, round = Math.round, min = Math.min, max = Math.max;
var pi = Math.PI, PI = Math.PI, e = Math.E, E = Math.E;
`

// Expression is a compiled function of x. It owns a private runtime and must not
// be evaluated from more than one goroutine at a time.
type Expression struct {
	source string
	vm     *goja.Runtime
	fn     goja.Callable
}

// Compile parses src as a JavaScript expression in x
func Compile(src string) (*Expression, error) {
	source := strings.TrimSpace(src)
	if source == "" {
		return nil, &CompileError{Expression: src, Err: errors.New("expression is empty")}
	}

	vm, err := newRuntime()
	if err != nil {
		return nil, err
	}

	wrapped := "(function (x) {\n\"use strict\";\nreturn (" + translate(source) + "\n);\n})"
	program, err := goja.Compile("expression", wrapped, true)
	if err != nil {
		return nil, &CompileError{Expression: source, Err: err}
	}
	value, err := vm.RunProgram(program)
	if err != nil {
		return nil, &CompileError{Expression: source, Err: err}
	}
	fn, ok := goja.AssertFunction(value)
	if !ok {
		return nil, &CompileError{Expression: source, Err: errors.New("expression is not callable")}
	}

	e := &Expression{source: source, vm: vm, fn: fn}
	if err := e.probe(); err != nil {
		return nil, &CompileError{Expression: source, Err: err}
	}
	return e, nil
}

// MustCompile is like Compile but panics on error
func MustCompile(src string) *Expression {
	e, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return e
}

// String returns the expression source
func (e *Expression) String() string {
	return e.source
}

// Eval evaluates the expression at x. Exceptions thrown by the expression yield NaN.
func (e *Expression) Eval(x float64) float64 {
	v, err := e.fn(goja.Undefined(), e.vm.ToValue(x))
	if err != nil {
		return math.NaN()
	}
	return v.ToFloat()
}

// Function returns the expression as a calculus.Function
func (e *Expression) Function() calculus.Function {
	return e.Eval
}

// Bind returns the expression as a calculus.Function that yields NaN once ctx is done,
// interrupting an evaluation already in progress. Call release when evaluation is over.
func (e *Expression) Bind(ctx context.Context) (f calculus.Function, release func()) {
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	f = func(x float64) float64 {
		if ctx.Err() != nil {
			return math.NaN()
		}
		return e.Eval(x)
	}
	return f, func() { close(done) }
}

// probe runs the expression once so that references to unknown names fail at compile time
func (e *Expression) probe() error {
	timer := time.AfterFunc(probeTimeout, func() {
		e.vm.Interrupt("evaluation did not finish")
	})
	_, err := e.fn(goja.Undefined(), e.vm.ToValue(probePoint))
	if !timer.Stop() {
		return fmt.Errorf("evaluation did not finish within %s", probeTimeout)
	}

	var exception *goja.Exception
	if errors.As(err, &exception) && exception.Value() != nil {
		if msg := exception.Value().String(); strings.HasPrefix(msg, "ReferenceError") {
			return errors.New(msg)
		}
	}
	return nil
}

// Evaluate computes a constant expression such as "2*pi" or "-inf". The evaluation is
// interrupted once ctx is done or probeTimeout has passed.
func Evaluate(ctx context.Context, src string) (float64, error) {
	source := strings.TrimSpace(src)
	if v, err := strconv.ParseFloat(source, 64); err == nil && !math.IsNaN(v) {
		return v, nil
	}
	if source == "" {
		return 0, &CompileError{Expression: src, Err: errors.New("expression is empty")}
	}

	vm, err := newRuntime()
	if err != nil {
		return 0, err
	}
	stop := context.AfterFunc(ctx, func() { vm.Interrupt(ctx.Err()) })
	defer stop()
	timer := time.AfterFunc(probeTimeout, func() {
		vm.Interrupt(fmt.Sprintf("exceeded %s", probeTimeout))
	})
	defer timer.Stop()

	value, err := vm.RunString("(" + translate(source) + "\n)")
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return 0, &CompileError{Expression: source, Err: fmt.Errorf("evaluation did not finish: %v", interrupted.Value())}
	}
	if err != nil {
		return 0, &CompileError{Expression: source, Err: err}
	}

	v := value.ToFloat()
	if math.IsNaN(v) {
		return 0, &CompileError{Expression: source, Err: errors.New("does not evaluate to a number")}
	}
	return v, nil
}

// translate turns ^ into ** and rewrites unary minus as (-1)* so that -x^2 reads as -(x^2).
// A minus directly after ** is kept, since x**-2 is already valid.
func translate(source string) string {
	source = strings.ReplaceAll(source, "^", "**")

	var b strings.Builder
	for i := 0; i < len(source); i++ {
		if source[i] == '-' && isUnaryMinus(source, i) {
			b.WriteString("(-1)*")
			continue
		}
		b.WriteByte(source[i])
	}
	return b.String()
}

func isUnaryMinus(source string, i int) bool {
	j := i - 1
	for j >= 0 && strings.IndexByte(" \t\r\n", source[j]) >= 0 {
		j--
	}
	if j < 0 {
		return true
	}

	switch source[j] {
	case '*':
		return j == 0 || source[j-1] != '*'
	case '(', '[', ',', '+', '-', '/', '%', '<', '>', '=', '!', '&', '|', '?', ':':
		return true
	default:
		return false
	}
}

func newRuntime() (*goja.Runtime, error) {
	vm := goja.New()
	vm.SetMaxCallStackSize(1024)

	for _, name := range []string{"require", "process", "module", "exports"} {
		if err := vm.Set(name, goja.Undefined()); err != nil {
			return nil, fmt.Errorf("failed to clear global %s: %w", name, err)
		}
	}
	if _, err := vm.RunString(prelude); err != nil {
		return nil, fmt.Errorf("failed to load math prelude: %w", err)
	}
	return vm, nil
}
