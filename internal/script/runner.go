// Package script runs custom-code nodes in an embedded Go interpreter.
// Each run gets a fresh interpreter with only the drawing helper API
// exposed; scripts cannot import packages, touch the filesystem, or
// outlive their deadline.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/cogentcore/yaegi/interp"
	"go.trai.ch/zerr"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
	"github.com/BauhouseConsortium/nirmanaflow/internal/core/ports"
)

// DefaultTimeout bounds a script run when the node does not set one.
const DefaultTimeout = 2 * time.Second

type Runner struct{}

var _ ports.CodeRunner = (*Runner)(nil)

func NewRunner() *Runner { return &Runner{} }

// Run compiles the script body as the render function and invokes it
// with the upstream paths. Compile failures map to ErrParse, panics and
// bad return values to ErrRuntime, and deadline hits to ErrTimeout.
func (r *Runner) Run(ctx context.Context, src string, input domain.PathSet, timeout time.Duration) (out domain.PathSet, err error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			out = nil
			err = zerr.With(zerr.Wrap(domain.ErrRuntime, "script panicked"), "panic", fmt.Sprint(rec))
		}
	}()

	i := interp.New(interp.Options{})
	if uerr := i.Use(exports(input)); uerr != nil {
		return nil, zerr.Wrap(uerr, "installing script API")
	}

	// The definition and the call below must share the interpreter's
	// default package, so the body is evaluated without a package clause.
	program := "func render(input PathSet) PathSet {\n" + src + "\n}\n"
	if _, cerr := i.EvalWithContext(ctx, program); cerr != nil {
		if ctx.Err() != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrTimeout, "script deadline exceeded"), "timeout", timeout.String())
		}
		return nil, zerr.Wrap(domain.ErrParse, cerr.Error())
	}

	v, rerr := i.EvalWithContext(ctx, "render(Input())")
	if rerr != nil {
		if ctx.Err() != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrTimeout, "script deadline exceeded"), "timeout", timeout.String())
		}
		return nil, zerr.Wrap(domain.ErrRuntime, rerr.Error())
	}
	paths, ok := v.Interface().(domain.PathSet)
	if !ok {
		return nil, zerr.Wrap(domain.ErrRuntime, fmt.Sprintf("script returned %T, want PathSet", v.Interface()))
	}
	return paths, nil
}
