package inquire

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-inquire/pkg/check"
	"github.com/goliatone/go-inquire/pkg/param"
	"github.com/goliatone/go-inquire/pkg/value"
)

// RegexCheck applies a declared regex_check to input without
// prompting. The input may be a raw line (string), pre-split tokens
// ([]string), or already-coerced values; raw forms run through the
// same coercion an interactive acquisition uses. A predicate rejection
// prints its message to the engine's terminal and reports ok=false;
// structural problems return an error.
func (e *Engine) RegexCheck(ctx context.Context, input any, args any) ([]Value, bool, error) {
	return e.applyCheck(ctx, param.KindRegex, input, args)
}

// ListCheck applies a declared list_check to input without prompting.
func (e *Engine) ListCheck(ctx context.Context, input any, args any) ([]Value, bool, error) {
	return e.applyCheck(ctx, param.KindList, input, args)
}

// CompareCheck applies a declared compare_check to input without
// prompting.
func (e *Engine) CompareCheck(ctx context.Context, input any, args any) ([]Value, bool, error) {
	return e.applyCheck(ctx, param.KindCompare, input, args)
}

// SQLCheck applies a declared sql_check to input without prompting.
// The declaration's query source is consulted (or the cached rows,
// when the base opted in) exactly as during an acquisition.
func (e *Engine) SQLCheck(ctx context.Context, input any, args any) ([]Value, bool, error) {
	return e.applyCheck(ctx, param.KindSQL, input, args)
}

func (e *Engine) applyCheck(ctx context.Context, key string, input any, args any) ([]Value, bool, error) {
	if err := e.ready(ctx); err != nil {
		return nil, false, err
	}
	req, err := e.resolve(args)
	if err != nil {
		return nil, false, err
	}
	chk, err := check.BuildOne(key, req, e.reg, check.Deps{Dates: e.dates})
	if err != nil {
		return nil, false, err
	}

	vals, err := e.coerceInput(input, req)
	if err != nil {
		return e.rejected(req, err)
	}
	out, err := chk.Apply(ctx, vals, req)
	if err != nil {
		return e.rejected(req, err)
	}
	return out, true, nil
}

// rejected prints a retryable failure and reports it as a plain
// negative outcome; anything else propagates as an error.
func (e *Engine) rejected(req *param.Request, err error) ([]Value, bool, error) {
	var retry *value.RetryError
	if !errors.As(err, &retry) {
		return nil, false, err
	}
	if sayErr := e.say(req, retry.Message); sayErr != nil {
		return nil, false, sayErr
	}
	return nil, false, nil
}

func (e *Engine) coerceInput(input any, req *param.Request) ([]Value, error) {
	switch in := input.(type) {
	case []Value:
		return in, nil
	case Value:
		return []Value{in}, nil
	case []string:
		return value.CoerceTokens(in, req, e.dates)
	case string:
		return value.Coerce(in, req, e.dates)
	}
	return nil, &param.ConfigError{Key: "input", Reason: fmt.Sprintf("unsupported input type %T", input)}
}
