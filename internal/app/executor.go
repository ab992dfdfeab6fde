package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/dedication-wall/internal/platform/logging"
)

// Mutating use cases run as validate → perform → verify → archive → respond.
// Nothing is reported as done until the result has been read back and checked.

// ExecutionStep names a stage of an Operation.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError records the stage an operation failed in.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap exposes the cause so domain errors stay matchable.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// NewVerifyError creates an error for the verify step.
func NewVerifyError(message string, cause error) error {
	return &ExecutionError{Step: StepVerify, Message: message, Cause: cause}
}

// Executor runs Operations with step-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an executor. A nil logger uses slog.Default().
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation holds the stage functions of one use case. Nil stages are skipped;
// a nil Respond returns the zero O.
type Operation[I, P, V, O any] struct {
	Name     string
	Validate func(ctx context.Context, input I) error
	Perform  func(ctx context.Context, input I) (P, error)
	Verify   func(ctx context.Context, input I, performed P) (V, error)
	Archive  func(ctx context.Context, input I, verified V) error
	Respond  func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs op against input. Errors from validate, perform, verify and
// archive are wrapped in *ExecutionError; respond errors are returned as is.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var (
		zero      O
		performed P
		verified  V
	)

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		if err := op.Validate(ctx, input); err != nil {
			logger.WarnContext(ctx, "validation failed", slog.Any("error", err))

			return zero, &ExecutionError{Step: StepValidate, Message: "input rejected", Cause: err}
		}
	}

	if op.Perform != nil {
		var err error

		performed, err = op.Perform(ctx, input)
		if err != nil {
			logger.ErrorContext(ctx, "perform failed", slog.Any("error", err))

			return zero, &ExecutionError{Step: StepPerform, Message: "operation failed", Cause: err}
		}
	}

	if op.Verify != nil {
		var err error

		verified, err = op.Verify(ctx, input, performed)
		if err != nil {
			logger.ErrorContext(ctx, "verification failed", slog.Any("error", err))

			var execErr *ExecutionError
			if errors.As(err, &execErr) {
				return zero, err
			}

			return zero, NewVerifyError("result not confirmed", err)
		}
	}

	if op.Archive != nil {
		if err := op.Archive(ctx, input, verified); err != nil {
			logger.ErrorContext(ctx, "archive failed", slog.Any("error", err))

			return zero, &ExecutionError{Step: StepArchive, Message: "state persistence failed", Cause: err}
		}
	}

	result := zero

	if op.Respond != nil {
		var err error

		result, err = op.Respond(ctx, input, verified)
		if err != nil {
			logger.WarnContext(ctx, "respond failed", slog.Any("error", err))

			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep extracts the failed step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
