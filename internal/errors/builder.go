package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InternalError is the error type produced by this package. It carries an
// operator-facing hint and optional reportable details alongside the wrapped
// cause, and is classified by marking it with one of the package marker errors.
type InternalError struct {
	err               error
	hint              string
	reportableDetails map[string]interface{}
	marker            error
}

func (e *InternalError) Error() string {
	if e.err == nil {
		return e.hint
	}
	return e.err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.err
}

// Is matches the attached marker as well as the wrapped chain.
func (e *InternalError) Is(target error) bool {
	if e.marker != nil && errors.Is(e.marker, target) {
		return true
	}
	return false
}

// Hint returns the operator-facing hint attached to the error, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to surface to API clients.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// ErrorBuilder builds an InternalError fluently. Terminate the chain with
// Mark() to classify the error, e.g.:
//
//	return ierr.NewError("subscription not found").
//		WithHint("No subscription exists with the given ID").
//		Mark(ierr.ErrNotFound)
type ErrorBuilder struct {
	e *InternalError
}

// NewError starts a builder from a new error message.
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{e: &InternalError{err: errors.New(msg)}}
}

// NewErrorf starts a builder from a formatted error message.
func NewErrorf(format string, args ...interface{}) *ErrorBuilder {
	return &ErrorBuilder{e: &InternalError{err: errors.Newf(format, args...)}}
}

// WithError starts a builder wrapping an existing error.
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{e: &InternalError{err: err}}
}

// WithHint attaches an operator-facing hint.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.e.hint = hint
	return b
}

// WithHintf attaches a formatted operator-facing hint.
func (b *ErrorBuilder) WithHintf(format string, args ...interface{}) *ErrorBuilder {
	b.e.hint = fmt.Sprintf(format, args...)
	return b
}

// WithMessage wraps the underlying error with an additional message.
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.e.err = errors.WithMessage(b.e.err, msg)
	return b
}

// WithReportableDetails attaches structured details that are safe to expose
// in API error responses.
func (b *ErrorBuilder) WithReportableDetails(details map[string]interface{}) *ErrorBuilder {
	b.e.reportableDetails = details
	return b
}

// Mark classifies the error with one of the package marker errors and
// finalizes the builder.
func (b *ErrorBuilder) Mark(marker error) error {
	b.e.marker = marker
	return b.e
}
