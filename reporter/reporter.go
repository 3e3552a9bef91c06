// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

import (
	"fmt"
	"sync"

	"github.com/pb1729/html-math/ast"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, compilation will abort with that error. If the
// reporter returns nil, compilation of other formulas will continue, so that
// as many errors as possible are reported.
//
// A formula that failed never produces output, whatever the reporter returns.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. This is used
// for indicating non-error messages to the calling program for things that do
// not cause the compile to fail but are likely mistakes, such as a call of an
// unknown macro. Though they are just warnings, the details are supplied to
// the reporter via an error type.
type WarningReporter func(ErrorWithPos)

// Reporter is a type that handles reporting both errors and warnings.
type Reporter interface {
	// Error is called when the given error is encountered and will result in a
	// formula failing to compile. If this function returns non-nil then the
	// compilation operation will abort immediately with the given error.
	Error(ErrorWithPos) error
	// Warning is called when the given warning is encountered.
	Warning(ErrorWithPos)
}

// NewReporter creates a new reporter that invokes the given functions on
// error or warning. A nil errs fails on the first error; a nil warnings
// ignores warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler is used by the compiler to handle errors and warnings. It is safe
// for concurrent use, so one handler may serve formulas compiled in parallel.
type Handler struct {
	reporter Reporter
	parent   *Handler

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a new Handler that reports errors and warnings using
// the given reporter. A nil reporter fails on the first error.
func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

// HandleErrorf handles an error with the given source position, creating
// the error using the given message format and arguments.
func (h *Handler) HandleErrorf(pos ast.SourcePos, format string, args ...any) error {
	return h.HandleError(Error(pos, fmt.Errorf(format, args...)))
}

// HandleError handles the given error. If the given err is an ErrorWithPos,
// it is reported, and this function returns the error returned by the
// reporter. If the given err is NOT an ErrorWithPos, the current operation
// will abort immediately with that error.
//
// If the handler has already aborted (by returning a non-nil error from a
// prior call), that same error is returned.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if _, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
	}
	if h.parent != nil {
		err = h.parent.forward(err)
	} else if ewp, ok := err.(ErrorWithPos); ok {
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// SubHandler returns a handler for one unit of work, such as one formula of
// a batch. It reports through h's reporter, and h records everything it
// handles, but its own result only reflects its own errors. Once h has
// aborted, errors of other units are no longer reported; each unit still
// fails with its own error.
func (h *Handler) SubHandler() *Handler {
	parent := h
	if h.parent != nil {
		parent = h.parent
	}
	return &Handler{reporter: h.reporter, parent: parent}
}

// forward handles an error on behalf of a sub-handler. Once h has aborted,
// the reporter is not called again and err is returned as is.
func (h *Handler) forward(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

// HandleWarning handles a warning with the given source position. This will
// delegate to the handler's configured reporter.
func (h *Handler) HandleWarning(pos ast.SourcePos, err error) {
	// no need for lock; warnings don't interact with mutable fields
	h.reporter.Warning(Error(pos, err))
}

// Error returns the handler result. If any errors have been reported then
// this returns a non-nil error. If the reporter never returned a non-nil
// error then ErrInvalidSource is returned. Otherwise, this returns the error
// returned by the handler's reporter (the same value returned by
// ReporterError).
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the handler's reporter. If
// the reporter has either not been invoked (no errors handled) or has not
// returned any non-nil value, then this returns nil.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
