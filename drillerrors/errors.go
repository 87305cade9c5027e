// Copyright (c) 2026 The OpenQuery Authors.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package drillerrors defines the error model shared by every public
// operation of the client: a Status carrying a Code from the error
// taxonomy plus an optional underlying cause.
package drillerrors

import (
	"errors"
	"fmt"
)

// Status is a categorized client error. It supports errors.Is, errors.As
// and errors.Unwrap against its underlying cause.
type Status struct {
	code Code
	err  error
}

// Newf returns a new Status with the given code.
//
// The Code should never be CodeOK; if it is, this returns nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}
	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}
	return &Status{code: code, err: err}
}

// Wrap returns a new Status with the given code and cause. The cause is
// reachable through errors.Unwrap.
func Wrap(code Code, cause error, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Status{code: code, err: fmt.Errorf("%s: %w", msg, cause)}
}

// FromError returns the Status for the provided error.
//
// If the error is nil, this returns nil. If the error is already a Status
// (possibly wrapped), that Status is returned. Otherwise the error is
// wrapped with CodeUnknown.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}
	var st *Status
	if errors.As(err, &st) {
		return st
	}
	return &Status{code: CodeUnknown, err: err}
}

// IsStatus returns whether the provided error is a Status, including
// wrapped errors. It is false for nil.
func IsStatus(err error) bool {
	var st *Status
	return errors.As(err, &st)
}

// Code returns the Status code, or CodeOK for nil.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// Message returns the Status message.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	return s.err.Error()
}

func (s *Status) Error() string {
	return fmt.Sprintf("code:%s message:%s", s.code, s.err.Error())
}

// Unwrap supports errors.Unwrap.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// InvalidConnectionInfoErrorf returns a CodeInvalidConnectionInfo Status.
func InvalidConnectionInfoErrorf(format string, args ...interface{}) *Status {
	return Newf(CodeInvalidConnectionInfo, format, args...)
}

// ConnectionFailureErrorf returns a CodeConnectionFailure Status.
func ConnectionFailureErrorf(format string, args ...interface{}) *Status {
	return Newf(CodeConnectionFailure, format, args...)
}

// TimeoutErrorf returns a CodeTimeout Status.
func TimeoutErrorf(format string, args ...interface{}) *Status {
	return Newf(CodeTimeout, format, args...)
}

// SerializationFailureErrorf returns a CodeSerializationFailure Status.
func SerializationFailureErrorf(format string, args ...interface{}) *Status {
	return Newf(CodeSerializationFailure, format, args...)
}

// ServerErrorf returns a CodeServerError Status.
func ServerErrorf(format string, args ...interface{}) *Status {
	return Newf(CodeServerError, format, args...)
}

// IsInvalidConnectionInfo returns true if the error has
// CodeInvalidConnectionInfo.
func IsInvalidConnectionInfo(err error) bool {
	return FromError(err).Code() == CodeInvalidConnectionInfo
}

// IsConnectionFailure returns true if the error has CodeConnectionFailure.
func IsConnectionFailure(err error) bool {
	return FromError(err).Code() == CodeConnectionFailure
}

// IsTimeout returns true if the error has CodeTimeout.
func IsTimeout(err error) bool {
	return FromError(err).Code() == CodeTimeout
}

// IsSerializationFailure returns true if the error has
// CodeSerializationFailure.
func IsSerializationFailure(err error) bool {
	return FromError(err).Code() == CodeSerializationFailure
}

// IsServerError returns true if the error has CodeServerError.
func IsServerError(err error) bool {
	return FromError(err).Code() == CodeServerError
}
