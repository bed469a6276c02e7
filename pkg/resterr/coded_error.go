/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resterr carries the closed, coded error taxonomy surfaced by the
// two frontend phases. Each phase owns its code set in a subpackage; this
// package provides the shared error shape.
package resterr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CodedError is an error classified under a closed, phase-owned code set,
// wrapping the original cause.
type CodedError[T ~string] struct {
	ErrorCode      T
	ErrorComponent Component
	Operation      string
	HTTPStatus     int
	Err            error
}

// codedErrorJSON is a helper struct for JSON encoding/decoding of CodedError.
type codedErrorJSON[T comparable] struct {
	ErrorCode   T         `json:"error"`
	Component   Component `json:"component,omitempty"`
	Operation   string    `json:"operation,omitempty"`
	HTTPStatus  int       `json:"http_status,omitempty"`
	Description string    `json:"error_description,omitempty"`
}

func (e *CodedError[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(&codedErrorJSON[T]{
		ErrorCode:   e.ErrorCode,
		Component:   e.ErrorComponent,
		Operation:   e.Operation,
		HTTPStatus:  e.HTTPStatus,
		Description: e.Err.Error(),
	})
}

func (e *CodedError[T]) UnmarshalJSON(b []byte) error {
	var data codedErrorJSON[T]

	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	e.ErrorCode = data.ErrorCode
	e.ErrorComponent = data.Component
	e.Operation = data.Operation
	e.HTTPStatus = data.HTTPStatus
	e.Err = errors.New(data.Description)

	return nil
}

func (e *CodedError[T]) Error() string {
	var description []string

	if e.ErrorComponent != "" {
		description = append(description, fmt.Sprintf("component: %s", e.ErrorComponent))
	}

	if e.Operation != "" {
		description = append(description, fmt.Sprintf("operation: %s", e.Operation))
	}

	return fmt.Sprintf("%s[%s]: %v", e.ErrorCode, strings.Join(description, "; "), e.Err)
}

func (e *CodedError[T]) WithComponent(component Component) *CodedError[T] {
	e.ErrorComponent = component

	return e
}

func (e *CodedError[T]) WithOperation(operation string) *CodedError[T] {
	e.Operation = operation

	return e
}

func (e *CodedError[T]) WithErrorPrefix(errPrefix string) *CodedError[T] {
	e.Err = fmt.Errorf("%s: %w", errPrefix, e.Err)

	return e
}

func (e *CodedError[T]) Code() string {
	return string(e.ErrorCode)
}

func (e *CodedError[T]) Component() string {
	return string(e.ErrorComponent)
}

func (e *CodedError[T]) Unwrap() error {
	return e.Err
}
