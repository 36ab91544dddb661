// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the gateway error kinds.
var (
	// ErrNetwork indicates a transport failure or an unexpected server response.
	ErrNetwork = errors.New("network error")

	// ErrAuth indicates a missing, invalid or expired credential.
	ErrAuth = errors.New("authentication failed")

	// ErrValidation indicates the backend rejected the request with a message.
	ErrValidation = errors.New("validation error")
)

// Kind classifies a gateway failure.
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindAuth
	KindValidation
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuth:
		return ErrAuth
	case KindValidation:
		return ErrValidation
	default:
		return ErrNetwork
	}
}

// Error is a failed gateway operation.
type Error struct {
	Kind Kind
	// Op is the gateway operation, e.g. "list projects".
	Op string
	// Status is the HTTP status, or 0 for transport failures.
	Status int
	// Message is human-readable and safe to show to the user.
	Message string
	// Err is the underlying transport error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap exposes the kind sentinel and the transport cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.sentinel(), e.Err}
	}
	return []error{e.Kind.sentinel()}
}

// Message returns the user-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}

// errorBody covers the error shapes the backend produces.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// extractMessage pulls a message out of an error body. It returns "" when the
// body carries none.
func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
		var items []detailItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			var msgs []string
			for _, item := range items {
				if m := strings.TrimSpace(item.Msg); m != "" {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}

	return strings.TrimSpace(eb.Message)
}

// statusText is the fallback message for a status without a body message.
func statusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

// classify maps a non-2xx response to a gateway error.
func classify(op string, status int, body []byte) *Error {
	msg := extractMessage(body)

	kind := KindNetwork
	switch {
	case status == http.StatusUnauthorized:
		kind = KindAuth
	case status >= 400 && status < 500 && msg != "":
		kind = KindValidation
	}

	if msg == "" {
		msg = statusText(status)
	}
	return &Error{Kind: kind, Op: op, Status: status, Message: msg}
}

// transportError wraps a failure to reach the backend.
func transportError(op string, err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Op:      op,
		Message: "could not reach the server",
		Err:     err,
	}
}
