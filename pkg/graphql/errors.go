package graphql

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/gitego/pkg/errors"
)

// HTTPStatusError is returned when the endpoint answers with a non-2xx status.
type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return "graphql: unexpected status " + status
}

// ErrorCode maps the status to a pkg/errors code.
func (e *HTTPStatusError) ErrorCode() errors.Code {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return errors.ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		return errors.ErrCodeRateLimited
	default:
		return errors.ErrCodeHTTPStatus
	}
}

// Location is a position in the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Error is the first entry of a response's "errors" list.
type Error struct {
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Path      []any      `json:"path"`
	Locations []Location `json:"locations"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("graphql: ")
	if e.Type != "" {
		b.WriteString(e.Type)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Path) > 0 {
		parts := make([]string, len(e.Path))
		for i, p := range e.Path {
			parts[i] = fmt.Sprint(p)
		}
		b.WriteString(" (path: ")
		b.WriteString(strings.Join(parts, "."))
		b.WriteString(")")
	}
	return b.String()
}

// ErrorCode maps the GraphQL error type to a pkg/errors code.
func (e *Error) ErrorCode() errors.Code {
	switch e.Type {
	case "NOT_FOUND":
		return errors.ErrCodeNotFound
	case "RATE_LIMITED":
		return errors.ErrCodeRateLimited
	default:
		return errors.ErrCodeGraphQL
	}
}

var (
	_ errors.Coder = (*HTTPStatusError)(nil)
	_ errors.Coder = (*Error)(nil)
)
