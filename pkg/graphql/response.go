package graphql

import (
	"github.com/tidwall/gjson"
)

// Response is the raw "data" member of a successful GraphQL answer.
type Response []byte

// Get returns the value at a gjson path, e.g. "user.repositories.edges".
func (r Response) Get(path string) gjson.Result {
	return gjson.GetBytes(r, path)
}

// MarshalJSON emits the payload verbatim.
func (r Response) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}
