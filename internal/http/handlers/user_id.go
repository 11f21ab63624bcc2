package handlers

import (
	"bytes"
	"errors"
	"strings"

	json "github.com/goccy/go-json"
)

const maxUserIDLen = 64

var errBadUserID = errors.New("user_id must be a string or an integer")

// UserID is a request user id that accepts both JSON strings and JSON
// numbers ("42" and 42 decode to the same value). Null decodes to empty.
type UserID string

// UnmarshalJSON implements json.Unmarshaler.
func (u *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*u = ""
		return nil
	}

	var s string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return errBadUserID
		}
	} else {
		if b[0] != '-' && (b[0] < '0' || b[0] > '9') {
			return errBadUserID
		}
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return errBadUserID
		}
		if _, err := n.Int64(); err != nil {
			return errBadUserID
		}
		s = n.String()
	}

	s = strings.TrimSpace(s)
	if len(s) > maxUserIDLen {
		return errBadUserID
	}
	*u = UserID(s)
	return nil
}

func (u UserID) String() string { return string(u) }
