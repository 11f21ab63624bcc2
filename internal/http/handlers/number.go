package handlers

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

var errBadNumber = errors.New("budget and days must be whole numbers or numeric strings")

// Number is a whole-number request field that accepts both JSON numbers and
// numeric strings (20000 and "20000" decode to the same value), the way form
// inputs are posted by browser clients.
type Number int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}

	var raw string
	if b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return errBadNumber
		}
		raw = strings.TrimSpace(raw)
	} else {
		raw = string(b)
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return errBadNumber
	}
	*n = Number(v)
	return nil
}

// Int64 returns the value as int64.
func (n Number) Int64() int64 { return int64(n) }

// Int returns the value as int.
func (n Number) Int() int { return int(n) }
