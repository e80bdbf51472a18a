package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a server-owned record. The API sends numeric ids; the
// storefront carries them as strings so seed data and persisted records can
// use any form.
type ID string

// ParseID converts a numeric server id
func ParseID(n uint) ID {
	return ID(strconv.FormatUint(uint64(n), 10))
}

// Numeric returns the id as a number and whether it is one
func (id ID) Numeric() (uint64, bool) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	return n, err == nil
}

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON numbers and strings
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("model: invalid id %s", data)
	}
	*id = ID(n.String())
	return nil
}
