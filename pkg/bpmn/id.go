package bpmn

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	bperrors "github.com/matzehuels/bpmnlayout/pkg/errors"
)

// NextIntIDs returns the first of n consecutive integer ids above max. It
// returns an INVALID_GRAPH error when the run would pass [math.MaxInt64].
// With n <= 0 nothing is reserved and it returns 0.
func NextIntIDs(max int64, n int) (int64, error) {
	if n <= 0 {
		return 0, nil
	}
	if max > math.MaxInt64-int64(n) {
		return 0, bperrors.New(bperrors.ErrCodeInvalidGraph,
			"cannot mint %d ids above %d without overflow", n, max)
	}
	return max + 1, nil
}

// ID identifies a node or an edge record. It holds either an integer or a
// string, mirroring the JSON value it was decoded from. The zero value is
// the missing id.
//
// ID is comparable and can be used as a map key.
type ID struct {
	num   int64
	str   string
	isNum bool
}

// IntID returns an integer id.
func IntID(n int64) ID { return ID{num: n, isNum: true} }

// StringID returns a string id. StringID("") is the missing id.
func StringID(s string) ID { return ID{str: s} }

// ParseID reads an id typed on a command line: base-10 integers become
// integer ids, anything else a string id.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}
	return StringID(s)
}

// IsZero reports whether the id is missing.
func (id ID) IsZero() bool { return !id.isNum && id.str == "" }

// IsInt reports whether the id was given as an integer.
func (id ID) IsInt() bool { return id.isNum }

// Int returns the integer form of the id. String ids that parse as base-10
// integers are accepted too, since a rendering client sees "7" and 7 as the
// same key.
func (id ID) Int() (int64, bool) {
	if id.isNum {
		return id.num, true
	}
	n, err := strconv.ParseInt(id.str, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// String returns the id as text.
func (id ID) String() string {
	if id.isNum {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// Key returns a string that is unique per id, keeping integer and string
// forms apart ("1" vs "\"1\"").
func (id ID) Key() string {
	if id.isNum {
		return strconv.FormatInt(id.num, 10)
	}
	return strconv.Quote(id.str)
}

// MarshalJSON encodes the id as a JSON number or string.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.isNum {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts a JSON integer or string. null leaves the id missing.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be an integer or a string: %s", data)
	}
	v, err := n.Int64()
	if err != nil {
		return fmt.Errorf("id must be an integer or a string: %s", data)
	}
	*id = IntID(v)
	return nil
}
