package core

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RecordID identifies an expense or income record. Older data stored
// numeric ids, so both strings and numbers are accepted when decoding.
type RecordID string

// NewRecordID returns a fresh random id.
func NewRecordID() RecordID {
	return RecordID(uuid.New().String())
}

func (id RecordID) String() string {
	return string(id)
}

func (id *RecordID) UnmarshalJSON(data []byte) error {
	var s string
	if err := unmarshalLenientString(data, &s); err != nil {
		return err
	}
	*id = RecordID(s)
	return nil
}

// unmarshalLenientString decodes a JSON string, number or null into s.
func unmarshalLenientString(data []byte, s *string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, s)
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: expected string or number, got %s", ErrCorruptRecord, data)
	}
	*s = n.String()
	return nil
}
