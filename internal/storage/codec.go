package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is the envelope version written by this build.
// Version 1 is the legacy layout: a bare JSON array with no envelope.
const SchemaVersion = 2

// ErrMalformed is returned when a blob cannot be decoded as a collection
var ErrMalformed = errors.New("storage: malformed blob")

// ErrUnsupportedSchema is returned for blobs written by a newer build
var ErrUnsupportedSchema = errors.New("storage: unsupported schema version")

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Items         json.RawMessage `json:"items"`
}

// Migration upgrades the raw items array of a collection from one schema version to the next
type Migration func(items json.RawMessage) (json.RawMessage, error)

// migrations[v] upgrades schema v to v+1
var migrations = map[int]Migration{
	// v1 -> v2 only adds the envelope; items are unchanged
	1: func(items json.RawMessage) (json.RawMessage, error) { return items, nil },
}

// DecodeList decodes a collection blob of either schema version and returns the
// items and the schema version the blob was stored with. Empty data decodes to
// an empty list.
func DecodeList[T any](data []byte) ([]T, int, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, SchemaVersion, nil
	}

	var raw json.RawMessage
	version := 1
	switch trimmed[0] {
	case '[':
		raw = trimmed
	case '{':
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if env.SchemaVersion < 1 {
			return nil, 0, fmt.Errorf("%w: missing schema_version", ErrMalformed)
		}
		if env.SchemaVersion > SchemaVersion {
			return nil, env.SchemaVersion, fmt.Errorf("%w: %d", ErrUnsupportedSchema, env.SchemaVersion)
		}
		raw, version = env.Items, env.SchemaVersion
	default:
		return nil, 0, fmt.Errorf("%w: unexpected %q", ErrMalformed, trimmed[0])
	}

	for v := version; v < SchemaVersion; v++ {
		migrate, ok := migrations[v]
		if !ok {
			return nil, version, fmt.Errorf("%w: no migration from %d", ErrUnsupportedSchema, v)
		}
		var err error
		if raw, err = migrate(raw); err != nil {
			return nil, version, fmt.Errorf("migration from schema %d failed: %w", v, err)
		}
	}

	items := []T{}
	if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, version, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return items, version, nil
}

// EncodeList writes items in the current envelope
func EncodeList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Items: raw})
}
