package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Manifests are plain structs of numbers, strings and slices, which JSON
// represents portably. Use it when the lowest-dependency option matters more
// than speed; serialized files always record the codec name, so either JSON
// implementation can read files written by the other.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// This affects newly serialized manifests. Existing files are self-describing
// (they store the codec name in their header) and are opened by selecting the
// appropriate codec by name.
var Default Codec = GoJSON{}
