package chunktrie

import (
	"encoding/json"
	"errors"
	"reflect"
)

// ErrCyclicValue is returned when a value offered to the JSON convenience
// path references itself.
var ErrCyclicValue = errors.New("cyclic value cannot be canonicalized")

// CanonicalJSON renders v as deterministic JSON: object keys sorted, no
// insignificant whitespace. Cyclic values are rejected up front by an
// explicit identity walk instead of being left to encoder recursion; shared
// acyclic substructure is fine.
func CanonicalJSON(v any) ([]byte, error) {
	if err := checkAcyclic(reflect.ValueOf(v), make(map[identity]bool)); err != nil {
		return nil, err
	}
	// encoding/json sorts map keys and is whitespace-free by default, which
	// is exactly the canonical form.
	return json.Marshal(v)
}

// EncodeJSON canonicalizes v and chunk-encodes the resulting bytes. Equal
// values always produce the same buffer, and therefore the same chunk
// digests and root fingerprint.
func EncodeJSON(v any, opts ...Option) (*ChunkManifest, error) {
	data, err := CanonicalJSON(v)
	if err != nil {
		return nil, err
	}
	return Encode(data, opts...)
}

// identity names a traversable value by address and type; the type
// disambiguates a struct from its first field, which share an address.
type identity struct {
	ptr uintptr
	typ reflect.Type
}

// checkAcyclic walks v and fails on any value reachable from itself. The
// path set is unwound on the way back up so shared (DAG) substructure is not
// mistaken for a cycle.
func checkAcyclic(v reflect.Value, path map[identity]bool) error {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Interface:
		return checkAcyclic(v.Elem(), path)

	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return nil
		}
		id := identity{ptr: v.Pointer(), typ: v.Type()}
		if path[id] {
			return ErrCyclicValue
		}
		path[id] = true
		defer delete(path, id)

		switch v.Kind() {
		case reflect.Pointer:
			return checkAcyclic(v.Elem(), path)
		case reflect.Map:
			for _, k := range v.MapKeys() {
				if err := checkAcyclic(v.MapIndex(k), path); err != nil {
					return err
				}
			}
		case reflect.Slice:
			for i := 0; i < v.Len(); i++ {
				if err := checkAcyclic(v.Index(i), path); err != nil {
					return err
				}
			}
		}
		return nil

	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkAcyclic(v.Index(i), path); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if err := checkAcyclic(v.Field(i), path); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}
