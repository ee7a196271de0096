package message

// Object wraps a decoded JSON object for presence-aware field probing.
// All accessors distinguish "absent or wrong type" from a present zero
// value, which the guard predicates rely on: an empty string is a valid
// field value, a missing one is not.
type Object map[string]any

// AsObject converts a decoded JSON value to an Object.
// Returns false for nil and for anything that is not a map[string]any.
func AsObject(v any) (Object, bool) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return Object(m), true
}

// String returns the string value for key.
// The second result is false if the key is missing or not a string.
func (o Object) String(key string) (string, bool) {
	v, ok := o[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the boolean value for key.
// The second result is false if the key is missing or not a bool.
func (o Object) Bool(key string) (bool, bool) {
	v, ok := o[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Map returns the object value for key.
// The second result is false if the key is missing, nil, or not an object.
func (o Object) Map(key string) (map[string]any, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return nil, false
	}
	return m, true
}

// Slice returns the array value for key.
// The second result is false if the key is missing or not an array.
// An empty array is present.
func (o Object) Slice(key string) ([]any, bool) {
	v, ok := o[key]
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	if !ok {
		return nil, false
	}
	return s, true
}

// Has returns true if the key exists, regardless of its value.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// Type returns the "type" discriminant, or "" if missing or non-string.
func (o Object) Type() string {
	t, _ := o.String("type")
	return t
}
