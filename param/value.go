package param

import (
	"fmt"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Kind identifies which variant a Value holds.
type Kind string

const (
	KindInt    Kind = "int"
	KindFloat  Kind = "float"
	KindString Kind = "string"
)

// Value is an immutable parameter value: an int64, a float64, or a string.
// The zero Value has no kind and reports false from every accessor.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int creates an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float creates a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String creates a string Value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// FromAny converts a native Go value into a Value.
// Supported: all signed integer types, float32/float64, string, and Value itself.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	default:
		return Value{}, fmt.Errorf("param: unsupported parameter type %T", v)
	}
}

// Kind returns the variant held by the value, or "" for the zero Value.
func (v Value) Kind() Kind { return v.kind }

// IsZero reports whether the value holds no variant.
func (v Value) IsZero() bool { return v.kind == "" }

// Int returns the integer variant. It does not coerce other kinds.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the floating-point variant. Integer values widen to float64.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// Str returns the string variant. It does not coerce other kinds.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Interface returns the underlying native value, or nil for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String renders the value for display and logging.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return "<unset>"
	}
}

// UnmarshalYAML decodes a scalar YAML node into a Value.
// Integers are preferred over floats; anything else decodes as a string.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("param: expected scalar parameter value, got %v", node.Kind)
	}
	var i int64
	if err := node.Decode(&i); err == nil {
		*v = Int(i)
		return nil
	}
	var f float64
	if err := node.Decode(&f); err == nil {
		*v = Float(f)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("param: decoding parameter value: %w", err)
	}
	*v = String(s)
	return nil
}

// MarshalYAML encodes the value as its native scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// Map binds parameter names to values.
type Map map[string]Value

// Clone returns an independent copy of the map. A nil map clones to nil.
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Int returns the named integer parameter.
func (m Map) Int(name string) (int64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Float returns the named floating-point parameter (integers widen).
func (m Map) Float(name string) (float64, bool) {
	v, ok := m[name]
	if !ok {
		return 0, false
	}
	return v.Float()
}

// Str returns the named string parameter.
func (m Map) Str(name string) (string, bool) {
	v, ok := m[name]
	if !ok {
		return "", false
	}
	return v.Str()
}

// IntOr returns the named integer parameter, or def when absent or mistyped.
func (m Map) IntOr(name string, def int64) int64 {
	if v, ok := m.Int(name); ok {
		return v
	}
	return def
}

// FloatOr returns the named float parameter, or def when absent or mistyped.
func (m Map) FloatOr(name string, def float64) float64 {
	if v, ok := m.Float(name); ok {
		return v
	}
	return def
}

// StrOr returns the named string parameter, or def when absent or mistyped.
func (m Map) StrOr(name string, def string) string {
	if v, ok := m.Str(name); ok {
		return v
	}
	return def
}
