package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Shape is the form of an action's input.
type Shape uint8

const (
	// ShapeKeyed is a JSON object bound to parameters by name.
	ShapeKeyed Shape = 1 << iota
	// ShapePositional is a single scalar bound to the first parameter.
	ShapePositional
)

func (s Shape) String() string {
	switch s {
	case ShapeKeyed:
		return "keyword"
	case ShapePositional:
		return "positional"
	case ShapeKeyed | ShapePositional:
		return "keyword or positional"
	default:
		return "none"
	}
}

// Args is the input of an action step: either keyed values or one positional value.
type Args struct {
	Shape      Shape
	Keyed      map[string]any
	Positional any
}

// KeyedArgs builds keyed input.
func KeyedArgs(values map[string]any) Args {
	if values == nil {
		values = map[string]any{}
	}
	return Args{Shape: ShapeKeyed, Keyed: values}
}

// PositionalArgs builds single-value input.
func PositionalArgs(value any) Args {
	return Args{Shape: ShapePositional, Positional: value}
}

// ParseArgs decodes the raw "input" of an action step. A missing or null
// input is an empty keyed input. Arrays are rejected.
func ParseArgs(raw json.RawMessage) (Args, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return KeyedArgs(nil), nil
	}

	switch trimmed[0] {
	case '{':
		var keyed map[string]any
		if err := json.Unmarshal(trimmed, &keyed); err != nil {
			return Args{}, wrapError(KindBadInput, err, "invalid input object")
		}
		return KeyedArgs(keyed), nil
	case '[':
		return Args{}, newError(KindBadInput, "input must be an object or a single value, not a list")
	default:
		var scalar any
		if err := json.Unmarshal(trimmed, &scalar); err != nil {
			return Args{}, wrapError(KindBadInput, err, "invalid input value")
		}
		return PositionalArgs(scalar), nil
	}
}

// Display returns the input as a map for rendering.
func (a Args) Display() map[string]any {
	if a.Shape == ShapePositional {
		return map[string]any{"input": a.Positional}
	}
	return a.Keyed
}

// Values are bound parameters, keyed by parameter name.
type Values map[string]any

// String returns a string parameter.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Bool returns a boolean parameter.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func convert(p Param, value any) (any, error) {
	switch p.Type {
	case TypeBool:
		switch x := value.(type) {
		case bool:
			return x, nil
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return nil, fmt.Errorf("argument '%s' must be a boolean", p.Name)
			}
			return b, nil
		}
		return nil, fmt.Errorf("argument '%s' must be a boolean", p.Name)
	default:
		switch x := value.(type) {
		case string:
			return x, nil
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64), nil
		case bool:
			return strconv.FormatBool(x), nil
		}
		return nil, fmt.Errorf("argument '%s' must be a string", p.Name)
	}
}
