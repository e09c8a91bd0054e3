package settings

import (
	"encoding/json"
	"fmt"
)

// Value returns the current value in its JSON-friendly form. Colors are
// returned as hex strings.
func Value(s Setting) any {
	switch v := s.(type) {
	case *Bool:
		return v.Get()
	case *String:
		return v.Get()
	case *Color:
		return v.Get().Hex()
	case *Enum:
		return v.Get()
	case *EnumList:
		return v.Get()
	default:
		panic(fmt.Sprintf("settings: unhandled setting type %T", s))
	}
}

// Assign sets a value received from the UI or decoded from JSON.
func Assign(s Setting, value any) error {
	switch v := s.(type) {
	case *Bool:
		b, ok := value.(bool)
		if !ok {
			return invalid(s, value)
		}
		v.Set(b)
		return nil
	case *String:
		str, ok := value.(string)
		if !ok {
			return invalid(s, value)
		}
		return v.Set(str)
	case *Color:
		var c RGBA
		switch in := value.(type) {
		case RGBA:
			c = in
		case string:
			parsed, err := ParseHex(in)
			if err != nil {
				return err
			}
			c = parsed
		default:
			return invalid(s, value)
		}
		v.Set(c)
		return nil
	case *Enum:
		str, ok := value.(string)
		if !ok {
			return invalid(s, value)
		}
		return v.Set(str)
	case *EnumList:
		list, err := toStrings(value)
		if err != nil {
			return invalid(s, value)
		}
		return v.Set(list)
	default:
		panic(fmt.Sprintf("settings: unhandled setting type %T", s))
	}
}

// Encode serializes the current value for the config store.
func Encode(s Setting) ([]byte, error) {
	return json.Marshal(Value(s))
}

// Decode parses data produced by Encode and assigns it.
func Decode(s Setting, data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidValue, s.Meta().Name, err)
	}
	return Assign(s, raw)
}

func toStrings(value any) ([]string, error) {
	switch in := value.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return in, nil
	case []any:
		out := make([]string, 0, len(in))
		for _, item := range in {
			str, ok := item.(string)
			if !ok {
				return nil, ErrInvalidValue
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, ErrInvalidValue
	}
}

func invalid(s Setting, value any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidValue, s.Meta().Name, s.Kind(), value)
}
