package models

import (
	"encoding/json"
	"fmt"
)

// Field is a single name/value pair of a [Fields] map.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for building a [Field].
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Fields is an insertion-ordered, immutable mapping of field name to [Value].
// Every mutating method returns a new Fields and leaves the receiver intact.
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields builds a Fields from pairs. A repeated name keeps its first
// position and takes the last value.
func NewFields(pairs ...Field) Fields {
	f := Fields{values: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		if _, ok := f.values[p.Name]; !ok {
			f.keys = append(f.keys, p.Name)
		}
		f.values[p.Name] = p.Value
	}
	return f
}

func (f Fields) Len() int { return len(f.keys) }

func (f Fields) Get(name string) (Value, bool) {
	v, ok := f.values[name]
	return v, ok
}

func (f Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Keys returns a copy of the field names in insertion order.
func (f Fields) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

// Range calls fn for each field in order until fn returns false.
func (f Fields) Range(fn func(name string, v Value) bool) {
	for _, k := range f.keys {
		if !fn(k, f.values[k]) {
			return
		}
	}
}

func (f Fields) clone(extra int) Fields {
	out := Fields{
		keys:   make([]string, len(f.keys), len(f.keys)+extra),
		values: make(map[string]Value, len(f.keys)+extra),
	}
	copy(out.keys, f.keys)
	for k, v := range f.values {
		out.values[k] = v
	}
	return out
}

// With returns a copy with name set to v. An existing name keeps its position.
func (f Fields) With(name string, v Value) Fields {
	out := f.clone(1)
	if _, ok := out.values[name]; !ok {
		out.keys = append(out.keys, name)
	}
	out.values[name] = v
	return out
}

// Without returns a copy with name removed.
func (f Fields) Without(name string) Fields {
	if !f.Has(name) {
		return f
	}
	out := Fields{values: make(map[string]Value, len(f.keys))}
	for _, k := range f.keys {
		if k == name {
			continue
		}
		out.keys = append(out.keys, k)
		out.values[k] = f.values[k]
	}
	return out
}

// Union returns the receiver overlaid with other: values from other win, keys
// keep the receiver's order followed by keys only other has.
func (f Fields) Union(other Fields) Fields {
	out := f.clone(other.Len())
	for _, k := range other.keys {
		if _, ok := out.values[k]; !ok {
			out.keys = append(out.keys, k)
		}
		out.values[k] = other.values[k]
	}
	return out
}

// Equal compares names and values, ignoring order.
func (f Fields) Equal(other Fields) bool {
	if f.Len() != other.Len() {
		return false
	}
	for k, v := range f.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (f Fields) String() string {
	s := "{"
	for i, k := range f.keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %s", k, f.values[k])
	}
	return s + "}"
}

func (f Fields) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(f.keys))
	for _, k := range f.keys {
		v, err := f.values[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", k, err)
		}
		// splice the name into the value object
		name, _ := json.Marshal(k)
		entry := append([]byte(`{"name":`), name...)
		entry = append(entry, ',')
		entry = append(entry, v[1:]...)
		out = append(out, entry)
	}
	return json.Marshal(out)
}

func (f *Fields) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pairs := make([]Field, 0, len(raw))
	for _, r := range raw {
		var head struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(r, &head); err != nil {
			return err
		}
		var v Value
		if err := v.UnmarshalJSON(r); err != nil {
			return fmt.Errorf("decode field %q: %w", head.Name, err)
		}
		pairs = append(pairs, F(head.Name, v))
	}

	*f = NewFields(pairs...)
	return nil
}
