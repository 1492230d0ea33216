// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind discriminates the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindTime
)

var kindNames = map[Kind]string{
	KindNull:   "null",
	KindString: "string",
	KindNumber: "number",
	KindBool:   "bool",
	KindTime:   "time",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind is the inverse of [Kind.String].
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("%w: %q", ErrUnknownValueKind, s)
}

// Value is a tagged union carried in a change's field map. The zero Value is
// null. Values are immutable; every constructor returns a fresh copy.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	t    time.Time
}

func Null() Value { return Value{} }
func String(s string) Value { return Value{kind: KindString, str: s} }
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }
func Int(n int64) Value { return Value{kind: KindNumber, num: float64(n)} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Time(t time.Time) Value { return Value{kind: KindTime, t: t.UTC()} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsTime() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindTime:
		return v.t.Equal(other.t)
	default:
		return true
	}
}

// Compare orders two values of the same orderable kind (number, time, string).
// ok is false when the kinds differ or the kind has no natural order.
func (v Value) Compare(other Value) (cmp int, ok bool) {
	if v.kind != other.kind {
		return 0, false
	}
	switch v.kind {
	case KindNumber:
		switch {
		case v.num < other.num:
			return -1, true
		case v.num > other.num:
			return 1, true
		}
		return 0, true
	case KindTime:
		return v.t.Compare(other.t), true
	case KindString:
		return strings.Compare(v.str, other.str), true
	default:
		return 0, false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return fmt.Sprintf("%g", v.num)
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindTime:
		return v.t.Format(time.RFC3339Nano)
	default:
		return "null"
	}
}

type valueJSON struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes the value as {"kind": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	var (
		raw []byte
		err error
	)
	switch v.kind {
	case KindString:
		raw, err = json.Marshal(v.str)
	case KindNumber:
		raw, err = json.Marshal(v.num)
	case KindBool:
		raw, err = json.Marshal(v.b)
	case KindTime:
		raw, err = json.Marshal(v.t.Format(time.RFC3339Nano))
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueJSON{Kind: v.kind.String(), Value: raw})
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return err
	}

	out := Value{kind: kind}
	switch kind {
	case KindString:
		err = json.Unmarshal(in.Value, &out.str)
	case KindNumber:
		err = json.Unmarshal(in.Value, &out.num)
	case KindBool:
		err = json.Unmarshal(in.Value, &out.b)
	case KindTime:
		var s string
		if err = json.Unmarshal(in.Value, &s); err == nil {
			out.t, err = time.Parse(time.RFC3339Nano, s)
		}
	}
	if err != nil {
		return fmt.Errorf("decode %s value: %w", kind, err)
	}

	*v = out
	return nil
}
