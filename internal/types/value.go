package types

import (
	"fmt"
	"time"
)

// Value is the interface implemented by every member of the runtime value
// sum (§3.1). Values are immutable; lists/maps never contain themselves
// (§9 "cyclic value references" — the language forbids cycles, so a plain
// tree of shared immutable leaves suffices, no arena bookkeeping required
// here beyond what Go's GC already gives us).
type Value interface {
	Kind() Kind
	// Type returns this value's static type (used by typeOf()/type()).
	Type() Type
	// String renders the value's canonical, stable debug form (§4.2,
	// used by format()/string() and diagnostics).
	String() string
}

// NullValue is the language's single null.
type NullValue struct{}

func (NullValue) Kind() Kind    { return NullKind }
func (NullValue) Type() Type    { return NullType }
func (NullValue) String() string { return "null" }

var Null = NullValue{}

type BoolValue bool

func (BoolValue) Kind() Kind { return BoolKind }
func (BoolValue) Type() Type { return BoolType }
func (b BoolValue) String() string {
	if b {
		return "true"
	}
	return "false"
}

type IntValue int64

func (IntValue) Kind() Kind       { return IntKind }
func (IntValue) Type() Type       { return IntType }
func (i IntValue) String() string { return fmt.Sprintf("%d", int64(i)) }

type UintValue uint64

func (UintValue) Kind() Kind       { return UintKind }
func (UintValue) Type() Type       { return UintType }
func (u UintValue) String() string { return fmt.Sprintf("%du", uint64(u)) }

type DoubleValue float64

func (DoubleValue) Kind() Kind { return DoubleKind }
func (DoubleValue) Type() Type { return DoubleType }
func (d DoubleValue) String() string {
	f := float64(d)
	switch {
	case f != f:
		return "NaN"
	case f > 0 && f*2 == f:
		return "+Infinity"
	case f < 0 && f*2 == f:
		return "-Infinity"
	default:
		return fmt.Sprintf("%g", f)
	}
}

type StringValue string

func (StringValue) Kind() Kind       { return StringKind }
func (StringValue) Type() Type       { return StringType }
func (s StringValue) String() string { return string(s) }

type BytesValue []byte

func (BytesValue) Kind() Kind { return BytesKind }
func (BytesValue) Type() Type { return BytesType }
func (b BytesValue) String() string {
	return fmt.Sprintf("b%q", string(b))
}

// DurationValue wraps a seconds+nanos duration (§3.1) as a Go
// time.Duration, which already carries exactly that representation.
type DurationValue time.Duration

func (DurationValue) Kind() Kind { return DurationKind }
func (DurationValue) Type() Type { return DurationType }
func (d DurationValue) String() string {
	return fmt.Sprintf("%ss", formatSeconds(time.Duration(d).Seconds()))
}

// TimestampValue is an instant on the UTC line (§3.1).
type TimestampValue time.Time

func (TimestampValue) Kind() Kind { return TimestampKind }
func (TimestampValue) Type() Type { return TimestampType }
func (t TimestampValue) String() string {
	return time.Time(t).UTC().Format(time.RFC3339Nano)
}

// ListValue is an ordered, immutable sequence of values.
type ListValue struct {
	Elems []Value
}

func NewList(elems ...Value) *ListValue { return &ListValue{Elems: elems} }

func (*ListValue) Kind() Kind { return ListKind }
func (l *ListValue) Type() Type {
	if len(l.Elems) == 0 {
		return ListType{Elem: DynType}
	}
	return ListType{Elem: l.Elems[0].Type()}
}
func (l *ListValue) String() string {
	s := "["
	for i, e := range l.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + "]"
}

// MapValue is a key->value map restricted to bool/int/uint/string keys
// (§3.1). Entries preserve insertion order: the Open Question on map
// iteration order (§9) is resolved here to insertion order, matching the
// order a MakeMap step or a host Activation adapter produced.
type MapValue struct {
	keys   []Value
	values map[mapKey]Value
	order  map[mapKey]int
}

// mapKey is a comparable projection of a restricted-kind map key, used so
// Go's native map can back lookup while MapValue.keys preserves order and
// cross-type numeric identity (1 and 1u address the same entry; a double
// is not a permitted key kind).
type mapKey struct {
	kind Kind
	i    int64
	u    uint64
	s    string
	b    bool
}

func keyFor(v Value) (mapKey, bool) {
	switch k := v.(type) {
	case BoolValue:
		return mapKey{kind: BoolKind, b: bool(k)}, true
	case IntValue:
		return mapKey{kind: IntKind, i: int64(k)}, true
	case UintValue:
		if int64(k) < 0 {
			return mapKey{kind: UintKind, u: uint64(k)}, true
		}
		return mapKey{kind: IntKind, i: int64(k)}, true
	case StringValue:
		return mapKey{kind: StringKind, s: string(k)}, true
	default:
		return mapKey{}, false
	}
}

func NewMap() *MapValue {
	return &MapValue{values: map[mapKey]Value{}, order: map[mapKey]int{}}
}

// Put inserts or overwrites key->val, returning false if key is not one of
// the permitted map-key kinds (bool/int/uint/string).
func (m *MapValue) Put(key, val Value) bool {
	mk, ok := keyFor(key)
	if !ok {
		return false
	}
	if _, exists := m.order[mk]; !exists {
		m.order[mk] = len(m.keys)
		m.keys = append(m.keys, key)
	}
	m.values[mk] = val
	return true
}

// Get looks up key, following §3.1 cross-type numeric key identity.
func (m *MapValue) Get(key Value) (Value, bool) {
	mk, ok := keyFor(key)
	if !ok {
		return nil, false
	}
	v, found := m.values[mk]
	return v, found
}

// Has reports field/key presence (§4.3 Select test_only).
func (m *MapValue) Has(key Value) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the map's keys in insertion order.
func (m *MapValue) Keys() []Value { return m.keys }

// Len returns the number of entries.
func (m *MapValue) Len() int { return len(m.keys) }

func (*MapValue) Kind() Kind { return MapKind }
func (m *MapValue) Type() Type {
	if len(m.keys) == 0 {
		return MapType{Key: DynType, Value: DynType}
	}
	k := m.keys[0]
	v, _ := m.Get(k)
	return MapType{Key: k.Type(), Value: v.Type()}
}
func (m *MapValue) String() string {
	s := "{"
	for i, k := range m.keys {
		if i > 0 {
			s += ", "
		}
		v, _ := m.Get(k)
		s += k.String() + ": " + v.String()
	}
	return s + "}"
}

// StructOps is the small virtual table an opaque struct value exposes to
// the core (Design Notes §9: "a small variant 'opaque' that carries a
// type-id plus a small virtual table of operations").
type StructOps interface {
	TypeName() string
	Field(name string) (Value, bool)
	HasField(name string) bool
	FieldNames() []string
	Equal(other Value) bool
}

// StructValue is a named field->value record, opaque to the core beyond
// StructOps (§3.1).
type StructValue struct {
	Ops StructOps
}

func (*StructValue) Kind() Kind { return StructKind }
func (s *StructValue) Type() Type {
	return StructType{Name: s.Ops.TypeName()}
}
func (s *StructValue) String() string {
	out := s.Ops.TypeName() + "{"
	for i, name := range s.Ops.FieldNames() {
		if i > 0 {
			out += ", "
		}
		v, _ := s.Ops.Field(name)
		out += name + ": " + v.String()
	}
	return out + "}"
}

// TypeValue is a first-class type witness (§3.1).
type TypeValue struct {
	T Type
}

func (TypeValue) Kind() Kind       { return TypeKind }
func (TypeValue) Type() Type       { return MetaTypeType }
func (t TypeValue) String() string { return t.T.String() }

// ErrorValue is a propagating failure carrying a message and the AST id
// that produced it (§3.1, §6).
type ErrorValue struct {
	Message string
	ID      int64
}

func NewError(id int64, format string, args ...interface{}) *ErrorValue {
	return &ErrorValue{ID: id, Message: fmt.Sprintf(format, args...)}
}

func (*ErrorValue) Kind() Kind { return ErrorKind }
func (*ErrorValue) Type() Type { return DynType }
func (e *ErrorValue) String() string {
	return fmt.Sprintf("<error: %s>", e.Message)
}
func (e *ErrorValue) Error() string { return e.Message }

// UnknownValue is a propagating set of unresolved attribute paths (§3.1).
type UnknownValue struct {
	Patterns AttributeSet
}

func (*UnknownValue) Kind() Kind { return UnknownKind }
func (*UnknownValue) Type() Type { return DynType }
func (u *UnknownValue) String() string {
	return fmt.Sprintf("<unknown: %s>", u.Patterns.String())
}

func formatSeconds(sec float64) string {
	// Render with full nanosecond precision, trimming trailing zeros but
	// keeping at least one fractional digit only when non-integral.
	if sec == float64(int64(sec)) {
		return fmt.Sprintf("%d", int64(sec))
	}
	s := fmt.Sprintf("%.9f", sec)
	i := len(s)
	for i > 0 && s[i-1] == '0' {
		i--
	}
	if i > 0 && s[i-1] == '.' {
		i++
	}
	return s[:i]
}
