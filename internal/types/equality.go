package types

import (
	"math"
	"time"
)

// Equal implements the §3.1 equality relation. It returns a BoolValue for
// a definite comparison, or propagates an *ErrorValue/*UnknownValue input
// per PropagateStrict. Cross-kind comparisons (other than the numeric
// trio int/uint/double) are false, never an error.
func Equal(a, b Value) Value {
	if v, ok := PropagateStrict(a, b); ok {
		return v
	}
	return BoolValue(equalStrict(a, b))
}

func equalStrict(a, b Value) bool {
	if isNumeric(a.Kind()) && isNumeric(b.Kind()) {
		return numericEqual(a, b)
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case NullValue:
		return true
	case BoolValue:
		return av == b.(BoolValue)
	case StringValue:
		return av == b.(StringValue)
	case BytesValue:
		bv := b.(BytesValue)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case DurationValue:
		return av == b.(DurationValue)
	case TimestampValue:
		bv := b.(TimestampValue)
		return time.Time(av).Equal(time.Time(bv))
	case *ListValue:
		return listEqual(av, b.(*ListValue))
	case *MapValue:
		return mapEqual(av, b.(*MapValue))
	case *StructValue:
		return av.Ops.Equal(b)
	case TypeValue:
		return av.T.String() == b.(TypeValue).T.String()
	default:
		return false
	}
}

// numericEqual compares int/uint/double by mathematical value (§3.1): NaN
// is never equal (including to itself); +/-Infinity equals itself only.
func numericEqual(a, b Value) bool {
	af, aFinite, aFloatKind := asFloatAndExactness(a)
	bf, bFinite, bFloatKind := asFloatAndExactness(b)

	if math.IsNaN(af) || math.IsNaN(bf) {
		return false
	}
	if math.IsInf(af, 0) || math.IsInf(bf, 0) {
		return af == bf
	}

	// Two integer operands (int/uint) compare exactly over their full
	// range, with no float conversion; once a double is involved both
	// sides compare as float64.
	if !aFloatKind && !bFloatKind {
		return intBitsEqual(a, b)
	}
	_ = aFinite
	_ = bFinite
	return af == bf
}

func intBitsEqual(a, b Value) bool {
	ai, aIsInt := a.(IntValue)
	au, aIsUint := a.(UintValue)
	bi, bIsInt := b.(IntValue)
	bu, bIsUint := b.(UintValue)
	switch {
	case aIsInt && bIsInt:
		return ai == bi
	case aIsUint && bIsUint:
		return au == bu
	case aIsInt && bIsUint:
		return int64(ai) >= 0 && uint64(ai) == uint64(bu)
	case aIsUint && bIsInt:
		return int64(bi) >= 0 && uint64(au) == uint64(bi)
	}
	return false
}

func asFloatAndExactness(v Value) (f float64, finite bool, isFloatKind bool) {
	switch vv := v.(type) {
	case IntValue:
		return float64(vv), true, false
	case UintValue:
		return float64(vv), true, false
	case DoubleValue:
		fv := float64(vv)
		return fv, !math.IsInf(fv, 0) && !math.IsNaN(fv), true
	}
	return 0, false, false
}

func listEqual(a, b *ListValue) bool {
	if len(a.Elems) != len(b.Elems) {
		return false
	}
	for i := range a.Elems {
		if !equalStrict(a.Elems[i], b.Elems[i]) {
			return false
		}
	}
	return true
}

func mapEqual(a, b *MapValue) bool {
	if a.Len() != b.Len() {
		return false
	}
	for _, k := range a.Keys() {
		av, _ := a.Get(k)
		bv, ok := b.Get(k)
		if !ok || !equalStrict(av, bv) {
			return false
		}
	}
	return true
}
