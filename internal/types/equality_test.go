package types

import "testing"

func TestEqualCrossTypeNumeric(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int==uint", IntValue(3), UintValue(3), true},
		{"int==double", IntValue(3), DoubleValue(3.0), true},
		{"uint==double", UintValue(3), DoubleValue(3.0), true},
		{"double!=int (precision)", DoubleValue(3.5), IntValue(3), false},
		{"negative int != uint", IntValue(-1), UintValue(1), false},
		{"NaN never equal", DoubleValue(nan()), DoubleValue(nan()), false},
		{"+Inf equals itself", DoubleValue(inf(1)), DoubleValue(inf(1)), true},
		{"+Inf != -Inf", DoubleValue(inf(1)), DoubleValue(inf(-1)), false},
		{"string bytewise", StringValue("abc"), StringValue("abc"), true},
		{"cross kind false", StringValue("1"), IntValue(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Equal(tt.a, tt.b)
			b, ok := got.(BoolValue)
			if !ok {
				t.Fatalf("Equal returned non-bool: %v", got)
			}
			if bool(b) != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, b, tt.want)
			}
		})
	}
}

func TestEqualPropagatesErrorAndUnknown(t *testing.T) {
	errv := NewError(1, "boom")
	unk := &UnknownValue{Patterns: NewAttributeSet("x")}

	if got := Equal(errv, IntValue(1)); got != Value(errv) {
		t.Errorf("error did not propagate through Equal: %v", got)
	}
	if got := Equal(IntValue(1), unk); got != Value(unk) {
		t.Errorf("unknown did not propagate through Equal: %v", got)
	}
	if got := Equal(errv, unk); got != Value(errv) {
		t.Errorf("error must dominate unknown: %v", got)
	}
}

func TestListMapEquality(t *testing.T) {
	l1 := NewList(IntValue(1), IntValue(2))
	l2 := NewList(IntValue(1), UintValue(2))
	if b := Equal(l1, l2).(BoolValue); !bool(b) {
		t.Errorf("expected pairwise-equal lists to be equal")
	}

	m1 := NewMap()
	m1.Put(StringValue("a"), IntValue(1))
	m2 := NewMap()
	m2.Put(StringValue("a"), DoubleValue(1))
	if b := Equal(m1, m2).(BoolValue); !bool(b) {
		t.Errorf("expected maps with equal key sets and equal values to be equal")
	}
}

func TestAssignability(t *testing.T) {
	if !Assignable(DynType, IntType) {
		t.Errorf("dyn should accept anything")
	}
	if !Assignable(IntType, DynType) {
		t.Errorf("anything should be assignable to dyn")
	}
	if !Assignable(WrapperType{Primitive: IntType}, NullType) {
		t.Errorf("wrapper(int) should accept null_type")
	}
	if !Assignable(WrapperType{Primitive: IntType}, IntType) {
		t.Errorf("wrapper(int) should accept int")
	}
	if Assignable(ListType{Elem: IntType}, ListType{Elem: StringType}) {
		t.Errorf("list(int) should not accept list(string) (invariant)")
	}
	if !Assignable(ListType{Elem: IntType}, ListType{Elem: IntType}) {
		t.Errorf("list(int) should accept list(int)")
	}
}

func TestUnifyArgBindsTypeParam(t *testing.T) {
	s := Subst{}
	if !UnifyArg(TypeParamType{Name: "T"}, IntType, s) {
		t.Fatalf("expected type_param to unify")
	}
	if s["T"].String() != "int" {
		t.Fatalf("expected T bound to int, got %v", s["T"])
	}
	// Same type param occurring again must bind to the same type.
	if !UnifyArg(TypeParamType{Name: "T"}, IntType, s) {
		t.Errorf("expected repeat occurrence of T to still unify with int")
	}
	if UnifyArg(TypeParamType{Name: "T"}, StringType, s) {
		t.Errorf("expected repeat occurrence of T to reject a different type")
	}
}

func nan() float64 { var z float64; return z / z }
func inf(sign int) float64 {
	var z float64
	if sign < 0 {
		return -1 / z
	}
	return 1 / z
}
