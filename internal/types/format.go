package types

import (
	"strconv"
	"strings"
)

// FormatString implements the §6 format-string host extension: %s generic,
// %d decimal, %f fixed (optional .N precision), %e scientific, %b binary,
// %x/%X hex, %o octal. An unrecognized clause or a value unable to satisfy
// the requested clause yields an error value rather than a panic, matching
// the core's error-value-don't-panic discipline (§7.3).
func FormatString(id int64, format string, args []Value) Value {
	var out strings.Builder
	argi := 0
	nextArg := func() (Value, *ErrorValue) {
		if argi >= len(args) {
			return nil, NewError(id, "format: not enough arguments for %q", format)
		}
		v := args[argi]
		argi++
		return v, nil
	}

	runes := []rune(format)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' {
			out.WriteRune(runes[i])
			continue
		}
		i++
		if i >= len(runes) {
			return NewError(id, "format: dangling %% at end of string")
		}
		if runes[i] == '%' {
			out.WriteByte('%')
			continue
		}
		// optional .N precision, e.g. %.3f
		precision := -1
		if runes[i] == '.' {
			j := i + 1
			start := j
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			if j == start {
				return NewError(id, "format: malformed precision clause")
			}
			n, _ := strconv.Atoi(string(runes[start:j]))
			precision = n
			i = j
			if i >= len(runes) {
				return NewError(id, "format: dangling precision clause")
			}
		}
		verb := runes[i]
		arg, errv := nextArg()
		if errv != nil {
			return errv
		}
		if e, isErr := arg.(*ErrorValue); isErr {
			return e
		}
		if u, isUnk := arg.(*UnknownValue); isUnk {
			return u
		}
		rendered, err := formatClause(id, verb, precision, arg)
		if err != nil {
			return err
		}
		out.WriteString(rendered)
	}
	return StringValue(out.String())
}

func formatClause(id int64, verb rune, precision int, v Value) (string, *ErrorValue) {
	switch verb {
	case 's':
		return v.String(), nil
	case 'd':
		i, ok := asInt64(v)
		if !ok {
			return "", NewError(id, "format: %%d requires an integer, got %s", v.Type().String())
		}
		return strconv.FormatInt(i, 10), nil
	case 'f':
		f, ok := asFloat64(v)
		if !ok {
			return "", NewError(id, "format: %%f requires a numeric value, got %s", v.Type().String())
		}
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(f, 'f', precision, 64), nil
	case 'e':
		f, ok := asFloat64(v)
		if !ok {
			return "", NewError(id, "format: %%e requires a numeric value, got %s", v.Type().String())
		}
		if precision < 0 {
			precision = 6
		}
		return strconv.FormatFloat(f, 'e', precision, 64), nil
	case 'b':
		i, ok := asInt64(v)
		if !ok {
			return "", NewError(id, "format: %%b requires an integer, got %s", v.Type().String())
		}
		return strconv.FormatInt(i, 2), nil
	case 'x':
		i, ok := asInt64(v)
		if !ok {
			return "", NewError(id, "format: %%x requires an integer, got %s", v.Type().String())
		}
		return strconv.FormatInt(i, 16), nil
	case 'X':
		i, ok := asInt64(v)
		if !ok {
			return "", NewError(id, "format: %%X requires an integer, got %s", v.Type().String())
		}
		return strings.ToUpper(strconv.FormatInt(i, 16)), nil
	case 'o':
		i, ok := asInt64(v)
		if !ok {
			return "", NewError(id, "format: %%o requires an integer, got %s", v.Type().String())
		}
		return strconv.FormatInt(i, 8), nil
	default:
		return "", NewError(id, "format: unrecognized clause %%%c", verb)
	}
}

func asInt64(v Value) (int64, bool) {
	switch vv := v.(type) {
	case IntValue:
		return int64(vv), true
	case UintValue:
		return int64(vv), true
	}
	return 0, false
}

func asFloat64(v Value) (float64, bool) {
	switch vv := v.(type) {
	case IntValue:
		return float64(vv), true
	case UintValue:
		return float64(vv), true
	case DoubleValue:
		return float64(vv), true
	}
	return 0, false
}
