package types

// Kind identifies the runtime tag of a Value (§3.1).
type Kind uint8

const (
	NullKind Kind = iota
	BoolKind
	IntKind
	UintKind
	DoubleKind
	StringKind
	BytesKind
	DurationKind
	TimestampKind
	ListKind
	MapKind
	StructKind
	TypeKind
	ErrorKind
	UnknownKind
)

func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case IntKind:
		return "int"
	case UintKind:
		return "uint"
	case DoubleKind:
		return "double"
	case StringKind:
		return "string"
	case BytesKind:
		return "bytes"
	case DurationKind:
		return "duration"
	case TimestampKind:
		return "timestamp"
	case ListKind:
		return "list"
	case MapKind:
		return "map"
	case StructKind:
		return "struct"
	case TypeKind:
		return "type"
	case ErrorKind:
		return "error"
	case UnknownKind:
		return "unknown"
	default:
		return "<unknown kind>"
	}
}

// isNumeric reports whether a Kind participates in cross-type numeric
// equality (§3.1).
func isNumeric(k Kind) bool {
	return k == IntKind || k == UintKind || k == DoubleKind
}
