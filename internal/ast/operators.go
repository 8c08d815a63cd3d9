package ast

// Canonical function names for the language's special-cased operators
// (§3.1, §4.1, §4.3). The (out-of-scope) parser is expected to emit Call
// nodes using these names for the corresponding syntax, mirroring the
// convention cel-go's operators package documents (LogicalAnd,
// LogicalOr, Conditional, Equals, NotEquals, Index — see
// other_examples/9e7f2e02_google-cel-go__interpreter-planner.go.go's
// planCall switch).
const (
	OpLogicalAnd  = "_&&_"
	OpLogicalOr   = "_||_"
	OpConditional = "_?_:_"
	OpEquals      = "_==_"
	OpNotEquals   = "_!=_"
	OpIndex       = "_[_]"
	OpNot         = "!_"
	OpNegate      = "-_"

	// Arithmetic and relational operators are NOT special-cased by the
	// checker or planner — they are ordinary declared overloads (§4.1,
	// §4.5) resolved like any other function call. Their names are
	// listed here only so the environment prelude and call sites agree
	// on a single spelling.
	OpAdd             = "_+_"
	OpSubtract        = "_-_"
	OpMultiply        = "_*_"
	OpDivide          = "_/_"
	OpModulo          = "_%_"
	OpLess            = "_<_"
	OpLessOrEqual     = "_<=_"
	OpGreater         = "_>_"
	OpGreaterOrEqual  = "_>=_"
	OpIn              = "_in_"
)
