package ast

// UnaryOp identifies a unary expression operator (spec §3.3, §4.4).
type UnaryOp string

const (
	OpNeg UnaryOp = "-"
	OpPos UnaryOp = "+"
	OpNot UnaryOp = "not"

	// Existence / type / validation predicates; evaluated by name
	// against the evaluator's predicate table (internal/evaluator).
	OpExists  UnaryOp = "exists"
	OpIsNull  UnaryOp = "is_null"
	OpNotNull UnaryOp = "is_not_null"

	OpToUpper UnaryOp = "to_upper"
	OpToLower UnaryOp = "to_lower"
	OpTrim    UnaryOp = "trim"
	OpLength  UnaryOp = "length"
)

// IsPredicateName reports whether name is one of the many "is_*" value/type/
// domain predicates (is_number, is_positive, is_email, ...). These are
// carried as a plain UnaryOp string rather than one constant per
// predicate because the predicate table (internal/evaluator/predicates.go)
// is the single source of truth for which names are valid.
func IsPredicateName(name string) bool {
	return len(name) > 3 && name[:3] == "is_"
}

// Literal is a literal value expression (spec §3.3).
type Literal struct {
	Base
	Value any
	Type  ValueType
}

func (*Literal) expressionNode() {}
func (l *Literal) ExpressionType() ValueType { return l.Type }
func (l *Literal) IsConstant() bool          { return true }
func (*Literal) HasVariableReferences() bool { return false }

// Variable is a reference to a named value in the environment, optionally
// indexed (spec §3.3). IndexExpression is nil for a bare variable
// reference.
type Variable struct {
	Base
	Name            string
	IndexExpression Expression
	// DeclaredType is set to ANY by the parser; no later stage refines
	// it from the document's input or constant declarations.
	DeclaredType ValueType
}

func (*Variable) expressionNode() {}
func (v *Variable) ExpressionType() ValueType {
	if v.IndexExpression != nil {
		return ANY
	}
	return v.DeclaredType
}
func (*Variable) IsConstant() bool          { return false }
func (*Variable) HasVariableReferences() bool { return true }

// Unary is a unary expression (spec §3.3).
type Unary struct {
	Base
	Op      UnaryOp
	Operand Expression
}

func (*Unary) expressionNode() {}
func (u *Unary) ExpressionType() ValueType {
	switch u.Op {
	case OpNeg, OpPos, OpLength:
		return NUMBER
	case OpNot, OpExists, OpIsNull, OpNotNull:
		return BOOLEAN
	case OpToUpper, OpToLower, OpTrim:
		return STRING
	default:
		if IsPredicateName(string(u.Op)) {
			return BOOLEAN
		}
		return ANY
	}
}
func (u *Unary) IsConstant() bool              { return u.Operand.IsConstant() }
func (u *Unary) HasVariableReferences() bool   { return u.Operand.HasVariableReferences() }

// BinaryOp identifies a binary expression operator: arithmetic,
// comparison, string match, logical, or range/membership (spec §3.3).
type BinaryOp string

const (
	BinAdd BinaryOp = "+"
	BinSub BinaryOp = "-"
	BinMul BinaryOp = "*"
	BinDiv BinaryOp = "/"
	BinMod BinaryOp = "%"
	BinPow BinaryOp = "**"

	BinEq  BinaryOp = "=="
	BinNeq BinaryOp = "!="
	BinGt  BinaryOp = ">"
	BinLt  BinaryOp = "<"
	BinGte BinaryOp = ">="
	BinLte BinaryOp = "<="

	BinAnd BinaryOp = "and"
	BinOr  BinaryOp = "or"
)

// Binary is a binary expression (spec §3.3). Condition-level comparison
// and match operators (contains, between, in_list, ...) live on
// ast.Comparison instead — Binary covers only expression-valued
// arithmetic, equality/ordering, and logical connectives that can appear
// nested inside a larger expression (e.g. `(a + b) > c`).
type Binary struct {
	Base
	Op    BinaryOp
	Left  Expression
	Right Expression
}

func (*Binary) expressionNode() {}
func (b *Binary) ExpressionType() ValueType {
	switch b.Op {
	case BinAdd, BinSub, BinMul, BinDiv, BinMod, BinPow:
		return NUMBER
	case BinEq, BinNeq, BinGt, BinLt, BinGte, BinLte, BinAnd, BinOr:
		return BOOLEAN
	}
	return ANY
}
func (b *Binary) IsConstant() bool {
	return b.Left.IsConstant() && b.Right.IsConstant()
}
func (b *Binary) HasVariableReferences() bool {
	return b.Left.HasVariableReferences() || b.Right.HasVariableReferences()
}

// ArithmeticOp is an n-ary arithmetic function-call form (spec §3.3,
// §4.4): add/subtract/multiply/divide/max/min/power/modulo, each with a
// declared [min,max] operand arity.
type ArithmeticOp struct {
	Symbol     string
	Min, Max   int // Max < 0 means unbounded
	ResultType ValueType
}

var ArithmeticOps = map[string]ArithmeticOp{
	"add":      {"add", 2, -1, NUMBER},
	"subtract": {"subtract", 2, -1, NUMBER},
	"multiply": {"multiply", 2, -1, NUMBER},
	"divide":   {"divide", 2, -1, NUMBER},
	"max":      {"max", 1, -1, NUMBER},
	"min":      {"min", 1, -1, NUMBER},
	"power":    {"power", 2, 2, NUMBER},
	"modulo":   {"modulo", 2, 2, NUMBER},
}

// Arithmetic is an n-ary arithmetic expression, e.g. add(a, b, c).
type Arithmetic struct {
	Base
	Op       ArithmeticOp
	Operands []Expression
}

func (*Arithmetic) expressionNode() {}
func (a *Arithmetic) ExpressionType() ValueType { return a.Op.ResultType }
func (a *Arithmetic) IsConstant() bool {
	for _, o := range a.Operands {
		if !o.IsConstant() {
			return false
		}
	}
	return true
}
func (a *Arithmetic) HasVariableReferences() bool {
	for _, o := range a.Operands {
		if o.HasVariableReferences() {
			return true
		}
	}
	return false
}

// FunctionCall is a call to a registered function (spec §3.3).
type FunctionCall struct {
	Base
	Name string
	Args []Expression
}

func (*FunctionCall) expressionNode()          {}
func (*FunctionCall) ExpressionType() ValueType { return ANY }
func (*FunctionCall) IsConstant() bool          { return false }
func (f *FunctionCall) HasVariableReferences() bool {
	for _, a := range f.Args {
		if a.HasVariableReferences() {
			return true
		}
	}
	return false
}

// JsonPath is structural access into a nested value via a JSON-Path-style
// path string (spec §3.3); evaluated with tidwall/gjson.
type JsonPath struct {
	Base
	Source Expression
	Path   string
}

func (*JsonPath) expressionNode()          {}
func (*JsonPath) ExpressionType() ValueType { return ANY }
func (*JsonPath) IsConstant() bool          { return false }
func (j *JsonPath) HasVariableReferences() bool {
	return j.Source.HasVariableReferences()
}

// RestCall is a side-effectful HTTP call expression (spec §3.3).
type RestCall struct {
	Base
	URL     Expression
	Method  string
	Body    Expression
	Headers map[string]Expression
	Timeout Expression // optional; nil means the evaluator's 10-second default
}

func (*RestCall) expressionNode()          {}
func (*RestCall) ExpressionType() ValueType { return ANY }
func (*RestCall) IsConstant() bool          { return false }
func (*RestCall) HasVariableReferences() bool { return true }
