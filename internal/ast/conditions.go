package ast

// ComparisonOp is a condition-level comparison or match operator (spec
// §3.3, §4.4). Range and membership operators carry operand-count
// requirements enforced by the parser/validator (invariant: rangeEnd
// present iff Op is Between/NotBetween).
type ComparisonOp string

const (
	CmpEq    ComparisonOp = "=="
	CmpNeq   ComparisonOp = "!="
	CmpGt    ComparisonOp = ">"
	CmpLt    ComparisonOp = "<"
	CmpGte   ComparisonOp = ">="
	CmpLte   ComparisonOp = "<="

	CmpContains    ComparisonOp = "contains"
	CmpNotContains ComparisonOp = "not_contains"
	CmpStartsWith  ComparisonOp = "starts_with"
	CmpEndsWith    ComparisonOp = "ends_with"
	CmpMatches     ComparisonOp = "matches"

	CmpBetween    ComparisonOp = "between"
	CmpNotBetween ComparisonOp = "not_between"

	CmpInList    ComparisonOp = "in_list"
	CmpNotInList ComparisonOp = "not_in_list"

	CmpAgeAtLeast  ComparisonOp = "age_at_least"
	CmpAgeLessThan ComparisonOp = "age_less_than"

	CmpLengthEquals      ComparisonOp = "length_equals"
	CmpLengthGreaterThan ComparisonOp = "length_greater_than"
	CmpLengthLessThan    ComparisonOp = "length_less_than"

	// Unary predicate forms carried on Comparison with Right == nil:
	// is_null, is_not_null, is_email, is_positive, ... (any "is_*" name,
	// see IsPredicateName). These reuse ComparisonOp for uniform dispatch
	// in the evaluator's condition visitor.
)

// IsRangeOp reports whether op requires a RangeEnd operand.
func (op ComparisonOp) IsRangeOp() bool {
	return op == CmpBetween || op == CmpNotBetween
}

// IsUnaryPredicate reports whether op is evaluated with only Left (no
// Right operand): the is_null/is_not_null/is_* family.
func (op ComparisonOp) IsUnaryPredicate() bool {
	return op == "is_null" || op == "is_not_null" || IsPredicateName(string(op))
}

// Comparison is a two- (or with RangeEnd, three-) operand comparison
// condition (spec §3.3).
type Comparison struct {
	Base
	Left     Expression
	Op       ComparisonOp
	Right    Expression // nil for unary predicates
	RangeEnd Expression // non-nil iff Op.IsRangeOp()
}

func (*Comparison) conditionNode() {}

// LogicalOp is AND, OR, or NOT (spec §3.3).
type LogicalOp string

const (
	LogAnd LogicalOp = "AND"
	LogOr  LogicalOp = "OR"
	LogNot LogicalOp = "NOT"
)

// Logical combines sub-conditions: NOT takes exactly one operand, AND/OR
// take two or more (spec §3.3 invariant).
type Logical struct {
	Base
	Op       LogicalOp
	Operands []Condition
}

func (*Logical) conditionNode() {}

// ExpressionCondition wraps any boolean-valued expression so it can be
// used wherever a Condition is expected (spec §3.3).
type ExpressionCondition struct {
	Base
	Expr Expression
}

func (*ExpressionCondition) conditionNode() {}
