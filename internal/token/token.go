// Package token defines the lexical token model for the rules DSL:
// typed tokens tagged by category (literal, identifier, operator,
// keyword, punctuation, special), per spec §3.2.
package token

import "github.com/fireflyframework/rule-engine-go/internal/diag"

// Type identifies the category and specific kind of a token. Symbolic and
// keyword spellings of the same operator share a Type (e.g. ">=" and
// "at_least" both lex to GTE).
type Type int

const (
	ILLEGAL Type = iota
	EOF
	NEWLINE

	// Literals
	NUMBER
	STRING
	BOOLEAN
	NULL

	IDENTIFIER

	// Punctuation
	LPAREN
	RPAREN
	LBRACKET
	RBRACKET
	COMMA
	DOT
	COLON
	ARROW // "->"

	// Arithmetic operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	POWER // "**"

	// Comparison / assignment operators
	EQ     // "=="
	NEQ    // "!="
	GT     // ">"
	LT     // "<"
	GTE    // ">=" / "at_least"
	LTE    // "<=" / "at_most"
	ASSIGN // "="

	PLUS_ASSIGN  // "+="
	MINUS_ASSIGN // "-="
	STAR_ASSIGN  // "*="
	SLASH_ASSIGN // "/="

	// Logical
	AND
	OR
	NOT

	// String / collection match operators (multi-word forms)
	CONTAINS
	NOT_CONTAINS
	STARTS_WITH
	ENDS_WITH
	MATCHES
	BETWEEN
	NOT_BETWEEN
	IN_LIST
	NOT_IN_LIST
	IS_NULL
	IS_NOT_NULL
	AGE_AT_LEAST
	AGE_LESS_THAN
	LENGTH_EQUALS
	LENGTH_GREATER_THAN
	LENGTH_LESS_THAN

	// Unary predicate / string operator identifiers; these lex as plain
	// IDENTIFIER and are recognized by name in the parser (EXISTS,
	// IS_NUMBER, TO_UPPER, ...), so no dedicated Type is reserved here.

	// Keywords
	KW_IF
	KW_THEN
	KW_ELSE
	KW_WHEN
	KW_SET
	KW_TO
	KW_CALCULATE
	KW_RUN
	KW_AS
	KW_CALL
	KW_WITH
	KW_ADD
	KW_SUBTRACT
	KW_MULTIPLY
	KW_DIVIDE
	KW_FROM
	KW_BY
	KW_APPEND
	KW_PREPEND
	KW_REMOVE
	KW_CIRCUIT_BREAKER
	KW_FOREACH
	KW_IN
	KW_DO
	KW_WHILE
	KW_VARIABLE
)

var names = map[Type]string{
	ILLEGAL: "ILLEGAL", EOF: "EOF", NEWLINE: "NEWLINE",
	NUMBER: "NUMBER", STRING: "STRING", BOOLEAN: "BOOLEAN", NULL: "NULL",
	IDENTIFIER: "IDENTIFIER",
	LPAREN:     "(", RPAREN: ")", LBRACKET: "[", RBRACKET: "]",
	COMMA: ",", DOT: ".", COLON: ":", ARROW: "->",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%", POWER: "**",
	EQ: "==", NEQ: "!=", GT: ">", LT: "<", GTE: ">=", LTE: "<=", ASSIGN: "=",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	AND: "AND", OR: "OR", NOT: "NOT",
	CONTAINS: "CONTAINS", NOT_CONTAINS: "NOT_CONTAINS",
	STARTS_WITH: "STARTS_WITH", ENDS_WITH: "ENDS_WITH", MATCHES: "MATCHES",
	BETWEEN: "BETWEEN", NOT_BETWEEN: "NOT_BETWEEN",
	IN_LIST: "IN_LIST", NOT_IN_LIST: "NOT_IN_LIST",
	IS_NULL: "IS_NULL", IS_NOT_NULL: "IS_NOT_NULL",
	AGE_AT_LEAST: "AGE_AT_LEAST", AGE_LESS_THAN: "AGE_LESS_THAN",
	LENGTH_EQUALS: "LENGTH_EQUALS", LENGTH_GREATER_THAN: "LENGTH_GREATER_THAN",
	LENGTH_LESS_THAN: "LENGTH_LESS_THAN",
	KW_IF:            "if", KW_THEN: "then", KW_ELSE: "else", KW_WHEN: "when",
	KW_SET: "set", KW_TO: "to", KW_CALCULATE: "calculate", KW_RUN: "run",
	KW_AS: "as", KW_CALL: "call", KW_WITH: "with", KW_ADD: "add",
	KW_SUBTRACT: "subtract", KW_MULTIPLY: "multiply", KW_DIVIDE: "divide",
	KW_FROM: "from", KW_BY: "by", KW_APPEND: "append", KW_PREPEND: "prepend",
	KW_REMOVE: "remove", KW_CIRCUIT_BREAKER: "circuit_breaker",
	KW_FOREACH: "forEach", KW_IN: "in", KW_DO: "do", KW_WHILE: "while",
	KW_VARIABLE: "variable",
}

func (t Type) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Keywords maps the canonical lowercase spelling of every reserved word
// to its Type. Multi-word operators assembled by the lexer's lookahead
// (e.g. "is_null", "starts_with") are also registered here so the parser
// and lexer share one table.
var Keywords = map[string]Type{
	"if": KW_IF, "then": KW_THEN, "else": KW_ELSE, "when": KW_WHEN,
	"set": KW_SET, "to": KW_TO, "calculate": KW_CALCULATE, "run": KW_RUN,
	"as": KW_AS, "call": KW_CALL, "with": KW_WITH, "add": KW_ADD,
	"subtract": KW_SUBTRACT, "multiply": KW_MULTIPLY, "divide": KW_DIVIDE,
	"from": KW_FROM, "by": KW_BY, "append": KW_APPEND, "prepend": KW_PREPEND,
	"remove": KW_REMOVE, "circuit_breaker": KW_CIRCUIT_BREAKER,
	"foreach": KW_FOREACH, "in": KW_IN, "do": KW_DO, "while": KW_WHILE,
	"variable": KW_VARIABLE,

	"and": AND, "or": OR, "not": NOT,
	"contains": CONTAINS, "not_contains": NOT_CONTAINS,
	"starts_with": STARTS_WITH, "ends_with": ENDS_WITH, "matches": MATCHES,
	"between": BETWEEN, "not_between": NOT_BETWEEN,
	"in_list": IN_LIST, "not_in_list": NOT_IN_LIST,
	"is_null": IS_NULL, "is_not_null": IS_NOT_NULL,
	"at_least": GTE, "at_most": LTE,
	"age_at_least": AGE_AT_LEAST, "age_less_than": AGE_LESS_THAN,
	"length_equals": LENGTH_EQUALS, "length_greater_than": LENGTH_GREATER_THAN,
	"length_less_than": LENGTH_LESS_THAN,
	"equals":           EQ, "not_equals": NEQ,
}

// MultiWordPrefixes are the single words after which the lexer attempts
// to join with a following word (across whitespace or underscore) to
// find a known multi-word operator, per spec §4.1.
var MultiWordPrefixes = map[string]bool{
	"not": true, "is": true, "in": true, "starts": true, "ends": true,
	"at": true, "age": true, "length": true,
}

// Token is a single lexical unit: its Type, original lexeme text, an
// optional decoded literal value (for NUMBER/STRING/BOOLEAN literals),
// and its source Location.
type Token struct {
	Type     Type
	Lexeme   string
	Literal  any
	Location diag.Location
}

func (t Token) String() string {
	return t.Lexeme
}

// IsComparisonOp reports whether the token type is one of the binary
// comparison/match operators recognized by the condition parser.
func IsComparisonOp(t Type) bool {
	switch t {
	case EQ, NEQ, GT, LT, GTE, LTE, CONTAINS, NOT_CONTAINS, STARTS_WITH,
		ENDS_WITH, MATCHES, BETWEEN, NOT_BETWEEN, IN_LIST, NOT_IN_LIST,
		AGE_AT_LEAST, AGE_LESS_THAN, LENGTH_EQUALS, LENGTH_GREATER_THAN,
		LENGTH_LESS_THAN:
		return true
	}
	return false
}

// IsRangeOp reports whether the operator requires a rangeEnd operand.
func IsRangeOp(t Type) bool {
	return t == BETWEEN || t == NOT_BETWEEN
}
