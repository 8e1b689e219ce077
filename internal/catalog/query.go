package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// clause is one parsed filter term. A clause with an empty Field is a bare
// term matched against the kind's default text fields.
type clause struct {
	Field string
	Term  string
}

// splitClauses breaks a raw query string into clauses. The wire format is a
// `/`-separated list, e.g. "genre:rock/year:1994"; empty segments are
// dropped so trailing slashes are harmless.
func splitClauses(query string) []clause {
	var clauses []clause
	for _, seg := range strings.Split(query, "/") {
		if seg == "" {
			continue
		}
		field, term, ok := strings.Cut(seg, ":")
		if !ok {
			clauses = append(clauses, clause{Term: seg})
			continue
		}
		clauses = append(clauses, clause{Field: field, Term: term})
	}
	return clauses
}

// valueMatches reports whether a field value satisfies a term: substring,
// case-insensitive for strings, exact after numeric parse for everything
// else.
func valueMatches(value any, term string) bool {
	switch v := value.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), strings.ToLower(term))
	case int:
		n, err := strconv.Atoi(term)
		return err == nil && n == v
	case float64:
		f, err := strconv.ParseFloat(term, 64)
		return err == nil && f == v
	default:
		return fmt.Sprint(v) == term
	}
}

// compareValues orders two scalar field values for the distinct-values
// listing: numerically when both sides are numbers, lexically otherwise.
func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
