package server

import (
	"regexp"
	"strconv"
	"strings"
)

// idListPattern builds the validation pattern for list-style id segments:
// one or more digit groups joined by the configured delimiter.
func idListPattern(delimiter string) *regexp.Regexp {
	return regexp.MustCompile(`^\d+(` + regexp.QuoteMeta(delimiter) + `\d+)*$`)
}

// parseIDs decodes a delimited id-list path segment. A segment that does not
// match the pattern yields an empty list, not an error: malformed input
// degrades to an empty match set by design, and handlers render it as an
// empty collection rather than a 400.
func (s *Server) parseIDs(segment string) []int {
	if !s.idList.MatchString(segment) {
		return nil
	}
	parts := strings.Split(segment, s.idDelimiter)
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

// pathTail strips the leading slash a catch-all route parameter carries.
func pathTail(param string) string {
	return strings.TrimPrefix(param, "/")
}
