// Package adapters mounts a switchyard.Router on gin, echo or fiber.
package adapters

import "strings"

// PartType classifies one segment of a route path
type PartType int

const (
	StaticPart PartType = iota
	ParameterPart
	WildcardPart
)

// PathPart is one parsed path segment
type PathPart struct {
	Type  PartType
	Value string // literal text, parameter name or wildcard name
}

// ParsePath splits a route path into parts. Parameters may be written
// {name} or :name and wildcards {*name} or *name.
func ParsePath(path string) []PathPart {
	var parts []PathPart
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		parts = append(parts, PathPart{Type: StaticPart, Value: "/"})

		switch {
		case strings.HasPrefix(seg, "{*") && strings.HasSuffix(seg, "}"):
			parts = append(parts, PathPart{Type: WildcardPart, Value: seg[2 : len(seg)-1]})
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			parts = append(parts, PathPart{Type: ParameterPart, Value: seg[1 : len(seg)-1]})
		case strings.HasPrefix(seg, ":"):
			parts = append(parts, PathPart{Type: ParameterPart, Value: seg[1:]})
		case strings.HasPrefix(seg, "*"):
			parts = append(parts, PathPart{Type: WildcardPart, Value: seg[1:]})
		default:
			parts = append(parts, PathPart{Type: StaticPart, Value: seg})
		}
	}
	if len(parts) == 0 || (len(path) > 1 && strings.HasSuffix(path, "/")) {
		parts = append(parts, PathPart{Type: StaticPart, Value: "/"})
	}
	return parts
}

// colonPath renders parts in the :name form shared by gin, echo and fiber.
// namedWildcard selects gin's *name over the bare * echo and fiber expect.
func colonPath(path string, namedWildcard bool) (string, string) {
	var b strings.Builder
	wildcard := ""
	for _, part := range ParsePath(path) {
		switch part.Type {
		case ParameterPart:
			b.WriteString(":" + part.Value)
		case WildcardPart:
			wildcard = part.Value
			if wildcard == "" {
				wildcard = "path"
			}
			if namedWildcard {
				b.WriteString("*" + wildcard)
			} else {
				b.WriteString("*")
			}
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String(), wildcard
}
