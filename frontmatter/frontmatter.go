// Package frontmatter parses the small metadata header that prefixes a
// Markdown post:
//
//	---
//	title: "Hello"
//	tags: [go, "web"]
//	---
//	body...
//
// Only flat key/value pairs are understood. A value is either a scalar string
// or a bracketed, comma-separated sequence of strings. Parsing never fails; a
// document without a recognizable header yields an empty mapping and the whole
// input as body.
package frontmatter

import (
	"strings"
)

const delimiter = "---"

// Kind tells which variant a Value holds.
type Kind int

const (
	KindScalar Kind = iota
	KindSequence
)

// Value is either a scalar string or a sequence of strings.
type Value struct {
	kind  Kind
	str   string
	items []string
}

// Scalar returns a scalar Value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, str: s}
}

// Sequence returns a sequence Value. A nil argument is stored as an empty sequence.
func Sequence(items ...string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{kind: KindSequence, items: out}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// String returns the scalar string and true when v is a scalar.
func (v Value) String() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.str, true
}

// Strings returns a copy of the sequence and true when v is a sequence.
func (v Value) Strings() ([]string, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	out := make([]string, len(v.items))
	copy(out, v.items)
	return out, true
}

// FrontMatter maps header keys to their values.
type FrontMatter map[string]Value

// Has reports whether key was present in the header.
func (fm FrontMatter) Has(key string) bool {
	_, ok := fm[key]
	return ok
}

// Scalar returns the scalar stored under key. It reports false when the key is
// absent or holds a sequence.
func (fm FrontMatter) Scalar(key string) (string, bool) {
	v, ok := fm[key]
	if !ok {
		return "", false
	}
	return v.String()
}

// Sequence returns the sequence stored under key. It reports false when the
// key is absent or holds a scalar.
func (fm FrontMatter) Sequence(key string) ([]string, bool) {
	v, ok := fm[key]
	if !ok {
		return nil, false
	}
	return v.Strings()
}

// Parse splits raw into its header mapping and body. The body is the exact
// text following the closing delimiter line.
func Parse(raw string) (FrontMatter, string) {
	header, body, ok := split(raw)
	if !ok {
		return FrontMatter{}, raw
	}
	fm := FrontMatter{}
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, ":")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		fm[key] = parseValue(strings.TrimSpace(line[idx+1:]))
	}
	return fm, body
}

// split locates the header region. The opening delimiter may be preceded by
// whitespace; both delimiter lines may carry trailing whitespace, and the
// closing one must end with a line break.
func split(raw string) (header, body string, ok bool) {
	rest := strings.TrimLeft(raw, " \t\r\n")
	if !strings.HasPrefix(rest, delimiter) {
		return "", "", false
	}
	rest = rest[len(delimiter):]
	nl := strings.IndexByte(rest, '\n')
	if nl < 0 || strings.TrimSpace(rest[:nl]) != "" {
		return "", "", false
	}
	rest = rest[nl+1:]

	// The header ends at the first delimiter line after at least one header line.
	offset := 0
	for {
		end := strings.IndexByte(rest[offset:], '\n')
		if end < 0 {
			return "", "", false
		}
		lineStart := offset + end + 1
		next := strings.IndexByte(rest[lineStart:], '\n')
		if next < 0 {
			return "", "", false
		}
		candidate := rest[lineStart : lineStart+next]
		if isDelimiterLine(candidate) {
			return rest[:offset+end], rest[lineStart+next+1:], true
		}
		offset = lineStart
	}
}

func isDelimiterLine(line string) bool {
	if !strings.HasPrefix(line, delimiter) {
		return false
	}
	return strings.TrimSpace(line[len(delimiter):]) == ""
}

func parseValue(raw string) Value {
	raw = unquote(raw)
	if len(raw) >= 2 && strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSpace(raw[1 : len(raw)-1])
		if inner == "" {
			return Sequence()
		}
		parts := strings.Split(inner, ",")
		for i, p := range parts {
			parts[i] = unquote(strings.TrimSpace(p))
		}
		return Value{kind: KindSequence, items: parts}
	}
	return Scalar(raw)
}

// unquote strips one matching pair of outer single or double quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return s[1 : len(s)-1]
	}
	return s
}
