package validation

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var errNoJSON = errors.New("no JSON object found in response")

// fencePattern matches markdown code blocks with an optional language tag
var fencePattern = regexp.MustCompile("(?s)```(\\w*)\\s*\\n(.+?)\\n?```")

// ExtractJSON returns the JSON object embedded in a model response. Fenced
// json blocks win over bare objects found in surrounding prose.
func ExtractJSON(response string) (string, error) {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	for _, m := range fencePattern.FindAllStringSubmatch(response, -1) {
		lang := strings.ToLower(m[1])
		if lang != "" && lang != "json" {
			continue
		}
		content := strings.TrimSpace(m[2])
		if strings.HasPrefix(content, "{") && json.Valid([]byte(content)) {
			return content, nil
		}
	}

	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", errNoJSON
	}
	if obj := matchBraces(response[start:]); obj != "" && json.Valid([]byte(obj)) {
		return obj, nil
	}
	return "", errNoJSON
}

// matchBraces returns the prefix of s up to the brace closing s[0], skipping
// braces inside string literals.
func matchBraces(s string) string {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
