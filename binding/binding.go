// Package binding fills ${path} placeholders in notation trees from
// JSON-like data before layout.
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ByLCY/mathbox/notation"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// 若 data 为空或路径不存在，则保留原占位符。
func Interpolate(text string, data any) string {
	out, _ := interpolate(text, data)
	return out
}

// Apply 替换树中所有记号文本与属性值里的占位符，返回无法解析的路径（去重，按出现顺序）。
// 必须在 notation.Freeze 之前调用。
func Apply(root *notation.Node, data any) []string {
	if root == nil {
		return nil
	}
	seen := map[string]bool{}
	var missing []string
	record := func(paths []string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				missing = append(missing, p)
			}
		}
	}
	root.Walk(func(n *notation.Node) bool {
		if n.IsToken() {
			text, miss := interpolate(n.Text, data)
			n.Text = text
			record(miss)
		}
		for k, v := range n.Attrs {
			out, miss := interpolate(v, data)
			n.Attrs[k] = out
			record(miss)
		}
		return true
	})
	return missing
}

func interpolate(text string, data any) (string, []string) {
	if !strings.Contains(text, "${") {
		return text, nil
	}
	var missing []string
	out := exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		groups := exprPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		path := strings.TrimSpace(groups[1])
		if path == "" {
			return match
		}
		if val, ok := Lookup(data, path); ok {
			return formatValue(val)
		}
		missing = append(missing, path)
		return match
	})
	return out, missing
}

// Lookup resolves a dotted path with optional [i] indexes, e.g.
// `coeffs[2].value`.
func Lookup(data any, path string) (any, bool) {
	if data == nil {
		return nil, false
	}
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := parseSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			current, ok = descendMap(current, name)
			if !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			current, ok = descendArray(current, idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

func parseSegment(segment string) (string, []int, bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, segment != ""
	}
	name := segment[:i]
	rest := segment[i:]
	var indexes []int
	for len(rest) > 0 {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func descendMap(current any, key string) (any, bool) {
	switch c := current.(type) {
	case map[string]any:
		val, ok := c[key]
		return val, ok
	case map[string]string:
		val, ok := c[key]
		return val, ok
	default:
		return nil, false
	}
}

func descendArray(current any, idx int) (any, bool) {
	switch c := current.(type) {
	case []any:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	case []string:
		if idx < 0 || idx >= len(c) {
			return nil, false
		}
		return c[idx], true
	default:
		return nil, false
	}
}

// formatValue 让 JSON 数字以最短形式输出，1 而不是 1e+00。
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
