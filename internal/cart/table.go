package cart

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	digitsPattern   = regexp.MustCompile(`^\d+$`)
	tableURLPattern = regexp.MustCompile(`(?i)table[/=](\d+)`)
)

// ParseTableNumber extracts a table number from a scanned QR payload. It
// accepts bare digits, a JSON object with "table" or "tableNumber", or a URL
// containing table/<n> or table=<n>.
func ParseTableNumber(data string) (string, bool) {
	trimmed := strings.TrimSpace(data)
	if digitsPattern.MatchString(trimmed) {
		return trimmed, true
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(data), &payload); err == nil {
		for _, field := range []string{"table", "tableNumber"} {
			if table, ok := tableValue(payload[field]); ok {
				return table, true
			}
		}
	}

	if match := tableURLPattern.FindStringSubmatch(data); match != nil {
		return match[1], true
	}
	return "", false
}

func tableValue(v any) (string, bool) {
	switch value := v.(type) {
	case string:
		if value != "" {
			return value, true
		}
	case float64:
		if value != 0 {
			return fmt.Sprint(value), true
		}
	}
	return "", false
}
