package utils

import (
	"fmt"
	"strings"
)

// ParseEnvFlags merges repeated --env values into one map. Each value
// holds KEY=VALUE pairs separated by commas or semicolons; later
// assignments win.
func ParseEnvFlags(values []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, value := range values {
		pairs := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ';' })
		for _, pair := range pairs {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			key, val, ok := strings.Cut(pair, "=")
			key = strings.TrimSpace(key)
			if !ok || key == "" || strings.ContainsAny(key, " \t") {
				return nil, fmt.Errorf("invalid env assignment %q: want KEY=VALUE", pair)
			}
			env[key] = strings.TrimSpace(val)
		}
	}
	return env, nil
}
