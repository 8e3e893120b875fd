package shell

import (
	"fmt"
	"os"
	"strings"
)

// ExpandHome expands a leading ~ and any $VAR or ${VAR} in input.
// Unset variables expand to the empty string.
func ExpandHome(input string) (string, error) {
	result := input
	if result == "~" || strings.HasPrefix(result, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		result = home + result[1:]
	}

	if i := strings.Index(result, "${"); i >= 0 && !strings.Contains(result[i:], "}") {
		return "", fmt.Errorf("unclosed variable brace in input: %s", input)
	}
	return os.ExpandEnv(result), nil
}
