package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Names of the variables the launcher reads.
const (
	ConfigPath = "MARBLES_CONFIG"
	LogLevel   = "MARBLES_LOG_LEVEL"
	Seed       = "MARBLES_SEED"
)

// Parse reads KEY=VALUE lines from path. Empty lines and # comments are skipped and
// surrounding quotes are removed from values. A missing file yields an empty map.
func Parse(path string) (map[string]string, error) {
	vars := map[string]string{}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimPrefix(line, "export "), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%s:%d: expected KEY=VALUE", path, n)
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, scanner.Err()
}

// Load sets the variables from path that are not already set in the environment,
// so the real environment wins over the file.
func Load(path string) error {
	vars, err := Parse(path)
	if err != nil {
		return err
	}
	for key, value := range vars {
		if _, set := os.LookupEnv(key); set {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}
