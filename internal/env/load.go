// Package env loads KEY=VALUE files into the process environment before config is read.
package env

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Load reads path (e.g. ".env") and sets one environment variable per KEY=VALUE line.
// Blank lines, # comments and an optional "export " prefix are handled. Variables that are
// already set in the environment win over the file. A missing file is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("env: %w", err)
	}
	defer f.Close()

	vars, err := parse(bufio.NewScanner(f))
	if err != nil {
		return fmt.Errorf("env: %s: %w", path, err)
	}
	for _, kv := range vars {
		if _, set := os.LookupEnv(kv[0]); set {
			continue
		}
		if err := os.Setenv(kv[0], kv[1]); err != nil {
			return fmt.Errorf("env: %s: %w", kv[0], err)
		}
	}
	return nil
}

func parse(scanner *bufio.Scanner) ([][2]string, error) {
	var out [][2]string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out = append(out, [2]string{key, unquote(strings.TrimSpace(value))})
	}
	return out, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' && v[len(v)-1] == '"' || v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}
