package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/packcheck/packcheck/internal/schema"
)

const resultsFile = "results.json"

// SaveResult writes the run result into <outputDir>/<pack>_<timestamp>/
// and returns that directory.
func SaveResult(res schema.RunResult, outputDir string) (string, error) {
	dir := filepath.Join(outputDir, safeName(res.Pack)+"_"+res.Timestamp.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	fh, err := os.Create(filepath.Join(dir, resultsFile))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", resultsFile, err)
	}
	defer fh.Close()

	enc := json.NewEncoder(fh)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	return dir, nil
}

// LoadResult reads a previously saved run result back from a run
// directory, for report re-rendering.
func LoadResult(fromDir string) (schema.RunResult, error) {
	var res schema.RunResult
	data, err := os.ReadFile(filepath.Join(fromDir, resultsFile))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", resultsFile, err)
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return res, fmt.Errorf("parse %s: %w", resultsFile, err)
	}
	return res, nil
}

// safeName replaces characters not safe for file paths.
func safeName(s string) string {
	invalid := []rune{'/', '\\', ':', '*', '?', '"', '<', '>', '|'}
	rs := []rune(s)
	for i, r := range rs {
		for _, bad := range invalid {
			if r == bad {
				rs[i] = '_'
			}
		}
	}
	return string(rs)
}
