package webull

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tradegains"
)

// LoadOrders reads every orders export matching the patterns under folder
// and returns the merged trades, ordered by execution time across files.
func LoadOrders(folder string, patterns []string) ([]tradegains.Trade, error) {
	paths, err := findExportPaths(folder, patterns)
	if err != nil {
		return nil, err
	}
	var orders []timedOrder
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read orders file %q: %w", path, err)
		}
		fileOrders, err := decodeOrders(data)
		if err != nil {
			return nil, fmt.Errorf("orders file %q: %w", path, err)
		}
		orders = append(orders, fileOrders...)
	}
	return sortOrders(orders), nil
}

// LoadTransfers reads every transfers export matching the patterns under
// folder and returns the merged external cash-flow series.
func LoadTransfers(folder string, patterns []string) ([]tradegains.CashFlow, error) {
	paths, err := findExportPaths(folder, patterns)
	if err != nil {
		return nil, err
	}
	var flows []tradegains.CashFlow
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("could not read transfers file %q: %w", path, err)
		}
		fileFlows, err := decodeTransfers(data)
		if err != nil {
			return nil, fmt.Errorf("transfers file %q: %w", path, err)
		}
		flows = append(flows, fileFlows...)
	}
	return tradegains.MergeFlows(flows), nil
}

// findExportPaths globs each pattern under folder and returns the matches,
// deduplicated and sorted. At least one file must match.
func findExportPaths(folder string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(folder, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad file pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files match patterns %v under %q", patterns, folder)
	}
	sort.Strings(paths)
	return paths, nil
}
