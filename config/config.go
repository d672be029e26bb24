// Package config loads and validates the analyzer's YAML configuration.
//
// The file is a fixed schema: unknown keys are tolerated, missing ones get
// defaults before validation. String values may embed ${a.b.c} placeholders
// that are resolved against the configuration tree itself, so a value can
// be written once and referenced elsewhere.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"gopkg.in/yaml.v3"

	"tradegains"
	"tradegains/date"
)

// Input names a folder of CSV exports and the glob patterns to pick files
// up by.
type Input struct {
	Folder   string   `yaml:"folder"`
	Patterns []string `yaml:"patterns"`
}

// Enabled reports whether this input is configured at all.
func (in Input) Enabled() bool { return in.Folder != "" }

// Config is the full configuration tree.
type Config struct {
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`

	Trades    Input `yaml:"trades"`
	Transfers Input `yaml:"transfers"`

	// Provider is the registered price source name used for portfolio
	// symbols, and for the benchmark unless overridden below.
	Provider  string `yaml:"provider"`
	Benchmark struct {
		Symbol   string `yaml:"symbol"`
		Provider string `yaml:"provider"`
	} `yaml:"benchmark"`

	Analysis struct {
		Start             string `yaml:"start"`
		End               string `yaml:"end"`
		Method            string `yaml:"method"`
		AllowShortSelling bool   `yaml:"allow_short_selling"`
	} `yaml:"analysis"`

	// IRR bounds the money-weighted rate solver. A zero field means the
	// built-in default.
	IRR struct {
		MinRate       float64 `yaml:"min_rate"`
		MaxRate       float64 `yaml:"max_rate"`
		Tolerance     float64 `yaml:"tolerance"`
		MaxIterations int     `yaml:"max_iterations"`
	} `yaml:"irr"`

	Output struct {
		Dir    string `yaml:"dir"`
		Charts *bool  `yaml:"charts"`
	} `yaml:"output"`

	EODHD struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"eodhd"`
}

const (
	methodBoth = "both"
)

// Load reads, interpolates, defaults and validates a configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(raw)
}

// Parse is Load on bytes already in hand.
func Parse(raw []byte) (*Config, error) {
	resolved, err := interpolate(raw)
	if err != nil {
		return nil, err
	}
	c := new(Config)
	if err := yaml.Unmarshal(resolved, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// Default returns the configuration a missing file would produce.
func Default() *Config {
	c := new(Config)
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Trades.Folder == "" {
		c.Trades.Folder = "."
	}
	if len(c.Trades.Patterns) == 0 {
		c.Trades.Patterns = []string{"*Orders*.csv"}
	}
	if c.Transfers.Enabled() && len(c.Transfers.Patterns) == 0 {
		c.Transfers.Patterns = []string{"*Transfers*.csv"}
	}
	if c.Provider == "" {
		c.Provider = "yahoo"
	}
	if c.Benchmark.Symbol == "" {
		c.Benchmark.Symbol = "VTI"
	}
	if c.Analysis.Method == "" {
		c.Analysis.Method = methodBoth
	}
	def := tradegains.DefaultIRRParams()
	if c.IRR.MinRate == 0 {
		c.IRR.MinRate = def.MinRate
	}
	if c.IRR.MaxRate == 0 {
		c.IRR.MaxRate = def.MaxRate
	}
	if c.IRR.Tolerance == 0 {
		c.IRR.Tolerance = def.Tolerance
	}
	if c.IRR.MaxIterations == 0 {
		c.IRR.MaxIterations = def.MaxIterations
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./out"
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	switch c.Analysis.Method {
	case string(tradegains.TimeWeighted), string(tradegains.MoneyWeighted), methodBoth:
	default:
		return fmt.Errorf("analysis.method %q must be %q, %q or %q",
			c.Analysis.Method, tradegains.TimeWeighted, tradegains.MoneyWeighted, methodBoth)
	}

	window, err := c.Window()
	if err != nil {
		return err
	}
	if !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
		return fmt.Errorf("analysis window ends before it starts (%s)", window)
	}

	if c.IRR.MinRate <= -1 {
		return fmt.Errorf("irr.min_rate %v must be greater than -1", c.IRR.MinRate)
	}
	if c.IRR.MaxRate <= c.IRR.MinRate {
		return fmt.Errorf("irr.max_rate %v must exceed irr.min_rate %v", c.IRR.MaxRate, c.IRR.MinRate)
	}
	if c.IRR.Tolerance <= 0 {
		return fmt.Errorf("irr.tolerance %v must be positive", c.IRR.Tolerance)
	}
	if c.IRR.MaxIterations <= 0 {
		return fmt.Errorf("irr.max_iterations %d must be positive", c.IRR.MaxIterations)
	}
	return nil
}

// Window returns the configured analysis range; either end may be zero,
// meaning "let the data decide".
func (c *Config) Window() (date.Range, error) {
	var r date.Range
	var err error
	if c.Analysis.Start != "" {
		if r.From, err = date.Parse(c.Analysis.Start); err != nil {
			return date.Range{}, fmt.Errorf("analysis.start: %w", err)
		}
	}
	if c.Analysis.End != "" {
		if r.To, err = date.Parse(c.Analysis.End); err != nil {
			return date.Range{}, fmt.Errorf("analysis.end: %w", err)
		}
	}
	return r, nil
}

// Methods translates the method setting for the analyzer; "both" means no
// restriction.
func (c *Config) Methods() []tradegains.Method {
	switch c.Analysis.Method {
	case string(tradegains.TimeWeighted):
		return []tradegains.Method{tradegains.TimeWeighted}
	case string(tradegains.MoneyWeighted):
		return []tradegains.Method{tradegains.MoneyWeighted}
	default:
		return nil
	}
}

// IRRParams returns the solver bounds.
func (c *Config) IRRParams() tradegains.IRRParams {
	return tradegains.IRRParams{
		MinRate:       c.IRR.MinRate,
		MaxRate:       c.IRR.MaxRate,
		Tolerance:     c.IRR.Tolerance,
		MaxIterations: c.IRR.MaxIterations,
	}
}

// BenchmarkProvider returns the price source name for the benchmark,
// falling back to the portfolio's provider.
func (c *Config) BenchmarkProvider() string {
	if c.Benchmark.Provider != "" {
		return c.Benchmark.Provider
	}
	return c.Provider
}

// ChartsEnabled reports whether PNG charts should be written. On by
// default.
func (c *Config) ChartsEnabled() bool {
	return c.Output.Charts == nil || *c.Output.Charts
}

// EODHDKey returns the EODHD API key, from the file or the EODHD_API_KEY
// environment variable.
func (c *Config) EODHDKey() string {
	if c.EODHD.APIKey != "" {
		return c.EODHD.APIKey
	}
	return os.Getenv("EODHD_API_KEY")
}

// placeholderPattern matches ${dotted.path} references.
var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// interpolate resolves ${a.b.c} placeholders in string values against the
// configuration tree itself. Resolution runs in passes so a placeholder may
// reference a value that itself contains one; a placeholder that survives
// all passes is an error. Replacements are spliced back into the document
// node tree so every other scalar keeps its source text.
func interpolate(raw []byte) ([]byte, error) {
	if !placeholderPattern.Match(raw) {
		return raw, nil
	}
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	const maxPasses = 5
	unresolved := false
	for pass := 0; pass < maxPasses; pass++ {
		replaced, remaining, err := resolveTree(tree, tree)
		if err != nil {
			return nil, err
		}
		unresolved = remaining
		if !remaining {
			break
		}
		if !replaced {
			return nil, fmt.Errorf("config placeholders reference each other in a loop")
		}
	}
	if unresolved {
		return nil, fmt.Errorf("config placeholders nest more than %d deep", maxPasses)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := rewriteNode(&doc, tree); err != nil {
		return nil, err
	}
	return yaml.Marshal(&doc)
}

// rewriteNode replaces placeholders in scalar nodes with values from the
// fully resolved tree.
func rewriteNode(node *yaml.Node, tree any) error {
	if node.Kind == yaml.ScalarNode && strings.Contains(node.Value, "${") {
		out, _, _, err := resolveString(node.Value, tree)
		if err != nil {
			return err
		}
		node.Value = out
		node.Tag = "!!str"
		return nil
	}
	for _, child := range node.Content {
		if err := rewriteNode(child, tree); err != nil {
			return err
		}
	}
	return nil
}

// resolveTree walks node, resolving placeholders in every string against
// root. It reports whether anything was replaced and whether placeholders
// remain.
func resolveTree(node, root any) (replaced, remaining bool, err error) {
	switch n := node.(type) {
	case map[string]any:
		for key, value := range n {
			if s, ok := value.(string); ok {
				out, rep, rem, err := resolveString(s, root)
				if err != nil {
					return false, false, err
				}
				n[key] = out
				replaced = replaced || rep
				remaining = remaining || rem
				continue
			}
			rep, rem, err := resolveTree(value, root)
			if err != nil {
				return false, false, err
			}
			replaced = replaced || rep
			remaining = remaining || rem
		}
	case []any:
		for i, value := range n {
			if s, ok := value.(string); ok {
				out, rep, rem, err := resolveString(s, root)
				if err != nil {
					return false, false, err
				}
				n[i] = out
				replaced = replaced || rep
				remaining = remaining || rem
				continue
			}
			rep, rem, err := resolveTree(value, root)
			if err != nil {
				return false, false, err
			}
			replaced = replaced || rep
			remaining = remaining || rem
		}
	}
	return replaced, remaining, nil
}

func resolveString(s string, root any) (out string, replaced, remaining bool, err error) {
	out = s
	for _, match := range placeholderPattern.FindAllStringSubmatch(s, -1) {
		value, err := lookup(root, match[1])
		if err != nil {
			return "", false, false, err
		}
		if strings.Contains(value, "${") {
			// The referenced value is itself unresolved, retry next pass.
			continue
		}
		out = strings.Replace(out, match[0], value, 1)
		replaced = true
	}
	remaining = placeholderPattern.MatchString(out)
	return out, replaced, remaining, nil
}

// lookup resolves a dotted path like "output.dir" in the tree.
func lookup(root any, dotted string) (string, error) {
	jval, err := jsonpath.Get("$."+dotted, root)
	if err != nil {
		return "", fmt.Errorf("unresolvable config placeholder ${%s}: %w", dotted, err)
	}
	// jsonpath sometimes hands back a one-element list instead of the
	// value itself.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return fmt.Sprint(jval), nil
}
