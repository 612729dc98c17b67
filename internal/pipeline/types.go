package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/woozymasta/pathrules"
)

// Summary reports the outcome of a batch build.
type Summary struct {
	// Files is the number of sources found.
	Files int
	// Failed counts sources that could not be read or had unresolved includes.
	Failed int
}

// Succeeded is the number of sources transpiled without errors.
func (s Summary) Succeeded() int {
	return s.Files - s.Failed
}

// Pipeline transpiles every shader under a root directory into the output tree
type Pipeline struct {
	config  Config
	matcher *pathrules.Matcher
	digests *lru.Cache[string, uint64]
}

// New creates a new pipeline with the given configuration
func New(config Config) (*Pipeline, error) {
	defaults := DefaultConfig()
	if config.Workers <= 0 {
		config.Workers = defaults.Workers
	}
	if config.CacheSize <= 0 {
		config.CacheSize = defaults.CacheSize
	}

	matcher, err := newMatcher(config)
	if err != nil {
		return nil, err
	}

	digests, err := lru.New[string, uint64](config.CacheSize)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:  config,
		matcher: matcher,
		digests: digests,
	}, nil
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.config
}

// newMatcher compiles the source selection rules: one include rule per
// extension, then the output directory when it sits inside the root, then
// the exclude patterns and the ignore file. The last matching rule wins and
// anything unmatched is excluded.
func newMatcher(config Config) (*pathrules.Matcher, error) {
	rules := pathrules.ParseExtensions(config.Options.Extensions)

	if rel, ok := within(config.Options.RootDir, config.Options.OutDir); ok && rel != "." {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: "/" + rel + "/"})
	}

	for _, pattern := range config.Exclude {
		rules = append(rules, pathrules.Rule{Action: pathrules.ActionExclude, Pattern: pattern})
	}

	if config.IgnoreFile != "" {
		ignored, err := pathrules.LoadRulesFile(config.IgnoreFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load ignore file: %w", err)
		}
		rules = pathrules.MergeRules(rules, ignored)
	}

	matcher, err := pathrules.NewMatcher(rules, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile source rules: %w", err)
	}
	return matcher, nil
}

// within returns path relative to root in slash form when path is inside root.
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
