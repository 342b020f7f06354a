// Package policy loads the pluggable middleware-selection policy consumed by
// route generation.
package policy

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule matches operations to a middleware chain. An empty Method matches any
// method; Path is a path pattern where "*" matches one segment and a trailing
// "/**" matches any suffix.
type Rule struct {
	Method string   `yaml:"method"`
	Path   string   `yaml:"path"`
	Use    []string `yaml:"use"`
}

// Policy is an ordered rule list; the first matching rule wins.
type Policy struct {
	Default []string `yaml:"default"`
	Rules   []Rule   `yaml:"rules"`
}

// Load reads a policy from a YAML file.
func Load(p string) (*Policy, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	var pol Policy
	if err := yaml.Unmarshal(data, &pol); err != nil {
		return nil, fmt.Errorf("parse policy %s: %w", p, err)
	}
	return &pol, nil
}

// Select returns the middleware chain for an operation: the first matching
// rule's chain, or the default chain when no rule matches.
func (p *Policy) Select(method, route string) []string {
	if p == nil {
		return nil
	}
	for _, r := range p.Rules {
		if r.Method != "" && !strings.EqualFold(r.Method, method) {
			continue
		}
		if matchRoute(r.Path, route) {
			return r.Use
		}
	}
	return p.Default
}

func matchRoute(pattern, route string) bool {
	if pattern == "" || pattern == route {
		return pattern != ""
	}
	if suffix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return route == suffix || strings.HasPrefix(route, suffix+"/")
	}
	ok, err := path.Match(pattern, route)
	return err == nil && ok
}
