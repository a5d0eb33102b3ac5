// Package rules checks parsed command lines against YAML rule sets.
//
// A rule set names parameters that must or must not be present, and the
// values a parameter may take:
//
//	name: production
//	required:
//	  - root
//	  - ro
//	forbidden:
//	  - init
//	  - single
//	values:
//	  console: [ttyS0, "ttyS0,115200"]
//	  loglevel: ["3", "4"]
//
// Value rules apply to the last occurrence of a parameter, matching how
// the kernel resolves repeated parameters.
package rules

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/bootline/cmdline/pkg/cmdline"
	"gopkg.in/yaml.v3"
)

// ErrNoRules is returned when a rule file defines no rules.
var ErrNoRules = errors.New("rule set defines no rules")

// Rule identifiers reported in violations.
const (
	RuleRequired  = "required"
	RuleForbidden = "forbidden"
	RuleValue     = "value"
)

// RuleSet is a set of expectations about a command line.
type RuleSet struct {
	// Name identifies the rule set in reports.
	Name string `yaml:"name"`

	// Required parameters must be present.
	Required []string `yaml:"required"`

	// Forbidden parameters must be absent.
	Forbidden []string `yaml:"forbidden"`

	// Values maps a parameter name to its allowed values. A present
	// parameter without a value violates the rule unless "" is allowed.
	Values map[string][]string `yaml:"values"`
}

// Violation is a rule the command line does not satisfy.
type Violation struct {
	Rule    string `json:"rule"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Rule, v.Name, v.Message)
}

// Load reads a rule set from a YAML file.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rs, nil
}

// Parse decodes a rule set from YAML.
func Parse(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("YAML parse error: %w", err)
	}
	if len(rs.Required) == 0 && len(rs.Forbidden) == 0 && len(rs.Values) == 0 {
		return nil, ErrNoRules
	}
	for _, name := range rs.Required {
		if slices.Contains(rs.Forbidden, name) {
			return nil, fmt.Errorf("parameter %q is both required and forbidden", name)
		}
	}
	return &rs, nil
}

// Check returns every violation of the rule set by params.
// Violations are ordered required, forbidden, then value rules; value
// rules are checked in name order.
func (rs *RuleSet) Check(params cmdline.Params) []Violation {
	var out []Violation

	for _, name := range rs.Required {
		if !params.Has(name) {
			out = append(out, Violation{Rule: RuleRequired, Name: name, Message: "parameter is missing"})
		}
	}

	for _, name := range rs.Forbidden {
		if params.Has(name) {
			out = append(out, Violation{Rule: RuleForbidden, Name: name, Message: "parameter must not be set"})
		}
	}

	names := make([]string, 0, len(rs.Values))
	for name := range rs.Values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p, ok := params.Lookup(name)
		if !ok {
			continue
		}
		allowed := rs.Values[name]
		if !p.HasValue {
			if !slices.Contains(allowed, "") {
				out = append(out, Violation{Rule: RuleValue, Name: name, Message: "parameter has no value"})
			}
			continue
		}
		if !slices.Contains(allowed, string(p.Value)) {
			out = append(out, Violation{
				Rule:    RuleValue,
				Name:    name,
				Message: fmt.Sprintf("value %q not in %q", p.Value, allowed),
			})
		}
	}

	return out
}
