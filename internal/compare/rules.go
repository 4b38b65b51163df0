package compare

import (
	"fmt"
	"strings"

	"lente/internal/errs"
)

// Method identifies how a rule compares its two fields.
type Method int

const (
	// MethodExact scores 1.0 when both values are present and equal.
	MethodExact Method = iota
	// MethodString scores a normalized string similarity in [0,1].
	MethodString
	// MethodNumeric is a reserved no-op; its column is emitted unscored.
	MethodNumeric
	// MethodDate is a reserved no-op; its column is emitted unscored.
	MethodDate
)

// Algorithm names a string-similarity metric for MethodString rules.
type Algorithm string

const (
	// AlgorithmDamerauLevenshtein is the default string metric.
	AlgorithmDamerauLevenshtein Algorithm = "damerau_levenshtein"
	// AlgorithmLevenshtein is plain edit distance without transpositions.
	AlgorithmLevenshtein Algorithm = "levenshtein"
)

// Rule describes a single field comparison: which field of each side to
// compare, how, and the label of the resulting matrix column.
type Rule struct {
	Left   string
	Right  string
	Label  string
	Method Method

	// Algorithm applies to MethodString only; empty means Damerau-Levenshtein.
	Algorithm Algorithm
	// Threshold, when set, binarizes string scores: >= Threshold becomes 1.0,
	// anything lower 0.0.
	Threshold    float64
	HasThreshold bool
}

// Exact builds an exact-equality rule.
func Exact(left, right, label string) Rule {
	return Rule{Left: left, Right: right, Label: label, Method: MethodExact}
}

// String builds a string-similarity rule with the default algorithm.
func String(left, right, label string) Rule {
	return Rule{Left: left, Right: right, Label: label, Method: MethodString, Algorithm: AlgorithmDamerauLevenshtein}
}

// StringWith builds a string-similarity rule with an explicit algorithm and
// binarization threshold.
func StringWith(left, right, label string, algorithm Algorithm, threshold float64) Rule {
	return Rule{
		Left: left, Right: right, Label: label,
		Method: MethodString, Algorithm: algorithm,
		Threshold: threshold, HasThreshold: true,
	}
}

// Numeric builds a reserved numeric rule. The column is emitted unscored.
func Numeric(left, right, label string) Rule {
	return Rule{Left: left, Right: right, Label: label, Method: MethodNumeric}
}

// Date builds a reserved date rule. The column is emitted unscored.
func Date(left, right, label string) Rule {
	return Rule{Left: left, Right: right, Label: label, Method: MethodDate}
}

// RuleSet is an ordered, validated collection of comparison rules.
type RuleSet struct {
	rules []Rule
}

// NewRuleSet validates rules at configuration time: fields and labels must be
// non-empty, labels unique, string algorithms known, thresholds in [0,1].
func NewRuleSet(rules ...Rule) (RuleSet, error) {
	if len(rules) == 0 {
		return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules", "at least one comparison rule is required", nil)
	}
	labels := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if strings.TrimSpace(rule.Left) == "" || strings.TrimSpace(rule.Right) == "" {
			return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
				fmt.Sprintf("rule %d must name both comparison fields", i), nil)
		}
		if strings.TrimSpace(rule.Label) == "" {
			return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
				fmt.Sprintf("rule %d is missing a label", i), nil)
		}
		if _, dup := labels[rule.Label]; dup {
			return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
				fmt.Sprintf("duplicate rule label %q", rule.Label), nil)
		}
		labels[rule.Label] = struct{}{}

		switch rule.Method {
		case MethodExact, MethodNumeric, MethodDate:
		case MethodString:
			switch rule.Algorithm {
			case "", AlgorithmDamerauLevenshtein, AlgorithmLevenshtein:
			default:
				return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
					fmt.Sprintf("unknown string algorithm %q", rule.Algorithm), nil)
			}
			if rule.HasThreshold && (rule.Threshold < 0 || rule.Threshold > 1) {
				return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
					fmt.Sprintf("rule %q threshold %v outside [0,1]", rule.Label, rule.Threshold), nil)
			}
		default:
			return RuleSet{}, errs.Wrap(errs.ErrConfiguration, "compare", "rules",
				fmt.Sprintf("rule %d has unknown method", i), nil)
		}
	}
	cp := make([]Rule, len(rules))
	copy(cp, rules)
	return RuleSet{rules: cp}, nil
}

// Labels returns the result-column labels in rule order.
func (rs RuleSet) Labels() []string {
	out := make([]string, len(rs.rules))
	for i, rule := range rs.rules {
		out[i] = rule.Label
	}
	return out
}

// Len returns the number of rules.
func (rs RuleSet) Len() int { return len(rs.rules) }

// ParseAlgorithm resolves a configured algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", string(AlgorithmDamerauLevenshtein):
		return AlgorithmDamerauLevenshtein, nil
	case string(AlgorithmLevenshtein):
		return AlgorithmLevenshtein, nil
	default:
		return "", errs.Wrap(errs.ErrConfiguration, "compare", "rules",
			fmt.Sprintf("unknown string algorithm %q", name), nil)
	}
}
