package syntax

import "regexp"

// Rule pairs a pattern with the style its matches receive.
type Rule struct {
	Pattern *regexp.Regexp
	Style   Style
}

// Table is an ordered, immutable list of rules for one language. When
// matches from two rules overlap, the rule appearing later wins.
type Table struct {
	name  string
	rules []Rule
}

// NewTable builds a table from already-compiled rules.
func NewTable(name string, rules ...Rule) Table {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return Table{name: name, rules: owned}
}

// Name returns the language name, "" for the empty table.
func (t Table) Name() string { return t.name }

// Len returns the number of rules.
func (t Table) Len() int { return len(t.rules) }

// IsEmpty reports whether the table has no rules.
func (t Table) IsEmpty() bool { return len(t.rules) == 0 }

// Rules returns a copy of the rules in table order.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// ruleBuilder accumulates rules in order while a table is being defined.
// Patterns are compiled with MustCompile: a bad pattern is a defect in the
// table literal and panics at package init.
type ruleBuilder struct {
	rules []Rule
}

func (b *ruleBuilder) keywords(words ...string) *ruleBuilder {
	for _, w := range words {
		b.add(`\b`+regexp.QuoteMeta(w)+`\b`, StyleKeyword)
	}
	return b
}

func (b *ruleBuilder) add(pattern string, style Style) *ruleBuilder {
	b.rules = append(b.rules, Rule{Pattern: regexp.MustCompile(pattern), Style: style})
	return b
}

func (b *ruleBuilder) build(name string) Table {
	return NewTable(name, b.rules...)
}
