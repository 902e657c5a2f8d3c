package bot

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bubble-server/models"
	"bubble-server/templates"
)

type MatchMode int

const (
	// Any matches when at least one keyword is present.
	Any MatchMode = iota
	// All matches only when every keyword is present.
	All
)

type Selection int

const (
	First Selection = iota
	Random
)

// Reply is what a matching rule wants the bot to say.
type Reply struct {
	Rule     string
	Text     string
	Reminder *models.Reminder
}

// Rule is either a *KeywordRule or a *ReminderRule.
type Rule interface {
	RuleName() string
	Match(in Input, pick func(n int) int) (Reply, bool)
	validate() error
	// intercepts reports rules that run before every ordered rule.
	intercepts() bool
}

// KeywordRule answers when its keywords appear as tokens of the input.
type KeywordRule struct {
	Name      string
	Keywords  []string
	Mode      MatchMode
	Responses []string
	Selection Selection
}

func (r *KeywordRule) RuleName() string { return r.Name }
func (r *KeywordRule) intercepts() bool { return false }

func (r *KeywordRule) validate() error {
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rule %q: no keywords", r.Name)
	}
	if len(r.Responses) == 0 {
		return fmt.Errorf("rule %q: no responses", r.Name)
	}
	return nil
}

func (r *KeywordRule) Match(in Input, pick func(n int) int) (Reply, bool) {
	if !r.matches(in) {
		return Reply{}, false
	}
	text := r.Responses[0]
	if r.Selection == Random && len(r.Responses) > 1 {
		text = r.Responses[pick(len(r.Responses))]
	}
	return Reply{Rule: r.Name, Text: text}, true
}

func (r *KeywordRule) matches(in Input) bool {
	if r.Mode == All {
		for _, kw := range r.Keywords {
			if !in.Has(kw) {
				return false
			}
		}
		return true
	}
	for _, kw := range r.Keywords {
		if in.Has(kw) {
			return true
		}
	}
	return false
}

// ReminderRule intercepts any input containing Trigger. A successful Pattern
// match yields a reminder and the Confirm text; otherwise the Hint is returned.
// Pattern must capture the task first and the time second.
type ReminderRule struct {
	Name    string
	Trigger string
	Pattern *regexp.Regexp
	Confirm string
	Hint    string
}

func (r *ReminderRule) RuleName() string { return r.Name }
func (r *ReminderRule) intercepts() bool { return true }

func (r *ReminderRule) validate() error {
	if r.Trigger == "" || r.Pattern == nil {
		return fmt.Errorf("rule %q: trigger and pattern are required", r.Name)
	}
	if r.Pattern.NumSubexp() < 2 {
		return fmt.Errorf("rule %q: pattern needs task and time groups", r.Name)
	}
	return nil
}

func (r *ReminderRule) Match(in Input, _ func(n int) int) (Reply, bool) {
	if !strings.Contains(in.Lower, r.Trigger) {
		return Reply{}, false
	}
	m := r.Pattern.FindStringSubmatch(in.Raw)
	if m == nil {
		return Reply{Rule: r.Name, Text: r.Hint}, true
	}
	reminder := &models.Reminder{Task: m[1], Time: m[2]}
	text := templates.Interpolate(r.Confirm, &templates.Context{
		Task: reminder.Task,
		Time: reminder.Time,
	})
	return Reply{Rule: r.Name, Text: text, Reminder: reminder}, true
}

var errEmptyTable = errors.New("trigger table has no rules")

// Table evaluates intercepting rules first, then the remaining rules in
// declaration order. The first rule that matches wins.
type Table struct {
	intercepting []Rule
	ordered      []Rule
}

func NewTable(rules ...Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, errEmptyTable
	}
	t := &Table{}
	for _, r := range rules {
		if err := r.validate(); err != nil {
			return nil, err
		}
		if r.intercepts() {
			t.intercepting = append(t.intercepting, r)
		} else {
			t.ordered = append(t.ordered, r)
		}
	}
	return t, nil
}

func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Evaluate(in Input, pick func(n int) int) (Reply, bool) {
	for _, r := range t.intercepting {
		if reply, ok := r.Match(in, pick); ok {
			return reply, true
		}
	}
	for _, r := range t.ordered {
		if reply, ok := r.Match(in, pick); ok {
			return reply, true
		}
	}
	return Reply{}, false
}
