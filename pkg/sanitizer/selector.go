package sanitizer

import (
	"log/slog"

	"github.com/andybalholm/cascadia"

	"github.com/dmitrymomot/htmlsaver/pkg/logger"
)

// ActionKind identifies what a selector rule does to matched elements.
type ActionKind uint8

const (
	ActionRemoveElement ActionKind = iota + 1
	ActionRemoveAttr
	ActionReplaceText
)

func (k ActionKind) String() string {
	switch k {
	case ActionRemoveElement:
		return "remove_element"
	case ActionRemoveAttr:
		return "remove_attr"
	case ActionReplaceText:
		return "replace_text"
	default:
		return "unknown"
	}
}

// Action is applied to every element a selector matches.
type Action struct {
	Kind ActionKind
	Arg  string
}

// RemoveElement drops matched elements together with their subtrees.
func RemoveElement() Action { return Action{Kind: ActionRemoveElement} }

// RemoveAttr drops the named attribute from matched elements.
func RemoveAttr(name string) Action { return Action{Kind: ActionRemoveAttr, Arg: name} }

// ReplaceText replaces the children of matched elements with text, emitted
// verbatim.
func ReplaceText(text string) Action { return Action{Kind: ActionReplaceText, Arg: text} }

// SelectorRule pairs a CSS selector with an action.
type SelectorRule struct {
	Selector string
	Action   Action
}

type selectorRule struct {
	source string
	sel    cascadia.Selector
	err    error
	action Action
}

// SelectorSanitizer rewrites HTML structurally. Each rule parses the output
// of the previous rule, so later selectors observe earlier removals.
type SelectorSanitizer struct {
	rules  []selectorRule
	logger *slog.Logger
}

// NewSelector compiles the rules. A selector that fails to compile does not
// fail construction: the rule is skipped with a warning every time it would
// run.
func NewSelector(rules ...SelectorRule) *SelectorSanitizer {
	compiled := make([]selectorRule, 0, len(rules))
	for _, r := range rules {
		sel, err := cascadia.Compile(r.Selector)
		compiled = append(compiled, selectorRule{
			source: r.Selector,
			sel:    sel,
			err:    err,
			action: r.Action,
		})
	}
	return &SelectorSanitizer{rules: compiled, logger: slog.Default()}
}

// WithLogger returns a copy of s that logs to l.
func (s *SelectorSanitizer) WithLogger(l *slog.Logger) *SelectorSanitizer {
	if l == nil {
		return s
	}
	cp := *s
	cp.logger = l
	return &cp
}

func (s *SelectorSanitizer) Sanitize(input string) string {
	out := input
	for _, r := range s.rules {
		if r.err != nil {
			s.logger.Warn("skipping invalid css selector",
				logger.Selector(r.source),
				logger.Error(r.err),
			)
			continue
		}
		out = s.apply(out, r)
	}
	return out
}

func (s *SelectorSanitizer) apply(input string, r selectorRule) string {
	t, err := parseTree(input)
	if err != nil {
		s.logger.Warn("failed to parse html for selector rule",
			logger.Selector(r.source),
			logger.Error(err),
		)
		return input
	}

	matches := cascadia.QueryAll(t.root, r.sel)
	if len(matches) == 0 {
		return t.render()
	}

	for _, m := range matches {
		id, ok := t.lookup(m)
		if !ok {
			continue
		}
		switch r.action.Kind {
		case ActionRemoveElement:
			t.markSkip(id)
		case ActionRemoveAttr:
			t.markDropAttr(id, r.action.Arg)
		case ActionReplaceText:
			t.markText(id, r.action.Arg)
		}
	}
	return t.render()
}
