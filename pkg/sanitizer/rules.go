package sanitizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RulesFile is the YAML form of a pipeline:
//
//	stages:
//	  - substring:
//	      - {pattern: "sk-live-", replacement: "[KEY]"}
//	  - regex:
//	      - {pattern: '\d{3}-\d{2}-\d{4}', replacement: "[SSN]"}
//	  - selector:
//	      - {selector: script, action: remove_element}
//	      - {selector: a, action: remove_attr, attr: onclick}
//	      - {selector: .secret, action: replace_text, text: "[REDACTED]"}
//	  - builtin: strip_comments
//
// Each stage sets exactly one kind. Stages run in file order.
type RulesFile struct {
	Stages []StageSpec `yaml:"stages"`
}

type StageSpec struct {
	Substring []Rule         `yaml:"substring,omitempty"`
	Regex     []Rule         `yaml:"regex,omitempty"`
	Selector  []SelectorSpec `yaml:"selector,omitempty"`
	Builtin   string         `yaml:"builtin,omitempty"`
}

type SelectorSpec struct {
	Selector string `yaml:"selector"`
	Action   string `yaml:"action"`
	Attr     string `yaml:"attr,omitempty"`
	Text     string `yaml:"text,omitempty"`
}

// LoadRules decodes a RulesFile from r and builds its pipeline. Unknown
// fields, unknown builtins and actions, and invalid regular expressions are
// reported as ErrInvalidRules. Invalid CSS selectors are not: they are
// skipped at run time.
func LoadRules(r io.Reader) (*Pipeline, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file RulesFile
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidRules, err)
	}
	return file.Build()
}

// LoadRulesFile is LoadRules for a file on disk.
func LoadRulesFile(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}
	defer f.Close()
	return LoadRules(f)
}

// Build converts the decoded file to a pipeline.
func (f RulesFile) Build() (*Pipeline, error) {
	p := NewPipeline()
	for i, st := range f.Stages {
		s, err := st.build()
		if err != nil {
			return nil, fmt.Errorf("%w: stage %d: %w", ErrInvalidRules, i, err)
		}
		p.Add(s)
	}
	return p, nil
}

func (st StageSpec) build() (Sanitizer, error) {
	kinds := 0
	for _, set := range []bool{st.Substring != nil, st.Regex != nil, st.Selector != nil, st.Builtin != ""} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, fmt.Errorf("expected exactly one of substring, regex, selector, builtin; got %d", kinds)
	}

	switch {
	case st.Substring != nil:
		return NewSubstring(st.Substring...), nil
	case st.Regex != nil:
		re, err := NewRegex(st.Regex...)
		if err != nil {
			return nil, err
		}
		return re, nil
	case st.Selector != nil:
		rules := make([]SelectorRule, 0, len(st.Selector))
		for _, spec := range st.Selector {
			action, err := spec.action()
			if err != nil {
				return nil, err
			}
			rules = append(rules, SelectorRule{Selector: spec.Selector, Action: action})
		}
		return NewSelector(rules...), nil
	default:
		s, ok := Builtin(st.Builtin)
		if !ok {
			return nil, fmt.Errorf("unknown builtin %q (known: %s)", st.Builtin, strings.Join(BuiltinNames(), ", "))
		}
		return s, nil
	}
}

func (spec SelectorSpec) action() (Action, error) {
	switch strings.ToLower(spec.Action) {
	case "remove_element", "remove":
		return RemoveElement(), nil
	case "remove_attr":
		if spec.Attr == "" {
			return Action{}, fmt.Errorf("selector %q: remove_attr requires attr", spec.Selector)
		}
		return RemoveAttr(spec.Attr), nil
	case "replace_text":
		return ReplaceText(spec.Text), nil
	default:
		return Action{}, fmt.Errorf("selector %q: unknown action %q", spec.Selector, spec.Action)
	}
}
