// Package sanitizer transforms HTML text before it is persisted.
//
// A Pipeline runs an ordered list of stages, each receiving the previous
// stage's output:
//
//   - SubstringSanitizer replaces literal text.
//   - RegexSanitizer replaces regular expression matches. Patterns are
//     compiled when the stage is built, and an invalid pattern fails
//     construction with ErrInvalidPattern.
//   - SelectorSanitizer parses the HTML and rewrites it structurally by CSS
//     selector: it removes matched elements, drops attributes, or replaces
//     an element's content. Every rule re-parses the output of the previous
//     rule. A selector that does not compile is logged and skipped.
//   - Built-in stages (StripScripts, StripComments, RemoveEventHandlers,
//     NormalizeWhitespace, RedactEmails).
//
// Stages are safe for concurrent use once built.
//
//	p := sanitizer.NewPipeline(
//		sanitizer.NewSelector(
//			sanitizer.SelectorRule{Selector: "script", Action: sanitizer.RemoveElement()},
//			sanitizer.SelectorRule{Selector: "a", Action: sanitizer.RemoveAttr("onclick")},
//		),
//		sanitizer.MustRegex(sanitizer.Rule{Pattern: `\d{3}-\d{2}-\d{4}`, Replacement: "[SSN]"}),
//	)
//	clean := p.Sanitize(page)
//
// Pipelines can also be declared in YAML and built with LoadRules.
//
// # Serialization
//
// Selector stages serialize the parsed tree themselves. Void elements (br,
// img, input, and the like) get no closing tag, comments are kept, and text
// and attribute values are escaped except inside raw text elements such as
// script and style. Input that starts with a doctype or an html tag is
// parsed as a full document. Anything else is parsed as a body fragment and
// serialized without an html, head or body wrapper.
package sanitizer
