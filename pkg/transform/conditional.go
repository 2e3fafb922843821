// Package transform rewrites `{{#cond}}...{{/cond}}` platform blocks for a
// single output target. The tag grammar is deliberately narrow: the closing
// tag's condition text is a literal backreference to the opening tag's, and
// anything that does not match exactly is left as ordinary text.
package transform

import (
	"regexp"
	"slices"
	"strings"

	"github.com/macropower/rulekit/pkg/target"
)

// Option configures [Conditional].
type Option func(*options)

type options struct {
	preserveWhitespace bool
}

// WithPreserveWhitespace disables the post-substitution whitespace cleanup,
// keeping text outside the matched spans byte-for-byte.
func WithPreserveWhitespace() Option {
	return func(o *options) {
		o.preserveWhitespace = true
	}
}

// Conditional rewrites every conditional block in content for the given
// target: included block bodies are spliced in with their tags stripped,
// excluded blocks are removed entirely. Malformed tags are not errors; they
// stay in the output as literal text. When any substitution occurred, the
// result is whitespace-normalized unless [WithPreserveWhitespace] is set.
func Conditional(content string, tgt target.Target, opts ...Option) string {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		sb      strings.Builder
		changed bool
		pos     int
	)

	for pos < len(content) {
		open := strings.Index(content[pos:], "{{#")
		if open < 0 {
			break
		}

		open += pos

		condText, bodyStart, ok := parseOpenTag(content[open:])
		if !ok {
			// Not a well-formed opening tag. Emit up to and including the
			// marker and keep scanning after it.
			sb.WriteString(content[pos : open+3])
			pos = open + 3

			continue
		}

		bodyStart += open

		// The closing tag is a byte-identical backreference to the opening
		// condition text; it is never independently parsed.
		closeTag := "{{/" + condText + "}}"

		close := strings.Index(content[bodyStart:], closeTag)
		if close < 0 {
			sb.WriteString(content[pos : open+3])
			pos = open + 3

			continue
		}

		close += bodyStart

		sb.WriteString(content[pos:open])

		if evalTagCondition(condText, tgt) {
			// Tags stripped, body verbatim. Nested tags are inert literal
			// text; the outer match wins.
			sb.WriteString(content[bodyStart:close])
		}

		changed = true
		pos = close + len(closeTag)
	}

	sb.WriteString(content[pos:])

	if !changed {
		return content
	}

	out := sb.String()
	if o.preserveWhitespace {
		return out
	}

	return cleanWhitespace(out)
}

// parseOpenTag parses `{{#<cond>}}` at the start of s. It returns the
// condition text and the offset just past the tag. Tags with embedded
// whitespace immediately after `{{` or before `}}`, or spanning lines, do
// not match.
func parseOpenTag(s string) (condText string, end int, ok bool) {
	const prefix = "{{#"

	rest := s[len(prefix):]

	closer := strings.Index(rest, "}}")
	if closer <= 0 {
		return "", 0, false
	}

	condText = rest[:closer]
	if strings.ContainsAny(condText, "\n\r{") ||
		strings.HasSuffix(condText, " ") || strings.HasSuffix(condText, "\t") {
		return "", 0, false
	}

	return condText, len(prefix) + closer + 2, true
}

// evalTagCondition decides whether a block body is included for the target.
//
// Condition text is split on `|` and `&`. A token prefixed with `!` is a
// negated target; unrecognized platform names are silently dropped. The
// operator is OR only when the text contains `|` and not `&`; with both or
// neither present it defaults to AND. A condition with no recognized tokens
// is unconditionally false.
func evalTagCondition(condText string, tgt target.Target) bool {
	or := strings.Contains(condText, "|") && !strings.Contains(condText, "&")

	var targets, negated []target.Target

	for tok := range strings.FieldsFuncSeq(condText, func(r rune) bool {
		return r == '|' || r == '&'
	}) {
		name, neg := strings.CutPrefix(tok, "!")
		if !target.IsValid(name) {
			continue
		}

		if neg {
			negated = append(negated, target.Target(name))
		} else {
			targets = append(targets, target.Target(name))
		}
	}

	if len(targets) == 0 && len(negated) == 0 {
		return false
	}

	if slices.Contains(negated, tgt) {
		return false
	}

	if len(targets) == 0 {
		return true
	}

	if or {
		return slices.Contains(targets, tgt)
	}

	// AND over positive names: every listed target must equal the current
	// one, which only holds for a singleton list naming it.
	for _, t := range targets {
		if t != tgt {
			return false
		}
	}

	return true
}

var (
	trailingSpacePattern   = regexp.MustCompile(`[ \t]+\n`)
	tripleNewlinePattern   = regexp.MustCompile(`\n{3,}`)
	trailingNewlinePattern = regexp.MustCompile(`\n{2,}$`)
	leadingBlankPattern    = regexp.MustCompile(`^\n+`)
)

// cleanWhitespace normalizes whitespace after substitutions: trailing
// whitespace stripped per line, leading blank lines removed, runs of three
// or more newlines collapsed to two, and multiple trailing newlines
// collapsed to one.
func cleanWhitespace(s string) string {
	s = trailingSpacePattern.ReplaceAllString(s, "\n")
	s = strings.TrimRight(s, " \t")
	s = leadingBlankPattern.ReplaceAllString(s, "")
	s = tripleNewlinePattern.ReplaceAllString(s, "\n\n")
	s = trailingNewlinePattern.ReplaceAllString(s, "\n")

	return s
}
