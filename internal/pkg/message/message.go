// Package message validates and parses Conventional Commit messages.
package message

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ValidCommitTypes contains the recognized Conventional Commit types.
var ValidCommitTypes = []string{
	"feat", "fix", "docs", "style", "refactor",
	"perf", "test", "chore", "build", "ci", "revert",
}

// headerRegex matches the header line of a Conventional Commit:
// <type>[(scope)][!]: <description>. The type is matched case-insensitively,
// the scope must be non-empty when present, and the ": " separator is
// mandatory.
var headerRegex = regexp.MustCompile(
	`(?i)^(?P<type>feat|fix|docs|style|refactor|perf|test|chore|build|ci|revert)(?:\((?P<scope>[^)]+)\))?(?P<breaking>!)?: (?P<description>.+)$`,
)

// breakingFooterRegex detects a BREAKING CHANGE footer in the body. Detection
// is informational only; it never affects validity.
var breakingFooterRegex = regexp.MustCompile(`(?i)BREAKING[ -]CHANGE: `)

// typePrefixRegex checks that a string starts with a recognized type followed
// by an optional scope, an optional breaking marker, and a colon. Used to
// sanity-check raw generation output.
var typePrefixRegex = regexp.MustCompile(
	`(?i)^(?:feat|fix|docs|style|refactor|perf|test|chore|build|ci|revert)(?:\([^)]+\))?!?:`,
)

// CommitMessage is a parsed Conventional Commit.
type CommitMessage struct {
	Type        string
	Scope       string
	Breaking    bool
	Description string
	Body        string
}

// IsValid reports whether a message is structurally a Conventional Commit.
// Only the header line decides validity: any non-empty body is accepted, and
// no consistency between the '!' marker and a BREAKING CHANGE footer is
// required.
func IsValid(message string) bool {
	header, _, _ := strings.Cut(message, "\n")
	return headerRegex.MatchString(strings.TrimSpace(header))
}

// Parse splits a message into its Conventional Commit parts. It returns an
// error when the header does not match the grammar.
func Parse(message string) (*CommitMessage, error) {
	header, rest, _ := strings.Cut(message, "\n")
	header = strings.TrimSpace(header)

	m := headerRegex.FindStringSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("not a conventional commit header: %q", header)
	}

	cm := &CommitMessage{Body: strings.TrimSpace(rest)}
	for i, name := range headerRegex.SubexpNames() {
		switch name {
		case "type":
			cm.Type = strings.ToLower(m[i])
		case "scope":
			cm.Scope = m[i]
		case "breaking":
			cm.Breaking = m[i] == "!"
		case "description":
			cm.Description = m[i]
		}
	}

	return cm, nil
}

// HasBreakingChangeFooter reports whether the message body carries a
// BREAKING CHANGE: or BREAKING-CHANGE: footer, case-insensitively.
func HasBreakingChangeFooter(message string) bool {
	_, rest, found := strings.Cut(message, "\n")
	if !found {
		return false
	}
	return breakingFooterRegex.MatchString(rest)
}

// HasTypePrefix reports whether text begins with a recognized commit type
// followed by a colon (allowing an optional scope and breaking marker).
func HasTypePrefix(text string) bool {
	return typePrefixRegex.MatchString(strings.TrimSpace(text))
}

// IsValidCommitType checks a bare type token against the recognized set.
func IsValidCommitType(commitType string) bool {
	return slices.Contains(ValidCommitTypes, strings.ToLower(commitType))
}

// Format renders the commit message back into its canonical text form.
func (cm *CommitMessage) Format() string {
	var sb strings.Builder
	sb.WriteString(cm.Type)
	if cm.Scope != "" {
		sb.WriteString("(")
		sb.WriteString(cm.Scope)
		sb.WriteString(")")
	}
	if cm.Breaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(cm.Description)

	if cm.Body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(cm.Body)
	}

	return sb.String()
}

// Header returns just the formatted header line.
func (cm *CommitMessage) Header() string {
	header, _, _ := strings.Cut(cm.Format(), "\n")
	return header
}
