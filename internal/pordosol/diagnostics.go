package pordosol

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source is reported on every diagnostic.
const Source = "pordosol"

// Severity of a diagnostic. Values match the LSP severities.
type Severity int

const (
	SeverityError   Severity = 1
	SeverityWarning Severity = 2
	SeverityInfo    Severity = 3
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Rule codes.
const (
	CodeMissingTerminator      = "missing-terminator"
	CodeUnclosedString         = "unclosed-string"
	CodeMalformedInterpolation = "malformed-interpolation"
	CodeClassNaming            = "class-naming"
	CodeReservedKeywordMisuse  = "reserved-keyword-misuse"
	CodeStaticMemberRequired   = "static-member-required"
	CodeLocalizationHint       = "localization-hint"
	CodeUnmatchedDelimiter     = "unmatched-delimiter"
)

// Diagnostic is a problem found in a document.
type Diagnostic struct {
	Severity Severity
	Range    protocol.Range
	Message  string
	Code     string
	// Strict diagnostics come from stricter rule variants and are only
	// reported when strict mode is enabled.
	Strict bool
}

// Snapshot is the immutable input shared by every rule.
type Snapshot struct {
	Text      string
	Lines     []string
	Tokens    []Token
	Structure *Structure

	lineTokens [][]Token
}

// NewSnapshot groups tokens per line (comments excluded) for line-based rules.
func NewSnapshot(text string, tokens []Token, st *Structure) *Snapshot {
	lines := splitLines(text)
	snap := &Snapshot{
		Text:       text,
		Lines:      lines,
		Tokens:     tokens,
		Structure:  st,
		lineTokens: make([][]Token, len(lines)),
	}
	for _, tok := range tokens {
		if tok.Kind == TokenComment || tok.Line >= len(lines) {
			continue
		}
		snap.lineTokens[tok.Line] = append(snap.lineTokens[tok.Line], tok)
	}
	return snap
}

// LineTokens returns the non-comment tokens on line.
func (s *Snapshot) LineTokens(line int) []Token {
	if line < 0 || line >= len(s.lineTokens) {
		return nil
	}
	return s.lineTokens[line]
}

// LineRange covers a whole line.
func (s *Snapshot) LineRange(line int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: 0},
		End:   protocol.Position{Line: uint32(line), Character: uint32(utf16Len(s.Lines[line]))},
	}
}

// Rule is one independent check.
type Rule struct {
	Code  string
	Check func(*Snapshot) []Diagnostic
}

// Evaluate runs every rule against the snapshot and returns the diagnostics
// sorted by position. A rule that panics is logged and contributes nothing.
func Evaluate(snap *Snapshot, rules []Rule) []Diagnostic {
	var out []Diagnostic
	for _, r := range rules {
		out = append(out, runRule(r, snap)...)
	}
	SortDiagnostics(out)
	return out
}

func runRule(r Rule, snap *Snapshot) (diags []Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			commonlog.GetLogger("pordosol.rules").Errorf("rule %s failed: %v", r.Code, rec)
			diags = nil
		}
	}()
	return r.Check(snap)
}

// SortDiagnostics orders diagnostics by (line, column), keeping rule order
// for ties.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		a, b := diags[i].Range.Start, diags[j].Range.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Character < b.Character
	})
}

// SelectOptions controls which diagnostics are reported.
type SelectOptions struct {
	MaxNumberOfProblems int
	ShowWarnings        bool
	StrictMode          bool
}

// Select drops diagnostics disabled by opts and caps the result, keeping the
// earliest ones. The input must already be sorted.
func Select(diags []Diagnostic, opts SelectOptions) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		if d.Strict && !opts.StrictMode {
			continue
		}
		if d.Code == CodeLocalizationHint && !opts.ShowWarnings {
			continue
		}
		if len(out) >= opts.MaxNumberOfProblems {
			break
		}
		out = append(out, d)
	}
	return out
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s [%s]", d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message, d.Code)
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
