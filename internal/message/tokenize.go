package message

import (
	"fmt"
	"html"
	"strings"

	"github.com/zhaomaota/word-stone/internal/inventory"
)

// Result is the classification of one outgoing chat line
type Result struct {
	Markup        string   `json:"html"`
	OwnedTokens   []string `json:"tokens"`
	UnknownTokens []string `json:"unknownTokens"`
}

// HasUnknown reports whether any token was rejected
func (r Result) HasUnknown() bool {
	return len(r.UnknownTokens) > 0
}

// Sanitize drops every character the chat input does not accept.
// Letters, digits, whitespace and basic punctuation are kept.
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if allowedInput(r) {
			return r
		}
		return -1
	}, raw)
}

func allowedInput(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '\t', r == '\n', r == '\r', r == '\v', r == '\f':
		return true
	}
	return strings.ContainsRune(".,!?;:'\"()-", r)
}

// CleanKey strips a token down to ASCII letters and hyphens
func CleanKey(token string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			return r
		}
		return -1
	}, token)
}

// TokenizeAndValidate classifies each whitespace-separated token of text as
// owned or unknown against inv and renders the annotated markup.
// Tokens without letters or hyphens pass through unclassified.
func TokenizeAndValidate(text string, inv inventory.Inventory) Result {
	res := Result{
		OwnedTokens:   []string{},
		UnknownTokens: []string{},
	}

	tokens := strings.Fields(text)
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		escaped := html.EscapeString(t)
		clean := CleanKey(t)
		if clean == "" {
			parts = append(parts, escaped)
			continue
		}

		entry, ok := inv.Lookup(clean)
		if !ok {
			res.UnknownTokens = append(res.UnknownTokens, clean)
			parts = append(parts, fmt.Sprintf(markupRejected, escaped))
			continue
		}
		res.OwnedTokens = append(res.OwnedTokens, clean)
		parts = append(parts, fmt.Sprintf(markupKnown, entry.Rarity, html.EscapeString(entry.Definition), escaped))
	}

	res.Markup = strings.Join(parts, " ")
	return res
}
