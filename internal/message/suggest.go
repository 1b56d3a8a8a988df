package message

import (
	"fmt"
	"html"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/inventory"
)

// Suggestion pairs an unknown token with the closest owned word
type Suggestion struct {
	Token  string        `json:"token"`
	Word   string        `json:"word"`
	Rarity domain.Rarity `json:"rarity"`
}

// Threshold is the largest edit distance accepted for a token of length n
func Threshold(n int) int {
	switch {
	case n < shortTokenLen:
		return shortThreshold
	case n < mediumTokenLen:
		return mediumThreshold
	default:
		return longThreshold
	}
}

// Closest finds the owned word nearest to token by edit distance, compared
// case-insensitively. Ties keep the earliest word in inventory order.
func Closest(token string, inv inventory.Inventory) (domain.InventoryEntry, bool) {
	typo := inventory.Fold(token)
	threshold := Threshold(len(token))

	var best domain.InventoryEntry
	bestDist := -1
	for _, e := range inv.Entries() {
		dist := levenshtein.ComputeDistance(typo, inventory.Fold(e.Word))
		if dist > threshold {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = e, dist
		}
	}
	return best, bestDist >= 0
}

// Suggest returns at most one suggestion per unknown token, skipping tokens
// with no owned word within threshold
func Suggest(unknown []string, inv inventory.Inventory) []Suggestion {
	out := make([]Suggestion, 0, len(unknown))
	for _, token := range unknown {
		e, ok := Closest(token, inv)
		if !ok {
			continue
		}
		out = append(out, Suggestion{Token: token, Word: e.Word, Rarity: e.Rarity})
	}
	return out
}

// DeniedNotice renders the system notice shown when an offline message
// contains words the user does not own
func DeniedNotice(unknown []string, suggestions []Suggestion) string {
	escaped := make([]string, len(unknown))
	for i, u := range unknown {
		escaped[i] = html.EscapeString(u)
	}

	var b strings.Builder
	fmt.Fprintf(&b, NoticeDenied, strings.Join(escaped, ", "))
	b.WriteString(noticeBreak + noticeBreak)

	if len(suggestions) == 0 {
		b.WriteString(NoticeOpenPacks)
		return b.String()
	}

	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = fmt.Sprintf(markupSuggest, html.EscapeString(s.Token), s.Rarity, html.EscapeString(s.Word))
	}
	b.WriteString(NoticeSuggestion + noticeBreak)
	b.WriteString(strings.Join(lines, noticeBreak))
	return b.String()
}
