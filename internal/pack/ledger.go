package pack

import (
	"sort"
	"strings"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Ledger maps a pack type to its count of unopened packs.
// Operations return a new Ledger and never mutate the receiver.
type Ledger map[string]int

// normalizeType falls back to the default pack type for blank input
func normalizeType(packType string) string {
	packType = strings.TrimSpace(packType)
	if packType == "" {
		return domain.DefaultPackType
	}
	return packType
}

func (l Ledger) clone() Ledger {
	out := make(Ledger, len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Count returns the unopened packs of a type
func (l Ledger) Count(packType string) int {
	return l[normalizeType(packType)]
}

// Total returns the unopened packs across all types
func (l Ledger) Total() int {
	total := 0
	for _, n := range l {
		total += n
	}
	return total
}

// Types lists pack types in lexical order
func (l Ledger) Types() []string {
	out := make([]string, 0, len(l))
	for k := range l {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Grant adds count packs of a type. Non-positive counts leave the ledger unchanged.
func (l Ledger) Grant(packType string, count int) Ledger {
	if count <= 0 {
		return l
	}
	out := l.clone()
	out[normalizeType(packType)] += count
	return out
}

// Consume takes one pack of a type. It reports false and returns the ledger
// unchanged when none are left.
func (l Ledger) Consume(packType string) (Ledger, bool) {
	key := normalizeType(packType)
	if l[key] <= 0 {
		return l, false
	}
	out := l.clone()
	out[key]--
	return out, true
}

// Reconcile replaces local counts with the remote ledger's values.
// Local types the remote does not report drop to zero.
func (l Ledger) Reconcile(remote map[string]int) Ledger {
	out := make(Ledger, len(l)+len(remote))
	for k := range l {
		out[k] = 0
	}
	for k, v := range remote {
		if v < 0 {
			v = 0
		}
		out[normalizeType(k)] = v
	}
	return out
}
