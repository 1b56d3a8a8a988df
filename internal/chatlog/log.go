package chatlog

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// LocalIDPrefix marks provisional ids generated before the relay echoes a message.
// Relay ids are numeric or opaque strings and never carry this prefix.
const LocalIDPrefix = "local-"

// DefaultTailLimit is how many entries a chat view shows
const DefaultTailLimit = 50

// nowFunc is replaced in tests
var nowFunc = time.Now

// Log is an append-only chat history. Operations return a new Log and never
// modify the receiver.
type Log struct {
	entries []domain.ChatLogEntry
}

// New returns an empty log
func New() Log {
	return Log{}
}

// NewLocalID returns a provisional id in the local namespace
func NewLocalID() string {
	return LocalIDPrefix + uuid.NewString()
}

// IsLocalID reports whether id was generated locally
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, LocalIDPrefix)
}

// Append adds entry at the end. A missing id gets a provisional local id and a
// zero timestamp is set to the current time in unix milliseconds.
func (l Log) Append(entry domain.ChatLogEntry) Log {
	if entry.ID == "" {
		entry.ID = NewLocalID()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = nowFunc().UnixMilli()
	}
	if entry.Roses < 0 {
		entry.Roses = 0
	}

	out := make([]domain.ChatLogEntry, len(l.entries), len(l.entries)+1)
	copy(out, l.entries)
	return Log{entries: append(out, entry)}
}

// UpdateRoses sets the rose count of the entry with the given id to the
// server's absolute value. Unknown ids leave the log unchanged.
func (l Log) UpdateRoses(id any, roses int) Log {
	idx := l.index(domain.NormalizeID(id))
	if idx < 0 {
		return l
	}
	if roses < 0 {
		roses = 0
	}
	if l.entries[idx].Roses == roses {
		return l
	}

	out := make([]domain.ChatLogEntry, len(l.entries))
	copy(out, l.entries)
	out[idx].Roses = roses
	return Log{entries: out}
}

func (l Log) index(id string) int {
	if id == "" {
		return -1
	}
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns the entry with the given id
func (l Log) Find(id any) (domain.ChatLogEntry, bool) {
	idx := l.index(domain.NormalizeID(id))
	if idx < 0 {
		return domain.ChatLogEntry{}, false
	}
	return l.entries[idx], true
}

// Len returns the number of entries
func (l Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the full history in insertion order
func (l Log) Entries() []domain.ChatLogEntry {
	out := make([]domain.ChatLogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Tail returns the most recent n entries. Non-positive n returns everything.
func (l Log) Tail(n int) []domain.ChatLogEntry {
	if n <= 0 || n >= len(l.entries) {
		return l.Entries()
	}
	out := make([]domain.ChatLogEntry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}
