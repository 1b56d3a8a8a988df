package domain

// EntryType distinguishes system notices from user messages in the chat log
type EntryType string

// Chat entry types
const (
	EntrySystem EntryType = "sys"
	EntryUser   EntryType = "user"
)

// ChatLogEntry is one line of the session chat log.
// Only Roses may change after the entry is appended.
type ChatLogEntry struct {
	ID        string    `json:"id"`
	Type      EntryType `json:"type"`
	Content   string    `json:"content"`
	IsError   bool      `json:"isError"`
	Username  string    `json:"username,omitempty"`
	Nickname  string    `json:"nickname,omitempty"`
	Roses     int       `json:"roses"`
	Timestamp int64     `json:"timestamp"`
}

// DisplayName returns the nickname when set, otherwise the username
func (e ChatLogEntry) DisplayName() string {
	if e.Nickname != "" {
		return e.Nickname
	}
	return e.Username
}

// Profile is the user record kept alongside the bearer token
type Profile struct {
	Username   string `json:"username"`
	Nickname   string `json:"nickname,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	TotalRoses int    `json:"totalRoses"`
}

// OnlineUser is an entry of the relay's presence list
type OnlineUser struct {
	Username  string `json:"username"`
	Nickname  string `json:"nickname,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	WordCount int    `json:"wordCount,omitempty"`
}
