package domain

// InventoryEntry is a word the user has unlocked.
// RemoteID stays empty until the remote ledger confirms the word was saved.
type InventoryEntry struct {
	Word        string `json:"word"`
	RemoteID    string `json:"remoteId,omitempty"`
	Rarity      Rarity `json:"rarity"`
	Definition  string `json:"definition"`
	IsFavorited bool   `json:"isFavorited"`
}

// Persisted reports whether the remote ledger has assigned this entry an id
func (e InventoryEntry) Persisted() bool {
	return e.RemoteID != ""
}

// RemoteWord is a word record as reported by the remote ledger
type RemoteWord struct {
	Word        string `json:"word"`
	WordID      FlexID `json:"wordId"`
	Rarity      string `json:"rarity"`
	Definition  string `json:"definition"`
	IsFavorited bool   `json:"isFavorited"`
}
