package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/zhaomaota/word-stone/internal/domain"
)

// Envelope wraps every ledger response
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Count is a pack count that may arrive as a JSON number or numeric string
type Count int

// UnmarshalJSON accepts a number, a numeric string, or null.
// NaN, infinities and values outside the int32 range are rejected.
func (c *Count) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(s)
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("%w: pack count %q", domain.ErrInvalidInput, string(b))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("%w: pack count %q out of range", domain.ErrInvalidInput, string(b))
	}
	*c = Count(f)
	return nil
}

// PacksData is the payload of GET /packs/me
type PacksData struct {
	TotalPacksByType map[string]Count `json:"totalPacksByType"`
}

// Counts converts the payload to plain ints
func (p PacksData) Counts() map[string]int {
	out := make(map[string]int, len(p.TotalPacksByType))
	for k, v := range p.TotalPacksByType {
		out[k] = int(v)
	}
	return out
}

// WordsData is the payload of GET /words/me
type WordsData struct {
	Words []domain.RemoteWord `json:"words"`
}

// NewWord is one entry of POST /words/me
type NewWord struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Rarity     string `json:"rarity"`
}

// NewWordsFromCards converts drawn cards into a save request, dropping repeats
func NewWordsFromCards(cards []domain.DrawnCard) []NewWord {
	seen := make(map[string]struct{}, len(cards))
	out := make([]NewWord, 0, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.Word]; dup {
			continue
		}
		seen[c.Word] = struct{}{}
		out = append(out, NewWord{Word: c.Word, Definition: c.Definition, Rarity: string(c.Rarity)})
	}
	return out
}

// User is the payload of GET /users/me and GET /auth/verify
type User struct {
	ID         domain.FlexID `json:"id"`
	Username   string        `json:"username"`
	Nickname   string        `json:"nickname"`
	Avatar     string        `json:"avatar"`
	TotalRoses int           `json:"totalRoses"`
}

// Profile converts the remote user to the session profile
func (u User) Profile() domain.Profile {
	return domain.Profile{
		Username:   u.Username,
		Nickname:   u.Nickname,
		Avatar:     u.Avatar,
		TotalRoses: u.TotalRoses,
	}
}

// ProfileUpdate is the body of PUT /users/me. Nil fields are left unchanged.
type ProfileUpdate struct {
	Nickname *string `json:"nickname,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Empty reports whether the update changes nothing
func (u ProfileUpdate) Empty() bool {
	return u.Nickname == nil && u.Avatar == nil
}

// Apply returns p with the update's fields set
func (u ProfileUpdate) Apply(p domain.Profile) domain.Profile {
	if u.Nickname != nil {
		p.Nickname = *u.Nickname
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	return p
}

type addPacksRequest struct {
	PackID string `json:"packId"`
	Count  int    `json:"count"`
}

type saveWordsRequest struct {
	Words []NewWord `json:"words"`
}

type favoriteRequest struct {
	IsFavorited bool `json:"isFavorited"`
}
