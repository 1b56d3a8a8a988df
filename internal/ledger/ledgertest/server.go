// Package ledgertest provides an in-memory remote ledger speaking the same
// HTTP contract as the real service, for tests.
package ledgertest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/ledger"
)

type account struct {
	user  ledger.User
	packs map[string]int
	words []wireWord
}

// wireWord sends ids as JSON numbers, the way the real ledger does
type wireWord struct {
	Word        string `json:"word"`
	WordID      int    `json:"wordId"`
	Rarity      string `json:"rarity"`
	Definition  string `json:"definition"`
	IsFavorited bool   `json:"isFavorited"`
}

// Server is a fake remote ledger
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	accounts map[string]*account
	nextID   int
	failures map[string]int
	calls    map[string]int
}

// New starts a fake ledger. Callers must Close it.
func New() *Server {
	s := &Server{
		accounts: make(map[string]*account),
		nextID:   100,
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get(ledger.PathVerify, s.wrap(ledger.OpVerify, s.handleVerify))
	r.Get(ledger.PathCurrentUser, s.wrap(ledger.OpCurrentUser, s.handleVerify))
	r.Put(ledger.PathCurrentUser, s.wrap(ledger.OpUpdateUser, s.handleUpdateUser))
	r.Get(ledger.PathPacks, s.wrap(ledger.OpGetPacks, s.handleGetPacks))
	r.Post(ledger.PathAddPacks, s.wrap(ledger.OpAddPacks, s.handleAddPacks))
	r.Post("/packs/me/{packId}/use", s.wrap(ledger.OpUsePack, s.handleUsePack))
	r.Get(ledger.PathWords, s.wrap(ledger.OpGetWords, s.handleGetWords))
	r.Post(ledger.PathWords, s.wrap(ledger.OpSaveWords, s.handleSaveWords))
	r.Post("/words/me/{wordId}/favorite", s.wrap(ledger.OpSetFavorite, s.handleFavorite))

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers a bearer token and its profile
func (s *Server) AddUser(token string, u ledger.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[token] = &account{user: u, packs: map[string]int{}}
}

// SetPacks overwrites the pack counts of an account
func (s *Server) SetPacks(token string, packs map[string]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[token]; ok {
		a.packs = make(map[string]int, len(packs))
		for k, v := range packs {
			a.packs[k] = v
		}
	}
}

// AddWord stores an owned word and returns its id
func (s *Server) AddWord(token, word, rarity, definition string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[token]
	if !ok {
		return ""
	}
	return strconv.Itoa(s.addWordLocked(a, word, rarity, definition))
}

func (s *Server) addWordLocked(a *account, word, rarity, definition string) int {
	for _, w := range a.words {
		if w.Word == word {
			return w.WordID
		}
	}
	s.nextID++
	a.words = append(a.words, wireWord{Word: word, WordID: s.nextID, Rarity: rarity, Definition: definition})
	return s.nextID
}

// User returns the stored profile of an account
func (s *Server) User(token string) ledger.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[token]; ok {
		return a.user
	}
	return ledger.User{}
}

// Packs returns the stored pack counts of an account
func (s *Server) Packs(token string) map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	if a, ok := s.accounts[token]; ok {
		for k, v := range a.packs {
			out[k] = v
		}
	}
	return out
}

// Words returns the stored words of an account
func (s *Server) Words(token string) []domain.RemoteWord {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[token]
	if !ok {
		return nil
	}
	out := make([]domain.RemoteWord, 0, len(a.words))
	for _, w := range a.words {
		out = append(out, domain.RemoteWord{
			Word:        w.Word,
			WordID:      domain.FlexID(strconv.Itoa(w.WordID)),
			Rarity:      w.Rarity,
			Definition:  w.Definition,
			IsFavorited: w.IsFavorited,
		})
	}
	return out
}

// Fail makes every call of op answer with status. Zero clears the failure.
func (s *Server) Fail(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failures, op)
		return
	}
	s.failures[op] = status
}

// Calls returns how many times op was requested
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, a *account)

// wrap counts calls, applies injected failures and resolves the bearer token.
// Handlers run with the server lock held.
func (s *Server) wrap(op string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.calls[op]++
		if status, ok := s.failures[op]; ok {
			writeJSON(w, status, ledger.Envelope{Success: false, Error: "injected failure"})
			return
		}

		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		a, ok := s.accounts[token]
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ledger.Envelope{Success: false, Error: "invalid token"})
			return
		}
		h(w, r, a)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data interface{}) {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	writeJSON(w, http.StatusOK, ledger.Envelope{Success: true, Data: raw})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ledger.Envelope{Success: false, Error: msg})
}

func (s *Server) handleVerify(w http.ResponseWriter, _ *http.Request, a *account) {
	writeOK(w, a.user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request, a *account) {
	var req ledger.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Nickname != nil && strings.TrimSpace(*req.Nickname) == "" {
		writeFail(w, http.StatusBadRequest, "nickname cannot be empty")
		return
	}
	if req.Nickname != nil {
		a.user.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Avatar != nil {
		a.user.Avatar = *req.Avatar
	}
	writeOK(w, a.user)
}

func (s *Server) handleGetPacks(w http.ResponseWriter, _ *http.Request, a *account) {
	writeOK(w, map[string]interface{}{"totalPacksByType": a.packs})
}

func (s *Server) handleAddPacks(w http.ResponseWriter, r *http.Request, a *account) {
	var req struct {
		PackID string `json:"packId"`
		Count  int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PackID == "" || req.Count <= 0 {
		writeFail(w, http.StatusBadRequest, "invalid pack grant")
		return
	}
	a.packs[req.PackID] += req.Count
	writeOK(w, nil)
}

func (s *Server) handleUsePack(w http.ResponseWriter, r *http.Request, a *account) {
	packID := chi.URLParam(r, "packId")
	if a.packs[packID] <= 0 {
		writeFail(w, http.StatusConflict, "no packs left")
		return
	}
	a.packs[packID]--
	writeOK(w, nil)
}

func (s *Server) handleGetWords(w http.ResponseWriter, r *http.Request, a *account) {
	filter := r.URL.Query().Get("isFavorited")
	words := make([]wireWord, 0, len(a.words))
	for _, word := range a.words {
		if filter != "" && strconv.FormatBool(word.IsFavorited) != filter {
			continue
		}
		words = append(words, word)
	}
	writeOK(w, map[string]interface{}{"words": words})
}

func (s *Server) handleSaveWords(w http.ResponseWriter, r *http.Request, a *account) {
	var req struct {
		Words []ledger.NewWord `json:"words"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	for _, nw := range req.Words {
		s.addWordLocked(a, nw.Word, nw.Rarity, nw.Definition)
	}
	writeOK(w, nil)
}

func (s *Server) handleFavorite(w http.ResponseWriter, r *http.Request, a *account) {
	id, err := strconv.Atoi(chi.URLParam(r, "wordId"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid word id")
		return
	}
	var req struct {
		IsFavorited bool `json:"isFavorited"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid body")
		return
	}
	for i := range a.words {
		if a.words[i].WordID == id {
			a.words[i].IsFavorited = req.IsFavorited
			writeOK(w, nil)
			return
		}
	}
	writeFail(w, http.StatusNotFound, "word not found")
}
