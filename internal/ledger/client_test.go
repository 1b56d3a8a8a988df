package ledger_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhaomaota/word-stone/internal/domain"
	"github.com/zhaomaota/word-stone/internal/ledger"
	"github.com/zhaomaota/word-stone/internal/ledger/ledgertest"
)

const token = "tok-ana"

func setup(t *testing.T) (*ledgertest.Server, *ledger.Client) {
	t.Helper()
	srv := ledgertest.New()
	t.Cleanup(srv.Close)
	srv.AddUser(token, ledger.User{ID: "1", Username: "ana", Nickname: "Ana", TotalRoses: 3})
	return srv, ledger.NewClient(ledger.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestVerifyAndCurrentUser(t *testing.T) {
	_, c := setup(t)
	ctx := context.Background()

	u, err := c.Verify(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Username)

	u, err = c.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{Username: "ana", Nickname: "Ana", TotalRoses: 3}, u.Profile())
}

func TestUpdateCurrentUser(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()
	nickname, avatar := "Anita", "data:image/png;base64,AAAA"

	u, err := c.UpdateCurrentUser(ctx, token, ledger.ProfileUpdate{Nickname: &nickname})
	require.NoError(t, err)
	assert.Equal(t, "Anita", u.Nickname)
	assert.Empty(t, u.Avatar)

	u, err = c.UpdateCurrentUser(ctx, token, ledger.ProfileUpdate{Avatar: &avatar})
	require.NoError(t, err)
	assert.Equal(t, domain.Profile{Username: "ana", Nickname: "Anita", Avatar: avatar, TotalRoses: 3}, u.Profile())
	assert.Equal(t, u, srv.User(token))
	assert.Equal(t, 2, srv.Calls(ledger.OpUpdateUser))

	blank := "  "
	_, err = c.UpdateCurrentUser(ctx, token, ledger.ProfileUpdate{Nickname: &blank})
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.Equal(t, "Anita", srv.User(token).Nickname)
}

func TestProfileUpdate_Apply(t *testing.T) {
	nickname := "Bo"
	p := domain.Profile{Username: "bo", Nickname: "bob", Avatar: "a.png", TotalRoses: 1}

	assert.True(t, ledger.ProfileUpdate{}.Empty())
	assert.Equal(t, p, ledger.ProfileUpdate{}.Apply(p))

	got := ledger.ProfileUpdate{Nickname: &nickname}.Apply(p)
	assert.Equal(t, domain.Profile{Username: "bo", Nickname: "Bo", Avatar: "a.png", TotalRoses: 1}, got)
}

func TestUnauthorized(t *testing.T) {
	_, c := setup(t)

	_, err := c.Verify(context.Background(), "bogus")

	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestPacksRoundTrip(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.AddPacks(ctx, token, "normal", 5))
	require.NoError(t, c.UsePack(ctx, token, "normal"))

	packs, err := c.GetPacks(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"normal": 4}, packs)
	assert.Equal(t, packs, srv.Packs(token))
}

func TestUsePack_NoneLeft(t *testing.T) {
	_, c := setup(t)

	err := c.UsePack(context.Background(), token, "normal")

	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "no packs left")
}

func TestWordsRoundTrip(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	cards := []domain.DrawnCard{
		{Word: "data", Definition: "n. facts", Rarity: domain.RarityEpic},
		{Word: "have", Definition: "v. own", Rarity: domain.RarityCommon},
		{Word: "data", Definition: "n. facts", Rarity: domain.RarityEpic},
	}
	require.NoError(t, c.SaveWords(ctx, token, ledger.NewWordsFromCards(cards)))

	words, err := c.GetWords(ctx, token, nil)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "data", words[0].Word)
	assert.NotEmpty(t, words[0].WordID.String(), "numeric ids decode into strings")
	assert.Equal(t, srv.Words(token), words)

	require.NoError(t, c.SetFavorite(ctx, token, words[0].WordID.String(), true))

	favoritesOnly := true
	favs, err := c.GetWords(ctx, token, &favoritesOnly)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.True(t, favs[0].IsFavorited)
}

func TestSaveWords_EmptyMakesNoCall(t *testing.T) {
	srv, c := setup(t)

	require.NoError(t, c.SaveWords(context.Background(), token, nil))
	assert.Zero(t, srv.Calls(ledger.OpSaveWords))
}

func TestInjectedFailure(t *testing.T) {
	srv, c := setup(t)
	srv.Fail(ledger.OpGetWords, http.StatusBadGateway)

	_, err := c.GetWords(context.Background(), token, nil)

	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
	assert.Equal(t, 1, srv.Calls(ledger.OpGetWords), "retries are off by default")
}

func TestRetriesServerErrors(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"totalPacksByType": map[string]interface{}{"normal": "2"}},
		})
	}))
	defer srv.Close()

	c := ledger.NewClient(ledger.Config{BaseURL: srv.URL, MaxRetries: 3, RetryDelay: time.Millisecond})

	packs, err := c.GetPacks(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"normal": 2}, packs, "string counts are accepted")
	assert.Equal(t, int32(3), attempts.Load())
}

func TestEnvelopeFailures(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"success false", `{"success":false,"error":"nope"}`},
		{"not json", `<html>oops</html>`},
		{"bad data", `{"success":true,"data":{"words":"x"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := ledger.NewClient(ledger.Config{BaseURL: srv.URL}).GetWords(context.Background(), token, nil)
			assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
		})
	}
}

func TestUnconfiguredClient(t *testing.T) {
	_, err := ledger.NewClient(ledger.Config{}).GetPacks(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrRemoteCallFailed)
}
