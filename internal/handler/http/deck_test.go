package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-card-keeper/internal/store"
	"github.com/MKhiriev/go-card-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// expectAuthorized arms the token validation expectation every authorized
// request goes through before it reaches a deck handler.
func expectAuthorized(m handlerMocks, userID uint64) {
	m.auth.EXPECT().ValidateToken(gomock.Any(), "live-token").Return(userID, nil)
}

func TestCreateDeck_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		CreateDeck(gomock.Any(), uint64(42), "biology").
		Return(models.DeckSummary{DeckID: 7, Name: "biology", NumCards: 0}, nil)

	w := postJSON(t, router, "/api/deck/create", models.CreateDeckRequest{DeckName: "biology"}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DeckSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.DeckSummary{DeckID: 7, Name: "biology", NumCards: 0}, resp)
}

func TestCreateDeck_Duplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		CreateDeck(gomock.Any(), uint64(42), "biology").
		Return(models.DeckSummary{}, store.ErrDeckAlreadyExists)

	w := postJSON(t, router, "/api/deck/create", models.CreateDeckRequest{DeckName: "biology"}, authed("live-token"))

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateDeck_WithoutToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := newTestRouter(t, ctrl)

	w := postJSON(t, router, "/api/deck/create", models.CreateDeckRequest{DeckName: "biology"}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetDeck_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		GetDeck(gomock.Any(), uint64(42), uint64(7)).
		Return(models.CardDeck{
			CreationTime: 1700000000,
			Name:         "biology",
			Cards:        []models.Card{{Question: "q", Answer: "a"}},
		}, nil)

	w := postJSON(t, router, "/api/deck/get", models.DeckRequest{DeckID: 7}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.GetDeckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.GetDeckResponse{
		DeckID:       7,
		Name:         "biology",
		CreationTime: 1700000000,
		NumCards:     1,
	}, resp)
}

func TestGetDeck_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		GetDeck(gomock.Any(), uint64(42), uint64(404)).
		Return(models.CardDeck{}, store.ErrDeckNotFound)

	w := postJSON(t, router, "/api/deck/get", models.DeckRequest{DeckID: 404}, authed("live-token"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListDecks_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		ListDecks(gomock.Any(), uint64(42)).
		Return([]models.DeckSummary{
			{DeckID: 1, Name: "biology", NumCards: 3},
			{DeckID: 2, Name: "history", NumCards: 0},
		}, nil)

	w := postJSON(t, router, "/api/deck/list", nil, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ListDecksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Decks, 2)
	assert.Equal(t, "biology", resp.Decks[0].Name)
	assert.Equal(t, 3, resp.Decks[0].NumCards)
}

func TestDeleteDeck_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().DeleteDeck(gomock.Any(), uint64(42), uint64(7)).Return(nil)

	w := postJSON(t, router, "/api/deck/delete", models.DeckRequest{DeckID: 7}, authed("live-token"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestImportDeck_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)

	// the plain text extractor is real, so the service sees the trimmed text
	m.decks.EXPECT().
		ImportDeck(gomock.Any(), uint64(42), "imported", "What is Go?\nA language.").
		Return(models.DeckSummary{DeckID: 9, Name: "imported", NumCards: 1}, nil)

	w := postJSON(t, router, "/api/deck/import", models.ImportDeckRequest{
		DeckName: "imported",
		Text:     "  What is Go?\nA language.  ",
	}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.DeckSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.NumCards)
}

func TestImportDeck_EmptyText(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)

	w := postJSON(t, router, "/api/deck/import", models.ImportDeckRequest{
		DeckName: "imported",
		Text:     "   \n\t ",
	}, authed("live-token"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		CreateCard(gomock.Any(), uint64(42), uint64(7), "What is Go?", "A language.").
		Return(nil)

	w := postJSON(t, router, "/api/card/create", models.CreateCardRequest{
		DeckID: 7, Question: "What is Go?", Answer: "A language.",
	}, authed("live-token"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEditCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		EditCard(gomock.Any(), uint64(42), uint64(7), 2, "new q", "new a").
		Return(nil)

	w := postJSON(t, router, "/api/card/edit", models.EditCardRequest{
		DeckID: 7, CardIndex: 2, NewQuestion: "new q", NewAnswer: "new a",
	}, authed("live-token"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEditCard_IndexOutOfRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		EditCard(gomock.Any(), uint64(42), uint64(7), 100, gomock.Any(), gomock.Any()).
		Return(store.ErrCardNotFound)

	w := postJSON(t, router, "/api/card/edit", models.EditCardRequest{
		DeckID: 7, CardIndex: 100, NewQuestion: "q", NewAnswer: "a",
	}, authed("live-token"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCard_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().DeleteCard(gomock.Any(), uint64(42), uint64(7), 0).Return(nil)

	w := postJSON(t, router, "/api/card/delete", models.DeleteCardRequest{
		DeckID: 7, CardIndex: 0,
	}, authed("live-token"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListCards_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		ListCards(gomock.Any(), uint64(42), uint64(7)).
		Return([]models.Card{
			{Question: "q1", Answer: "a1"},
			{Question: "q2", Answer: "a2"},
		}, nil)

	w := postJSON(t, router, "/api/card/list", models.DeckRequest{DeckID: 7}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ListCardsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Cards, 2)
	assert.Equal(t, "q2", resp.Cards[1].Question)
}

func TestDeck_CorruptRecordIsInternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.decks.EXPECT().
		GetDeck(gomock.Any(), uint64(42), uint64(7)).
		Return(models.CardDeck{}, store.ErrCorruptRecord)

	w := postJSON(t, router, "/api/deck/get", models.DeckRequest{DeckID: 7}, authed("live-token"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
