package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-card-keeper/internal/adapter"
	"github.com/MKhiriev/go-card-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrompt_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.llm.EXPECT().
		SubmitPrompt(gomock.Any(), "explain mitosis").
		Return("mitosis is cell division", nil)

	w := postJSON(t, router, "/api/ai/prompt", models.PromptRequest{Prompt: "explain mitosis"}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PromptResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "mitosis is cell division", resp.Response)
}

func TestPrompt_UpstreamDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.llm.EXPECT().
		SubmitPrompt(gomock.Any(), gomock.Any()).
		Return("", adapter.ErrUpstreamUnavailable)

	w := postJSON(t, router, "/api/ai/prompt", models.PromptRequest{Prompt: "anything"}, authed("live-token"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPrompt_EmptyPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.llm.EXPECT().
		SubmitPrompt(gomock.Any(), "").
		Return("", adapter.ErrEmptyPrompt)

	w := postJSON(t, router, "/api/ai/prompt", models.PromptRequest{}, authed("live-token"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.search.EXPECT().
		Search(gomock.Any(), "cell biology", 3).
		Return([]models.SearchResult{
			{UserID: 42, DeckID: 7, Name: "biology", Score: 0.91},
		}, nil)

	w := postJSON(t, router, "/api/search", models.SearchRequest{Prompt: "cell biology", TopK: 3}, authed("live-token"))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Decks, 1)
	assert.Equal(t, "biology", resp.Decks[0].Name)
	assert.InDelta(t, 0.91, resp.Decks[0].Score, 1e-9)
}

func TestSearch_UpstreamDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, m := newTestRouter(t, ctrl)
	expectAuthorized(m, 42)
	m.search.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, adapter.ErrUpstreamUnavailable)

	w := postJSON(t, router, "/api/search", models.SearchRequest{Prompt: "anything"}, authed("live-token"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
