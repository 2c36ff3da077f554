package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

func (h *Handler) prompt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	response, err := h.llm.SubmitPrompt(ctx, req.Prompt)
	if err != nil {
		log.Err(err).Msg("prompt relay failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.PromptResponse{Response: response}, http.StatusOK)
}

func (h *Handler) searchDecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	decks, err := h.search.Search(ctx, req.Prompt, req.TopK)
	if err != nil {
		log.Err(err).Msg("deck search failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.SearchResponse{Decks: decks}, http.StatusOK)
}
