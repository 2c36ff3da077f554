package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-card-keeper/internal/logger"
	"github.com/MKhiriev/go-card-keeper/internal/utils"
	"github.com/MKhiriev/go-card-keeper/models"
)

// userIDFromRequest pulls the authenticated user's id out of the request
// context. The auth middleware guards every route that reaches here, so a
// missing id means a routing mistake, reported as 401 rather than a panic.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Msg("no user id in authorized request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
	}
	return userID, ok
}

func (h *Handler) createDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	summary, err := h.services.DeckService.CreateDeck(ctx, userID, req.DeckName)
	if err != nil {
		log.Err(err).Msg("deck creation failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) getDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	deck, err := h.services.DeckService.GetDeck(ctx, userID, req.DeckID)
	if err != nil {
		log.Err(err).Msg("deck lookup failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.GetDeckResponse{
		DeckID:       req.DeckID,
		Name:         deck.Name,
		CreationTime: deck.CreationTime,
		NumCards:     len(deck.Cards),
	}, http.StatusOK)
}

func (h *Handler) listDecks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	decks, err := h.services.DeckService.ListDecks(ctx, userID)
	if err != nil {
		log.Err(err).Msg("deck listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ListDecksResponse{Decks: decks}, http.StatusOK)
}

func (h *Handler) deleteDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DeckService.DeleteDeck(ctx, userID, req.DeckID); err != nil {
		log.Err(err).Msg("deck deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) importDeck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.ImportDeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	text, err := h.extractor.ExtractText([]byte(req.Text))
	if err != nil {
		log.Err(err).Msg("text extraction failed")
		writeError(w, err)
		return
	}

	summary, err := h.services.DeckService.ImportDeck(ctx, userID, req.DeckName, text)
	if err != nil {
		log.Err(err).Msg("deck import failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

func (h *Handler) createCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DeckService.CreateCard(ctx, userID, req.DeckID, req.Question, req.Answer); err != nil {
		log.Err(err).Msg("card creation failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) editCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.EditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DeckService.EditCard(ctx, userID, req.DeckID, req.CardIndex, req.NewQuestion, req.NewAnswer); err != nil {
		log.Err(err).Msg("card edit failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) deleteCard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.DeleteCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.DeckService.DeleteCard(ctx, userID, req.DeckID, req.CardIndex); err != nil {
		log.Err(err).Msg("card deletion failed")
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) listCards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var req models.DeckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	cards, err := h.services.DeckService.ListCards(ctx, userID, req.DeckID)
	if err != nil {
		log.Err(err).Msg("card listing failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.ListCardsResponse{Cards: cards}, http.StatusOK)
}
