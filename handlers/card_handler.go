package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Tanner-R/deck-game/internal/card"
	"github.com/Tanner-R/deck-game/services"
	"github.com/Tanner-R/deck-game/utils"
)

type CardHandler struct {
	cardService *services.CardService
}

func NewCardHandler(cardService *services.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// parseWeek reads an optional ?week=YYYY-MM-DD query parameter and
// normalizes it to the Monday of that week.
func parseWeek(r *http.Request) (time.Time, bool, error) {
	raw := r.URL.Query().Get("week")
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid week %q", raw)
	}
	return utils.WeekStart(t), true, nil
}

func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	week, hasWeek, err := parseWeek(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var cards []*card.WeeklyCard
	if hasWeek {
		cards, err = h.cardService.ListWeekCards(ctx, week)
	} else {
		cards, err = h.cardService.ListCards(ctx)
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, cards)
}

func (h *CardHandler) DrawCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req card.DrawCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	weekStart := utils.WeekStart(time.Now())
	if req.WeekStartDate != "" {
		t, err := time.Parse("2006-01-02", req.WeekStartDate)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid week_start_date")
			return
		}
		weekStart = utils.WeekStart(t)
	}

	created, err := h.cardService.DrawCard(ctx, weekStart, req.Suit, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, card.ErrWeekFull), errors.Is(err, card.ErrDuplicateCard):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}

func (h *CardHandler) ClaimCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card id")
		return
	}

	var req card.ClaimCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claimed, err := h.cardService.ClaimCard(ctx, id, req.ClaimedBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, card.ErrAlreadyClaimed):
			respondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, card.ErrMissingClaimer):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, claimed)
}

func (h *CardHandler) UnclaimCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card id")
		return
	}

	unclaimed, err := h.cardService.UnclaimCard(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCardNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, card.ErrNotClaimed):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	respondWithJSON(w, http.StatusOK, unclaimed)
}

func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid card id")
		return
	}

	if err := h.cardService.DeleteCard(ctx, id); err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Card deleted"})
}

// ClearWeek deletes every card for the requested week. Defaults to the
// current week when no ?week= is given, matching the UI's "Clear All".
func (h *CardHandler) ClearWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	week, hasWeek, err := parseWeek(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !hasWeek {
		week = utils.WeekStart(time.Now())
	}

	deleted, err := h.cardService.ClearWeek(ctx, week)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// GetDeck serves the deck vocabulary so clients can render the picker
// without hardcoding the scoring rules.
func (h *CardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	type suitInfo struct {
		Name    string `json:"name"`
		Icon    string `json:"icon"`
		Color   string `json:"color"`
		Meaning string `json:"meaning"`
	}
	type valueInfo struct {
		Value string `json:"value"`
		Bonus int    `json:"bonus"`
	}

	suits := make([]suitInfo, 0, len(utils.Suits))
	for _, s := range utils.Suits {
		suits = append(suits, suitInfo{
			Name:    s,
			Icon:    utils.GetSuitIcon(s),
			Color:   utils.GetSuitColor(s),
			Meaning: utils.GetSuitMeaning(s),
		})
	}

	values := make([]valueInfo, 0, len(utils.Values))
	for _, v := range utils.Values {
		values = append(values, valueInfo{Value: v, Bonus: utils.BonusPoints(v)})
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"suits":        suits,
		"values":       values,
		"max_per_week": card.MaxPerWeek,
		"current_week": utils.WeekStart(time.Now()).Format("2006-01-02"),
	})
}
