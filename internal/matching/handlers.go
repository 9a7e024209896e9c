package matching

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetDiscovery handles GET /api/v1/discovery
func (h *Handler) GetDiscovery(w http.ResponseWriter, r *http.Request) {
	viewerID := r.Context().Value("userID").(int64)

	params := &DiscoveryParams{}

	if raw := r.URL.Query().Get("sport_id"); raw != "" {
		sportID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid sport_id")
			return
		}
		params.SportID = &sportID
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			params.PageSize = size
		}
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			params.PageNumber = page
		}
	}

	cards, err := h.service.GetDiscoveryCards(r.Context(), viewerID, params)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to build discovery feed")
		return
	}

	if cards == nil {
		cards = []*DiscoveryCard{}
	}
	utils.RespondWithJSON(w, http.StatusOK, cards)
}

// SwipeLike handles POST /api/v1/swipes
func (h *Handler) SwipeLike(w http.ResponseWriter, r *http.Request) {
	viewerID := r.Context().Value("userID").(int64)

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.SwipeLike(r.Context(), viewerID, req.LikedUserID)
	if err != nil {
		switch {
		case errors.Is(err, ErrCannotLikeSelf):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrLikedUserNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAlreadyLiked):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to process swipe")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, result)
}

// GetMatches handles GET /api/v1/matches
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	matches, err := h.service.GetMatches(r.Context(), userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to get matches")
		return
	}

	if matches == nil {
		matches = []*Match{}
	}
	utils.RespondWithJSON(w, http.StatusOK, matches)
}
