package notifications

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/auth"
	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/common/utils"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/notifications").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/devices", handler.RegisterDevice).Methods("POST")
}

// RegisterDevice handles POST /api/v1/notifications/devices
func (h *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(int64)

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.RegisterDevice(r.Context(), userID, &req)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, token)
}
