package profile

import (
	"github.com/gorilla/mux"

	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpsertProfile).Methods("PUT")
	api.HandleFunc("/profile/photo", handler.UploadPhoto).Methods("POST")
}
