package matching

import (
	"github.com/gorilla/mux"

	"github.com/StangherlinEnrico/SociusFit.Backend-sub000/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/discovery", handler.GetDiscovery).Methods("GET")
	api.HandleFunc("/swipes", handler.SwipeLike).Methods("POST")
	api.HandleFunc("/matches", handler.GetMatches).Methods("GET")
}
