package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"speakeradmin/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth wraps every admin handler; login stays public.
func NewRouter(speakerController *controllers.SpeakerController,
	authController *controllers.AuthController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Speaker admin
	mux.HandleFunc("GET /admin/speakers/nonce", requireAuth(speakerController.GetNonce))
	mux.HandleFunc("GET /admin/speakers", requireAuth(speakerController.List))
	mux.HandleFunc("POST /admin/speakers", requireAuth(speakerController.Create))
	mux.HandleFunc("GET /admin/speakers/{speakerID}", requireAuth(speakerController.Get))
	mux.HandleFunc("POST /admin/speakers/{speakerID}", requireAuth(speakerController.Update))
	mux.HandleFunc("DELETE /admin/speakers/{speakerID}", requireAuth(speakerController.Delete))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
