package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mkravets/linkjournal/internal/logging"
	"github.com/mkravets/linkjournal/internal/server/auth"
	"github.com/mkravets/linkjournal/internal/server/identity"
	"github.com/mkravets/linkjournal/internal/server/services"
)

// Handler holds the service layer the routes dispatch into.
type Handler struct {
	logger   logging.Logger
	verifier auth.Verifier
	topics   *services.TopicService
	journals *services.JournalService
	users    *services.UserService
	uploads  *services.UploadService

	// identity is the dev provider; nil in firebase mode, in which case
	// the /identity endpoints are not mounted.
	identity *identity.Service
}

func NewHandler(
	logger logging.Logger,
	verifier auth.Verifier,
	topics *services.TopicService,
	journals *services.JournalService,
	users *services.UserService,
	uploads *services.UploadService,
	identitySvc *identity.Service,
) *Handler {
	return &Handler{
		logger:   logger,
		verifier: verifier,
		topics:   topics,
		journals: journals,
		users:    users,
		uploads:  uploads,
		identity: identitySvc,
	}
}

// Router assembles the full route tree. Everything under /api requires a
// verified bearer token.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(requestLogger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(authenticate(h.verifier))

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", h.listTopics)
			r.Post("/", h.createTopic)
			r.Get("/{id}", h.getTopic)
			r.Put("/{id}", h.updateTopic)
			r.Delete("/{id}", h.deleteTopic)
			r.Get("/{id}/journals", h.listJournalsByTopic)
		})

		r.Get("/journals", h.listJournals)
		r.Post("/journals", h.createJournal)

		r.Route("/journal/{id}", func(r chi.Router) {
			r.Get("/", h.getJournal)
			r.Put("/", h.updateJournal)
			r.Delete("/", h.deleteJournal)
			r.Put("/important", h.toggleImportant)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.profile)
			r.Post("/signup", h.signup)
			r.Put("/profile-picture", h.updateProfilePicture)
		})

		r.Post("/uploads/presign", h.presignUpload)
	})

	if h.identity != nil {
		r.Route("/identity/v1", func(r chi.Router) {
			r.Post("/accounts:signUp", h.identitySignUp)
			r.Post("/accounts:signInWithPassword", h.identitySignIn)
			r.Post("/accounts:sendOobCode", h.identitySendOobCode)
			r.Post("/token", h.identityToken)
		})
	}

	return r
}
