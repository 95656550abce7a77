package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/linkjournal/internal/models"
)

func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topics.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, topics)
}

func (h *Handler) createTopic(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	topic, err := h.topics.Create(r.Context(), UserID(r.Context()), req.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, topic)
}

func (h *Handler) getTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.topics.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, topic)
}

func (h *Handler) updateTopic(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateTopicRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.topics.Rename(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req.Name); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Topic updated"})
}

func (h *Handler) deleteTopic(w http.ResponseWriter, r *http.Request) {
	if err := h.topics.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Topic deleted"})
}
