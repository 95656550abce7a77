package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkravets/linkjournal/internal/models"
)

func (h *Handler) listJournals(w http.ResponseWriter, r *http.Request) {
	journals, err := h.journals.List(r.Context(), UserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, journals)
}

func (h *Handler) listJournalsByTopic(w http.ResponseWriter, r *http.Request) {
	journals, err := h.journals.ListByTopic(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, journals)
}

func (h *Handler) createJournal(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	journal, err := h.journals.Create(r.Context(), UserID(r.Context()), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, journal)
}

func (h *Handler) getJournal(w http.ResponseWriter, r *http.Request) {
	journal, err := h.journals.Get(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, journal)
}

func (h *Handler) updateJournal(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateJournalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if _, err := h.journals.Update(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"), req); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Journal updated"})
}

func (h *Handler) deleteJournal(w http.ResponseWriter, r *http.Request) {
	if err := h.journals.Delete(r.Context(), UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.MessageResponse{Message: "Journal deleted"})
}

func (h *Handler) toggleImportant(w http.ResponseWriter, r *http.Request) {
	isImportant, err := h.journals.ToggleImportant(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ToggleImportantResponse{
		Message:     "Journal updated",
		IsImportant: isImportant,
	})
}
