package api

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/sirupsen/logrus"

	"kadoshrent/internal/entities"
	apperrors "kadoshrent/internal/errors"
)

const maxReservationBody = 64 << 10

// Submitter runs the reservation workflow.
type Submitter interface {
	Submit(ctx context.Context, req entities.ReservationRequest) entities.ReservationResult
}

type ReservationHandler struct {
	Service Submitter
	Log     *logrus.Logger
}

func NewReservationHandler(svc Submitter, log *logrus.Logger) *ReservationHandler {
	return &ReservationHandler{Service: svc, Log: log}
}

// CreateReservation serves POST /api/reservations.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	res, ok := h.submit(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.Log, resultStatus(res), res)
}

// DownloadCalendar serves POST /api/reservations/ics. On success the
// calendar file is streamed as an attachment instead of JSON.
func (h *ReservationHandler) DownloadCalendar(w http.ResponseWriter, r *http.Request) {
	res, ok := h.submit(w, r)
	if !ok {
		return
	}
	if !res.Success || res.ICSData == "" {
		writeJSON(w, h.Log, resultStatus(res), res)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.ICSFilename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(res.ICSData)); err != nil {
		h.Log.WithError(err).Warn("failed to stream calendar file")
	}
}

func (h *ReservationHandler) submit(w http.ResponseWriter, r *http.Request) (entities.ReservationResult, bool) {
	var req entities.ReservationRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxReservationBody)).Decode(&req); err != nil {
		h.Log.WithError(err).Debug("rejecting malformed reservation body")
		writeError(w, h.Log, apperrors.ErrBadRequest("Invalid request"))
		return entities.ReservationResult{}, false
	}
	return h.Service.Submit(r.Context(), req), true
}

func resultStatus(res entities.ReservationResult) int {
	switch {
	case res.Success:
		return http.StatusOK
	case len(res.Errors) > 0:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
