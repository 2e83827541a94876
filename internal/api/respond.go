package api

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	apperrors "kadoshrent/internal/errors"
)

func writeJSON(w http.ResponseWriter, log logrus.FieldLogger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).WithField("status", status).Warn("failed to write JSON response")
	}
}

func writeError(w http.ResponseWriter, log logrus.FieldLogger, err *apperrors.HTTPError) {
	writeJSON(w, log, err.Code, err)
}
