package common

import (
	"encoding/json"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Envelope is the body of every response.
type Envelope struct {
	Error  bool `json:"error"`
	Status int  `json:"status"`
	Body   any  `json:"body"`
}

func RespondWithSuccess(w http.ResponseWriter, code int, body any) {
	RespondWithJSON(w, code, Envelope{Error: false, Status: code, Body: body})
}

func RespondWithError(w http.ResponseWriter, code int, body any) {
	RespondWithJSON(w, code, Envelope{Error: true, Status: code, Body: body})
}

// RespondWithErr is the single place failures turn into responses: it logs the full
// error and sends only the public message.
func RespondWithErr(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	code := HTTPStatusFromError(err)

	entry := log.WithFields(logrus.Fields{
		"status": code,
		"method": r.Method,
		"path":   r.URL.Path,
	})
	if reqID := chiMiddleware.GetReqID(r.Context()); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if code >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.WithError(err).Warn("Request rejected")
	}

	RespondWithError(w, code, PublicMessage(err))
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":true,"status":500,"body":"Error interno del servidor"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
