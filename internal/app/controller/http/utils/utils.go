package httputils

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-module/carbon/v2"
	"go.uber.org/zap"

	"github.com/orderline/go-order-system/internal/app/model"
)

const (
	RequestTimeout = 3 * time.Second
)

func WriteJSON(w http.ResponseWriter, statusCode int, payload any) {
	out, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("error while marshalling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(out)
}

func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, title, message string, violations []model.FieldViolation) {
	response := model.ErrorResponse{
		Timestamp:        carbon.Now().ToRfc3339String(),
		Status:           statusCode,
		Error:            title,
		Message:          message,
		Path:             r.URL.Path,
		ValidationErrors: violations,
	}

	WriteJSON(w, statusCode, response)
}
