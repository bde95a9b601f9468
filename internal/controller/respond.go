// internal/controller/respond.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/Hemannshu/xeno-crm/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps service errors onto HTTP statuses: not found → 404,
// validation → 400, bad lifecycle transition → 409, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var campaignNotFound *appErrors.ErrCampaignNotFound
	var customerNotFound *appErrors.ErrCustomerNotFound
	var orderNotFound *appErrors.ErrOrderNotFound
	var validation *appErrors.ErrValidation
	var transition *appErrors.ErrInvalidTransition

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &campaignNotFound),
		errors.As(err, &customerNotFound),
		errors.As(err, &orderNotFound):
		status = http.StatusNotFound
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &transition):
		status = http.StatusConflict
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}
