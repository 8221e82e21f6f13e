package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/citylingua/citylingua/pkg/serrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads the JSON body into dst and runs struct validation on it.
func Decode(r *http.Request, dst any) error {
	defer func() { _ = r.Body.Close() }()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Validation("BODY_INVALID", "request body is not valid JSON", "")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return serrors.Validation("FIELD_INVALID", "invalid value for "+fe.Field(), fe.Field())
		}
		return serrors.Validation("BODY_INVALID", "request body failed validation", "")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Dependents int    `json:"dependents,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// WriteError maps the structured error taxonomy onto HTTP statuses. Unknown
// errors become an opaque 500; internals never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	se, ok := serrors.AsError(err)
	if !ok {
		WriteJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorBody{Code: "INTERNAL", Message: "internal server error"},
		})
		return
	}

	status := http.StatusInternalServerError
	switch se.Kind {
	case serrors.KindDenied:
		status = http.StatusForbidden
	case serrors.KindValidation:
		status = http.StatusBadRequest
	case serrors.KindNotFound:
		status = http.StatusNotFound
	case serrors.KindConflict, serrors.KindReferential:
		status = http.StatusConflict
	case serrors.KindTransaction:
		status = http.StatusServiceUnavailable
	}
	WriteJSON(w, status, errorResponse{
		Error: errorBody{
			Code:       se.Code,
			Message:    se.Message,
			Field:      se.Field,
			Dependents: se.Dependents,
		},
	})
}
