package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/serrors"
)

// cityScope parses the {cityID} path variable and binds it as the tenant of
// the request context.
func cityScope(r *http.Request) (context.Context, uuid.UUID, error) {
	cityID, err := uuid.Parse(mux.Vars(r)["cityID"])
	if err != nil {
		return nil, uuid.Nil, serrors.Validation("CITY_ID_INVALID", "city id is not a valid uuid", "")
	}
	return composables.WithTenantID(r.Context(), cityID), cityID, nil
}

func pathUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		return uuid.Nil, serrors.Validation("ID_INVALID", key+" is not a valid uuid", "")
	}
	return id, nil
}

// requestedLocale picks the display locale for reads, defaulting to the
// service-side fallback when absent.
func requestedLocale(r *http.Request) string {
	return r.URL.Query().Get("locale")
}
