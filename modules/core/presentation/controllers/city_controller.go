package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/core/presentation/dtos"
	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/composables"
	"github.com/citylingua/citylingua/pkg/serrors"
	"github.com/citylingua/citylingua/pkg/server"
)

// cityScope parses the {cityID} path variable and binds it as the tenant of
// the request context.
func cityScope(r *http.Request, key string) (context.Context, uuid.UUID, error) {
	raw, ok := mux.Vars(r)[key]
	if !ok {
		return nil, uuid.Nil, serrors.Validation("CITY_ID_MISSING", "city id missing from path", "")
	}
	cityID, err := uuid.Parse(raw)
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

type CityController struct {
	cities *services.CityService
}

func NewCityController(app application.Application) application.Controller {
	return &CityController{
		cities: app.Service(services.CityService{}).(*services.CityService),
	}
}

func (c *CityController) Key() string {
	return "/cities"
}

func (c *CityController) Register(r *mux.Router) {
	router := r.PathPrefix("/cities").Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{cityID}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{cityID}/archive", c.Archive).Methods(http.MethodPost)
}

func (c *CityController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateCityDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.cities.Create(r.Context(), dto.Slug, dto.Name)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewCityResponse(created))
}

func (c *CityController) List(w http.ResponseWriter, r *http.Request) {
	cities, err := c.cities.ListVisible(r.Context())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewCityListResponse(cities))
}

func (c *CityController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r, "cityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	found, err := c.cities.GetByID(ctx, cityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewCityResponse(found))
}

func (c *CityController) Archive(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r, "cityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	archived, err := c.cities.Archive(ctx, cityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewCityResponse(archived))
}
