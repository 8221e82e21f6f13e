package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/atlas/presentation/dtos"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/server"
)

type DistrictController struct {
	districts *services.DistrictService
}

func NewDistrictController(app application.Application) application.Controller {
	return &DistrictController{
		districts: app.Service(services.DistrictService{}).(*services.DistrictService),
	}
}

func (c *DistrictController) Key() string {
	return "/cities/districts"
}

func (c *DistrictController) Register(r *mux.Router) {
	router := r.PathPrefix("/cities/{cityID}/districts").Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{districtID}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{districtID}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{districtID}", c.Delete).Methods(http.MethodDelete)
}

func (c *DistrictController) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.DistrictWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	data, err := dto.ToWrite()
	if err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.districts.CreateWithTranslations(ctx, cityID, data)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewDistrictResponse(created))
}

func (c *DistrictController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	districts, err := c.districts.List(ctx, cityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewDistrictListResponse(districts))
}

func (c *DistrictController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	districtID, err := pathUUID(r, "districtID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	view, err := c.districts.Get(ctx, cityID, districtID, requestedLocale(r))
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewDistrictViewResponse(view))
}

func (c *DistrictController) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	districtID, err := pathUUID(r, "districtID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.DistrictWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	data, err := dto.ToWrite()
	if err != nil {
		server.WriteError(w, err)
		return
	}
	updated, err := c.districts.UpdateWithTranslations(ctx, cityID, districtID, data)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewDistrictResponse(updated))
}

func (c *DistrictController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	districtID, err := pathUUID(r, "districtID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.districts.Delete(ctx, cityID, districtID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}
