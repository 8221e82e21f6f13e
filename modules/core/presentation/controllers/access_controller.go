package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/core/domain/entities/grant"
	"github.com/citylingua/citylingua/modules/core/presentation/dtos"
	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/server"
)

type AccessController struct {
	access *services.AccessService
}

func NewAccessController(app application.Application) application.Controller {
	return &AccessController{
		access: app.Service(services.AccessService{}).(*services.AccessService),
	}
}

func (c *AccessController) Key() string {
	return "/cities/grants"
}

func (c *AccessController) Register(r *mux.Router) {
	router := r.PathPrefix("/cities/{cityID}/grants").Subrouter()
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("", c.Grant).Methods(http.MethodPost)
	router.HandleFunc("/{accountID}", c.Revoke).Methods(http.MethodDelete)
}

func (c *AccessController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r, "cityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	grants, err := c.access.ListGrants(ctx, cityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewGrantListResponse(grants))
}

func (c *AccessController) Grant(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r, "cityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.GrantRoleDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	accountID, err := uuid.Parse(dto.AccountID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	granted, err := c.access.Grant(ctx, cityID, accountID, grant.Role(dto.Role))
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewGrantResponse(granted))
}

func (c *AccessController) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r, "cityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	accountID, err := pathUUID(r, "accountID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.access.Revoke(ctx, cityID, accountID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}
