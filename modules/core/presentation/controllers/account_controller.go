package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/core/domain/entities/account"
	"github.com/citylingua/citylingua/modules/core/presentation/dtos"
	"github.com/citylingua/citylingua/modules/core/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/server"
)

type AccountController struct {
	accounts *services.AccountService
}

func NewAccountController(app application.Application) application.Controller {
	return &AccountController{
		accounts: app.Service(services.AccountService{}).(*services.AccountService),
	}
}

func (c *AccountController) Key() string {
	return "/accounts"
}

func (c *AccountController) Register(r *mux.Router) {
	router := r.PathPrefix("/accounts").Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("/{accountID}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{accountID}/global-role", c.SetGlobalRole).Methods(http.MethodPut)
}

func (c *AccountController) Create(w http.ResponseWriter, r *http.Request) {
	var dto dtos.CreateAccountDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.accounts.Create(r.Context(), dto.Email, dto.DisplayName)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewAccountResponse(created))
}

func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathUUID(r, "accountID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	found, err := c.accounts.Get(r.Context(), accountID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewAccountResponse(found))
}

func (c *AccountController) SetGlobalRole(w http.ResponseWriter, r *http.Request) {
	accountID, err := pathUUID(r, "accountID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.SetGlobalRoleDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	role, err := account.NewGlobalRole(dto.GlobalRole)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	updated, err := c.accounts.SetGlobalRole(r.Context(), accountID, role)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewAccountResponse(updated))
}
