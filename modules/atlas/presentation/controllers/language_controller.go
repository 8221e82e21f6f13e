package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/atlas/domain/language"
	"github.com/citylingua/citylingua/modules/atlas/presentation/dtos"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/server"
)

type LanguageController struct {
	languages *services.LanguageService
}

func NewLanguageController(app application.Application) application.Controller {
	return &LanguageController{
		languages: app.Service(services.LanguageService{}).(*services.LanguageService),
	}
}

func (c *LanguageController) Key() string {
	return "/cities/languages"
}

func (c *LanguageController) Register(r *mux.Router) {
	router := r.PathPrefix("/cities/{cityID}/languages").Subrouter()
	router.HandleFunc("", c.Create).Methods(http.MethodPost)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{languageID}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/{languageID}", c.Update).Methods(http.MethodPut)
	router.HandleFunc("/{languageID}", c.Delete).Methods(http.MethodDelete)
	router.HandleFunc("/{languageID}/publish", c.Publish).Methods(http.MethodPost)
}

func (c *LanguageController) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.LanguageWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.languages.CreateWithTranslations(ctx, cityID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewLanguageResponse(created))
}

func (c *LanguageController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	params := &language.FindParams{}
	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		params.Status = language.Status(status)
	}
	if limit, err := strconv.Atoi(query.Get("limit")); err == nil {
		params.Limit = limit
	}
	if offset, err := strconv.Atoi(query.Get("offset")); err == nil {
		params.Offset = offset
	}
	languages, err := c.languages.List(ctx, cityID, params)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewLanguageListResponse(languages))
}

func (c *LanguageController) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	languageID, err := pathUUID(r, "languageID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	view, err := c.languages.Get(ctx, cityID, languageID, requestedLocale(r))
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewLanguageViewResponse(view))
}

func (c *LanguageController) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	languageID, err := pathUUID(r, "languageID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.LanguageWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	updated, err := c.languages.UpdateWithTranslations(ctx, cityID, languageID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewLanguageResponse(updated))
}

func (c *LanguageController) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	languageID, err := pathUUID(r, "languageID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.languages.Delete(ctx, cityID, languageID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *LanguageController) Publish(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	languageID, err := pathUUID(r, "languageID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	published, err := c.languages.Publish(ctx, cityID, languageID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewLanguageResponse(published))
}
