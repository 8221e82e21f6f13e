package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/citylingua/citylingua/modules/atlas/presentation/dtos"
	"github.com/citylingua/citylingua/modules/atlas/services"
	"github.com/citylingua/citylingua/pkg/application"
	"github.com/citylingua/citylingua/pkg/server"
)

type ClassificationController struct {
	classifications *services.ClassificationService
}

func NewClassificationController(app application.Application) application.Controller {
	return &ClassificationController{
		classifications: app.Service(services.ClassificationService{}).(*services.ClassificationService),
	}
}

func (c *ClassificationController) Key() string {
	return "/cities/classifications"
}

func (c *ClassificationController) Register(r *mux.Router) {
	types := r.PathPrefix("/cities/{cityID}/classification-types").Subrouter()
	types.HandleFunc("", c.DefineType).Methods(http.MethodPost)
	types.HandleFunc("", c.ListTypes).Methods(http.MethodGet)
	types.HandleFunc("/{typeID}", c.UpdateType).Methods(http.MethodPut)
	types.HandleFunc("/{typeID}", c.DeleteType).Methods(http.MethodDelete)
	types.HandleFunc("/{typeID}/values", c.DefineValue).Methods(http.MethodPost)
	types.HandleFunc("/{typeID}/values", c.ListValues).Methods(http.MethodGet)

	values := r.PathPrefix("/cities/{cityID}/classification-values").Subrouter()
	values.HandleFunc("/{valueID}", c.UpdateValue).Methods(http.MethodPut)
	values.HandleFunc("/{valueID}", c.DeleteValue).Methods(http.MethodDelete)

	entities := r.PathPrefix("/cities/{cityID}/entities/{entityID}").Subrouter()
	entities.HandleFunc("/assignments", c.Assign).Methods(http.MethodPost)
	entities.HandleFunc("/assignments", c.ListAssignments).Methods(http.MethodGet)
	entities.HandleFunc("/assignments/{valueID}", c.Unassign).Methods(http.MethodDelete)
	entities.HandleFunc("/completeness", c.Completeness).Methods(http.MethodGet)
}

func (c *ClassificationController) DefineType(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.TypeWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.classifications.DefineType(ctx, cityID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewTypeResponse(created))
}

func (c *ClassificationController) ListTypes(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	types, err := c.classifications.ListTypes(ctx, cityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewTypeListResponse(types))
}

func (c *ClassificationController) UpdateType(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	typeID, err := pathUUID(r, "typeID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.TypeWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	updated, err := c.classifications.UpdateType(ctx, cityID, typeID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewTypeResponse(updated))
}

func (c *ClassificationController) DeleteType(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	typeID, err := pathUUID(r, "typeID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.classifications.DeleteType(ctx, cityID, typeID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ClassificationController) DefineValue(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	typeID, err := pathUUID(r, "typeID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.ValueWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	created, err := c.classifications.DefineValue(ctx, cityID, typeID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusCreated, dtos.NewValueResponse(created))
}

func (c *ClassificationController) ListValues(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	typeID, err := pathUUID(r, "typeID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	values, err := c.classifications.ListValues(ctx, cityID, typeID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewValueListResponse(values))
}

func (c *ClassificationController) UpdateValue(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	valueID, err := pathUUID(r, "valueID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.ValueWriteDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	updated, err := c.classifications.UpdateValue(ctx, cityID, valueID, dto.ToWrite())
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewValueResponse(updated))
}

func (c *ClassificationController) DeleteValue(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	valueID, err := pathUUID(r, "valueID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.classifications.DeleteValue(ctx, cityID, valueID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ClassificationController) Assign(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	entityID, err := pathUUID(r, "entityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	var dto dtos.AssignDTO
	if err := server.Decode(r, &dto); err != nil {
		server.WriteError(w, err)
		return
	}
	valueID, err := uuid.Parse(dto.ValueID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.classifications.Assign(ctx, cityID, entityID, valueID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ClassificationController) ListAssignments(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	entityID, err := pathUUID(r, "entityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	assignments, err := c.classifications.ListAssignments(ctx, cityID, entityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, dtos.NewAssignmentListResponse(assignments))
}

func (c *ClassificationController) Unassign(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	entityID, err := pathUUID(r, "entityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	valueID, err := pathUUID(r, "valueID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	if err := c.classifications.Unassign(ctx, cityID, entityID, valueID); err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusNoContent, nil)
}

func (c *ClassificationController) Completeness(w http.ResponseWriter, r *http.Request) {
	ctx, cityID, err := cityScope(r)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	entityID, err := pathUUID(r, "entityID")
	if err != nil {
		server.WriteError(w, err)
		return
	}
	missing, err := c.classifications.ValidateCompleteness(ctx, cityID, entityID)
	if err != nil {
		server.WriteError(w, err)
		return
	}
	server.WriteJSON(w, http.StatusOK, map[string]any{
		"complete": len(missing) == 0,
		"missing":  dtos.NewTypeListResponse(missing),
	})
}
