package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clocklab/timesheet-backend-go/internal/domain/project"
	"github.com/clocklab/timesheet-backend-go/internal/handler/http/response"
	projectsvc "github.com/clocklab/timesheet-backend-go/internal/service/project"
	"github.com/go-chi/chi/v5"
)

type ProjectHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddMember(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
}

type ProjectHandlerImpl struct {
	projectService *projectsvc.Service
}

func NewProjectHandler(projectService *projectsvc.Service) ProjectHandler {
	return &ProjectHandlerImpl{projectService: projectService}
}

func (h *ProjectHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req project.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.projectService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create project error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Project created", resp)
}

func (h *ProjectHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	resp, err := h.projectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *ProjectHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	resp, err := h.projectService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

func (h *ProjectHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Project deleted", nil)
}

func (h *ProjectHandlerImpl) AddMember(w http.ResponseWriter, r *http.Request) {
	var req project.AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	member, err := h.projectService.AddMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Error("Add project member error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Member added", member)
}

func (h *ProjectHandlerImpl) RemoveMember(w http.ResponseWriter, r *http.Request) {
	err := h.projectService.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Member removed", nil)
}

func (h *ProjectHandlerImpl) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.projectService.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, members)
}
