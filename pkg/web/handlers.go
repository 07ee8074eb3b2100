// Package web provides HTTP handlers and REST API endpoints for workflow management.
package web

import (
	"net/http"
	"time"

	"github.com/flowhr/flowhr/pkg/persistence"
	"github.com/flowhr/flowhr/pkg/registry"
	"github.com/flowhr/flowhr/pkg/simulation"
	"github.com/flowhr/flowhr/pkg/validation"
	"github.com/flowhr/flowhr/pkg/workflow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	repository *workflow.Repository
	validator  *validation.Validator
	engine     *simulation.Engine
	registry   *registry.Registry
	validate   *validator.Validate
}

func NewAPIHandlers(
	repository *workflow.Repository,
	workflowValidator *validation.Validator,
	engine *simulation.Engine,
	registry *registry.Registry,
	validate *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		repository: repository,
		validator:  workflowValidator,
		engine:     engine,
		registry:   registry,
		validate:   validate,
	}
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	registryCheck, regOk := h.registry.HealthCheck()
	repositoryCheck, repOk := h.repository.HealthCheck(c.Context())

	status := "unhealthy"
	message := "FlowHR API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if regOk && repOk {
		status = "healthy"
		message = "FlowHR API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"registry":   registryCheck,
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	workflows, err := h.repository.GetAll(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"workflows": workflows,
		"count":     len(workflows),
	})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.repository.GetByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(wf)
}

func (h *APIHandlers) CreateWorkflow(c fiber.Ctx) error {
	var req CreateWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.repository.Create(c.Context(), req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// SaveWorkflow replaces the persisted graph of a workflow. Nodes and edges
// are stored as a unit so a half-applied save is never observable.
func (h *APIHandlers) SaveWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req SaveWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	saved, err := h.repository.Save(c.Context(), id, req.Nodes, req.Edges)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(saved)
}

func (h *APIHandlers) RenameWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req RenameWorkflowRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validate.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	renamed, err := h.repository.Rename(c.Context(), id, req.Name)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(renamed)
}

func (h *APIHandlers) DeleteWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	deleted, err := h.repository.Delete(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}

	if !deleted {
		return notFound(c, "Workflow not found")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ImportWorkflow accepts an exported workflow document and stores it under a
// fresh identity.
func (h *APIHandlers) ImportWorkflow(c fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return badRequest(c, "Request body is required")
	}

	imported, err := h.repository.Import(c.Context(), body)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(imported)
}

func (h *APIHandlers) ExportWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	data, err := h.repository.Export(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="workflow-`+id+`.json"`)

	return c.Send(data)
}

// ValidateWorkflow validates the persisted graph of a workflow.
func (h *APIHandlers) ValidateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.repository.GetByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(NewValidationResponse(h.validator.ValidateWorkflow(wf.Nodes, wf.Edges)))
}

// ValidateGraph validates an ad-hoc graph without persisting it.
func (h *APIHandlers) ValidateGraph(c fiber.Ctx) error {
	var req GraphRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return c.JSON(NewValidationResponse(h.validator.ValidateWorkflow(req.Nodes, req.Edges)))
}

// SimulateWorkflow runs the persisted graph of a workflow through the engine.
func (h *APIHandlers) SimulateWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	wf, err := h.repository.GetByID(c.Context(), id)
	if err != nil {
		if persistence.IsWorkflowNotFound(err) {
			return notFound(c, "Workflow not found")
		}

		return internalError(c, err)
	}

	return c.JSON(h.engine.Run(c.Context(), wf.Nodes, wf.Edges))
}

// SimulateGraph runs an ad-hoc graph through the engine.
func (h *APIHandlers) SimulateGraph(c fiber.Ctx) error {
	var req GraphRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	return c.JSON(h.engine.Run(c.Context(), req.Nodes, req.Edges))
}

func (h *APIHandlers) GetNodeTypes(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"node_types": h.registry.Schemas(),
	})
}

func (h *APIHandlers) GetAutomations(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"automations": h.registry.Actions(),
	})
}

func (h *APIHandlers) GetAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	action := h.registry.ActionByID(id)
	if action == nil {
		return notFound(c, "Automation not found")
	}

	return c.JSON(action)
}
