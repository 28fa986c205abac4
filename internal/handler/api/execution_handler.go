package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"tweetpilot/internal/models"
	"tweetpilot/internal/service"
)

// ExecutionHandler serves the /api/execution endpoints.
type ExecutionHandler struct {
	executions *service.ExecutionService
	logger     *zap.Logger
}

func NewExecutionHandler(executions *service.ExecutionService, logger *zap.Logger) *ExecutionHandler {
	return &ExecutionHandler{executions: executions, logger: logger}
}

// Save handles POST /api/execution.
func (h *ExecutionHandler) Save(c echo.Context) error {
	var req models.ExecutionRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, service.ErrInvalidExecution)
	}

	execution, err := h.executions.Save(userID(c), &req.Execution)
	if err != nil {
		h.logger.Error("Failed to save execution", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"execution": execution})
}

// Update handles PUT /api/execution.
func (h *ExecutionHandler) Update(c echo.Context) error {
	var req models.ExecutionRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, service.ErrInvalidExecution)
	}

	execution, err := h.executions.Update(userID(c), &req.Execution)
	if err != nil {
		h.logger.Error("Failed to update execution", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"execution": execution})
}

// Delete handles DELETE /api/execution/:id.
func (h *ExecutionHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, service.ErrInvalidExecution)
	}

	result, err := h.executions.Delete(userID(c), uint(id))
	if err != nil {
		h.logger.Error("Failed to delete execution", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"result": result})
}

// List handles GET /api/execution/all.
func (h *ExecutionHandler) List(c echo.Context) error {
	executions, err := h.executions.ListForUser(userID(c))
	if err != nil {
		h.logger.Error("Failed to list executions", zap.Error(err))
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"executions": executions})
}
