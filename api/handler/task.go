package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kaamsetu/backend/api/transport"
	"github.com/kaamsetu/backend/domain"
	"github.com/kaamsetu/backend/pkg/httpcontext"
	"github.com/kaamsetu/backend/repository"
	taskUC "github.com/kaamsetu/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks with optional filters
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	filter := repository.TaskFilter{
		Category: string(ctx.QueryArgs().Peek("category")),
		Urgency:  string(ctx.QueryArgs().Peek("urgency")),
		Status:   string(ctx.QueryArgs().Peek("status")),
		Search:   string(ctx.QueryArgs().Peek("search")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	views, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}

// @Summary Get a task by id
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id := pathValue(ctx, "id")
	if id == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.GetTask(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Post a new task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	var location *domain.Location
	if req.Location != nil {
		location = &domain.Location{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.CreateTask(stdCtx, taskUC.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Urgency:     req.Urgency,
		Location:    location,
	}, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, view)
}

// @Summary Apply for an open task
// @Tags tasks
// @Router /api/v1/tasks/{taskId}/apply [post]
func (h *TaskHandler) ApplyForTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID := pathValue(ctx, "taskId")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.ApplicationRequest
	if body := ctx.PostBody(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	app, err := h.uc.Apply(stdCtx, taskID, userID, taskUC.ApplyInput{
		Message:        req.Message,
		ProposedBudget: req.ProposedBudget,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, app)
}

// @Summary Accept one application and reject the rest
// @Tags tasks
// @Router /api/v1/tasks/{taskId}/applications/{applicationId}/accept [put]
func (h *TaskHandler) AcceptApplication(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID := pathValue(ctx, "taskId")
	applicationID := pathValue(ctx, "applicationId")
	if taskID == "" || applicationID == "" {
		h.respondInvalid(ctx, "missing task or application id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.AcceptApplication(stdCtx, taskID, applicationID, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Mark an accepted task completed
// @Tags tasks
// @Router /api/v1/tasks/{taskId}/complete [put]
func (h *TaskHandler) CompleteTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID := pathValue(ctx, "taskId")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	view, err := h.uc.CompleteTask(stdCtx, taskID, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, view)
}

// @Summary Rate the worker of a completed task
// @Tags tasks
// @Router /api/v1/tasks/{taskId}/rating [post]
func (h *TaskHandler) RateTask(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	taskID := pathValue(ctx, "taskId")
	if taskID == "" {
		h.respondInvalid(ctx, "missing task id")
		return
	}

	var req transport.RatingRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rating, err := h.uc.RateTask(stdCtx, taskID, userID, req.Stars, req.Review)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, rating)
}

// @Summary List tasks posted by a user
// @Tags tasks
// @Router /api/v1/tasks/user/{userId} [get]
func (h *TaskHandler) ListTasksByUser(ctx *fasthttp.RequestCtx) {
	userID := pathValue(ctx, "userId")
	if userID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	views, err := h.uc.ListTasksByCreator(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}

// @Summary List tasks a worker has applied to
// @Tags tasks
// @Router /api/v1/tasks/applied/{userId} [get]
func (h *TaskHandler) ListAppliedTasks(ctx *fasthttp.RequestCtx) {
	userID := pathValue(ctx, "userId")
	if userID == "" {
		h.respondInvalid(ctx, "missing user id")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	views, err := h.uc.ListAppliedTasks(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, views)
}
