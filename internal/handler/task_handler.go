package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.BoardService
}

func NewTaskHandler(svc *service.BoardService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// TaskRequest представляет запрос на создание задачи
type TaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate" binding:"omitempty,datetime=2006-01-02"`
	Description string `json:"description"`
}

// TaskUpdateRequest представляет запрос на обновление задачи
type TaskUpdateRequest struct {
	Title       *string `json:"title"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	DueDate     *string `json:"dueDate"`
	Description *string `json:"description"`
	Progress    *int    `json:"progress"`
}

// TaskMoveRequest представляет запрос на перемещение задачи
type TaskMoveRequest struct {
	Column   string `json:"column" binding:"required"`
	Position *int   `json:"position"`
}

// BulkMoveRequest представляет запрос на перемещение нескольких задач
type BulkMoveRequest struct {
	IDs    []int  `json:"ids" binding:"required,min=1"`
	Column string `json:"column" binding:"required"`
}

type BulkDeleteRequest struct {
	IDs []int `json:"ids" binding:"required,min=1"`
}

// Create создает новую задачу в колонке todo
// @Summary      Create task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task  body      TaskRequest  true  "Task"
// @Success      201   {object}  model.Task
// @Failure      400   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.svc.AddTask(c.Request.Context(), model.NewTask{
		Title:       req.Title,
		Priority:    model.Priority(req.Priority),
		Category:    req.Category,
		DueDate:     req.DueDate,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetByID возвращает задачу по ID
// @Summary      Get task
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  model.Task
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	task, err := h.svc.GetTask(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update обновляет поля задачи
// @Summary      Update task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task ID"
// @Param        task  body      TaskUpdateRequest  true  "Fields to change"
// @Success      200   {object}  model.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := model.TaskPatch{
		Title:       req.Title,
		Category:    req.Category,
		DueDate:     req.DueDate,
		Description: req.Description,
		Progress:    req.Progress,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		patch.Priority = &p
	}

	task, err := h.svc.EditTask(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete удаляет задачу
// @Summary      Delete task
// @Tags         Tasks
// @Param        id   path  int  true  "Task ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// MoveTask перемещает задачу в другую колонку или на другую позицию
// @Summary      Move task
// @Tags         Tasks
// @Accept       json
// @Param        id    path  int              true  "Task ID"
// @Param        move  body  TaskMoveRequest  true  "Target column and position"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks/{id}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	column, ok := model.ParseColumn(req.Column)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column"})
		return
	}

	if err := h.svc.MoveTask(c.Request.Context(), id, column, req.Position); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task moved successfully"})
}

// BulkMove перемещает выбранные задачи в конец колонки
// @Summary      Move several tasks
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        move  body      BulkMoveRequest  true  "Task IDs and target column"
// @Success      200   {object}  map[string]interface{}
// @Router       /tasks/bulk/move [post]
func (h *TaskHandler) BulkMove(c *gin.Context) {
	var req BulkMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	column, ok := model.ParseColumn(req.Column)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column"})
		return
	}

	moved, err := h.svc.BulkMove(c.Request.Context(), req.IDs, column)
	if storageFailed(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if moved == 0 && err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"moved": moved, "errors": errorList(err)})
}

// BulkDelete удаляет выбранные задачи
// @Summary      Delete several tasks
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        ids  body      BulkDeleteRequest  true  "Task IDs"
// @Success      200  {object}  map[string]interface{}
// @Router       /tasks/bulk/delete [post]
func (h *TaskHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	deleted, err := h.svc.BulkDelete(c.Request.Context(), req.IDs)
	if storageFailed(err) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if deleted == 0 && err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "errors": errorList(err)})
}

// ToggleTimer запускает или останавливает таймер задачи
// @Summary      Toggle task timer
// @Tags         Tasks
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id}/timer [post]
func (h *TaskHandler) ToggleTimer(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}

	running, err := h.svc.ToggleTimer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "running": running})
}
