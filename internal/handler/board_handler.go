package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taskboard/internal/board"
	"taskboard/internal/codec"
	"taskboard/internal/model"
	"taskboard/internal/notify"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardHandler struct {
	svc    *service.BoardService
	center *notify.Center
	now    func() time.Time
}

func NewBoardHandler(svc *service.BoardService, center *notify.Center) *BoardHandler {
	return &BoardHandler{svc: svc, center: center, now: time.Now}
}

// Get возвращает доску с учетом фильтров
// @Summary      Get board
// @Tags         Board
// @Produce      json
// @Param        search    query     string  false  "Text in title or description"
// @Param        priority  query     string  false  "low, medium or high"
// @Param        category  query     string  false  "Category"
// @Success      200       {object}  model.BoardView
// @Failure      400       {object}  map[string]string
// @Router       /board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	filter := board.Filter{
		Search:   c.Query("search"),
		Priority: model.Priority(c.Query("priority")),
		Category: c.Query("category"),
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid priority"})
		return
	}

	c.JSON(http.StatusOK, h.svc.View(filter))
}

// Undo отменяет последнее действие
// @Summary      Undo
// @Tags         History
// @Produce      json
// @Success      200  {object}  model.BoardView
// @Failure      409  {object}  map[string]string
// @Router       /history/undo [post]
func (h *BoardHandler) Undo(c *gin.Context) {
	h.step(c, h.svc.Undo, "Nothing to undo")
}

// Redo повторяет отмененное действие
// @Summary      Redo
// @Tags         History
// @Produce      json
// @Success      200  {object}  model.BoardView
// @Failure      409  {object}  map[string]string
// @Router       /history/redo [post]
func (h *BoardHandler) Redo(c *gin.Context) {
	h.step(c, h.svc.Redo, "Nothing to redo")
}

func (h *BoardHandler) step(c *gin.Context, fn func(ctx context.Context) (bool, error), empty string) {
	ok, err := fn(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": empty})
		return
	}

	c.JSON(http.StatusOK, h.svc.View(board.Filter{}))
}

// Stats возвращает сводку по доске
// @Summary      Board statistics
// @Tags         Board
// @Produce      json
// @Success      200  {object}  model.Stats
// @Router       /stats [get]
func (h *BoardHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Stats())
}

// Export отдает доску файлом
// @Summary      Export board
// @Tags         Board
// @Produce      json
// @Success      200  {object}  model.Export
// @Router       /export [get]
func (h *BoardHandler) Export(c *gin.Context) {
	exp := h.svc.Export()
	data, err := codec.EncodeExport(exp)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, codec.ExportFilename(exp.Exported)))
	c.Data(http.StatusOK, "application/json", data)
}

// Notifications возвращает активные уведомления
// @Summary      Notifications
// @Tags         Board
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /notifications [get]
func (h *BoardHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"banners": h.center.Active(h.now()),
		"natives": h.center.Natives(),
	})
}
