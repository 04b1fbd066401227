package handler

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
)

// respondError переводит ошибку сервиса в HTTP ответ
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return 0, false
	}
	return id, true
}

func errorList(err error) []string {
	out := []string{}
	for _, e := range flatten(err) {
		out = append(out, e.Error())
	}
	return out
}

// storageFailed reports whether err holds anything besides per-task
// validation and not found errors.
func storageFailed(err error) bool {
	for _, e := range flatten(err) {
		if !errors.Is(e, model.ErrValidation) && !errors.Is(e, model.ErrNotFound) {
			return true
		}
	}
	return false
}

func flatten(err error) []error {
	if err == nil {
		return nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return merr.Errors
	}
	return []error{err}
}
