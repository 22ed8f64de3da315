package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"academic_records/internal/middleware"
	"academic_records/internal/models"
	"academic_records/internal/policy"
	"academic_records/internal/service"
)

type profileService[T any] interface {
	List(ctx context.Context, caller policy.Caller) (*service.Listing[T], error)
	Get(ctx context.Context, caller policy.Caller, id uint) (*T, error)
	Create(ctx context.Context, caller policy.Caller, payload map[string]interface{}) (*T, error)
	Update(ctx context.Context, caller policy.Caller, id uint, payload map[string]interface{}) (*T, error)
	Delete(ctx context.Context, caller policy.Caller, id uint) error
}

// ProfileHandler serves the CRUD routes of one profile kind
type ProfileHandler[T any] struct {
	service profileService[T]
	logger  *slog.Logger
}

func NewStudentHandler(s *service.StudentService, logger *slog.Logger) *ProfileHandler[models.Student] {
	return &ProfileHandler[models.Student]{service: s, logger: logger}
}

func NewTeacherHandler(s *service.TeacherService, logger *slog.Logger) *ProfileHandler[models.Teacher] {
	return &ProfileHandler[models.Teacher]{service: s, logger: logger}
}

// List answers with every record, or with the caller's own record (null if none)
func (h *ProfileHandler[T]) List(c *gin.Context) {
	listing, err := h.service.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if listing.Scope == policy.AllowAll {
		c.JSON(http.StatusOK, listing.All)
		return
	}
	c.JSON(http.StatusOK, listing.Own)
}

func (h *ProfileHandler[T]) Get(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	record, err := h.service.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ProfileHandler[T]) Create(c *gin.Context) {
	// a malformed body is reported by the service once the caller is authorized
	payload, _ := bindPayload(c)

	record, err := h.service.Create(c.Request.Context(), middleware.CallerFrom(c), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *ProfileHandler[T]) Update(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	payload, _ := bindPayload(c)

	record, err := h.service.Update(c.Request.Context(), middleware.CallerFrom(c), id, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ProfileHandler[T]) Delete(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
