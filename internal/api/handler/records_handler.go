package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-portal/internal/core/domain"
	"github.com/medicore/hospital-portal/internal/core/ports"
)

// RecordService is the session-scoped CRUD surface of one record type.
type RecordService[T any] interface {
	List(ctx context.Context, sess *domain.Session, q ports.ListQuery) ([]T, error)
	Get(ctx context.Context, sess *domain.Session, id string) (*T, error)
	Create(ctx context.Context, sess *domain.Session, in *T) (*T, error)
	Update(ctx context.Context, sess *domain.Session, id string, in *T) (*T, error)
	Delete(ctx context.Context, sess *domain.Session, id string) error
}

// RecordHandler serves /api/{resource} for one record type.
type RecordHandler[T any] struct {
	svc RecordService[T]
}

func NewRecordHandler[T any](svc RecordService[T]) *RecordHandler[T] {
	return &RecordHandler[T]{svc: svc}
}

type listParams struct {
	Page      int    `query:"page"`
	Size      int    `query:"size"`
	Search    string `query:"search"`
	PatientID string `query:"patientId"`
	DoctorID  string `query:"doctorId"`
	Status    string `query:"status"`
}

type listResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// Register mounts the CRUD routes on g.
func (h *RecordHandler[T]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns the records visible to the session.
//
// @Summary      List records
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        resource   path   string  true   "patients, doctors, appointments, prescriptions or bills"
// @Param        page       query  int     false  "Page number"
// @Param        size       query  int     false  "Page size"
// @Param        search     query  string  false  "Free-text search"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /api/{resource} [get]
func (h *RecordHandler[T]) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var p listParams
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if p.Page < 0 || p.Size < 0 || p.Size > 200 {
		return echo.NewHTTPError(http.StatusBadRequest, "page and size must be positive, size at most 200")
	}

	items, err := h.svc.List(c.Request().Context(), sess, ports.ListQuery(p))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse[T]{Data: items, Count: len(items)})
}

// Get returns one record.
//
// @Summary      Get record
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path  string  true  "Record collection"
// @Param        id        path  string  true  "Record id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  errorResponse
// @Router       /api/{resource}/{id} [get]
func (h *RecordHandler[T]) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	item, err := h.svc.Get(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create validates and forwards a new record.
//
// @Summary      Create record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path  string  true  "Record collection"
// @Success      201  {object}  map[string]any
// @Failure      422  {object}  errorResponse
// @Router       /api/{resource} [post]
func (h *RecordHandler[T]) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	in := new(T)
	if err := c.Bind(in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	out, err := h.svc.Create(c.Request().Context(), sess, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

// Update validates and forwards a record change.
//
// @Summary      Update record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path  string  true  "Record collection"
// @Param        id        path  string  true  "Record id"
// @Success      200  {object}  map[string]any
// @Failure      422  {object}  errorResponse
// @Router       /api/{resource}/{id} [put]
func (h *RecordHandler[T]) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	in := new(T)
	if err := (&echo.DefaultBinder{}).BindBody(c, in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	out, err := h.svc.Update(c.Request().Context(), sess, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes a record.
//
// @Summary      Delete record
// @Tags         records
// @Security     BearerAuth
// @Param        resource  path  string  true  "Record collection"
// @Param        id        path  string  true  "Record id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/{resource}/{id} [delete]
func (h *RecordHandler[T]) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), sess, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
