package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eabrosimov/fstr-pereval-api/internal/model"
	"github.com/eabrosimov/fstr-pereval-api/internal/service"
)

// SubmitDataHandler exposes the pass submission endpoints.  The
// handlers are thin: bind the payload, run the schema-validation step
// and hand the pre-validated request to the submission workflow, which
// returns a structured result for every business outcome.
type SubmitDataHandler struct {
	Svc *service.Submission
}

// NewSubmitDataHandler constructs the handler.  The service must be
// non-nil.
func NewSubmitDataHandler(svc *service.Submission) *SubmitDataHandler {
	if svc == nil {
		panic("nil service passed to NewSubmitDataHandler")
	}
	return &SubmitDataHandler{Svc: svc}
}

// Submit handles POST /SubmitData.  The response body always carries
// {status, message, id}; the HTTP code mirrors the body status.
func (h *SubmitDataHandler) Submit(c echo.Context) error {
	var req model.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": 400, "message": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": 400, "message": err.Error()})
	}
	res := h.Svc.Submit(c.Request().Context(), req)
	return c.JSON(res.Status, res)
}

// GetByID handles GET /SubmitData?pereval_id=<id>.  It returns the
// assembled view, or a body-level 204 result when the pass does not
// exist (the original wire contract reports "not found" in the body,
// not via an empty HTTP 204 response).
func (h *SubmitDataHandler) GetByID(c echo.Context) error {
	perevalID, err := strconv.ParseInt(c.QueryParam("pereval_id"), 10, 64)
	if err != nil || perevalID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": 400, "message": "invalid pereval_id"})
	}
	view, err := h.Svc.GetByID(c.Request().Context(), perevalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusOK, echo.Map{"status": 204, "message": "data not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": 500, "message": "failed to load pass data"})
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PATCH /SubmitData?pereval_id=<id>.  All business
// outcomes (updated, not found, reviewed, foreign user) come back as
// {state, message} with HTTP 200; only malformed input yields 400.
func (h *SubmitDataHandler) Update(c echo.Context) error {
	perevalID, err := strconv.ParseInt(c.QueryParam("pereval_id"), 10, 64)
	if err != nil || perevalID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"state": 0, "message": "invalid pereval_id"})
	}
	var req model.SubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"state": 0, "message": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"state": 0, "message": err.Error()})
	}
	res := h.Svc.Update(c.Request().Context(), perevalID, req)
	return c.JSON(http.StatusOK, res)
}

// ListByEmail handles GET /SubmitData/:user_email.  It returns every
// pass submitted under the email, or a body-level 204 result when
// there are none.
func (h *SubmitDataHandler) ListByEmail(c echo.Context) error {
	email := c.Param("user_email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": 400, "message": "user_email is required"})
	}
	views, err := h.Svc.ListByEmail(c.Request().Context(), email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": 500, "message": "failed to load pass data"})
	}
	if len(views) == 0 {
		return c.JSON(http.StatusOK, echo.Map{"status": 204, "message": "data not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"perevals": views})
}
