package assessment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mindscreen/mindscreen/internal/platform/auth"
	"github.com/mindscreen/mindscreen/pkg/pagination"
)

// Handler serves the assessment catalog, scoring and stored results.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Catalog and stateless scoring, open to any authenticated caller
	api.GET("/assessments", h.ListInstruments)
	api.GET("/assessments/:id", h.GetInstrument)
	api.GET("/assessments/:id/questions/:index", h.GetQuestion)
	api.POST("/assessments/:id/score", h.Score)
	api.POST("/assessments/suggest", h.Suggest)

	// Stored results
	api.POST("/assessment-results", h.Submit, auth.RequireRole(auth.RolePatient))
	api.GET("/assessment-results/:id", h.GetResult, auth.RequireRole(auth.RolePatient, auth.RoleDoctor))
	api.GET("/assessment-results", h.ListResults, auth.RequireRole(auth.RoleDoctor))
}

// -- Catalog Handlers --

func (h *Handler) ListInstruments(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListInstruments())
}

func (h *Handler) GetInstrument(c echo.Context) error {
	inst, err := h.svc.GetInstrument(c.Param("id"))
	if err != nil {
		return scoringError(err)
	}
	return c.JSON(http.StatusOK, inst)
}

func (h *Handler) GetQuestion(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid question index")
	}
	q, err := h.svc.Question(c.Param("id"), index)
	if err != nil {
		return scoringError(err)
	}
	return c.JSON(http.StatusOK, q)
}

type suggestRequest struct {
	Diagnoses []string `json:"diagnoses"`
}

func (h *Handler) Suggest(c echo.Context) error {
	var req suggestRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	ids := h.svc.SuggestInstruments(req.Diagnoses)
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"assessments": ids})
}

// -- Scoring Handlers --

type scoreRequest struct {
	Responses []int `json:"responses"`
}

type scoreResponse struct {
	*ScoreResult
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

func (h *Handler) Score(c echo.Context) error {
	var req scoreRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}
	res, err := h.svc.Score(c.Param("id"), req.Responses)
	if err != nil {
		return scoringError(err)
	}
	return c.JSON(http.StatusOK, scoreResponse{ScoreResult: res, Recommendations: Recommendations(res)})
}

type submitResponse struct {
	*AssessmentResult
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

func (h *Handler) Submit(c echo.Context) error {
	var sub Submission
	if err := c.Bind(&sub); err != nil {
		return bindError(err)
	}

	ctx := c.Request().Context()
	if onlyPatient(auth.RolesFromContext(ctx)) {
		caller, err := uuid.Parse(auth.UserIDFromContext(ctx))
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "patient identity is not a valid id")
		}
		if sub.PatientID == uuid.Nil {
			sub.PatientID = caller
		}
		if sub.PatientID != caller {
			return echo.NewHTTPError(http.StatusForbidden, "patients may only submit their own assessments")
		}
	}

	stored, err := h.svc.Submit(ctx, &sub)
	if err != nil {
		return scoringError(err)
	}
	return c.JSON(http.StatusCreated, submitResponse{AssessmentResult: stored, Recommendations: Recommendations(stored.Result)})
}

func (h *Handler) GetResult(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ctx := c.Request().Context()
	r, err := h.svc.GetResult(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResultNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "assessment result not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if onlyPatient(auth.RolesFromContext(ctx)) && r.PatientID.String() != auth.UserIDFromContext(ctx) {
		return echo.NewHTTPError(http.StatusNotFound, "assessment result not found")
	}
	return c.JSON(http.StatusOK, r)
}

func (h *Handler) ListResults(c echo.Context) error {
	pg := pagination.FromContext(c)
	ctx := c.Request().Context()
	if patientID := c.QueryParam("patient_id"); patientID != "" {
		pid, err := uuid.Parse(patientID)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		items, total, err := h.svc.ListResultsByPatient(ctx, pid, pg.Limit, pg.Offset)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL))
	}

	params := map[string]string{}
	if a := c.QueryParam("assessment_id"); a != "" {
		params["assessment"] = a
	}
	if s := c.QueryParam("session_id"); s != "" {
		params["session"] = s
	}
	items, total, err := h.svc.SearchResults(ctx, params, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset).WithLinks(c.Request().URL))
}

// bindError reports a malformed body as 400 but keeps an oversized body's 413.
func bindError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if he, ok := e.(*echo.HTTPError); ok && he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

// scoringError maps domain errors onto HTTP statuses.
func scoringError(err error) error {
	var countErr *ResponseCountError
	switch {
	case errors.Is(err, ErrInstrumentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &countErr):
		return echo.NewHTTPError(http.StatusBadRequest, map[string]interface{}{
			"message":       countErr.Error(),
			"assessment_id": countErr.AssessmentID,
			"expected":      countErr.Expected,
			"got":           countErr.Got,
		})
	case errors.Is(err, ErrInvalidResponses), errors.Is(err, ErrInvalidSubmission):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func onlyPatient(roles []string) bool {
	patient := false
	for _, r := range roles {
		switch r {
		case auth.RoleDoctor, auth.RoleAdmin:
			return false
		case auth.RolePatient:
			patient = true
		}
	}
	return patient
}
