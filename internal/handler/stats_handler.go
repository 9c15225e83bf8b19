package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/export"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
)

// StatsHandler handles the statistics endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Overview handles GET /api/v1/stats/overview
func (h *StatsHandler) Overview(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	target, ok := parseTargetUser(c)
	if !ok {
		return
	}

	requester := service.Requester{ID: userID, Role: role}
	overview, err := h.statsService.Overview(c.Request.Context(), requester, target)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, overview)
}

// Summary handles GET /api/v1/stats/summary
func (h *StatsHandler) Summary(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	target, ok := parseTargetUser(c)
	if !ok {
		return
	}
	start, ok := parseTimeQuery(c, "start_date")
	if !ok {
		return
	}
	end, ok := parseTimeQuery(c, "end_date")
	if !ok {
		return
	}

	period := domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodMonth)))
	requester := service.Requester{ID: userID, Role: role}
	summary, err := h.statsService.Summary(c.Request.Context(), requester, period, target, start, end)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// TeamSummary handles GET /api/v1/stats/team
func (h *StatsHandler) TeamSummary(c *gin.Context) {
	period := domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodMonth)))

	summary, err := h.statsService.TeamSummary(c.Request.Context(), period)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// ByPerson handles GET /api/v1/stats/by-person
func (h *StatsHandler) ByPerson(c *gin.Context) {
	persons, ok := h.byPerson(c)
	if !ok {
		return
	}
	RespondOK(c, persons)
}

// ExportByPerson handles GET /api/v1/stats/by-person/export
func (h *StatsHandler) ExportByPerson(c *gin.Context) {
	persons, ok := h.byPerson(c)
	if !ok {
		return
	}

	workbook, err := export.PersonStatsWorkbook(persons)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := "statistik-per-person-" + time.Now().UTC().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

func (h *StatsHandler) byPerson(c *gin.Context) ([]domain.PersonStats, bool) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return nil, false
	}
	start, ok := parseTimeQuery(c, "start_date")
	if !ok {
		return nil, false
	}
	end, ok := parseTimeQuery(c, "end_date")
	if !ok {
		return nil, false
	}

	input := service.ByPersonInput{
		Period:      domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodMonth))),
		RoleFilter:  domain.ParticipantRole(c.DefaultQuery("role", string(domain.RoleBoth))),
		CustomStart: start,
		CustomEnd:   end,
	}
	input.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	input.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	requester := service.Requester{ID: userID, Role: role}
	persons, err := h.statsService.ByPerson(c.Request.Context(), requester, input)
	if err != nil {
		HandleError(c, err)
		return nil, false
	}
	return persons, true
}

// Detailed handles GET /api/v1/stats/detailed
func (h *StatsHandler) Detailed(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	period := domain.StatsPeriod(c.DefaultQuery("period", string(domain.PeriodMonth)))
	requester := service.Requester{ID: userID, Role: role}
	detailed, err := h.statsService.Detailed(c.Request.Context(), requester, period)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detailed)
}

// Trends handles GET /api/v1/stats/trends
func (h *StatsHandler) Trends(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	target, ok := parseTargetUser(c)
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_DAYS", "days must be an integer")
		return
	}

	requester := service.Requester{ID: userID, Role: role}
	trends, err := h.statsService.Trends(c.Request.Context(), requester, days, target)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, trends)
}

// Comparison handles GET /api/v1/stats/comparison
func (h *StatsHandler) Comparison(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	requester := service.Requester{ID: userID, Role: role}
	comparison, err := h.statsService.Comparison(c.Request.Context(), requester)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comparison)
}

// parseTargetUser parses the optional user_id query parameter. On malformed
// input it writes the error response and reports !ok.
func parseTargetUser(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return nil, true
	}
	target, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid user_id")
		return nil, false
	}
	return &target, true
}
