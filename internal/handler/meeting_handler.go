package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stratforsr-sys/bokningsstatistik/internal/domain"
	"github.com/stratforsr-sys/bokningsstatistik/internal/service"
)

// MeetingHandler handles meeting endpoints.
type MeetingHandler struct {
	meetingService service.MeetingService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(meetingService service.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

// Create handles POST /api/v1/meetings
func (h *MeetingHandler) Create(c *gin.Context) {
	var input service.CreateMeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	meeting, err := h.meetingService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, meeting)
}

// List handles GET /api/v1/meetings
func (h *MeetingHandler) List(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}

	input := service.ListMeetingsInput{
		Query: c.Query("q"),
	}
	input.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	input.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	if statusParam := c.Query("status"); statusParam != "" {
		status := domain.MeetingStatus(statusParam)
		if !domain.IsValidMeetingStatus(status) {
			RespondError(c, http.StatusBadRequest, "INVALID_STATUS", "invalid meeting status")
			return
		}
		input.Status = &status
	}
	start, valid := parseTimeQuery(c, "start_date")
	if !valid {
		return
	}
	input.StartDate = start
	end, valid := parseTimeQuery(c, "end_date")
	if !valid {
		return
	}
	input.EndDate = end

	requester := service.Requester{ID: userID, Role: role}
	meetings, total, err := h.meetingService.List(c.Request.Context(), requester, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, meetings, PagMeta{Total: total, Offset: input.Offset, Limit: input.Limit})
}

// GetByID handles GET /api/v1/meetings/:id
func (h *MeetingHandler) GetByID(c *gin.Context) {
	userID, role, ok := extractAuthContext(c)
	if !ok {
		return
	}
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid meeting id")
		return
	}

	requester := service.Requester{ID: userID, Role: role}
	meeting, err := h.meetingService.GetByID(c.Request.Context(), requester, meetingID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, meeting)
}

// Update handles PUT /api/v1/meetings/:id
func (h *MeetingHandler) Update(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid meeting id")
		return
	}

	var input service.UpdateMeetingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	meeting, err := h.meetingService.Update(c.Request.Context(), meetingID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, meeting)
}

// participantsPayload is the body for the participant replacement endpoint.
type participantsPayload struct {
	Bookers []service.ParticipantInput `json:"bookers"`
	Sellers []service.ParticipantInput `json:"sellers"`
}

// ReplaceParticipants handles PUT /api/v1/meetings/:id/participants
func (h *MeetingHandler) ReplaceParticipants(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid meeting id")
		return
	}

	var payload participantsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	meeting, err := h.meetingService.ReplaceParticipants(c.Request.Context(), meetingID, payload.Bookers, payload.Sellers)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, meeting)
}

// UpdateStatus handles PATCH /api/v1/meetings/:id/status
func (h *MeetingHandler) UpdateStatus(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid meeting id")
		return
	}

	var input service.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	meeting, err := h.meetingService.UpdateStatus(c.Request.Context(), meetingID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, meeting)
}

// Delete handles DELETE /api/v1/meetings/:id
func (h *MeetingHandler) Delete(c *gin.Context) {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid meeting id")
		return
	}

	hardDelete := c.Query("hard") == "true"
	if err := h.meetingService.Delete(c.Request.Context(), meetingID, hardDelete); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// parseTimeQuery parses an optional RFC 3339 or date-only query parameter.
// On malformed input it writes the error response and reports !ok.
func parseTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	RespondError(c, http.StatusBadRequest, "INVALID_DATE", "invalid "+name+"; use RFC 3339 or YYYY-MM-DD")
	return nil, false
}
