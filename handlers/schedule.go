package handlers

import (
	"errors"
	"net/http"

	"skischool/models"
	"skischool/services/schedule"
	"skischool/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(service schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: service}
}

// respondError maps engine errors onto HTTP statuses.
func respondError(c *gin.Context, message string, err error) {
	var (
		malformed *schedule.MalformedTimeError
		missing   *schedule.MissingDataError
		conflict  *schedule.ConflictError
	)
	switch {
	case errors.As(err, &conflict):
		getLogger(c).Info(message, zap.Int("conflicts", len(conflict.Conflicts)))
		c.JSON(http.StatusConflict, gin.H{"error": message, "message": err.Error(), "conflicts": conflict.Conflicts})
	case errors.Is(err, schedule.ErrLockHeld):
		utils.JSONError(c, http.StatusConflict, message, err.Error())
	case errors.As(err, &malformed),
		errors.Is(err, schedule.ErrInvalidInterval),
		errors.Is(err, schedule.ErrIncompleteRow),
		errors.Is(err, schedule.ErrDateOutsideBlock),
		errors.Is(err, schedule.ErrUnknownRole),
		errors.Is(err, schedule.ErrUnsupportedKind):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	case errors.As(err, &missing), errors.Is(err, mongo.ErrNoDocuments):
		utils.JSONError(c, http.StatusNotFound, message, err.Error())
	default:
		getLogger(c).Error(message, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "message": err.Error()})
	}
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

func (h *ScheduleHandler) CheckAvailabilityHandler(c *gin.Context) {
	var req models.AvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to check availability", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ScheduleHandler) SearchSlotHandler(c *gin.Context) {
	var req models.SlotSearchRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Service.SearchSlot(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to search slot", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ScheduleHandler) EligibleMonitorsHandler(c *gin.Context) {
	var req models.EligibleMonitorsRequest
	if !bindJSON(c, &req) {
		return
	}

	monitors, err := h.Service.EligibleMonitors(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to list eligible monitors", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monitors": monitors, "count": len(monitors)})
}

func (h *ScheduleHandler) AssignMonitorHandler(c *gin.Context) {
	var req models.AssignRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Service.AssignMonitor(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to assign monitor", err)
		return
	}
	getLogger(c).Info("monitor assigned",
		zap.String("monitorID", req.MonitorID),
		zap.String("kind", string(req.Target.Kind)),
		zap.String("ownerID", req.Target.OwnerID),
		zap.Int("unassigned", len(res.Unassigned)))
	c.JSON(http.StatusOK, res)
}

func (h *ScheduleHandler) CheckAssignmentHandler(c *gin.Context) {
	var req models.AssignRequest
	if !bindJSON(c, &req) {
		return
	}

	conflicts, err := h.Service.CheckAssignment(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to check assignment", err)
		return
	}
	if conflicts == nil {
		conflicts = []schedule.CascadeConflict{}
	}
	c.JSON(http.StatusOK, gin.H{"available": len(conflicts) == 0, "conflicts": conflicts})
}

func (h *ScheduleHandler) DrillNwdHandler(c *gin.Context) {
	blockID := c.Param("id")
	if blockID == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing nwd block ID in path", "")
		return
	}
	var req models.DrillRequest
	if !bindJSON(c, &req) {
		return
	}

	blocks, err := h.Service.DrillNwd(c.Request.Context(), blockID, req)
	if err != nil {
		respondError(c, "Failed to drill nwd block", err)
		return
	}
	if blocks == nil {
		blocks = []models.NwdBlock{}
	}
	c.JSON(http.StatusOK, gin.H{"replacedId": blockID, "blocks": blocks})
}

func (h *ScheduleHandler) RevalidateHandler(c *gin.Context) {
	var req models.RevalidatePayload
	if !bindJSON(c, &req) {
		return
	}

	taskID, err := h.Service.EnqueueRevalidate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to enqueue revalidation", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"taskId": taskID})
}
