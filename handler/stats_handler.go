package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mindwell/analysis"
	"mindwell/middleware"
	"mindwell/usecase"
	"mindwell/utils"
)

type StatsHandler struct {
	moodService         *usecase.MoodService
	notificationService *usecase.NotificationService
}

func NewStatsHandler(moodService *usecase.MoodService, notificationService *usecase.NotificationService) *StatsHandler {
	return &StatsHandler{
		moodService:         moodService,
		notificationService: notificationService,
	}
}

// GetMoodStats aggregates the caller's entries inside date_filter and adds the
// unread notification count.
func (h *StatsHandler) GetMoodStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	window, err := analysis.ParseDateWindow(c.Query("date_filter"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	stats, err := h.moodService.Stats(ctx, userID, window)
	if err != nil {
		respondError(c, err, "Failed to compute mood stats")
		return
	}

	if h.notificationService != nil {
		unread, err := h.notificationService.UnreadCount(ctx, userID)
		if err != nil {
			middleware.Logger(c).WithError(err).Warn("failed to count unread notifications")
		}
		stats.UnreadCount = unread
	}
	utils.Success(c, stats)
}

// GetCalendar returns the month grid for ?year=&month= (default: current
// month). An optional tz names the IANA zone used to bucket days.
func (h *StatsHandler) GetCalendar(c *gin.Context) {
	loc := time.UTC
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			utils.BadRequest(c, "Unknown time zone")
			return
		}
		loc = l
	}

	now := time.Now().In(loc)
	year, month := now.Year(), int(now.Month())
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil || y < 1 {
			utils.BadRequest(c, "Invalid year")
			return
		}
		year = y
	}
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil || m < 1 || m > 12 {
			utils.BadRequest(c, "Invalid month")
			return
		}
		month = m
	}

	calendar, err := h.moodService.Calendar(c.Request.Context(), middleware.UserID(c), year, time.Month(month), loc)
	if err != nil {
		respondError(c, err, "Failed to build calendar")
		return
	}
	utils.Success(c, calendar)
}
