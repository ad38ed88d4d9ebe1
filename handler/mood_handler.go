package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"mindwell/analysis"
	"mindwell/dto"
	"mindwell/middleware"
	"mindwell/model"
	"mindwell/usecase"
	"mindwell/utils"
)

// listOptions reads date_filter, mood, search, is_auto_detected and limit.
func listOptions(c *gin.Context) (usecase.ListOptions, error) {
	window, err := analysis.ParseDateWindow(c.Query("date_filter"))
	if err != nil {
		return usecase.ListOptions{}, err
	}

	opts := usecase.ListOptions{
		Filter: analysis.Filter{
			Mood:   strings.ToLower(strings.TrimSpace(c.Query("mood"))),
			Window: window,
			Search: strings.TrimSpace(c.Query("search")),
		},
	}
	if raw := c.Query("is_auto_detected"); raw != "" {
		auto, err := strconv.ParseBool(raw)
		if err != nil {
			return usecase.ListOptions{}, err
		}
		opts.AutoDetected = &auto
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return usecase.ListOptions{}, fmt.Errorf("limit must be a positive integer, got %q", raw)
		}
		opts.Limit = limit
	}
	return opts, nil
}

func entryID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.NotFound(c, "Not found")
		return 0, false
	}
	return id, true
}

// GetMoodVocabularyHandler lists the moods an entry may use.
func GetMoodVocabularyHandler(c *gin.Context) {
	utils.Success(c, model.Moods())
}

func GetMoodEntriesHandler(c *gin.Context, moodService *usecase.MoodService) {
	opts, err := listOptions(c)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	entries, err := moodService.List(c.Request.Context(), middleware.UserID(c), opts)
	if err != nil {
		respondError(c, err, "Failed to fetch mood entries")
		return
	}
	utils.Success(c, entries)
}

func CreateMoodEntryHandler(c *gin.Context, moodService *usecase.MoodService) {
	var draft dto.MoodEntryDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.BadRequest(c, bindingMessage(err))
		return
	}

	entry, err := moodService.Create(c.Request.Context(), middleware.UserID(c), draft)
	if err != nil {
		respondError(c, err, "Failed to create mood entry")
		return
	}
	utils.Created(c, entry)
}

func GetMoodEntryHandler(c *gin.Context, moodService *usecase.MoodService) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	entry, err := moodService.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "Failed to fetch mood entry")
		return
	}
	utils.Success(c, entry)
}

func UpdateMoodEntryHandler(c *gin.Context, moodService *usecase.MoodService) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	var patch dto.MoodEntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, bindingMessage(err))
		return
	}

	entry, err := moodService.Update(c.Request.Context(), middleware.UserID(c), id, patch)
	if err != nil {
		respondError(c, err, "Failed to update mood entry")
		return
	}
	utils.Success(c, entry)
}

func DeleteMoodEntryHandler(c *gin.Context, moodService *usecase.MoodService) {
	id, ok := entryID(c)
	if !ok {
		return
	}

	if err := moodService.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "Failed to delete mood entry")
		return
	}
	utils.NoContent(c)
}
