package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"dailymeet_backend/internal/model"
	"dailymeet_backend/pkg/database"
	"dailymeet_backend/pkg/events"
	"dailymeet_backend/pkg/meeting"
)

var (
	calendarProvider      meeting.EventProvider
	defaultMeetingOptions meeting.Options
)

func InitMeetingController(provider meeting.EventProvider, opts meeting.Options) {
	calendarProvider = provider
	defaultMeetingOptions = opts
}

type CreateMeetingInput struct {
	Date        string `json:"date" validate:"required"`
	Platform    string `json:"platform" validate:"omitempty,oneof=google-meet zoom"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserIDs     []uint `json:"user_ids"`
	UseCalendar bool   `json:"use_calendar"`
}

type SyncMeetingsInput struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

// GetMeetings verilen günün (varsayılan bugün) toplantılarını döner.
func GetMeetings(c *fiber.Ctx) error {
	day := startOfToday()
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse(dateFormat, q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "Validation failed",
				"fields": map[string]string{"date": "must be formatted as YYYY-MM-DD"},
			})
		}
		day = parsed
	}

	var meetings []model.Meeting
	if err := database.GetDB().
		Preload("Users").
		Where("date = ?", datatypes.Date(day)).
		Find(&meetings).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch meetings",
		})
	}

	return c.JSON(fiber.Map{
		"meetings": meetings,
		"count":    len(meetings),
	})
}

// CreateMeeting gün için toplantıyı bulur ya da oluşturur; istenen
// kullanıcıları ekler.
func CreateMeeting(c *fiber.Ctx) error {
	input := new(CreateMeetingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fieldErrors(err),
		})
	}

	day, err := time.Parse(dateFormat, input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"date": "must be formatted as YYYY-MM-DD"},
		})
	}

	opts := defaultMeetingOptions
	opts.CreatedBy = model.CreatedByAdmin
	opts.UserIDs = input.UserIDs
	opts.UseCalendar = input.UseCalendar
	if input.Platform != "" {
		opts.Platform = input.Platform
	}
	if input.Title != "" {
		opts.Title = input.Title
	}
	if input.Description != "" {
		opts.Description = input.Description
	}

	m, created, err := meeting.GetOrCreate(c.Context(), database.GetDB(), calendarProvider, day, opts)
	if err != nil {
		switch {
		case errors.Is(err, meeting.ErrProvider):
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Calendar provider error",
			})
		case errors.Is(err, meeting.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Could not create meeting",
			})
		}
	}

	if created {
		events.Publish(events.MeetingCreated, map[string]interface{}{
			"meeting_id": m.ID,
			"date":       input.Date,
		})
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"meeting": m,
		"created": created,
	})
}

// AttachUserToMeeting kullanıcıyı toplantıya ekler; tekrar eklemek no-op'tur.
func AttachUserToMeeting(c *fiber.Ctx) error {
	meetingID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid meeting ID",
		})
	}
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if err := meeting.AttachUser(database.GetDB(), uint(meetingID), uint(userID)); err != nil {
		if errors.Is(err, meeting.ErrMeetingNotFound) || errors.Is(err, meeting.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not attach user",
		})
	}

	events.Publish(events.UserAttached, map[string]interface{}{
		"meeting_id": meetingID,
		"user_id":    userID,
	})

	return c.JSON(fiber.Map{
		"message": "User attached to meeting",
	})
}

// SyncMeetings aralıktaki her günü takvim sağlayıcısıyla eşitler.
// Gün başına hatalar toplanır, kısmi başarı sonuçla birlikte döner.
func SyncMeetings(c *fiber.Ctx) error {
	if calendarProvider == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Calendar provider is not configured",
		})
	}

	input := new(SyncMeetingsInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fieldErrors(err),
		})
	}

	start, err := time.Parse(dateFormat, input.Start)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"start": "must be formatted as YYYY-MM-DD"},
		})
	}
	end, err := time.Parse(dateFormat, input.End)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": map[string]string{"end": "must be formatted as YYYY-MM-DD"},
		})
	}

	res, err := meeting.SyncRange(c.Context(), database.GetDB(), calendarProvider, start, end, defaultMeetingOptions)
	if err != nil {
		if errors.Is(err, meeting.ErrRangeTooLarge) || errors.Is(err, meeting.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Sync failed",
		})
	}

	events.Publish(events.MeetingSynced, map[string]interface{}{
		"processed": res.Processed,
		"created":   res.Created,
		"deleted":   res.Deleted,
	})

	return c.JSON(res)
}
