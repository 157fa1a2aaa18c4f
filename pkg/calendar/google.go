package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"dailymeet_backend/pkg/meeting"
)

// Client Google Calendar üzerinden toplantı etkinliklerini okur/yazar.
// meeting.EventProvider arayüzünü uygular.
type Client struct {
	svc        *gcal.Service
	calendarID string
}

func NewClient(ctx context.Context, credentialsFile, calendarID string) (*Client, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create calendar service: %v", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &Client{svc: svc, calendarID: calendarID}, nil
}

// ListEvents verilen takvim günündeki, anahtar kelimeyle eşleşen
// etkinlikleri başlangıç saatine göre sıralı döner.
func (c *Client) ListEvents(ctx context.Context, day time.Time, keyword string) ([]meeting.Event, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	call := c.svc.Events.List(c.calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)
	if keyword != "" {
		call = call.Q(keyword)
	}

	res, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("event search failed: %v", err)
	}

	events := make([]meeting.Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev := meeting.Event{
			ID:          item.Id,
			Title:       item.Summary,
			Description: item.Description,
			Link:        joinLink(item),
			Start:       parseEventTime(item.Start, dayStart),
			End:         parseEventTime(item.End, dayEnd),
		}
		events = append(events, ev)
	}
	return events, nil
}

// CreateEvent Meet linki ile yeni bir takvim etkinliği oluşturur.
func (c *Client) CreateEvent(ctx context.Context, ev meeting.Event) (*meeting.Event, error) {
	gev := &gcal.Event{
		Summary:     ev.Title,
		Description: ev.Description,
		Start:       &gcal.EventDateTime{DateTime: ev.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: ev.End.Format(time.RFC3339)},
		ConferenceData: &gcal.ConferenceData{
			CreateRequest: &gcal.CreateConferenceRequest{
				RequestId: uuid.NewString(),
				ConferenceSolutionKey: &gcal.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := c.svc.Events.Insert(c.calendarID, gev).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("event create failed: %v", err)
	}

	out := meeting.Event{
		ID:          created.Id,
		Title:       created.Summary,
		Description: created.Description,
		Link:        joinLink(created),
		Start:       parseEventTime(created.Start, ev.Start),
		End:         parseEventTime(created.End, ev.End),
	}
	return &out, nil
}

func joinLink(ev *gcal.Event) string {
	if ev.HangoutLink != "" {
		return ev.HangoutLink
	}
	if ev.ConferenceData != nil {
		for _, ep := range ev.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" {
				return ep.Uri
			}
		}
	}
	return ""
}

func parseEventTime(edt *gcal.EventDateTime, fallback time.Time) time.Time {
	if edt == nil {
		return fallback
	}
	if edt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, edt.DateTime); err == nil {
			return t
		}
	}
	// Tüm gün etkinlikleri sadece tarih taşır.
	if edt.Date != "" {
		if t, err := time.Parse("2006-01-02", edt.Date); err == nil {
			return t
		}
	}
	return fallback
}
