package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

// Template data structures
type MeetingInviteData struct {
	Name        string
	Title       string
	Description string
	Link        string
	HostLink    string
	Platform    string
	StartTime   time.Time
	EndTime     time.Time
}

type SubscriptionStartedData struct {
	Name         string
	PlanType     string
	Price        float64
	Currency     string
	DurationDays int
	StartDate    time.Time
	EndDate      time.Time
}

type SubscriptionCancelledData struct {
	Name     string
	PlanType string
	EndDate  time.Time
}

func NewEmailService(apiKey string) (*EmailService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("error loading email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      "DailyMeet <noreply@dailymeet.app>",
		templates: templates,
	}, nil
}

func (s *EmailService) sendTemplateEmail(to, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("template execution error: %v", err)
	}

	emailData := EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    body.String(),
	}

	jsonData, err := json.Marshal(emailData)
	if err != nil {
		return fmt.Errorf("error marshaling email data: %v", err)
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending email: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("resend API error: %s", string(respBody))
	}

	log.Printf("Sent %q email to %s", subject, to)
	return nil
}

// Email sending methods
func (s *EmailService) SendMeetingInvite(
	to, name, title, description, link, hostLink, platform string,
	startTime, endTime time.Time,
) error {
	data := MeetingInviteData{
		Name:        name,
		Title:       title,
		Description: description,
		Link:        link,
		HostLink:    hostLink,
		Platform:    platform,
		StartTime:   startTime,
		EndTime:     endTime,
	}
	subject := fmt.Sprintf("Your Meeting Invite for %s 📅", startTime.Format("Jan 2"))
	return s.sendTemplateEmail(to, subject, "meeting_invite.html", data)
}

func (s *EmailService) SendSubscriptionStartedEmail(
	to, name, planType string,
	price float64,
	currency string,
	durationDays int,
	startDate, endDate time.Time,
) error {
	data := SubscriptionStartedData{
		Name:         name,
		PlanType:     planType,
		Price:        price,
		Currency:     currency,
		DurationDays: durationDays,
		StartDate:    startDate,
		EndDate:      endDate,
	}
	return s.sendTemplateEmail(to, "Your Subscription Is Active! 🎉", "subscription_started.html", data)
}

func (s *EmailService) SendSubscriptionCancelledEmail(to, name, planType string, endDate time.Time) error {
	data := SubscriptionCancelledData{
		Name:     name,
		PlanType: planType,
		EndDate:  endDate,
	}
	return s.sendTemplateEmail(to, "Your Subscription Has Been Cancelled", "subscription_cancelled.html", data)
}
