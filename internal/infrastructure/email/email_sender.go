package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"

	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

// EmailSender sends portal notification emails through SendGrid.
type EmailSender struct {
	config    *config.EmailConfig
	logger    *logrus.Logger
	client    *sendgrid.Client
	templates map[string]*template.Template
}

// NewEmailSender creates a new SendGrid-backed email sender
func NewEmailSender(cfg *config.EmailConfig, logger *logrus.Logger) (ports.EmailSender, error) {
	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)

	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	return &EmailSender{
		config:    cfg,
		logger:    logger,
		client:    client,
		templates: templates,
	}, nil
}

// loadTemplates loads all email templates from disk
func loadTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	templateDir := "templates/email"

	templateFiles := []string{
		"leave_submitted.html",
		"leave_decision.html",
		"timesheet_reminder.html",
	}

	for _, file := range templateFiles {
		name := file[:len(file)-len(filepath.Ext(file))]

		tmpl, err := template.ParseFiles(filepath.Join(templateDir, file))
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", file, err)
		}

		templates[name] = tmpl
	}

	return templates, nil
}

// sendEmail sends an email using SendGrid
func (e *EmailSender) sendEmail(to, subject, htmlContent string) error {
	from := mail.NewEmail(e.config.FromName, e.config.FromEmail)
	recipient := mail.NewEmail("", to)

	message := mail.NewSingleEmail(from, subject, recipient, "", htmlContent)

	response, err := e.client.Send(message)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
			"error":   err,
		}).Error("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	e.logger.WithFields(logrus.Fields{
		"to":          to,
		"subject":     subject,
		"status_code": response.StatusCode,
	}).Info("Email sent successfully")

	return nil
}

// renderTemplate renders an email template with the provided data
func (e *EmailSender) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := e.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

// LeaveSubmittedData holds data for the manager notification template
type LeaveSubmittedData struct {
	CompanyName  string
	EmployeeName string
	BusinessDays int
	PortalURL    string
}

// LeaveDecisionData holds data for the leave decision template
type LeaveDecisionData struct {
	CompanyName string
	Decision    string
	ReviewNote  string
	PortalURL   string
}

// TimesheetReminderData holds data for the weekly reminder template
type TimesheetReminderData struct {
	CompanyName string
	WeekStart   string
	PortalURL   string
}

// SendLeaveSubmitted notifies a manager about a new leave request
func (e *EmailSender) SendLeaveSubmitted(ctx context.Context, managerEmail, employeeName string, businessDays int) error {
	data := LeaveSubmittedData{
		CompanyName:  e.config.CompanyName,
		EmployeeName: employeeName,
		BusinessDays: businessDays,
		PortalURL:    fmt.Sprintf("%s/leaves/pending", e.config.BaseURL),
	}

	htmlContent, err := e.renderTemplate("leave_submitted", data)
	if err != nil {
		return fmt.Errorf("failed to render leave submission template: %w", err)
	}

	subject := fmt.Sprintf("New Leave Request from %s - %s", employeeName, e.config.CompanyName)

	return e.sendEmail(managerEmail, subject, htmlContent)
}

// SendLeaveDecision notifies an employee about a leave decision
func (e *EmailSender) SendLeaveDecision(ctx context.Context, employeeEmail string, approved bool, reviewNote string) error {
	decision := "rejected"
	if approved {
		decision = "approved"
	}

	data := LeaveDecisionData{
		CompanyName: e.config.CompanyName,
		Decision:    decision,
		ReviewNote:  reviewNote,
		PortalURL:   fmt.Sprintf("%s/leaves", e.config.BaseURL),
	}

	htmlContent, err := e.renderTemplate("leave_decision", data)
	if err != nil {
		return fmt.Errorf("failed to render leave decision template: %w", err)
	}

	subject := fmt.Sprintf("Your Leave Request Was %s - %s", decision, e.config.CompanyName)

	return e.sendEmail(employeeEmail, subject, htmlContent)
}

// SendTimesheetReminder nudges an employee about a missing timesheet
func (e *EmailSender) SendTimesheetReminder(ctx context.Context, employeeEmail string, weekStart string) error {
	data := TimesheetReminderData{
		CompanyName: e.config.CompanyName,
		WeekStart:   weekStart,
		PortalURL:   fmt.Sprintf("%s/timesheets", e.config.BaseURL),
	}

	htmlContent, err := e.renderTemplate("timesheet_reminder", data)
	if err != nil {
		return fmt.Errorf("failed to render timesheet reminder template: %w", err)
	}

	subject := fmt.Sprintf("Timesheet Missing for Week of %s - %s", weekStart, e.config.CompanyName)

	return e.sendEmail(employeeEmail, subject, htmlContent)
}
