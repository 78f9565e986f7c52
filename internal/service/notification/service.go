package notification

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/mail"
	"strings"

	"github.com/resend/resend-go/v3"

	"data-catalog/internal/config"
	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/i18n"
	"data-catalog/internal/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	NotifyRequestSubmitted(ctx context.Context, req *domain.ApprovalRequest) error
	NotifyRequestReviewed(ctx context.Context, req *domain.ApprovalRequest) error
}

// Sender delivers a rendered email. *resend.Client's Emails service satisfies it.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender    Sender
	fromEmail string
	reviewers []string
	appURL    string
	locale    string
	log       *logger.Logger
}

// NewService returns a notifier backed by Resend. Without RESEND_API_KEY every
// notification is a no-op.
func NewService(cfg *config.Config, log *logger.Logger) Service {
	var sender Sender
	if cfg.ResendAPIKey != "" {
		sender = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return NewServiceWithSender(sender, cfg, log)
}

func NewServiceWithSender(sender Sender, cfg *config.Config, log *logger.Logger) Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &service{
		sender:    sender,
		fromEmail: cfg.FromEmail,
		reviewers: cfg.ReviewerEmails,
		appURL:    strings.TrimRight(cfg.AppURL, "/"),
		locale:    cfg.DefaultLocale,
		log:       log,
	}
}

type emailData struct {
	Title           string
	Link            string
	ProductName     string
	RequestType     domain.RequestType
	RequestedBy     string
	Status          domain.ApprovalStatus
	Reviewer        string
	RejectionReason string
}

func (s *service) NotifyRequestSubmitted(ctx context.Context, req *domain.ApprovalRequest) error {
	if s.sender == nil || len(s.reviewers) == 0 {
		return nil
	}

	name := productName(req)
	subject := i18n.Translate(s.locale, "request_submitted_subject",
		"type", string(req.RequestType), "product", name)
	data := emailData{
		Title:       subject,
		Link:        fmt.Sprintf("%s/approvals", s.appURL),
		ProductName: name,
		RequestType: req.RequestType,
		RequestedBy: req.RequestedBy,
	}
	return s.sendEmail(ctx, s.reviewers, subject, "request_submitted.html", data)
}

func (s *service) NotifyRequestReviewed(ctx context.Context, req *domain.ApprovalRequest) error {
	if s.sender == nil || !isEmail(req.RequestedBy) {
		return nil
	}

	name := productName(req)
	subject := i18n.Translate(s.locale, "request_reviewed_subject",
		"type", string(req.RequestType), "product", name, "status", string(req.Status))
	data := emailData{
		Title:       subject,
		Link:        fmt.Sprintf("%s/approvals", s.appURL),
		ProductName: name,
		RequestType: req.RequestType,
		RequestedBy: req.RequestedBy,
		Status:      req.Status,
	}
	if req.ApprovedBy != nil {
		data.Reviewer = *req.ApprovedBy
	}
	if req.RejectionReason != nil {
		data.RejectionReason = *req.RejectionReason
	}
	return s.sendEmail(ctx, []string{req.RequestedBy}, subject, "request_reviewed.html", data)
}

func (s *service) sendEmail(ctx context.Context, to []string, subject, templateName string, data emailData) error {
	body, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Data Catalog <%s>", s.fromEmail),
		To:      to,
		Html:    body,
		Subject: subject,
	}

	if _, err := s.sender.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email %q: %w", templateName, err)
	}
	s.log.Debug("email sent", "template", templateName, "recipients", len(to))
	return nil
}

func render(templateName string, data emailData) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

// productName picks a display name from the proposed payload, then the
// current snapshot, then the product id.
func productName(req *domain.ApprovalRequest) string {
	for _, doc := range []domain.JSON{req.ProposedChanges, req.CurrentData} {
		var named struct {
			Name string `json:"name"`
		}
		if len(doc) > 0 && json.Unmarshal(doc, &named) == nil && named.Name != "" {
			return named.Name
		}
	}
	if req.ProductID != nil {
		return fmt.Sprintf("#%d", *req.ProductID)
	}
	return "new data product"
}

func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
