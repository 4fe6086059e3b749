// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/linuxfoundation/lfx-v2-meeting-workflow-service/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// RenderedEmail holds both HTML and text versions of a rendered email
type RenderedEmail struct {
	HTML string
	Text string
}

// TemplateManager renders the invitation email templates.
type TemplateManager struct {
	invitationHTML *template.Template
	invitationText *template.Template
}

// NewTemplateManager creates a new template manager with all templates loaded
func NewTemplateManager() (*TemplateManager, error) {
	funcs := template.FuncMap{
		"formatTime": func(t time.Time) string {
			return t.UTC().Format("Monday, January 2, 2006 at 15:04 MST")
		},
	}

	htmlTmpl, err := template.New("meeting_invitation.html").Funcs(funcs).ParseFS(templateFS, "templates/meeting_invitation.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse invitation HTML template: %w", err)
	}

	textTmpl, err := template.New("meeting_invitation.txt").Funcs(funcs).ParseFS(templateFS, "templates/meeting_invitation.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse invitation text template: %w", err)
	}

	return &TemplateManager{
		invitationHTML: htmlTmpl,
		invitationText: textTmpl,
	}, nil
}

// RenderInvitation renders the invitation email in both HTML and text form.
func (tm *TemplateManager) RenderInvitation(data domain.MeetingInvitation) (*RenderedEmail, error) {
	var htmlBuf bytes.Buffer
	if err := tm.invitationHTML.ExecuteTemplate(&htmlBuf, "meeting_invitation.html", data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	var textBuf bytes.Buffer
	if err := tm.invitationText.ExecuteTemplate(&textBuf, "meeting_invitation.txt", data); err != nil {
		return nil, fmt.Errorf("failed to render text template: %w", err)
	}

	return &RenderedEmail{
		HTML: htmlBuf.String(),
		Text: textBuf.String(),
	}, nil
}
