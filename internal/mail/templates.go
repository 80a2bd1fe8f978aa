package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"churchthreads.app/api/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Rendered is a ready to send email body.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// NotificationEmail is the input for a notification email.
type NotificationEmail struct {
	OrgName string
	OrgHost string
	Type    model.NotificationType
	Data    model.NotificationData
}

// InvitationEmail is the input for an invitation email.
type InvitationEmail struct {
	OrgName     string
	OrgHost     string
	InviterName string
	InviteeName string
	Token       string
	ExpiresAt   time.Time
}

type view struct {
	Title       string
	ShowFooter  bool
	OrgName     string
	SettingsURL string
	URL         string
	Data        model.NotificationData
	InviterName string
	InviteeName string
	ExpiresAt   time.Time
}

var bodyFiles = map[string]string{
	string(model.NotificationNewThread):        "templates/new_thread.html",
	string(model.NotificationNewMessage):       "templates/new_message.html",
	string(model.NotificationNewFeedMember):    "templates/new_feed_member.html",
	string(model.NotificationUserRegistration): "templates/user_registration.html",
	"invitation":                               "templates/invitation.html",
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(bodyFiles))}
	for name, file := range bodyFiles {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", file)
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

// RegisterURL is the link an invitee follows to sign up.
func RegisterURL(orgHost, token string) string {
	return "https://" + orgHost + "/register?token=" + token
}

// NotificationURL points at the page a notification is about.
func NotificationURL(orgHost string, t model.NotificationType, data model.NotificationData) string {
	return "https://" + orgHost + data.Path(t)
}

func (r *Renderer) Notification(n NotificationEmail) (Rendered, error) {
	tmpl, ok := r.templates[string(n.Type)]
	if !ok {
		return Rendered{}, fmt.Errorf("no email template for %q", n.Type)
	}

	subject, text := notificationCopy(n)
	v := view{
		Title:       subject,
		ShowFooter:  true,
		OrgName:     n.OrgName,
		SettingsURL: "https://" + n.OrgHost + "/settings",
		URL:         NotificationURL(n.OrgHost, n.Type, n.Data),
		Data:        n.Data,
	}

	html, err := execute(tmpl, v)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{
		Subject: subject,
		HTML:    html,
		Text:    text + "\n\n" + v.URL + "\n",
	}, nil
}

func (r *Renderer) Invitation(i InvitationEmail) (Rendered, error) {
	url := RegisterURL(i.OrgHost, i.Token)
	v := view{
		Title:       "You're invited!",
		OrgName:     i.OrgName,
		URL:         url,
		InviterName: i.InviterName,
		InviteeName: i.InviteeName,
		ExpiresAt:   i.ExpiresAt,
	}

	html, err := execute(r.templates["invitation"], v)
	if err != nil {
		return Rendered{}, err
	}

	text := fmt.Sprintf("%s from %s invited you to join ChurchThreads!\n\nRegister: %s\n", i.InviterName, i.OrgName, url)
	return Rendered{
		Subject: fmt.Sprintf("%s invited you to %s on ChurchThreads", i.InviterName, i.OrgName),
		HTML:    html,
		Text:    text,
	}, nil
}

func notificationCopy(n NotificationEmail) (subject, text string) {
	actor := n.Data.ActorName
	if actor == "" {
		actor = "Someone"
	}

	switch n.Type {
	case model.NotificationNewThread:
		subject = fmt.Sprintf("New post in %s", n.Data.FeedName)
		text = fmt.Sprintf("%s posted in %s", actor, n.Data.FeedName)
	case model.NotificationNewMessage:
		subject = fmt.Sprintf("New replies in %s", n.Data.FeedName)
		text = fmt.Sprintf("%s replied to a thread in %s", actor, n.Data.FeedName)
	case model.NotificationNewFeedMember:
		subject = fmt.Sprintf("%s joined %s", actor, n.Data.FeedName)
		text = subject
	case model.NotificationUserRegistration:
		subject = "New user registered"
		text = fmt.Sprintf("%s just joined %s", actor, n.OrgName)
	}

	if preview := strings.TrimSpace(n.Data.Preview); preview != "" {
		text += "\n\n" + preview
	}
	return subject, text
}

func execute(tmpl *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", fmt.Errorf("rendering email: %w", err)
	}
	return buf.String(), nil
}
