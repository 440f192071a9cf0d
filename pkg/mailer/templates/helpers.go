package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/go-complaint-tracker/config"
)

// Option pattern
type Option func(*EmailData)

func WithSentAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.SentAt = utc
		d.SentAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithComplaint(id, newStatus string) Option {
	return func(d *EmailData) {
		d.ComplaintID = id
		d.NewStatus = newStatus
	}
}

func WithStageName(name string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(name); s != "" {
			d.StageName = s
		}
	}
}

// NewNotificationData fills branding from config, then applies opts.
func NewNotificationData(cfg *config.Config, kind, name, recipient, title, body string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Kind:           kind,
		Title:          title,
		Body:           body,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
