// Package notify sends check run summaries to chat, mail and webhook channels.
package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"os"
	"strings"
	"time"

	ntfy "github.com/go-pkgz/notify"
)

// run statuses carried by Result.Status
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

const defaultTimeout = 10 * time.Second

// Params holds the notification settings from the config file.
type Params struct {
	Channels      []string
	OnError       bool
	OnComplete    bool
	TimeoutMs     int
	TelegramToken string
	TelegramChat  string
	SlackToken    string
	SlackChannel  string
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	SMTPStartTLS  bool
	EmailFrom     string
	EmailTo       []string
	WebhookURLs   []string
	CustomScript  string
}

// Result is the run summary sent to every channel. the custom script gets it as json on stdin.
type Result struct {
	Status   string   `json:"status"`
	Mode     string   `json:"mode"`
	BaseURL  string   `json:"base_url"`
	Driver   string   `json:"driver"`
	Revision string   `json:"revision,omitempty"`
	Passed   int      `json:"passed"`
	Failed   int      `json:"failed"`
	Skipped  int      `json:"skipped"`
	Failures []string `json:"failures,omitempty"`
	Duration string   `json:"duration"`
	Error    string   `json:"error,omitempty"`
}

type logger interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
}

// Service fans a Result out to the configured channels.
type Service struct {
	channels   []channel
	custom     *customChannel
	onError    bool
	onComplete bool
	timeout    time.Duration
	hostname   string
	log        logger
}

type channel struct {
	notifier   ntfy.Notifier
	dest       string
	htmlEscape bool // telegram uses html parse mode
}

// New makes a Service. returns nil, nil when no channels are configured, Send is nil-safe.
func New(p Params, log logger) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil service means notifications are off
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	svc := &Service{
		onError:    p.OnError,
		onComplete: p.OnComplete,
		timeout:    time.Duration(p.TimeoutMs) * time.Millisecond,
		hostname:   hostname,
		log:        log,
	}
	if svc.timeout <= 0 {
		svc.timeout = defaultTimeout
	}

	for _, name := range p.Channels {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "telegram":
			if p.TelegramToken == "" || p.TelegramChat == "" {
				return nil, errors.New("telegram channel: notify_telegram_token and notify_telegram_chat are required")
			}
			c, cErr := telegramChannelMaker(p)
			if cErr != nil {
				// token check is a live api call, an unreachable api disables the channel
				log.Warn("telegram channel disabled: %s", strings.ReplaceAll(cErr.Error(), p.TelegramToken, "[REDACTED]"))
				continue
			}
			svc.channels = append(svc.channels, c)
		case "email":
			c, cErr := makeEmailChannel(p)
			if cErr != nil {
				return nil, fmt.Errorf("email channel: %w", cErr)
			}
			svc.channels = append(svc.channels, c)
		case "slack":
			c, cErr := makeSlackChannel(p)
			if cErr != nil {
				return nil, fmt.Errorf("slack channel: %w", cErr)
			}
			svc.channels = append(svc.channels, c)
		case "webhook":
			chs, cErr := makeWebhookChannels(p)
			if cErr != nil {
				return nil, fmt.Errorf("webhook channel: %w", cErr)
			}
			svc.channels = append(svc.channels, chs...)
		case "custom":
			if p.CustomScript == "" {
				return nil, errors.New("custom channel: notify_custom_script is required")
			}
			svc.custom = newCustomChannel(p.CustomScript)
		default:
			return nil, fmt.Errorf("unknown notification channel: %q", name)
		}
	}

	if len(svc.channels) == 0 && svc.custom == nil {
		log.Warn("all notification channels were disabled")
	}
	return svc, nil
}

// Send delivers r to every channel, honoring the on_error and on_complete switches.
// failures are logged, never returned.
func (s *Service) Send(ctx context.Context, r Result) {
	if s == nil {
		return
	}
	if r.Status == StatusSuccess && !s.onComplete {
		return
	}
	if r.Status == StatusFailure && !s.onError {
		return
	}

	msg := s.formatMessage(r)
	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for _, ch := range s.channels {
		text := msg
		if ch.htmlEscape {
			text = html.EscapeString(msg)
		}
		if err := ch.notifier.Send(sendCtx, ch.dest, text); err != nil {
			s.log.Warn("notification failed for %s: %v", ch.notifier, err)
		}
	}

	if s.custom != nil {
		if err := s.custom.send(sendCtx, r); err != nil {
			s.log.Warn("custom notification failed: %v", err)
		}
	}
}

func (s *Service) formatMessage(r Result) string {
	var b strings.Builder

	verb := "passed"
	if r.Status != StatusSuccess {
		verb = "failed"
	}
	fmt.Fprintf(&b, "uiprobe checks %s on %s\n\n", verb, s.hostname)

	field := func(name, val string) {
		if val != "" {
			fmt.Fprintf(&b, "%-9s %s\n", name+":", val)
		}
	}
	field("site", r.BaseURL)
	field("mode", r.Mode)
	field("driver", r.Driver)
	field("revision", r.Revision)
	field("duration", r.Duration)
	fmt.Fprintf(&b, "%-9s %d passed, %d failed, %d skipped\n", "checks:", r.Passed, r.Failed, r.Skipped)
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "  - %s\n", f)
	}
	field("error", r.Error)

	return b.String()
}

// telegramChannelMaker is replaced in tests, the real one calls the telegram api.
var telegramChannelMaker = makeTelegramChannel

func makeTelegramChannel(p Params) (channel, error) {
	tg, err := ntfy.NewTelegram(ntfy.TelegramParams{Token: p.TelegramToken})
	if err != nil {
		return channel{}, fmt.Errorf("create telegram notifier: %w", err)
	}
	return channel{notifier: tg, dest: fmt.Sprintf("telegram:%s?parseMode=HTML", p.TelegramChat), htmlEscape: true}, nil
}

func makeEmailChannel(p Params) (channel, error) {
	switch {
	case p.SMTPHost == "":
		return channel{}, errors.New("notify_smtp_host is required")
	case p.EmailFrom == "":
		return channel{}, errors.New("notify_email_from is required")
	case len(p.EmailTo) == 0:
		return channel{}, errors.New("notify_email_to is required")
	}

	em := ntfy.NewEmail(ntfy.SMTPParams{
		Host:     p.SMTPHost,
		Port:     p.SMTPPort,
		Username: p.SMTPUsername,
		Password: p.SMTPPassword,
		StartTLS: p.SMTPStartTLS,
	})
	dest := fmt.Sprintf("mailto:%s?from=%s&subject=%s", strings.Join(p.EmailTo, ","),
		url.QueryEscape(p.EmailFrom), url.QueryEscape("uiprobe check results"))
	return channel{notifier: em, dest: dest}, nil
}

func makeSlackChannel(p Params) (channel, error) {
	if p.SlackToken == "" {
		return channel{}, errors.New("notify_slack_token is required")
	}
	if p.SlackChannel == "" {
		return channel{}, errors.New("notify_slack_channel is required")
	}
	return channel{notifier: ntfy.NewSlack(p.SlackToken), dest: "slack:" + p.SlackChannel}, nil
}

func makeWebhookChannels(p Params) ([]channel, error) {
	if len(p.WebhookURLs) == 0 {
		return nil, errors.New("notify_webhook_urls is required")
	}
	wh := ntfy.NewWebhook(ntfy.WebhookParams{})
	chs := make([]channel, 0, len(p.WebhookURLs))
	for _, u := range p.WebhookURLs {
		chs = append(chs, channel{notifier: wh, dest: u})
	}
	return chs, nil
}
