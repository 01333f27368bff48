// Package notify hands outbound notifications to a mail relay.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
)

var (
	// ErrTimeout is returned when the relay does not accept the message in time
	ErrTimeout = errors.New("notification dispatch timed out")
	// ErrRejected is returned when the relay refuses the message or cannot be reached
	ErrRejected = errors.New("notification rejected")
)

// Message is a plain-text notification
type Message struct {
	Subject string
	Body    string
	To      []string
	ReplyTo string
}

// Dispatcher delivers notifications. Implementations honor the context
// deadline and never retry.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg Message) error
}

// SMTPDispatcher delivers notifications through an authenticated SMTP relay
type SMTPDispatcher struct {
	client *mail.Client
	from   string
	logger *zap.Logger
}

// NewSMTPDispatcher creates a dispatcher for the configured relay
func NewSMTPDispatcher(cfg *config.Config, logger *zap.Logger) (*SMTPDispatcher, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Mail.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Mail.Timeout),
	}
	if cfg.Mail.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Mail.Username),
			mail.WithPassword(cfg.Mail.Password),
		)
	}

	client, err := mail.NewClient(cfg.Mail.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &SMTPDispatcher{
		client: client,
		from:   cfg.MailSender(),
		logger: logger,
	}, nil
}

// Dispatch sends the message. Failures are reported as ErrTimeout or
// ErrRejected; relay detail is logged, not returned.
func (d *SMTPDispatcher) Dispatch(ctx context.Context, msg Message) error {
	m, err := buildMsg(d.from, msg)
	if err != nil {
		d.logger.Warn("Invalid notification", zap.Error(err))
		return fmt.Errorf("%w: invalid message", ErrRejected)
	}

	if err := d.client.DialAndSendWithContext(ctx, m); err != nil {
		d.logger.Warn("Notification dispatch failed",
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return classify(ctx, err)
	}

	d.logger.Debug("Notification dispatched", zap.String("subject", msg.Subject))
	return nil
}

func buildMsg(from string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender: %w", err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// classify maps a transport error onto ErrTimeout or ErrRejected
func classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}
	return ErrRejected
}

// LogDispatcher records notifications in the log instead of sending them.
// It is used when outbound mail is disabled.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher creates a dispatcher that only logs
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// Dispatch logs the message envelope
func (d *LogDispatcher) Dispatch(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return classify(ctx, err)
	}
	d.logger.Info("Notification (mail disabled)",
		zap.String("subject", msg.Subject),
		zap.String("to", strings.Join(msg.To, ",")),
		zap.String("reply_to", msg.ReplyTo),
	)
	return nil
}

// New returns the dispatcher selected by the mail configuration
func New(cfg *config.Config, logger *zap.Logger) (Dispatcher, error) {
	if !cfg.Mail.Enabled {
		return NewLogDispatcher(logger), nil
	}
	return NewSMTPDispatcher(cfg, logger)
}
