package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/metrics"
	"github.com/Effiong06/Agri-Naija-Centre/internal/notify"
)

// ContactService turns contact form submissions into notifications
type ContactService struct {
	dispatcher notify.Dispatcher
	cfg        *config.Config
	logger     *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(dispatcher notify.Dispatcher, cfg *config.Config, logger *zap.Logger) *ContactService {
	return &ContactService{
		dispatcher: dispatcher,
		cfg:        cfg,
		logger:     logger,
	}
}

// SubmitContact validates a submission and dispatches it to the configured
// recipients once, within the mail timeout. Invalid input is never dispatched.
func (s *ContactService) SubmitContact(ctx context.Context, name, email, message string) error {
	in := ContactInput{Name: name, Email: email, Message: message}
	in.normalize()
	if err := in.validate(); err != nil {
		metrics.ObserveContactDispatch("invalid", 0)
		return err
	}

	msg := notify.Message{
		Subject: "New Contact Form Submission from " + in.Name,
		Body:    fmt.Sprintf("From: %s <%s>\n\nMessage:\n%s", in.Name, in.Email, in.Message),
		To:      s.cfg.Mail.Recipients,
		ReplyTo: in.Email,
	}

	if s.cfg.Mail.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Mail.Timeout)
		defer cancel()
	}

	timer := metrics.NewTimer()
	err := s.dispatcher.Dispatch(ctx, msg)
	elapsed := timer.Seconds()

	switch {
	case err == nil:
		metrics.ObserveContactDispatch("sent", elapsed)
		s.logger.Info("Contact notification sent", zap.Int("recipients", len(msg.To)))
		return nil
	case errors.Is(err, notify.ErrTimeout):
		metrics.ObserveContactDispatch("timeout", elapsed)
		s.logger.Warn("Contact notification timed out", zap.Duration("timeout", s.cfg.Mail.Timeout))
		return ErrDispatchTimeout
	default:
		metrics.ObserveContactDispatch("rejected", elapsed)
		s.logger.Warn("Contact notification rejected", zap.Error(err))
		return ErrDispatchRejected
	}
}
