package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/feedchain/backend/config"
	"github.com/feedchain/backend/services/logging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// Client is the part of *mail.Client the service uses.
type Client interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Service struct {
	config *config.MailConfig
	client Client
	logger *logging.Service
}

func NewService(cfg *config.MailConfig, logger *logging.Service) (*Service, error) {
	return NewServiceWithClient(cfg, logger, nil)
}

// NewServiceWithClient builds the service around client, or a real SMTP
// client when client is nil.
func NewServiceWithClient(cfg *config.MailConfig, logger *logging.Service, client Client) (*Service, error) {
	if cfg.FromAddress == "" {
		if logger != nil {
			logger.Error("mail service initialization failed: FROM_ADDRESS is required")
		}
		return nil, fmt.Errorf("MAIL_FROM_ADDRESS is required")
	}

	if client == nil {
		smtpClient, err := newSMTPClient(cfg)
		if err != nil {
			if logger != nil {
				logger.Error("failed to create mail client",
					zap.Error(err),
					zap.String("host", cfg.Host),
					zap.Int("port", cfg.Port))
			}
			return nil, fmt.Errorf("failed to create mail client: %w", err)
		}
		client = smtpClient
	}

	if logger != nil {
		logger.Info("mail service initialized",
			zap.String("host", cfg.Host),
			zap.Int("port", cfg.Port),
			zap.String("encryption", cfg.Encryption))
	}

	return &Service{
		config: cfg,
		client: client,
		logger: logger,
	}, nil
}

func newSMTPClient(cfg *config.MailConfig) (*mail.Client, error) {
	clientOpts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(15 * time.Second),
	}

	switch cfg.Encryption {
	case "ssl":
		clientOpts = append(clientOpts, mail.WithSSL())
	case "none":
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.NoTLS))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}

	if cfg.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password))
	}

	return mail.NewClient(cfg.Host, clientOpts...)
}

func (s *Service) NewMessage() (*mail.Msg, error) {
	message := mail.NewMsg()

	fromAddr := s.config.FromAddress
	if s.config.FromName != "" {
		fromAddr = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress)
	}

	if err := message.From(fromAddr); err != nil {
		return nil, fmt.Errorf("failed to set FROM address: %w", err)
	}

	return message, nil
}

// Send delivers a plain-text message to a single recipient.
func (s *Service) Send(ctx context.Context, to, subject, body string) error {
	message, err := s.NewMessage()
	if err != nil {
		return err
	}

	if err := message.To(to); err != nil {
		return fmt.Errorf("failed to set TO address: %w", err)
	}

	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	startTime := time.Now()
	err = s.client.DialAndSendWithContext(ctx, message)
	duration := time.Since(startTime)

	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to send email",
				zap.Error(err),
				zap.Duration("attempt_duration", duration))
		}
		return err
	}

	if s.logger != nil {
		s.logger.Info("email sent", zap.String("subject", subject), zap.Duration("send_duration", duration))
	}
	return nil
}
