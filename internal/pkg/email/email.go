package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations used by the
// enrollment lifecycle. All sends are best effort: callers log failures and
// never fail the triggering operation.
type EmailService interface {
	SendEnrollmentApprovedEmail(toEmail, toName, courseTitle string) error
	SendEnrollmentRejectedEmail(toEmail, toName, courseTitle, reason string) error
	SendCertificateReadyEmail(toEmail, toName, courseTitle, certificateURL string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string
}

// EmailServiceImpl implements EmailService over net/smtp
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendEnrollmentApprovedEmail tells a student their enrollment was approved.
func (s *EmailServiceImpl) SendEnrollmentApprovedEmail(toEmail, toName, courseTitle string) error {
	if s.devLogOnly("enrollment approved", toEmail, courseTitle) {
		return nil
	}

	subject := fmt.Sprintf("Matrícula aprovada - %s", courseTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Matrícula aprovada!</h2>
				<p>Olá %s,</p>
				<p>Sua matrícula no curso <strong>%s</strong> foi aprovada. Você já pode começar a estudar.</p>
				<p>Bons estudos!</p>
			</div>
		</body>
		</html>
	`, toName, courseTitle)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendEnrollmentRejectedEmail tells a student their enrollment was rejected.
func (s *EmailServiceImpl) SendEnrollmentRejectedEmail(toEmail, toName, courseTitle, reason string) error {
	if s.devLogOnly("enrollment rejected", toEmail, courseTitle) {
		return nil
	}

	subject := fmt.Sprintf("Matrícula não aprovada - %s", courseTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Matrícula não aprovada</h2>
				<p>Olá %s,</p>
				<p>Infelizmente sua matrícula no curso <strong>%s</strong> não foi aprovada.</p>
				<p>Motivo: %s</p>
				<p>Em caso de dúvidas, procure a liderança.</p>
			</div>
		</body>
		</html>
	`, toName, courseTitle, reason)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendCertificateReadyEmail tells a student their certificate is available.
func (s *EmailServiceImpl) SendCertificateReadyEmail(toEmail, toName, courseTitle, certificateURL string) error {
	if s.devLogOnly("certificate ready", toEmail, courseTitle) {
		return nil
	}

	subject := fmt.Sprintf("Certificado disponível - %s", courseTitle)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Parabéns, %s!</h2>
				<p>Você concluiu o curso <strong>%s</strong> e seu certificado está pronto.</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Ver certificado</a>
				</div>
			</div>
		</body>
		</html>
	`, toName, courseTitle, certificateURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// devLogOnly logs the mail instead of sending when SMTP credentials are not
// configured. Returns true when the send should be skipped.
func (s *EmailServiceImpl) devLogOnly(kind, toEmail, courseTitle string) bool {
	if s.config.Username != "" && s.config.Password != "" {
		return false
	}
	s.logger.Warn().
		Str("kind", kind).
		Str("toEmail", toEmail).
		Str("course", courseTitle).
		Msg("SMTP credentials not configured - email not sent")
	return true
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
