// Package email entrega ofertas por SMTP.
package email

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/pkg/config"
	"github.com/jhoicas/Offers-api/pkg/logger"
	"github.com/jhoicas/Offers-api/pkg/money"
)

// MessageSender lo implementa *gomail.Dialer; los tests inyectan uno en memoria.
type MessageSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type pdfRenderer interface {
	RenderOffer(offer *entity.Offer, company *entity.Company) ([]byte, error)
}

// SMTPSender implementa offer.Notifier. Un envío por llamada, sin reintentos ni cola.
type SMTPSender struct {
	sender   MessageSender
	from     string
	fromName string
	lang     language.Tag
	pdf      pdfRenderer // nil = sin adjunto
	log      *logger.Logger
}

// NewSMTPSender construye el emisor con un gomail.Dialer a partir de la configuración SMTP.
// pdf se usa solo si cfg.AttachPDF está activo.
func NewSMTPSender(cfg config.SMTPConfig, pdf pdfRenderer, log *logger.Logger) *SMTPSender {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewSMTPSenderWith(d, cfg, pdf, log)
}

// NewSMTPSenderWith permite inyectar el MessageSender.
func NewSMTPSenderWith(sender MessageSender, cfg config.SMTPConfig, pdf pdfRenderer, log *logger.Logger) *SMTPSender {
	if !cfg.AttachPDF {
		pdf = nil
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SMTPSender{
		sender:   sender,
		from:     cfg.From,
		fromName: cfg.FromName,
		lang:     money.Tag(cfg.Locale),
		pdf:      pdf,
		log:      log.Named("email"),
	}
}

// SendOffer envía la oferta al email del cliente con asunto "Oferta - <número>".
func (s *SMTPSender) SendOffer(ctx context.Context, offer *entity.Offer, company *entity.Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := s.buildMessage(offer, company)
	if err != nil {
		return err
	}
	if err := s.sender.DialAndSend(m); err != nil {
		s.log.Warn().Err(err).
			Str("offer_number", offer.OfferNumber).
			Str("to", offer.CustomerEmail).
			Msg("envío de oferta fallido")
		return fmt.Errorf("smtp: %w", err)
	}
	s.log.Info().
		Str("offer_number", offer.OfferNumber).
		Str("to", offer.CustomerEmail).
		Bool("pdf", s.pdf != nil).
		Msg("oferta enviada")
	return nil
}

func (s *SMTPSender) buildMessage(offer *entity.Offer, company *entity.Company) (*gomail.Message, error) {
	body, err := renderOffer(offer, company, s.lang)
	if err != nil {
		return nil, fmt.Errorf("email: plantilla: %w", err)
	}

	fromName := s.fromName
	if company.Name != "" {
		fromName = company.Name
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, fromName)
	m.SetAddressHeader("To", offer.CustomerEmail, offer.CustomerName)
	if company.Email != "" {
		m.SetHeader("Reply-To", company.Email)
	}
	m.SetHeader("Subject", "Oferta - "+offer.OfferNumber)
	m.SetBody("text/html", body)

	if s.pdf != nil {
		content, err := s.pdf.RenderOffer(offer, company)
		if err != nil {
			return nil, fmt.Errorf("email: adjunto pdf: %w", err)
		}
		m.Attach(offer.OfferNumber+".pdf",
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}
	return m, nil
}
