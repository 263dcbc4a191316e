package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PortfolioSummary es el contenido del correo que acompana a una recomendacion.
type PortfolioSummary struct {
	Username           string
	PortfolioType      string
	FinalScore         string
	EquityPercent      int
	FixedIncomePercent int
	EquityAmount       string
	FixedIncomeAmount  string
}

// Sender define la interfaz para el envio de resumenes de cartera.
type Sender interface {
	SendPortfolioSummary(ctx context.Context, toEmail string, summary PortfolioSummary) error
}

// ErrSenderDisabled se devuelve cuando no hay SMTP configurado.
var ErrSenderDisabled = errors.New("email sender disabled")

type disabledSender struct {
	reason string
}

func NewDisabledSender(reason string) Sender {
	return &disabledSender{reason: reason}
}

func (s *disabledSender) SendPortfolioSummary(context.Context, string, PortfolioSummary) error {
	if s.reason == "" {
		return ErrSenderDisabled
	}
	return fmt.Errorf("%w: %s", ErrSenderDisabled, s.reason)
}

func portfolioSubject(summary PortfolioSummary) string {
	return fmt.Sprintf("Your recommended portfolio: %s", summary.PortfolioType)
}

func portfolioBody(summary PortfolioSummary) string {
	var b strings.Builder
	if summary.Username != "" {
		fmt.Fprintf(&b, "Hi %s,\n\n", summary.Username)
	}
	fmt.Fprintf(&b, "Based on your questionnaire your risk score is %s.\n", summary.FinalScore)
	fmt.Fprintf(&b, "Recommended portfolio: %s\n\n", summary.PortfolioType)
	fmt.Fprintf(&b, "Equity: %d%% (%s)\n", summary.EquityPercent, summary.EquityAmount)
	fmt.Fprintf(&b, "Fixed income: %d%% (%s)\n", summary.FixedIncomePercent, summary.FixedIncomeAmount)
	return b.String()
}
