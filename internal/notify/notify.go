// Package notify renders this run's analyses as an HTML report and
// delivers it over SMTP.
package notify

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/pdiddy/arxiv-digest/internal/report"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// BuildBody renders the run-scoped report: the same per-paper fields as
// the cumulative log, but only this run's analyses.
func BuildBody(analyses []types.Analysis, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## arXiv paper analysis report (%s)\n\n", now.Format("2006-01-02"))
	for _, a := range analyses {
		report.Entry(&b, a)
	}
	return b.String()
}

// Send renders this run's report and delivers one message to all
// configured recipients over an authenticated STARTTLS session.
// Incomplete mail settings or an empty recipient list skip delivery;
// the skip is reported on out and is not an error. Delivery failures
// are returned for the caller to log — they never fail the run.
func Send(cfg types.MailConfig, analyses []types.Analysis, now time.Time, out io.Writer) error {
	if !cfg.Complete() {
		fmt.Fprintln(out, "mail settings incomplete, skipping notification")
		return nil
	}

	html, err := RenderHTML(BuildBody(analyses, now))
	if err != nil {
		return fmt.Errorf("rendering mail body: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(cfg.From); err != nil {
		return fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(cfg.To...); err != nil {
		return fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(fmt.Sprintf("arXiv paper digest - %s", now.Format("2006-01-02")))
	msg.SetBodyString(mail.TypeTextHTML, html)

	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	fmt.Fprintf(out, "report mailed to %s\n", strings.Join(cfg.To, ", "))
	return nil
}
