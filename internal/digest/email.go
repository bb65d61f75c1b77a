// Package digest renders the final ranked report and delivers it to the
// configured sink.
package digest

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/dmehra/jobwire/internal/model"
)

// Ensure EmailDigest implements model.DigestSink.
var _ model.DigestSink = (*EmailDigest)(nil)

// EmailDigest sends the ranked report as an HTML email over SMTPS.
type EmailDigest struct {
	host     string
	port     int
	from     string
	to       string
	password string
	storeURL string // link to the persistent record store, shown per entry
	logger   *slog.Logger
	now      func() time.Time

	// send is swappable in tests; defaults to SMTP delivery.
	send func(subject, htmlBody string) error
}

// NewEmailDigest returns a sink that emails the report via the given SMTP
// server using implicit TLS.
func NewEmailDigest(host string, port int, from, to, password, storeURL string, logger *slog.Logger) *EmailDigest {
	d := &EmailDigest{
		host:     host,
		port:     port,
		from:     from,
		to:       to,
		password: password,
		storeURL: storeURL,
		logger:   logger,
		now:      time.Now,
	}
	d.send = d.sendSMTP
	return d
}

// Send renders the ranked entries into the HTML digest and delivers it.
// Callers guarantee ranked is non-empty and sorted by descending score.
func (d *EmailDigest) Send(ranked []model.ScoredPosting) error {
	body, err := renderHTML(ranked, d.storeURL, d.now())
	if err != nil {
		return fmt.Errorf("render digest: %w", err)
	}

	subject := fmt.Sprintf("%d New Jobs Found - %s", len(ranked), d.now().Format("Monday, Jan 2"))
	if err := d.send(subject, body); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}

	d.logger.Info("digest sent", "to", d.to, "jobs", len(ranked))
	return nil
}

// sendSMTP delivers one HTML message over implicit TLS (port 465 style).
func (d *EmailDigest) sendSMTP(subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", d.host, d.port)

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: d.host})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}

	client, err := smtp.NewClient(conn, d.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", d.from, d.password, d.host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(d.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(d.to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}

	var msg strings.Builder
	msg.WriteString("From: " + d.from + "\r\n")
	msg.WriteString("To: " + d.to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	if _, err := w.Write([]byte(msg.String())); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}

// scoreColor maps a match score to the card accent color.
func scoreColor(score int) string {
	switch {
	case score >= 80:
		return "#16a34a"
	case score >= 60:
		return "#d97706"
	default:
		return "#dc2626"
	}
}

type digestData struct {
	Date     string
	Count    int
	StoreURL string
	Entries  []entryData
}

type entryData struct {
	Title     string
	Company   string
	Location  string
	Remote    bool
	Salary    string
	Source    string
	Score     int
	Color     template.CSS
	Reasons   string
	Gaps      string
	Keywords  string
	Strategy  string
	ApplyLink string
}

var digestTemplate = template.Must(template.New("digest").Parse(`<html><body style="font-family:-apple-system,'Segoe UI',sans-serif;background:#f3f4f6;margin:0;padding:24px">
<div style="max-width:680px;margin:auto">
  <div style="background:white;border-radius:16px;padding:32px;margin-bottom:16px">
    <h1 style="margin:0 0 8px;color:#111">Your Daily Job Report</h1>
    <p style="color:#6b7280;margin:0"><strong>{{.Count}} new roles</strong> found for {{.Date}}, ranked by match score.</p>
  </div>
{{range .Entries}}  <div style="border:1px solid #e5e7eb;border-radius:12px;padding:22px;margin:16px 0;background:white">
    <h2 style="margin:0 0 4px;color:#111;font-size:18px">{{.Title}}</h2>
    <p style="margin:0 0 4px;color:#555;font-size:14px">{{.Company}} &middot; {{.Location}}{{if .Remote}} (remote){{end}}</p>
    {{if .Salary}}<p style="margin:4px 0;color:#555">{{.Salary}}</p>{{end}}
    <span style="font-size:12px;background:#f3f4f6;padding:3px 8px;border-radius:99px;color:#555">{{.Source}}</span>
    <div style="margin:10px 0;font-size:26px;font-weight:800;color:{{.Color}}">{{.Score}} <span style="font-size:10px;color:#999;text-transform:uppercase">match</span></div>
    <p style="margin:6px 0;font-size:13px"><strong>Why you match:</strong> {{.Reasons}}</p>
    <p style="margin:6px 0;font-size:13px"><strong>Gaps to address:</strong> {{.Gaps}}</p>
    <p style="margin:6px 0;font-size:13px"><strong>Keywords to add:</strong> <em>{{.Keywords}}</em></p>
    <p style="margin:6px 0;font-size:13px"><strong>Strategy:</strong> {{.Strategy}}</p>
    <p style="margin-top:16px">
      <a href="{{.ApplyLink}}" style="background:#4f46e5;color:white;padding:9px 18px;border-radius:8px;text-decoration:none;font-weight:600;font-size:13px">Apply Now</a>
      {{if $.StoreURL}}<a href="{{$.StoreURL}}" style="color:#374151;border:1px solid #d1d5db;padding:9px 18px;border-radius:8px;text-decoration:none;font-size:13px;margin-left:8px">View Cover Letter</a>{{end}}
    </p>
  </div>
{{end}}</div></body></html>`))

// renderHTML builds the digest body. Entries are rendered in the order
// given (descending score, ties stable).
func renderHTML(ranked []model.ScoredPosting, storeURL string, now time.Time) (string, error) {
	data := digestData{
		Date:     now.Format("Monday, Jan 2"),
		Count:    len(ranked),
		StoreURL: storeURL,
	}
	for _, sp := range ranked {
		data.Entries = append(data.Entries, entryData{
			Title:     sp.Posting.Title,
			Company:   sp.Posting.Company,
			Location:  sp.Posting.Location,
			Remote:    sp.Posting.Remote,
			Salary:    sp.Posting.Salary,
			Source:    sp.Posting.Source,
			Score:     sp.Result.MatchScore,
			Color:     template.CSS(scoreColor(sp.Result.MatchScore)),
			Reasons:   strings.Join(sp.Result.MatchReasons, " • "),
			Gaps:      strings.Join(sp.Result.Gaps, " • "),
			Keywords:  strings.Join(sp.Result.KeywordsToAdd, ", "),
			Strategy:  sp.Result.ApplicationStrategy,
			ApplyLink: sp.Posting.ApplyLink,
		})
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
