package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"parcellocker/internal/core/ports"
)

const timestampLayout = "02 Jan 2006, 03:04 PM"

var templates = template.Must(template.New("notify").Parse(`
{{define "header"}}<html>
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;color:#333">
<div style="max-width:600px;margin:0 auto">{{end}}

{{define "footer"}}<div style="margin-top:24px;color:#999;font-size:12px"><p><strong>{{.Brand}}</strong></p><p>Available 24/7</p></div>
</div>
</body>
</html>{{end}}

{{define "deposit"}}{{template "header" .}}
<h1>Package Delivered</h1>
<p>Dear <strong>{{.ResidentName}}</strong>,</p>
<p>Your package from <strong>{{.Company}}</strong> has been delivered to locker <strong>{{.LockerNumber}}</strong>.</p>
<div style="background:#f5f5f5;padding:16px;text-align:center">
<p style="margin:0;font-size:14px;color:#666">Your OTP Code</p>
<p style="margin:8px 0;font-size:32px;letter-spacing:6px"><strong>{{.OTP}}</strong></p>
<p style="margin:0;font-size:12px;color:#999">Valid until {{.Expiry}}</p>
</div>
<p><strong>Locker:</strong> {{.LockerNumber}}</p>
<p><strong>Apartment:</strong> {{.FlatNumber}}</p>
<p><strong>Location:</strong> {{.TowerName}}, {{.SocietyName}}</p>
<p><strong>Size:</strong> {{.PackageSize}}</p>
<p><strong>Tracking:</strong> {{.TrackingNumber}}</p>
<h3>Collection Steps</h3>
<ol>
<li>Go to the locker screen at {{.TowerName}}.</li>
<li>Enter your mobile number, flat number and name.</li>
<li>Enter the OTP above and collect your package from locker {{.LockerNumber}}.</li>
</ol>
{{template "footer" .}}{{end}}

{{define "collection"}}{{template "header" .}}
<h1>Collection Confirmed</h1>
<p>Dear <strong>{{.ResidentName}}</strong>,</p>
<p>Your request to collect from locker <strong>{{.LockerNumber}}</strong> is confirmed.</p>
<p><strong>Locker:</strong> {{.LockerNumber}}</p>
<p><strong>Apartment:</strong> {{.FlatNumber}}</p>
<p><strong>Location:</strong> {{.TowerName}}, {{.SocietyName}}</p>
<p><strong>Time:</strong> {{.OccurredAt}}</p>
<p style="color:#27ae60;font-weight:bold">Proceed to the locker to collect your package.</p>
{{template "footer" .}}{{end}}
`))

type message struct {
	Subject string
	HTML    string
}

// view is the template data. Times are preformatted in the site's zone.
type view struct {
	ports.NotificationPayload
	Brand      string
	Expiry     string
	OccurredAt string
}

func render(kind ports.NotificationKind, p ports.NotificationPayload, brand string, loc *time.Location) (message, error) {
	var subject string
	switch kind {
	case ports.NotificationDeposit:
		subject = fmt.Sprintf("Package Delivered - Locker %d", p.LockerNumber)
	case ports.NotificationCollection:
		subject = fmt.Sprintf("Package Collection - Locker %d", p.LockerNumber)
	default:
		return message{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	v := view{NotificationPayload: p, Brand: brand}
	if !p.OTPExpiresAt.IsZero() {
		v.Expiry = p.OTPExpiresAt.In(loc).Format(timestampLayout)
	}
	if !p.OccurredAt.IsZero() {
		v.OccurredAt = p.OccurredAt.In(loc).Format(timestampLayout)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, string(kind), v); err != nil {
		return message{}, fmt.Errorf("render %s notification: %w", kind, err)
	}
	return message{Subject: subject, HTML: buf.String()}, nil
}
