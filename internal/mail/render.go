package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"arcticfresh/internal/domain"
)

var bodyTmpl = template.Must(template.New("inquiry").Parse(`<!doctype html>
<html lang="{{.Locale}}" dir="{{.Locale.Dir}}">
<body style="font-family:Arial,sans-serif">
<h2>{{if eq .Kind "quote"}}New quote request{{else}}New contact message{{end}}</h2>
<table cellpadding="4">
<tr><td><b>Name</b></td><td>{{.Name}}</td></tr>
<tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
{{with .Phone}}<tr><td><b>Phone</b></td><td>{{.}}</td></tr>{{end}}
{{with .Company}}<tr><td><b>Company</b></td><td>{{.}}</td></tr>{{end}}
{{with .Country}}<tr><td><b>Country</b></td><td>{{.}}</td></tr>{{end}}
{{with .Subject}}<tr><td><b>Subject</b></td><td>{{.}}</td></tr>{{end}}
<tr><td><b>Language</b></td><td>{{.Locale}}</td></tr>
</table>
{{if .Products}}<h3>Products</h3><ul>{{range .Products}}<li>{{.}}</li>{{end}}</ul>{{end}}
{{with .Message}}<h3>Message</h3><p style="white-space:pre-wrap">{{.}}</p>{{end}}
<p style="color:#888">Inquiry {{.ID}}</p>
</body>
</html>`))

// Render returns the HTML body for in. Submitted values are escaped.
func Render(in domain.Inquiry) (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, in); err != nil {
		return "", fmt.Errorf("render inquiry: %w", err)
	}
	return buf.String(), nil
}

func Subject(in domain.Inquiry) string {
	if in.Kind == domain.InquiryQuote {
		return fmt.Sprintf("Quote request from %s (%d products)", in.Name, len(in.Products))
	}
	return "Contact: " + in.Subject
}
