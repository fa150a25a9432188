// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// VoucherEmailParams contains data for the winner voucher email
type VoucherEmailParams struct {
	To                string
	WinnerName        string
	CertificationType string
	ClassDate         time.Time
	ClassTime         string
	LocationFormat    string
	InstructorName    string
	RegistrationLink  string
	VoucherCode       string
}

// classDateLayout is the human-readable date format used in emails.
const classDateLayout = "Monday, January 2, 2006"

var voucherTemplate = template.Must(template.New("voucher_email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 30px; border-radius: 10px 10px 0 0; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
        .voucher-box { background: white; border: 2px dashed #667eea; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center; }
        .voucher-code { font-family: 'Courier New', monospace; font-size: 22px; font-weight: bold; letter-spacing: 2px; color: #667eea; }
        .class-card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .class-card .detail-label { font-size: 12px; color: #999; }
        .class-card .detail-value { font-weight: bold; color: #333; }
        .cta-button { display: inline-block; background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-top: 20px; }
        .footer { text-align: center; margin-top: 30px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Congratulations, {{.WinnerName}}!</h1>
        <p>You won a {{.CertificationType}} certification voucher</p>
    </div>
    <div class="content">
        <p>Your exam voucher is below. Keep this email safe: anyone with the code can redeem it.</p>

        <div class="voucher-box">
            <div class="detail-label">Voucher Code</div>
            <div class="voucher-code">{{.VoucherCode}}</div>
        </div>

        <div class="class-card">
            <h3>Your Class Session</h3>
            <div class="detail-label">Date</div>
            <div class="detail-value">{{.ClassDateDisplay}}</div>
            <div class="detail-label">Time</div>
            <div class="detail-value">{{.ClassTime}}</div>
            <div class="detail-label">Format</div>
            <div class="detail-value">{{.LocationFormat}}</div>
            <div class="detail-label">Instructor</div>
            <div class="detail-value">{{.InstructorName}}</div>
        </div>

        {{if .RegistrationLink}}
        <div style="text-align: center;">
            <a href="{{.RegistrationLink}}" class="cta-button">Register for Your Class</a>
        </div>
        {{end}}
    </div>
    <div class="footer">
        <p>This email was sent by the CertTrack voucher program.</p>
        <p>You received this because you were selected as a giveaway winner.</p>
    </div>
</body>
</html>`))

// voucherSubject builds the subject line for the winner email.
func voucherSubject(params VoucherEmailParams) string {
	return fmt.Sprintf("Your %s Certification Voucher Is Here!", params.CertificationType)
}

// renderVoucherHTML renders the HTML winner email.
func renderVoucherHTML(params VoucherEmailParams) (string, error) {
	data := struct {
		VoucherEmailParams
		ClassDateDisplay string
	}{
		VoucherEmailParams: params,
		ClassDateDisplay:   params.ClassDate.Format(classDateLayout),
	}

	var buf bytes.Buffer
	if err := voucherTemplate.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderVoucherText renders the plain text version of the winner email.
func renderVoucherText(params VoucherEmailParams) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Congratulations, %s!\n\n", params.WinnerName))
	buf.WriteString(fmt.Sprintf("You won a %s certification voucher.\n\n", params.CertificationType))
	buf.WriteString(fmt.Sprintf("Voucher code: %s\n\n", params.VoucherCode))
	buf.WriteString("Your class session:\n")
	buf.WriteString(fmt.Sprintf("  Date: %s\n", params.ClassDate.Format(classDateLayout)))
	buf.WriteString(fmt.Sprintf("  Time: %s\n", params.ClassTime))
	buf.WriteString(fmt.Sprintf("  Format: %s\n", params.LocationFormat))
	buf.WriteString(fmt.Sprintf("  Instructor: %s\n\n", params.InstructorName))

	if params.RegistrationLink != "" {
		buf.WriteString(fmt.Sprintf("Register here: %s\n\n", params.RegistrationLink))
	}

	buf.WriteString("Keep this email safe: anyone with the code can redeem it.\n\n")
	buf.WriteString("Best regards,\nThe CertTrack Team\n")

	return buf.String()
}

// OperatorAlertBody formats the body of a resolution-failure alert.
func OperatorAlertBody(reason, certificationType, winnerEmail string) string {
	return fmt.Sprintf(
		"%s\n\nCertification type: %s\nWinner email: %s\n\nThe winner has NOT been notified. Add inventory and re-send the webhook.\n",
		reason, certificationType, winnerEmail)
}
