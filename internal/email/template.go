package email

import (
	"html/template"
	"strings"
)

// AlertBodyData feeds the delay-alert email body.
type AlertBodyData struct {
	RollerNumber  string
	Reason        string
	CurrentStatus string
	Line          string
	Position      string
	RecordDate    string
	OverdueDays   int
}

var alertBody = template.Must(template.New("alert").Parse(`
<div style="font-family: 'Roboto', Arial, sans-serif; max-width: 600px; margin: 0 auto; background-color: #f5f5f5; padding: 20px; border-radius: 8px;">
  <div style="background-color: #d32f2f; color: white; padding: 20px; border-radius: 8px 8px 0 0; text-align: center;">
    <h1 style="margin: 0; font-size: 24px; text-transform: uppercase; letter-spacing: 1px;">Delay alert for roller</h1>
    <p style="margin: 5px 0 0; opacity: 0.9;">{{.Reason}}</p>
  </div>

  <div style="background-color: white; padding: 30px; border-radius: 0 0 8px 8px;">
    <div style="text-align: center; margin-bottom: 25px;">
      <p style="color: #666; font-size: 14px; margin-bottom: 5px;">Roller Number</p>
      <h2 style="color: #333; font-size: 32px; margin: 0; font-weight: 700;">{{.RollerNumber}}</h2>
      <div style="display: inline-block; background-color: #ffebee; color: #d32f2f; padding: 5px 15px; border-radius: 15px; font-size: 12px; font-weight: bold; margin-top: 10px;">
        Overdue by {{.OverdueDays}} days
      </div>
    </div>

    <table style="width: 100%; border-collapse: collapse; margin-bottom: 25px;">
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 12px 0; color: #666;">Current Status</td>
        <td style="padding: 12px 0; text-align: right; font-weight: 600; color: #333;">{{.CurrentStatus}}</td>
      </tr>
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 12px 0; color: #666;">Production Line</td>
        <td style="padding: 12px 0; text-align: right; font-weight: 600; color: #333;">{{.Line}}</td>
      </tr>
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 12px 0; color: #666;">Position</td>
        <td style="padding: 12px 0; text-align: right; font-weight: 600; color: #333;">{{.Position}}</td>
      </tr>
      <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 12px 0; color: #666;">Record Date</td>
        <td style="padding: 12px 0; text-align: right; font-weight: 600; color: #333;">{{.RecordDate}}</td>
      </tr>
    </table>
  </div>

  <div style="text-align: center; margin-top: 20px; color: #999; font-size: 12px;">
    <p>Roller Management System &bull; Automated Alert</p>
  </div>
</div>
`))

// RenderAlertBody renders the HTML notification body.
func RenderAlertBody(d AlertBodyData) (string, error) {
	if d.RollerNumber == "" {
		d.RollerNumber = "N/A"
	}
	if d.Line == "" {
		d.Line = "N/A"
	}
	if d.Position == "" {
		d.Position = "N/A"
	}
	if d.RecordDate == "" {
		d.RecordDate = "N/A"
	}
	var sb strings.Builder
	if err := alertBody.Execute(&sb, d); err != nil {
		return "", err
	}
	return sb.String(), nil
}
