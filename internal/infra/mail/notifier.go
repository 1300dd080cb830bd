package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/landing/contacto-api/internal/entity"
)

//go:embed templates/lead_alert.html
var templatesFS embed.FS

var leadAlertTmpl = template.Must(template.ParseFS(templatesFS, "templates/lead_alert.html"))

// Notifier emails the staff inbox whenever a lead is stored.
type Notifier struct {
	transport Transport
	from      string
	to        []string
}

func NewNotifier(transport Transport, from string, to ...string) *Notifier {
	return &Notifier{transport: transport, from: from, to: to}
}

func (n *Notifier) NotifyNewLead(ctx context.Context, lead *entity.Lead) error {
	body, err := RenderLeadAlert(lead)
	if err != nil {
		return err
	}

	return n.transport.Send(ctx, Message{
		From:    n.from,
		To:      n.to,
		Subject: fmt.Sprintf("Nuevo lead: %s", lead.Nombre),
		HTML:    body,
	})
}

// RenderLeadAlert produces the HTML body. User input is escaped by
// html/template.
func RenderLeadAlert(lead *entity.Lead) (string, error) {
	var body bytes.Buffer
	err := leadAlertTmpl.Execute(&body, leadAlertData{
		ID:       lead.ID,
		Nombre:   lead.Nombre,
		Telefono: lead.Telefono,
		Correo:   lead.Correo,
		Mensaje:  lead.Mensaje,
	})
	if err != nil {
		return "", fmt.Errorf("render lead alert: %w", err)
	}
	return body.String(), nil
}
