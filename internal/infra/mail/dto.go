package mail

import "context"

type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Transport delivers a rendered message. Implemented by the SMTP sender and
// the email API client.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

type leadAlertData struct {
	ID       int64
	Nombre   string
	Telefono string
	Correo   string
	Mensaje  string
}
