package usecase

import "time"

type CreateLeadOutput struct {
	Mensaje string `json:"mensaje"`
}

type ListLeadsInput struct {
	Page  string
	Limit string
}

type UpdateLeadStatusInput struct {
	ID     string `json:"-"`
	Estado string `json:"estado"`
}

type UpdateLeadStatusOutput struct {
	Mensaje string `json:"mensaje"`
}

type LoginOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
