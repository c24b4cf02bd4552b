package model

import "time"

// Company is a producer whose products are registered in the catalog.
type Company struct {
	ID            uint64    `json:"id"`             // companies.id
	Name          string    `json:"name"`           // companies.name
	Email         string    `json:"email"`          // companies.email
	ContactPerson string    `json:"contact_person,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
