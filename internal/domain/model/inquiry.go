package model

import "time"

// Inquiry is a contact form submission.
type Inquiry struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}
