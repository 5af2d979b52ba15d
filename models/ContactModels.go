package models

import (
	"strings"
)

// Address is the normalized postal address of a CRM contact.
type Address struct {
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Lines formats the address the way the client form expects it:
// street, then "postal city", then country. Empty parts are skipped.
func (a Address) Lines() []string {
	var lines []string
	if a.Street != "" {
		lines = append(lines, a.Street)
	}
	if a.PostalCode != "" || a.City != "" {
		lines = append(lines, strings.TrimSpace(a.PostalCode+" "+a.City))
	}
	if a.Country != "" {
		lines = append(lines, a.Country)
	}
	return lines
}

// Contact is a KARLIA contact after alias normalization.
type Contact struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName,omitempty"`
	LastName  string  `json:"lastName,omitempty"`
	Company   string  `json:"company,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// DisplayName is the headline used in search results: the company when
// known, the person otherwise.
func (c Contact) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.FullName()
}

// ClientName is the value pre-filled into the quote's client field.
func (c Contact) ClientName() string {
	if c.Company != "" {
		return c.FullName() + " - " + c.Company
	}
	return c.FullName()
}

// ContactView is the JSON shape served by the normalized contact endpoints.
type ContactView struct {
	Contact
	DisplayName   string `json:"displayName"`
	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
}

func NewContactView(c Contact) ContactView {
	return ContactView{
		Contact:       c,
		DisplayName:   c.DisplayName(),
		ClientName:    c.ClientName(),
		ClientAddress: strings.Join(c.Address.Lines(), "\n"),
	}
}

// RelayError is the envelope returned by the contact relay when the
// upstream call fails. Code is the upstream status, 0 for transport errors.
type RelayError struct {
	Error   string `json:"error" example:"Erreur lors de la communication avec KARLIA"`
	Code    int    `json:"code" example:"500"`
	Details string `json:"details" example:""`
}

// ProbeStatus is the outcome of the last scheduled CRM connectivity check.
type ProbeStatus struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode,omitempty"`
	Message    string `json:"message,omitempty"`
	CheckedAt  string `json:"checkedAt,omitempty"`
	LatencyMs  int64  `json:"latencyMs,omitempty"`
}

// ContactListResponse is the body of the normalized search endpoint.
type ContactListResponse struct {
	Items []ContactView `json:"items"`
}
