package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"ledquote/models"
)

// Keys that may hold the contact list of a search answer, by priority.
// When none is present the root itself must be the list.
var collectionKeys = []string{"items", "contacts", "data"}

// Keys that may wrap a single contact in a detail answer, by priority.
var detailKeys = []string{"contact", "data"}

// Accepted spellings of each contact field, by priority.
var contactAliases = struct {
	ID, FirstName, LastName, Company, Email, Phone []string
}{
	ID:        []string{"id"},
	FirstName: []string{"first_name", "firstName"},
	LastName:  []string{"last_name", "lastName"},
	Company:   []string{"company"},
	Email:     []string{"email"},
	Phone:     []string{"phone", "phone_number", "phoneNumber"},
}

// Address spellings, shared by the nested object and the flattened form.
// The flattened street may also be carried by a plain "address" string.
var addressAliases = struct {
	Street, FlatStreet, PostalCode, City, Country []string
}{
	Street:     []string{"street"},
	FlatStreet: []string{"street", "address"},
	PostalCode: []string{"postal_code", "postalCode"},
	City:       []string{"city"},
	Country:    []string{"country"},
}

func decodeJSON(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}

// NormalizeContactList extracts and normalizes the contacts of a search
// answer body.
func NormalizeContactList(body []byte) ([]models.Contact, error) {
	root, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	list, ok := contactCollection(root)
	if !ok {
		return nil, fmt.Errorf("%w: no contact collection", ErrMalformedResponse)
	}
	contacts := make([]models.Contact, 0, len(list))
	for _, raw := range list {
		record, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		contacts = append(contacts, NormalizeContact(record))
	}
	return contacts, nil
}

func contactCollection(root any) ([]any, bool) {
	if record, ok := root.(map[string]any); ok {
		for _, key := range collectionKeys {
			if list, ok := record[key].([]any); ok {
				return list, true
			}
		}
		return nil, false
	}
	list, ok := root.([]any)
	return list, ok
}

// NormalizeContactDetail extracts the contact of a detail answer body.
func NormalizeContactDetail(body []byte) (models.Contact, error) {
	root, err := decodeJSON(body)
	if err != nil {
		return models.Contact{}, err
	}
	record, ok := root.(map[string]any)
	if !ok {
		return models.Contact{}, fmt.Errorf("%w: contact is not an object", ErrMalformedResponse)
	}
	for _, key := range detailKeys {
		if inner, ok := record[key].(map[string]any); ok {
			return NormalizeContact(inner), nil
		}
	}
	return NormalizeContact(record), nil
}

// NormalizeContact maps one CRM record onto Contact.
func NormalizeContact(record map[string]any) models.Contact {
	c := models.Contact{
		ID:        firstString(record, contactAliases.ID),
		FirstName: firstString(record, contactAliases.FirstName),
		LastName:  firstString(record, contactAliases.LastName),
		Company:   firstString(record, contactAliases.Company),
		Email:     firstString(record, contactAliases.Email),
		Phone:     firstString(record, contactAliases.Phone),
	}
	if nested, ok := record["address"].(map[string]any); ok {
		c.Address = models.Address{
			Street:     firstString(nested, addressAliases.Street),
			PostalCode: firstString(nested, addressAliases.PostalCode),
			City:       firstString(nested, addressAliases.City),
			Country:    firstString(nested, addressAliases.Country),
		}
		return c
	}
	c.Address = models.Address{
		Street:     firstString(record, addressAliases.FlatStreet),
		PostalCode: firstString(record, addressAliases.PostalCode),
		City:       firstString(record, addressAliases.City),
		Country:    firstString(record, addressAliases.Country),
	}
	return c
}

// firstString returns the first non-empty alias value. Numbers are
// rendered as written (ids and postal codes are often numeric).
func firstString(record map[string]any, keys []string) string {
	for _, key := range keys {
		var s string
		switch v := record[key].(type) {
		case string:
			s = v
		case json.Number:
			s = v.String()
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
