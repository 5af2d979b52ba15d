package services

import (
	"errors"
	"strings"
	"testing"

	"ledquote/models"
)

func TestNormalizeContactListCollectionPriority(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantID string
	}{
		{"items", `{"items":[{"id":"1"}],"contacts":[{"id":"2"}],"data":[{"id":"3"}]}`, "1"},
		{"contacts", `{"contacts":[{"id":"2"}],"data":[{"id":"3"}]}`, "2"},
		{"data", `{"data":[{"id":"3"}]}`, "3"},
		{"root", `[{"id":"4"}]`, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts, err := NormalizeContactList([]byte(tt.body))
			if err != nil {
				t.Fatalf("NormalizeContactList returned error: %v", err)
			}
			if len(contacts) != 1 || contacts[0].ID != tt.wantID {
				t.Fatalf("expected contact %s, got %+v", tt.wantID, contacts)
			}
		})
	}
}

func TestNormalizeContactListEmptyItemsWins(t *testing.T) {
	contacts, err := NormalizeContactList([]byte(`{"items":[],"data":[{"id":"3"}]}`))
	if err != nil {
		t.Fatalf("NormalizeContactList returned error: %v", err)
	}
	if len(contacts) != 0 {
		t.Fatalf("a present items key must be used even when empty, got %+v", contacts)
	}
}

func TestNormalizeContactListMalformed(t *testing.T) {
	for _, body := range []string{`not json`, `{"total":3}`, `"text"`, ``} {
		if _, err := NormalizeContactList([]byte(body)); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("%q: expected ErrMalformedResponse, got %v", body, err)
		}
	}
}

func TestNormalizeContactAliases(t *testing.T) {
	snake := NormalizeContact(map[string]any{
		"id": "1", "first_name": "Jean", "last_name": "Dupont", "phone_number": "0600000000",
	})
	camel := NormalizeContact(map[string]any{
		"id": "1", "firstName": "Jean", "lastName": "Dupont", "phoneNumber": "0600000000",
	})
	if snake != camel {
		t.Fatalf("snake and camel spellings should normalize alike:\n%+v\n%+v", snake, camel)
	}
	preferred := NormalizeContact(map[string]any{"phone": "01", "phone_number": "02"})
	if preferred.Phone != "01" {
		t.Fatalf("phone should win over phone_number, got %q", preferred.Phone)
	}
	fallback := NormalizeContact(map[string]any{"first_name": "", "firstName": "Ana"})
	if fallback.FirstName != "Ana" {
		t.Fatalf("empty alias should fall through, got %q", fallback.FirstName)
	}
}

func TestNormalizeContactAddressShapes(t *testing.T) {
	want := models.Address{Street: "3 place Bellecour", PostalCode: "69002", City: "Lyon", Country: "France"}

	nested := NormalizeContact(map[string]any{
		"address": map[string]any{"street": "3 place Bellecour", "postalCode": "69002", "city": "Lyon", "country": "France"},
	})
	if nested.Address != want {
		t.Fatalf("nested: expected %+v, got %+v", want, nested.Address)
	}

	flat := NormalizeContact(map[string]any{
		"street": "3 place Bellecour", "postal_code": "69002", "city": "Lyon", "country": "France",
	})
	if flat.Address != want {
		t.Fatalf("flattened: expected %+v, got %+v", want, flat.Address)
	}

	plain := NormalizeContact(map[string]any{"address": "3 place Bellecour", "postalCode": "69002", "city": "Lyon", "country": "France"})
	if plain.Address != want {
		t.Fatalf("address string: expected %+v, got %+v", want, plain.Address)
	}
}

func TestNormalizeContactDetailWrappers(t *testing.T) {
	for _, body := range []string{
		`{"contact":{"id":"9","company":"ACME"}}`,
		`{"data":{"id":"9","company":"ACME"}}`,
		`{"id":"9","company":"ACME"}`,
	} {
		c, err := NormalizeContactDetail([]byte(body))
		if err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if c.ID != "9" || c.Company != "ACME" {
			t.Fatalf("%s: unexpected contact %+v", body, c)
		}
	}
	if _, err := NormalizeContactDetail([]byte(`[1,2]`)); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse for a list, got %v", err)
	}
}

func TestContactPresentation(t *testing.T) {
	c := models.Contact{
		FirstName: "Jean", LastName: "Dupont", Company: "ACME",
		Address: models.Address{Street: "1 rue Haute", PostalCode: "75001", City: "Paris", Country: "France"},
	}
	view := models.NewContactView(c)
	if view.DisplayName != "ACME" {
		t.Fatalf("expected company as display name, got %q", view.DisplayName)
	}
	if view.ClientName != "Jean Dupont - ACME" {
		t.Fatalf("unexpected client name %q", view.ClientName)
	}
	if view.ClientAddress != strings.Join([]string{"1 rue Haute", "75001 Paris", "France"}, "\n") {
		t.Fatalf("unexpected client address %q", view.ClientAddress)
	}

	person := models.Contact{FirstName: "Jean", LastName: "Dupont", Address: models.Address{City: "Paris"}}
	if person.DisplayName() != "Jean Dupont" || person.ClientName() != "Jean Dupont" {
		t.Fatalf("unexpected names for a person without company")
	}
	if got := person.Address.Lines(); len(got) != 1 || got[0] != "Paris" {
		t.Fatalf("unexpected address lines %v", got)
	}
}
