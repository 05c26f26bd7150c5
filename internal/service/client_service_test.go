package service

import (
	"net/http"
	"testing"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
)

func TestClientCreateOptionalFields(t *testing.T) {
	svc := newServices(newTestDB(t))

	client, err := svc.clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if client.Email != nil || client.Address != nil {
		t.Fatal("omitted optional fields should stay nil")
	}
	if client.RegistrationDate.IsZero() {
		t.Fatal("registration date should be set on insert")
	}
}

func TestClientCreateDuplicateIdentityCard(t *testing.T) {
	svc := newServices(newTestDB(t))

	if _, err := svc.clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.clients.Create("Pedro", "Gomez", "12345678", "3007654321", nil, nil)
	if apperr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apperr.StatusOf(err))
	}
}

func TestClientSearchByIdentityCard(t *testing.T) {
	svc := newServices(newTestDB(t))

	created, err := svc.clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.clients.SearchByIdentityCard("12345678")
	if err != nil {
		t.Fatalf("SearchByIdentityCard: %v", err)
	}
	if got.ID != created.ID {
		t.Fatalf("found wrong client: %d", got.ID)
	}

	// Malformed numbers are rejected before the lookup.
	if _, err := svc.clients.SearchByIdentityCard("12ab"); apperr.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("malformed status = %d, want 400", apperr.StatusOf(err))
	}
	if _, err := svc.clients.SearchByIdentityCard("99999999"); apperr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("unknown status = %d, want 404", apperr.StatusOf(err))
	}
}

func TestClientPartialUpdate(t *testing.T) {
	svc := newServices(newTestDB(t))

	client, err := svc.clients.Create("Carlos", "Perez", "12345678", "3001234567", nil, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	email := "carlos@correo.com"
	updated, err := svc.clients.Update(client.ID, ClientPatch{Email: &email})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email == nil || *updated.Email != email {
		t.Fatalf("Email not applied: %v", updated.Email)
	}
	if updated.IdentityCard != "12345678" {
		t.Fatal("untouched identity card must keep its value")
	}
}
