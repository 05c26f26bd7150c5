package service

import (
	"net/http"
	"testing"

	"github.com/JeansCordoba/Fruteria/internal/apperr"
	"github.com/JeansCordoba/Fruteria/internal/model"
)

func seedRole(t *testing.T, svc *services, name string) *model.Role {
	t.Helper()
	role, err := svc.roles.Create(name, nil)
	if err != nil {
		t.Fatalf("seed role %q: %v", name, err)
	}
	return role
}

func TestUserCreateDerivesUsername(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	user, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Username != "ana.lopez" {
		t.Fatalf("Username = %q, want %q", user.Username, "ana.lopez")
	}
	if user.Password == "secret" {
		t.Fatal("password must be stored hashed")
	}
	if !user.IsActive {
		t.Fatal("new users start active")
	}
}

func TestUserCreateUsernameCollisionSuffix(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	if _, err := svc.users.Create("Ana", "Lopez", "ana1@fruteria.com", "secret", role.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.users.Create("Ana", "Lopez", "ana2@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if second.Username != "ana.lopez.1" {
		t.Fatalf("Username = %q, want %q", second.Username, "ana.lopez.1")
	}

	third, err := svc.users.Create("Ana", "Lopez", "ana3@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if third.Username != "ana.lopez.2" {
		t.Fatalf("Username = %q, want %q", third.Username, "ana.lopez.2")
	}
}

func TestUserCreateSlugifiesCompoundNames(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	user, err := svc.users.Create("Maria Jose", "De La Cruz", "mj@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.Username != "maria.jose.de.la.cruz" {
		t.Fatalf("Username = %q, want %q", user.Username, "maria.jose.de.la.cruz")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	if _, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.users.Create("Bea", "Diaz", "ana@fruteria.com", "secret", role.ID)
	if apperr.StatusOf(err) != http.StatusConflict {
		t.Fatalf("status = %d, want 409", apperr.StatusOf(err))
	}
}

func TestUserCreateUnknownRole(t *testing.T) {
	svc := newServices(newTestDB(t))

	_, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", 99)
	if apperr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apperr.StatusOf(err))
	}
}

func TestUserUpdateKeepsUsername(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	user, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	newName := "Anita"
	updated, err := svc.users.Update(user.ID, UserPatch{Name: &newName})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Anita" {
		t.Fatalf("Name = %q, want %q", updated.Name, "Anita")
	}
	if updated.Username != "ana.lopez" {
		t.Fatalf("Username changed to %q; it must never change", updated.Username)
	}
}

func TestUserAuthenticate(t *testing.T) {
	svc := newServices(newTestDB(t))
	role := seedRole(t, svc, "seller")

	user, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", role.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	authed, err := svc.users.Authenticate("ana.lopez", "secret")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("authenticated wrong user: %d", authed.ID)
	}

	if _, err := svc.users.Authenticate("ana.lopez", "wrong"); apperr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", apperr.StatusOf(err))
	}
	if _, err := svc.users.Authenticate("nobody", "secret"); apperr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("unknown user status = %d, want 401", apperr.StatusOf(err))
	}

	// Deactivated accounts cannot log in, with the same opaque error.
	inactive := false
	if _, err := svc.users.Update(user.ID, UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if _, err := svc.users.Authenticate("ana.lopez", "secret"); apperr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("inactive user status = %d, want 401", apperr.StatusOf(err))
	}
}

func TestUsersByRole(t *testing.T) {
	svc := newServices(newTestDB(t))
	seller := seedRole(t, svc, "seller")
	admin := seedRole(t, svc, "admin")

	if _, err := svc.users.Create("Ana", "Lopez", "ana@fruteria.com", "secret", seller.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.users.Create("Bea", "Diaz", "bea@fruteria.com", "secret", admin.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}

	users, err := svc.users.ByRole(seller.ID)
	if err != nil {
		t.Fatalf("ByRole: %v", err)
	}
	if len(users) != 1 || users[0].Username != "ana.lopez" {
		t.Fatalf("unexpected users: %+v", users)
	}

	if _, err := svc.users.ByRole(99); apperr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("unknown role status = %d, want 404", apperr.StatusOf(err))
	}
}
