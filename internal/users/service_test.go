package users

import (
	"context"
	"testing"
)

func TestUpsertFromAuth_NeverGrantsAdmin(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "a@example.com", IsAdmin: true})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.IsAdmin {
		t.Fatal("the auth payload must not be able to grant admin")
	}
}

func TestUpsertFromAuth_PreservesAdminAndCreatedAt(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "a@example.com", FullName: "Aya"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := svc.SetAdmin(ctx, "google:1", true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	first, _ := svc.GetByID(ctx, "google:1")

	// A later login refreshes the profile but must not touch the role.
	if err := svc.UpsertFromAuth(ctx, User{ID: "google:1", Email: "a@example.com", FullName: "Aya S."}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, _ := svc.GetByID(ctx, "google:1")
	if !got.IsAdmin {
		t.Fatal("re-login must not revoke admin")
	}
	if got.FullName != "Aya S." {
		t.Fatalf("profile not refreshed: %q", got.FullName)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("re-login must keep the original creation time")
	}
}

func TestUpsertFromAuth_RequiresIDAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1"}); err == nil {
		t.Fatal("expected an error without an email")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{Email: "a@example.com"}); err == nil {
		t.Fatal("expected an error without an id")
	}
}

func TestIsAdmin_UnknownUserIsNotAdmin(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	isAdmin, err := svc.IsAdmin(context.Background(), "missing")
	if err != nil {
		t.Fatalf("unknown users must not error the check: %v", err)
	}
	if isAdmin {
		t.Fatal("unknown users are never admins")
	}
}

func TestIsAdmin_ReadsFresh(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	if err := svc.UpsertFromAuth(ctx, User{ID: "u1", Email: "a@example.com"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.SetAdmin(ctx, "u1", true); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if isAdmin, _ := svc.IsAdmin(ctx, "u1"); !isAdmin {
		t.Fatal("expected admin after promotion")
	}
	if err := svc.SetAdmin(ctx, "u1", false); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if isAdmin, _ := svc.IsAdmin(ctx, "u1"); isAdmin {
		t.Fatal("demotion must take effect on the next check")
	}
}
