package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/core/ports"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

func TestRegister_AssignsSequentialIDsAndOwnerRole(t *testing.T) {
	f := newFixture(t)

	first := f.register(t, "alice@example.com", "Alice", "Smith")
	second := f.register(t, "bob@example.com", "Bob", "Jones")

	if first.UserID != 1 || second.UserID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.UserID, second.UserID)
	}

	_ = f.store.View(func(st *store.State) error {
		if st.Users[1].Role != domain.RoleOwner {
			t.Errorf("first user should be the platform owner")
		}
		if st.Users[2].Role != domain.RoleMember {
			t.Errorf("second user should be a plain member")
		}
		return nil
	})
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name  string
		input ports.RegisterInput
	}{
		{"bad email", ports.RegisterInput{Email: "not-an-email", Password: "password123", NameFirst: "A", NameLast: "B"}},
		{"short password", ports.RegisterInput{Email: "a@example.com", Password: "five5", NameFirst: "A", NameLast: "B"}},
		{"empty first name", ports.RegisterInput{Email: "a@example.com", Password: "password123", NameFirst: "", NameLast: "B"}},
		{"long last name", ports.RegisterInput{Email: "a@example.com", Password: "password123", NameFirst: "A", NameLast: strings.Repeat("b", 51)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.auth.Register(context.Background(), tc.input)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "Alice", "Smith")

	_, err := f.auth.Register(context.Background(), ports.RegisterInput{
		Email: "alice@example.com", Password: "password123", NameFirst: "Other", NameLast: "Alice",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRegister_HandleDerivation(t *testing.T) {
	f := newFixture(t)
	f.register(t, "h1@example.com", "Hayden", "Jacobs")
	f.register(t, "h2@example.com", "Hayden", "Jacobs")

	// Name casing carries into the handle untouched; only truncation and
	// the collision suffix alter the concatenation.
	_ = f.store.View(func(st *store.State) error {
		if st.Users[1].Handle != "HaydenJacobs" {
			t.Errorf("expected HaydenJacobs, got %q", st.Users[1].Handle)
		}
		if st.Users[2].Handle != "HaydenJacobs1" {
			t.Errorf("expected HaydenJacobs1, got %q", st.Users[2].Handle)
		}
		return nil
	})
}

func TestRegister_HandleTruncatedToTwentyRunes(t *testing.T) {
	f := newFixture(t)
	f.register(t, "long@example.com", "Abcdefghijklm", "Nopqrstuvwxyz")

	_ = f.store.View(func(st *store.State) error {
		if got := st.Users[1].Handle; got != "AbcdefghijklmNopqrst" {
			t.Errorf("expected 20-rune truncation, got %q", got)
		}
		return nil
	})
}

func TestRegister_HandlesStayUniqueUnderCollisions(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.register(t, fmt.Sprintf("u%d@example.com", i), "Hayden", "Jacobs")
	}

	_ = f.store.View(func(st *store.State) error {
		seen := map[string]int{}
		for id, u := range st.Users {
			if utf8.RuneCountInString(u.Handle) > 20 {
				t.Errorf("handle %q exceeds 20 runes", u.Handle)
			}
			if prev, dup := seen[u.Handle]; dup {
				t.Errorf("handle %q assigned to both user %d and %d", u.Handle, prev, id)
			}
			seen[u.Handle] = id
		}
		return nil
	})
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	reg := f.register(t, "alice@example.com", "Alice", "Smith")

	res, err := f.auth.Login(context.Background(), "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.UserID != reg.UserID {
		t.Fatalf("expected u_id %d, got %d", reg.UserID, res.UserID)
	}

	if _, err := f.auth.Login(context.Background(), "alice@example.com", "wrongpass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("wrong password: expected invalid input, got %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "ghost@example.com", "password123"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("unknown email: expected invalid input, got %v", err)
	}
}

func TestLogout_RevokesCredential(t *testing.T) {
	f := newFixture(t)
	reg := f.register(t, "alice@example.com", "Alice", "Smith")

	ok, err := f.auth.Logout(context.Background(), reg.Token)
	if err != nil || !ok {
		t.Fatalf("expected successful logout, got ok=%v err=%v", ok, err)
	}

	// Already revoked: no-op, reported as unsuccessful.
	ok, err = f.auth.Logout(context.Background(), reg.Token)
	if err != nil || ok {
		t.Fatalf("expected unsuccessful second logout, got ok=%v err=%v", ok, err)
	}

	// The dead credential no longer grants access.
	if _, err := f.channels.Create(context.Background(), reg.Token, "general", true); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized with revoked credential, got %v", err)
	}
}

func TestPasswordReset_Flow(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "Alice", "Smith")

	if err := f.auth.RequestPasswordReset(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("request reset: %v", err)
	}
	code := f.mailer.lastCode(t)
	if len(code) != 20 {
		t.Fatalf("expected 20-character code, got %q", code)
	}

	if err := f.auth.ResetPassword(context.Background(), code, "newpassword"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "alice@example.com", "newpassword"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	// Single use: the consumed code is dead.
	if err := f.auth.ResetPassword(context.Background(), code, "anotherpass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input on reused code, got %v", err)
	}
}

func TestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "Alice", "Smith")

	if err := f.auth.RequestPasswordReset(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("expected silent success, got %v", err)
	}
	if len(f.mailer.codes) != 0 {
		t.Fatalf("no code should be delivered for an unknown email")
	}
}

func TestPasswordReset_NewRequestInvalidatesOldCode(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "Alice", "Smith")

	_ = f.auth.RequestPasswordReset(context.Background(), "alice@example.com")
	old := f.mailer.lastCode(t)
	_ = f.auth.RequestPasswordReset(context.Background(), "alice@example.com")
	fresh := f.mailer.lastCode(t)

	if err := f.auth.ResetPassword(context.Background(), old, "newpassword"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("superseded code should be dead, got %v", err)
	}
	if err := f.auth.ResetPassword(context.Background(), fresh, "newpassword"); err != nil {
		t.Fatalf("fresh code should work: %v", err)
	}
}

func TestPasswordReset_ShortNewPasswordKeepsCodeCheckFirst(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice@example.com", "Alice", "Smith")
	_ = f.auth.RequestPasswordReset(context.Background(), "alice@example.com")
	code := f.mailer.lastCode(t)

	if err := f.auth.ResetPassword(context.Background(), code, "tiny"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input for short password, got %v", err)
	}
}
