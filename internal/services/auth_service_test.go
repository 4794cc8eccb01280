package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"telechat/config"
	"telechat/internal/codes"
	"telechat/internal/domain/user"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

func newTestAuthService(repo *mockUserRepo) *AuthService {
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTExpiryMin: 60,
	}
	return NewAuthService(repo, codes.NewMemoryStore(time.Minute), nil, cfg)
}

// codeFromMessage extracts the inline code from the demo-mode message.
func codeFromMessage(t *testing.T, msg string) string {
	t.Helper()
	code := strings.TrimPrefix(msg, "SMS код: ")
	if code == msg || len(code) != 5 {
		t.Fatalf("unexpected send code message: %q", msg)
	}
	return code
}

func TestSendCodeThenVerifyCreatesUser(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	sent, err := svc.SendCode(ctx, "+79990000001")
	if err != nil {
		t.Fatalf("SendCode: %v", err)
	}
	if sent.Delivered {
		t.Fatal("expected inline code without a delivery channel")
	}
	code := codeFromMessage(t, sent.Message)

	result, err := svc.VerifyCode(ctx, "+79990000001", code)
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if result.AccessToken == "" {
		t.Fatal("expected a signed access token")
	}

	u, err := repo.GetByPhone(ctx, "+79990000001")
	if err != nil {
		t.Fatalf("user not created: %v", err)
	}
	if u.ID != result.UserID {
		t.Fatalf("result user id %s, stored %s", result.UserID, u.ID)
	}
	if u.Username != "+79990000001" {
		t.Fatalf("expected phone as initial username, got %q", u.Username)
	}

	claims, err := svc.ParseAccessToken(result.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != result.UserID.String() {
		t.Fatalf("token subject %s, want %s", claims.UserID, result.UserID)
	}
}

func TestVerifyCodeIsSingleUse(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	sent, err := svc.SendCode(ctx, "+79990000002")
	if err != nil {
		t.Fatalf("SendCode: %v", err)
	}
	code := codeFromMessage(t, sent.Message)

	if _, err := svc.VerifyCode(ctx, "+79990000002", code); err != nil {
		t.Fatalf("first verify: %v", err)
	}

	_, err = svc.VerifyCode(ctx, "+79990000002", code)
	if !errors.Is(err, telechat_errors.ErrUnauthorized) {
		t.Fatalf("second verify with consumed code: got %v, want ErrUnauthorized", err)
	}
}

func TestVerifyWrongCodeKeepsStoredCode(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	sent, err := svc.SendCode(ctx, "+79990000003")
	if err != nil {
		t.Fatalf("SendCode: %v", err)
	}
	code := codeFromMessage(t, sent.Message)

	wrong := "00000"
	if wrong == code {
		wrong = "00001"
	}
	if _, err := svc.VerifyCode(ctx, "+79990000003", wrong); !errors.Is(err, telechat_errors.ErrUnauthorized) {
		t.Fatalf("wrong code: got %v, want ErrUnauthorized", err)
	}

	// A failed attempt must not burn the real code.
	if _, err := svc.VerifyCode(ctx, "+79990000003", code); err != nil {
		t.Fatalf("correct code after failed attempt: %v", err)
	}
}

func TestSendCodeOverwritesPrevious(t *testing.T) {
	repo := newMockUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	first, err := svc.SendCode(ctx, "+79990000004")
	if err != nil {
		t.Fatalf("first SendCode: %v", err)
	}
	firstCode := codeFromMessage(t, first.Message)

	var secondCode string
	// Regenerate until the codes differ so the overwrite is observable.
	for i := 0; i < 50; i++ {
		second, err := svc.SendCode(ctx, "+79990000004")
		if err != nil {
			t.Fatalf("second SendCode: %v", err)
		}
		secondCode = codeFromMessage(t, second.Message)
		if secondCode != firstCode {
			break
		}
	}
	if secondCode == firstCode {
		t.Fatal("could not obtain a distinct second code")
	}

	if _, err := svc.VerifyCode(ctx, "+79990000004", firstCode); !errors.Is(err, telechat_errors.ErrUnauthorized) {
		t.Fatalf("stale code: got %v, want ErrUnauthorized", err)
	}
	if _, err := svc.VerifyCode(ctx, "+79990000004", secondCode); err != nil {
		t.Fatalf("fresh code: %v", err)
	}
}

func TestVerifyExistingUserUpdatesLastSeen(t *testing.T) {
	repo := newMockUserRepo()
	existing := user.User{
		ID:       uuid.New(),
		Phone:    "+79990000005",
		Username: "existing",
	}
	repo.add(existing)

	svc := newTestAuthService(repo)
	ctx := context.Background()

	sent, err := svc.SendCode(ctx, "+79990000005")
	if err != nil {
		t.Fatalf("SendCode: %v", err)
	}
	result, err := svc.VerifyCode(ctx, "+79990000005", codeFromMessage(t, sent.Message))
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}

	if result.UserID != existing.ID {
		t.Fatalf("expected existing user %s, got %s", existing.ID, result.UserID)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected no new user rows, have %d", len(repo.users))
	}
	if repo.lastSeenCalls != 1 {
		t.Fatalf("expected one last-seen update, got %d", repo.lastSeenCalls)
	}
}

func TestVerifyWithoutIssuedCode(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.VerifyCode(context.Background(), "+79990000006", "12345")
	if !errors.Is(err, telechat_errors.ErrUnauthorized) {
		t.Fatalf("got %v, want ErrUnauthorized", err)
	}
}

func TestSendCodeEmptyPhone(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	_, err := svc.SendCode(context.Background(), "")
	if !errors.Is(err, telechat_errors.ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newMockUserRepo())

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ParseAccessToken(token); !errors.Is(err, telechat_errors.ErrUnauthorized) {
			t.Fatalf("token %q: got %v, want ErrUnauthorized", token, err)
		}
	}
}
