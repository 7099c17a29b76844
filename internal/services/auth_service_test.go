package services_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"arcticfresh/internal/errs"
	"arcticfresh/internal/services"
)

type stubVerifier struct{ ok bool }

func (s stubVerifier) Verify(string, string) bool { return s.ok }

func TestStaticCredentials(t *testing.T) {
	c, err := services.NewStaticCredentials("admin", "s3cret-Pass", "")
	if err != nil {
		t.Fatal(err)
	}
	if !c.Verify("admin", "s3cret-Pass") {
		t.Fatal("valid credentials rejected")
	}
	if c.Verify("admin", "admin123") || c.Verify("root", "s3cret-Pass") || c.Verify("", "") {
		t.Fatal("invalid credentials accepted")
	}
}

func TestStaticCredentials_Hash(t *testing.T) {
	h, err := bcrypt.GenerateFromPassword([]byte("from-hash"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	c, err := services.NewStaticCredentials("ops", "ignored", string(h))
	if err != nil {
		t.Fatal(err)
	}
	if !c.Verify("ops", "from-hash") || c.Verify("ops", "ignored") {
		t.Fatal("hash should take precedence over the plain password")
	}
	if _, err := services.NewStaticCredentials("ops", "", "not-a-bcrypt-hash"); err == nil {
		t.Fatal("malformed hash accepted")
	}
}

func TestStaticCredentials_DisabledWithoutPassword(t *testing.T) {
	c, err := services.NewStaticCredentials("admin", "", "")
	if err != nil {
		t.Fatal(err)
	}
	if c.Enabled() {
		t.Fatal("enabled without a password")
	}
	for _, pw := range []string{"", "admin", "admin123"} {
		if c.Verify("admin", pw) {
			t.Fatalf("login allowed with %q", pw)
		}
	}
}

func TestAuthService_IssueAndParse(t *testing.T) {
	svc := services.NewAuthService(stubVerifier{ok: true}, "test-secret")
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }

	tok, claims, err := svc.Login("admin", "whatever")
	if err != nil {
		t.Fatal(err)
	}
	if claims.Username != "admin" || claims.Role != services.RoleAdmin {
		t.Fatalf("claims = %+v", claims)
	}
	if got := claims.ExpiresAt.Time.Sub(now); got != 7*24*time.Hour {
		t.Fatalf("ttl = %v", got)
	}

	parsed, err := svc.Parse(tok)
	if err != nil {
		t.Fatal(err)
	}
	if parsed.Username != "admin" {
		t.Fatalf("parsed = %+v", parsed)
	}

	svc.Now = func() time.Time { return now.Add(7*24*time.Hour + time.Minute) }
	_, err = svc.Parse(tok)
	if e, ok := errs.As(err); !ok || e.Code != errs.CodeUnauthorized {
		t.Fatalf("expired token: %v", err)
	}
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	svc := services.NewAuthService(stubVerifier{ok: false}, "test-secret")
	if _, _, err := svc.Login("admin", "nope"); err != services.ErrBadCreds {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	svc := services.NewAuthService(stubVerifier{ok: true}, "test-secret")
	other := services.NewAuthService(stubVerifier{ok: true}, "other-secret")
	tok, _, err := other.Issue("admin")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Parse(tok); err == nil {
		t.Fatal("token signed with another secret accepted")
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &services.Claims{
		Username: "admin", Role: services.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Parse(unsigned); err == nil {
		t.Fatal("alg=none token accepted")
	}

	viewer := jwt.NewWithClaims(jwt.SigningMethodHS256, &services.Claims{
		Username: "guest", Role: "viewer",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := viewer.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Parse(signed); err == nil {
		t.Fatal("non-admin role accepted")
	}
	if _, err := svc.Parse(""); err == nil {
		t.Fatal("empty token accepted")
	}
}
