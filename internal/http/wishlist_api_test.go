package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"arcticfresh/internal/domain"
)

type wishlistData struct {
	Items      []string `json:"items"`
	Count      int      `json:"count"`
	Persistent bool     `json:"persistent"`
	Member     *bool    `json:"member"`
}

func TestWishlistSharedAcrossTabs(t *testing.T) {
	env := newTestApp(t, relaxedLimits())
	env.seed(t)

	resp, body := env.call(t, "GET", "/api/wishlist", nil)
	sid := cookieNamed(resp, "sid")
	if sid == nil {
		t.Fatal("first visit should issue a sid cookie")
	}
	if got := decode[wishlistData](t, body.Data); got.Count != 0 || !got.Persistent {
		t.Fatalf("fresh wishlist: %+v", got)
	}

	_, body = env.call(t, "POST", "/api/wishlist/toggle", map[string]string{"ref": "okra"}, sid)
	got := decode[wishlistData](t, body.Data)
	if got.Member == nil || !*got.Member || len(got.Items) != 1 {
		t.Fatalf("toggle on: %+v", got)
	}
	env.call(t, "POST", "/api/wishlist", map[string]string{"ref": "strawberries"}, sid)
	env.call(t, "POST", "/api/wishlist", map[string]string{"ref": "okra"}, sid)

	// a second tab of the same browser sees the same list, in order, without duplicates
	_, body = env.call(t, "GET", "/api/wishlist", nil, sid)
	got = decode[wishlistData](t, body.Data)
	if strings.Join(got.Items, ",") != "okra,strawberries" {
		t.Fatalf("expected okra,strawberries got %v", got.Items)
	}

	// another browser has its own list
	_, body = env.call(t, "GET", "/api/wishlist", nil, &http.Cookie{Name: "sid", Value: "6f1c1d57-8d0c-4a1e-9c39-5b7e1c0b2f11"})
	if got := decode[wishlistData](t, body.Data); got.Count != 0 {
		t.Fatalf("other session should be empty, got %v", got.Items)
	}

	_, body = env.call(t, "GET", "/api/wishlist/products?locale=ar", nil, sid)
	prods := decode[[]domain.Product](t, body.Data)
	if len(prods) != 2 || prods[0].Slug != "okra" || prods[0].Locale != domain.LocaleAR {
		t.Fatalf("resolved products: %+v", prods)
	}

	_, body = env.call(t, "DELETE", "/api/wishlist/okra", nil, sid)
	if got := decode[wishlistData](t, body.Data); strings.Join(got.Items, ",") != "strawberries" {
		t.Fatalf("after remove: %v", got.Items)
	}

	_, body = env.call(t, "DELETE", "/api/wishlist", nil, sid)
	if got := decode[wishlistData](t, body.Data); got.Count != 0 {
		t.Fatalf("after clear: %v", got.Items)
	}
}

func TestWishlistRejectsBadRefs(t *testing.T) {
	env := newTestApp(t, relaxedLimits())
	for _, ref := range []string{"", "../../etc/passwd", "<script>", strings.Repeat("a", 101)} {
		resp, body := env.call(t, "POST", "/api/wishlist/toggle", map[string]string{"ref": ref})
		if resp.StatusCode != http.StatusBadRequest || body.reason() != "ref_invalid" {
			t.Fatalf("%q: expected 400 ref_invalid, got %d %q", ref, resp.StatusCode, body.reason())
		}
	}
}

func TestWishlistStreamSendsSnapshot(t *testing.T) {
	env := newTestApp(t, relaxedLimits())
	done := make(chan struct{})
	close(done)
	env.deps.WishlistHandler.Done = done

	sid := &http.Cookie{Name: "sid", Value: "0b0f6a51-3d55-4d0c-a0ef-9a7b2d6d4c21"}
	env.call(t, "POST", "/api/wishlist", map[string]string{"ref": "okra"}, sid)

	req := httptest.NewRequest("GET", "/api/wishlist/stream", nil)
	req.AddCookie(sid)
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type %q", ct)
	}
	s := readBody(t, resp)
	if !strings.Contains(s, "event: wishlist\n") || !strings.Contains(s, `data: {"items":["okra"]}`) {
		t.Fatalf("expected initial snapshot, got %q", s)
	}
}

func TestWishlistFormToggle(t *testing.T) {
	env := newTestApp(t, relaxedLimits())
	env.seed(t)
	sid := &http.Cookie{Name: "sid", Value: "9a3e2f0c-1b7d-4c55-8e6a-2d4f6b8c0e12"}

	tok := env.csrfToken(t, "/products/green-peas")
	resp := env.postForm(t, "/wishlist/toggle", tok, "ref=green-peas", sid)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("form toggle: expected redirect, got %d", resp.StatusCode)
	}

	req := httptest.NewRequest("GET", "/wishlist", nil)
	req.AddCookie(sid)
	page, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if s := readBody(t, page); !strings.Contains(s, "Green Peas") || !strings.Contains(s, `name="products" value="green-peas"`) {
		t.Fatalf("wishlist page should list peas with a quote form; body=%s", s)
	}
}
