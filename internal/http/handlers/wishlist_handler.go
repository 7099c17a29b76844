package handlers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"arcticfresh/internal/errs"
	applog "arcticfresh/internal/log"
	"arcticfresh/internal/services"
	"arcticfresh/internal/validate"
)

// StreamHeartbeat is the comment interval that keeps idle event streams open
// through proxies and detects gone clients.
const StreamHeartbeat = 25 * time.Second

type WishlistHandler struct {
	Wish   *services.WishlistService
	Secure bool
	// Done ends open event streams when closed.
	Done <-chan struct{}
}

type refBody struct {
	Ref string `json:"ref" form:"ref"`
}

func wishlistState(items []string, persistent bool) fiber.Map {
	if items == nil {
		items = []string{}
	}
	return fiber.Map{"items": items, "count": len(items), "persistent": persistent}
}

func (h *WishlistHandler) parseRef(c *fiber.Ctx) (string, error) {
	var body refBody
	if err := c.BodyParser(&body); err != nil {
		return "", errs.Validation("invalid_body", "", "Request body is not valid")
	}
	ref, ok := validate.Ref(body.Ref)
	if !ok {
		return "", errs.Validation("ref_invalid", "ref", "Invalid product reference")
	}
	return ref, nil
}

// GET /api/wishlist
func (h *WishlistHandler) Get(c *fiber.Ctx) error {
	st := h.Wish.For(ensureSID(c, h.Secure))
	return success(c, fiber.StatusOK, "", wishlistState(st.Items(), st.Persistent()), nil)
}

// POST /api/wishlist
func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	ref, err := h.parseRef(c)
	if err != nil {
		return fail(c, err)
	}
	st := h.Wish.For(ensureSID(c, h.Secure))
	if st.Add(ref) {
		applog.Info(c, "wishlist.add", map[string]any{"ref": ref})
	}
	return success(c, fiber.StatusOK, "", wishlistState(st.Items(), st.Persistent()), nil)
}

// POST /api/wishlist/toggle
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	ref, err := h.parseRef(c)
	if err != nil {
		return fail(c, err)
	}
	st := h.Wish.For(ensureSID(c, h.Secure))
	member := st.Toggle(ref)
	applog.Info(c, "wishlist.toggle", map[string]any{"ref": ref, "member": member})
	data := wishlistState(st.Items(), st.Persistent())
	data["member"] = member
	return success(c, fiber.StatusOK, "", data, nil)
}

// DELETE /api/wishlist/:ref
func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	ref, ok := validate.Ref(c.Params("ref"))
	if !ok {
		return fail(c, errs.Validation("ref_invalid", "ref", "Invalid product reference"))
	}
	st := h.Wish.For(ensureSID(c, h.Secure))
	if st.Remove(ref) {
		applog.Info(c, "wishlist.remove", map[string]any{"ref": ref})
	}
	return success(c, fiber.StatusOK, "", wishlistState(st.Items(), st.Persistent()), nil)
}

// DELETE /api/wishlist
func (h *WishlistHandler) Clear(c *fiber.Ctx) error {
	st := h.Wish.For(ensureSID(c, h.Secure))
	st.Clear()
	applog.Info(c, "wishlist.clear", nil)
	return success(c, fiber.StatusOK, "", wishlistState(st.Items(), st.Persistent()), nil)
}

// GET /api/wishlist/products
func (h *WishlistHandler) Products(c *fiber.Ctx) error {
	st := h.Wish.For(ensureSID(c, h.Secure))
	prods, err := h.Wish.Resolve(c.UserContext(), st.Items(), apiLocale(c))
	if err != nil {
		return fail(c, err)
	}
	return success(c, fiber.StatusOK, "", prods, nil)
}

// GET /api/wishlist/stream
//
// Server-sent events: one "wishlist" event with the current list, then one
// per change made from any tab of the same browser.
func (h *WishlistHandler) Stream(c *fiber.Ctx) error {
	st := h.Wish.For(ensureSID(c, h.Secure))

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// Only the latest list matters, so a slow client sees intermediate
	// states collapsed.
	updates := make(chan []string, 1)
	unsubscribe := st.Subscribe(func(items []string) {
		for {
			select {
			case updates <- items:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	})
	initial := st.Items()
	done := h.Done
	applog.Info(c, "wishlist.stream.open", nil)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		if writeEvent(w, initial) != nil {
			return
		}
		tick := time.NewTicker(StreamHeartbeat)
		defer tick.Stop()
		for {
			var err error
			select {
			case items := <-updates:
				err = writeEvent(w, items)
			case <-tick.C:
				if _, err = fmt.Fprint(w, ": ping\n\n"); err == nil {
					err = w.Flush()
				}
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}))
	return nil
}

func writeEvent(w *bufio.Writer, items []string) error {
	if items == nil {
		items = []string{}
	}
	payload, err := json.Marshal(fiber.Map{"items": items})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: wishlist\ndata: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

// GET /wishlist
func (h *WishlistHandler) Page(c *fiber.Ctx) error {
	st := h.Wish.For(ensureSID(c, h.Secure))
	prods, err := h.Wish.Resolve(c.UserContext(), st.Items(), localeOf(c))
	if err != nil {
		return pageError(c, "wishlist.list.fail", err)
	}
	return render(c, "wishlist", fiber.Map{"Items": prods, "Persistent": st.Persistent()})
}

// POST /wishlist/toggle
//
// Form fallback for browsers without scripts.
func (h *WishlistHandler) ToggleForm(c *fiber.Ctx) error {
	ref, ok := validate.Ref(c.FormValue("ref"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "ref"})
		return c.Redirect("/wishlist")
	}
	member := h.Wish.For(ensureSID(c, h.Secure)).Toggle(ref)
	applog.Info(c, "wishlist.toggle", map[string]any{"ref": ref, "member": member})
	return c.Redirect(localBack(c, "/wishlist"))
}

// localBack returns the referring path when it points at this host.
func localBack(c *fiber.Ctx, fallback string) string {
	u, err := url.Parse(c.Get(fiber.HeaderReferer))
	if err != nil || u.Host != c.Hostname() || u.Path == "" {
		return fallback
	}
	return u.RequestURI()
}
