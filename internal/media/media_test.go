package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	for _, n := range []string{"a.png", "B.JPG", "c.jpeg", "d.gif", "e.webp"} {
		if !IsImageFile(n) {
			t.Errorf("%s rejected", n)
		}
	}
	for _, n := range []string{"a.svg", "b.exe", "noext", "c.png.php"} {
		if IsImageFile(n) {
			t.Errorf("%s accepted", n)
		}
	}
}

func TestLocalUpload(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir, "/media/")
	if err != nil {
		t.Fatal(err)
	}
	a, err := l.Upload(context.Background(), "../../okra.JPG", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(a.URL, "/media/") || !strings.HasSuffix(a.URL, ".jpg") || strings.Contains(a.URL, "okra") {
		t.Fatalf("url = %s", a.URL)
	}
	b, err := os.ReadFile(filepath.Join(dir, a.PublicID))
	if err != nil || string(b) != "jpeg-bytes" {
		t.Fatalf("stored = %q, %v", b, err)
	}
	if _, err := l.Upload(context.Background(), "shell.php", strings.NewReader("x")); err != ErrNotImage {
		t.Fatalf("err = %v", err)
	}
}

func TestSafePath(t *testing.T) {
	root := "/srv/media"
	if p, ok := SafePath(root, "a/b.jpg"); !ok || p != filepath.Join(root, "a/b.jpg") {
		t.Fatalf("got %q %v", p, ok)
	}
	for _, p := range []string{"../etc/passwd", "a/../../b", "%2e%2e/x", "/etc/passwd", "", "a\x00.jpg"} {
		if _, ok := SafePath(root, p); ok {
			t.Errorf("%q allowed", p)
		}
	}
}
