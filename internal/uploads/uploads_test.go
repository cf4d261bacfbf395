package uploads

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestExt(t *testing.T) {
	cases := map[string]string{
		"photo.jpg":        ".jpg",
		"archive.tar.gz":   ".gz",
		"noext":            "",
		".env":             "",
		"dir/photo.PNG":    ".PNG",
		`C:\tmp\photo.png`: ".png",
		"trailing.":        ".",
	}
	for in, want := range cases {
		assert.Equal(t, want, Ext(in), in)
	}
}

func TestNewNameIsMonotonic(t *testing.T) {
	d := New(t.TempDir(), nil)
	fixed := time.UnixMilli(1700000000000)
	d.now = func() time.Time { return fixed }

	assert.Equal(t, "1700000000000.jpg", d.NewName("a.jpg"))
	assert.Equal(t, "1700000000001.png", d.NewName("b.png"))
	assert.Equal(t, "1700000000002", d.NewName("c"))
	assert.Equal(t, "/uploads/1700000000000.jpg", d.URL("1700000000000.jpg"))
}

func TestRemoveProductImages(t *testing.T) {
	root := t.TempDir()
	d := New(root, nil)
	require.NoError(t, os.WriteFile(filepath.Join(root, "1.jpg"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "2.jpg"), []byte("x"), 0o644))

	p := models.Product{Colors: []models.ColorVariant{
		{Images: []models.ImageRef{{URL: "/uploads/1.jpg"}, {URL: "/uploads/missing.jpg"}}},
		{Images: []models.ImageRef{{URL: "/uploads/2.jpg"}, {URL: ""}}},
	}}

	n, err := d.RemoveProductImages(p)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = os.Stat(filepath.Join(root, "1.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, "2.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "uploads")
	require.NoError(t, os.MkdirAll(root, 0o755))
	outside := filepath.Join(parent, "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	d := New(root, nil)
	require.NoError(t, d.Remove("/uploads/../secret.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err)
}

func TestRemoveProductImagesReportsFailure(t *testing.T) {
	root := t.TempDir()
	d := New(root, nil)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "stuck.jpg", "inner"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok.jpg"), []byte("x"), 0o644))

	p := models.Product{Colors: []models.ColorVariant{
		{Images: []models.ImageRef{{URL: "/uploads/stuck.jpg"}, {URL: "/uploads/ok.jpg"}}},
	}}

	n, err := d.RemoveProductImages(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/uploads/stuck.jpg")
	assert.Equal(t, 1, n)
	_, statErr := os.Stat(filepath.Join(root, "ok.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRemoveIgnoresURLsOutsideUploads(t *testing.T) {
	root := t.TempDir()
	d := New(root, nil)
	target := filepath.Join(root, "a.jpg")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	for _, url := range []string{"https://cdn.example.com/x/a.jpg", "/static/a.jpg", "a.jpg", "/uploadsa.jpg"} {
		require.NoError(t, d.Remove(url), url)
	}
	_, err := os.Stat(target)
	assert.NoError(t, err)

	require.NoError(t, d.Remove("/uploads/a.jpg"))
	_, err = os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}
