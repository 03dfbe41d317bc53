package sfxzip

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/sfxzip/internal/testutil"
)

func TestAddFromBytes(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.Add("hello.txt", FromBytes([]byte("hello"))))

	require.Equal(t, 1, a.Len())
	assert.True(t, a.Contains("hello.txt"))

	e, ok := a.Entry("hello.txt")
	require.True(t, ok)
	assert.Equal(t, "hello.txt", e.Name())
	assert.Equal(t, []byte("hello"), e.Content())
	assert.Equal(t, "(data)", e.Source())
	assert.Equal(t, 5, e.Size())
	assert.False(t, e.ModTime().IsZero())
}

func TestAddCopiesBytes(t *testing.T) {
	t.Parallel()

	content := []byte("mutable")
	a := New()
	require.NoError(t, a.Add("f", FromBytes(content)))

	content[0] = 'X'
	e, _ := a.Entry("f")
	assert.Equal(t, []byte("mutable"), e.Content())
}

func TestAddFromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "src.txt")
	require.NoError(t, os.WriteFile(path, []byte("file content"), 0o644))
	want := testutil.FixedTime()
	require.NoError(t, os.Chtimes(path, want, want))

	a := New()
	require.NoError(t, a.Add("src.txt", FromPath(path)))

	e, ok := a.Entry("src.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("file content"), e.Content())
	assert.Equal(t, path, e.Source())
	assert.WithinDuration(t, want, e.ModTime(), 2*time.Second)
}

func TestAddFromReader(t *testing.T) {
	t.Parallel()

	t.Run("plain reader", func(t *testing.T) {
		t.Parallel()
		a := New()
		require.NoError(t, a.Add("r", FromReader(bytes.NewReader([]byte("streamed")))))

		e, _ := a.Entry("r")
		assert.Equal(t, []byte("streamed"), e.Content())
		assert.Equal(t, "(stream)", e.Source())
		assert.False(t, e.ModTime().IsZero())
	})

	t.Run("open file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "src.txt")
		require.NoError(t, os.WriteFile(path, []byte("via handle"), 0o644))
		want := testutil.FixedTime()
		require.NoError(t, os.Chtimes(path, want, want))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		a := New()
		require.NoError(t, a.Add("src.txt", FromReader(f)))

		e, _ := a.Entry("src.txt")
		assert.Equal(t, []byte("via handle"), e.Content())
		assert.Equal(t, path, e.Source())
		assert.WithinDuration(t, want, e.ModTime(), 2*time.Second)
	})
}

func TestAddUnreadablePath(t *testing.T) {
	t.Parallel()

	a := New()
	err := a.Add("missing", FromPath(filepath.Join(t.TempDir(), "nope")))
	require.ErrorIs(t, err, ErrUnreadable)
	assert.Contains(t, err.Error(), "missing")
}

func TestAddEmptyName(t *testing.T) {
	t.Parallel()

	a := New()
	assert.Error(t, a.Add("", FromBytes([]byte("x"))))
}

func TestAddDuplicate(t *testing.T) {
	t.Parallel()

	t.Run("same source is a no-op", func(t *testing.T) {
		t.Parallel()
		a := New()
		require.NoError(t, a.Add("f", FromBytes([]byte("first")), AddWithSource("lib/f.pm")))
		require.NoError(t, a.Add("f", FromBytes([]byte("second")), AddWithSource("lib/f.pm")))

		require.Equal(t, 1, a.Len())
		e, _ := a.Entry("f")
		assert.Equal(t, []byte("first"), e.Content(), "repeat add must not replace content")
	})

	t.Run("different source fails", func(t *testing.T) {
		t.Parallel()
		a := New()
		require.NoError(t, a.Add("f", FromBytes([]byte("x")), AddWithSource("lib/a.pm")))

		err := a.Add("f", FromBytes([]byte("x")), AddWithSource("other/a.pm"))
		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Contains(t, err.Error(), "lib/a.pm")
		assert.Contains(t, err.Error(), "other/a.pm")
		assert.Equal(t, 1, a.Len())
	})
}

func TestAddSizeLimit(t *testing.T) {
	t.Parallel()

	a := New(WithSizeLimit(8))
	require.NoError(t, a.Add("fits", FromBytes(bytes.Repeat([]byte("x"), 8))))

	for name, src := range map[string]ContentSource{
		"buffer": FromBytes(bytes.Repeat([]byte("x"), 9)),
		"stream": FromReader(bytes.NewReader(bytes.Repeat([]byte("x"), 9))),
	} {
		err := a.Add(name, src)
		require.ErrorIs(t, err, ErrTooLarge, name)
	}
	assert.Equal(t, 1, a.Len())
}

func TestAddModTimeOverride(t *testing.T) {
	t.Parallel()

	want := testutil.FixedTime()
	a := New()
	require.NoError(t, a.Add("f", FromBytes([]byte("x")), AddWithModTime(want)))

	e, _ := a.Entry("f")
	assert.True(t, e.ModTime().Equal(want))
}

func TestEntriesSnapshot(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.Add("one", FromBytes([]byte("1"))))
	require.NoError(t, a.Add("two", FromBytes([]byte("2"))))

	s := a.Entries()
	require.Len(t, s, 2)
	assert.Equal(t, "one", s[0].Name())
	assert.Equal(t, "two", s[1].Name())

	s[0] = nil
	assert.NotNil(t, a.Entries()[0], "mutating the snapshot must not affect the archive")
}

func TestEntryInfoBeforeBuild(t *testing.T) {
	t.Parallel()

	a := New()
	require.NoError(t, a.Add("f", FromBytes([]byte("x"))))

	e, _ := a.Entry("f")
	_, ok := e.Info()
	assert.False(t, ok)
}
