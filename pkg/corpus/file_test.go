package corpus_test

import (
	"breachcheck/pkg/corpus"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "local_breaches.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestFile_Count(t *testing.T) {
	path := write(t, "a@x.com\n  B@Y.com  \n\nA@X.COM\nc@z.com\n")

	insensitive := corpus.Open(path, false)
	n, err := insensitive.Count(" a@x.com ")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	ok, err := insensitive.Contains("b@y.com")
	require.NoError(t, err)
	require.True(t, ok)

	sensitive := corpus.Open(path, true)
	n, err = sensitive.Count("a@x.com")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	ok, err = sensitive.Contains("b@y.com")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFile_Missing(t *testing.T) {
	f := corpus.Open(filepath.Join(t.TempDir(), "nope.txt"), false)
	require.False(t, f.Exists())

	_, err := f.Count("a@x.com")
	require.ErrorIs(t, err, corpus.ErrMissing)

	_, err = f.Stats()
	require.ErrorIs(t, err, corpus.ErrMissing)
}

func TestFile_AppendCreatesAndFixesNewline(t *testing.T) {
	path := write(t, "a@x.com")
	f := corpus.Open(path, false)

	require.NoError(t, f.Append("b@y.com"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "a@x.com\nb@y.com\n", string(raw))

	fresh := corpus.Open(filepath.Join(t.TempDir(), "new.txt"), false)
	require.NoError(t, fresh.Append("c@z.com"))
	require.True(t, fresh.Exists())
	ok, err := fresh.Contains("c@z.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFile_AppendRejectsInvalid(t *testing.T) {
	f := corpus.Open(filepath.Join(t.TempDir(), "c.txt"), false)
	require.Error(t, f.Append("   "))
	require.Error(t, f.Append("a@x.com\nb@y.com"))
	require.False(t, f.Exists())
}

func TestFile_AppendIfAbsent(t *testing.T) {
	f := corpus.Open(filepath.Join(t.TempDir(), "c.txt"), false)

	added, err := f.AppendIfAbsent("a@x.com")
	require.NoError(t, err)
	require.True(t, added)

	added, err = f.AppendIfAbsent("A@X.COM")
	require.NoError(t, err)
	require.False(t, added)

	n, err := f.Count("a@x.com")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestFile_ConcurrentAppend(t *testing.T) {
	f := corpus.Open(filepath.Join(t.TempDir(), "c.txt"), true)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, f.Append("a@x.com"))
		}()
	}
	wg.Wait()

	n, err := f.Count("a@x.com")
	require.NoError(t, err)
	require.Equal(t, 20, n)
}

func TestFile_ConcurrentAppendIfAbsent(t *testing.T) {
	f := corpus.Open(filepath.Join(t.TempDir(), "c.txt"), false)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		added int
	)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := f.AppendIfAbsent("a@x.com")
			require.NoError(t, err)
			if ok {
				mu.Lock()
				added++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, added)
	n, err := f.Count("A@X.com")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestFile_Stats(t *testing.T) {
	content := "a@x.com\nA@X.com\n\nb@y.com\n"
	path := write(t, content)

	st, err := corpus.Open(path, false).Stats()
	require.NoError(t, err)
	require.Equal(t, 3, st.TotalEntries)
	require.Equal(t, 2, st.UniqueEntries)
	require.Equal(t, int64(len(content)), st.FileSize)
	require.False(t, st.LastModified.IsZero())

	st, err = corpus.Open(path, true).Stats()
	require.NoError(t, err)
	require.Equal(t, 3, st.UniqueEntries)
}
