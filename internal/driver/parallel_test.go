package driver_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fstrlit/internal/diag"
	"fstrlit/internal/driver"
)

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) statuses(file string) []driver.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []driver.Status
	for _, ev := range s.events {
		if ev.File == file {
			out = append(out, ev.Status)
		}
	}
	return out
}

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeLiteral(t, dir, "b.fstr", "{b!x}")
	writeLiteral(t, dir, "a.fstr", "ok {a}")
	writeLiteral(t, dir, filepath.Join("sub", "c.fstr"), "{c(}")
	writeLiteral(t, dir, "notes.txt", "{ignored")
	return dir
}

func TestListFiles(t *testing.T) {
	dir := makeTree(t)
	files, err := driver.ListFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.fstr"),
		filepath.Join(dir, "b.fstr"),
		filepath.Join(dir, "sub", "c.fstr"),
	}, files)
}

func TestParseDir(t *testing.T) {
	dir := makeTree(t)
	sink := &recordingSink{}

	res, err := driver.ParseDir(context.Background(), dir, driver.Options{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.Len(t, res.Files, 3)

	assert.Equal(t, filepath.Join(dir, "a.fstr"), res.Files[0].Path)
	assert.Empty(t, res.Files[0].Bag.Items())
	assert.Equal(t, []diag.Code{diag.FStrConvInvalid}, codes(res.Files[1].Bag))
	assert.Equal(t, []diag.Code{diag.FStrUnclosedParen}, codes(res.Files[2].Bag))
	assert.True(t, res.HasErrors())
	for _, f := range res.Files {
		assert.False(t, f.Cached)
		assert.Len(t, f.Literals, 1)
	}

	assert.Equal(t,
		[]driver.Status{driver.StatusQueued, driver.StatusWorking, driver.StatusWorking, driver.StatusDone},
		sink.statuses(filepath.Join(dir, "a.fstr")))
}

func TestParseDirEmpty(t *testing.T) {
	res, err := driver.ParseDir(context.Background(), t.TempDir(), driver.Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.False(t, res.HasErrors())
}

func TestParseDirMissing(t *testing.T) {
	_, err := driver.ParseDir(context.Background(), filepath.Join(t.TempDir(), "missing"), driver.Options{})
	assert.Error(t, err)
}

func TestParseDirCache(t *testing.T) {
	dir := makeTree(t)
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	opts := driver.Options{DiagnosticsOnly: true, Cache: cache}

	first, err := driver.ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)
	second, err := driver.ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)

	require.Len(t, second.Files, len(first.Files))
	for i := range first.Files {
		assert.False(t, first.Files[i].Cached)
		assert.True(t, second.Files[i].Cached, first.Files[i].Path)
		assert.Empty(t, second.Files[i].Literals)
		assert.Equal(t, first.Files[i].Bag.Items(), second.Files[i].Bag.Items())
	}

	// другой режим — другой ключ
	opts.Mode = driver.ModeLines
	third, err := driver.ParseDir(context.Background(), dir, opts)
	require.NoError(t, err)
	assert.False(t, third.Files[0].Cached)

	require.NoError(t, cache.DropAll())
	fourth, err := driver.ParseDir(context.Background(), dir, driver.Options{DiagnosticsOnly: true, Cache: cache})
	require.NoError(t, err)
	assert.False(t, fourth.Files[0].Cached)
}
