package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"fstrlit/internal/diag"
	"fstrlit/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит диагностики разобранных файлов по хэшу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached outcome of parsing one file.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema   uint16
	Path     string
	Hash     [32]byte
	Mode     string
	Literals []CachedLiteral
}

// CachedLiteral keeps the span and diagnostics of one literal; trees are
// always rebuilt.
type CachedLiteral struct {
	Start       uint32
	End         uint32
	Diagnostics []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Fixes    []CachedFix
}

type CachedFix struct {
	Title string
	Edits []CachedEdit
}

type CachedEdit struct {
	Start   uint32
	End     uint32
	NewText string
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location, $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "lits" — чтобы было что чистить отдельно
	return filepath.Join(c.dir, "lits", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	renamed := false
	defer func() {
		if renamed {
			return
		}
		_ = f.Close()
		if rmErr := os.Remove(f.Name()); rmErr != nil && err == nil {
			err = fmt.Errorf("failed to remove temp file: %w", rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads and deserializes a payload. A missing entry or a payload with
// another schema is a miss, not an error.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from a hex digest under the cache dir
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

// literalsToPayload converts parsed literals to their cached form.
func literalsToPayload(file *source.File, mode Mode, literals []Literal) *DiskPayload {
	payload := &DiskPayload{
		Schema:   diskCacheSchemaVersion,
		Path:     file.Path,
		Hash:     file.Hash,
		Mode:     string(mode),
		Literals: make([]CachedLiteral, len(literals)),
	}
	for i, lit := range literals {
		cl := CachedLiteral{Start: lit.Span.Start, End: lit.Span.End}
		for _, d := range lit.Tree.Diagnostics {
			cd := CachedDiagnostic{
				Severity: uint8(d.Severity),
				Code:     uint16(d.Code),
				Message:  d.Message,
				Start:    d.Primary.Start,
				End:      d.Primary.End,
			}
			for _, fx := range d.Fixes {
				cf := CachedFix{Title: fx.Title}
				for _, e := range fx.Edits {
					cf.Edits = append(cf.Edits, CachedEdit{Start: e.Span.Start, End: e.Span.End, NewText: e.NewText})
				}
				cd.Fixes = append(cd.Fixes, cf)
			}
			cl.Diagnostics = append(cl.Diagnostics, cd)
		}
		payload.Literals[i] = cl
	}
	return payload
}

// payloadToBag restores cached diagnostics against file's current ID.
func payloadToBag(file *source.File, payload *DiskPayload, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cl := range payload.Literals {
		for _, cd := range cl.Diagnostics {
			d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
				source.Span{File: file.ID, Start: cd.Start, End: cd.End}, cd.Message)
			for _, cf := range cd.Fixes {
				edits := make([]diag.FixEdit, 0, len(cf.Edits))
				for _, e := range cf.Edits {
					edits = append(edits, diag.FixEdit{
						Span:    source.Span{File: file.ID, Start: e.Start, End: e.End},
						NewText: e.NewText,
					})
				}
				d = d.WithFix(cf.Title, edits...)
			}
			bag.Add(d)
		}
	}
	return bag
}
