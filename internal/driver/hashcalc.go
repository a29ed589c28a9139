package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"fortio.org/safecast"

	"fstrlit/internal/source"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// Short returns the first 12 hex digits, for logs.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}

// cacheKey: H(schema || content || mode || limits). Всё, что влияет на
// диагностики, входит в ключ, поэтому инвалидация не нужна.
func cacheKey(file *source.File, opts Options) (Digest, error) {
	depth, err := safecast.Conv[uint32](opts.MaxDepth)
	if err != nil {
		return Digest{}, err
	}
	maxDiag, err := safecast.Conv[uint32](opts.MaxDiagnostics)
	if err != nil {
		return Digest{}, err
	}

	h := sha256.New()
	var buf [4]byte
	binary.BigEndian.PutUint16(buf[:2], diskCacheSchemaVersion)
	_, _ = h.Write(buf[:2])
	_, _ = h.Write(file.Hash[:])
	_, _ = h.Write([]byte(opts.mode()))
	binary.BigEndian.PutUint32(buf[:], depth)
	_, _ = h.Write(buf[:])
	binary.BigEndian.PutUint32(buf[:], maxDiag)
	_, _ = h.Write(buf[:])

	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}
