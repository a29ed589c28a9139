package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, editor buffer).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC marks content rewritten to Unicode NFC on load.
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
// Content is never mutated after Add: every span handed out refers to it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в байтах
}

// Normalization selects the Unicode normal form applied by LoadWithOptions.
type Normalization uint8

const (
	// NormalizeNone keeps bytes as read (after CRLF/BOM handling).
	NormalizeNone Normalization = iota
	// NormalizeNFC rewrites content to Unicode Normalization Form C.
	NormalizeNFC
)

// LoadOptions tunes how files are read from disk.
type LoadOptions struct {
	Normalize Normalization
}
