package source

type (
	// FileID uniquely identifies a file within a FileSet.
	FileID uint32
	// FileFlags records how the file content was obtained and normalized.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin) rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the normalized content of a single source file together with
// its line index, used to resolve byte offsets into line/column positions.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of each '\n'
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position.
type LineCol struct {
	Line uint32
	Col  uint32
}
