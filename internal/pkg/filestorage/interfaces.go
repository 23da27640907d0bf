package filestorage

import "mime/multipart"

// FileInfo represents information about a stored file
type FileInfo struct {
	ID       int64  // Database ID of the file record (if applicable)
	Path     string // Path or URL where the file is reachable
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // MIME type of the file
}

// FileStorage defines the interface for file storage operations. Lesson
// materials and certificate artifacts are stored through this interface.
type FileStorage interface {
	// SaveFile saves a file and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file under a subdirectory (e.g. "lessons", "certificates")
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error

	// GetFullPath returns the full filesystem path for a given file URL
	GetFullPath(fileURL string) string
}
