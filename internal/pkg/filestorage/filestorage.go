package filestorage

import "mime/multipart"

// FileStorage is the storage collaborator: it persists uploaded binaries and
// hands back a public URL. Core records only store the resulting URL string.
type FileStorage interface {
	// SaveFileWithPath stores an uploaded file under a subdirectory and
	// returns its publicly accessible URL.
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file given its public URL.
	// Missing files are not an error.
	DeleteFile(fileURL string) error
}
