package filestorage

import "mime/multipart"

// FileStorage abstracts where uploaded files end up
type FileStorage interface {
	// SaveFile stores an uploaded file and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath stores an uploaded file under a subdirectory
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file
	DeleteFile(filePath string) error
}
