package domain

import "fmt"

// ResolveError means the resolver API was unreachable or returned a
// payload we could not use. Never retried; surfaced to the user.
type ResolveError struct {
	Err error
}

func (e *ResolveError) Error() string { return fmt.Sprintf("resolve: %v", e.Err) }
func (e *ResolveError) Unwrap() error { return e.Err }

// TooLargeError means the media host declared a size above the upload
// ceiling. Fatal for the request and never retried.
type TooLargeError struct {
	Size  int64
	Limit int64
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes exceeds %d byte limit", e.Size, e.Limit)
}

// DownloadError means the download failed after exhausting retries.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download: %v", e.Err) }
func (e *DownloadError) Unwrap() error { return e.Err }

// UploadError means sending the fetched file to the chat failed.
// Not retried and no deletion is scheduled (nothing was sent).
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload: %v", e.Err) }
func (e *UploadError) Unwrap() error { return e.Err }
