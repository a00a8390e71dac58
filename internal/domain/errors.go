package domain

import "errors"

var (
	// ErrCaptureUnavailable means no usable frame could be produced;
	// the capture is skipped and no Photo is created.
	ErrCaptureUnavailable = errors.New("capture unavailable")

	// ErrDecode means a stored image payload could not be decoded.
	ErrDecode = errors.New("image payload decode failed")

	// ErrClipboardUnavailable means the platform denies or lacks
	// clipboard-image support.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")

	// ErrPersistenceWrite means the backing medium rejected a write.
	// The in-memory sequence stays authoritative.
	ErrPersistenceWrite = errors.New("persistence write failed")

	// ErrPhotoNotFound means the requested id is not in the store.
	ErrPhotoNotFound = errors.New("photo not found")
)
