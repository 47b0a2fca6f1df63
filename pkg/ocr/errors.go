package ocr

import "errors"

// ErrNoText is returned when no OCR pass produced any usable text, which
// usually means the upload wasn't a stats screenshot at all.
var ErrNoText = errors.New("no text recognized")
