package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
)

// DefaultMaxFileSize is 25 MiB.
const DefaultMaxFileSize int64 = 25 * 1024 * 1024

var (
	ErrFileTooLarge         = errors.New("file exceeds maximum size")
	ErrUnsupportedMediaType = errors.New("only image/* or video/* uploads are allowed")
	ErrDisallowedExtension  = errors.New("file extension is not allowed")
)

// Kind is the media family derived from a declared MIME type.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindUnknown Kind = ""
)

// KindOf classifies a declared MIME type by its prefix.
func KindOf(mimeType string) Kind {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return KindImage
	case strings.HasPrefix(mt, "video/"):
		return KindVideo
	default:
		return KindUnknown
	}
}

// Candidate is one uploaded file as declared by the client.
type Candidate struct {
	Filename string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// CandidateFromFileHeader adapts a parsed multipart part.
func CandidateFromFileHeader(fh *multipart.FileHeader) Candidate {
	return Candidate{
		Filename: fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// Rejection wraps an admission error with the offending file.
type Rejection struct {
	Index    int
	Filename string
	Err      error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("file %d (%q): %v", r.Index, r.Filename, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Acceptor is the per-file admission gate. It never touches the bytes.
type Acceptor struct {
	maxSize    int64
	extensions ExtensionSet
}

func NewAcceptor(maxSize int64, extensions ExtensionSet) *Acceptor {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Acceptor{maxSize: maxSize, extensions: extensions}
}

func (a *Acceptor) MaxSize() int64 { return a.maxSize }

// Accept checks size, then MIME family, then extension. A missing extension
// is accepted; the storage name gets one from the MIME type.
func (a *Acceptor) Accept(c Candidate) error {
	if c.Size > a.maxSize {
		return ErrFileTooLarge
	}
	if KindOf(c.MimeType) == KindUnknown {
		return ErrUnsupportedMediaType
	}
	if ext := extensionOf(c.Filename); ext != "" && !a.extensions.Contains(ext) {
		return ErrDisallowedExtension
	}
	return nil
}

// AcceptAll validates every candidate before any is persisted and reports
// the first rejection.
func (a *Acceptor) AcceptAll(candidates []Candidate) error {
	for i, c := range candidates {
		if err := a.Accept(c); err != nil {
			return &Rejection{Index: i, Filename: c.Filename, Err: err}
		}
	}
	return nil
}

// StorageName sanitizes the candidate's filename against this acceptor's allow-list.
func (a *Acceptor) StorageName(c Candidate) string {
	return a.extensions.StorageName(c.Filename, c.MimeType)
}
