// Package upload filters candidate attachments for a new post and assigns
// them opaque preview references.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"creatives/models"
)

// DefaultMaxBytes is the per-file size cap.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// PreviewPrefix starts every generated preview reference.
const PreviewPrefix = "preview:"

// Skip reasons reported for rejected files.
var (
	ErrUnsupportedType = errors.New("only images and videos are allowed")
	ErrTooLarge        = errors.New("file exceeds the size limit")
)

// Candidate is a file offered for attachment.
type Candidate struct {
	Name         string
	DeclaredType string
	Size         int64
	Open         func() (io.ReadCloser, error)
}

// Accepted is a file kept by the intake.
type Accepted struct {
	Name       string
	MIME       string
	Size       int64
	PreviewRef string
}

// Skipped is a file the intake rejected.
type Skipped struct {
	Name   string
	Reason error
}

// Result is the outcome of one Accept call.
type Result struct {
	Accepted []Accepted
	Skipped  []Skipped
	// Primary is the preview reference handed to the post as its image.
	Primary string
}

// Intake filters candidates to images and videos under a size cap.
type Intake struct {
	MaxBytes int64
	NewRef   func() string
}

// NewIntake returns an Intake with the given cap. A non-positive cap uses
// DefaultMaxBytes.
func NewIntake(maxBytes int64) *Intake {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Intake{MaxBytes: maxBytes, NewRef: uuid.NewString}
}

// Accept classifies candidates. Only a failure to read a file is returned as
// an error; unsupported or oversized files are reported in Result.Skipped.
func (in *Intake) Accept(candidates []Candidate) (Result, error) {
	result := Result{Accepted: []Accepted{}, Skipped: []Skipped{}}
	for _, candidate := range candidates {
		if candidate.Size > in.maxBytes() {
			result.Skipped = append(result.Skipped, Skipped{Name: candidate.Name, Reason: ErrTooLarge})
			continue
		}

		contentType, err := in.sniff(candidate)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w", candidate.Name, err)
		}
		if !isMedia(contentType) {
			result.Skipped = append(result.Skipped, Skipped{Name: candidate.Name, Reason: ErrUnsupportedType})
			continue
		}

		result.Accepted = append(result.Accepted, Accepted{
			Name:       candidate.Name,
			MIME:       contentType,
			Size:       candidate.Size,
			PreviewRef: PreviewPrefix + in.newRef(),
		})
	}

	result.Primary = models.PlaceholderImage
	if len(result.Accepted) > 0 {
		result.Primary = result.Accepted[0].PreviewRef
	}
	return result, nil
}

// FromMultipart adapts uploaded form files into candidates.
func FromMultipart(headers []*multipart.FileHeader) []Candidate {
	candidates := make([]Candidate, 0, len(headers))
	for _, header := range headers {
		header := header
		candidates = append(candidates, Candidate{
			Name:         header.Filename,
			DeclaredType: header.Header.Get("Content-Type"),
			Size:         header.Size,
			Open: func() (io.ReadCloser, error) {
				return header.Open()
			},
		})
	}
	return candidates
}

// sniff detects the content type from the leading bytes, falling back to the
// declared type when detection is inconclusive.
func (in *Intake) sniff(candidate Candidate) (string, error) {
	declared := strings.ToLower(strings.TrimSpace(candidate.DeclaredType))
	if candidate.Open == nil {
		return declared, nil
	}

	file, err := candidate.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(io.LimitReader(file, in.maxBytes()+1))
	if err != nil {
		return "", err
	}
	if detected.Is("application/octet-stream") && declared != "" {
		return declared, nil
	}
	return detected.String(), nil
}

func (in *Intake) maxBytes() int64 {
	if in.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return in.MaxBytes
}

func (in *Intake) newRef() string {
	if in.NewRef == nil {
		return uuid.NewString()
	}
	return in.NewRef()
}

func isMedia(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}
