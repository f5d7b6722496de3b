package upload

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"creatives/models"
)

// Minimal PNG signature followed by an IHDR chunk header.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

func candidate(name, declared string, data []byte) Candidate {
	return Candidate{
		Name:         name,
		DeclaredType: declared,
		Size:         int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func sequentialRefs() func() string {
	n := 0
	return func() string {
		n++
		return strconv.Itoa(n)
	}
}

func TestAcceptFiltersByTypeAndSize(t *testing.T) {
	t.Parallel()

	intake := &Intake{MaxBytes: 64, NewRef: sequentialRefs()}
	result, err := intake.Accept([]Candidate{
		candidate("notes.txt", "text/plain", []byte("just some words")),
		candidate("cover.png", "", pngBytes),
		candidate("huge.png", "image/png", bytes.Repeat([]byte{1}, 65)),
		candidate("clip.bin", "video/mp4", []byte{0, 1, 2, 3}),
	})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if len(result.Accepted) != 2 {
		t.Fatalf("expected 2 accepted files, got %+v", result.Accepted)
	}
	if result.Accepted[0].Name != "cover.png" || result.Accepted[0].MIME != "image/png" {
		t.Fatalf("unexpected first accepted file %+v", result.Accepted[0])
	}
	if result.Accepted[1].MIME != "video/mp4" {
		t.Fatalf("expected declared type fallback, got %q", result.Accepted[1].MIME)
	}
	if result.Primary != "preview:1" {
		t.Fatalf("expected first preview as primary, got %q", result.Primary)
	}

	reasons := map[string]error{}
	for _, skipped := range result.Skipped {
		reasons[skipped.Name] = skipped.Reason
	}
	if !errors.Is(reasons["notes.txt"], ErrUnsupportedType) {
		t.Fatalf("expected notes.txt rejected as unsupported, got %v", reasons["notes.txt"])
	}
	if !errors.Is(reasons["huge.png"], ErrTooLarge) {
		t.Fatalf("expected huge.png rejected as too large, got %v", reasons["huge.png"])
	}
}

func TestAcceptSniffsOverDeclaredType(t *testing.T) {
	t.Parallel()

	intake := NewIntake(0)
	result, err := intake.Accept([]Candidate{candidate("fake.png", "image/png", []byte("<html><body>hi</body></html>"))})
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if len(result.Accepted) != 0 || len(result.Skipped) != 1 {
		t.Fatalf("expected disguised html to be skipped, got %+v", result)
	}
}

func TestAcceptWithoutFilesUsesPlaceholder(t *testing.T) {
	t.Parallel()

	result, err := NewIntake(DefaultMaxBytes).Accept(nil)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}
	if result.Primary != models.PlaceholderImage {
		t.Fatalf("expected placeholder primary, got %q", result.Primary)
	}
	ref := NewIntake(0).newRef()
	if ref == "" {
		t.Fatalf("expected generated reference")
	}
}

func TestAcceptReportsReadErrors(t *testing.T) {
	t.Parallel()

	broken := Candidate{Name: "x.png", Size: 1, Open: func() (io.ReadCloser, error) {
		return nil, errors.New("gone")
	}}
	if _, err := NewIntake(0).Accept([]Candidate{broken}); err == nil || !strings.Contains(err.Error(), "x.png") {
		t.Fatalf("expected read error naming the file, got %v", err)
	}
}
