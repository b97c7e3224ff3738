package service

import (
	"os"
	"strings"

	"adoptnest/internal/domain"

	"go.uber.org/zap"
)

// MaxImageSize is the per-file upload limit.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// SubmissionForm holds the text fields of a pet submission.
type SubmissionForm struct {
	Name        string
	Age         string
	Breed       string
	Gender      string
	Description string
	Location    string
}

// LocalFile is an uploaded part spooled to local disk.
type LocalFile struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// LocalFiles are the spooled parts of one request.
type LocalFiles []LocalFile

// Remove deletes every spooled file. Failures are logged and ignored.
func (fs LocalFiles) Remove(logger *zap.Logger) {
	for _, f := range fs {
		if f.Path == "" {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove temp file", zap.String("path", f.Path), zap.Error(err))
		}
	}
}

// ValidateSubmission runs the submission checks in order and returns the
// first failure. It never touches the files beyond their metadata.
func ValidateSubmission(submitter domain.Identity, form SubmissionForm, files []LocalFile) error {
	if !submitter.HasContact() {
		return ErrIncompleteProfile
	}

	if isBlank(form.Name) || isBlank(form.Age) || isBlank(form.Gender) ||
		isBlank(form.Description) || isBlank(form.Location) {
		return ErrMissingFields
	}

	if len(files) < domain.MinPetImages {
		return ErrMissingImages
	}
	if len(files) > domain.MaxPetImages {
		return ErrTooManyImages
	}

	// type then size, file by file
	for _, f := range files {
		if !allowedImageTypes[strings.ToLower(f.ContentType)] {
			return ErrUnsupportedMediaType
		}
		if f.Size > MaxImageSize {
			return ErrFileTooLarge
		}
	}

	if !domain.Gender(strings.TrimSpace(form.Gender)).Valid() {
		return ErrInvalidGender
	}

	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
