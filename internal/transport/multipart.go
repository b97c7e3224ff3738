package transport

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"adoptnest/internal/middleware"
	"adoptnest/internal/service"

	"go.uber.org/zap"
)

const (
	maxFieldSize    = 64 << 10
	maxSpooledFiles = 6
	// room for the images plus the text fields and multipart framing
	maxSubmissionBody = (service.MaxImageSize+1)*maxSpooledFiles + 1<<20
)

var errFieldTooLarge = errors.New("form field too large")

// spooledForm is a parsed multipart request whose file parts were written
// to the local upload directory.
type spooledForm struct {
	values map[string]string
	files  service.LocalFiles
}

func (f *spooledForm) value(name string) string {
	return f.values[name]
}

// first returns the first spooled file or nil.
func (f *spooledForm) first() *service.LocalFile {
	if len(f.files) == 0 {
		return nil
	}
	file := f.files[0]
	return &file
}

// spoolMultipart streams a multipart body, copying parts named fileField to
// temp files in dir. At most maxFiles parts are kept; later ones are drained
// so the caller still sees that the limit was exceeded. Each file is read
// up to one byte past service.MaxImageSize, enough for the size check.
// On error nothing is left on disk.
func spoolMultipart(w http.ResponseWriter, r *http.Request, dir, fileField string, maxFiles int, logger *zap.Logger) (*spooledForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBody)

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}

	form := &spooledForm{values: make(map[string]string)}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			return form, nil
		}
		if err != nil {
			form.files.Remove(logger)
			return nil, err
		}

		if err := form.consume(part, dir, fileField, maxFiles); err != nil {
			part.Close()
			form.files.Remove(logger)
			return nil, err
		}
		part.Close()
	}
}

func (f *spooledForm) consume(part *multipart.Part, dir, fileField string, maxFiles int) error {
	if part.FileName() == "" {
		raw, err := io.ReadAll(io.LimitReader(part, maxFieldSize+1))
		if err != nil {
			return err
		}
		if len(raw) > maxFieldSize {
			return errFieldTooLarge
		}
		if _, seen := f.values[part.FormName()]; !seen {
			f.values[part.FormName()] = string(raw)
		}
		return nil
	}

	if part.FormName() != fileField || len(f.files) >= maxFiles {
		_, err := io.Copy(io.Discard, part)
		return err
	}

	ext := strings.ToLower(filepath.Ext(part.FileName()))
	tmp, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	n, err := io.Copy(tmp, io.LimitReader(part, service.MaxImageSize+1))
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil {
		_, err = io.Copy(io.Discard, part)
	}

	f.files = append(f.files, service.LocalFile{
		Path:        tmp.Name(),
		Filename:    part.FileName(),
		ContentType: part.Header.Get("Content-Type"),
		Size:        n,
	})
	return err
}

// respondSpoolError reports a multipart body that could not be read.
func respondSpoolError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		middleware.RespondWithError(w, http.StatusRequestEntityTooLarge, "", "request body too large")
		return
	}
	if errors.Is(err, errFieldTooLarge) {
		middleware.RespondWithError(w, http.StatusBadRequest, "InvalidBody", err.Error())
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "InvalidBody", "invalid multipart body")
}

// singleImage checks the one optional file of an admin form. Content is
// sniffed again by the asset store.
func singleImage(form *spooledForm, logger *zap.Logger) (*service.LocalFile, error) {
	file := form.first()
	if file == nil {
		return nil, nil
	}
	if file.Size > service.MaxImageSize {
		form.files.Remove(logger)
		return nil, service.ErrFileTooLarge
	}
	return file, nil
}
