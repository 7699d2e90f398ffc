// file: internals/helpers/upload.go
package helper

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"sekolahku_backend/internals/configs"
)

/* ===============================
   Upload kinds & limits
=================================*/

type UploadKind string

const (
	UploadProfileImage  UploadKind = "profile-images"
	UploadDocument      UploadKind = "documents"
	UploadStudyMaterial UploadKind = "study-materials"
)

var uploadLimits = map[UploadKind]int64{
	UploadProfileImage:  5 << 20,
	UploadDocument:      10 << 20,
	UploadStudyMaterial: 20 << 20,
}

var uploadMimes = map[UploadKind][]string{
	UploadProfileImage:  {"image/jpeg", "image/png", "image/gif"},
	UploadDocument:      {"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	UploadStudyMaterial: {"application/pdf", "application/msword", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "application/vnd.ms-powerpoint", "application/vnd.openxmlformats-officedocument.presentationml.presentation", "image/jpeg", "image/png", "image/gif"},
}

type UploadedFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
}

// SaveUpload validates size/type for the kind and writes the file under a
// kind-specific subdirectory with a uuid-based name. Images uploaded as
// profile pictures are converted to webp first.
func SaveUpload(kind UploadKind, fh *multipart.FileHeader) (*UploadedFile, error) {
	if max := uploadLimits[kind]; fh.Size > max {
		return nil, fmt.Errorf("file exceeds the %dMB limit", max>>20)
	}
	contentType := fh.Header.Get("Content-Type")
	if !mimeAllowed(kind, contentType) {
		return nil, fmt.Errorf("file type %s is not allowed", contentType)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if kind == UploadProfileImage {
		if data, err = ConvertToWebP(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("image conversion failed: %w", err)
		}
		ext = ".webp"
		contentType = "image/webp"
	}

	dir := filepath.Join(configs.UploadDir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, err
	}

	return &UploadedFile{
		Filename:     filename,
		OriginalName: fh.Filename,
		MimeType:     contentType,
		Size:         int64(len(data)),
		Path:         path,
	}, nil
}

// ConvertToWebP decodes, bounds to 1024px wide and re-encodes as webp q80.
func ConvertToWebP(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Dx() > 1024 {
		img = imaging.Resize(img, 1024, 0, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mimeAllowed(kind UploadKind, contentType string) bool {
	for _, m := range uploadMimes[kind] {
		if m == contentType {
			return true
		}
	}
	return false
}

// RemoveUpload deletes a previously stored file, ignoring missing files.
func RemoveUpload(path string) {
	if path == "" {
		return
	}
	_ = os.Remove(path)
}
