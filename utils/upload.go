package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	storage "github.com/supabase-community/storage-go"
)

// SafeFilename builds a collision-free, filesystem-safe name for an
// uploaded file: a short random prefix plus a slugged base name.
func SafeFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	name := slug.Make(base)
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%s-%s%s", uuid.New().String()[:8], name, ext)
}

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "static"
}

// SaveUpload stores an uploaded file and returns its public URL. When
// Supabase storage is configured the file goes there; otherwise it lands
// under the local upload directory served at /uploads.
func SaveUpload(fileHeader *multipart.FileHeader, subdir string) (string, error) {
	filename := SafeFilename(fileHeader.Filename)

	if os.Getenv("SUPABASE_URL") != "" && os.Getenv("SUPABASE_KEY") != "" {
		return uploadToSupabase(fileHeader, subdir+"/"+filename)
	}

	dir := filepath.Join(uploadDir(), subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

// uploadToSupabase pushes the file into the 'uploads' bucket and returns
// its public URL.
func uploadToSupabase(fileHeader *multipart.FileHeader, objectPath string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")

	storageClient := storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	options := storage.FileOptions{
		ContentType: &contentType,
	}

	if _, err := storageClient.UploadFile("uploads", objectPath, &buf, options); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/storage/v1/object/public/uploads/%s", supabaseURL, objectPath), nil
}
