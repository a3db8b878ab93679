package utils

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestFileHeader creates a mock multipart.FileHeader for testing
func createTestFileHeader(filename string, size int64, content []byte) *multipart.FileHeader {
	// Create a buffer to write our multipart form
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	// Create form file
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, _ := writer.CreatePart(h)
	part.Write(content)
	writer.Close()

	// Parse the multipart form
	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content)) + 1024)
	defer form.RemoveAll()

	if len(form.File["file"]) > 0 {
		fileHeader := form.File["file"][0]
		// Override size for testing purposes
		fileHeader.Size = size
		return fileHeader
	}

	return nil
}

func TestValidateImageFile_Success(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"PNG file", "menu.png"},
		{"JPG file", "burger.jpg"},
		{"JPEG file", "pizza.jpeg"},
		{"Uppercase extension", "logo.PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("fake image content")
			fileHeader := createTestFileHeader(tt.filename, int64(len(content)), content)
			require.NotNil(t, fileHeader)

			err := ValidateImageFile(fileHeader)
			assert.NoError(t, err)
		})
	}
}

func TestValidateImageFile_FileTooLarge(t *testing.T) {
	// Test with file exceeding size limit (11MB)
	content := []byte("fake png content")
	fileHeader := createTestFileHeader("large.png", 11*1024*1024, content)
	require.NotNil(t, fileHeader)

	err := ValidateImageFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "FILE_TOO_LARGE", fileErr.Code)
	assert.Contains(t, fileErr.Message, "File size exceeds maximum allowed size")
}

func TestValidateImageFile_InvalidFormat_GIF(t *testing.T) {
	content := []byte("fake gif content")
	fileHeader := createTestFileHeader("test.gif", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidateImageFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
	assert.Contains(t, fileErr.Message, "Only PNG and JPEG files are allowed")
}

func TestValidateImageFile_InvalidFormat_NoExtension(t *testing.T) {
	content := []byte("fake content")
	fileHeader := createTestFileHeader("testfile", int64(len(content)), content)
	require.NotNil(t, fileHeader)

	err := ValidateImageFile(fileHeader)
	assert.Error(t, err)

	fileErr, ok := err.(*FileUploadError)
	require.True(t, ok, "Error should be of type FileUploadError")
	assert.Equal(t, "INVALID_FILE_FORMAT", fileErr.Code)
}

func TestImageContentType(t *testing.T) {
	assert.Equal(t, "image/png", ImageContentType("photo.png"))
	assert.Equal(t, "image/jpeg", ImageContentType("photo.jpg"))
	assert.Equal(t, "image/jpeg", ImageContentType("photo.JPEG"))
	assert.Equal(t, "application/octet-stream", ImageContentType("notes.txt"))
}

func TestFileUploadError_Error(t *testing.T) {
	err := &FileUploadError{
		Code:    "TEST_CODE",
		Message: "Test error message",
	}

	assert.Equal(t, "Test error message", err.Error())
}
