package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ergolife/storefront/internal/infrastructure/storage"
	"github.com/ergolife/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, "upload.bin")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("folder", "blogs"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAdminHandler_Upload(t *testing.T) {
	gif := append([]byte("GIF89a"), bytes.Repeat([]byte{1}, 32)...)

	tests := []struct {
		name       string
		field      string
		content    []byte
		maxSize    int64
		wantStatus int
		wantCode   string
	}{
		{"stores image", "file", gif, 0, http.StatusCreated, ""},
		{"missing file field", "", nil, 0, http.StatusBadRequest, dto.ErrCodeBadRequest},
		{"too large", "file", gif, 8, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge},
		{"not an image", "file", []byte("%PDF-1.7 not an image"), 0, http.StatusUnsupportedMediaType, dto.ErrCodeUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryImageStore("https://img.test")
			h := NewAdminHandler(nil, store, tt.maxSize)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = multipartRequest(t, tt.field, tt.content)

			h.Upload(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			data, ok := resp.Data.(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "image/gif", data["content_type"])
			key, _ := data["key"].(string)
			assert.Regexp(t, `^blogs/\d{4}/\d{2}/[0-9a-f-]+\.gif$`, key)
			_, stored := store.Get(key)
			assert.True(t, stored)
		})
	}
}
