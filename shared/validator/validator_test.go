package validator_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"cowork/shared/failure"
	"cowork/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seating string

func (s seating) Valid() bool {
	return s == "Hot Desk" || s == "Cabin"
}

type reservation struct {
	Email   string  `json:"email"    validate:"required,email"`
	Seater  int     `json:"seater"   validate:"gte=1,lte=25"`
	Seating seating `json:"seating"  validate:"enum"`
}

type document struct {
	File *multipart.FileHeader `json:"file" validate:"required,mimetypes=image/png application/pdf,maxfilesize=0.001"`
}

var (
	pngMagic = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfMagic = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
)

func formFile(t *testing.T, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload.bin"`)

	if contentType != "" {
		header.Set("Content-Type", contentType)
	}

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)

	return form.File["file"][0]
}

func TestValidateStruct(t *testing.T) {
	valid := reservation{Email: "asha@example.com", Seater: 3, Seating: "Cabin"}

	tests := []struct {
		name    string
		mutate  func(r *reservation)
		wantMsg string
	}{
		{
			name:   "valid",
			mutate: func(*reservation) {},
		},
		{
			name:    "missing email",
			mutate:  func(r *reservation) { r.Email = "" },
			wantMsg: "email is required",
		},
		{
			name:    "bad email",
			mutate:  func(r *reservation) { r.Email = "asha" },
			wantMsg: "email must be a valid email address",
		},
		{
			name:    "seater above range",
			mutate:  func(r *reservation) { r.Seater = 40 },
			wantMsg: "seater must be less than or equal to 25",
		},
		{
			name:    "unknown enum value",
			mutate:  func(r *reservation) { r.Seating = "Rooftop" },
			wantMsg: "seating has an unsupported value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.True(t, failure.IsCode(err, http.StatusBadRequest))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "decodes and validates",
			body: `{"email":"asha@example.com","seater":5,"seating":"Hot Desk"}`,
		},
		{
			name:    "malformed body",
			body:    `{"email":`,
			wantErr: true,
		},
		{
			name:    "empty object fails required",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req reservation

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr {
				assert.True(t, failure.IsCode(err, http.StatusBadRequest))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, seating("Hot Desk"), req.Seating)
		})
	}
}

func TestValidateStruct_Files(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
		wantMsg     string
	}{
		{
			name:        "declared type allowed",
			contentType: "application/pdf",
			content:     pdfMagic,
		},
		{
			name:    "sniffed when no type is declared",
			content: pngMagic,
		},
		{
			name:        "sniffed when declared as octet stream",
			contentType: "application/octet-stream",
			content:     pdfMagic,
		},
		{
			name:        "declared type not allowed",
			contentType: "image/gif",
			content:     pngMagic,
			wantMsg:     "file must be one of image/png application/pdf",
		},
		{
			name:    "sniffed type not allowed",
			content: []byte("plain text is not a document"),
			wantMsg: "file must be one of image/png application/pdf",
		},
		{
			name:        "too large",
			contentType: "image/png",
			content:     append(pngMagic, bytes.Repeat([]byte{0}, 2048)...),
			wantMsg:     "file must not exceed 0.001 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := document{File: formFile(t, tt.contentType, tt.content)}

			err := validator.ValidateStruct(&req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	t.Run("missing file", func(t *testing.T) {
		err := validator.ValidateStruct(&document{})
		assert.EqualError(t, err, "file is required")
	})
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		field   any
		tag     string
		wantErr bool
	}{
		{field: "101A", tag: "required"},
		{field: "", tag: "required", wantErr: true},
		{field: "Coffee", tag: "oneof=Coffee Tea"},
		{field: "Juice", tag: "oneof=Coffee Tea", wantErr: true},
		{field: "2026-10-18", tag: "datetime=2006-01-02"},
		{field: "18/10/2026", tag: "datetime=2006-01-02", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v %s", tt.field, tt.tag), func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}
