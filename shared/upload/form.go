package upload

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"cowork/shared/constant"
	"cowork/shared/failure"
)

// ParseForm reads a multipart body. A malformed body is the client's fault.
func ParseForm(request *http.Request) error {
	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	return nil
}

// FormValues returns every value sent under field and whether the field was sent at all.
func FormValues(request *http.Request, field string) ([]string, bool) {
	if request.MultipartForm == nil || request.MultipartForm.Value == nil {
		return nil, false
	}

	values, ok := request.MultipartForm.Value[field]

	return values, ok
}

// FormFile returns the header of an optional form file, or nil when the field is absent.
func FormFile(request *http.Request, field string) *multipart.FileHeader {
	if request.MultipartForm == nil || request.MultipartForm.File == nil {
		return nil
	}

	headers := request.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil
	}

	return headers[0]
}

// FormFiles returns every file sent under field.
func FormFiles(request *http.Request, field string) []*multipart.FileHeader {
	if request.MultipartForm == nil || request.MultipartForm.File == nil {
		return nil
	}

	return request.MultipartForm.File[field]
}

// NewFileHeader builds a parsed multipart file header, as a handler would receive it.
func NewFileHeader(field, filename, contentType string, content []byte) (*multipart.FileHeader, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	partHeader.Set(constant.RequestHeaderContentType, contentType)

	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create part: %w", err)
	}

	if _, err = part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write part: %w", err)
	}

	if err = writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(int64(body.Len()) + 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}

	return form.File[field][0], nil
}
