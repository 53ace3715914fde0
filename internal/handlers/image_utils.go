package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// imageFormKeys are the multipart keys portfolio uploads are read from.
var imageFormKeys = []string{"image", "images", "images[]"}

type uploadedImage struct {
	Filename    string
	ContentType string
	Data        []byte
}

// collectImageFiles gathers every file stored under the given form keys.
func collectImageFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// readImages loads the files and sniffs their content type from the bytes.
// The client supplied Content-Type header is ignored.
func readImages(headers []*multipart.FileHeader) ([]uploadedImage, error) {
	images := make([]uploadedImage, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		images = append(images, uploadedImage{
			Filename:    fh.Filename,
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}
	return images, nil
}
