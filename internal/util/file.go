package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// ValidateMimeType 按文件头校验 MIME 类型，读取后调用方需要重置读取位置
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/", "application/pdf"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	if n == 0 {
		return "", ErrEmptyUpload
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}
