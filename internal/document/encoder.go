// Package document 负责扫描件的编解码：把原始文件转换为
// 可直接嵌入请求体与前端预览的 base64 data URI 载荷。
package document

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"courrier/backend/internal/domain"
)

var (
	ErrEmptyDocument        = errors.New("document is empty")
	ErrUnreadableDocument   = errors.New("document is unreadable")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMalformedDataURI     = errors.New("malformed data uri")
)

const dataURIPrefix = "data:"

// SupportedMediaType 判断声明的媒体类型是否受支持。
//
// 录入流程只接受相机图片（image/*）与 PDF 两类文档。
func SupportedMediaType(mediaType string) bool {
	return mediaType == domain.MediaTypePDF ||
		strings.HasPrefix(mediaType, domain.MediaTypeImagePrefix)
}

// Encode 将原始文件编码为传输安全的文档载荷。
//
// 纯转换，无副作用；文件不可读或为空时立即失败，不做重试。
func Encode(r io.Reader, mediaType, filename string) (*domain.DocumentPayload, error) {
	if !SupportedMediaType(mediaType) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableDocument, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyDocument
	}

	encoded := base64.StdEncoding.EncodeToString(raw)

	return &domain.DocumentPayload{
		DataURI:   dataURIPrefix + mediaType + ";base64," + encoded,
		MediaType: mediaType,
		Filename:  filename,
		Size:      int64(len(raw)),
	}, nil
}

// Decode 从文档载荷还原原始字节。
//
// 与 Encode 互为逆操作：Decode(Encode(b)) == b。
func Decode(payload *domain.DocumentPayload) ([]byte, error) {
	if payload == nil {
		return nil, ErrMalformedDataURI
	}

	uri := payload.DataURI
	if !strings.HasPrefix(uri, dataURIPrefix) {
		return nil, ErrMalformedDataURI
	}

	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, ErrMalformedDataURI
	}

	raw, err := base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}
	return raw, nil
}
