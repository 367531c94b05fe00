package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMimeType(t *testing.T) {
	pdfHeader := append([]byte("%PDF-1.5\n"), bytes.Repeat([]byte{0x20}, 32)...)
	zipHeader := append([]byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00, 0x06, 0x00}, bytes.Repeat([]byte{0x00}, 32)...)
	binaryJunk := append([]byte{0x00, 0x01, 0x02, 0x03}, bytes.Repeat([]byte{0xFF}, 32)...)

	tests := []struct {
		name     string
		content  []byte
		allowed  []string
		wantMime string
		wantErr  bool
	}{
		{
			name:     "pdf 简历放行",
			content:  pdfHeader,
			allowed:  AllowedResumeMimeTypes,
			wantMime: "application/pdf",
		},
		{
			// docx 实际嗅探为 zip
			name:     "docx 简历放行",
			content:  zipHeader,
			allowed:  AllowedResumeMimeTypes,
			wantMime: "application/zip",
		},
		{
			// doc 等无魔数格式落到 octet-stream，由扩展名校验兜底
			name:     "二进制内容按 octet-stream 放行",
			content:  binaryJunk,
			allowed:  AllowedResumeMimeTypes,
			wantMime: "application/octet-stream",
		},
		{
			name:    "html 内容拒绝",
			content: []byte("<html><body>resume</body></html>"),
			allowed: AllowedResumeMimeTypes,
			wantErr: true,
		},
		{
			name:    "空文件拒绝",
			content: nil,
			allowed: AllowedResumeMimeTypes,
			wantErr: true,
		},
		{
			name:    "zip 在纯 pdf 白名单下拒绝",
			content: zipHeader,
			allowed: []string{MimePDF},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mime, err := ValidateMimeType(bytes.NewReader(tt.content), tt.allowed)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid file type")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMime, mime)
		})
	}
}
