package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

// 文件上传相关常量
const (
	MimePDF         = "application/pdf"
	MimeMSWord      = "application/msword"
	MimeDocx        = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

var (
	AllowedResumeExtensions = []string{".pdf", ".doc", ".docx"}

	// 魔数嗅探下 docx 呈现为 zip，doc 呈现为 octet-stream
	AllowedResumeMimeTypes = []string{MimePDF, MimeMSWord, MimeDocx, MimeZip, MimeOctetStream}
)
