package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	KVMemory = "memory"
	KVRedis  = "redis"
	KVMySQL  = "mysql"
)

// 页面横幅文本
const (
	NoticeDemoData   = "Backend unavailable - using demo data"
	NoticeSampleQuiz = "Real quiz data not available - using enhanced sample questions"
)

// 上传文件相关常量
const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimeText        = "text/plain"
	MimeZip         = "application/zip"
	MimeOctetStream = "application/octet-stream"
)

// AllowedUploadTypes 后端 OCR 能处理的文档类型，docx 被识别为 zip
var AllowedUploadTypes = []string{MimePDF, MimeImage, MimeText, MimeZip, MimeOctetStream}

// MaxUploadSize 与后端 MAX_CONTENT_LENGTH 一致，60MB
const MaxUploadSize = 60 << 20
