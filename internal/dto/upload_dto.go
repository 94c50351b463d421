package dto

// UploadResponse describes a stored upload and how to retrieve it.
type UploadResponse struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}
