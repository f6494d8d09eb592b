package image_dto

type UploadImageResponse struct {
	Success     bool   `json:"success"`
	ImageData   string `json:"imageData"`
	ContentType string `json:"contentType"`
}
