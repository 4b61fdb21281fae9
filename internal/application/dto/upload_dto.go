package dto

import "strings"

// UploadSignatureRequest parámetros que el cliente firmará contra Cloudinary.
// El timestamp lo elige el cliente: la firma solo vale para ese valor exacto.
type UploadSignatureRequest struct {
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
}

// Validate exige ambos parámetros, como la subida directa los exige.
func (r *UploadSignatureRequest) Validate() error {
	if r.Timestamp <= 0 {
		return invalid("timestamp es requerido")
	}
	if strings.TrimSpace(r.Folder) == "" {
		return invalid("folder es requerido")
	}
	return nil
}
