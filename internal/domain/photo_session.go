package domain

import "time"

// PhotoSession agrupa las fotos tomadas en una consulta.
// Los campos *Path son rutas de storage, no URLs públicas.
type PhotoSession struct {
	ID                    string    `json:"id"`
	PatientID             string    `json:"patient_id"`
	FrontalPhotoPath      string    `json:"frontal_photo_path"`
	LeftProfilePhotoPath  string    `json:"left_profile_photo_path,omitempty"`
	RightProfilePhotoPath string    `json:"right_profile_photo_path,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// HasFrontalPhoto indica si la sesión cumple el requisito mínimo para analizar.
func (p PhotoSession) HasFrontalPhoto() bool {
	return p.FrontalPhotoPath != ""
}
