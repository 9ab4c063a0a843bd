package dto

import "time"

// UpsertPerfilRequest crea o actualiza el perfil del odontólogo autenticado.
type UpsertPerfilRequest struct {
	Telefono        string   `json:"telefono"`
	Direccion       string   `json:"direccion"`
	FechaNacimiento string   `json:"fechaNacimiento"` // YYYY-MM-DD
	Especialidad    string   `json:"especialidad"`
	Matricula       string   `json:"matricula"`
	Biografia       string   `json:"biografia"`
	DiasTrabajo     []string `json:"diasTrabajo"`
	HorarioInicio   string   `json:"horarioInicio"`
	HorarioFin      string   `json:"horarioFin"`
}

// PerfilResponse salida de un perfil (directorio de doctores / home pública).
type PerfilResponse struct {
	ID              string    `json:"id"`
	UsuarioID       string    `json:"usuarioId"`
	Telefono        string    `json:"telefono"`
	Direccion       string    `json:"direccion"`
	FechaNacimiento string    `json:"fechaNacimiento"`
	Especialidad    string    `json:"especialidad"`
	Matricula       string    `json:"matricula"`
	Biografia       string    `json:"biografia"`
	Foto            string    `json:"foto"`
	DiasTrabajo     []string  `json:"diasTrabajo"`
	HorarioInicio   string    `json:"horarioInicio"`
	HorarioFin      string    `json:"horarioFin"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
