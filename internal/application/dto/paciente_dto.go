package dto

import (
	"time"

	"github.com/clinident/clinident-api/internal/domain/entity"
)

// CreatePacienteRequest entrada para registrar un paciente.
// FechaNacimiento en formato YYYY-MM-DD; Edad es opcional (se deriva si falta).
type CreatePacienteRequest struct {
	Nombre             string `json:"nombre" validate:"required,min=1,max=200"`
	Cedula             string `json:"cedula" validate:"required,min=1,max=30"`
	FechaNacimiento    string `json:"fechaNacimiento" validate:"required"`
	Edad               *int   `json:"edad"`
	Sexo               string `json:"sexo"`
	Telefono           string `json:"telefono"`
	TelefonoEmergencia string `json:"telefonoEmergencia"`
	Direccion          string `json:"direccion"`
	Ocupacion          string `json:"ocupacion"`
	GrupoSanguineo     string `json:"grupoSanguineo"`

	Alergias               string `json:"alergias"`
	EnfermedadesCronicas   string `json:"enfermedadesCronicas"`
	Medicamentos           string `json:"medicamentos"`
	CondicionesEspeciales  string `json:"condicionesEspeciales"`
	Cirugias               string `json:"cirugias"`
	AntecedentesFamiliares string `json:"antecedentesFamiliares"`
}

// UpdatePacienteRequest entrada para editar una ficha (campos opcionales).
// No incluye odontograma: el estado vivo solo lo muta el flujo de citas.
type UpdatePacienteRequest struct {
	Nombre             *string `json:"nombre"`
	FechaNacimiento    *string `json:"fechaNacimiento"`
	Edad               *int    `json:"edad"`
	Sexo               *string `json:"sexo"`
	Telefono           *string `json:"telefono"`
	TelefonoEmergencia *string `json:"telefonoEmergencia"`
	Direccion          *string `json:"direccion"`
	Ocupacion          *string `json:"ocupacion"`
	GrupoSanguineo     *string `json:"grupoSanguineo"`

	Alergias               *string `json:"alergias"`
	EnfermedadesCronicas   *string `json:"enfermedadesCronicas"`
	Medicamentos           *string `json:"medicamentos"`
	CondicionesEspeciales  *string `json:"condicionesEspeciales"`
	Cirugias               *string `json:"cirugias"`
	AntecedentesFamiliares *string `json:"antecedentesFamiliares"`
}

// PacienteResponse salida de una ficha de paciente.
type PacienteResponse struct {
	ID                     string          `json:"id"`
	Nombre                 string          `json:"nombre"`
	Cedula                 string          `json:"cedula"`
	FechaNacimiento        string          `json:"fechaNacimiento"`
	Edad                   int             `json:"edad"`
	Sexo                   string          `json:"sexo"`
	Telefono               string          `json:"telefono"`
	TelefonoEmergencia     string          `json:"telefonoEmergencia"`
	Direccion              string          `json:"direccion"`
	Ocupacion              string          `json:"ocupacion"`
	GrupoSanguineo         string          `json:"grupoSanguineo"`
	Alergias               string          `json:"alergias"`
	EnfermedadesCronicas   string          `json:"enfermedadesCronicas"`
	Medicamentos           string          `json:"medicamentos"`
	CondicionesEspeciales  string          `json:"condicionesEspeciales"`
	Cirugias               string          `json:"cirugias"`
	AntecedentesFamiliares string          `json:"antecedentesFamiliares"`
	UsuarioID              string          `json:"usuarioId"`
	Odontograma            []entity.Diente `json:"odontograma"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"updatedAt"`
}

// PacienteListResponse lista paginada de pacientes.
type PacienteListResponse struct {
	Items []PacienteResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
