package entity

import "time"

// Paciente representa la ficha clínica de un paciente del consultorio.
// El odontograma es el estado "vivo" de la boca: lo muta únicamente el flujo
// de creación de citas, nunca el update genérico de paciente.
type Paciente struct {
	ID                 string
	Nombre             string
	Cedula             string    // única en el sistema
	FechaNacimiento    time.Time // solo fecha, normalizada a medianoche en la zona de referencia
	Edad               int
	Sexo               string
	Telefono           string
	TelefonoEmergencia string
	Direccion          string
	Ocupacion          string
	GrupoSanguineo     string

	// Antecedentes médicos (texto libre)
	Alergias               string
	EnfermedadesCronicas   string
	Medicamentos           string
	CondicionesEspeciales  string
	Cirugias               string
	AntecedentesFamiliares string

	UsuarioID   string   // odontólogo que registró al paciente
	Odontograma []Diente // estado vivo, 32 piezas
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DatosPaciente es la copia desnormalizada de los datos demográficos que cada
// cita congela al momento de su creación (histórico inmutable).
type DatosPaciente struct {
	Nombre          string `json:"nombre"`
	Cedula          string `json:"cedula"`
	Edad            int    `json:"edad"`
	Sexo            string `json:"sexo"`
	Telefono        string `json:"telefono"`
	GrupoSanguineo  string `json:"grupoSanguineo"`
	Alergias        string `json:"alergias"`
}

// Snapshot devuelve la copia desnormalizada de los datos del paciente.
func (p *Paciente) Snapshot() DatosPaciente {
	return DatosPaciente{
		Nombre:         p.Nombre,
		Cedula:         p.Cedula,
		Edad:           p.Edad,
		Sexo:           p.Sexo,
		Telefono:       p.Telefono,
		GrupoSanguineo: p.GrupoSanguineo,
		Alergias:       p.Alergias,
	}
}
