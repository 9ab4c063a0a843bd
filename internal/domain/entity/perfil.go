package entity

import "time"

// Perfil es la extensión uno-a-uno de un Usuario con los datos públicos del
// odontólogo (directorio de doctores y página de inicio del consultorio).
type Perfil struct {
	ID              string
	UsuarioID       string // único
	Telefono        string
	Direccion       string
	FechaNacimiento time.Time
	Especialidad    string
	Matricula       string // número de licencia profesional
	Biografia       string
	Foto            string // nombre de archivo generado; blob opaco en storage
	DiasTrabajo     []string
	HorarioInicio   string // "08:00"
	HorarioFin      string // "17:00"
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
