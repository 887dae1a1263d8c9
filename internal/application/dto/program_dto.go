package dto

import "time"

// CreateProgramRequest entrada para crear un programa. El estado inicial siempre es DRAFT.
type CreateProgramRequest struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	ResponsibleEntity string `json:"responsible_entity"`
}

// UpdateProgramRequest entrada para actualización parcial de un programa.
type UpdateProgramRequest struct {
	Name              Optional[string] `json:"name" swaggertype:"string"`
	Description       Optional[string] `json:"description" swaggertype:"string"`
	ResponsibleEntity Optional[string] `json:"responsible_entity" swaggertype:"string"`
	State             Optional[string] `json:"state" swaggertype:"string"`
}

// ChangeProgramStateRequest cuerpo de POST /programs/:id/change-state.
type ChangeProgramStateRequest struct {
	NewState string `json:"new_state"`
}

// ProgramResponse proyección de un programa.
type ProgramResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	ResponsibleEntity string    `json:"responsible_entity"`
	Code              string    `json:"code"`
	State             string    `json:"state"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProgramListResponse listado sin paginación.
type ProgramListResponse struct {
	Count   int               `json:"count"`
	Results []ProgramResponse `json:"results"`
}

// ChangeProgramStateResponse respuesta del cambio de estado.
type ChangeProgramStateResponse struct {
	Message string          `json:"message"`
	Program ProgramResponse `json:"program"`
}

// ProgramStatsResponse totales y conteo por estado (DRAFT, ACTIVE, DISABLED).
type ProgramStatsResponse struct {
	Total   int            `json:"total"`
	ByState map[string]int `json:"by_state"`
}
