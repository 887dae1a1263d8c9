package ports

import (
	"context"
	"time"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
)

// ProgramReportData datos que necesita un generador para el reporte de programas.
type ProgramReportData struct {
	GeneratedAt time.Time
	StateFilter string // vacío = todos los estados
	Stats       dto.ProgramStatsResponse
	Programs    []dto.ProgramResponse
}

// ProgramReportGenerator define el puerto de salida para renderizar el reporte de programas.
// La aplicación solo conoce este contrato; el adaptador concreto (Maroto/PDF) vive en infraestructura.
type ProgramReportGenerator interface {
	GenerateProgramReport(ctx context.Context, data ProgramReportData) ([]byte, error)
}
