package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vivienda-api/internal/application/ports"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
)

// ReportUseCase genera el reporte descargable de programas.
type ReportUseCase struct {
	programs  *ProgramUseCase
	generator ports.ProgramReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(programs *ProgramUseCase, generator ports.ProgramReportGenerator) *ReportUseCase {
	return &ReportUseCase{programs: programs, generator: generator}
}

// ProgramReport arma el listado (filtrado por estado si se indica) con sus estadísticas y lo renderiza.
// Devuelve los bytes del documento y el nombre de archivo sugerido.
func (uc *ReportUseCase) ProgramReport(ctx context.Context, state string) ([]byte, string, error) {
	if state != "" && !entity.IsValidProgramState(state) {
		return nil, "", domain.NewValidationError(msgProgramState)
	}
	list, err := uc.programs.List(ctx, state)
	if err != nil {
		return nil, "", err
	}
	stats, err := uc.programs.Stats(ctx)
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	doc, err := uc.generator.GenerateProgramReport(ctx, ports.ProgramReportData{
		GeneratedAt: now,
		StateFilter: state,
		Stats:       *stats,
		Programs:    list.Results,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte de programas: %w", err)
	}
	return doc, fmt.Sprintf("programas_%s.pdf", now.Format("20060102_150405")), nil
}
