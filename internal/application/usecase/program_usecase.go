package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
	"github.com/jhoicas/vivienda-api/pkg/metrics"
)

// Intentos de generación de código ante colisión con el UNIQUE de la tabla.
const maxCodeAttempts = 5

const resourceProgram = "programa"

var (
	msgProgramNameShort        = fmt.Sprintf("El nombre debe tener al menos %d caracteres", entity.ProgramNameMin)
	msgProgramNameLong         = fmt.Sprintf("El nombre no puede exceder %d caracteres", entity.ProgramNameMax)
	msgProgramDescriptionShort = fmt.Sprintf("La descripción debe tener al menos %d caracteres", entity.ProgramDescriptionMin)
	msgProgramDescriptionLong  = fmt.Sprintf("La descripción no puede exceder %d caracteres", entity.ProgramDescriptionMax)
	msgProgramEntity           = "Debe proporcionar una entidad responsable"
	msgProgramState            = oneOfMessage("Estado inválido. Estados válidos: ", entity.ProgramStates())
)

// ProgramUseCase casos de uso CRUD, cambio de estado y estadísticas de programas.
type ProgramUseCase struct {
	repo repository.ProgramRepository
}

// NewProgramUseCase construye el caso de uso con el puerto de persistencia.
func NewProgramUseCase(repo repository.ProgramRepository) *ProgramUseCase {
	return &ProgramUseCase{repo: repo}
}

// Create valida todos los campos, fuerza el estado DRAFT y asigna el código del programa.
func (uc *ProgramUseCase) Create(ctx context.Context, in dto.CreateProgramRequest) (*dto.ProgramResponse, error) {
	name := clean(in.Name)
	description := clean(in.Description)
	responsible := clean(in.ResponsibleEntity)

	var errs violations
	errs.addAll(validateProgramName(name))
	errs.addAll(validateProgramDescription(description))
	errs.addAll(validateResponsibleEntity(responsible))
	if err := errs.err(); err != nil {
		metrics.RecordValidationFailure(resourceProgram)
		return nil, err
	}

	now := time.Now().UTC()
	program := &entity.Program{
		ID:                uuid.New().String(),
		Name:              name,
		Description:       description,
		ResponsibleEntity: responsible,
		State:             entity.ProgramStateDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		program.Code = ""
		program.EnsureCode(now)
		err = uc.repo.Create(ctx, program)
		if !errors.Is(err, domain.ErrDuplicateCode) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordCreated(resourceProgram)
	return toProgramResponse(program), nil
}

// GetByID obtiene un programa por ID.
func (uc *ProgramUseCase) GetByID(ctx context.Context, id string) (*dto.ProgramResponse, error) {
	program, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProgramResponse(program), nil
}

// List lista programas, opcionalmente filtrados por estado exacto.
func (uc *ProgramUseCase) List(ctx context.Context, state string) (*dto.ProgramListResponse, error) {
	list, err := uc.repo.List(ctx, state)
	if err != nil {
		return nil, err
	}
	items := lo.Map(list, func(p *entity.Program, _ int) dto.ProgramResponse {
		return *toProgramResponse(p)
	})
	return &dto.ProgramListResponse{Count: len(items), Results: items}, nil
}

// Update actualiza solo los campos presentes. La existencia se verifica antes de validar.
func (uc *ProgramUseCase) Update(ctx context.Context, id string, in dto.UpdateProgramRequest) (*dto.ProgramResponse, error) {
	program, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		errs  violations
		patch repository.ProgramPatch
	)
	if in.Name.Set {
		name := clean(in.Name.Value)
		errs.addAll(validateProgramName(name))
		patch.Name = &name
	}
	if in.Description.Set {
		description := clean(in.Description.Value)
		errs.addAll(validateProgramDescription(description))
		patch.Description = &description
	}
	if in.ResponsibleEntity.Set {
		responsible := clean(in.ResponsibleEntity.Value)
		errs.addAll(validateResponsibleEntity(responsible))
		patch.ResponsibleEntity = &responsible
	}
	if in.State.Set {
		if !entity.IsValidProgramState(in.State.Value) {
			errs.add(msgProgramState)
		}
		patch.State = in.State.Ptr()
	}
	if err := errs.err(); err != nil {
		metrics.RecordValidationFailure(resourceProgram)
		return nil, err
	}
	if patch.IsEmpty() {
		return toProgramResponse(program), nil
	}

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Resource: resourceProgram, ID: id}
	}
	return toProgramResponse(updated), nil
}

// Delete elimina definitivamente un programa.
func (uc *ProgramUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return false, err
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, &domain.NotFoundError{Resource: resourceProgram, ID: id}
	}
	return true, nil
}

// ChangeState valida el nuevo estado y luego la existencia; solo escribe el estado.
func (uc *ProgramUseCase) ChangeState(ctx context.Context, id, newState string) (*dto.ProgramResponse, error) {
	if !entity.IsValidProgramState(newState) {
		metrics.RecordValidationFailure(resourceProgram)
		return nil, domain.NewValidationError(msgProgramState)
	}
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, id, repository.ProgramPatch{State: &newState})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Resource: resourceProgram, ID: id}
	}
	return toProgramResponse(updated), nil
}

// Stats devuelve el total y el conteo por estado.
func (uc *ProgramUseCase) Stats(ctx context.Context) (*dto.ProgramStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byState := make(map[string]int, len(entity.ProgramStates()))
	for _, s := range entity.ProgramStates() {
		byState[s] = stats.ByState[s]
	}
	return &dto.ProgramStatsResponse{Total: stats.Total, ByState: byState}, nil
}

func (uc *ProgramUseCase) mustGet(ctx context.Context, id string) (*entity.Program, error) {
	program, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, &domain.NotFoundError{Resource: resourceProgram, ID: id}
	}
	return program, nil
}

func validateProgramName(name string) []string {
	return checkLength(name, entity.ProgramNameMin, entity.ProgramNameMax, msgProgramNameShort, msgProgramNameLong)
}

func validateProgramDescription(description string) []string {
	return checkLength(description, entity.ProgramDescriptionMin, entity.ProgramDescriptionMax,
		msgProgramDescriptionShort, msgProgramDescriptionLong)
}

func validateResponsibleEntity(responsible string) []string {
	if responsible == "" {
		return []string{msgProgramEntity}
	}
	return nil
}

func toProgramResponse(p *entity.Program) *dto.ProgramResponse {
	if p == nil {
		return nil
	}
	return &dto.ProgramResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		ResponsibleEntity: p.ResponsibleEntity,
		Code:              p.Code,
		State:             p.State,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
