package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/domain"
	"github.com/jhoicas/vivienda-api/internal/domain/entity"
	"github.com/jhoicas/vivienda-api/internal/domain/repository"
	"github.com/jhoicas/vivienda-api/pkg/metrics"
)

const resourceUser = "usuario"

var (
	msgUserFirstName = fmt.Sprintf("El nombre es requerido y debe tener al menos %d caracteres", entity.UserNameMin)
	msgUserLastName  = fmt.Sprintf("Los apellidos son requeridos y deben tener al menos %d caracteres", entity.UserNameMin)
	msgUserDocument  = fmt.Sprintf("El número de documento es requerido y debe tener al menos %d caracteres", entity.UserDocumentMin)
	msgUserEmailReq  = "El correo es requerido"
	msgUserEmail     = "El correo debe ser válido"
	msgUserRoleReq   = "El rol es requerido"
	msgUserRole      = oneOfMessage("El rol debe ser uno de: ", entity.UserRoles())
	msgUserState     = oneOfMessage("El estado debe ser uno de: ", entity.UserStates())
)

func msgDuplicateDocument(doc string) string {
	return fmt.Sprintf("Ya existe un usuario con el documento %s", doc)
}

func msgDuplicateEmail(email string) string {
	return fmt.Sprintf("Ya existe un usuario con el correo %s", email)
}

// UserUseCase casos de uso CRUD, búsqueda, cambio de estado y estadísticas de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create valida los datos (todas las reglas a la vez), verifica documento y correo únicos y persiste.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &entity.User{
		FirstName:      clean(in.FirstName),
		LastName:       clean(in.LastName),
		DocumentNumber: clean(in.DocumentNumber),
		Email:          clean(in.Email),
		Role:           strings.TrimSpace(in.Role),
		State:          strings.TrimSpace(in.State),
	}
	if user.State == "" {
		user.State = entity.UserStateActive
	}

	var errs violations
	errs.addAll(validateFirstName(user.FirstName))
	errs.addAll(validateLastName(user.LastName))
	errs.addAll(validateDocument(user.DocumentNumber))
	errs.addAll(validateEmail(user.Email))
	errs.addAll(validateRole(user.Role))
	errs.addAll(validateUserState(user.State))
	if err := errs.err(); err != nil {
		metrics.RecordValidationFailure(resourceUser)
		return nil, err
	}

	if err := uc.checkUnique(ctx, user.DocumentNumber, user.Email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.ID = uuid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, uniqueViolationToValidation(err, user.DocumentNumber, user.Email)
	}
	metrics.RecordCreated(resourceUser)
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List aplica la búsqueda (si hay término) o lista todo, y luego filtra por rol y estado en memoria.
func (uc *UserUseCase) List(ctx context.Context, q dto.ListUsersQuery) (*dto.UserListResponse, error) {
	var (
		users []*entity.User
		err   error
	)
	if term := strings.TrimSpace(q.Search); term != "" {
		users, err = uc.repo.Search(ctx, term)
	} else {
		users, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if q.Role != "" {
		users = lo.Filter(users, func(u *entity.User, _ int) bool { return u.Role == q.Role })
	}
	if q.State != "" {
		users = lo.Filter(users, func(u *entity.User, _ int) bool { return u.State == q.State })
	}

	items := lo.Map(users, func(u *entity.User, _ int) dto.UserResponse {
		return *toUserResponse(u)
	})
	return &dto.UserListResponse{Count: len(items), Results: items}, nil
}

// Update valida solo los campos presentes; la unicidad se revisa solo si documento o correo cambian.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	current, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		errs  violations
		patch repository.UserPatch
	)
	if in.FirstName.Set {
		v := clean(in.FirstName.Value)
		errs.addAll(validateFirstName(v))
		patch.FirstName = &v
	}
	if in.LastName.Set {
		v := clean(in.LastName.Value)
		errs.addAll(validateLastName(v))
		patch.LastName = &v
	}
	if in.DocumentNumber.Set {
		v := clean(in.DocumentNumber.Value)
		errs.addAll(validateDocument(v))
		patch.DocumentNumber = &v
	}
	if in.Email.Set {
		v := clean(in.Email.Value)
		errs.addAll(validateEmail(v))
		patch.Email = &v
	}
	if in.Role.Set {
		v := strings.TrimSpace(in.Role.Value)
		errs.addAll(validateRole(v))
		patch.Role = &v
	}
	if in.State.Set {
		v := strings.TrimSpace(in.State.Value)
		errs.addAll(validateUserState(v))
		patch.State = &v
	}
	if err := errs.err(); err != nil {
		metrics.RecordValidationFailure(resourceUser)
		return nil, err
	}
	if patch.IsEmpty() {
		return toUserResponse(current), nil
	}

	var newDocument, newEmail string
	if patch.DocumentNumber != nil && *patch.DocumentNumber != current.DocumentNumber {
		newDocument = *patch.DocumentNumber
	}
	if patch.Email != nil && *patch.Email != current.Email {
		newEmail = *patch.Email
	}
	if err := uc.checkUnique(ctx, newDocument, newEmail); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, uniqueViolationToValidation(err, lo.FromPtr(patch.DocumentNumber), lo.FromPtr(patch.Email))
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Resource: resourceUser, ID: id}
	}
	return toUserResponse(updated), nil
}

// Delete elimina definitivamente un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return false, err
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, &domain.NotFoundError{Resource: resourceUser, ID: id}
	}
	return true, nil
}

// ChangeState valida el nuevo estado y luego la existencia del usuario.
func (uc *UserUseCase) ChangeState(ctx context.Context, id, newState string) (*dto.UserResponse, error) {
	if !entity.IsValidUserState(newState) {
		metrics.RecordValidationFailure(resourceUser)
		return nil, domain.NewValidationError(msgUserState)
	}
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, id, repository.UserPatch{State: &newState})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, &domain.NotFoundError{Resource: resourceUser, ID: id}
	}
	return toUserResponse(updated), nil
}

// Stats devuelve total, activos, inactivos (total - activos) y conteo por rol.
func (uc *UserUseCase) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	stats, err := uc.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	byRole := make(map[string]int, len(entity.UserRoles()))
	for _, r := range entity.UserRoles() {
		byRole[r] = stats.ByRole[r]
	}
	return &dto.UserStatsResponse{
		Total:    stats.Total,
		Active:   stats.Active,
		Inactive: stats.Total - stats.Active,
		ByRole:   byRole,
	}, nil
}

func (uc *UserUseCase) mustGet(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: resourceUser, ID: id}
	}
	return user, nil
}

// checkUnique consulta documento y correo por separado; un valor vacío se omite.
// Es una verificación temprana: el UNIQUE del store es la autoridad final.
func (uc *UserUseCase) checkUnique(ctx context.Context, document, email string) error {
	var errs violations
	if document != "" {
		existing, err := uc.repo.GetByDocument(ctx, document)
		if err != nil {
			return err
		}
		if existing != nil {
			errs.add(msgDuplicateDocument(document))
		}
	}
	if email != "" {
		existing, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			errs.add(msgDuplicateEmail(email))
		}
	}
	if err := errs.err(); err != nil {
		metrics.RecordValidationFailure(resourceUser)
		return err
	}
	return nil
}

// uniqueViolationToValidation traduce la violación de UNIQUE del store al mismo mensaje
// que produce la verificación temprana.
func uniqueViolationToValidation(err error, document, email string) error {
	switch {
	case errors.Is(err, domain.ErrDuplicateDocument):
		return domain.NewValidationError(msgDuplicateDocument(document))
	case errors.Is(err, domain.ErrDuplicateEmail):
		return domain.NewValidationError(msgDuplicateEmail(email))
	}
	return err
}

func validateFirstName(v string) []string {
	if length(v) < entity.UserNameMin {
		return []string{msgUserFirstName}
	}
	return nil
}

func validateLastName(v string) []string {
	if length(v) < entity.UserNameMin {
		return []string{msgUserLastName}
	}
	return nil
}

func validateDocument(v string) []string {
	if length(v) < entity.UserDocumentMin {
		return []string{msgUserDocument}
	}
	return nil
}

func validateEmail(v string) []string {
	switch {
	case v == "":
		return []string{msgUserEmailReq}
	case !strings.Contains(v, "@"):
		return []string{msgUserEmail}
	}
	return nil
}

func validateRole(v string) []string {
	switch {
	case v == "":
		return []string{msgUserRoleReq}
	case !entity.IsValidRole(v):
		return []string{msgUserRole}
	}
	return nil
}

func validateUserState(v string) []string {
	if !entity.IsValidUserState(v) {
		return []string{msgUserState}
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:             u.ID,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName(),
		DocumentNumber: u.DocumentNumber,
		Email:          u.Email,
		Role:           u.Role,
		State:          u.State,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
