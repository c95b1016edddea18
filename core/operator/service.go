package operator

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

var (
	// errors
	ErrNotFound    = errors.New("operator not found")
	ErrEmailExists = errors.New("an operator with this email is already registered")
)

type (
	// Repository persists the registered operator roster. It is a separate
	// store from the main document: clearing one never touches the other.
	Repository interface {
		CheckEmailUniqueness(email string, excluded ...Operator) error
		CreateOperator(op Operator) (Operator, error)
		QueryAllOperators() ([]Operator, error)
		GetOperatorByID(id string) (Operator, error)
		GetOperatorByEmail(email string) (Operator, error)
		UpdateOperator(op Operator) (Operator, error)
		DeleteOperatorsByID(ids ...string) error
	}

	// SessionRepository holds the shorter-lived "who is using this device"
	// slot. Logout clears the identity, not the data.
	SessionRepository interface {
		GetSessionOperatorID() (string, error)
		SetSessionOperatorID(id string) error
		ClearSession() error
	}

	Service struct {
		repo    Repository
		session SessionRepository
	}
)

func NewService(repo Repository, session SessionRepository) *Service {
	return &Service{repo: repo, session: session}
}

func (svc *Service) checkUniqueness(email string, exclOps ...Operator) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclOps...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Register(no NewOperator) (Operator, error) {
	now := time.Now().UTC()
	op := Operator{
		ID:        uuid.NewString(),
		FullName:  no.FullName,
		Email:     no.Email,
		Phone:     no.Phone,
		Role:      no.Role,
		Classes:   no.Classes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := op.SetPassword(no.Password); err != nil {
		return Operator{}, err
	}
	return svc.repo.CreateOperator(op)
}

func (svc *Service) QueryAll() ([]Operator, error) {
	return svc.repo.QueryAllOperators()
}

func (svc *Service) GetByID(id string) (Operator, error) {
	return svc.repo.GetOperatorByID(id)
}

func (svc *Service) GetByEmail(email string) (Operator, error) {
	return svc.repo.GetOperatorByEmail(core.CleanString(email, true /* lower */))
}

func (svc *Service) Update(id string, uo UpdateOperator) (Operator, error) {
	op := Operator{
		ID:        id,
		FullName:  uo.FullName,
		Email:     uo.Email,
		Phone:     uo.Phone,
		Role:      uo.Role,
		Classes:   uo.Classes,
		UpdatedAt: time.Now().UTC(),
	}
	if uo.Password != "" {
		if err := op.SetPassword(uo.Password); err != nil {
			return Operator{}, err
		}
	}
	return svc.repo.UpdateOperator(op)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteOperatorsByID(ids...)
}

func (svc *Service) SetLastLogin(op Operator) (Operator, error) {
	op.LastLogin = time.Now().UTC()
	return svc.repo.UpdateOperator(op)
}

// CurrentOperator resolves the device's session identity slot.
func (svc *Service) CurrentOperator() (Operator, error) {
	id, err := svc.session.GetSessionOperatorID()
	if err != nil {
		return Operator{}, err
	}
	if id == "" {
		return Operator{}, ErrNotFound
	}
	return svc.repo.GetOperatorByID(id)
}

func (svc *Service) StartSession(op Operator) error {
	return svc.session.SetSessionOperatorID(op.ID)
}

// EndSession clears the session identity only; the document is untouched.
func (svc *Service) EndSession() error {
	return svc.session.ClearSession()
}
