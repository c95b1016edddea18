package operator

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

// Operational roles. Stored values match the labels the pesantren uses.
const (
	RoleGuru          = "Guru"
	RoleMusyrif       = "Musyrif/ah (Wali Kelas)"
	RoleIdaroh        = "Petugas Idaroh"
	RolePetugasSantri = "Petugas Santri"
	RolePengasuh      = "Pengasuh"
)

var (
	// AdminRoles have full visibility over the roster and privileged writes.
	AdminRoles = []string{RoleIdaroh, RolePengasuh}

	AllRoles = []string{RoleGuru, RoleMusyrif, RoleIdaroh, RolePetugasSantri, RolePengasuh}
)

// Operator is a registered staff identity (teacher, supervisor, office staff).
type Operator struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	// Classes lists the formal classes a Musyrif supervises.
	Classes      []string  `json:"classes,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
	LastLogin    time.Time `json:"last_login"` // UTC
}

func (o *Operator) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.PasswordHash = hash
	return nil
}

func (o *Operator) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(o.PasswordHash, []byte(pwd))
}

func (o *Operator) IsAdmin() bool {
	for _, role := range AdminRoles {
		if o.Role == role {
			return true
		}
	}
	return false
}

func (o *Operator) IsMusyrif() bool { return o.Role == RoleMusyrif }
func (o *Operator) IsGuru() bool    { return o.Role == RoleGuru }

// NewOperator contains information needed to register a new Operator.
type NewOperator struct {
	FullName        string   `json:"fullName" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone"`
	Role            string   `json:"role" validate:"required,oprole"`
	Classes         []string `json:"classes"`
	Password        string   `json:"password" validate:"required"`
	PasswordConfirm string   `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (no *NewOperator) Validate(validate *validator.Validate, svc *Service) error {
	no.FullName = core.CleanString(no.FullName)
	no.Email = core.CleanString(no.Email, true /* lower */)

	if err := validate.Struct(no); err != nil {
		return err
	}
	return svc.checkUniqueness(no.Email)
}

// UpdateOperator defines what information may be provided to modify an existing Operator.
type UpdateOperator struct {
	FullName        string   `json:"fullName"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Phone           string   `json:"phone"`
	Role            string   `json:"role" validate:"omitempty,oprole"`
	Classes         []string `json:"classes"`
	Password        string   `json:"password" validate:"omitempty"`
	PasswordConfirm string   `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uo *UpdateOperator) Validate(validate *validator.Validate, origOp Operator, svc *Service) error {
	if name := core.CleanString(uo.FullName); name != "" {
		uo.FullName = name
	} else {
		uo.FullName = origOp.FullName
	}

	if email := core.CleanString(uo.Email, true /* lower */); email != "" {
		uo.Email = email
	} else {
		uo.Email = origOp.Email
	}

	if uo.Role == "" {
		uo.Role = origOp.Role
	}

	if err := validate.Struct(uo); err != nil {
		return err
	}
	return svc.checkUniqueness(uo.Email, origOp)
}
