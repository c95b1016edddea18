package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

// addOperator updates or creates an operator.Operator
func (cli *commandLine) addOperator(name, email, role, pwd string) error {
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)

	if !validRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	now := time.Now().UTC()
	op, err := cli.oprRepo.GetOperatorByEmail(email)
	if err != nil {
		if err != operator.ErrNotFound {
			return err
		}
		op = operator.Operator{
			ID:        uuid.NewString(),
			FullName:  name,
			Email:     email,
			Role:      role,
			CreatedAt: now,
		}
		op.UpdatedAt = now
		if err := op.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.oprRepo.CreateOperator(op)
		return err
	}

	op.FullName = name
	op.Role = role
	op.UpdatedAt = now
	if err := op.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.oprRepo.UpdateOperator(op)
	return err
}

func validRole(role string) bool {
	for _, known := range operator.AllRoles {
		if role == known {
			return true
		}
	}
	return false
}
