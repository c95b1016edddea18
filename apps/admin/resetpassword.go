package main

import (
	"time"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core"
)

func (cli *commandLine) resetPassword(email, pwd string) error {
	op, err := cli.oprRepo.GetOperatorByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return err
	}
	if err := op.SetPassword(pwd); err != nil {
		return err
	}
	op.UpdatedAt = time.Now().UTC()
	_, err = cli.oprRepo.UpdateOperator(op)
	return err
}
