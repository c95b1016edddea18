package local

import (
	"strings"

	"github.com/idarohmahasina-ctrl/smart-report-mahasina-daqwah/core/operator"
)

// operatorRecord is the on-disk shape; the embedded struct hides its
// password hash from JSON, so the record re-exposes it for this file only.
type operatorRecord struct {
	operator.Operator
	PasswordHash []byte `json:"passwordHash"`
}

// OperatorRepository stores registered operators in their own file, apart
// from the document.
type OperatorRepository struct {
	slot *fileSlot
}

var _ operator.Repository = (*OperatorRepository)(nil)

func NewOperatorRepository(dataDir string) *OperatorRepository {
	return &OperatorRepository{slot: newFileSlot(dataDir, operatorsFile)}
}

func (r *OperatorRepository) loadAll() ([]operator.Operator, error) {
	var records []operatorRecord
	if _, err := r.slot.load(&records); err != nil {
		return nil, err
	}
	ops := make([]operator.Operator, 0, len(records))
	for _, rec := range records {
		op := rec.Operator
		op.PasswordHash = rec.PasswordHash
		ops = append(ops, op)
	}
	return ops, nil
}

func (r *OperatorRepository) saveAll(ops []operator.Operator) error {
	records := make([]operatorRecord, 0, len(ops))
	for _, op := range ops {
		records = append(records, operatorRecord{Operator: op, PasswordHash: op.PasswordHash})
	}
	return r.slot.save(records)
}

func (r *OperatorRepository) CheckEmailUniqueness(email string, excluded ...operator.Operator) error {
	ops, err := r.loadAll()
	if err != nil {
		return err
	}
nextOp:
	for _, op := range ops {
		if !strings.EqualFold(op.Email, email) {
			continue
		}
		for _, excl := range excluded {
			if op.ID == excl.ID {
				continue nextOp
			}
		}
		return operator.ErrEmailExists
	}
	return nil
}

func (r *OperatorRepository) CreateOperator(op operator.Operator) (operator.Operator, error) {
	ops, err := r.loadAll()
	if err != nil {
		return operator.Operator{}, err
	}
	if err = r.saveAll(append(ops, op)); err != nil {
		return operator.Operator{}, err
	}
	return op, nil
}

func (r *OperatorRepository) QueryAllOperators() ([]operator.Operator, error) {
	return r.loadAll()
}

func (r *OperatorRepository) GetOperatorByID(id string) (operator.Operator, error) {
	ops, err := r.loadAll()
	if err != nil {
		return operator.Operator{}, err
	}
	for _, op := range ops {
		if op.ID == id {
			return op, nil
		}
	}
	return operator.Operator{}, operator.ErrNotFound
}

func (r *OperatorRepository) GetOperatorByEmail(email string) (operator.Operator, error) {
	ops, err := r.loadAll()
	if err != nil {
		return operator.Operator{}, err
	}
	for _, op := range ops {
		if strings.EqualFold(op.Email, email) {
			return op, nil
		}
	}
	return operator.Operator{}, operator.ErrNotFound
}

// UpdateOperator overlays non-zero fields onto the stored operator; the
// service decides which fields carry new values.
func (r *OperatorRepository) UpdateOperator(op operator.Operator) (operator.Operator, error) {
	ops, err := r.loadAll()
	if err != nil {
		return operator.Operator{}, err
	}
	for i, existing := range ops {
		if existing.ID != op.ID {
			continue
		}
		merged := existing
		if op.FullName != "" {
			merged.FullName = op.FullName
		}
		if op.Email != "" {
			merged.Email = op.Email
		}
		if op.Phone != "" {
			merged.Phone = op.Phone
		}
		if op.Role != "" {
			merged.Role = op.Role
		}
		if op.Classes != nil {
			merged.Classes = op.Classes
		}
		if op.PasswordHash != nil {
			merged.PasswordHash = op.PasswordHash
		}
		if !op.UpdatedAt.IsZero() {
			merged.UpdatedAt = op.UpdatedAt
		}
		if !op.LastLogin.IsZero() {
			merged.LastLogin = op.LastLogin
		}
		ops[i] = merged
		if err = r.saveAll(ops); err != nil {
			return operator.Operator{}, err
		}
		return merged, nil
	}
	return operator.Operator{}, operator.ErrNotFound
}

func (r *OperatorRepository) DeleteOperatorsByID(ids ...string) error {
	ops, err := r.loadAll()
	if err != nil {
		return err
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := ops[:0]
	for _, op := range ops {
		if !drop[op.ID] {
			kept = append(kept, op)
		}
	}
	return r.saveAll(kept)
}

// SessionRepository stores the "who is using this device" slot in its own
// file; logout clears the slot, never the data.
type SessionRepository struct {
	slot *fileSlot
}

var _ operator.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(dataDir string) *SessionRepository {
	return &SessionRepository{slot: newFileSlot(dataDir, sessionFile)}
}

type sessionRecord struct {
	OperatorID string `json:"operatorId"`
}

func (r *SessionRepository) GetSessionOperatorID() (string, error) {
	var rec sessionRecord
	if _, err := r.slot.load(&rec); err != nil {
		return "", err
	}
	return rec.OperatorID, nil
}

func (r *SessionRepository) SetSessionOperatorID(id string) error {
	return r.slot.save(sessionRecord{OperatorID: id})
}

func (r *SessionRepository) ClearSession() error {
	return r.slot.remove()
}
