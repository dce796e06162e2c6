package services

import (
	"errors"
	"fmt"
	"strings"

	"whitepaper-portal-api/utils"
)

var (
	ErrUnauthenticated    = errors.New("you must be signed in")
	ErrEmptyField         = errors.New("please fill in all fields")
	ErrTitleTooLong       = errors.New("title is too long")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotEditable        = errors.New("submission is no longer in submitted status")
	ErrInvalidStatus      = errors.New("invalid submission status")
	ErrStatusRegression   = errors.New("submission status cannot move backwards")
)

// MissingSectionsError rejects a new whitepaper that lacks required sections.
type MissingSectionsError struct {
	Checks []utils.SectionCheck
}

func (e *MissingSectionsError) Error() string {
	labels := make([]string, 0, len(e.Checks))
	for _, check := range utils.MissingSections(e.Checks) {
		labels = append(labels, check.Label)
	}
	return fmt.Sprintf("whitepaper is missing required sections: %s", strings.Join(labels, ", "))
}

// StoreError wraps a failed call to the submissions table. The cause is
// logged, never shown to the user.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
