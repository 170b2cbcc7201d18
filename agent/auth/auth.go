package auth

import (
	"context"
	"errors"

	contractx "github.com/caio126cf/bank-agent/agent/contract"
)

// Service authenticates a customer by exact match of customer id and birth
// date against the account table. A mismatch on either field yields the same
// generic failure so the result does not reveal which one was wrong.
type Service struct {
	accounts contractx.RecordStore
}

func New(accounts contractx.RecordStore) (*Service, error) {
	if accounts == nil {
		return nil, errors.New("record store is required")
	}
	return &Service{accounts: accounts}, nil
}

func (s *Service) Authenticate(ctx context.Context, customerID, birthDate string) (contractx.AuthResult, error) {
	records, err := s.accounts.LoadAll()
	if err != nil {
		return contractx.AuthResult{}, err
	}
	for _, rec := range records {
		if rec.CustomerID == customerID && rec.BirthDate == birthDate {
			return contractx.AuthResult{
				Success: true,
				Message: "Authentication successful",
				Customer: &contractx.CustomerIdentity{
					CustomerID: rec.CustomerID,
					Name:       rec.Name,
					BirthDate:  rec.BirthDate,
				},
			}, nil
		}
	}
	return contractx.AuthResult{
		Success: false,
		Message: "Invalid customer id or birth date",
	}, nil
}
