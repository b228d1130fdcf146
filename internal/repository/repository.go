package repository

import "gorm.io/gorm"

// Repository aggregates the three keyed collections
type Repository struct {
	Beneficiary  BeneficiaryRepository
	PendingEntry PendingEntryRepository
	Officer      OfficerRepository
}

// NewRepository builds the PostgreSQL-backed repositories
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Beneficiary:  NewBeneficiaryRepo(db),
		PendingEntry: NewPendingEntryRepo(db),
		Officer:      NewOfficerRepo(db),
	}
}

// NewMemoryRepository builds process-local repositories, used when store.driver
// is "memory" and throughout the service tests.
func NewMemoryRepository() *Repository {
	return &Repository{
		Beneficiary:  NewMemoryBeneficiaryRepo(),
		PendingEntry: NewMemoryPendingEntryRepo(),
		Officer:      NewMemoryOfficerRepo(),
	}
}
