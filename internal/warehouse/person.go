package warehouse

import "time"

// Person is one standardized identity record in the warehouse.
type Person struct {
	ID           string
	NotifiedAt   *time.Time
	Name         string
	BirthDate    *time.Time
	Sex          string
	MotherName   string
	Neighborhood string
	Municipality string
	PostalCode   string
	HealthCard   string
	TaxID        string
	Source       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PairLabel is one reviewed pair classification persisted for audit.
type PairLabel struct {
	LeftID         string
	RightID        string
	Classification string
	CreatedAt      time.Time
}

// PairID builds the stable primary key for a labeled pair.
func (p PairLabel) PairID() string {
	return p.LeftID + ":" + p.RightID
}
