package domain

type Airport struct {
	ID               int64
	Name             string
	ClosestBigCityID int64

	// Populated by read projections only.
	CityName         string
	CountryName      string
	SameCityAirports []string
}

// Validate checks the airport before it is written. Airport names are not
// normalized and carry no uniqueness constraint.
func (a *Airport) Validate() error {
	if a.Name == "" {
		return NewValidationError("airport", "name", "name must not be empty")
	}
	if a.ClosestBigCityID <= 0 {
		return NewValidationError("airport", "closest_big_city", "closest big city is required")
	}
	return nil
}
