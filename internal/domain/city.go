package domain

type City struct {
	ID          int64
	Name        string
	CountryID   int64
	CountryName string
	Airports    []string
}

func (c *City) Normalize() error {
	c.Name = NormalizeName(c.Name)
	if err := validateName("city", c.Name); err != nil {
		return err
	}
	if c.CountryID <= 0 {
		return NewValidationError("city", "country", "country is required")
	}
	return nil
}
