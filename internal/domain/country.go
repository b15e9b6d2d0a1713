package domain

type Country struct {
	ID     int64
	Name   string
	Cities []string
}

// Normalize applies name normalization and validates the result.
func (c *Country) Normalize() error {
	c.Name = NormalizeName(c.Name)
	return validateName("country", c.Name)
}
