package domain

type Crew struct {
	ID        int64
	FirstName string
	LastName  string
	Airplanes []string
}

func (c *Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Crew) Validate() error {
	verr := &ValidationError{Entity: "crew", Fields: map[string]string{}}
	if c.FirstName == "" {
		verr.Fields["first_name"] = "first name must not be empty"
	}
	if c.LastName == "" {
		verr.Fields["last_name"] = "last name must not be empty"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}
