package domain

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type AirplaneType struct {
	ID           int64
	Name         string
	AirplanePark int
	Airplanes    []string
}

func (t *AirplaneType) Normalize() error {
	t.Name = NormalizeName(t.Name)
	return validateName("airplane_type", t.Name)
}

type Airplane struct {
	ID             int64
	Name           string
	Rows           int
	SeatsInRow     int
	AirplaneTypeID int64
	CrewIDs        []int64
	Image          string

	// Populated by read projections only.
	AirplaneTypeName string
	Crew             []string
}

// Capacity is the number of physical seats on the airplane.
func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

func (a *Airplane) Validate() error {
	verr := &ValidationError{Entity: "airplane", Fields: map[string]string{}}
	if a.Name == "" {
		verr.Fields["name"] = "name must not be empty"
	}
	if a.Rows < 1 {
		verr.Fields["rows"] = "rows must be a positive integer"
	}
	if a.SeatsInRow < 1 {
		verr.Fields["seats_in_row"] = "seats_in_row must be a positive integer"
	}
	if a.AirplaneTypeID <= 0 {
		verr.Fields["airplane_type"] = "airplane type is required"
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

const airplaneImageDir = "upload/airplanes"

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// AirplaneImagePath builds the storage path for an uploaded image:
// upload/airplanes/<slug(name)>-<uuid><ext>.
func AirplaneImagePath(airplaneName, filename string) string {
	slug := strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(airplaneName), "-"), "-")
	return path.Join(airplaneImageDir, fmt.Sprintf("%s-%s%s", slug, uuid.NewString(), path.Ext(filename)))
}
