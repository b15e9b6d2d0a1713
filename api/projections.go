package api

import (
	"time"

	"github.com/Domenick1991/airservice/internal/domain"
)

// List and retrieve responses differ per entity: list items carry display
// names of related records, retrieve adds the related collections.

type countryListItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type countryDetail struct {
	countryListItem
	Cities []string `json:"cities"`
}

func countryList(c *domain.Country) countryListItem {
	return countryListItem{ID: c.ID, Name: c.Name}
}

func countryRetrieve(c *domain.Country) countryDetail {
	return countryDetail{countryListItem: countryList(c), Cities: nonNil(c.Cities)}
}

type cityListItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type cityDetail struct {
	cityListItem
	Airports []string `json:"airports"`
}

func cityList(c *domain.City) cityListItem {
	return cityListItem{ID: c.ID, Name: c.Name, Country: c.CountryName}
}

func cityRetrieve(c *domain.City) cityDetail {
	return cityDetail{cityListItem: cityList(c), Airports: nonNil(c.Airports)}
}

type airportListItem struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

type airportDetail struct {
	airportListItem
	Country          string   `json:"country"`
	SameCityAirports []string `json:"same_city_airports"`
}

func airportList(a *domain.Airport) airportListItem {
	return airportListItem{ID: a.ID, Name: a.Name, ClosestBigCity: a.CityName}
}

func airportRetrieve(a *domain.Airport) airportDetail {
	return airportDetail{
		airportListItem:  airportList(a),
		Country:          a.CountryName,
		SameCityAirports: nonNil(a.SameCityAirports),
	}
}

type airplaneTypeListItem struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AirplanePark int    `json:"airplane_park"`
}

type airplaneTypeDetail struct {
	airplaneTypeListItem
	Airplanes []string `json:"airplanes"`
}

func airplaneTypeList(t *domain.AirplaneType) airplaneTypeListItem {
	return airplaneTypeListItem{ID: t.ID, Name: t.Name, AirplanePark: t.AirplanePark}
}

func airplaneTypeRetrieve(t *domain.AirplaneType) airplaneTypeDetail {
	return airplaneTypeDetail{airplaneTypeListItem: airplaneTypeList(t), Airplanes: nonNil(t.Airplanes)}
}

type crewListItem struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type crewDetail struct {
	crewListItem
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Airplanes []string `json:"airplanes"`
}

func crewList(c *domain.Crew) crewListItem {
	return crewListItem{ID: c.ID, FullName: c.FullName()}
}

func crewRetrieve(c *domain.Crew) crewDetail {
	return crewDetail{
		crewListItem: crewList(c),
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Airplanes:    nonNil(c.Airplanes),
	}
}

type airplaneListItem struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	AirplaneType string   `json:"airplane_type"`
	Crew         []string `json:"crew"`
	Capacity     int      `json:"capacity"`
	Image        string   `json:"image,omitempty"`
}

type airplaneDetail struct {
	airplaneListItem
	Rows       int `json:"rows"`
	SeatsInRow int `json:"seats_in_row"`
}

func airplaneList(a *domain.Airplane) airplaneListItem {
	return airplaneListItem{
		ID:           a.ID,
		Name:         a.Name,
		AirplaneType: a.AirplaneTypeName,
		Crew:         nonNil(a.Crew),
		Capacity:     a.Capacity(),
		Image:        a.Image,
	}
}

func airplaneRetrieve(a *domain.Airplane) airplaneDetail {
	return airplaneDetail{airplaneListItem: airplaneList(a), Rows: a.Rows, SeatsInRow: a.SeatsInRow}
}

type routeItem struct {
	ID              int64  `json:"id"`
	Source          int64  `json:"source"`
	Destination     int64  `json:"destination"`
	SourceCity      string `json:"source_city"`
	DestinationCity string `json:"destination_city"`
	Distance        int    `json:"distance"`
	DistanceInNM    int    `json:"distance_in_nm"`
}

func routeView(r *domain.Route) routeItem {
	return routeItem{
		ID:              r.ID,
		Source:          r.SourceID,
		Destination:     r.DestinationID,
		SourceCity:      r.SourceCity,
		DestinationCity: r.DestinationCity,
		Distance:        r.Distance,
		DistanceInNM:    r.DistanceInNM(),
	}
}

type flightItem struct {
	ID               int64     `json:"id"`
	Route            int64     `json:"route"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	FlightTime       string    `json:"flight_time"`
	TicketsAvailable *int      `json:"tickets_available,omitempty"`
}

// flightView leaves tickets_available out for an overbooked flight; the
// service has already raised the alarm.
func flightView(f *domain.Flight) flightItem {
	item := flightItem{
		ID:            f.ID,
		Route:         f.RouteID,
		Airplane:      f.AirplaneName,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		FlightTime:    f.FlightTime(),
	}
	if f.TicketsAvailable >= 0 {
		available := f.TicketsAvailable
		item.TicketsAvailable = &available
	}
	return item
}

type ticketItem struct {
	ID     int64 `json:"id"`
	Row    int   `json:"row"`
	Seat   int   `json:"seat"`
	Flight int64 `json:"flight"`
	Order  int64 `json:"order"`
}

func ticketView(t *domain.Ticket) ticketItem {
	return ticketItem{ID: t.ID, Row: t.Row, Seat: t.Seat, Flight: t.FlightID, Order: t.OrderID}
}

type orderItem struct {
	ID        int64        `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Tickets   []ticketItem `json:"tickets"`
}

func orderView(o *domain.Order) orderItem {
	return orderItem{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: project(o.Tickets, ticketView)}
}

func project[T, R any](items []T, fn func(*T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
