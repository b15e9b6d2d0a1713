package catalog

import (
	"context"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/rs/zerolog/log"
)

type CatalogUseCase interface {
	CreateCountry(ctx context.Context, name string) (*domain.Country, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	ListCountries(ctx context.Context, params repository.ListParams) ([]domain.Country, error)
	DeleteCountry(ctx context.Context, id int64) error

	CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	ListCities(ctx context.Context, params repository.ListParams) ([]domain.City, error)
	DeleteCity(ctx context.Context, id int64) error

	CreateAirport(ctx context.Context, name string, cityID int64) (*domain.Airport, error)
	GetAirport(ctx context.Context, id int64) (*domain.Airport, error)
	ListAirports(ctx context.Context, params repository.ListParams) ([]domain.Airport, error)
	DeleteAirport(ctx context.Context, id int64) error

	CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error)
	GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error)
	ListAirplaneTypes(ctx context.Context, params repository.ListParams) ([]domain.AirplaneType, error)
	DeleteAirplaneType(ctx context.Context, id int64) error

	CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error)
	GetCrew(ctx context.Context, id int64) (*domain.Crew, error)
	ListCrew(ctx context.Context, params repository.ListParams) ([]domain.Crew, error)
	DeleteCrew(ctx context.Context, id int64) error

	CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error)
	GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context, params repository.ListParams) ([]domain.Airplane, error)
	SetAirplaneImage(ctx context.Context, id int64, image string) error
	DeleteAirplane(ctx context.Context, id int64) error
}

// Cache stores the unfiltered reference lists.
type Cache interface {
	GetList(ctx context.Context, name string, dst any) (bool, error)
	SetList(ctx context.Context, name string, value any) error
	Invalidate(ctx context.Context, names ...string) error
}

type ImageStore interface {
	Remove(ref string) error
}

type Repositories struct {
	Countries     repository.CountryRepository
	Cities        repository.CityRepository
	Airports      repository.AirportRepository
	AirplaneTypes repository.AirplaneTypeRepository
	Airplanes     repository.AirplaneRepository
	Crew          repository.CrewRepository
}

type CreateAirplaneInput struct {
	Name           string  `json:"name"`
	Rows           int     `json:"rows"`
	SeatsInRow     int     `json:"seats_in_row"`
	AirplaneTypeID int64   `json:"airplane_type"`
	CrewIDs        []int64 `json:"crew"`
}

const (
	listCountries     = "countries"
	listCities        = "cities"
	listAirplaneTypes = "airplane_types"
)

type CatalogService struct {
	repos  Repositories
	tx     repository.Transactor
	cache  Cache
	images ImageStore
}

type CatalogServiceOption func(*CatalogService)

func WithCache(cache Cache) CatalogServiceOption {
	return func(s *CatalogService) {
		s.cache = cache
	}
}

func WithImageStore(images ImageStore) CatalogServiceOption {
	return func(s *CatalogService) {
		s.images = images
	}
}

func NewCatalogService(repos Repositories, tx repository.Transactor, opts ...CatalogServiceOption) *CatalogService {
	s := &CatalogService{repos: repos, tx: tx}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) CreateCountry(ctx context.Context, name string) (*domain.Country, error) {
	country := &domain.Country{Name: name}
	if err := country.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repos.Countries.Create(ctx, country); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listCountries)
	country.Cities = make([]string, 0)
	return country, nil
}

func (s *CatalogService) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	return s.repos.Countries.GetByID(ctx, id)
}

func (s *CatalogService) ListCountries(ctx context.Context, params repository.ListParams) ([]domain.Country, error) {
	return cachedList(ctx, s, listCountries, params, s.repos.Countries.List)
}

// DeleteCountry cascades to the country's cities and everything below them.
func (s *CatalogService) DeleteCountry(ctx context.Context, id int64) error {
	if err := s.repos.Countries.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, listCountries, listCities)
	return nil
}

func (s *CatalogService) CreateCity(ctx context.Context, name string, countryID int64) (*domain.City, error) {
	city := &domain.City{Name: name, CountryID: countryID}
	if err := city.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repos.Cities.Create(ctx, city); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listCountries, listCities)
	return s.repos.Cities.GetByID(ctx, city.ID)
}

func (s *CatalogService) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	return s.repos.Cities.GetByID(ctx, id)
}

func (s *CatalogService) ListCities(ctx context.Context, params repository.ListParams) ([]domain.City, error) {
	return cachedList(ctx, s, listCities, params, s.repos.Cities.List)
}

func (s *CatalogService) DeleteCity(ctx context.Context, id int64) error {
	if err := s.repos.Cities.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, listCountries, listCities)
	return nil
}

func (s *CatalogService) CreateAirport(ctx context.Context, name string, cityID int64) (*domain.Airport, error) {
	airport := &domain.Airport{Name: name, ClosestBigCityID: cityID}
	if err := airport.Validate(); err != nil {
		return nil, err
	}
	if err := s.repos.Airports.Create(ctx, airport); err != nil {
		return nil, err
	}
	return s.repos.Airports.GetByID(ctx, airport.ID)
}

func (s *CatalogService) GetAirport(ctx context.Context, id int64) (*domain.Airport, error) {
	return s.repos.Airports.GetByID(ctx, id)
}

func (s *CatalogService) ListAirports(ctx context.Context, params repository.ListParams) ([]domain.Airport, error) {
	return s.repos.Airports.List(ctx, params)
}

func (s *CatalogService) DeleteAirport(ctx context.Context, id int64) error {
	return s.repos.Airports.Delete(ctx, id)
}

func (s *CatalogService) CreateAirplaneType(ctx context.Context, name string) (*domain.AirplaneType, error) {
	t := &domain.AirplaneType{Name: name}
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	if err := s.repos.AirplaneTypes.Create(ctx, t); err != nil {
		return nil, err
	}
	s.invalidate(ctx, listAirplaneTypes)
	t.Airplanes = make([]string, 0)
	return t, nil
}

func (s *CatalogService) GetAirplaneType(ctx context.Context, id int64) (*domain.AirplaneType, error) {
	return s.repos.AirplaneTypes.GetByID(ctx, id)
}

func (s *CatalogService) ListAirplaneTypes(ctx context.Context, params repository.ListParams) ([]domain.AirplaneType, error) {
	return cachedList(ctx, s, listAirplaneTypes, params, s.repos.AirplaneTypes.List)
}

func (s *CatalogService) DeleteAirplaneType(ctx context.Context, id int64) error {
	if err := s.repos.AirplaneTypes.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, listAirplaneTypes)
	return nil
}

func (s *CatalogService) CreateCrew(ctx context.Context, firstName, lastName string) (*domain.Crew, error) {
	crew := &domain.Crew{FirstName: firstName, LastName: lastName}
	if err := crew.Validate(); err != nil {
		return nil, err
	}
	if err := s.repos.Crew.Create(ctx, crew); err != nil {
		return nil, err
	}
	crew.Airplanes = make([]string, 0)
	return crew, nil
}

func (s *CatalogService) GetCrew(ctx context.Context, id int64) (*domain.Crew, error) {
	return s.repos.Crew.GetByID(ctx, id)
}

func (s *CatalogService) ListCrew(ctx context.Context, params repository.ListParams) ([]domain.Crew, error) {
	return s.repos.Crew.List(ctx, params)
}

func (s *CatalogService) DeleteCrew(ctx context.Context, id int64) error {
	return s.repos.Crew.Delete(ctx, id)
}

// CreateAirplane inserts the airplane and its crew assignments as one unit.
func (s *CatalogService) CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*domain.Airplane, error) {
	airplane := &domain.Airplane{
		Name:           input.Name,
		Rows:           input.Rows,
		SeatsInRow:     input.SeatsInRow,
		AirplaneTypeID: input.AirplaneTypeID,
		CrewIDs:        input.CrewIDs,
	}
	if err := airplane.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Airplane
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repos.Airplanes.Create(ctx, airplane); err != nil {
			return err
		}
		var err error
		created, err = s.repos.Airplanes.GetByID(ctx, airplane.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, listAirplaneTypes)
	return created, nil
}

func (s *CatalogService) GetAirplane(ctx context.Context, id int64) (*domain.Airplane, error) {
	return s.repos.Airplanes.GetByID(ctx, id)
}

func (s *CatalogService) ListAirplanes(ctx context.Context, params repository.ListParams) ([]domain.Airplane, error) {
	return s.repos.Airplanes.List(ctx, params)
}

// SetAirplaneImage records a new image reference and removes the file it
// replaces.
func (s *CatalogService) SetAirplaneImage(ctx context.Context, id int64, image string) error {
	previous, err := s.repos.Airplanes.SetImage(ctx, id, image)
	if err != nil {
		return err
	}
	if previous != image {
		s.removeImage(id, previous)
	}
	return nil
}

// DeleteAirplane deletes the airplane (its flights and their tickets
// cascade) and, once the delete is committed, removes its image file.
func (s *CatalogService) DeleteAirplane(ctx context.Context, id int64) error {
	var image string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		image, err = s.repos.Airplanes.Delete(ctx, id)
		return err
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, listAirplaneTypes)
	s.removeImage(id, image)
	return nil
}

func (s *CatalogService) removeImage(airplaneID int64, image string) {
	if s.images == nil || image == "" {
		return
	}
	if err := s.images.Remove(image); err != nil {
		log.Error().Err(err).Int64("airplane_id", airplaneID).Str("image", image).Msg("failed to remove airplane image")
	}
}

func (s *CatalogService) invalidate(ctx context.Context, names ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, names...); err != nil {
		log.Warn().Err(err).Strs("lists", names).Msg("cache invalidation failed")
	}
}

func isDefaultList(p repository.ListParams) bool {
	return len(p.Filters) == 0 && len(p.Ordering) == 0 && p.Limit == 0 && p.Offset == 0
}

// cachedList serves the unfiltered list from cache and falls through to
// load for everything else.
func cachedList[T any](ctx context.Context, s *CatalogService, name string, params repository.ListParams,
	load func(context.Context, repository.ListParams) ([]T, error)) ([]T, error) {
	if s.cache == nil || !isDefaultList(params) {
		return load(ctx, params)
	}

	var cached []T
	if ok, err := s.cache.GetList(ctx, name, &cached); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Str("list", name).Msg("cache read failed")
	}

	items, err := load(ctx, params)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetList(ctx, name, items); err != nil {
		log.Warn().Err(err).Str("list", name).Msg("cache write failed")
	}
	return items, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
