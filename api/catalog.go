package api

import (
	"net/http"

	"github.com/Domenick1991/airservice/internal/domain"
	"github.com/Domenick1991/airservice/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

type nameRequest struct {
	Name string `json:"name"`
}

type createCityRequest struct {
	Name    string `json:"name"`
	Country int64  `json:"country"`
}

type createAirportRequest struct {
	Name           string `json:"name"`
	ClosestBigCity int64  `json:"closest_big_city"`
}

type createCrewRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type airplaneImageRequest struct {
	Filename string `json:"filename"`
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	countries := router.Group("/countries")
	countries.GET("", h.listCountries)
	countries.POST("", h.createCountry)
	countries.GET("/:id", h.getCountry)
	countries.DELETE("/:id", h.deleteCountry)

	cities := router.Group("/cities")
	cities.GET("", h.listCities)
	cities.POST("", h.createCity)
	cities.GET("/:id", h.getCity)
	cities.DELETE("/:id", h.deleteCity)

	airports := router.Group("/airports")
	airports.GET("", h.listAirports)
	airports.POST("", h.createAirport)
	airports.GET("/:id", h.getAirport)
	airports.DELETE("/:id", h.deleteAirport)

	types := router.Group("/airplane-types")
	types.GET("", h.listAirplaneTypes)
	types.POST("", h.createAirplaneType)
	types.GET("/:id", h.getAirplaneType)
	types.DELETE("/:id", h.deleteAirplaneType)

	crew := router.Group("/crew")
	crew.GET("", h.listCrew)
	crew.POST("", h.createCrew)
	crew.GET("/:id", h.getCrew)
	crew.DELETE("/:id", h.deleteCrew)

	airplanes := router.Group("/airplanes")
	airplanes.GET("", h.listAirplanes)
	airplanes.POST("", h.createAirplane)
	airplanes.GET("/:id", h.getAirplane)
	airplanes.PUT("/:id/image", h.setAirplaneImage)
	airplanes.DELETE("/:id", h.deleteAirplane)
}

func (h *CatalogHandler) listCountries(c *gin.Context) {
	params, err := listParams(c, ids("id", "id"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListCountries(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, countryList))
}

func (h *CatalogHandler) createCountry(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	country, err := h.service.CreateCountry(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, countryRetrieve(country))
}

func (h *CatalogHandler) getCountry(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	country, err := h.service.GetCountry(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, countryRetrieve(country))
}

func (h *CatalogHandler) deleteCountry(c *gin.Context) {
	deleteByID(c, h.service.DeleteCountry)
}

func (h *CatalogHandler) listCities(c *gin.Context) {
	params, err := listParams(c, ids("id", "id"), eq("country", "country"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListCities(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, cityList))
}

func (h *CatalogHandler) createCity(c *gin.Context) {
	var req createCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	city, err := h.service.CreateCity(c.Request.Context(), req.Name, req.Country)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cityRetrieve(city))
}

func (h *CatalogHandler) getCity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	city, err := h.service.GetCity(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cityRetrieve(city))
}

func (h *CatalogHandler) deleteCity(c *gin.Context) {
	deleteByID(c, h.service.DeleteCity)
}

func (h *CatalogHandler) listAirports(c *gin.Context) {
	params, err := listParams(c, ids("id", "id"), eq("closest_big_city", "closest_big_city"), eq("country", "country"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListAirports(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, airportList))
}

func (h *CatalogHandler) createAirport(c *gin.Context) {
	var req createAirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airport, err := h.service.CreateAirport(c.Request.Context(), req.Name, req.ClosestBigCity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airportRetrieve(airport))
}

func (h *CatalogHandler) getAirport(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	airport, err := h.service.GetAirport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airportRetrieve(airport))
}

func (h *CatalogHandler) deleteAirport(c *gin.Context) {
	deleteByID(c, h.service.DeleteAirport)
}

func (h *CatalogHandler) listAirplaneTypes(c *gin.Context) {
	params, err := listParams(c, ids("id", "id"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListAirplaneTypes(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, airplaneTypeList))
}

func (h *CatalogHandler) createAirplaneType(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	t, err := h.service.CreateAirplaneType(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneTypeRetrieve(t))
}

func (h *CatalogHandler) getAirplaneType(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.GetAirplaneType(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneTypeRetrieve(t))
}

func (h *CatalogHandler) deleteAirplaneType(c *gin.Context) {
	deleteByID(c, h.service.DeleteAirplaneType)
}

func (h *CatalogHandler) listCrew(c *gin.Context) {
	params, err := listParams(c, ids("id", "id"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListCrew(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, crewList))
}

func (h *CatalogHandler) createCrew(c *gin.Context) {
	var req createCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	crew, err := h.service.CreateCrew(c.Request.Context(), req.FirstName, req.LastName)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, crewRetrieve(crew))
}

func (h *CatalogHandler) getCrew(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	crew, err := h.service.GetCrew(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, crewRetrieve(crew))
}

func (h *CatalogHandler) deleteCrew(c *gin.Context) {
	deleteByID(c, h.service.DeleteCrew)
}

func (h *CatalogHandler) listAirplanes(c *gin.Context) {
	filters := []queryFilter{ids("id", "id"), eq("airplane_type", "airplane_type")}
	filters = append(filters, between("rows", "rows", kindInt)...)
	filters = append(filters, between("seats_in_row", "seats_in_row", kindInt)...)

	params, err := listParams(c, filters...)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	list, err := h.service.ListAirplanes(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, project(list, airplaneList))
}

func (h *CatalogHandler) createAirplane(c *gin.Context) {
	var req catalog.CreateAirplaneInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	airplane, err := h.service.CreateAirplane(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, airplaneRetrieve(airplane))
}

func (h *CatalogHandler) getAirplane(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	airplane, err := h.service.GetAirplane(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airplaneRetrieve(airplane))
}

// setAirplaneImage records where an already uploaded file is stored. The
// upload transport lives outside this service.
func (h *CatalogHandler) setAirplaneImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req airplaneImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Filename == "" {
		badRequest(c, "filename is required")
		return
	}

	ctx := c.Request.Context()
	airplane, err := h.service.GetAirplane(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	path := domain.AirplaneImagePath(airplane.Name, req.Filename)
	if err := h.service.SetAirplaneImage(ctx, id, path); err != nil {
		writeError(c, err)
		return
	}
	airplane.Image = path
	c.JSON(http.StatusOK, airplaneRetrieve(airplane))
}

func (h *CatalogHandler) deleteAirplane(c *gin.Context) {
	deleteByID(c, h.service.DeleteAirplane)
}
