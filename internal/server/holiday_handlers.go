package server

import (
	"strings"
	"time"

	"daygrid/internal/cache"
	"daygrid/internal/models"

	"github.com/gofiber/fiber/v2"
)

type holidayQuery struct {
	Country string `validate:"country_code"`
	Year    int    `validate:"min=1900,max=2200"`
}

// GetHolidays handles GET /api/holidays?country=US&year=2026. The dataset
// changes rarely, so responses are cached with a long TTL.
func (s *Server) GetHolidays(c *fiber.Ctx) error {
	ctx := c.Context()

	q := holidayQuery{
		Country: strings.ToUpper(c.Query("country", "US")),
		Year:    c.QueryInt("year", time.Now().Year()),
	}
	if err := s.validate.Struct(q); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("country must be a two-letter code and year between 1900 and 2200"))
	}
	country, year := q.Country, q.Year

	var holidays []models.Holiday
	if cache.GetJSON(ctx, cache.HolidaysKey(country, year), &holidays) {
		return c.JSON(holidays)
	}

	holidays, err := s.holidayRepo.ListByCountryAndYear(ctx, country, year)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	cache.SetJSON(ctx, cache.HolidaysKey(country, year), holidays, cache.HolidaysTTL)
	return c.JSON(holidays)
}
