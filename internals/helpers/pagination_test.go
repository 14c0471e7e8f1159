package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, url string, opt PaginationOptions) PaginationParams {
	t.Helper()
	app := fiber.New()
	var got PaginationParams
	app.Get("/x", func(c *fiber.Ctx) error {
		got = ParsePaginationWith(c, opt)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestParsePaginationDefaults(t *testing.T) {
	p := paramsFor(t, "/x", DefaultOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 25, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePaginationExplicit(t *testing.T) {
	p := paramsFor(t, "/x?page=3&per_page=10", DefaultOpts)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.Equal(t, 20, p.Offset())
}

func TestParsePaginationLimitAlias(t *testing.T) {
	p := paramsFor(t, "/x?limit=40", DefaultOpts)
	assert.Equal(t, 40, p.PerPage)
}

func TestParsePaginationClampsToMax(t *testing.T) {
	p := paramsFor(t, "/x?per_page=9999", DefaultOpts)
	assert.Equal(t, DefaultOpts.MaxPerPage, p.PerPage)

	p = paramsFor(t, "/x?per_page=9999", AdminOpts)
	assert.Equal(t, AdminOpts.MaxPerPage, p.PerPage)
}

func TestParsePaginationRejectsGarbage(t *testing.T) {
	p := paramsFor(t, "/x?page=-2&per_page=abc", DefaultOpts)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultOpts.DefaultPerPage, p.PerPage)
}
