package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaging(t *testing.T) {
	app := fiber.New()

	var got Paging
	app.Get("/items", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 10, 100)
		return c.SendStatus(fiber.StatusOK)
	})

	cases := []struct {
		name  string
		query string
		want  Paging
	}{
		{"default", "", Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}},
		{"page dan size", "?page=3&size=5", Paging{Page: 3, PerPage: 5, Offset: 10, Limit: 5}},
		{"alias per_page", "?per_page=7", Paging{Page: 1, PerPage: 7, Offset: 0, Limit: 7}},
		{"size di-cap max", "?size=500", Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}},
		{"page invalid", "?page=-2", Paging{Page: 1, PerPage: 10, Offset: 0, Limit: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/items"+tc.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(21, 2, 10)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 10)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}
