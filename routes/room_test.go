package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Hridoykhan4/Backend-JWT-Axios-5-Happiness-Hill/models"

	"github.com/kataras/iris/v12"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestRoomQueryNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       RoomQuery
		wantPage int
		wantSize int
		wantSort string
	}{
		{"defaults", RoomQuery{}, 0, defaultPageSize, ""},
		{"first page is zero offset", RoomQuery{Page: 1, Size: 10}, 0, 10, ""},
		{"second page", RoomQuery{Page: 2}, 1, defaultPageSize, ""},
		{"negative page", RoomQuery{Page: -3}, 0, defaultPageSize, ""},
		{"negative size", RoomQuery{Size: -1}, 0, defaultPageSize, ""},
		{"valid sort kept", RoomQuery{SortBy: "priceHighToLow"}, 0, defaultPageSize, "priceHighToLow"},
		{"unknown sort dropped", RoomQuery{SortBy: "title"}, 0, defaultPageSize, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Normalize()
			assert.Equal(t, tt.wantPage, tt.in.Page)
			assert.Equal(t, tt.wantSize, tt.in.Size)
			assert.Equal(t, tt.wantSort, tt.in.SortBy)
		})
	}
}

// A PUT is a full replace: columns set to their zero value (parking off,
// price 0, cleared image) must land in the SET list, which a plain struct
// Updates would silently drop.
func TestUpdateRoomWritesZeroValues(t *testing.T) {
	gdb, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	room := &models.Room{
		Model:   gorm.Model{ID: 7},
		Title:   "Bare Room",
		Parking: false,
		Price:   0,
		Image:   "",
	}

	stmt := updateRoomRecord(gdb, room).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "parking")
	assert.Contains(t, sql, "price")
	assert.Contains(t, sql, "image")
	assert.Contains(t, sql, "square_feet")
	assert.NotContains(t, sql, "owner_email", "owner columns are not client-updatable")
}

// buildQueryEchoApp exposes parseRoomQuery through a route so the query
// string handling can be exercised end to end without a database.
func buildQueryEchoApp() *iris.Application {
	app := iris.New()
	app.Get("/rooms", func(ctx iris.Context) {
		q := parseRoomQuery(ctx)
		ctx.JSON(iris.Map{
			"searchText": q.SearchText,
			"minPrice":   q.MinPrice,
			"maxPrice":   q.MaxPrice,
			"priceRange": q.PriceRange,
			"sortBy":     q.SortBy,
			"page":       q.Page,
			"size":       q.Size,
			"featured":   q.Featured,
		})
	})
	app.Build()
	return app
}

func echoQuery(t *testing.T, app *iris.Application, target string) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	return got
}

func TestParseRoomQueryDefaults(t *testing.T) {
	app := buildQueryEchoApp()

	got := echoQuery(t, app, "/rooms")
	assert.Equal(t, float64(0), got["page"])
	assert.Equal(t, float64(defaultPageSize), got["size"])
	assert.Equal(t, false, got["priceRange"])
	assert.Equal(t, false, got["featured"])
}

func TestParseRoomQueryPriceRangeNeedsBothBounds(t *testing.T) {
	app := buildQueryEchoApp()

	got := echoQuery(t, app, "/rooms?minPrice=100")
	assert.Equal(t, false, got["priceRange"], "min alone must not filter")

	got = echoQuery(t, app, "/rooms?maxPrice=500")
	assert.Equal(t, false, got["priceRange"], "max alone must not filter")

	got = echoQuery(t, app, "/rooms?minPrice=100&maxPrice=500")
	assert.Equal(t, true, got["priceRange"])
	assert.Equal(t, float64(100), got["minPrice"])
	assert.Equal(t, float64(500), got["maxPrice"])
}

func TestParseRoomQueryFeaturedAndSort(t *testing.T) {
	app := buildQueryEchoApp()

	got := echoQuery(t, app, "/rooms?featuredRooms=featured&sortBy=priceLowToHigh&page=3&size=2")
	assert.Equal(t, true, got["featured"])
	assert.Equal(t, "priceLowToHigh", got["sortBy"])
	assert.Equal(t, float64(2), got["page"])

	got = echoQuery(t, app, "/rooms?sortBy=DROP%20TABLE")
	assert.Equal(t, "", got["sortBy"], "unknown sort keys are dropped")
}
