package event_api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ms-events/internal/auth"
	"ms-events/internal/events"
	eventdb "ms-events/internal/events/db"
	"ms-events/internal/events/qr"
	"ms-events/internal/logger"
	"ms-events/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var apiNow = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router chi.Router
	db     *eventdb.DB
}

func setupAPI(t *testing.T) *testEnv {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, bunDB.ResetModel(context.Background(),
		(*models.File)(nil),
		(*models.User)(nil),
		(*models.Event)(nil),
	))
	t.Cleanup(func() { bunDB.Close() })

	store := &eventdb.DB{Bun: bunDB}
	svc := events.NewEventService(store, nil, nil)
	svc.Now = func() time.Time { return apiNow }

	handler := NewHandler(svc, qr.NewGenerator("http://localhost:3333"), logger.NewLogger())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return &testEnv{router: router, db: store}
}

func (e *testEnv) seedUser(t *testing.T, id, name string) {
	t.Helper()
	user := models.User{
		ID: id, Name: name, Email: id + "@example.com", PasswordHash: "x",
		CreatedAt: apiNow, UpdatedAt: apiNow,
	}
	_, err := e.db.Bun.NewInsert().Model(&user).Exec(context.Background())
	require.NoError(t, err)
}

func (e *testEnv) seedBanner(t *testing.T, id string) {
	t.Helper()
	file := models.File{
		ID: id, Path: id + ".jpg", URL: "http://localhost:3333/files/" + id + ".jpg",
		Type: models.FileTypeBanner, CreatedAt: apiNow,
	}
	_, err := e.db.Bun.NewInsert().Model(&file).Exec(context.Background())
	require.NoError(t, err)
}

func (e *testEnv) seedEvent(t *testing.T, id, ownerID string, date time.Time) {
	t.Helper()
	require.NoError(t, e.db.CreateEvent(models.Event{
		ID: id, Title: "Evento " + id, Description: "descrição", Location: "São Paulo/SP",
		Date: date, OwnerID: ownerID, CreatedAt: apiNow, UpdatedAt: apiNow,
	}))
}

// do fires a request against the router with the caller identity already in
// the context, the way the auth middleware would put it there.
func (e *testEnv) do(t *testing.T, method, target, body, userID string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(auth.WithUserID(req.Context(), userID))

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestCreateEventEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedBanner(t, "banner1")

	body := `{"title":"Vue.js summit","description":"Conferência","location":"São Paulo/SP","date":"2020-03-13T18:00:00Z","banner_id":"banner1"}`
	rec := env.do(t, http.MethodPost, "/events", body, "user1")

	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "user1", created.OwnerID)
	assert.NotEmpty(t, created.ID)
}

func TestCreateEventValidation(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")

	longTitle := strings.Repeat("x", 56)
	body := `{"title":"` + longTitle + `","description":"d","location":"l","date":"2020-03-13T18:00:00Z"}`
	rec := env.do(t, http.MethodPost, "/events", body, "user1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "O Nome do evento não pode exceder 55 caracters.", errorMessage(t, rec))
}

func TestCreateEventPastDateEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")

	body := `{"title":"Retro","description":"d","location":"l","date":"2019-12-28T18:00:00Z"}`
	rec := env.do(t, http.MethodPost, "/events", body, "user1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, events.MsgCreatePastDate, errorMessage(t, rec))
}

func TestUpdateEventByNonOwner(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedUser(t, "user2", "Maria Silva")
	env.seedEvent(t, "event1", "user1", apiNow.Add(48*time.Hour))

	rec := env.do(t, http.MethodPut, "/events/event1", `{"title":"hijacked"}`, "user2")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Você não é o dono desse evento", errorMessage(t, rec))
}

func TestUpdateEventEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedEvent(t, "event1", "user1", apiNow.Add(48*time.Hour))

	rec := env.do(t, http.MethodPut, "/events/event1", `{"title":"novo título"}`, "user1")

	require.Equal(t, http.StatusOK, rec.Code)
	var view models.EventView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "novo título", view.Title)
	assert.False(t, view.Past)
	assert.True(t, view.Cancelable)
	require.NotNil(t, view.Owner)
	assert.Equal(t, "Adriano Souza", view.Owner.Name)
}

func TestCancelEventEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedEvent(t, "event1", "user1", apiNow.Add(48*time.Hour))

	rec := env.do(t, http.MethodDelete, "/events/event1", "", "user1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	// cancellation is terminal
	rec = env.do(t, http.MethodDelete, "/events/event1", "", "user1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, events.MsgAlreadyCanceled, errorMessage(t, rec))
}

func TestCancelPastEventEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedEvent(t, "old", "user1", apiNow.Add(-48*time.Hour))

	rec := env.do(t, http.MethodDelete, "/events/old", "", "user1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, events.MsgCancelFinished, errorMessage(t, rec))

	// the stamp was never written
	stored, err := env.db.GetEventByID("old")
	require.NoError(t, err)
	assert.Nil(t, stored.CanceledAt)
}

func TestShowEventNotFound(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/events/nope", "", "user1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, events.MsgEventNotFound, errorMessage(t, rec))
}

func TestListEventsCalendar(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedEvent(t, "jan", "user1", time.Date(2020, 1, 11, 18, 0, 0, 0, time.UTC))
	env.seedEvent(t, "feb", "user1", time.Date(2020, 2, 12, 18, 0, 0, 0, time.UTC))
	env.seedEvent(t, "mar", "user1", time.Date(2020, 3, 13, 18, 0, 0, 0, time.UTC))
	env.seedEvent(t, "apr", "user1", time.Date(2020, 4, 14, 18, 0, 0, 0, time.UTC))

	rec := env.do(t, http.MethodGet, "/events?date=2020-02-15", "", "user1")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "feb", list[0].ID)
}

func TestListEventsMissingDate(t *testing.T) {
	env := setupAPI(t)

	rec := env.do(t, http.MethodGet, "/events", "", "user1")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, events.MsgInvalidDate, errorMessage(t, rec))
}

func TestListOwnEventsEndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedUser(t, "user2", "Maria Silva")
	env.seedEvent(t, "mine", "user1", apiNow.Add(24*time.Hour))
	env.seedEvent(t, "canceled", "user1", apiNow.Add(48*time.Hour))
	env.seedEvent(t, "theirs", "user2", apiNow.Add(72*time.Hour))
	require.NoError(t, env.db.CancelEvent("canceled", apiNow))

	rec := env.do(t, http.MethodGet, "/events?where=just-my-events", "", "user1")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "mine", list[0].ID)
	assert.Equal(t, "canceled", list[1].ID)
}

func TestEventQREndpoint(t *testing.T) {
	env := setupAPI(t)
	env.seedUser(t, "user1", "Adriano Souza")
	env.seedEvent(t, "event1", "user1", apiNow.Add(24*time.Hour))

	rec := env.do(t, http.MethodGet, "/events/event1/qr", "", "user1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}
