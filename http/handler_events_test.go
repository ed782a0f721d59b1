package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"venues/entities"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventRepo struct {
	event   entities.Event
	deleted []uuid.UUID
}

func (f *fakeEventRepo) Create(ctx context.Context, event entities.Event) (entities.EventCreateResponse, error) {
	return entities.EventCreateResponse{EventID: event.EventID}, nil
}

func (f *fakeEventRepo) EventByID(ctx context.Context, eventID uuid.UUID) (entities.Event, error) {
	return f.event, nil
}

func (f *fakeEventRepo) GetAll(ctx context.Context) ([]entities.Event, error) {
	return []entities.Event{f.event}, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, event entities.Event) error {
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, eventID uuid.UUID) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

func deleteEventRequest(eventID, callerID uuid.UUID, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/events/"+eventID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(eventID.String())
	c.Set(contextKeyUserID, callerID)
	c.Set(contextKeyRole, role)

	return c, rec
}

func TestDeleteEvent_OrganizerDeletesOwnEvent(t *testing.T) {
	organizerID := uuid.New()
	repo := &fakeEventRepo{event: entities.Event{
		EventID:     uuid.New(),
		OrganizerID: organizerID,
		Title:       "Jazz Night",
	}}
	h := &Handler{eventRepo: repo}

	c, rec := deleteEventRequest(repo.event.EventID, organizerID, RoleOrganizer)
	require.NoError(t, h.DeleteEvent(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{repo.event.EventID}, repo.deleted)
}

func TestDeleteEvent_OtherOrganizerForbidden(t *testing.T) {
	repo := &fakeEventRepo{event: entities.Event{
		EventID:     uuid.New(),
		OrganizerID: uuid.New(),
	}}
	h := &Handler{eventRepo: repo}

	c, _ := deleteEventRequest(repo.event.EventID, uuid.New(), RoleOrganizer)
	err := h.DeleteEvent(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, repo.deleted)
}

func TestDeleteEvent_AdminDeletesAnyEvent(t *testing.T) {
	repo := &fakeEventRepo{event: entities.Event{
		EventID:     uuid.New(),
		OrganizerID: uuid.New(),
	}}
	h := &Handler{eventRepo: repo}

	c, rec := deleteEventRequest(repo.event.EventID, uuid.New(), RoleAdmin)
	require.NoError(t, h.DeleteEvent(c))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{repo.event.EventID}, repo.deleted)
}
