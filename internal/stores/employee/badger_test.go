package employee

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/staffdesk/employee-api/internal/models"
	"github.com/staffdesk/employee-api/pkg/datasource/badger"
	apihttp "github.com/staffdesk/employee-api/pkg/http"
	"github.com/staffdesk/employee-api/pkg/logging"
)

func newBadgerClient(t *testing.T) *badger.Client {
	t.Helper()

	metrics := badger.NewMockMetrics(gomock.NewController(t))
	metrics.EXPECT().NewHistogram(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().RecordHistogram(gomock.Any(), "app_badger_stats", gomock.Any(), gomock.Any(), gomock.Any(),
		gomock.Any(), gomock.Any()).AnyTimes()

	cl := badger.New(badger.Configs{InMemory: true})
	cl.UseLogger(logging.NewMockLogger(logging.ERROR))
	cl.UseMetrics(metrics)

	require.NoError(t, cl.Connect())

	t.Cleanup(func() { _ = cl.Close() })

	return cl
}

func TestBadgerStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewBadger(newBadgerClient(t))

	saved, err := store.Save(ctx, models.Employee{FirstName: "John", LastName: "Doe", Email: "john.doe@gmail.com"})
	require.NoError(t, err)

	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)

	found, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, &saved, found)

	updated := saved
	updated.FirstName = "Jane"
	updated.Email = "jane.doe@gmail.com"

	out, err := store.Save(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, updated, out)

	found, err = store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, &updated, found)

	require.NoError(t, store.DeleteByID(ctx, saved.ID))

	found, err = store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, store.DeleteByID(ctx, saved.ID), "deleting twice must succeed")
}

func TestBadgerStore_FindAll(t *testing.T) {
	ctx := context.Background()
	store := NewBadger(newBadgerClient(t))

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)

	saved := make(map[string]models.Employee)

	for _, name := range []string{"Ann", "Bob", "Cid"} {
		e, err := store.Save(ctx, models.Employee{FirstName: name})
		require.NoError(t, err)

		saved[e.ID] = e
	}

	all, err = store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(saved))

	for _, e := range all {
		assert.Equal(t, saved[e.ID], e)
	}
}

func TestBadgerStore_SaveWithID(t *testing.T) {
	store := NewBadger(newBadgerClient(t))

	e := models.Employee{ID: "emp-7", FirstName: "Jim"}

	out, err := store.Save(context.Background(), e)

	require.NoError(t, err)
	assert.Equal(t, e, out)
}

func TestBadgerStore_CorruptRecord(t *testing.T) {
	ctx := context.Background()
	cl := newBadgerClient(t)
	store := NewBadger(cl)

	require.NoError(t, cl.Set(ctx, "employee:bad", "{not json"))

	var dbErr apihttp.ErrorDB

	found, err := store.FindByID(ctx, "bad")
	require.ErrorAs(t, err, &dbErr)
	assert.Nil(t, found)

	all, err := store.FindAll(ctx)
	require.ErrorAs(t, err, &dbErr)
	assert.Nil(t, all)
}

func TestBadgerStore_FindAllCancelled(t *testing.T) {
	store := NewBadger(newBadgerClient(t))

	_, err := store.Save(context.Background(), models.Employee{FirstName: "Ann"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.FindAll(ctx)

	require.ErrorIs(t, err, context.Canceled)
}
