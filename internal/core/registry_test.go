package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeature struct {
	*BaseFeature
	events      *[]string
	shutdownErr error
	healthErr   error
}

func newStubFeature(name string, enabled bool, events *[]string) *stubFeature {
	return &stubFeature{
		BaseFeature: NewBaseFeature(name, name+" feature", enabled, NewNopLogger(), nil),
		events:      events,
	}
}

func (f *stubFeature) Init(ctx context.Context) error {
	*f.events = append(*f.events, "init:"+f.Name())
	return nil
}

func (f *stubFeature) Routes() []Route {
	return []Route{{Method: "GET", Path: "/" + f.Name()}}
}

func (f *stubFeature) Shutdown(ctx context.Context) error {
	*f.events = append(*f.events, "shutdown:"+f.Name())
	return f.shutdownErr
}

func (f *stubFeature) Health(ctx context.Context) Health {
	if f.healthErr != nil {
		return Degraded(f.healthErr, map[string]any{"checked": true})
	}
	return f.BaseFeature.Health(ctx)
}

func TestRegistryLifecycleOrder(t *testing.T) {
	var events []string
	registry := NewRegistry(NewNopLogger())

	courses := newStubFeature("courses", true, &events)
	disabled := newStubFeature("blog", false, &events)
	contact := newStubFeature("contact", true, &events)
	contact.shutdownErr = errors.New("dispatcher stuck")

	require.NoError(t, registry.Register(courses))
	require.NoError(t, registry.Register(disabled))
	require.NoError(t, registry.Register(contact))
	assert.Error(t, registry.Register(newStubFeature("courses", true, &events)))

	require.NoError(t, registry.InitAll(context.Background()))
	err := registry.ShutdownAll(context.Background())
	assert.ErrorContains(t, err, "dispatcher stuck")

	assert.Equal(t, []string{
		"init:courses", "init:contact",
		"shutdown:contact", "shutdown:courses",
	}, events)

	routes := registry.GetAllRoutes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/courses", routes[0].Path)

	status := registry.GetFeatureStatus(context.Background())
	assert.Len(t, status, 3)
	assert.False(t, status["blog"].Enabled)
	assert.Nil(t, status["blog"].Health, "disabled features are not checked")

	_, ok := registry.Get("contact")
	assert.True(t, ok)
}

func TestRegistryFeatureHealth(t *testing.T) {
	var events []string
	registry := NewRegistry(NewNopLogger())

	db, err := OpenDatabase(":memory:", NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	courses := newStubFeature("courses", true, &events)
	contact := &stubFeature{
		BaseFeature: NewBaseFeature("contact", "contact feature", true, NewNopLogger(), db),
		events:      &events,
	}
	require.NoError(t, registry.Register(courses))
	require.NoError(t, registry.Register(contact))

	status := registry.GetFeatureStatus(context.Background())
	require.NotNil(t, status["courses"].Health)
	assert.Equal(t, HealthOK, status["courses"].Health.Status)
	assert.Equal(t, HealthOK, status["contact"].Health.Status, "database ping succeeds")
	assert.True(t, Healthy(status))

	courses.healthErr = errors.New("course API unreachable")
	status = registry.GetFeatureStatus(context.Background())
	health := status["courses"].Health
	assert.Equal(t, HealthDegraded, health.Status)
	assert.Equal(t, "course API unreachable", health.Error)
	assert.Equal(t, true, health.Details["checked"])
	assert.False(t, Healthy(status))

	courses.healthErr = nil
	require.NoError(t, db.Close())
	status = registry.GetFeatureStatus(context.Background())
	assert.Equal(t, HealthDegraded, status["contact"].Health.Status, "closed database")
	assert.NotEmpty(t, status["contact"].Health.Error)
}
