package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSessionsGetReusesForm(t *testing.T) {
	created := 0
	s := NewSessions(func(string) (*Form, error) {
		created++
		return NewForm(newProviderStub(nil))
	}, time.Hour)

	a, err := s.Get("one")
	require.NoError(t, err)
	b, err := s.Get("one")
	require.NoError(t, err)
	c, err := s.Get("two")
	require.NoError(t, err)

	require.Same(t, a, b)
	require.NotSame(t, a, c)
	require.Equal(t, 2, created)
	require.Equal(t, 2, s.Len())

	_, ok := s.Lookup("three")
	require.False(t, ok)
}

func TestSessionsMountAlwaysStartsFresh(t *testing.T) {
	s := NewSessions(func(string) (*Form, error) { return NewForm(newProviderStub(nil)) }, time.Hour)

	firstID, first, err := s.Mount()
	require.NoError(t, err)
	require.NoError(t, first.Update(FieldName, "Jane"))

	secondID, second, err := s.Mount()
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)
	require.True(t, second.Draft().IsZero())
	require.Equal(t, StatusIdle, second.Status())

	again, ok := s.Lookup(firstID)
	require.True(t, ok)
	require.Same(t, first, again)
	require.Equal(t, 2, s.Len())
}

func TestSessionsGetPropagatesFactoryError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSessions(func(string) (*Form, error) { return nil, boom }, time.Hour)

	_, err := s.Get("one")
	require.ErrorIs(t, err, boom)
	require.Zero(t, s.Len())
}

func TestSessionsSweepDropsIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewSessions(func(string) (*Form, error) { return NewForm(newProviderStub(nil)) }, time.Hour)
	s.now = func() time.Time { return now }

	_, err := s.Get("old")
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	_, err = s.Get("fresh")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	require.Equal(t, 1, s.Sweep())

	_, ok := s.Lookup("old")
	require.False(t, ok)
	_, ok = s.Lookup("fresh")
	require.True(t, ok)
}

func TestSessionsSweepKeepsSendingForms(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	provider := newBlockingProviderStub(nil)
	s := NewSessions(func(string) (*Form, error) { return NewForm(provider) }, time.Minute)
	s.now = func() time.Time { return now }

	f, err := s.Get("busy")
	require.NoError(t, err)
	fillForm(t, f, "Jane", "jane@x.com", "Hello")
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	_, err = f.Submit(ctx)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	require.Zero(t, s.Sweep())

	close(provider.release)
	s.Wait()
	require.Equal(t, 1, s.Sweep())
}

func TestSessionsSweepKeepsFormWithOverlappingSend(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	provider := &queuedProvider{results: make(chan error)}
	provider.calls.Add(2)
	s := NewSessions(func(string) (*Form, error) { return NewForm(provider) }, time.Minute)
	s.now = func() time.Time { return now }

	f, err := s.Get("busy")
	require.NoError(t, err)
	fillForm(t, f, "Jane", "jane@x.com", "Hello")
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	provider.calls.Wait()

	provider.results <- nil
	require.Eventually(t, func() bool { return f.Status() == StatusSent }, time.Second, 5*time.Millisecond)

	now = now.Add(time.Hour)
	require.Zero(t, s.Sweep())
	require.Equal(t, 1, s.Len())

	provider.results <- nil
	s.Wait()
	require.Equal(t, 1, s.Sweep())
}
