package analyzer

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/password-analyzer/internal/session"
	"github.com/jwalitptl/password-analyzer/pkg/errors"
	"github.com/jwalitptl/password-analyzer/pkg/logger"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

func newTestService(t *testing.T) (*Service, *metrics.Metrics) {
	t.Helper()
	m := metrics.NewMetrics("passcheck", "test")
	svc := NewService(
		strength.NewScorer(),
		strength.NewGenerator(strength.WithSource(rand.New(rand.NewPCG(3, 4)))),
		session.NewStore(time.Minute, time.Minute),
		m,
		nil,
		Config{DefaultLength: 16, MaxLength: 64},
	)
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) }
	return svc, m
}

func TestService_Score(t *testing.T) {
	svc, m := newTestService(t)

	r := svc.Score(context.Background(), "Password")
	assert.Equal(t, 0.0, r.Details[strength.Common])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PasswordsScored.WithLabelValues(string(r.Strength))))
}

func TestService_GenerateDefaults(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()
	id := session.NewID()

	gp, err := svc.Generate(ctx, id, 0)
	require.NoError(t, err)
	assert.Len(t, gp.Password, 16)
	assert.Equal(t, 16, gp.Length)
	assert.False(t, gp.Secure)
	assert.Equal(t, 2026, gp.GeneratedAt.Year())
	assert.Equal(t, strength.Score(gp.Password), gp.Result)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PasswordsGenerated))

	last, err := svc.LastGenerated(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, gp, last)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionLookups.WithLabelValues("hit")))
}

func TestService_GenerateClampsShortLengths(t *testing.T) {
	svc, _ := newTestService(t)

	gp, err := svc.Generate(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Equal(t, strength.DefaultLength, gp.Length)
}

func TestService_GenerateTooLong(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Generate(context.Background(), session.NewID(), 65)
	require.Error(t, err)
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrBadRequest, appErr.Code)
}

func TestService_LastGeneratedMissing(t *testing.T) {
	svc, m := newTestService(t)

	_, err := svc.LastGenerated(context.Background(), session.NewID())
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionLookups.WithLabelValues("miss")))
}

func TestService_SessionsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a, b := session.NewID(), session.NewID()

	gpA, err := svc.Generate(ctx, a, 20)
	require.NoError(t, err)
	gpB, err := svc.Generate(ctx, b, 24)
	require.NoError(t, err)

	lastA, err := svc.LastGenerated(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, gpA.Password, lastA.Password)
	assert.NotEqual(t, gpA.Password, gpB.Password)

	svc.Forget(ctx, a)
	_, err = svc.LastGenerated(ctx, a)
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.LastGenerated(ctx, b)
	assert.NoError(t, err)
}

func TestService_NilMetrics(t *testing.T) {
	svc := NewService(strength.NewScorer(), strength.NewGenerator(), session.NewStore(time.Minute, time.Minute), nil, nil, Config{})

	assert.NotPanics(t, func() {
		svc.Score(context.Background(), "")
		_, err := svc.Generate(context.Background(), "", 0)
		assert.NoError(t, err)
	})
	assert.Len(t, svc.Tips(context.Background()), 3)
}

func TestService_NeverLogsPasswords(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(&logger.Config{
		Level:  logger.DebugLevel,
		Output: &buf,
		JSON:   true,
	})
	svc := NewService(
		strength.NewScorer(),
		strength.NewGenerator(),
		session.NewStore(time.Minute, time.Minute),
		nil,
		log,
		Config{},
	)
	ctx := context.Background()

	svc.Score(ctx, "hunter2-Secret!")
	gp, err := svc.Generate(ctx, session.NewID(), 20)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "password scored")
	assert.Contains(t, out, "password generated")
	assert.NotContains(t, out, "hunter2-Secret!")
	assert.NotContains(t, out, gp.Password)
}
