package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportsgpt-backend/internal/models"
	"sportsgpt-backend/internal/store"
)

func TestConversationLifecycle(t *testing.T) {
	log, _ := test.NewNullLogger()
	st := newMemStore()
	svc := NewConversationService(st, log)
	ctx := context.Background()
	owner, other := uuid.New(), uuid.New()

	conv, err := svc.Create(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConversationTitle, conv.Title)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = st.SaveMessage(ctx, conv.ID, models.RoleUser, "hello")
	require.NoError(t, err)

	msgs, err := svc.Messages(ctx, owner, conv.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	msgs, err = svc.Messages(ctx, other, conv.ID)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	assert.ErrorIs(t, svc.Delete(ctx, other, conv.ID), store.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner, uuid.New()), store.ErrNotFound)
	require.NoError(t, svc.Delete(ctx, owner, conv.ID))

	list, err = svc.List(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list)
}
