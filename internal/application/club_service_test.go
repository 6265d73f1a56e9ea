package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/campus-events/internal/domain/entity"
	"github.com/oksasatya/campus-events/internal/infrastructure/memory"
)

func TestClubService(t *testing.T) {
	ctx := context.Background()
	svc := NewClubService(memory.NewClubRepository())
	fixed := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	c, err := svc.Create(ctx, ClubInput{
		Name:        "Chess Club",
		Description: "Weekly games",
		ContactInfo: entity.ContactInfo{Email: "chess@kcau.ac.ke", Phone: "0700000000"},
	})
	require.NoError(t, err)

	t.Run("append updates in order", func(t *testing.T) {
		_, err := svc.AddUpdate(ctx, c.ID, "Tournament on Friday")
		require.NoError(t, err)
		_, err = svc.AddUpdate(ctx, c.ID, "Room changed")
		require.NoError(t, err)

		got, err := svc.Get(ctx, c.ID)
		require.NoError(t, err)
		require.Len(t, got.Updates, 2)
		assert.Equal(t, "Tournament on Friday", got.Updates[0].Message)
		assert.Equal(t, "Room changed", got.Updates[1].Message)
		assert.True(t, got.Updates[1].Date.Equal(fixed))
	})

	t.Run("empty update message", func(t *testing.T) {
		_, err := svc.AddUpdate(ctx, c.ID, "   ")
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Update message is required", ve.Message)
	})

	t.Run("unknown club", func(t *testing.T) {
		_, err := svc.AddUpdate(ctx, "missing", "hello")
		assert.ErrorIs(t, err, ErrClubNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrClubNotFound)
	})

	t.Run("update keeps the log", func(t *testing.T) {
		phone := "0711111111"
		got, err := svc.Update(ctx, c.ID, ClubPatch{ContactPhone: &phone})
		require.NoError(t, err)
		assert.Equal(t, "0711111111", got.ContactInfo.Phone)
		assert.Equal(t, "chess@kcau.ac.ke", got.ContactInfo.Email)

		stored, err := svc.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Updates, 2)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, c.ID))
		clubs, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, clubs)
	})
}
