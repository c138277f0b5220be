package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/arefin-dev/messwallet/internal/models"
)

func TestNotificationService_Broadcast_OneRowPerProfile(t *testing.T) {
	notifications := new(MockNotificationRepository)
	profiles := new(MockProfileRepository)
	svc := NewNotificationService(notifications, profiles, zap.NewNop())

	members := roster(4)
	profiles.On("List", mock.Anything).Return(members, nil)

	var recipients []uuid.UUID
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Run(func(args mock.Arguments) {
			recipients = append(recipients, args.Get(1).(*models.Notification).UserID)
		}).
		Return(&models.Notification{ID: uuid.New()}, nil)

	err := svc.Broadcast(context.Background(), "Rent Due", "Pay by Friday", "warning")

	assert.NoError(t, err)
	assert.Len(t, recipients, 4)
	for i, p := range members {
		assert.Equal(t, p.UserID, recipients[i])
	}
}

func TestNotificationService_Broadcast_StopsMidLoop(t *testing.T) {
	notifications := new(MockNotificationRepository)
	profiles := new(MockProfileRepository)
	svc := NewNotificationService(notifications, profiles, zap.NewNop())

	profiles.On("List", mock.Anything).Return(roster(3), nil)
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Return(&models.Notification{ID: uuid.New()}, nil).Once()
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Return(nil, errors.New("insert failed")).Once()

	err := svc.Broadcast(context.Background(), "Rent Due", "Pay by Friday", "warning")

	// The first row stays; the third insert never runs.
	assert.Error(t, err)
	notifications.AssertNumberOfCalls(t, "Create", 2)
}

func TestNotificationService_SendGlobal_NonAdmin(t *testing.T) {
	notifications := new(MockNotificationRepository)
	profiles := new(MockProfileRepository)
	svc := NewNotificationService(notifications, profiles, zap.NewNop())

	err := svc.SendGlobal(context.Background(), memberPrincipal(), "Hello", "World", "info")

	assert.ErrorIs(t, err, ErrAdminOnly)
	profiles.AssertNotCalled(t, "List", mock.Anything)
	notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestNotificationService_SendGlobal_Admin(t *testing.T) {
	notifications := new(MockNotificationRepository)
	profiles := new(MockProfileRepository)
	svc := NewNotificationService(notifications, profiles, zap.NewNop())

	profiles.On("List", mock.Anything).Return(roster(2), nil)
	notifications.On("Create", mock.Anything, mock.AnythingOfType("*models.Notification")).
		Return(&models.Notification{ID: uuid.New()}, nil)

	err := svc.SendGlobal(context.Background(), adminPrincipal(), "Hello", "World", "info")

	assert.NoError(t, err)
	notifications.AssertNumberOfCalls(t, "Create", 2)
}
