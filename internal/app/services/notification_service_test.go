package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/brunofarias/jornada-lms/internal/app/models"
)

func TestNotifyPersistsAndPushes(t *testing.T) {
	store := newFakeNotificationStore()
	pusher := &fakePusher{}
	svc := NewNotificationService(store, pusher, zerolog.Nop())

	actionURL := "/courses/fundamentos-da-fe"
	n := &models.Notification{
		UserID:    5,
		Type:      models.NotificationEnrollmentApproved,
		Title:     "Matrícula aprovada",
		Message:   "Sua matrícula foi aprovada",
		ActionURL: &actionURL,
	}
	if err := svc.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if n.ID == 0 {
		t.Fatal("notification ID not set after persist")
	}
	if len(pusher.events) != 1 {
		t.Fatalf("got %d pushed events, want 1", len(pusher.events))
	}
	event := pusher.events[0]
	if event.UserID != 5 || event.NotificationID != n.ID {
		t.Fatalf("event %+v does not reference the stored notification", event)
	}
	if event.ActionURL != actionURL {
		t.Fatalf("got action URL %q, want %q", event.ActionURL, actionURL)
	}
}

func TestNotifyWithoutHub(t *testing.T) {
	store := newFakeNotificationStore()
	svc := NewNotificationService(store, nil, zerolog.Nop())

	n := &models.Notification{UserID: 5, Type: models.NotificationCertificateReady, Title: "Certificado disponível"}
	if err := svc.Notify(context.Background(), n); err != nil {
		t.Fatalf("Notify without hub: %v", err)
	}
	if len(store.notifications) != 1 {
		t.Fatalf("got %d stored notifications, want 1", len(store.notifications))
	}
}

func TestGetAllReportsUnreadCount(t *testing.T) {
	store := newFakeNotificationStore()
	svc := NewNotificationService(store, nil, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := svc.Notify(ctx, &models.Notification{UserID: 5, Type: models.NotificationEnrollmentApproved, Title: "t", Message: "m"})
		if err != nil {
			t.Fatalf("Notify: %v", err)
		}
	}
	if err := svc.MarkAsRead(ctx, 1, 5); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}

	all, total, unread, err := svc.GetAll(ctx, 5, false, 1, 10)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Fatalf("got %d notifications (total %d), want 3", len(all), total)
	}
	if unread != 2 {
		t.Fatalf("got %d unread, want 2", unread)
	}

	unreadOnly, _, _, err := svc.GetAll(ctx, 5, true, 1, 10)
	if err != nil {
		t.Fatalf("GetAll unreadOnly: %v", err)
	}
	if len(unreadOnly) != 2 {
		t.Fatalf("got %d unread notifications, want 2", len(unreadOnly))
	}

	if err := svc.MarkAllAsRead(ctx, 5); err != nil {
		t.Fatalf("MarkAllAsRead: %v", err)
	}
	if _, _, unread, _ = svc.GetAll(ctx, 5, false, 1, 10); unread != 0 {
		t.Fatalf("got %d unread after MarkAllAsRead, want 0", unread)
	}

	if err := svc.ClearAll(ctx, 5); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if _, total, _, _ = svc.GetAll(ctx, 5, false, 1, 10); total != 0 {
		t.Fatalf("got %d notifications after ClearAll, want 0", total)
	}
}

func TestMarkAsReadIsOwnerScoped(t *testing.T) {
	store := newFakeNotificationStore()
	svc := NewNotificationService(store, nil, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Notify(ctx, &models.Notification{UserID: 5, Type: models.NotificationEnrollmentApproved, Title: "t"}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := svc.MarkAsRead(ctx, 1, 99); err == nil {
		t.Fatal("marking another user's notification as read did not fail")
	}
	if store.notifications[0].IsRead {
		t.Fatal("notification marked read by a non-owner")
	}
}
