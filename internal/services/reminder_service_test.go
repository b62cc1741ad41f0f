package services

import (
	"errors"
	"testing"
	"time"
)

type fakeGateway struct {
	scheduledAt   []time.Time
	scheduledBody []string
	cancelled     []string
	failSchedule  bool
	nextHandle    string
}

func (gateway *fakeGateway) EnsureChannel() error {
	return nil
}

func (gateway *fakeGateway) Schedule(at time.Time, title string, body string) (string, error) {
	if gateway.failSchedule {
		return "", errors.New("gateway unavailable")
	}
	gateway.scheduledAt = append(gateway.scheduledAt, at)
	gateway.scheduledBody = append(gateway.scheduledBody, body)
	if gateway.nextHandle == "" {
		gateway.nextHandle = "handle-1"
	}
	return gateway.nextHandle, nil
}

func (gateway *fakeGateway) Cancel(handle string) {
	gateway.cancelled = append(gateway.cancelled, handle)
}

func newTestReminderService(gateway *fakeGateway, now time.Time) *ReminderService {
	service := NewReminderService(gateway, time.UTC)
	service.now = func() time.Time { return now }
	return service
}

func TestScheduleRejectsPastInstant(t *testing.T) {
	gateway := &fakeGateway{}
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)
	service := newTestReminderService(gateway, now)

	testCases := []struct {
		dateISO   string
		timeOfDay string
	}{
		{"2025-09-03", "11:59"},
		{"2025-09-03", "12:00"},
		{"2025-09-02", "23:00"},
	}

	for _, testCase := range testCases {
		_, err := service.Schedule(testCase.dateISO, testCase.timeOfDay, "water the plants")
		if !errors.Is(err, ErrPastInstant) {
			t.Fatalf("Schedule(%s %s) expected ErrPastInstant, got %v", testCase.dateISO, testCase.timeOfDay, err)
		}
	}
	if len(gateway.scheduledAt) != 0 {
		t.Fatalf("gateway must not see past instants, saw %d", len(gateway.scheduledAt))
	}
}

func TestScheduleComposesZeroedLocalInstant(t *testing.T) {
	gateway := &fakeGateway{}
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)
	service := newTestReminderService(gateway, now)

	handle, err := service.Schedule("2025-09-03", "18:30", "pack the bags")
	if err != nil {
		t.Fatalf("Schedule failed: %v", err)
	}
	if handle != "handle-1" {
		t.Fatalf("expected gateway handle returned, got %q", handle)
	}

	want := time.Date(2025, 9, 3, 18, 30, 0, 0, time.UTC)
	if len(gateway.scheduledAt) != 1 || !gateway.scheduledAt[0].Equal(want) {
		t.Fatalf("scheduled instant = %v, want %v", gateway.scheduledAt, want)
	}
	if gateway.scheduledBody[0] != "pack the bags" {
		t.Fatalf("alert body = %q", gateway.scheduledBody[0])
	}
}

func TestScheduleRejectsMalformedInputs(t *testing.T) {
	gateway := &fakeGateway{}
	service := newTestReminderService(gateway, time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC))

	if _, err := service.Schedule("03/09/2025", "18:30", "x"); err == nil {
		t.Fatal("expected error for malformed date")
	}
	if _, err := service.Schedule("2025-09-03", "6pm", "x"); err == nil {
		t.Fatal("expected error for malformed time")
	}
}

func TestCancelIgnoresEmptyHandle(t *testing.T) {
	gateway := &fakeGateway{}
	service := newTestReminderService(gateway, time.Now())

	service.Cancel("")
	if len(gateway.cancelled) != 0 {
		t.Fatal("empty handle must not reach the gateway")
	}

	service.Cancel("handle-9")
	if len(gateway.cancelled) != 1 || gateway.cancelled[0] != "handle-9" {
		t.Fatalf("expected cancel forwarded, got %v", gateway.cancelled)
	}
}

func TestStillFuture(t *testing.T) {
	service := newTestReminderService(&fakeGateway{}, time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC))

	if !service.StillFuture("2025-09-03", "12:01") {
		t.Fatal("expected 12:01 to still be future at 12:00")
	}
	if service.StillFuture("2025-09-03", "12:00") {
		t.Fatal("expected exact-now instant to count as past")
	}
	if service.StillFuture("not-a-date", "12:00") {
		t.Fatal("expected malformed date to count as past")
	}
}
