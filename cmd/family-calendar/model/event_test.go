package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_TableName(t *testing.T) {
	event := Event{}
	assert.Equal(t, "events", event.TableName())
}

func TestOtherParent_SymmetricAndTotal(t *testing.T) {
	for _, p := range []Participant{ParentA, ParentB} {
		other, ok := OtherParent(p)
		assert.True(t, ok)
		assert.NotEqual(t, p, other)

		back, ok := OtherParent(other)
		assert.True(t, ok)
		assert.Equal(t, p, back)
	}

	_, ok := OtherParent(Child)
	assert.False(t, ok, "the child is never a requester or approver")

	_, ok = OtherParent(Participant("grandma"))
	assert.False(t, ok)
}

func TestEvent_EffectiveStatus_CoalescesToConfirmed(t *testing.T) {
	legacy := Event{ID: "legacy", Title: "No status column value"}
	assert.Equal(t, StatusConfirmed, legacy.EffectiveStatus())
	// Read-time coalesce only; the stored field stays empty.
	assert.Equal(t, EventStatus(""), legacy.Status)

	pending := Event{Status: StatusPending}
	assert.Equal(t, StatusPending, pending.EffectiveStatus())

	declined := Event{Status: StatusDeclined}
	assert.Equal(t, StatusDeclined, declined.EffectiveStatus())
}

func TestDatePart_TimePart(t *testing.T) {
	assert.Equal(t, "2024-03-05", DatePart("2024-03-05T12:00:00"))
	assert.Equal(t, "12:00:00", TimePart("2024-03-05T12:00:00"))

	assert.Equal(t, "2024-03-05", DatePart("2024-03-05"))
	assert.Equal(t, "", TimePart("2024-03-05"))
	assert.Equal(t, "", TimePart("2024-03-05T"))
	assert.Equal(t, "", TimePart("2024-03-05T   "))
}

func TestBuildEvent_RejectsEmptyTitle(t *testing.T) {
	_, err := BuildEvent(EventSaveRequest{
		Title:     "   ",
		Who:       Child,
		StartDate: "2024-03-05",
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	assert.ErrorIs(t, err, ErrEmptyTitle)
}

func TestBuildEvent_RejectsMissingOrMalformedDate(t *testing.T) {
	for _, date := range []string{"", "05/03/2024", "2024-13-40"} {
		_, err := BuildEvent(EventSaveRequest{
			Title:     "Dentist",
			Who:       Child,
			StartDate: date,
			StartTime: "12:00",
			EndTime:   "13:00",
		})
		assert.ErrorIs(t, err, ErrMissingDate, "date %q", date)
	}
}

func TestBuildEvent_RejectsEndNotAfterStart(t *testing.T) {
	for _, tc := range []struct{ start, end string }{
		{"13:00", "13:00"},
		{"13:00", "12:00"},
	} {
		_, err := BuildEvent(EventSaveRequest{
			Title:     "Dentist",
			Who:       Child,
			StartDate: "2024-03-05",
			StartTime: tc.start,
			EndTime:   tc.end,
		})
		assert.ErrorIs(t, err, ErrEndNotAfterStart)
	}
}

func TestBuildEvent_RejectsMissingTimes(t *testing.T) {
	_, err := BuildEvent(EventSaveRequest{
		Title:     "Dentist",
		Who:       Child,
		StartDate: "2024-03-05",
		StartTime: "",
		EndTime:   "13:00",
	})
	assert.ErrorIs(t, err, ErrMissingTime)
}

func TestBuildEvent_RejectsUnknownParticipant(t *testing.T) {
	_, err := BuildEvent(EventSaveRequest{
		Title:     "Dentist",
		Who:       Participant("dog"),
		StartDate: "2024-03-05",
		StartTime: "12:00",
		EndTime:   "13:00",
	})
	assert.ErrorIs(t, err, ErrUnknownParticipant)
}

func TestBuildEvent_TimedEvent(t *testing.T) {
	event, err := BuildEvent(EventSaveRequest{
		Title:     "Dentist",
		Who:       Child,
		Notes:     "bring the card",
		StartDate: "2024-03-05",
		StartTime: "12:00",
		EndTime:   "13:00",
		Status:    StatusConfirmed,
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-05T12:00:00", event.StartAt)
	assert.Equal(t, "2024-03-05T13:00:00", event.EndAt)
	assert.False(t, event.IsAllDay)
	assert.Nil(t, event.NeedsApprovalFrom)
}

func TestBuildEvent_AllDayPinsDayBoundary(t *testing.T) {
	// Submitted times must be ignored entirely, even nonsensical ones.
	event, err := BuildEvent(EventSaveRequest{
		Title:     "Gita",
		Who:       Child,
		StartDate: "2024-02-29",
		StartTime: "23:00",
		EndTime:   "01:00",
		IsAllDay:  true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-02-29T00:00:00", event.StartAt)
	assert.Equal(t, "2024-02-29T23:59:59", event.EndAt)
	assert.Equal(t, "2024-02-29", event.StartDate())
	assert.True(t, event.IsAllDay)
}

func TestBuildEvent_PendingRoutesApproval(t *testing.T) {
	requester := ParentA
	event, err := BuildEvent(EventSaveRequest{
		Title:       "Dentist",
		Who:         Child,
		StartDate:   "2024-03-05",
		StartTime:   "12:00",
		EndTime:     "13:00",
		Status:      StatusPending,
		RequestedBy: &requester,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusPending, event.EffectiveStatus())
	if assert.NotNil(t, event.RequestedBy) {
		assert.Equal(t, ParentA, *event.RequestedBy)
	}
	if assert.NotNil(t, event.NeedsApprovalFrom) {
		assert.Equal(t, ParentB, *event.NeedsApprovalFrom)
	}
}

func TestBuildEvent_PendingWithoutRequesterFails(t *testing.T) {
	_, err := BuildEvent(EventSaveRequest{
		Title:     "Dentist",
		Who:       Child,
		StartDate: "2024-03-05",
		StartTime: "12:00",
		EndTime:   "13:00",
		Status:    StatusPending,
	})
	assert.ErrorIs(t, err, ErrNoApprover)
}

func TestBuildEvent_ChildRequesterFails(t *testing.T) {
	requester := Child
	_, err := BuildEvent(EventSaveRequest{
		Title:       "Dentist",
		Who:         Child,
		StartDate:   "2024-03-05",
		StartTime:   "12:00",
		EndTime:     "13:00",
		Status:      StatusPending,
		RequestedBy: &requester,
	})
	assert.ErrorIs(t, err, ErrNoApprover)
}

func TestRouteApproval_LeavingPendingClearsApprover(t *testing.T) {
	requester := ParentA
	approver := ParentB
	event := Event{
		Status:            StatusConfirmed,
		RequestedBy:       &requester,
		NeedsApprovalFrom: &approver,
	}

	err := event.RouteApproval(nil)
	assert.NoError(t, err)
	assert.Nil(t, event.NeedsApprovalFrom)
	if assert.NotNil(t, event.RequestedBy) {
		assert.Equal(t, ParentA, *event.RequestedBy)
	}
}

func TestRouteApproval_TogglingBackToPendingRederives(t *testing.T) {
	requester := ParentB
	event := Event{
		Status:      StatusPending,
		RequestedBy: &requester,
	}

	err := event.RouteApproval(nil)
	assert.NoError(t, err)
	if assert.NotNil(t, event.NeedsApprovalFrom) {
		assert.Equal(t, ParentA, *event.NeedsApprovalFrom)
	}
}

func TestEvent_Duplicate(t *testing.T) {
	requester := ParentA
	approver := ParentB
	original := Event{
		ID:                "original-id",
		Title:             "Piano",
		Who:               Child,
		Notes:             "room 3",
		StartAt:           "2024-03-05T16:00:00",
		EndAt:             "2024-03-05T17:00:00",
		Status:            StatusPending,
		RequestedBy:       &requester,
		NeedsApprovalFrom: &approver,
	}

	dup := original.Duplicate("new-id")
	assert.Equal(t, "new-id", dup.ID)
	assert.Equal(t, "Piano (Copia)", dup.Title)
	assert.Equal(t, original.Who, dup.Who)
	assert.Equal(t, original.StartAt, dup.StartAt)
	assert.Equal(t, original.EndAt, dup.EndAt)
	// Approval state is copied verbatim: the duplicate still awaits the
	// same approver.
	assert.Equal(t, original.Status, dup.Status)
	assert.Equal(t, original.RequestedBy, dup.RequestedBy)
	assert.Equal(t, original.NeedsApprovalFrom, dup.NeedsApprovalFrom)

	// The original is untouched.
	assert.Equal(t, "Piano", original.Title)
}

func TestEvent_JSONSerialization(t *testing.T) {
	requester := ParentA
	approver := ParentB
	event := Event{
		ID:                "test-id",
		Title:             "Dentist",
		Who:               Child,
		StartAt:           "2024-03-05T12:00:00",
		EndAt:             "2024-03-05T13:00:00",
		Status:            StatusPending,
		RequestedBy:       &requester,
		NeedsApprovalFrom: &approver,
	}

	jsonData, err := json.Marshal(event)
	assert.NoError(t, err)
	assert.Contains(t, string(jsonData), `"id":"test-id"`)
	assert.Contains(t, string(jsonData), `"status":"pending"`)
	assert.Contains(t, string(jsonData), `"needs_approval_from":"parentB"`)

	var decoded Event
	err = json.Unmarshal(jsonData, &decoded)
	assert.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestEvent_JSONOmitsEmptyApprovalFields(t *testing.T) {
	event := Event{
		ID:      "legacy",
		Title:   "Old record",
		Who:     Child,
		StartAt: "2023-01-10T09:00:00",
		EndAt:   "2023-01-10T10:00:00",
	}

	jsonData, err := json.Marshal(event)
	assert.NoError(t, err)
	assert.NotContains(t, string(jsonData), "status")
	assert.NotContains(t, string(jsonData), "requested_by")
	assert.NotContains(t, string(jsonData), "needs_approval_from")
}
