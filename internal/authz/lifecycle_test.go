package authz

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/school-service/internal/models"
)

func TestYearStateOf(t *testing.T) {
	tests := []struct {
		status   models.YearStatus
		isConfig bool
		want     YearState
	}{
		{models.YearActive, false, StateActiveUnconfigured},
		{models.YearActive, true, StateActiveConfigured},
		{models.YearInactive, false, StateInactiveUnconfigured},
		{models.YearInactive, true, StateInactiveConfigured},
	}
	for _, tt := range tests {
		if got := YearStateOf(tt.status, tt.isConfig); got != tt.want {
			t.Errorf("YearStateOf(%s, %v) = %s, want %s", tt.status, tt.isConfig, got, tt.want)
		}
	}
}

// Exhaustive walk over the state×event table.
func TestCheckYearEvent(t *testing.T) {
	type key struct {
		state YearState
		event YearEvent
	}
	allowed := map[key]bool{
		{StateActiveUnconfigured, EventStructuralEdit}:  true,
		{StateActiveUnconfigured, EventAttachDependent}: true,
		{StateActiveUnconfigured, EventDeactivate}:      true,
		{StateActiveUnconfigured, EventActivate}:        true,
		{StateActiveUnconfigured, EventDelete}:          false,

		{StateActiveConfigured, EventStructuralEdit}:  false,
		{StateActiveConfigured, EventAttachDependent}: true,
		{StateActiveConfigured, EventDeactivate}:      true,
		{StateActiveConfigured, EventActivate}:        false,
		{StateActiveConfigured, EventDelete}:          false,

		{StateInactiveUnconfigured, EventStructuralEdit}:  false,
		{StateInactiveUnconfigured, EventAttachDependent}: false,
		{StateInactiveUnconfigured, EventDeactivate}:      false,
		{StateInactiveUnconfigured, EventActivate}:        true,
		{StateInactiveUnconfigured, EventDelete}:          true,

		{StateInactiveConfigured, EventStructuralEdit}:  false,
		{StateInactiveConfigured, EventAttachDependent}: false,
		{StateInactiveConfigured, EventDeactivate}:      false,
		{StateInactiveConfigured, EventActivate}:        true,
		{StateInactiveConfigured, EventDelete}:          false,
	}

	states := []struct {
		status   models.YearStatus
		isConfig bool
	}{
		{models.YearActive, false},
		{models.YearActive, true},
		{models.YearInactive, false},
		{models.YearInactive, true},
	}
	events := []YearEvent{EventStructuralEdit, EventAttachDependent, EventDeactivate, EventActivate, EventDelete}

	for _, st := range states {
		for _, ev := range events {
			state := YearStateOf(st.status, st.isConfig)
			err := CheckYearEvent(st.status, st.isConfig, ev)
			want := allowed[key{state, ev}]
			if (err == nil) != want {
				t.Errorf("CheckYearEvent(%s, %v, %s): allowed=%v, want %v (err=%v)",
					st.status, st.isConfig, ev, err == nil, want, err)
			}
			if err != nil && !errors.Is(err, ErrForbidden) {
				t.Errorf("CheckYearEvent(%s, %v, %s) denial should wrap ErrForbidden, got %v",
					st.status, st.isConfig, ev, err)
			}
		}
	}
}

func TestCheckYearEvent_UnknownEvent(t *testing.T) {
	if err := CheckYearEvent(models.YearActive, false, YearEvent("bogus")); err == nil {
		t.Error("unknown event must be denied")
	}
}

func TestCheckYearActivation(t *testing.T) {
	if err := CheckYearActivation(false); err != nil {
		t.Errorf("activation without a competing active year must pass, got %v", err)
	}
	err := CheckYearActivation(true)
	if err == nil {
		t.Fatal("second active year must raise a conflict")
	}
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate active year should wrap ErrConflict, got %v", err)
	}
}

func TestEventsForYearUpdate(t *testing.T) {
	inactive := models.YearInactive
	active := models.YearActive

	tests := []struct {
		name   string
		update YearUpdate
		want   []YearEvent
	}{
		{name: "pure structural edit", update: YearUpdate{Structural: true}, want: []YearEvent{EventStructuralEdit}},
		{name: "pure status flip to inactive", update: YearUpdate{Status: &inactive}, want: []YearEvent{EventDeactivate}},
		{name: "pure status flip to active", update: YearUpdate{Status: &active}, want: []YearEvent{EventActivate}},
		{name: "mixed payload checks both", update: YearUpdate{Structural: true, Status: &inactive}, want: []YearEvent{EventStructuralEdit, EventDeactivate}},
		{name: "empty payload checks nothing", update: YearUpdate{}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EventsForYearUpdate(tt.update)
			if len(got) != len(tt.want) {
				t.Fatalf("EventsForYearUpdate() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("EventsForYearUpdate()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Configured active year accepts exactly {status: inactive} and nothing else.
func TestConfiguredYearOnlyAcceptsRetirement(t *testing.T) {
	inactive := models.YearInactive
	active := models.YearActive

	check := func(u YearUpdate) error {
		for _, ev := range EventsForYearUpdate(u) {
			if err := CheckYearEvent(models.YearActive, true, ev); err != nil {
				return err
			}
		}
		return nil
	}

	if err := check(YearUpdate{Status: &inactive}); err != nil {
		t.Errorf("retiring a configured year must pass, got %v", err)
	}
	if err := check(YearUpdate{Structural: true}); err == nil {
		t.Error("structural edit of a configured year must be denied")
	}
	if err := check(YearUpdate{Structural: true, Status: &inactive}); err == nil {
		t.Error("mixed payload on a configured year must be denied")
	}
	if err := check(YearUpdate{Status: &active}); err == nil {
		t.Error("status value other than inactive must be denied on a configured year")
	}
}
