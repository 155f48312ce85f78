package booking

import (
	"testing"

	"rentnest/models"
)

func TestReduceFormTransitions(t *testing.T) {
	var state models.BookingForm

	state = ReduceForm(state, FormAction{
		Type:      FormSetPersonalInfo,
		FirstName: "Amara",
		LastName:  "Osei",
		Email:     "amara@uni.ca",
		Phone:     "+1-416-555-0101",
	})
	state = ReduceForm(state, FormAction{
		Type:        FormSetUniversityInfo,
		University:  "University of Toronto",
		Program:     "Computer Science",
		YearOfStudy: 2,
	})
	state = ReduceForm(state, FormAction{
		Type:        FormSetLeaseDates,
		MoveInDate:  "2026-09-01",
		MoveOutDate: "2027-04-30",
	})
	state = ReduceForm(state, FormAction{
		Type:       FormSelectBedroom,
		PropertyID: "prop-1",
		BedroomID:  "bed-2",
	})
	state = ReduceForm(state, FormAction{Type: FormSetNotes, Notes: "arriving late evening"})

	if state.FirstName != "Amara" || state.Email != "amara@uni.ca" {
		t.Fatalf("personal info not applied: %+v", state)
	}
	if state.University != "University of Toronto" || state.YearOfStudy != 2 {
		t.Fatalf("university info not applied: %+v", state)
	}
	if state.MoveInDate != "2026-09-01" || state.MoveOutDate != "2027-04-30" {
		t.Fatalf("lease dates not applied: %+v", state)
	}
	if state.PropertyID != "prop-1" || state.BedroomID != "bed-2" {
		t.Fatalf("bedroom selection not applied: %+v", state)
	}
	if state.Notes != "arriving late evening" {
		t.Fatalf("notes not applied: %+v", state)
	}
}

// Each action builds on the previous state without clearing other sections.
func TestReduceFormPreservesOtherSections(t *testing.T) {
	state := models.BookingForm{FirstName: "Amara", PropertyID: "prop-1", BedroomID: "bed-2"}

	next := ReduceForm(state, FormAction{Type: FormSetLeaseDates, MoveInDate: "2026-09-01"})

	if next.FirstName != "Amara" || next.PropertyID != "prop-1" || next.BedroomID != "bed-2" {
		t.Fatalf("unrelated sections were clobbered: %+v", next)
	}
}

func TestReduceFormDoesNotMutateInput(t *testing.T) {
	original := models.BookingForm{FirstName: "Amara", MoveInDate: "2026-09-01"}

	_ = ReduceForm(original, FormAction{Type: FormSetPersonalInfo, FirstName: "Bea"})

	if original.FirstName != "Amara" {
		t.Fatalf("input state was mutated: %+v", original)
	}
}

func TestReduceFormReset(t *testing.T) {
	state := models.BookingForm{FirstName: "Amara", PropertyID: "prop-1", Notes: "x"}

	next := ReduceForm(state, FormAction{Type: FormReset})

	if next != (models.BookingForm{}) {
		t.Fatalf("expected empty form after reset, got %+v", next)
	}
}

func TestReduceFormUnknownActionIsNoop(t *testing.T) {
	state := models.BookingForm{FirstName: "Amara"}

	next := ReduceForm(state, FormAction{Type: FormActionType("bogus"), FirstName: "Bea"})

	if next != state {
		t.Fatalf("unknown action should leave the form unchanged, got %+v", next)
	}
}
