package booking

import "rentnest/models"

// FormActionType discriminates booking form actions.
type FormActionType string

const (
	FormSetPersonalInfo   FormActionType = "setPersonalInfo"
	FormSetUniversityInfo FormActionType = "setUniversityInfo"
	FormSetLeaseDates     FormActionType = "setLeaseDates"
	FormSelectBedroom     FormActionType = "selectBedroom"
	FormSetNotes          FormActionType = "setNotes"
	FormReset             FormActionType = "reset"
)

// FormAction carries one form update. Only the fields relevant to its Type
// are read.
type FormAction struct {
	Type FormActionType

	FirstName string
	LastName  string
	Email     string
	Phone     string

	University  string
	Program     string
	YearOfStudy int

	MoveInDate  string
	MoveOutDate string

	PropertyID string
	BedroomID  string

	Notes string
}

// ReduceForm applies an action to a form state and returns the new state.
// The input state is never mutated, so every intermediate form value stays
// valid and the transitions are unit-testable with no UI attached.
func ReduceForm(state models.BookingForm, action FormAction) models.BookingForm {
	switch action.Type {
	case FormSetPersonalInfo:
		state.FirstName = action.FirstName
		state.LastName = action.LastName
		state.Email = action.Email
		state.Phone = action.Phone
	case FormSetUniversityInfo:
		state.University = action.University
		state.Program = action.Program
		state.YearOfStudy = action.YearOfStudy
	case FormSetLeaseDates:
		state.MoveInDate = action.MoveInDate
		state.MoveOutDate = action.MoveOutDate
	case FormSelectBedroom:
		state.PropertyID = action.PropertyID
		state.BedroomID = action.BedroomID
	case FormSetNotes:
		state.Notes = action.Notes
	case FormReset:
		state = models.BookingForm{}
	}
	return state
}
