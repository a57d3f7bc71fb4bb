package dialog

import "errors"

var (
	// ErrDuplicateTarget is returned when a generator title is already taken
	ErrDuplicateTarget = errors.New("generator already exists")
	// ErrNoFreeSlot is returned when every generator slot is in use
	ErrNoFreeSlot = errors.New("no free generator slot")
	// ErrMissingTitle is returned when a generator has a blank title
	ErrMissingTitle = errors.New("generator title is required")
	// ErrMissingCommand is returned when a generator has a blank command
	ErrMissingCommand = errors.New("generator command is required")
	// ErrNotCustomTarget is returned when a generator operation targets a fixed page
	ErrNotCustomTarget = errors.New("active page is not a generator page")
)

// Messages shown to the user
const (
	MsgNetlistUnavailable = "Schematic netlist not available"
	MsgDuplicateTarget    = "This plugin already exists. Abort"
	MsgMissingCommand     = "Error. You must provide a command String"
	MsgMissingTitle       = "Error. You must provide a Title"
	MsgChooseTitle        = "Do not forget to choose a title for this netlist control page"
	MsgNoFreeSlot         = "No free generator slot. Remove a generator first"
	MsgNotCustomTarget    = "Only generator pages can be removed"
)

// Message returns the user-facing text for err
func Message(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateTarget):
		return MsgDuplicateTarget
	case errors.Is(err, ErrMissingCommand):
		return MsgMissingCommand
	case errors.Is(err, ErrMissingTitle):
		return MsgMissingTitle
	case errors.Is(err, ErrNoFreeSlot):
		return MsgNoFreeSlot
	case errors.Is(err, ErrNotCustomTarget):
		return MsgNotCustomTarget
	case err == nil:
		return ""
	}
	return err.Error()
}
