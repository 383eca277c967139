package models

// Person is a member of the group.
type Person struct {
	// Name uniquely identifies the person within the roster.
	Name string

	// Balance is the net position. Positive = owed money, Negative = owes money.
	Balance float64
}
