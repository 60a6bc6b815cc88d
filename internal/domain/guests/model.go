package guests

// Guest is the party admitted by one access code.
type Guest struct {
	Code       string
	FamilyName string
	PartySize  int
}
