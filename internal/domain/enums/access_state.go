package enums

type AccessState string

const (
	AccessStateActive AccessState = "active"
	AccessStateBanned AccessState = "banned"
)

// Opposite returns the other stable access state.
func (s AccessState) Opposite() AccessState {
	if s == AccessStateBanned {
		return AccessStateActive
	}
	return AccessStateBanned
}
