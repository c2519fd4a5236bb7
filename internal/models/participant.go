package models

// ParticipantStatus is the claiming state of a participant.
type ParticipantStatus string

const (
	// ParticipantSelecting means the participant may still change claims.
	ParticipantSelecting ParticipantStatus = "selecting"
	// ParticipantDone is terminal: claims are locked in.
	ParticipantDone ParticipantStatus = "done"
)

// Participant is one person splitting a bill. The creator is a participant
// with IsCreator set; both claim items the same way.
type Participant struct {
	ID     string
	BillID string

	// Token is the participant's bearer token.
	Token string

	// Name is empty until the participant submits.
	Name string

	// Phone is optional. PhoneVerified is set only after the verification
	// provider confirms a code for this exact number.
	Phone         string
	PhoneVerified bool

	IsCreator bool
	Status    ParticipantStatus

	// JoinedAt is a Unix timestamp in nanoseconds; it orders claimant lists.
	JoinedAt  int64
	UpdatedAt int64
}

// Done reports whether the participant has submitted.
func (p *Participant) Done() bool {
	return p.Status == ParticipantDone
}

// DisplayName returns the participant's name, or fallback when unnamed.
func (p *Participant) DisplayName(fallback string) string {
	if p.Name != "" {
		return p.Name
	}
	return fallback
}
