package models

// TokenKind names one of the three bearer token classes.
type TokenKind string

const (
	TokenCreator     TokenKind = "creator"
	TokenShare       TokenKind = "share"
	TokenParticipant TokenKind = "participant"
)

// ResourceRef is what a resolved token grants access to. ParticipantID is
// set only for participant tokens.
type ResourceRef struct {
	Kind          TokenKind
	BillID        string
	ParticipantID string
}
