package guest

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyName = errors.New("guest name is required")

type Guest struct {
	id         uuid.UUID
	firstName  string
	lastName   string
	email      string
	phone      string
	documentID string
	address    string
	notes      string
	createdAt  time.Time
	updatedAt  time.Time
}

func NewGuest(firstName, lastName, email, phone, documentID, address, notes string, now time.Time) (*Guest, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" && lastName == "" {
		return nil, ErrEmptyName
	}
	return &Guest{
		id:         uuid.New(),
		firstName:  firstName,
		lastName:   lastName,
		email:      strings.TrimSpace(email),
		phone:      strings.TrimSpace(phone),
		documentID: documentID,
		address:    address,
		notes:      notes,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructGuest(id uuid.UUID, firstName, lastName, email, phone, documentID, address, notes string, createdAt, updatedAt time.Time) *Guest {
	return &Guest{
		id:         id,
		firstName:  firstName,
		lastName:   lastName,
		email:      email,
		phone:      phone,
		documentID: documentID,
		address:    address,
		notes:      notes,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (g *Guest) ID() uuid.UUID        { return g.id }
func (g *Guest) FirstName() string    { return g.firstName }
func (g *Guest) LastName() string     { return g.lastName }
func (g *Guest) FullName() string     { return strings.TrimSpace(g.firstName + " " + g.lastName) }
func (g *Guest) Email() string        { return g.email }
func (g *Guest) Phone() string        { return g.phone }
func (g *Guest) DocumentID() string   { return g.documentID }
func (g *Guest) Address() string      { return g.address }
func (g *Guest) Notes() string        { return g.notes }
func (g *Guest) CreatedAt() time.Time { return g.createdAt }
func (g *Guest) UpdatedAt() time.Time { return g.updatedAt }
