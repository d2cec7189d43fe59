package entity

import (
	"meetmatch/core/entity"

	"github.com/google/uuid"
)

// Group is a named participant set owned by a user, a shortcut for
// scheduling with the same people repeatedly.
type Group struct {
	entity.BaseEntity
	OwnerID uuid.UUID `db:"owner_id" json:"owner_id"`
	Name    string    `db:"name" json:"name"`
}

func (Group) TableName() string {
	return "groups"
}

type GroupMember struct {
	entity.BaseEntity
	GroupID uuid.UUID `db:"group_id" json:"group_id"`
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
