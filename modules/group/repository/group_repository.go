package repository

import (
	"context"
	"database/sql"

	"meetmatch/core/database"
	"meetmatch/core/logger"
	"meetmatch/core/params"
	"meetmatch/modules/group/entity"

	"github.com/google/uuid"
)

type GroupRepository interface {
	CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error)
	GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error)
	ListGroupsByOwner(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) ([]entity.Group, int64, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *entity.GroupMember) error
	RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error
	GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error)
}

type groupRepository struct {
	db database.Database
}

func NewGroupRepository(db database.Database) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) CreateGroup(ctx context.Context, group *entity.Group) (*entity.Group, error) {
	query := `
		INSERT INTO groups (owner_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, group.OwnerID, group.Name).
		Scan(&group.ID, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		logger.Error("GroupRepository:CreateGroup", "error", err)
		return nil, err
	}
	return group, nil
}

func (r *groupRepository) GetGroupByID(ctx context.Context, id uuid.UUID) (*entity.Group, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM groups
		WHERE id = $1
	`
	var group entity.Group
	err := r.db.GetContext(ctx, &group, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("GroupRepository:GetGroupByID", "error", err)
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) ListGroupsByOwner(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) ([]entity.Group, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM groups WHERE owner_id = $1`, ownerID); err != nil {
		logger.Error("GroupRepository:ListGroupsByOwner:Count", "error", err)
		return nil, 0, err
	}

	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM groups
		WHERE owner_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	var groups []entity.Group
	if err := r.db.SelectContext(ctx, &groups, query, ownerID, p.PageSize, p.Offset()); err != nil {
		logger.Error("GroupRepository:ListGroupsByOwner", "error", err)
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *groupRepository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	if err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1`, id); err != nil {
		logger.Error("GroupRepository:DeleteGroup:Members", "error", err)
		return err
	}
	err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		logger.Error("GroupRepository:DeleteGroup", "error", err)
	}
	return err
}

func (r *groupRepository) AddMember(ctx context.Context, member *entity.GroupMember) error {
	query := `
		INSERT INTO group_members (group_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, user_id) DO NOTHING
	`
	err := r.db.ExecContext(ctx, query, member.GroupID, member.UserID)
	if err != nil {
		logger.Error("GroupRepository:AddMember", "error", err)
	}
	return err
}

func (r *groupRepository) RemoveMember(ctx context.Context, groupID, userID uuid.UUID) error {
	query := `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`
	err := r.db.ExecContext(ctx, query, groupID, userID)
	if err != nil {
		logger.Error("GroupRepository:RemoveMember", "error", err)
	}
	return err
}

func (r *groupRepository) GetMembers(ctx context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	query := `
		SELECT id, group_id, user_id, created_at, updated_at
		FROM group_members
		WHERE group_id = $1
		ORDER BY created_at
	`
	var members []entity.GroupMember
	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		logger.Error("GroupRepository:GetMembers", "error", err)
		return nil, err
	}
	return members, nil
}
