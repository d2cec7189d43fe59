package service

import (
	"context"
	"strings"

	coreDto "meetmatch/core/dto"
	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/modules/group/dto"
	"meetmatch/modules/group/entity"
	"meetmatch/modules/group/repository"

	"github.com/google/uuid"
)

type GroupServiceInterface interface {
	Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupDTO, *errors.AppError)
	Get(ctx context.Context, ownerID, groupID uuid.UUID) (*dto.GroupDTO, *errors.AppError)
	List(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*coreDto.Pagination[dto.GroupDTO], *errors.AppError)
	Delete(ctx context.Context, ownerID, groupID uuid.UUID) *errors.AppError
	AddMember(ctx context.Context, ownerID, groupID uuid.UUID, req *dto.AddMemberRequest) *errors.AppError
	RemoveMember(ctx context.Context, ownerID, groupID, userID uuid.UUID) *errors.AppError
}

type GroupService struct {
	repo repository.GroupRepository
}

func NewGroupService(repo repository.GroupRepository) GroupServiceInterface {
	return &GroupService{repo: repo}
}

func (s *GroupService) Create(ctx context.Context, ownerID uuid.UUID, req *dto.CreateGroupRequest) (*dto.GroupDTO, *errors.AppError) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name is required", nil)
	}

	group := &entity.Group{OwnerID: ownerID, Name: name}
	if _, err := s.repo.CreateGroup(ctx, group); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to create group", err)
	}

	for _, idStr := range req.MemberIDs {
		userID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid member id "+idStr, err)
		}
		member := &entity.GroupMember{GroupID: group.ID, UserID: userID}
		if err := s.repo.AddMember(ctx, member); err != nil {
			return nil, errors.NewAppError(errors.ErrInternalServer, "failed to add member", err)
		}
	}

	return s.loadGroupDTO(ctx, group)
}

func (s *GroupService) Get(ctx context.Context, ownerID, groupID uuid.UUID) (*dto.GroupDTO, *errors.AppError) {
	group, appErr := s.ownedGroup(ctx, ownerID, groupID)
	if appErr != nil {
		return nil, appErr
	}
	return s.loadGroupDTO(ctx, group)
}

func (s *GroupService) List(ctx context.Context, ownerID uuid.UUID, p params.QueryParams) (*coreDto.Pagination[dto.GroupDTO], *errors.AppError) {
	groups, total, err := s.repo.ListGroupsByOwner(ctx, ownerID, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list groups", err)
	}

	items := make([]dto.GroupDTO, 0, len(groups))
	for i := range groups {
		g, appErr := s.loadGroupDTO(ctx, &groups[i])
		if appErr != nil {
			return nil, appErr
		}
		items = append(items, *g)
	}
	return coreDto.NewPagination(items, total, p.PageNumber, p.PageSize), nil
}

func (s *GroupService) Delete(ctx context.Context, ownerID, groupID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedGroup(ctx, ownerID, groupID); appErr != nil {
		return appErr
	}
	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to delete group", err)
	}
	return nil
}

func (s *GroupService) AddMember(ctx context.Context, ownerID, groupID uuid.UUID, req *dto.AddMemberRequest) *errors.AppError {
	if _, appErr := s.ownedGroup(ctx, ownerID, groupID); appErr != nil {
		return appErr
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return errors.NewAppError(errors.ErrInvalidInput, "invalid user id", err)
	}
	member := &entity.GroupMember{GroupID: groupID, UserID: userID}
	if err := s.repo.AddMember(ctx, member); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to add member", err)
	}
	return nil
}

func (s *GroupService) RemoveMember(ctx context.Context, ownerID, groupID, userID uuid.UUID) *errors.AppError {
	if _, appErr := s.ownedGroup(ctx, ownerID, groupID); appErr != nil {
		return appErr
	}
	if err := s.repo.RemoveMember(ctx, groupID, userID); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to remove member", err)
	}
	return nil
}

func (s *GroupService) ownedGroup(ctx context.Context, ownerID, groupID uuid.UUID) (*entity.Group, *errors.AppError) {
	group, err := s.repo.GetGroupByID(ctx, groupID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load group", err)
	}
	if group == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "group not found", nil)
	}
	if group.OwnerID != ownerID {
		return nil, errors.NewAppError(errors.ErrForbidden, "only the owner can manage this group", nil)
	}
	return group, nil
}

func (s *GroupService) loadGroupDTO(ctx context.Context, group *entity.Group) (*dto.GroupDTO, *errors.AppError) {
	members, err := s.repo.GetMembers(ctx, group.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load members", err)
	}

	memberIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		memberIDs = append(memberIDs, m.UserID)
	}
	return &dto.GroupDTO{
		ID:        group.ID,
		Name:      group.Name,
		MemberIDs: memberIDs,
		CreatedAt: group.CreatedAt,
	}, nil
}
