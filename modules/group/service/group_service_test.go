package service

import (
	"context"
	"testing"
	"time"

	"meetmatch/core/errors"
	"meetmatch/core/params"
	"meetmatch/modules/group/dto"
	"meetmatch/modules/group/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeGroupRepo struct {
	groups  map[uuid.UUID]*entity.Group
	members map[uuid.UUID][]entity.GroupMember
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{
		groups:  map[uuid.UUID]*entity.Group{},
		members: map[uuid.UUID][]entity.GroupMember{},
	}
}

func (f *fakeGroupRepo) CreateGroup(_ context.Context, g *entity.Group) (*entity.Group, error) {
	g.ID = uuid.New()
	g.CreatedAt = time.Now()
	f.groups[g.ID] = g
	return g, nil
}

func (f *fakeGroupRepo) GetGroupByID(_ context.Context, id uuid.UUID) (*entity.Group, error) {
	return f.groups[id], nil
}

func (f *fakeGroupRepo) ListGroupsByOwner(_ context.Context, ownerID uuid.UUID, _ params.QueryParams) ([]entity.Group, int64, error) {
	var result []entity.Group
	for _, g := range f.groups {
		if g.OwnerID == ownerID {
			result = append(result, *g)
		}
	}
	return result, int64(len(result)), nil
}

func (f *fakeGroupRepo) DeleteGroup(_ context.Context, id uuid.UUID) error {
	delete(f.groups, id)
	delete(f.members, id)
	return nil
}

func (f *fakeGroupRepo) AddMember(_ context.Context, m *entity.GroupMember) error {
	for _, existing := range f.members[m.GroupID] {
		if existing.UserID == m.UserID {
			return nil
		}
	}
	f.members[m.GroupID] = append(f.members[m.GroupID], *m)
	return nil
}

func (f *fakeGroupRepo) RemoveMember(_ context.Context, groupID, userID uuid.UUID) error {
	kept := f.members[groupID][:0]
	for _, m := range f.members[groupID] {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	f.members[groupID] = kept
	return nil
}

func (f *fakeGroupRepo) GetMembers(_ context.Context, groupID uuid.UUID) ([]entity.GroupMember, error) {
	return f.members[groupID], nil
}

func TestGroupLifecycle(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo())
	ownerID := uuid.New()
	member := uuid.New()

	group, appErr := svc.Create(context.Background(), ownerID, &dto.CreateGroupRequest{
		Name:      "Design Team",
		MemberIDs: []string{member.String()},
	})
	require.Nil(t, appErr)
	require.Equal(t, "Design Team", group.Name)
	require.Equal(t, []uuid.UUID{member}, group.MemberIDs)

	another := uuid.New()
	appErr = svc.AddMember(context.Background(), ownerID, group.ID, &dto.AddMemberRequest{UserID: another.String()})
	require.Nil(t, appErr)

	loaded, appErr := svc.Get(context.Background(), ownerID, group.ID)
	require.Nil(t, appErr)
	require.ElementsMatch(t, []uuid.UUID{member, another}, loaded.MemberIDs)

	appErr = svc.RemoveMember(context.Background(), ownerID, group.ID, member)
	require.Nil(t, appErr)

	loaded, appErr = svc.Get(context.Background(), ownerID, group.ID)
	require.Nil(t, appErr)
	require.Equal(t, []uuid.UUID{another}, loaded.MemberIDs)

	appErr = svc.Delete(context.Background(), ownerID, group.ID)
	require.Nil(t, appErr)

	_, appErr = svc.Get(context.Background(), ownerID, group.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrNotFound, appErr.Code)
}

func TestGroupOwnerAuthorization(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo())
	ownerID := uuid.New()
	stranger := uuid.New()

	group, appErr := svc.Create(context.Background(), ownerID, &dto.CreateGroupRequest{Name: "Team"})
	require.Nil(t, appErr)

	_, appErr = svc.Get(context.Background(), stranger, group.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)

	appErr = svc.Delete(context.Background(), stranger, group.ID)
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrForbidden, appErr.Code)
}

func TestCreateGroup_Validation(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo())

	_, appErr := svc.Create(context.Background(), uuid.New(), &dto.CreateGroupRequest{Name: "   "})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.Create(context.Background(), uuid.New(), &dto.CreateGroupRequest{
		Name:      "Team",
		MemberIDs: []string{"nope"},
	})
	require.NotNil(t, appErr)
	require.Equal(t, errors.ErrInvalidInput, appErr.Code)
}
