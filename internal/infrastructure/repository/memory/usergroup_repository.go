package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/typerliga/prediction-league/internal/domain/usergroup"
)

type UserGroupRepository struct {
	mu      sync.RWMutex
	nextID  int64
	items   map[int64]usergroup.Group
	members map[int64][]usergroup.Member
}

func NewUserGroupRepository(groups []usergroup.Group) *UserGroupRepository {
	r := &UserGroupRepository{
		nextID:  1,
		items:   make(map[int64]usergroup.Group, len(groups)),
		members: make(map[int64][]usergroup.Member),
	}
	for _, item := range groups {
		if item.ID == 0 {
			item.ID = r.nextID
		}
		if item.ID >= r.nextID {
			r.nextID = item.ID + 1
		}
		r.items[item.ID] = item
	}

	return r
}

func (r *UserGroupRepository) Create(_ context.Context, group usergroup.Group) (usergroup.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	group.ID = r.nextID
	r.nextID++
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	r.items[group.ID] = group

	return group, nil
}

func (r *UserGroupRepository) GetByID(_ context.Context, groupID int64) (usergroup.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[groupID]
	return item, ok, nil
}

func (r *UserGroupRepository) GetByAccessCode(_ context.Context, accessCode string) (usergroup.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.AccessCode == accessCode {
			return item, true, nil
		}
	}

	return usergroup.Group{}, false, nil
}

func (r *UserGroupRepository) IsMember(_ context.Context, groupID int64, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members[groupID] {
		if member.UserID == userID {
			return true, nil
		}
	}

	return false, nil
}

func (r *UserGroupRepository) AddMember(_ context.Context, groupID int64, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, member := range r.members[groupID] {
		if member.UserID == userID {
			return nil
		}
	}
	r.members[groupID] = append(r.members[groupID], usergroup.Member{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: time.Now().UTC(),
	})

	return nil
}

func (r *UserGroupRepository) ListMembers(_ context.Context, groupID int64) ([]usergroup.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]usergroup.Member, 0, len(r.members[groupID]))
	out = append(out, r.members[groupID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })

	return out, nil
}
