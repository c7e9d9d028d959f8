package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/typerliga/prediction-league/internal/infrastructure/repository/memory"
	"github.com/typerliga/prediction-league/internal/platform/accesscode"
)

type staticCodeGenerator struct {
	code string
}

func (g staticCodeGenerator) NewCode() (string, error) {
	return g.code, nil
}

func TestCreateGroup(t *testing.T) {
	repo := memory.NewUserGroupRepository(nil)
	service := NewGroupService(repo, staticCodeGenerator{code: "ABCD2345"})

	seasonID := int64(3)
	startRound, endRound := 1, 17
	created, err := service.Create(context.Background(), CreateGroupInput{
		Name:        "  Jesienna runda  ",
		Description: "Typujemy do zimy",
		AdminUserID: "alice",
		SeasonID:    &seasonID,
		StartRound:  &startRound,
		EndRound:    &endRound,
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	if created.Name != "Jesienna runda" {
		t.Fatalf("name not trimmed: %q", created.Name)
	}
	if created.AccessCode != "ABCD2345" {
		t.Fatalf("unexpected access code: %q", created.AccessCode)
	}
	if created.AdminUserID == nil || *created.AdminUserID != "alice" {
		t.Fatalf("admin not recorded: %v", created.AdminUserID)
	}

	isMember, err := repo.IsMember(context.Background(), created.ID, "alice")
	if err != nil {
		t.Fatalf("check membership: %v", err)
	}
	if !isMember {
		t.Fatalf("creator must become a member")
	}
}

func TestCreateGroup_Validation(t *testing.T) {
	service := NewGroupService(memory.NewUserGroupRepository(nil), staticCodeGenerator{code: "ABCD2345"})

	t.Run("missing name", func(t *testing.T) {
		_, err := service.Create(context.Background(), CreateGroupInput{AdminUserID: "alice"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing admin", func(t *testing.T) {
		_, err := service.Create(context.Background(), CreateGroupInput{Name: "Bez admina"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("inverted round range", func(t *testing.T) {
		start, end := 10, 5
		_, err := service.Create(context.Background(), CreateGroupInput{
			Name:        "Odwrotny zakres",
			AdminUserID: "alice",
			StartRound:  &start,
			EndRound:    &end,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestJoinGroup(t *testing.T) {
	repo := memory.NewUserGroupRepository(nil)
	service := NewGroupService(repo, staticCodeGenerator{code: "ABCD2345"})

	created, err := service.Create(context.Background(), CreateGroupInput{
		Name:        "Kolejorz Fans",
		AdminUserID: "alice",
	})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}

	joined, err := service.Join(context.Background(), JoinGroupInput{
		UserID:     "bob",
		AccessCode: " abcd2345 ",
	})
	if err != nil {
		t.Fatalf("join group: %v", err)
	}
	if joined.ID != created.ID {
		t.Fatalf("joined the wrong group: got=%d want=%d", joined.ID, created.ID)
	}

	isMember, err := repo.IsMember(context.Background(), created.ID, "bob")
	if err != nil {
		t.Fatalf("check membership: %v", err)
	}
	if !isMember {
		t.Fatalf("join must record membership")
	}

	t.Run("rejoin is a no-op", func(t *testing.T) {
		if _, err := service.Join(context.Background(), JoinGroupInput{UserID: "bob", AccessCode: "ABCD2345"}); err != nil {
			t.Fatalf("rejoin: %v", err)
		}
		members, err := repo.ListMembers(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("list members: %v", err)
		}
		if len(members) != 2 {
			t.Fatalf("unexpected member count: got=%d want=2", len(members))
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		_, err := service.Join(context.Background(), JoinGroupInput{UserID: "carol", AccessCode: "WRONG999"})
		if !errors.Is(err, ErrInvalidAccessCode) {
			t.Fatalf("expected ErrInvalidAccessCode, got %v", err)
		}
	})
}

func TestRandomGeneratorCodes(t *testing.T) {
	gen := accesscode.NewRandomGenerator(accesscode.DefaultLength)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := gen.NewCode()
		if err != nil {
			t.Fatalf("new code: %v", err)
		}
		if len(code) != accesscode.DefaultLength {
			t.Fatalf("unexpected code length: %q", code)
		}
		if strings.ContainsAny(code, "0O1I") {
			t.Fatalf("code contains an ambiguous character: %q", code)
		}
		seen[code] = struct{}{}
	}
	if len(seen) < 45 {
		t.Fatalf("codes collide far too often: %d unique of 50", len(seen))
	}
}
