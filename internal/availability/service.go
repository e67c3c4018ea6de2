package availability

import (
	"context"
	"sort"
)

// PublishRequest carries the full slot set for one date, keyed by
// timezone profile with HH:MM time strings.
type PublishRequest struct {
	Date  string
	Slots map[Profile][]string
}

type Service interface {
	Publish(ctx context.Context, req PublishRequest) error
	ListAll(ctx context.Context, date string) ([]*Slot, error)
	ListFree(ctx context.Context, date string) ([]*Slot, error)
	Exists(ctx context.Context, date string, profile Profile, timeOfDay int) (bool, error)
	Claim(ctx context.Context, date string, profile Profile, timeOfDay int) error
	Release(ctx context.Context, date string, profile Profile, timeOfDay int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Publish(ctx context.Context, req PublishRequest) error {
	if err := ValidateDate(req.Date); err != nil {
		return err
	}

	var slots []*Slot
	for profile, times := range req.Slots {
		if _, err := ParseProfile(string(profile)); err != nil {
			return err
		}

		seen := make(map[int]bool, len(times))
		for _, t := range times {
			minutes, err := ParseTimeOfDay(t)
			if err != nil {
				return err
			}
			if seen[minutes] {
				return ErrDuplicateSlot
			}
			seen[minutes] = true

			slots = append(slots, &Slot{
				Date:      req.Date,
				Profile:   profile,
				TimeOfDay: minutes,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Profile != slots[j].Profile {
			return slots[i].Profile < slots[j].Profile
		}
		return slots[i].TimeOfDay < slots[j].TimeOfDay
	})

	return s.repo.Replace(ctx, req.Date, slots)
}

func (s *service) ListAll(ctx context.Context, date string) ([]*Slot, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return s.repo.ListByDate(ctx, date)
}

func (s *service) ListFree(ctx context.Context, date string) ([]*Slot, error) {
	all, err := s.ListAll(ctx, date)
	if err != nil {
		return nil, err
	}

	var free []*Slot
	for _, slot := range all {
		if !slot.IsBooked {
			free = append(free, slot)
		}
	}
	return free, nil
}

func (s *service) Exists(ctx context.Context, date string, profile Profile, timeOfDay int) (bool, error) {
	return s.repo.Exists(ctx, date, profile, timeOfDay)
}

func (s *service) Claim(ctx context.Context, date string, profile Profile, timeOfDay int) error {
	return s.repo.Claim(ctx, date, profile, timeOfDay)
}

func (s *service) Release(ctx context.Context, date string, profile Profile, timeOfDay int) error {
	return s.repo.Release(ctx, date, profile, timeOfDay)
}
