package application

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	repo "github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
	"github.com/oksasatya/hocus-focus/pkg/validation"
)

type ActivityService struct {
	Users        repo.UserRepository
	Activities   repo.ActivityRepository
	Participants repo.ParticipantRepository
	Logger       *logrus.Logger
}

func NewActivityService(users repo.UserRepository, activities repo.ActivityRepository, participants repo.ParticipantRepository, logger *logrus.Logger) *ActivityService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &ActivityService{Users: users, Activities: activities, Participants: participants, Logger: logger}
}

type CreateActivityInput struct {
	Title           string `json:"title" validate:"required,max=120"`
	Description     string `json:"description" validate:"required"`
	Category        string `json:"category" validate:"required"`
	Location        string `json:"location" validate:"required"`
	Duration        int    `json:"duration" validate:"gt=0"`
	NumParticipants int    `json:"numParticipants" validate:"gt=0"`
	Date            string `json:"date" validate:"required,ymd"`
	Hour            string `json:"hour" validate:"required,hhmm"`
	Image           string `json:"image"`
}

// ActivityFilter narrows List. Empty fields match everything.
type ActivityFilter struct {
	Category  string
	Status    entity.ActivityStatus
	CreatorID string
	Date      string
}

// CategoryGroup is one carousel row on the home page.
type CategoryGroup struct {
	Category   string
	Activities []entity.Activity
}

// ActivityDetail is an activity with its people resolved. Creator is nil
// when the creator no longer exists.
type ActivityDetail struct {
	Activity     *entity.Activity
	Creator      *entity.User
	Participants []entity.User
}

// Create stores a new active activity owned by creatorID.
func (s *ActivityService) Create(ctx context.Context, creatorID string, in CreateActivityInput) (*entity.Activity, error) {
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	a := &entity.Activity{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(in.Title),
		Description:     in.Description,
		Category:        in.Category,
		Location:        in.Location,
		Duration:        in.Duration,
		NumParticipants: in.NumParticipants,
		Date:            in.Date,
		Hour:            in.Hour,
		Status:          entity.ActivityActive,
		CreatorID:       creatorID,
		Image:           in.Image,
	}
	if err := s.Activities.Save(ctx, a); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"activity_id": a.ID, "user_id": creatorID}).Info("activity created")
	return a, nil
}

func (s *ActivityService) Get(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := s.Activities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrActivityNotFound
	}
	return a, nil
}

// List reads through the most selective index given and filters the rest in
// memory.
func (s *ActivityService) List(ctx context.Context, f ActivityFilter) ([]entity.Activity, error) {
	f.Category = strings.ToLower(strings.TrimSpace(f.Category))
	var (
		list []entity.Activity
		err  error
	)
	switch {
	case f.CreatorID != "":
		list, err = s.Activities.GetByCreator(ctx, f.CreatorID)
	case f.Date != "":
		list, err = s.Activities.GetByDate(ctx, f.Date)
	case f.Category != "":
		list, err = s.Activities.GetByCategory(ctx, f.Category)
	case f.Status != "":
		list, err = s.Activities.GetByStatus(ctx, f.Status)
	default:
		list, err = s.Activities.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := list[:0]
	for _, a := range list {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f ActivityFilter) matches(a entity.Activity) bool {
	return (f.Category == "" || a.Category == f.Category) &&
		(f.Status == "" || a.Status == f.Status) &&
		(f.CreatorID == "" || a.CreatorID == f.CreatorID) &&
		(f.Date == "" || a.Date == f.Date)
}

// GroupByCategory returns active activities grouped by category, categories
// sorted by name, activities in storage order.
func (s *ActivityService) GroupByCategory(ctx context.Context) ([]CategoryGroup, error) {
	active, err := s.Activities.GetByStatus(ctx, entity.ActivityActive)
	if err != nil {
		return nil, err
	}
	idx := map[string]int{}
	var groups []CategoryGroup
	for _, a := range active {
		i, ok := idx[a.Category]
		if !ok {
			i = len(groups)
			idx[a.Category] = i
			groups = append(groups, CategoryGroup{Category: a.Category})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Category < groups[j].Category })
	return groups, nil
}

// UpdateStatus sets any known status. There is no transition graph.
func (s *ActivityService) UpdateStatus(ctx context.Context, actorID, id string, status entity.ActivityStatus) (*entity.Activity, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	a, err := s.ownedBy(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.Activities.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the activity. Participant rows are left behind and are
// skipped wherever they are resolved.
func (s *ActivityService) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.ownedBy(ctx, actorID, id); err != nil {
		return err
	}
	return s.Activities.Delete(ctx, id)
}

func (s *ActivityService) ownedBy(ctx context.Context, actorID, id string) (*entity.Activity, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.CreatorID != actorID {
		return nil, ErrNotCreator
	}
	return a, nil
}

func (s *ActivityService) Detail(ctx context.Context, id string) (*ActivityDetail, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	creator, err := s.Users.Get(ctx, a.CreatorID)
	if err != nil {
		return nil, err
	}
	people, err := participantUsers(ctx, s.Users, s.Participants, id)
	if err != nil {
		return nil, err
	}
	return &ActivityDetail{Activity: a, Creator: creator, Participants: people}, nil
}

// participantUsers resolves the members of an activity one by one, skipping
// rows whose user no longer exists.
func participantUsers(ctx context.Context, users repo.UserRepository, participants repo.ParticipantRepository, activityID string) ([]entity.User, error) {
	rows, err := participants.GetByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(rows))
	for _, p := range rows {
		u, err := users.Get(ctx, p.UserID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}
