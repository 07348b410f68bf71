package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/internal/domain/entity"
	repo "github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/observability"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

// MembershipState is what a viewer sees on an activity page.
type MembershipState string

const (
	StateCreator   MembershipState = "creator"
	StateMember    MembershipState = "member"
	StateNotMember MembershipState = "not_member"
	StateAnonymous MembershipState = "anonymous"
)

const (
	EventParticipantJoined = "participant.joined"
	EventParticipantLeft   = "participant.left"
)

// EventPublisher receives membership changes. helpers.RabbitPublisher
// satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, eventType string, body any) error
}

type MembershipEvent struct {
	UserID     string `json:"userId"`
	ActivityID string `json:"activityId"`
	At         int64  `json:"at"`
}

type ToggleResult struct {
	State        MembershipState
	Participants []entity.User
}

type MembershipService struct {
	Users        repo.UserRepository
	Activities   repo.ActivityRepository
	Participants repo.ParticipantRepository
	Events       EventPublisher
	Logger       *logrus.Logger
	Now          func() time.Time
}

func NewMembershipService(users repo.UserRepository, activities repo.ActivityRepository, participants repo.ParticipantRepository,
	events EventPublisher, logger *logrus.Logger) *MembershipService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &MembershipService{
		Users:        users,
		Activities:   activities,
		Participants: participants,
		Events:       events,
		Logger:       logger,
		Now:          time.Now,
	}
}

func (s *MembershipService) activity(ctx context.Context, id string) (*entity.Activity, error) {
	a, err := s.Activities.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrActivityNotFound
	}
	return a, nil
}

func (s *MembershipService) IsMember(ctx context.Context, userID, activityID string) (bool, error) {
	return s.Participants.IsMember(ctx, userID, activityID)
}

// View reports the viewer's relation to the activity. An empty viewerID is
// an anonymous visitor.
func (s *MembershipService) View(ctx context.Context, viewerID, activityID string) (MembershipState, error) {
	a, err := s.activity(ctx, activityID)
	if err != nil {
		return "", err
	}
	return s.state(ctx, viewerID, a)
}

func (s *MembershipService) state(ctx context.Context, viewerID string, a *entity.Activity) (MembershipState, error) {
	if viewerID == "" {
		return StateAnonymous, nil
	}
	if a.CreatorID == viewerID {
		return StateCreator, nil
	}
	ok, err := s.Participants.IsMember(ctx, viewerID, a.ID)
	if err != nil {
		return "", err
	}
	if ok {
		return StateMember, nil
	}
	return StateNotMember, nil
}

// Join adds the user to the activity. Joining twice refreshes the join time.
func (s *MembershipService) Join(ctx context.Context, userID, activityID string) error {
	if userID == "" {
		return ErrAnonymous
	}
	a, err := s.activity(ctx, activityID)
	if err != nil {
		return err
	}
	if a.CreatorID == userID {
		return ErrCreatorCannotJoin
	}
	if err := s.Participants.Add(ctx, userID, activityID); err != nil {
		return err
	}
	s.changed(ctx, EventParticipantJoined, userID, activityID)
	return nil
}

// Leave removes the membership. It does not require the activity to exist so
// rows left behind by a deleted activity can still be dropped. Leaving an
// activity the user never joined changes nothing and emits no event.
func (s *MembershipService) Leave(ctx context.Context, userID, activityID string) error {
	ok, err := s.Participants.IsMember(ctx, userID, activityID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := s.Participants.Remove(ctx, userID, activityID); err != nil {
		return err
	}
	s.changed(ctx, EventParticipantLeft, userID, activityID)
	return nil
}

// Toggle flips membership and returns the new state with the re-read
// participant list.
func (s *MembershipService) Toggle(ctx context.Context, userID, activityID string) (*ToggleResult, error) {
	a, err := s.activity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	state, err := s.state(ctx, userID, a)
	if err != nil {
		return nil, err
	}
	switch state {
	case StateAnonymous:
		return nil, ErrAnonymous
	case StateCreator:
		return nil, ErrCreatorCannotJoin
	case StateMember:
		if err := s.Leave(ctx, userID, activityID); err != nil {
			return nil, err
		}
		state = StateNotMember
	default:
		if err := s.Participants.Add(ctx, userID, activityID); err != nil {
			return nil, err
		}
		s.changed(ctx, EventParticipantJoined, userID, activityID)
		state = StateMember
	}
	people, err := participantUsers(ctx, s.Users, s.Participants, activityID)
	if err != nil {
		return nil, err
	}
	return &ToggleResult{State: state, Participants: people}, nil
}

func (s *MembershipService) changed(ctx context.Context, event, userID, activityID string) {
	transition := "joined"
	if event == EventParticipantLeft {
		transition = "left"
	}
	observability.RecordMembershipChange(transition)
	if s.Events == nil {
		return
	}
	body := MembershipEvent{UserID: userID, ActivityID: activityID, At: s.Now().Unix()}
	if err := s.Events.PublishJSON(ctx, event, body); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": userID, "activity_id": activityID}).Warn("publish membership event failed")
	}
}
