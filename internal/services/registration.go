package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventmanagement/internal/domain"
)

type registrationService struct {
	eventRepo      domain.EventRepository
	regRepo        domain.RegistrationRepository
	userRepo       domain.UserRepository
	emailService   domain.EmailService
	locker         *EventLocker
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewRegistrationService creates a RegistrationService with the given
// repositories. The email service is used for best-effort confirmation mail;
// send failures are logged and never fail the registration.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	regRepo domain.RegistrationRepository,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	locker *EventLocker,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		eventRepo:      eventRepo,
		regRepo:        regRepo,
		userRepo:       userRepo,
		emailService:   emailService,
		locker:         locker,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func validParticipants(n int) error {
	if n < domain.MinParticipants || n > domain.MaxParticipants {
		return &domain.InvalidValueError{
			Field:  "number_of_participants",
			Reason: fmt.Sprintf("must be between %d and %d", domain.MinParticipants, domain.MaxParticipants),
		}
	}
	return nil
}

func (s *registrationService) RegisterToEvent(ctx context.Context, eventID, userID string, participants int) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.IsActive {
		return nil, &domain.InactiveResourceError{Resource: "event", ID: eventID}
	}

	if err := validParticipants(participants); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(eventID)
	defer unlock()

	if _, err := s.regRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return nil, &domain.DuplicateRegistrationError{EventID: eventID, UserID: userID}
	} else {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("get registration: %w", err)
		}
	}

	// Fresh read of all current registrations right before the write.
	regs, err := s.regRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if !domain.CanAccommodate(event, regs, participants, "") {
		return nil, &domain.CapacityExceededError{
			Available: domain.AvailableCapacity(event, regs, ""),
			Requested: participants,
		}
	}

	now := time.Now()
	reg := domain.NewRegistration(eventID, userID, participants, now, now)
	if err := s.regRepo.Create(ctx, reg); err != nil {
		// The storage layer's (event_id, user_id) unique constraint backs up
		// the duplicate check above; surface it as the same domain error.
		var dup *domain.DuplicateRegistrationError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, event, reg)
	return reg, nil
}

// sendConfirmation emails the registrant. Best effort only.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, reg *domain.Registration) {
	user, err := s.userRepo.GetByID(ctx, reg.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "registration_id", reg.ID, "err", err)
		return
	}
	data := &domain.RegistrationConfirmationData{
		Email:        user.Email,
		Name:         user.Name,
		EventTitle:   event.Title,
		EventStart:   event.StartTime.Format("2006-01-02 15:04"),
		Location:     event.Location,
		Participants: reg.NumberOfParticipants,
	}
	if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "registration_id", reg.ID, "err", err)
	}
}

func (s *registrationService) UpdateRegistration(ctx context.Context, registrationID string, participants int) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "registration", ID: registrationID}
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}

	if err := validParticipants(participants); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(reg.EventID)
	defer unlock()

	if participants != reg.NumberOfParticipants {
		event, err := s.eventRepo.GetByID(ctx, reg.EventID)
		if err != nil {
			return nil, fmt.Errorf("get event: %w", err)
		}
		regs, err := s.regRepo.ListByEvent(ctx, reg.EventID)
		if err != nil {
			return nil, fmt.Errorf("list registrations: %w", err)
		}
		// Exclude this registration's own prior contribution from the sum.
		if !domain.CanAccommodate(event, regs, participants, reg.ID) {
			return nil, &domain.CapacityExceededError{
				Available: domain.AvailableCapacity(event, regs, reg.ID),
				Requested: participants,
			}
		}
	}

	updated, err := s.regRepo.UpdateParticipants(ctx, registrationID, participants)
	if err != nil {
		return nil, fmt.Errorf("update registration: %w", err)
	}
	return updated, nil
}

func (s *registrationService) CancelRegistration(ctx context.Context, registrationID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	deleted, err := s.regRepo.Delete(ctx, registrationID)
	if err != nil {
		return false, fmt.Errorf("delete registration: %w", err)
	}
	return deleted, nil
}

func (s *registrationService) GetRegistrationByID(ctx context.Context, registrationID string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "registration", ID: registrationID}
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) GetEventCapacityInfo(ctx context.Context, eventID string) (*domain.CapacityInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	regs, err := s.regRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	registered := 0
	for _, reg := range regs {
		registered += reg.NumberOfParticipants
	}
	return &domain.CapacityInfo{
		EventID:                eventID,
		TotalCapacity:          event.Capacity,
		RegisteredParticipants: registered,
		AvailableCapacity:      event.Capacity - registered,
		IsFull:                 registered >= event.Capacity,
	}, nil
}

func (s *registrationService) ListEventRegistrations(ctx context.Context, eventID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, 0, &domain.NotFoundError{Resource: "event", ID: eventID}
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}

	regs, total, err := s.regRepo.ListByEventPaged(ctx, eventID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, total, nil
}

func (s *registrationService) ListUserRegistrations(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, total, err := s.regRepo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	return regs, total, nil
}
