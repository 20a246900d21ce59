package outfit

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/outfit-advisor/internal/domain/wardrobe"
	apperrors "github.com/yanqian/outfit-advisor/pkg/errors"
	"github.com/yanqian/outfit-advisor/pkg/util"
)

// Config controls outfit generation.
type Config struct {
	MaxItems   int
	SessionTTL time.Duration
}

// GenerateRequest asks for an outfit for a complete set of answers.
type GenerateRequest struct {
	Answers Answers `json:"answers"`
}

// AnswerRequest answers the current question of a session.
type AnswerRequest struct {
	Answer Answer `json:"answer"`
}

// SessionView is a session plus the question it is waiting on.
type SessionView struct {
	Session
	Question *Question `json:"question,omitempty"`
}

// WardrobeReader lists the items outfits are built from.
type WardrobeReader interface {
	List(ctx context.Context, owner string) ([]wardrobe.Item, error)
}

// SessionStore persists question sessions.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (Session, bool, error)
	SaveSession(ctx context.Context, session Session, ttl time.Duration) error
}

// Service generates outfits and drives question sessions.
type Service interface {
	Questions() []Question
	Generate(ctx context.Context, owner string, req GenerateRequest) (ScoredOutfit, error)
	StartSession(ctx context.Context, owner string) (SessionView, error)
	Session(ctx context.Context, owner, id string) (SessionView, error)
	Answer(ctx context.Context, owner, id string, req AnswerRequest) (SessionView, error)
	Reset(ctx context.Context, owner, id string) (SessionView, error)
}

type service struct {
	cfg      Config
	wardrobe WardrobeReader
	sessions SessionStore
	logger   *slog.Logger
}

// NewService wires the outfit domain.
func NewService(cfg Config, wardrobe WardrobeReader, sessions SessionStore, logger *slog.Logger) Service {
	if cfg.MaxItems <= 0 || cfg.MaxItems > MaxItems {
		cfg.MaxItems = MaxItems
	}
	return &service{
		cfg:      cfg,
		wardrobe: wardrobe,
		sessions: sessions,
		logger:   logger.With("component", "outfit.service"),
	}
}

func (s *service) Questions() []Question {
	return Questions()
}

func (s *service) Generate(ctx context.Context, owner string, req GenerateRequest) (ScoredOutfit, error) {
	return s.generate(ctx, owner, req.Answers)
}

func (s *service) generate(ctx context.Context, owner string, answers Answers) (ScoredOutfit, error) {
	items, err := s.wardrobe.List(ctx, owner)
	if err != nil {
		return ScoredOutfit{}, err
	}
	outfit := describe(SelectTop(items, answers, s.cfg.MaxItems), answers)
	s.logger.Info("outfit generated", "owner", owner, "wardrobe_size", len(items), "selected", len(outfit.Items))
	return outfit, nil
}

func (s *service) StartSession(ctx context.Context, owner string) (SessionView, error) {
	session := NewSession(uuid.NewString(), ownerOrDefault(owner), util.NowUTC())
	if err := s.save(ctx, session); err != nil {
		return SessionView{}, err
	}
	return view(session), nil
}

func (s *service) Session(ctx context.Context, owner, id string) (SessionView, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return SessionView{}, err
	}
	return view(session), nil
}

func (s *service) Answer(ctx context.Context, owner, id string, req AnswerRequest) (SessionView, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return SessionView{}, err
	}
	done, err := session.Answer(req.Answer, util.NowUTC())
	if err != nil {
		return SessionView{}, err
	}
	if done {
		// A failed generation leaves the stored session on its last question.
		outfit, err := s.generate(ctx, session.Owner, session.Answers)
		if err != nil {
			return SessionView{}, err
		}
		if err := session.Complete(outfit, util.NowUTC()); err != nil {
			return SessionView{}, err
		}
	}
	if err := s.save(ctx, session); err != nil {
		return SessionView{}, err
	}
	return view(session), nil
}

func (s *service) Reset(ctx context.Context, owner, id string) (SessionView, error) {
	session, err := s.load(ctx, owner, id)
	if err != nil {
		return SessionView{}, err
	}
	if err := session.Reset(util.NowUTC()); err != nil {
		return SessionView{}, err
	}
	if err := s.save(ctx, session); err != nil {
		return SessionView{}, err
	}
	return view(session), nil
}

func (s *service) load(ctx context.Context, owner, id string) (Session, error) {
	session, found, err := s.sessions.GetSession(ctx, strings.TrimSpace(id))
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeStorageError, "failed to load session", err)
	}
	if !found || session.Owner != ownerOrDefault(owner) {
		return Session{}, apperrors.Wrap(apperrors.CodeNotFound, "session not found", nil)
	}
	return session, nil
}

func (s *service) save(ctx context.Context, session Session) error {
	if err := s.sessions.SaveSession(ctx, session, s.cfg.SessionTTL); err != nil {
		return apperrors.Wrap(apperrors.CodeStorageError, "failed to save session", err)
	}
	return nil
}

func view(session Session) SessionView {
	v := SessionView{Session: session}
	if q, ok := session.CurrentQuestion(); ok {
		v.Question = &q
	}
	return v
}

func ownerOrDefault(owner string) string {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return wardrobe.DefaultOwner
	}
	return owner
}
