package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/miniorder-service/internal/domain"
	"github.com/spec-kit/miniorder-service/internal/events"
	"github.com/spec-kit/miniorder-service/internal/repository"
	"github.com/spec-kit/miniorder-service/internal/session"
	"github.com/spec-kit/miniorder-service/internal/wechat"
	"github.com/spec-kit/miniorder-service/pkg/util"
)

// ResolvedIdentity is the outcome of a successful login resolution.
type ResolvedIdentity struct {
	OpenID  string
	UnionID string
	Token   string
}

// IdentityDependencies encapsulates collaborators for the identity service.
type IdentityDependencies struct {
	Exchanger    wechat.Exchanger
	UserRepo     repository.UserRepository
	Sessions     *session.Store
	TokenManager *session.TokenManager
	ProfileCache *ProfileCache
	Dispatcher   events.Dispatcher
}

// IdentityService coordinates the code-to-identity exchange and user upsert.
type IdentityService struct {
	exchanger wechat.Exchanger
	users     repository.UserRepository
	sessions  *session.Store
	tokenMgr  *session.TokenManager
	cache     *ProfileCache
	events    events.Dispatcher
	logger    *zap.Logger
}

// NewIdentityService builds the service.
func NewIdentityService(deps IdentityDependencies, logger *zap.Logger) *IdentityService {
	return &IdentityService{
		exchanger: deps.Exchanger,
		users:     deps.UserRepo,
		sessions:  deps.Sessions,
		tokenMgr:  deps.TokenManager,
		cache:     deps.ProfileCache,
		events:    deps.Dispatcher,
		logger:    logger,
	}
}

// ResolveIdentity exchanges the login code for a stable openid and upserts
// the profile attributes wholesale. A repeated login for the same openid
// overwrites every attribute; the row count never exceeds one.
func (s *IdentityService) ResolveIdentity(ctx context.Context, code string, profile domain.Profile) (*ResolvedIdentity, error) {
	identity, err := s.exchanger.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	firstLogin := false
	if _, err := s.users.GetByOpenID(ctx, identity.OpenID); err != nil {
		if !util.IsCode(err, util.CodeNotFound) {
			return nil, err
		}
		firstLogin = true
	}

	user := &domain.User{
		OpenID:           identity.OpenID,
		UnionID:          identity.UnionID,
		Username:         profile.Username,
		Sex:              profile.Sex,
		Birthday:         profile.Birthday,
		ConsumptionLevel: profile.ConsumptionLevel,
		AvatarURL:        profile.AvatarURL,
		Role:             profile.Role,
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, identity.OpenID)

	if err := s.sessions.SaveSessionKey(ctx, identity.OpenID, identity.SessionKey); err != nil {
		s.logger.Warn("save session key", zap.Error(err))
	}

	var token string
	if s.tokenMgr != nil {
		token, _, err = s.tokenMgr.Generate(identity.OpenID)
		if err != nil {
			s.logger.Warn("generate session token", zap.Error(err))
			token = ""
		}
	}

	if firstLogin && s.events != nil {
		_ = s.events.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserRegistered,
			Timestamp: time.Now(),
			Payload: events.UserRegisteredPayload{
				OpenID:   identity.OpenID,
				Username: profile.Username,
			},
		})
	}

	return &ResolvedIdentity{
		OpenID:  identity.OpenID,
		UnionID: identity.UnionID,
		Token:   token,
	}, nil
}

// GetUserProfile returns the persisted profile for the openid. A missing row
// is a NotFound result, not a storage failure.
func (s *IdentityService) GetUserProfile(ctx context.Context, openID string) (*domain.User, error) {
	if openID == "" {
		return nil, util.NewInvalidArgument("openid must not be empty", nil)
	}

	if user := s.cache.Get(ctx, openID); user != nil {
		return user, nil
	}

	user, err := s.users.GetByOpenID(ctx, openID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, user)
	return user, nil
}
