package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/hocus-focus/config"
	"github.com/oksasatya/hocus-focus/internal/application"
	"github.com/oksasatya/hocus-focus/internal/domain/repository"
	"github.com/oksasatya/hocus-focus/internal/infrastructure/store"
	"github.com/oksasatya/hocus-focus/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	dataStore   *store.Store
	redisClient redis.UniversalClient
	sessions    repository.SessionRepository
	jwtManager  *helpers.JWTManager
	events      application.EventPublisher
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetStore(s *store.Store)      { dataStore = s }
func GetStore() *store.Store       { return dataStore }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

// SetRedis registers the shared client. Leave unset when Redis is not
// configured; rate limiting then becomes a pass-through.
func SetRedis(r redis.UniversalClient) { redisClient = r }
func GetRedis() redis.UniversalClient  { return redisClient }

func SetSessions(s repository.SessionRepository) { sessions = s }
func GetSessions() repository.SessionRepository  { return sessions }

// SetEvents registers the membership event sink. Optional.
func SetEvents(p application.EventPublisher) { events = p }
func GetEvents() application.EventPublisher  { return events }
