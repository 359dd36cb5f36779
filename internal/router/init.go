package router

import (
	"github.com/membernet/member-info-service/internal/application"
	"github.com/membernet/member-info-service/internal/container"
	pginfra "github.com/membernet/member-info-service/internal/infrastructure/postgres"
	handlers "github.com/membernet/member-info-service/internal/interface/http"
	"github.com/membernet/member-info-service/internal/router/modules"
)

// InitModules builds the repositories, services and handlers from the
// container singletons and registers every feature module. Called once during
// startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	exec := pginfra.NewExecutor(container.GetPGPool())
	members := pginfra.NewMemberRepository(exec)
	contacts := pginfra.NewContactRepository(exec)
	addresses := pginfra.NewAddressRepository(exec)
	lookups := pginfra.NewLookupRepository(exec)

	indexer := application.NewMemberIndexer(container.GetES(), cfg.ESMembersIndex)

	regSvc := application.NewRegistrationService(members, contacts, exec, logger)
	regSvc.Pub = container.GetRabbitPub()
	regSvc.Indexer = indexer
	regSvc.TxTimeout = cfg.TxTimeout
	regSvc.MailSend = cfg.MailSendEnabled
	regSvc.VerifyURL = cfg.VerifyEmailURL

	verifySvc := application.NewVerificationService(contacts, logger)
	authSvc := application.NewAuthService(members, contacts, container.GetJWT(), container.GetRedis(), logger)
	memberSvc := application.NewMemberService(members, contacts, addresses, logger)
	memberSvc.Indexer = indexer

	account := handlers.NewAccountHandler(regSvc, verifySvc, authSvc, memberSvc, logger)
	lookup := handlers.NewLookupHandler(lookups, container.GetRedis())

	r.Add(modules.NewAccountModule(account, container.GetJWT()))
	r.Add(modules.NewLookupModule(lookup))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
