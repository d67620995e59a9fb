package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/xavierca1/mailmorph/internal/config"
	"github.com/xavierca1/mailmorph/internal/entity"
	"github.com/xavierca1/mailmorph/internal/infra/cache"
	"github.com/xavierca1/mailmorph/internal/infra/database"
	"github.com/xavierca1/mailmorph/internal/infra/http/handlers"
	"github.com/xavierca1/mailmorph/internal/infra/http/middleware"
	"github.com/xavierca1/mailmorph/internal/infra/http/server"
	"github.com/xavierca1/mailmorph/internal/infra/integration/gemini"
	"github.com/xavierca1/mailmorph/internal/infra/integration/polar"
	"github.com/xavierca1/mailmorph/internal/infra/integration/stripe"
	"github.com/xavierca1/mailmorph/internal/infra/mail"
	"github.com/xavierca1/mailmorph/internal/infra/queue"
	"github.com/xavierca1/mailmorph/internal/infra/storage"
	"github.com/xavierca1/mailmorph/internal/infra/worker"
	"github.com/xavierca1/mailmorph/internal/usecase"
)

// App carrega as dependências montadas a partir da Config.
// Usado pela API e pelo leadctl.
type App struct {
	Config *config.Config

	DB       *sql.DB
	RabbitMQ *queue.RabbitMQ
	Cache    *cache.Client
	Mail     usecase.MailGateway

	Activity *database.Collection[entity.ActivityEvent]
	Recorder *queue.ActivityRecorder

	Leads    *usecase.LeadUseCase
	Emails   *usecase.EmailUseCase
	Drafts   *usecase.DraftUseCase
	Users    *usecase.UserUseCase
	Checkout *usecase.CheckoutUseCase
	Sync     *usecase.SyncRepliesUseCase

	uploadsDir string
	closers    []func() error
}

// New monta repositórios, gateways e use cases. Só o store é obrigatório:
// integrações sem credencial ficam desligadas e o resto segue funcionando.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// 1. Store
	store, err := app.openStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	leads := database.NewLeadRepository(store)
	users := database.NewUserRepository(store)
	sent := database.NewSentEmailRepository(store)
	replies := database.NewReplyRepository(store)
	app.Activity = database.NewActivityRepository(store)
	app.Recorder = queue.NewActivityRecorder(app.Activity)

	// 2. Gateways
	app.Mail = newMailGateway(cfg)
	generator := app.newDraftGenerator(ctx)
	events := app.newPublisher()

	files, err := storage.NewStorage(ctx, storage.StorageConfig{
		Type:         storage.StorageType(cfg.StorageType),
		LocalPath:    cfg.StorageLocalPath,
		S3Bucket:     cfg.AWSS3Bucket,
		S3Region:     cfg.AWSRegion,
		AWSAccessKey: cfg.AWSAccessKeyID,
		AWSSecretKey: cfg.AWSSecretAccessKey,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	if local, ok := files.(*storage.LocalStorage); ok {
		app.uploadsDir = local.BasePath()
	}

	var stripeGateway usecase.StripeGateway
	if cfg.StripeSecretKey != "" {
		stripeGateway = stripe.NewClient(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	} else {
		log.Println("⚠️ STRIPE_SECRET_KEY ausente: checkout Stripe desligado")
	}

	var polarGateway usecase.PolarGateway
	if cfg.PolarAPIKey != "" {
		polarGateway = polar.NewClient(cfg.PolarAPIKey, cfg.PolarOrganizationID, cfg.PolarBaseURL,
			cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
	} else {
		log.Println("⚠️ POLAR_API_KEY ausente: checkout Polar desligado")
	}

	// 3. UseCases
	app.Drafts = usecase.NewDraftUseCase(generator)
	app.Leads = usecase.NewLeadUseCase(leads, app.Mail, app.Drafts, events)
	app.Emails = usecase.NewEmailUseCase(app.Mail, sent, replies, events)
	app.Users = usecase.NewUserUseCase(app.Mail, users, files)
	app.Checkout = usecase.NewCheckoutUseCase(stripeGateway, polarGateway)
	app.Sync = usecase.NewSyncRepliesUseCase(app.Mail, app.Emails, app.Leads)

	return app, nil
}

func (a *App) openStore(ctx context.Context) (database.BlobStore, error) {
	switch a.Config.StoreDriver {
	case config.StorePostgres:
		db, store, err := database.OpenPostgres(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = db
		a.closers = append(a.closers, db.Close)
		log.Println("🐘 Store: Postgres")
		return store, nil
	case config.StoreMemory:
		log.Println("🧠 Store: memória (dados somem ao reiniciar)")
		return database.NewMemoryBlobStore(), nil
	default:
		store, err := database.NewFileBlobStore(a.Config.DataDir)
		if err != nil {
			return nil, err
		}
		log.Printf("📁 Store: arquivos em %s", a.Config.DataDir)
		return store, nil
	}
}

func newMailGateway(cfg *config.Config) usecase.MailGateway {
	if cfg.MailDriver == config.MailSMTP {
		log.Printf("📧 Mail: SMTP %s:%d", cfg.MailHost, cfg.MailPort)
		return mail.NewSMTPGateway(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	}
	log.Printf("📧 Mail: Gmail API (token em %s)", cfg.GmailTokenPath)
	return mail.NewGmailGateway(cfg.GmailTokenPath, cfg.GmailClientSecretPath)
}

// newDraftGenerator devolve nil sem GEMINI_API_KEY: os rascunhos caem nos templates.
func (a *App) newDraftGenerator(ctx context.Context) usecase.DraftGenerator {
	client, err := gemini.NewClient(ctx, a.Config.GeminiAPIKey, a.Config.GeminiModel)
	if err != nil {
		log.Printf("⚠️ Gemini desligado, usando templates: %v", err)
		return nil
	}
	a.closers = append(a.closers, client.Close)

	if a.Config.RedisAddr == "" {
		return client
	}

	a.Cache = cache.New(a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB)
	a.closers = append(a.closers, a.Cache.Close)
	if err := a.Cache.Ping(ctx); err != nil {
		log.Printf("⚠️ Redis indisponível, cache de rascunhos vai falhar aberto: %v", err)
	}
	return cache.NewCachedGenerator(client, a.Cache, a.Config.DraftCacheTTL)
}

// newPublisher usa o RabbitMQ quando AMQP_URL existe; senão grava a atividade direto.
func (a *App) newPublisher() usecase.EventPublisher {
	if a.Config.AMQPURL == "" {
		return a.Recorder
	}

	rabbitMQ, err := queue.NewRabbitMQ(a.Config.AMQPURL)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível, gravando atividade direto: %v", err)
		return a.Recorder
	}
	a.RabbitMQ = rabbitMQ
	a.closers = append(a.closers, rabbitMQ.Close)
	log.Println("🐰 RabbitMQ conectado")
	return queue.NewProducer(rabbitMQ.Ch)
}

// Router monta os handlers HTTP em cima dos use cases.
func (a *App) Router() http.Handler {
	health := handlers.NewHealthHandler(a.DB, nil, nil, a.Mail)
	if a.RabbitMQ != nil {
		health.RabbitMQ = a.RabbitMQ.Conn
	}
	if a.Cache != nil {
		health.Cache = a.Cache
	}

	var limiter *middleware.RateLimiter
	if a.Config.DraftRateLimit > 0 {
		limiter = middleware.NewRateLimiter(a.Config.DraftRateLimit, time.Minute)
		a.closers = append(a.closers, limiter.Stop)
	}

	return server.NewRouter(server.Handlers{
		Health:         health,
		Leads:          handlers.NewLeadHandler(a.Leads),
		Emails:         handlers.NewEmailHandler(a.Emails, a.Sync),
		Drafts:         handlers.NewDraftHandler(a.Drafts),
		Users:          handlers.NewUserHandler(a.Users),
		Checkout:       handlers.NewCheckoutHandler(a.Checkout),
		Activity:       handlers.NewActivityHandler(a.Activity),
		AllowedOrigins: a.Config.AllowedOrigins,
		UploadsDir:     a.uploadsDir,
		DraftLimiter:   limiter,
	})
}

// StartWorkers sobe o consumidor de atividade e o sync de respostas.
// Os dois param quando ctx é cancelado; o WaitGroup devolvido espera por eles.
func (a *App) StartWorkers(ctx context.Context) *sync.WaitGroup {
	var wg sync.WaitGroup

	if a.RabbitMQ != nil {
		consumer := queue.NewWorker(a.RabbitMQ.Ch, a.Recorder)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ Worker de atividade parou: %v", err)
			}
		}()
	}

	if a.Config.ReplySyncInterval > 0 {
		syncer := worker.NewReplySyncWorker(a.Sync, a.Config.ReplySyncInterval)
		wg.Add(1)
		go func() {
			defer wg.Done()
			syncer.Start(ctx)
		}()
	} else {
		log.Println("⏸️ Sync de respostas desligado (REPLY_SYNC_INTERVAL=0)")
	}

	return &wg
}

// Close libera conexões na ordem inversa de abertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("⚠️ erro ao fechar recurso: %v", err)
		}
	}
	a.closers = nil
}
