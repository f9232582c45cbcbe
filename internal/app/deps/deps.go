package deps

import (
	"authflow/internal/config"
	dl "authflow/internal/core/domain/logging"
	"authflow/internal/core/domain/mail"
	duow "authflow/internal/core/domain/unit_of_work"
	"authflow/internal/core/domain/user"
	"authflow/internal/db"
	uow "authflow/internal/db/unit_of_work"
	dbuser "authflow/internal/db/user"
	"authflow/internal/implementations/email"
	"authflow/internal/implementations/logging"
	passwordhasher "authflow/internal/implementations/password_hasher"
	passwordresetmailer "authflow/internal/implementations/password_reset_mailer"
	resettokengenerator "authflow/internal/implementations/reset_token_generator"
	"authflow/internal/rabbitmq"
	mailqueue "authflow/internal/rabbitmq/publishers/mail_queue"
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Rabbitmq *rabbitmq.Connection
	Pinger   Pinger

	Now func() time.Time

	UnitOfWork     duow.UnitOfWork
	UserRepository user.UserRepository

	PasswordHasher              user.PasswordHasher
	PasswordResetTokenGenerator user.PasswordResetTokenGenerator
	MailSender                  mail.Sender
	PasswordResetTokenSender    user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	warnIfTestMode(context.Background(), deps.Config, deps.Logger)
	closePgxPool := deps.initPgxPool()

	deps.Pinger = deps.DB
	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.BcryptHasherCost)
	deps.PasswordResetTokenGenerator = resettokengenerator.NewGenerator()

	closeMailSender := deps.initMailSender()
	deps.PasswordResetTokenSender = passwordresetmailer.New(
		deps.MailSender,
		deps.Config.FrontendURL,
		deps.Config.PasswordResetValidDurationHours,
	)

	flushSentry := initSentry(deps.Config.SentryDsn, deps.Logger)

	return deps, func() {
		closeAll(
			closeMailSender,
			closePgxPool,
			closeLogger,
			flushSentry,
		)
	}
}

func closeAll(closeFuncs ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(closeFuncs))
	for _, closeFunc := range closeFuncs {
		closeFunc := closeFunc
		go func() {
			closeFunc()
			wg.Done()
		}()
	}

	wg.Wait()
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.SentryDsn != nil)
	deps.Logger = logger
	return func() { logger.Sync() }
}

// warnIfTestMode flags a server that echoes reset tokens back to callers.
// Such a server lets anyone take over any account and must never face users.
func warnIfTestMode(ctx context.Context, cfg *config.Config, log dl.Logger) {
	if !cfg.IsTestMode {
		return
	}
	log.Warning(
		ctx,
		"TEST_MODE is enabled: password reset tokens are returned in responses. Never enable it in production.",
		dl.Entry("header", "x-test-password-reset-token"),
	)
}

func (deps *Deps) initPgxPool() func() {
	if err := db.Migrate(deps.Config.PostgresqlURL, deps.Config.MigrationsPath); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}

	pool, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initMailSender() func() {
	switch deps.Config.Notifier {
	case config.NotifierSES:
		deps.AwsConfig = newAwsConfig(
			deps.Config.AwsRegion,
			deps.Config.AwsAccessKey,
			deps.Config.AwsSecretKey,
		)
		deps.MailSender = email.NewSESSender(deps.AwsConfig, deps.Config.AwsEmailSender)
		return func() {}
	case config.NotifierRabbitMQ:
		return deps.initRabbitmqMailQueue()
	default:
		deps.MailSender = email.NewLogSender(deps.Logger)
		return func() {}
	}
}

func (deps *Deps) initRabbitmqMailQueue() func() {
	connection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = connection

	queue := deps.Config.RabbitmqMailQueue
	channel, err := connection.Channel(rabbitmq.DurableQueue(queue, 0))
	if err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not create RabbitMQ channel.",
			dl.Entry("queue", queue),
			dl.Entry("err", err),
		)
		panic(err)
	}

	deps.MailSender = mailqueue.NewRabbitMQ(deps.Logger, channel, queue)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		channel.Close()
		connection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

// MailerDeps are the dependencies of the worker that drains the mail queue.
type MailerDeps struct {
	Config    *config.MailerConfig
	AwsConfig aws.Config
	Logger    dl.Logger

	Rabbitmq   *rabbitmq.Connection
	MailSender mail.Sender
}

func InitMailerDeps() (*MailerDeps, func()) {
	cfg, err := config.LoadMailer()
	if err != nil {
		panic(err)
	}

	logger := logging.NewZapLogger(cfg.SentryDsn != nil)
	deps := &MailerDeps{Config: cfg, Logger: logger}

	connection, err := rabbitmq.Dial(cfg.RabbitmqURL, logger)
	if err != nil {
		logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = connection

	deps.AwsConfig = newAwsConfig(cfg.AwsRegion, cfg.AwsAccessKey, cfg.AwsSecretKey)
	deps.MailSender = email.NewSESSender(deps.AwsConfig, cfg.AwsEmailSender)

	flushSentry := initSentry(cfg.SentryDsn, logger)

	return deps, func() {
		closeAll(
			func() {
				logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
				connection.Close()
				logger.Info(context.Background(), "RabbitMQ connection shut down.")
			},
			func() { logger.Sync() },
			flushSentry,
		)
	}
}

func newAwsConfig(region, accessKey, secretKey string) aws.Config {
	opts := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(region),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	// Without static keys the default chain is used (env, shared config, instance role).
	if accessKey != "" {
		opts = append(opts, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func initSentry(dsn *url.URL, log dl.Logger) func() {
	if dsn != nil {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn.String(),
			TracesSampleRate: 0.01,
		})
		if err != nil {
			panic(fmt.Sprintf("could not init Sentry: %v\n", err))
		}
		log.Info(context.Background(), "Sentry has been successfully initialized.")
		return func() {
			ok := sentry.Flush(5 * time.Second)
			log.Info(context.Background(), "Sentry events flushed.", dl.Entry("ok", ok))
		}
	}

	log.Info(context.Background(), "Sentry is disabled.")
	return func() {}
}
