package cmd

import (
	"io"
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/rabbitmq"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/jobs"
	"dispatch/internal/metrics"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// EventPublisher is the broker side of the composition root.
type EventPublisher interface {
	ports.AssignmentEventPublisher
	io.Closer
}

// CompositionRoot builds use case handlers and adapters on demand from shared infrastructure.
type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  EventPublisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the root. A nil publisher falls back to rabbitmq.NopPublisher.
//
// Example:
//
//	root := cmd.NewCompositionRoot(cfg, db, publisher, metrics.New(prometheus.NewRegistry()), logger)
//	handler := root.CreateAssignPartnerCommandHandler()
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	publisher EventPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	if publisher == nil {
		publisher = rabbitmq.NopPublisher{}
	}

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

// NewEventPublisher connects to RabbitMQ, or returns a publisher that drops events when AMQP_URL is empty.
func NewEventPublisher(cfg Config) (EventPublisher, error) {
	if cfg.AMQPURL == "" {
		return rabbitmq.NopPublisher{}, nil
	}
	return rabbitmq.Dial(cfg.AMQPURL, cfg.AMQPExchange)
}

func (c *CompositionRoot) CreateAssignPartnerCommandHandler() commands.AssignPartnerCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPartnerCommandHandler(f, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateReassignPartnerCommandHandler() commands.ReassignPartnerCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignPartnerCommandHandler(f, c.CreateAssignPartnerCommandHandler())
}

func (c *CompositionRoot) CreateSweepPendingOrdersCommandHandler() commands.SweepPendingOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSweepPendingOrdersCommandHandler(
		f,
		c.CreateAssignPartnerCommandHandler(),
		c.cfg.SweepConcurrency,
		c.metrics,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetAvailablePartnersQueryHandler() queries.GetAvailablePartnersQueryHandler {
	return queries.NewGetAvailablePartnersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderCandidatesQueryHandler() queries.GetOrderCandidatesQueryHandler {
	// a unit of work that never begins reads straight from the pool
	return queries.NewGetOrderCandidatesQueryHandler(c.uowFactory.Create())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateAssignPartnerCommandHandler(),
		c.CreateReassignPartnerCommandHandler(),
		c.CreateSweepPendingOrdersCommandHandler(),
		c.CreateGetAvailablePartnersQueryHandler(),
		c.CreateGetOrderCandidatesQueryHandler(),
		c.logger,
	)
}

// CreateRouter serves the HTTP server through the validated echo router, with metrics on the root registry.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	return httpin.NewRouter(c.CreateHTTPServer(), doc, httpin.RouterOptions{
		Logger:   c.logger,
		Observer: c.metrics,
		Metrics:  c.metrics.Handler(),
	})
}

// CreateJobManager schedules the pending-order sweep on SWEEP_SCHEDULE.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepPendingOrdersCommandHandler(), c.cfg.SweepSchedule, c.logger)
}

// Close releases the broker connection.
func (c *CompositionRoot) Close() error {
	return c.publisher.Close()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
