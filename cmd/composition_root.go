package cmd

import (
	"log/slog"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/messaging"
	"fulfillment/internal/adapters/out/carriers"
	"fulfillment/internal/adapters/out/inventory"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/registry"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	carriers   *carriers.Factory
	inventory  ports.InventoryClient
	recipients ports.RecipientResolver
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) CompositionRoot {
	var recipients ports.RecipientResolver
	if config.RegistryServiceURL != "" {
		recipients = registry.NewHTTPResolver(config.RegistryServiceURL)
	} else {
		logger.Warn("REGISTRY_SERVICE_URL not set, shipments use the customer id as recipient name")
		recipients = registry.NewStaticResolver(ports.Recipient{})
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		carriers:   carriers.NewFactory(),
		inventory:  inventory.NewClient(config.InventoryServiceURL),
		recipients: recipients,
		logger:     logger,
	}
}

func (c *CompositionRoot) deliveryNoteUoWFactory() commands.DeliveryNoteUoWFactory {
	return FuncDeliveryNoteUoWFactory(func() commands.DeliveryNoteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) carrierUoWFactory() commands.CarrierUoWFactory {
	return FuncCarrierUoWFactory(func() commands.CarrierUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDeliveryNoteCommandHandler() commands.CreateDeliveryNoteCommandHandler {
	return commands.NewCreateDeliveryNoteCommandHandler(c.deliveryNoteUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateDispatchDeliveryNoteCommandHandler() commands.DispatchDeliveryNoteCommandHandler {
	return commands.NewDispatchDeliveryNoteCommandHandler(c.uoWFactory(), c.carriers, c.recipients, c.inventory,
		c.publisher, c.logger)
}

func (c *CompositionRoot) CreateConfirmDeliveryNoteCommandHandler() commands.ConfirmDeliveryNoteCommandHandler {
	return commands.NewConfirmDeliveryNoteCommandHandler(c.deliveryNoteUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelDeliveryNoteCommandHandler() commands.CancelDeliveryNoteCommandHandler {
	return commands.NewCancelDeliveryNoteCommandHandler(c.deliveryNoteUoWFactory(), c.inventory, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	return commands.NewUpdateDeliveryStatusCommandHandler(c.deliveryNoteUoWFactory())
}

func (c *CompositionRoot) CreateReconcileTrackingCommandHandler() commands.ReconcileTrackingCommandHandler {
	return commands.NewReconcileTrackingCommandHandler(c.uoWFactory(), c.carriers,
		c.CreateUpdateDeliveryStatusCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateCreateCarrierCommandHandler() commands.CreateCarrierCommandHandler {
	return commands.NewCreateCarrierCommandHandler(c.carrierUoWFactory())
}

func (c *CompositionRoot) CreateGetDeliveryNoteQueryHandler() queries.GetDeliveryNoteQueryHandler {
	return queries.NewGetDeliveryNoteQueryHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListDeliveryNotesQueryHandler() queries.ListDeliveryNotesQueryHandler {
	return queries.NewListDeliveryNotesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingInfoQueryHandler() queries.GetTrackingInfoQueryHandler {
	return queries.NewGetTrackingInfoQueryHandler(c.uowFactory, c.carriers)
}

func (c *CompositionRoot) CreateListCarriersQueryHandler() queries.ListCarriersQueryHandler {
	return queries.NewListCarriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateDeliveryNote:   c.CreateCreateDeliveryNoteCommandHandler(),
		DispatchDeliveryNote: c.CreateDispatchDeliveryNoteCommandHandler(),
		ConfirmDeliveryNote:  c.CreateConfirmDeliveryNoteCommandHandler(),
		CancelDeliveryNote:   c.CreateCancelDeliveryNoteCommandHandler(),
		CreateCarrier:        c.CreateCreateCarrierCommandHandler(),
		GetDeliveryNote:      c.CreateGetDeliveryNoteQueryHandler(),
		ListDeliveryNotes:    c.CreateListDeliveryNotesQueryHandler(),
		GetTrackingInfo:      c.CreateGetTrackingInfoQueryHandler(),
		ListCarriers:         c.CreateListCarriersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateOrderFulfilledHandler() *messaging.OrderFulfilledHandler {
	return messaging.NewOrderFulfilledHandler(c.CreateCreateDeliveryNoteCommandHandler(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileTrackingCommandHandler(), c.config.TrackingSchedule,
		c.config.TrackingBatchSize, c.logger)
}

type FuncDeliveryNoteUoWFactory func() commands.DeliveryNoteUoW

func (f FuncDeliveryNoteUoWFactory) Create() commands.DeliveryNoteUoW {
	return f()
}

type FuncCarrierUoWFactory func() commands.CarrierUoW

func (f FuncCarrierUoWFactory) Create() commands.CarrierUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
