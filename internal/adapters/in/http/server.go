package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type CreateDeliveryNoteHandler interface {
	Handle(ctx context.Context, cmd commands.CreateDeliveryNoteCommand) (*delivery.Note, error)
}

type DispatchDeliveryNoteHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchDeliveryNoteCommand) (*delivery.Note, error)
}

type ConfirmDeliveryNoteHandler interface {
	Handle(ctx context.Context, cmd commands.ConfirmDeliveryNoteCommand) (*delivery.Note, error)
}

type CancelDeliveryNoteHandler interface {
	Handle(ctx context.Context, cmd commands.CancelDeliveryNoteCommand) (*delivery.Note, error)
}

type CreateCarrierHandler interface {
	Handle(ctx context.Context, cmd commands.CreateCarrierCommand) (kernel.UUID, error)
}

type GetDeliveryNoteHandler interface {
	Handle(ctx context.Context, query queries.GetDeliveryNoteQuery) (queries.GetDeliveryNoteQueryResponse, error)
}

type ListDeliveryNotesHandler interface {
	Handle(ctx context.Context, query queries.ListDeliveryNotesQuery) (queries.ListDeliveryNotesQueryResponse, error)
}

type GetTrackingInfoHandler interface {
	Handle(ctx context.Context, query queries.GetTrackingInfoQuery) (queries.GetTrackingInfoQueryResponse, error)
}

type ListCarriersHandler interface {
	Handle(ctx context.Context, query queries.ListCarriersQuery) ([]queries.ListCarriersQueryResponse, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	CreateDeliveryNote   CreateDeliveryNoteHandler
	DispatchDeliveryNote DispatchDeliveryNoteHandler
	ConfirmDeliveryNote  ConfirmDeliveryNoteHandler
	CancelDeliveryNote   CancelDeliveryNoteHandler
	CreateCarrier        CreateCarrierHandler

	// Query handlers
	GetDeliveryNote   GetDeliveryNoteHandler
	ListDeliveryNotes ListDeliveryNotesHandler
	GetTrackingInfo   GetTrackingInfoHandler
	ListCarriers      ListCarriersHandler
}

// Server implements servers.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger,
	}
}

// CreateDeliveryNote handles POST /api/v1/delivery-notes.
func (s *Server) CreateDeliveryNote(ctx echo.Context, params servers.CreateDeliveryNoteParams) error {
	var body servers.NewDeliveryNote
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	items := make([]commands.DeliveryItemInput, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, commands.DeliveryItemInput{
			ProductID:   item.ProductId,
			Description: deref(item.Description),
			Quantity:    item.Quantity,
			Unit:        deref(item.Unit),
		})
	}

	cmd, err := commands.NewCreateDeliveryNoteCommand(params.XTenantID, body.OrderId, body.CustomerId,
		body.DeliveryAddressId, items)
	if err != nil {
		return err
	}

	note, err := s.handlers.CreateDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.DeliveryNoteResponse{
		Success: true,
		Data:    toDeliveryNote(note, nil),
	})
}

// ListDeliveryNotes handles GET /api/v1/delivery-notes.
func (s *Server) ListDeliveryNotes(ctx echo.Context, params servers.ListDeliveryNotesParams) error {
	filter := queries.DeliveryNoteFilter{
		CustomerID: deref(params.CustomerId),
		OrderID:    deref(params.OrderId),
		DateFrom:   params.DateFrom,
		DateTo:     params.DateTo,
	}
	if params.Status != nil {
		filter.Status = string(*params.Status)
	}
	var skip, take int
	if params.Skip != nil {
		skip = *params.Skip
	}
	if params.Take != nil {
		take = *params.Take
	}

	query, err := queries.NewListDeliveryNotesQuery(params.XTenantID, filter, skip, take)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListDeliveryNotes.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.DeliveryNotePageResponse{
		Success: true,
		Data:    toDeliveryNotePage(page),
	})
}

// GetDeliveryNote handles GET /api/v1/delivery-notes/{id}.
func (s *Server) GetDeliveryNote(ctx echo.Context, id servers.DeliveryNoteId, params servers.GetDeliveryNoteParams) error {
	noteID, err := fromAPIUUID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryNoteQuery(params.XTenantID, noteID)
	if err != nil {
		return err
	}

	response, err := s.handlers.GetDeliveryNote.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.DeliveryNoteResponse{
		Success: true,
		Data:    toDeliveryNote(response.Note, response.Carrier),
	})
}

// DispatchDeliveryNote handles POST /api/v1/delivery-notes/{id}/dispatch.
func (s *Server) DispatchDeliveryNote(
	ctx echo.Context,
	id servers.DeliveryNoteId,
	params servers.DispatchDeliveryNoteParams,
) error {
	var body servers.DispatchRequest
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	noteID, err := fromAPIUUID(id)
	if err != nil {
		return err
	}
	carrierID, err := fromAPIUUID(body.CarrierId)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDispatchDeliveryNoteCommand(params.XTenantID, noteID, carrierID)
	if err != nil {
		return err
	}

	note, err := s.handlers.DispatchDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondNote(ctx, params.XTenantID, note)
}

// ConfirmDeliveryNote handles POST /api/v1/delivery-notes/{id}/confirm.
func (s *Server) ConfirmDeliveryNote(
	ctx echo.Context,
	id servers.DeliveryNoteId,
	params servers.ConfirmDeliveryNoteParams,
) error {
	var body servers.ConfirmRequest
	if err := bindOptional(ctx, &body); err != nil {
		return err
	}

	noteID, err := fromAPIUUID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewConfirmDeliveryNoteCommand(params.XTenantID, noteID, deref(body.ProofOfDeliveryUrl))
	if err != nil {
		return err
	}

	note, err := s.handlers.ConfirmDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondNote(ctx, params.XTenantID, note)
}

// CancelDeliveryNote handles POST /api/v1/delivery-notes/{id}/cancel.
func (s *Server) CancelDeliveryNote(
	ctx echo.Context,
	id servers.DeliveryNoteId,
	params servers.CancelDeliveryNoteParams,
) error {
	var body servers.CancelRequest
	if err := bindOptional(ctx, &body); err != nil {
		return err
	}

	noteID, err := fromAPIUUID(id)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryNoteCommand(params.XTenantID, noteID, deref(body.Reason))
	if err != nil {
		return err
	}

	note, err := s.handlers.CancelDeliveryNote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respondNote(ctx, params.XTenantID, note)
}

// GetTrackingInfo handles GET /api/v1/delivery-notes/{id}/tracking.
func (s *Server) GetTrackingInfo(ctx echo.Context, id servers.DeliveryNoteId, params servers.GetTrackingInfoParams) error {
	noteID, err := fromAPIUUID(id)
	if err != nil {
		return err
	}

	query, err := queries.NewGetTrackingInfoQuery(params.XTenantID, noteID)
	if err != nil {
		return err
	}

	info, err := s.handlers.GetTrackingInfo.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.TrackingInfoResponse{
		Success: true,
		Data:    toTrackingInfo(info),
	})
}

// CreateCarrier handles POST /api/v1/carriers.
func (s *Server) CreateCarrier(ctx echo.Context, params servers.CreateCarrierParams) error {
	var body servers.NewCarrier
	if err := ctx.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	var kind string
	if body.Kind != nil {
		kind = string(*body.Kind)
	}

	cmd, err := commands.NewCreateCarrierCommand(params.XTenantID, body.Name, body.ApiEndpoint,
		deref(body.TrackingUrlTemplate), kind, carrier.Credentials{
			APIKey:        deref(body.ApiKey),
			Username:      deref(body.Username),
			Password:      deref(body.Password),
			AccountNumber: deref(body.AccountNumber),
		})
	if err != nil {
		return err
	}

	carrierID, err := s.handlers.CreateCarrier.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CarrierResponse{
		Success: true,
		Data: toCarrier(queries.ListCarriersQueryResponse{
			ID:                  carrierID,
			Name:                cmd.Name(),
			APIEndpoint:         cmd.APIEndpoint(),
			TrackingURLTemplate: cmd.TrackingURLTemplate(),
			Kind:                cmd.Kind(),
			Active:              true,
		}),
	})
}

// ListCarriers handles GET /api/v1/carriers.
func (s *Server) ListCarriers(ctx echo.Context, params servers.ListCarriersParams) error {
	activeOnly := params.ActiveOnly != nil && *params.ActiveOnly

	query, err := queries.NewListCarriersQuery(params.XTenantID, activeOnly)
	if err != nil {
		return err
	}

	carriers, err := s.handlers.ListCarriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	data := make([]servers.Carrier, 0, len(carriers))
	for _, c := range carriers {
		data = append(data, toCarrier(c))
	}

	return ctx.JSON(http.StatusOK, servers.CarrierListResponse{
		Success: true,
		Data:    data,
	})
}

// respondNote re-reads a changed note to include its carrier. The change is
// already committed, so a failed re-read falls back to the note as returned.
func (s *Server) respondNote(ctx echo.Context, tenantID string, note *delivery.Note) error {
	data := toDeliveryNote(note, nil)

	query, err := queries.NewGetDeliveryNoteQuery(tenantID, note.ID())
	if err == nil {
		var response queries.GetDeliveryNoteQueryResponse
		response, err = s.handlers.GetDeliveryNote.Handle(ctx.Request().Context(), query)
		if err == nil {
			data = toDeliveryNote(response.Note, response.Carrier)
		}
	}
	if err != nil {
		s.logger.WarnContext(ctx.Request().Context(), "failed to reload delivery note",
			slog.String("delivery_note_id", note.ID().String()),
			slog.Any("error", err))
	}

	return ctx.JSON(http.StatusOK, servers.DeliveryNoteResponse{
		Success: true,
		Data:    data,
	})
}

// bindOptional binds a request body that may be omitted entirely.
func bindOptional(ctx echo.Context, target any) error {
	if ctx.Request().ContentLength == 0 {
		return nil
	}
	if err := ctx.Bind(target); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	return nil
}
