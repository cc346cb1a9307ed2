package http

import (
	"net/http"
	"strconv"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server handles the public order API. It coordinates between HTTP handlers
// and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     *commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	addMessageHandler      commands.AddMessageCommandHandler
	requestRevisionHandler commands.RequestRevisionCommandHandler
	fulfillRevisionHandler commands.FulfillRevisionCommandHandler
	addDeliverableHandler  commands.AddDeliverableCommandHandler
	openDisputeHandler     commands.OpenDisputeCommandHandler
	resolveDisputeHandler  commands.ResolveDisputeCommandHandler
	leaveReviewHandler     commands.LeaveReviewCommandHandler
	recordPaymentHandler   commands.RecordPaymentCommandHandler
	refundPaymentHandler   commands.RefundPaymentCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getOrderMessagesHandler queries.GetOrderMessagesQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler *commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	addMessageHandler commands.AddMessageCommandHandler,
	requestRevisionHandler commands.RequestRevisionCommandHandler,
	fulfillRevisionHandler commands.FulfillRevisionCommandHandler,
	addDeliverableHandler commands.AddDeliverableCommandHandler,
	openDisputeHandler commands.OpenDisputeCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	leaveReviewHandler commands.LeaveReviewCommandHandler,
	recordPaymentHandler commands.RecordPaymentCommandHandler,
	refundPaymentHandler commands.RefundPaymentCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderMessagesHandler queries.GetOrderMessagesQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		transitionOrderHandler:  transitionOrderHandler,
		addMessageHandler:       addMessageHandler,
		requestRevisionHandler:  requestRevisionHandler,
		fulfillRevisionHandler:  fulfillRevisionHandler,
		addDeliverableHandler:   addDeliverableHandler,
		openDisputeHandler:      openDisputeHandler,
		resolveDisputeHandler:   resolveDisputeHandler,
		leaveReviewHandler:      leaveReviewHandler,
		recordPaymentHandler:    recordPaymentHandler,
		refundPaymentHandler:    refundPaymentHandler,
		getOrderHandler:         getOrderHandler,
		getOrderMessagesHandler: getOrderMessagesHandler,
	}
}

// RegisterRoutes wires the server's handlers into the echo instance. The
// payment webhook, health check, and metrics endpoints are unauthenticated;
// everything else requires a bearer token.
func (s *Server) RegisterRoutes(e *echo.Echo, tokens *TokenService) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.POST("/api/v1/payments/webhook", s.PaymentWebhook)

	api := e.Group("/api/v1", AuthMiddleware(tokens))
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/messages", s.GetOrderMessages)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.POST("/orders/:id/messages", s.AddMessage)
	api.POST("/orders/:id/revisions", s.RequestRevision)
	api.POST("/orders/:id/revisions/fulfill", s.FulfillRevision)
	api.POST("/orders/:id/deliverables", s.AddDeliverable)
	api.POST("/orders/:id/disputes", s.OpenDispute)
	api.POST("/orders/:id/disputes/resolve", s.ResolveDispute)
	api.POST("/orders/:id/review", s.LeaveReview)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders. The authenticated user becomes
// the buyer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	buyerID, ok := actorFromContext(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sellerID, err := kernel.UUIDFromString(req.SellerID)
	if err != nil {
		return badRequest(ctx, "Invalid seller id: "+err.Error())
	}

	serviceID, err := kernel.UUIDFromString(req.ServiceID)
	if err != nil {
		return badRequest(ctx, "Invalid service id: "+err.Error())
	}

	requirements := make([]commands.RequirementInput, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		requirements = append(requirements, commands.RequirementInput{
			Question: r.Question,
			Answer:   r.Answer,
			Kind:     r.Kind,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(
		buyerID,
		sellerID,
		serviceID,
		req.PackageName,
		req.PackageDescription,
		req.PriceAmount,
		req.DeliveryDays,
		req.RevisionQuota,
		req.Features,
		req.PaymentMethod,
		requirements,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, "create_order", err)
	}

	metrics.OrdersCreatedTotal.Inc()

	return ctx.JSON(http.StatusCreated, createOrderResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_order", err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(resp))
}

// GetOrderMessages handles GET /api/v1/orders/:id/messages with optional
// page and limit query parameters.
func (s *Server) GetOrderMessages(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	page := intQueryParam(ctx, "page")
	limit := intQueryParam(ctx, "limit")

	query, err := queries.NewGetOrderMessagesQuery(orderID, page, limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	resp, err := s.getOrderMessagesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, "get_order_messages", err)
	}

	return ctx.JSON(http.StatusOK, messagesResponse{
		Messages: resp.Messages,
		Page:     resp.Page,
		Limit:    resp.Limit,
		Total:    resp.Total,
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, actorID, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req transitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actorID, req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "transition_order", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(req.Status).Inc()

	return ctx.NoContent(http.StatusNoContent)
}

// AddMessage handles POST /api/v1/orders/:id/messages.
func (s *Server) AddMessage(ctx echo.Context) error {
	orderID, actorID, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req addMessageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	attachments := make([]commands.AttachmentInput, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, commands.AttachmentInput{
			Filename: a.Filename,
			URL:      a.URL,
			FileSize: a.FileSize,
		})
	}

	cmd, err := commands.NewAddMessageCommand(orderID, actorID, req.Text, attachments)
	if err != nil {
		return badRequest(ctx, "Invalid message data: "+err.Error())
	}

	if err := s.addMessageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "add_message", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RequestRevision handles POST /api/v1/orders/:id/revisions.
func (s *Server) RequestRevision(ctx echo.Context) error {
	orderID, _, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req requestRevisionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRequestRevisionCommand(orderID, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid revision data: "+err.Error())
	}

	if err := s.requestRevisionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "request_revision", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// FulfillRevision handles POST /api/v1/orders/:id/revisions/fulfill.
func (s *Server) FulfillRevision(ctx echo.Context) error {
	orderID, _, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewFulfillRevisionCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.fulfillRevisionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "fulfill_revision", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddDeliverable handles POST /api/v1/orders/:id/deliverables.
func (s *Server) AddDeliverable(ctx echo.Context) error {
	orderID, _, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req addDeliverableRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAddDeliverableCommand(orderID, req.Kind, req.Content)
	if err != nil {
		return badRequest(ctx, "Invalid deliverable data: "+err.Error())
	}

	if err := s.addDeliverableHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "add_deliverable", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// OpenDispute handles POST /api/v1/orders/:id/disputes.
func (s *Server) OpenDispute(ctx echo.Context) error {
	orderID, actorID, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req openDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewOpenDisputeCommand(orderID, actorID, req.Reason, req.Description)
	if err != nil {
		return badRequest(ctx, "Invalid dispute data: "+err.Error())
	}

	if err := s.openDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "open_dispute", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// ResolveDispute handles POST /api/v1/orders/:id/disputes/resolve.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	orderID, actorID, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req resolveDisputeRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResolveDisputeCommand(orderID, actorID, req.Resolution)
	if err != nil {
		return badRequest(ctx, "Invalid resolution data: "+err.Error())
	}

	if err := s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "resolve_dispute", err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LeaveReview handles POST /api/v1/orders/:id/review. Only the buyer may
// review, which the use case enforces.
func (s *Server) LeaveReview(ctx echo.Context) error {
	orderID, actorID, ok := s.orderAndActor(ctx)
	if !ok {
		return nil
	}

	var req leaveReviewRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLeaveReviewCommand(orderID, actorID, req.Rating, req.Comment)
	if err != nil {
		return badRequest(ctx, "Invalid review data: "+err.Error())
	}

	if err := s.leaveReviewHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, "leave_review", err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// PaymentWebhook handles POST /api/v1/payments/webhook. The payment
// processor reports charge outcomes and refunds here.
func (s *Server) PaymentWebhook(ctx echo.Context) error {
	var req paymentWebhookRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	switch req.Event {
	case string(commands.PaymentOutcomePaid), string(commands.PaymentOutcomeFailed):
		cmd, cmdErr := commands.NewRecordPaymentCommand(orderID, req.Event, req.TransactionID)
		if cmdErr != nil {
			return badRequest(ctx, "Invalid payment data: "+cmdErr.Error())
		}

		if handleErr := s.recordPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.fail(ctx, "record_payment", handleErr)
		}
	case "refunded":
		cmd, cmdErr := commands.NewRefundPaymentCommand(orderID, req.Amount)
		if cmdErr != nil {
			return badRequest(ctx, "Invalid refund data: "+cmdErr.Error())
		}

		if handleErr := s.refundPaymentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
			return s.fail(ctx, "refund_payment", handleErr)
		}
	default:
		return badRequest(ctx, "Unknown payment event: "+req.Event)
	}

	return ctx.NoContent(http.StatusOK)
}

// orderAndActor extracts the order id from the path and the acting user from
// the token. On failure the error response has already been written.
func (s *Server) orderAndActor(ctx echo.Context) (kernel.UUID, kernel.UUID, bool) {
	actorID, ok := actorFromContext(ctx)
	if !ok {
		_ = ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Authentication required",
		})
		return kernel.UUID{}, kernel.UUID{}, false
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		_ = badRequest(ctx, "Invalid order id: "+err.Error())
		return kernel.UUID{}, kernel.UUID{}, false
	}

	return orderID, actorID, true
}

func (s *Server) fail(ctx echo.Context, operation string, err error) error {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	status, body := errorResponse(err)

	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func intQueryParam(ctx echo.Context, name string) int {
	value := ctx.QueryParam(name)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}

	return parsed
}
