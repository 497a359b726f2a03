package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expenseops/ticketing-system/internal/core/domain"
	"github.com/expenseops/ticketing-system/internal/core/ports"
	"github.com/expenseops/ticketing-system/internal/core/validation"
)

// TicketHandler handles HTTP requests for ticket operations.
type TicketHandler struct {
	service ports.TicketService
}

func NewTicketHandler(service ports.TicketService) *TicketHandler {
	return &TicketHandler{service: service}
}

type createTicketRequest struct {
	Amount      float64 `json:"amount"      validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Type        string  `json:"type"`
}

type updateTicketRequest struct {
	Updates []validation.Update `json:"updateObjects" validate:"required,min=1"`
}

type ticketResponse struct {
	Message string         `json:"message"`
	Ticket  *domain.Ticket `json:"ticket,omitempty"`
}

type ticketListResponse struct {
	Message string          `json:"message"`
	Tickets []domain.Ticket `json:"tickets"`
}

// List handles GET /ticket. An employee sees their own tickets; a manager
// sees tickets filtered by ?status= (default pending, "all" unfiltered).
//
// @Summary      List tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter (managers only)"
// @Success      200     {object}  ticketListResponse
// @Failure      400     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /ticket [get]
func (h *TicketHandler) List(c echo.Context) error {
	callerID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var tickets []domain.Ticket
	switch role {
	case domain.RoleEmployee:
		tickets, err = h.service.ListByOwner(c.Request().Context(), callerID)
	case domain.RoleManager:
		status := c.QueryParam("status")
		if status == "" {
			status = string(domain.StatusPending)
		}
		tickets, err = h.service.ListByStatus(c.Request().Context(), domain.TicketStatus(status))
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "unknown role")
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticketListResponse{Message: "tickets retrieved", Tickets: tickets})
}

// Get handles GET /ticket/:ticket_pkey. A manager may view any ticket; an
// employee only their own.
//
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_pkey  path      string  true  "Ticket key (UUID)"
// @Success      200          {object}  ticketResponse
// @Failure      401          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Router       /ticket/{ticket_pkey} [get]
func (h *TicketHandler) Get(c echo.Context) error {
	callerID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.Get(c.Request().Context(), c.Param("ticket_pkey"))
	if err != nil {
		return err
	}

	if role == domain.RoleEmployee && ticket.Owner != callerID {
		return echo.NewHTTPError(http.StatusUnauthorized, "owner invalid")
	}

	return c.JSON(http.StatusOK, ticketResponse{Message: "ticket retrieved", Ticket: ticket})
}

// Create handles POST /ticket. The owner is always the authenticated
// caller; status and processor are never taken from the body.
//
// @Summary      Create a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTicketRequest  true  "Ticket details"
// @Success      201   {object}  ticketResponse
// @Failure      400   {object}  errorResponse
// @Router       /ticket [post]
func (h *TicketHandler) Create(c echo.Context) error {
	callerID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Create(c.Request().Context(), ports.CreateTicketInput{
		Owner:       callerID,
		Amount:      req.Amount,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ticketResponse{Message: "ticket created", Ticket: ticket})
}

// Update handles PUT /ticket/:ticket_pkey. Only managers may process
// tickets; the route-level gate admits employees for the rest of the
// group, so the role is narrowed here.
//
// @Summary      Process a ticket
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ticket_pkey  path      string               true  "Ticket key (UUID)"
// @Param        body         body      updateTicketRequest  true  "Update instructions"
// @Success      200          {object}  ticketResponse
// @Failure      400          {object}  errorResponse
// @Failure      401          {object}  errorResponse
// @Failure      404          {object}  errorResponse
// @Failure      422          {object}  errorResponse
// @Router       /ticket/{ticket_pkey} [put]
func (h *TicketHandler) Update(c echo.Context) error {
	callerID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if role != domain.RoleManager {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Update(c.Request().Context(), c.Param("ticket_pkey"), callerID, req.Updates)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ticketResponse{Message: "ticket processed", Ticket: ticket})
}

// Delete handles DELETE /ticket/:ticket_pkey — always 405: tickets are
// append-only history.
//
// @Summary      Delete a ticket (unsupported)
// @Tags         tickets
// @Security     BearerAuth
// @Failure      405  {object}  errorResponse
// @Router       /ticket/{ticket_pkey} [delete]
func (h *TicketHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("ticket_pkey")); err != nil {
		return err
	}
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "delete not available")
}
