package http

import (
	"errors"
	"strconv"

	"github.com/GityImran/ideation-lab/internal/domain"
	"github.com/GityImran/ideation-lab/internal/ports/input"
	"github.com/GityImran/ideation-lab/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	srv       input.SessionService
	validator validator.Validator
}

// New func - Creates new HTTP handler
func New(srv input.SessionService) *HTTPHandler {
	return &HTTPHandler{
		srv:       srv,
		validator: validator.New(),
	}
}

// errorResponse maps service errors onto the response envelope
func errorResponse(c *fiber.Ctx, err error) error {
	var status Status
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status = NotFound
	case errors.Is(err, domain.ErrSessionInactive):
		status = Gone
	case errors.Is(err, domain.ErrContentKindMismatch):
		status = KindMismatch
	case errors.Is(err, domain.ErrMissingSessionID),
		errors.Is(err, domain.ErrInvalidContentKind),
		errors.Is(err, domain.ErrInvalidRequest):
		status = BadRequest
	default:
		logrus.Errorln(err)
		status = InternalServerError
	}
	return c.Status(status.Code).JSON(ResponseBody{Status: status})
}

func (hdl *HTTPHandler) badRequest(c *fiber.Ctx, err error) error {
	msg := ResponseBody{
		Status: BadRequest,
	}
	msg.Status.Message = []string{
		err.Error(),
	}
	return c.Status(fiber.StatusBadRequest).JSON(msg)
}

// HealthCheck func
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.srv.HealthCheck(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// CreateSession func
/* create session */
// CreateSession godoc
// @Summary Create session
// @Description Mint a shareable flashcards or quiz session and return its student link
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=CreateSessionResponse}
// @Failure 400 {object} ResponseBody
// @Router /v1/api/qr	[post]
// @Produce json
// @param CreateSession body CreateSessionRequest true "CreateSession"
func (hdl *HTTPHandler) CreateSession(c *fiber.Ctx) error {
	var request CreateSessionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}
	// Convert HTTP request to domain request
	domainReq := domain.CreateSessionRequest{
		SessionID:           request.SessionID,
		ContentKind:         domain.ContentKind(request.ContentKind),
		Payload:             request.Payload,
		SourceDeckName:      request.SourceDeckName,
		SourceDeckSessionID: request.SourceDeckSessionID,
		IfAbsent:            request.IfAbsent,
	}
	response, err := hdl.srv.CreateSession(c.UserContext(), domainReq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: CreateSessionResponse{
		AccessURL:   response.AccessURL,
		Session:     newSessionResponse(response.Session),
		Overwritten: response.Overwritten,
		Existing:    response.Existing,
	}})
}

// GetAccessLink func
/* derive access link */
// GetAccessLink godoc
// @Summary Get access link
// @Description Derive the student link for a session id and content kind
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=AccessLinkResponse}
// @Failure 400 {object} ResponseBody
// @Router /v1/api/qr	[get]
// @Produce json
// @param sessionId query string true "session id"
// @param contentKind query string true "flashcards or quiz"
func (hdl *HTTPHandler) GetAccessLink(c *fiber.Ctx) error {
	var request SessionLinkRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}
	link, err := hdl.srv.AccessLink(request.SessionID, domain.ContentKind(request.ContentKind))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: AccessLinkResponse{
		SessionID:   request.SessionID,
		ContentKind: request.ContentKind,
		AccessURL:   link,
	}})
}

// JoinSession func
/* join session */
// JoinSession godoc
// @Summary Join session
// @Description Register a new participant and return the session content
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=JoinSessionResponse}
// @Failure 400 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Failure 410 {object} ResponseBody
// @Router /v1/api/session	[get]
// @Produce json
// @param sessionId query string true "session id"
// @param contentKind query string true "flashcards or quiz"
func (hdl *HTTPHandler) JoinSession(c *fiber.Ctx) error {
	var request SessionLinkRequest
	if err := c.QueryParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		return hdl.badRequest(c, err)
	}
	result, err := hdl.srv.JoinSession(c.UserContext(), request.SessionID, domain.ContentKind(request.ContentKind))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: JoinSessionResponse{
		SessionID:        result.SessionID,
		ContentKind:      string(result.ContentKind),
		Payload:          result.Payload,
		ParticipantID:    result.ParticipantID,
		ParticipantCount: result.ParticipantCount,
	}})
}

func (hdl *HTTPHandler) parseQuery(c *fiber.Ctx) (domain.QuerySessionsRequest, error) {
	var condition QuerySessionsRequest
	if err := c.QueryParser(&condition); err != nil {
		return domain.QuerySessionsRequest{}, err
	}
	if err := hdl.validator.ValidateStruct(condition); err != nil {
		return domain.QuerySessionsRequest{}, err
	}
	// Convert HTTP query request to domain query request
	var query domain.QuerySessionsRequest
	if condition.Active != nil {
		query.ActiveOnly = *condition.Active
	}
	if condition.Search != nil {
		query.Search = *condition.Search
	}
	return query, nil
}

// ListSessions func
/* list sessions */
// ListSessions godoc
// @Summary List sessions
// @Description List sessions for the dashboard, oldest first
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=[]SessionResponse}
// @Router /v1/api/sessions	[get]
// @Produce json
// @param active query bool false "only active sessions"
// @param q query string false "search by session id, content kind or deck name"
func (hdl *HTTPHandler) ListSessions(c *fiber.Ctx) error {
	query, err := hdl.parseQuery(c)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	sessions, err := hdl.srv.ListSessions(c.UserContext(), query)
	if err != nil {
		return errorResponse(c, err)
	}
	total := int64(len(sessions))
	return c.Status(fiber.StatusOK).JSON(ResponseBody{
		Status:    Success,
		Data:      newSessionListResponse(sessions),
		TotalItem: &total,
	})
}

// GroupSessions func
/* group sessions by deck */
// GroupSessions godoc
// @Summary Group sessions
// @Description List sessions grouped by the slide deck they were generated from
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=[]DeckGroupResponse}
// @Router /v1/api/session-groups	[get]
// @Produce json
// @param active query bool false "only active sessions"
// @param q query string false "search by session id, content kind or deck name"
func (hdl *HTTPHandler) GroupSessions(c *fiber.Ctx) error {
	query, err := hdl.parseQuery(c)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	groups, err := hdl.srv.GroupSessionsByDeck(c.UserContext(), query)
	if err != nil {
		return errorResponse(c, err)
	}
	data := make([]DeckGroupResponse, 0, len(groups))
	for _, group := range groups {
		data = append(data, DeckGroupResponse{
			SourceDeckSessionID: group.SourceDeckSessionID,
			SourceDeckName:      group.SourceDeckName,
			ActiveCount:         group.ActiveCount,
			Sessions:            newSessionListResponse(group.Sessions),
		})
	}
	total := int64(len(data))
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: data, TotalItem: &total})
}

// GetSession func
/* get session */
// GetSession godoc
// @Summary Get session
// @Description Get one session with its content and roster
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=SessionResponse}
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{sessionId}	[get]
// @Produce json
// @param sessionId path string true "session id"
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	detail, err := hdl.srv.GetSession(c.UserContext(), c.Params("sessionId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: newSessionDetailResponse(*detail)})
}

// ListParticipants func
/* list participants */
// ListParticipants godoc
// @Summary List participants
// @Description Roster of a session in join order, empty for unknown ids
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody{data=ParticipantsResponse}
// @Router /v1/api/sessions/{sessionId}/participants	[get]
// @Produce json
// @param sessionId path string true "session id"
func (hdl *HTTPHandler) ListParticipants(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	participants, err := hdl.srv.ListParticipants(c.UserContext(), sessionID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ParticipantsResponse{
		SessionID:        sessionID,
		Participants:     participants,
		ParticipantCount: len(participants),
	}})
}

// ReactivateSession func
/* reactivate session */
// ReactivateSession godoc
// @Summary Reactivate session
// @Description Re-open a deactivated session
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{sessionId}	[post]
// @Produce json
// @param sessionId path string true "session id"
func (hdl *HTTPHandler) ReactivateSession(c *fiber.Ctx) error {
	if err := hdl.srv.ReactivateSession(c.UserContext(), c.Params("sessionId")); err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// DeactivateSession func
/* deactivate or delete session */
// DeactivateSession godoc
// @Summary Deactivate session
// @Description Close a session, or remove it for good with permanent=true
// @Tags SESSION
// @Accept application/json
// @Success 200 {object} ResponseBody
// @Failure 404 {object} ResponseBody
// @Router /v1/api/sessions/{sessionId}	[delete]
// @Produce json
// @param sessionId path string true "session id"
// @param permanent query bool false "delete instead of deactivate"
func (hdl *HTTPHandler) DeactivateSession(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	permanent := false
	if raw := c.Query("permanent"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return hdl.badRequest(c, err)
		}
		permanent = parsed
	}

	var err error
	if permanent {
		err = hdl.srv.DeleteSession(c.UserContext(), sessionID)
	} else {
		err = hdl.srv.DeactivateSession(c.UserContext(), sessionID)
	}
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// RegisterRoutes mounts every session endpoint on app
func (hdl *HTTPHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", hdl.HealthCheck)

	magnolia := app.Group("/v1/api")
	{
		magnolia.Post("/qr", hdl.CreateSession)
		magnolia.Get("/qr", hdl.GetAccessLink)
		magnolia.Get("/session", hdl.JoinSession)

		magnolia.Get("/session-groups", hdl.GroupSessions)
		magnolia.Get("/sessions", hdl.ListSessions)
		magnolia.Get("/sessions/:sessionId", hdl.GetSession)
		magnolia.Get("/sessions/:sessionId/participants", hdl.ListParticipants)
		magnolia.Post("/sessions/:sessionId", hdl.ReactivateSession)
		magnolia.Delete("/sessions/:sessionId", hdl.DeactivateSession)
	}
}
