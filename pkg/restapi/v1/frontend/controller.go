/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package frontend exposes the two presentation phases over REST.
package frontend

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifier-frontend/internal/logfields"
	initiateerr "github.com/trustbloc/verifier-frontend/pkg/resterr/initiate"
	retrieveerr "github.com/trustbloc/verifier-frontend/pkg/resterr/retrieve"
	"github.com/trustbloc/verifier-frontend/pkg/service/frontend"
	"github.com/trustbloc/verifier-frontend/pkg/session"
)

var logger = log.New("frontend-controller")

const (
	sessionCookieName      = "vf_session"
	responseCodeQueryParam = "response_code"
)

type serviceInterface interface {
	InitiateTransaction(
		ctx context.Context,
		sessionID session.ID,
		data *frontend.InitiateTransactionData,
	) (*frontend.InitiateTransactionResult, error)
	RetrieveWalletResponse(
		ctx context.Context,
		sessionID session.ID,
		responseCode string,
	) (*frontend.VerificationResult, error)
}

// Config holds the configuration for the frontend controller.
type Config struct {
	Service      serviceInterface
	CookieSecure bool
}

// Controller handles the frontend REST endpoints.
type Controller struct {
	service      serviceInterface
	cookieSecure bool
}

// NewController creates the frontend controller.
func NewController(config *Config) *Controller {
	return &Controller{
		service:      config.Service,
		cookieSecure: config.CookieSecure,
	}
}

// RegisterRoutes attaches the frontend endpoints to the given group.
func (c *Controller) RegisterRoutes(g *echo.Group) {
	g.POST("/transactions", c.InitiateTransaction)
	g.GET("/wallet-response", c.RetrieveWalletResponse)
}

// InitiateTransaction starts a presentation transaction and returns the
// wallet redirect URI. POST /v1/frontend/transactions.
func (c *Controller) InitiateTransaction(e echo.Context) error {
	ctx := e.Request().Context()

	sessionID := c.ensureSessionCookie(e)
	userAgent := e.Request().UserAgent()

	result, err := c.service.InitiateTransaction(ctx, sessionID, &frontend.InitiateTransactionData{
		UserAgent: userAgent,
	})
	if err != nil {
		return c.sendError(e, err)
	}

	return e.JSON(http.StatusOK, result)
}

// RetrieveWalletResponse fetches and verifies the wallet response for the
// caller's transaction. GET /v1/frontend/wallet-response?response_code=...
func (c *Controller) RetrieveWalletResponse(e echo.Context) error {
	ctx := e.Request().Context()

	sessionID, ok := c.sessionID(e)
	if !ok {
		return c.sendError(e, retrieveerr.NewMissingPresentationIDError(
			errors.New("session cookie is missing")))
	}

	responseCode := e.QueryParam(responseCodeQueryParam)

	result, err := c.service.RetrieveWalletResponse(ctx, sessionID, responseCode)
	if err != nil {
		return c.sendError(e, err)
	}

	return e.JSON(http.StatusOK, result)
}

func (c *Controller) sessionID(e echo.Context) (session.ID, bool) {
	cookie, err := e.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return session.ID(cookie.Value), true
}

// ensureSessionCookie returns the caller's session ID, minting one and
// setting the cookie when the request carries none.
func (c *Controller) ensureSessionCookie(e echo.Context) session.ID {
	if id, ok := c.sessionID(e); ok {
		return id
	}

	id := uuid.NewString()

	e.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	return session.ID(id)
}

func (c *Controller) sendError(e echo.Context, err error) error {
	ctx := e.Request().Context()

	var initiateFailure *initiateerr.Error

	if errors.As(err, &initiateFailure) {
		logger.Warnc(ctx, "initiate transaction failed", log.WithError(err))

		return e.JSON(statusOrBadGateway(initiateFailure.HTTPStatus), initiateFailure)
	}

	var retrieveFailure *retrieveerr.Error

	if errors.As(err, &retrieveFailure) {
		logger.Warnc(ctx, "retrieve wallet response failed", log.WithError(err),
			logfields.WithResponseCode(e.QueryParam(responseCodeQueryParam)))

		return e.JSON(statusOrBadGateway(retrieveFailure.HTTPStatus), retrieveFailure)
	}

	logger.Errorc(ctx, "unclassified failure", log.WithError(err))

	return e.JSON(http.StatusInternalServerError, map[string]string{
		"error": "internal_error",
	})
}

func statusOrBadGateway(status int) int {
	if status == 0 {
		return http.StatusBadGateway
	}

	return status
}
