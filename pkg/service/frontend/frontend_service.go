/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package frontend orchestrates the verifier side of the two-phase OID4VP
// presentation flow: initiating a presentation request toward a wallet and
// retrieving and validating the wallet's protected response.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifier-frontend/internal/logfields"
	"github.com/trustbloc/verifier-frontend/pkg/doc/jarm"
	"github.com/trustbloc/verifier-frontend/pkg/kms/key"
	noopMetricsProvider "github.com/trustbloc/verifier-frontend/pkg/observability/metrics/noop"
	"github.com/trustbloc/verifier-frontend/pkg/restapiclient"
	"github.com/trustbloc/verifier-frontend/pkg/resterr"
	initiateerr "github.com/trustbloc/verifier-frontend/pkg/resterr/initiate"
	retrieveerr "github.com/trustbloc/verifier-frontend/pkg/resterr/retrieve"
	"github.com/trustbloc/verifier-frontend/pkg/session"
)

var logger = log.New("frontend-service")

const (
	clientIDQueryParam   = "client_id"
	requestQueryParam    = "request"
	requestURIQueryParam = "request_uri"

	responseCodeQueryTemplate = "?response_code="
)

type metricsProvider interface {
	InitiateTransactionTime(value time.Duration)
	RetrieveWalletResponseTime(value time.Duration)
}

// Config holds the collaborators and settings of the frontend service.
type Config struct {
	BackendClient                  backendClient
	SessionManager                 sessionManager
	NonceGenerator                 nonceGenerator
	KeyCreator                     keyCreator
	PresentationDefinitionProvider presentationDefinitionProvider
	MobileClassifier               mobileClassifier
	JarmVerifier                   jarmVerifier
	MdocVerifier                   mdocVerifier

	// JarmOption tells the JARM verifier which protection mode to expect.
	JarmOption *jarm.Option

	// PresentationType is the backend transaction type, e.g. "vp_token".
	PresentationType           string
	ResponseMode               string
	JarMode                    string
	PresentationDefinitionMode string

	// PublicBaseURL is this frontend's externally reachable base URL.
	PublicBaseURL string

	// WalletResponseRedirectPath is the frontend path the wallet redirects
	// back to on mobile, combined with the response-code placeholder.
	WalletResponseRedirectPath string

	// ResponseCodePlaceholder is substituted by the wallet when it follows
	// the redirect template, e.g. "{RESPONSE_CODE}".
	ResponseCodePlaceholder string

	// WalletURL is the wallet authorization endpoint the end user is
	// redirected to, e.g. "eudi-openid4vp://authorize".
	WalletURL string

	Metrics metricsProvider
}

// Service runs the two frontend phases against one session store.
type Service struct {
	backendClient                  backendClient
	sessionManager                 sessionManager
	nonceGenerator                 nonceGenerator
	keyCreator                     keyCreator
	presentationDefinitionProvider presentationDefinitionProvider
	mobileClassifier               mobileClassifier
	jarmVerifier                   jarmVerifier
	mdocVerifier                   mdocVerifier

	jarmOption *jarm.Option

	presentationType           string
	responseMode               string
	jarMode                    string
	presentationDefinitionMode string

	publicBaseURL              string
	walletResponseRedirectPath string
	responseCodePlaceholder    string
	walletURL                  string

	metrics metricsProvider
}

// NewService creates the frontend service.
func NewService(cfg *Config) *Service {
	metrics := cfg.Metrics

	if metrics == nil {
		metrics = &noopMetricsProvider.NoMetrics{}
	}

	nonceGen := cfg.NonceGenerator

	if nonceGen == nil {
		nonceGen = NewNonceGenerator()
	}

	keyCreator := cfg.KeyCreator

	if keyCreator == nil {
		keyCreator = key.NewCreator()
	}

	return &Service{
		backendClient:                  cfg.BackendClient,
		sessionManager:                 cfg.SessionManager,
		nonceGenerator:                 nonceGen,
		keyCreator:                     keyCreator,
		presentationDefinitionProvider: cfg.PresentationDefinitionProvider,
		mobileClassifier:               cfg.MobileClassifier,
		jarmVerifier:                   cfg.JarmVerifier,
		mdocVerifier:                   cfg.MdocVerifier,
		jarmOption:                     cfg.JarmOption,
		presentationType:               cfg.PresentationType,
		responseMode:                   cfg.ResponseMode,
		jarMode:                        cfg.JarMode,
		presentationDefinitionMode:     cfg.PresentationDefinitionMode,
		publicBaseURL:                  cfg.PublicBaseURL,
		walletResponseRedirectPath:     cfg.WalletResponseRedirectPath,
		responseCodePlaceholder:        cfg.ResponseCodePlaceholder,
		walletURL:                      cfg.WalletURL,
		metrics:                        metrics,
	}
}

// InitiateTransaction runs phase 1: it builds and sends the presentation
// initiation request, persists the transaction state and derives the
// wallet redirect URI. Exactly one outbound call, one session write, no
// internal retry.
func (s *Service) InitiateTransaction(
	ctx context.Context,
	sessionID session.ID,
	data *InitiateTransactionData,
) (*InitiateTransactionResult, error) {
	logger.Debugc(ctx, "InitiateTransaction begin", logfields.WithSessionID(string(sessionID)))
	startTime := time.Now()

	defer func() {
		s.metrics.InitiateTransactionTime(time.Since(startTime))
	}()

	if data == nil || data.UserAgent == "" {
		return nil, initiateerr.NewMissingUserAgentError(errors.New("user-agent header is missing")).
			WithComponent(resterr.TransactionInitiatorComponent)
	}

	isMobile := s.mobileClassifier.IsMobile(data.UserAgent)

	logger.Debugc(ctx, "InitiateTransaction device classified",
		logfields.WithUserAgent(data.UserAgent), logfields.WithIsMobile(isMobile))

	nonce, err := s.generateNonce()
	if err != nil {
		return nil, initiateerr.Classify(err).WithComponent(resterr.TransactionInitiatorComponent)
	}

	privateKey, err := s.keyCreator.CreateECDHKey(ctx)
	if err != nil {
		return nil, initiateerr.Classify(fmt.Errorf("create ephemeral ecdh key: %w", err)).
			WithComponent(resterr.TransactionInitiatorComponent)
	}

	req, err := s.buildInitTransactionRequest(nonce, privateKey, isMobile)
	if err != nil {
		return nil, initiateerr.Classify(err).WithComponent(resterr.TransactionInitiatorComponent)
	}

	resp, err := s.backendClient.InitTransaction(ctx, req)
	if err != nil {
		if errors.Is(err, restapiclient.ErrInvalidResponse) {
			return nil, initiateerr.NewInvalidResponseError(err).WithComponent(resterr.BackendClientComponent)
		}

		return nil, initiateerr.NewAPIRequestFailedError(fmt.Errorf("init transaction: %w", err)).
			WithComponent(resterr.BackendClientComponent)
	}

	if resp.PresentationID == "" {
		return nil, initiateerr.NewInvalidResponseError(errors.New("backend response has no presentation_id")).
			WithComponent(resterr.BackendClientComponent)
	}

	logger.Debugc(ctx, "InitiateTransaction backend transaction created",
		logfields.WithPresentationID(resp.PresentationID))

	if err = s.sessionManager.Create(ctx, sessionID, resp.PresentationID, nonce, privateKey); err != nil {
		return nil, initiateerr.NewSessionError(fmt.Errorf("persist transaction state: %w", err)).
			WithComponent(resterr.SessionManagerComponent)
	}

	walletRedirectURI, err := s.buildWalletRedirectURI(resp)
	if err != nil {
		return nil, initiateerr.NewInvalidResponseError(err).WithComponent(resterr.TransactionInitiatorComponent)
	}

	logger.Debugc(ctx, "InitiateTransaction succeed",
		logfields.WithWalletRedirectURI(walletRedirectURI))

	return &InitiateTransactionResult{
		WalletRedirectURI: walletRedirectURI,
		IsMobile:          isMobile,
	}, nil
}

// RetrieveWalletResponse runs phase 2: it loads the transaction state,
// fetches the protected wallet response, verifies it and forwards the
// vp_token to the credential verifier. On success the session record is
// evicted; the ephemeral key is single-use.
func (s *Service) RetrieveWalletResponse(
	ctx context.Context,
	sessionID session.ID,
	responseCode string,
) (*VerificationResult, error) {
	logger.Debugc(ctx, "RetrieveWalletResponse begin", logfields.WithSessionID(string(sessionID)))
	startTime := time.Now()

	defer func() {
		s.metrics.RetrieveWalletResponseTime(time.Since(startTime))
	}()

	presentationID, err := s.sessionManager.PresentationID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrDataNotFound) {
			return nil, retrieveerr.NewMissingPresentationIDError(errors.New("no presentation id in session")).
				WithComponent(resterr.SessionManagerComponent)
		}

		return nil, retrieveerr.NewSessionError(fmt.Errorf("load presentation id: %w", err)).
			WithComponent(resterr.SessionManagerComponent)
	}

	walletResp, err := s.backendClient.GetWalletResponse(ctx, &restapiclient.GetWalletResponseRequest{
		PresentationID: presentationID,
		ResponseCode:   responseCode,
	})
	if err != nil {
		if errors.Is(err, restapiclient.ErrInvalidResponse) {
			return nil, retrieveerr.NewInvalidResponseError(err).WithComponent(resterr.BackendClientComponent)
		}

		return nil, retrieveerr.NewAPIRequestFailedError(fmt.Errorf("get wallet response: %w", err)).
			WithComponent(resterr.BackendClientComponent)
	}

	if walletResp.Response == "" {
		return nil, retrieveerr.NewInvalidResponseError(errors.New("wallet response envelope has no protected payload")).
			WithComponent(resterr.BackendClientComponent)
	}

	logger.Debugc(ctx, "RetrieveWalletResponse wallet response fetched",
		logfields.WithPresentationID(presentationID))

	privateKey, err := s.sessionManager.EphemeralPrivateKey(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrDataNotFound) {
			return nil, retrieveerr.NewMissingEphemeralECDHPrivateJWKError(
				errors.New("no ephemeral ecdh private jwk in session")).
				WithComponent(resterr.SessionManagerComponent)
		}

		return nil, retrieveerr.NewSessionError(fmt.Errorf("load ephemeral private key: %w", err)).
			WithComponent(resterr.SessionManagerComponent)
	}

	authResponse, err := s.jarmVerifier.Verify(s.jarmOption, privateKey, walletResp.Response)
	if err != nil {
		// A failed JARM verification is recorded, then the flow continues to
		// the vp_token check, which decides the terminal outcome.
		logger.Warnc(ctx, "RetrieveWalletResponse jarm verification failed",
			log.WithError(err), logfields.WithJarmOption(s.jarmOption.String()))

		authResponse = &jarm.AuthorizationResponse{}
	}

	if authResponse.Error != "" {
		logger.Infoc(ctx, "RetrieveWalletResponse wallet reported an error",
			logfields.WithPresentationID(presentationID))
	}

	if authResponse.VPToken == "" {
		return nil, retrieveerr.NewMissingVPTokenError(errors.New("authorization response has no vp_token")).
			WithComponent(resterr.ResponseRetrieverComponent)
	}

	mdocResult, err := s.mdocVerifier.VerifyDeviceResponse(ctx, authResponse.VPToken)
	if err != nil {
		return nil, retrieveerr.NewInvalidResponseError(fmt.Errorf("mdoc verification: %w", err)).
			WithComponent(resterr.MdocVerifierComponent)
	}

	if evictErr := s.sessionManager.Evict(ctx, sessionID); evictErr != nil {
		logger.Warnc(ctx, "RetrieveWalletResponse session eviction failed", log.WithError(evictErr))
	}

	logger.Debugc(ctx, "RetrieveWalletResponse succeed",
		logfields.WithDocumentCount(len(mdocResult.Documents)))

	return &VerificationResult{
		Valid:     mdocResult.Valid,
		Documents: mdocResult.Documents,
		VPToken:   authResponse.VPToken,
	}, nil
}

func (s *Service) generateNonce() (string, error) {
	nonce, err := s.nonceGenerator.GenerateNonce()
	if err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	if nonce == "" {
		return "", errors.New("generated nonce is empty")
	}

	return nonce, nil
}

func (s *Service) buildInitTransactionRequest(
	nonce string,
	privateKey *key.Private,
	isMobile bool,
) (*restapiclient.InitTransactionRequest, error) {
	publicJWK, err := privateKey.DerivePublic().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal ephemeral public jwk: %w", err)
	}

	presentationDefinition, err := s.presentationDefinitionProvider.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate presentation definition: %w", err)
	}

	return &restapiclient.InitTransactionRequest{
		Type:                       s.presentationType,
		PresentationDefinition:     presentationDefinition,
		Nonce:                      nonce,
		ResponseMode:               s.responseMode,
		JarMode:                    s.jarMode,
		PresentationDefinitionMode: s.presentationDefinitionMode,
		EphemeralECDHPublicJWK:     publicJWK,
		// Desktop clients are notified through a different channel; the
		// template is only meaningful when the wallet runs on the same device.
		WalletResponseRedirectURITemplate: lo.Ternary(isMobile, s.buildRedirectURITemplate(), ""),
	}, nil
}

func (s *Service) buildRedirectURITemplate() string {
	return strings.TrimSuffix(s.publicBaseURL, "/") +
		s.walletResponseRedirectPath + responseCodeQueryTemplate + s.responseCodePlaceholder
}

func (s *Service) buildWalletRedirectURI(resp *restapiclient.InitTransactionResponse) (string, error) {
	walletURL, err := url.Parse(s.walletURL)
	if err != nil {
		return "", fmt.Errorf("parse wallet url: %w", err)
	}

	if resp.ClientID == "" {
		return "", errors.New("backend response has no client_id")
	}

	if resp.Request == "" && resp.RequestURI == "" {
		return "", errors.New("backend response has neither request nor request_uri")
	}

	query := walletURL.Query()
	query.Set(clientIDQueryParam, resp.ClientID)

	if resp.Request != "" {
		query.Set(requestQueryParam, resp.Request)
	}

	if resp.RequestURI != "" {
		query.Set(requestURIQueryParam, resp.RequestURI)
	}

	walletURL.RawQuery = query.Encode()

	return walletURL.String(), nil
}
