/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/verifier-frontend/cmd/common"
	"github.com/trustbloc/verifier-frontend/internal/logfields"
	"github.com/trustbloc/verifier-frontend/pkg/dataprotect"
	"github.com/trustbloc/verifier-frontend/pkg/doc/jarm"
	"github.com/trustbloc/verifier-frontend/pkg/mdocclient"
	"github.com/trustbloc/verifier-frontend/pkg/observability/metrics"
	"github.com/trustbloc/verifier-frontend/pkg/observability/metrics/noop"
	prommetrics "github.com/trustbloc/verifier-frontend/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/verifier-frontend/pkg/presentationdef"
	"github.com/trustbloc/verifier-frontend/pkg/restapi/v1/frontend"
	"github.com/trustbloc/verifier-frontend/pkg/restapiclient"
	frontendsvc "github.com/trustbloc/verifier-frontend/pkg/service/frontend"
	"github.com/trustbloc/verifier-frontend/pkg/session"
	"github.com/trustbloc/verifier-frontend/pkg/storage/mongodb"
	mongosessionstore "github.com/trustbloc/verifier-frontend/pkg/storage/mongodb/frontendsessionstore"
	"github.com/trustbloc/verifier-frontend/pkg/storage/redis"
	redissessionstore "github.com/trustbloc/verifier-frontend/pkg/storage/redis/frontendsessionstore"
	"github.com/trustbloc/verifier-frontend/pkg/useragent"
)

var logger = log.New("frontend-rest")

const (
	apiBasePath = "/v1/frontend"

	httpClientTimeout = 30 * time.Second

	storeConnectMaxRetries = 10

	dataProtectChunkSize = 4096
	dataProtectRoutines  = 4

	metricsProviderPrometheus = "prometheus"
)

// GetStartCmd returns the Cobra start command.
func GetStartCmd() *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start frontend-rest",
		Long:  "Start the verifier frontend REST server",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return err
			}

			return startService(params)
		},
	}

	createFlags(startCmd)

	return startCmd
}

func startService(params *startupParameters) error { //nolint:funlen
	if params.logLevel != "" {
		common.SetDefaultLogLevel(logger, params.logLevel)
	}

	store, err := createSessionStore(params)
	if err != nil {
		return err
	}

	aesCrypto, err := dataprotect.NewAES(params.dataProtectKey)
	if err != nil {
		return fmt.Errorf("create data protect cipher: %w", err)
	}

	sessionManager := session.NewManager(store,
		dataprotect.NewDataProtector(aesCrypto, dataProtectChunkSize, dataProtectRoutines))

	definition, err := os.ReadFile(params.presentationDefinitionFile)
	if err != nil {
		return fmt.Errorf("read presentation definition: %w", err)
	}

	pdProvider, err := presentationdef.NewProvider(definition)
	if err != nil {
		return fmt.Errorf("create presentation definition provider: %w", err)
	}

	httpClient := &http.Client{Timeout: httpClientTimeout}

	serviceMetrics, err := createMetrics(params)
	if err != nil {
		return err
	}

	svc := frontendsvc.NewService(&frontendsvc.Config{
		BackendClient:                  restapiclient.NewClient(params.backendURL, params.backendAPIPath, httpClient),
		SessionManager:                 sessionManager,
		PresentationDefinitionProvider: pdProvider,
		MobileClassifier:               useragent.NewClassifier(),
		JarmVerifier:                   jarm.NewVerifier(),
		MdocVerifier:                   mdocclient.NewClient(params.mdocVerifierURL, httpClient),
		JarmOption:                     params.jarmOption,
		PresentationType:               params.presentationType,
		ResponseMode:                   params.responseMode,
		JarMode:                        params.jarMode,
		PresentationDefinitionMode:     params.presentationDefinitionMode,
		PublicBaseURL:                  params.publicBaseURL,
		WalletResponseRedirectPath:     params.walletResponseRedirectPath,
		ResponseCodePlaceholder:        params.responseCodePlaceholder,
		WalletURL:                      params.walletURL,
		Metrics:                        serviceMetrics,
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())

	frontend.NewController(&frontend.Config{
		Service:      svc,
		CookieSecure: params.cookieSecure,
	}).RegisterRoutes(e.Group(apiBasePath))

	logger.Info("Starting frontend-rest server", logfields.WithHostURL(params.hostURL))

	return e.Start(params.hostURL)
}

func createSessionStore(params *startupParameters) (session.Store, error) {
	logger.Info("Connecting to session store", logfields.WithStorageType(params.sessionStoreType))

	var store session.Store

	connect := func() error {
		var err error

		switch params.sessionStoreType {
		case storeTypeRedis:
			var redisClient *redis.Client

			redisClient, err = redis.New(strings.Split(params.redisURL, ","),
				redis.WithMasterName(params.redisMasterName),
				redis.WithPassword(params.redisPassword))
			if err == nil {
				store = redissessionstore.New(redisClient, params.sessionTTLSec)
			}
		case storeTypeMongoDB:
			var mongoClient *mongodb.Client

			mongoClient, err = mongodb.New(params.mongoDBURL, params.mongoDBName)
			if err == nil {
				store, err = mongosessionstore.New(mongoClient, params.sessionTTLSec)
			}
		default:
			return backoff.Permanent(fmt.Errorf("unsupported session store type %q", params.sessionStoreType))
		}

		return err
	}

	err := backoff.Retry(connect,
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), storeConnectMaxRetries))
	if err != nil {
		return nil, fmt.Errorf("connect to session store: %w", err)
	}

	return store, nil
}

func createMetrics(params *startupParameters) (metrics.Metrics, error) {
	if params.metricsProviderName != metricsProviderPrometheus {
		return noop.GetMetrics(), nil
	}

	var metricsServer *http.Server

	if params.promHTTPURL != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		metricsServer = &http.Server{
			Addr:              params.promHTTPURL,
			Handler:           mux,
			ReadHeaderTimeout: httpClientTimeout,
		}
	}

	provider := prommetrics.NewPrometheusProvider(metricsServer)

	go func() {
		if err := provider.Create(); err != nil {
			logger.Error("metrics provider failed", log.WithError(err))
		}
	}()

	return provider.Metrics(), nil
}
