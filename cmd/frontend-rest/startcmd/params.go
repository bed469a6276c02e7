/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/verifier-frontend/cmd/common"
	"github.com/trustbloc/verifier-frontend/pkg/doc/jarm"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the frontend-rest instance on. Format: HostName:Port."
	hostURLEnvKey        = "VF_REST_HOST_URL"

	backendURLFlagName  = "backend-url"
	backendURLFlagUsage = "Base URL of the backend Presentation API. Format: http://<HOST>:<PORT>. " +
		commonEnvVarUsageText + backendURLEnvKey
	backendURLEnvKey = "VF_REST_BACKEND_URL"

	backendAPIPathFlagName  = "backend-api-path"
	backendAPIPathFlagUsage = "Presentations resource path on the backend (default: /ui/presentations). " +
		commonEnvVarUsageText + backendAPIPathEnvKey
	backendAPIPathEnvKey = "VF_REST_BACKEND_API_PATH"

	mdocVerifierURLFlagName  = "mdoc-verifier-url"
	mdocVerifierURLFlagUsage = "Full URL of the mdoc verification endpoint. " +
		commonEnvVarUsageText + mdocVerifierURLEnvKey
	mdocVerifierURLEnvKey = "VF_REST_MDOC_VERIFIER_URL"

	publicBaseURLFlagName  = "public-base-url"
	publicBaseURLFlagUsage = "This frontend's externally reachable base URL, used in the mobile " +
		"wallet-response redirect template. " + commonEnvVarUsageText + publicBaseURLEnvKey
	publicBaseURLEnvKey = "VF_REST_PUBLIC_BASE_URL"

	walletURLFlagName  = "wallet-url"
	walletURLFlagUsage = "Wallet authorization endpoint the end user is redirected to " +
		"(default: eudi-openid4vp://authorize). " + commonEnvVarUsageText + walletURLEnvKey
	walletURLEnvKey = "VF_REST_WALLET_URL"

	walletResponseRedirectPathFlagName  = "wallet-response-redirect-path"
	walletResponseRedirectPathFlagUsage = "Frontend path the wallet redirects back to on mobile " +
		"(default: /wallet-response). " + commonEnvVarUsageText + walletResponseRedirectPathEnvKey
	walletResponseRedirectPathEnvKey = "VF_REST_WALLET_RESPONSE_REDIRECT_PATH"

	responseCodePlaceholderFlagName  = "response-code-placeholder"
	responseCodePlaceholderFlagUsage = "Placeholder substituted by the wallet in the redirect template " +
		"(default: {RESPONSE_CODE}). " + commonEnvVarUsageText + responseCodePlaceholderEnvKey
	responseCodePlaceholderEnvKey = "VF_REST_RESPONSE_CODE_PLACEHOLDER"

	presentationTypeFlagName  = "presentation-type"
	presentationTypeFlagUsage = "Backend transaction type (default: vp_token). " +
		commonEnvVarUsageText + presentationTypeEnvKey
	presentationTypeEnvKey = "VF_REST_PRESENTATION_TYPE"

	responseModeFlagName  = "response-mode"
	responseModeFlagUsage = "OID4VP response mode requested from the wallet (default: direct_post.jwt). " +
		commonEnvVarUsageText + responseModeEnvKey
	responseModeEnvKey = "VF_REST_RESPONSE_MODE"

	jarModeFlagName  = "jar-mode"
	jarModeFlagUsage = "JAR mode passed to the backend, e.g. by_reference. Optional. " +
		commonEnvVarUsageText + jarModeEnvKey
	jarModeEnvKey = "VF_REST_JAR_MODE"

	presentationDefinitionModeFlagName  = "presentation-definition-mode"
	presentationDefinitionModeFlagUsage = "Presentation-definition mode passed to the backend, " +
		"e.g. by_reference. Optional. " + commonEnvVarUsageText + presentationDefinitionModeEnvKey
	presentationDefinitionModeEnvKey = "VF_REST_PRESENTATION_DEFINITION_MODE"

	presentationDefinitionFileFlagName  = "presentation-definition-file"
	presentationDefinitionFileFlagUsage = "Path to the JSON file with the presentation definition " +
		"requested from wallets. " + commonEnvVarUsageText + presentationDefinitionFileEnvKey
	presentationDefinitionFileEnvKey = "VF_REST_PRESENTATION_DEFINITION_FILE"

	sessionStoreTypeFlagName  = "session-store-type"
	sessionStoreTypeFlagUsage = "Session store backend. Supported options: redis, mongodb. " +
		commonEnvVarUsageText + sessionStoreTypeEnvKey
	sessionStoreTypeEnvKey = "VF_REST_SESSION_STORE_TYPE"

	redisURLFlagName  = "redis-url"
	redisURLFlagUsage = "Comma-separated list of redis addresses. " +
		commonEnvVarUsageText + redisURLEnvKey
	redisURLEnvKey = "VF_REST_REDIS_URL"

	redisMasterNameFlagName  = "redis-master-name"
	redisMasterNameFlagUsage = "Redis sentinel master name. Optional. " +
		commonEnvVarUsageText + redisMasterNameEnvKey
	redisMasterNameEnvKey = "VF_REST_REDIS_MASTER_NAME"

	redisPasswordFlagName  = "redis-password"
	redisPasswordFlagUsage = "Redis password. Optional. " +
		commonEnvVarUsageText + redisPasswordEnvKey
	redisPasswordEnvKey = "VF_REST_REDIS_PASSWORD" //nolint: gosec

	mongoDBURLFlagName  = "mongodb-url"
	mongoDBURLFlagUsage = "MongoDB connection string. Format: mongodb://<HOST>:<PORT>. " +
		commonEnvVarUsageText + mongoDBURLEnvKey
	mongoDBURLEnvKey = "VF_REST_MONGODB_URL"

	mongoDBNameFlagName  = "mongodb-name"
	mongoDBNameFlagUsage = "MongoDB database name (default: frontend). " +
		commonEnvVarUsageText + mongoDBNameEnvKey
	mongoDBNameEnvKey = "VF_REST_MONGODB_NAME"

	sessionTTLFlagName  = "session-ttl"
	sessionTTLFlagUsage = "Session record lifetime in seconds (default: 600). " +
		commonEnvVarUsageText + sessionTTLEnvKey
	sessionTTLEnvKey = "VF_REST_SESSION_TTL"

	dataProtectKeyFlagName  = "data-protect-key"
	dataProtectKeyFlagUsage = "Hex-encoded AES key (16, 24 or 32 bytes) protecting the ephemeral " +
		"private key at rest. " + commonEnvVarUsageText + dataProtectKeyEnvKey
	dataProtectKeyEnvKey = "VF_REST_DATA_PROTECT_KEY" //nolint: gosec

	jarmModeFlagName  = "jarm-mode"
	jarmModeFlagUsage = "Expected JARM protection mode. Supported options: signed, encrypted, " +
		"signed_encrypted (default: encrypted). " + commonEnvVarUsageText + jarmModeEnvKey
	jarmModeEnvKey = "VF_REST_JARM_MODE"

	jarmJWSAlgFlagName  = "jarm-jws-alg"
	jarmJWSAlgFlagUsage = "JWS algorithm for signed JARM modes (default: ES256). " +
		commonEnvVarUsageText + jarmJWSAlgEnvKey
	jarmJWSAlgEnvKey = "VF_REST_JARM_JWS_ALG"

	jarmJWEAlgFlagName  = "jarm-jwe-alg"
	jarmJWEAlgFlagUsage = "JWE key agreement algorithm for encrypted JARM modes (default: ECDH-ES). " +
		commonEnvVarUsageText + jarmJWEAlgEnvKey
	jarmJWEAlgEnvKey = "VF_REST_JARM_JWE_ALG"

	jarmJWEEncFlagName  = "jarm-jwe-enc"
	jarmJWEEncFlagUsage = "JWE content encryption for encrypted JARM modes (default: A128CBC-HS256). " +
		commonEnvVarUsageText + jarmJWEEncEnvKey
	jarmJWEEncEnvKey = "VF_REST_JARM_JWE_ENC"

	metricsProviderFlagName  = "metrics-provider-name"
	metricsProviderFlagUsage = "Metrics provider. Supported options: prometheus. Optional. " +
		commonEnvVarUsageText + metricsProviderEnvKey
	metricsProviderEnvKey = "VF_REST_METRICS_PROVIDER_NAME"

	promHTTPURLFlagName  = "prom-http-url"
	promHTTPURLFlagUsage = "URL to serve the prometheus metrics endpoint on. Format: HostName:Port. " +
		commonEnvVarUsageText + promHTTPURLEnvKey
	promHTTPURLEnvKey = "VF_REST_PROM_HTTP_URL"

	cookieSecureFlagName  = "cookie-secure"
	cookieSecureFlagUsage = "Mark the session cookie Secure. Possible values: true, false " +
		"(default: true). " + commonEnvVarUsageText + cookieSecureEnvKey
	cookieSecureEnvKey = "VF_REST_COOKIE_SECURE"
)

const (
	storeTypeRedis   = "redis"
	storeTypeMongoDB = "mongodb"

	jarmModeSigned          = "signed"
	jarmModeEncrypted       = "encrypted"
	jarmModeSignedEncrypted = "signed_encrypted"

	defaultBackendAPIPath             = "/ui/presentations"
	defaultWalletURL                  = "eudi-openid4vp://authorize"
	defaultWalletResponseRedirectPath = "/wallet-response"
	defaultResponseCodePlaceholder    = "{RESPONSE_CODE}"
	defaultPresentationType           = "vp_token"
	defaultResponseMode               = "direct_post.jwt"
	defaultMongoDBName                = "frontend"
	defaultSessionTTLSec              = 600
	defaultJARMJWSAlg                 = "ES256"
	defaultJARMJWEAlg                 = "ECDH-ES"
	defaultJARMJWEEnc                 = "A128CBC-HS256"
)

type startupParameters struct {
	hostURL string

	backendURL      string
	backendAPIPath  string
	mdocVerifierURL string

	publicBaseURL              string
	walletURL                  string
	walletResponseRedirectPath string
	responseCodePlaceholder    string

	presentationType           string
	responseMode               string
	jarMode                    string
	presentationDefinitionMode string
	presentationDefinitionFile string

	sessionStoreType string
	redisURL         string
	redisMasterName  string
	redisPassword    string
	mongoDBURL       string
	mongoDBName      string
	sessionTTLSec    int32

	dataProtectKey []byte

	jarmOption *jarm.Option

	metricsProviderName string
	promHTTPURL         string

	cookieSecure bool

	logLevel string
}

//nolint:funlen,gocyclo
func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	backendURL, err := cmdutils.GetUserSetVarFromString(cmd, backendURLFlagName, backendURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	mdocVerifierURL, err := cmdutils.GetUserSetVarFromString(cmd,
		mdocVerifierURLFlagName, mdocVerifierURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	publicBaseURL, err := cmdutils.GetUserSetVarFromString(cmd, publicBaseURLFlagName, publicBaseURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	presentationDefinitionFile, err := cmdutils.GetUserSetVarFromString(cmd,
		presentationDefinitionFileFlagName, presentationDefinitionFileEnvKey, false)
	if err != nil {
		return nil, err
	}

	sessionStoreType, err := cmdutils.GetUserSetVarFromString(cmd,
		sessionStoreTypeFlagName, sessionStoreTypeEnvKey, false)
	if err != nil {
		return nil, err
	}

	if sessionStoreType != storeTypeRedis && sessionStoreType != storeTypeMongoDB {
		return nil, fmt.Errorf("unsupported session store type %q", sessionStoreType)
	}

	dataProtectKeyHex, err := cmdutils.GetUserSetVarFromString(cmd,
		dataProtectKeyFlagName, dataProtectKeyEnvKey, false)
	if err != nil {
		return nil, err
	}

	dataProtectKey, err := hex.DecodeString(dataProtectKeyHex)
	if err != nil {
		return nil, fmt.Errorf("decode data protect key: %w", err)
	}

	sessionTTLSec, err := getOptionalInt(cmd, sessionTTLFlagName, sessionTTLEnvKey, defaultSessionTTLSec)
	if err != nil {
		return nil, err
	}

	cookieSecure, err := getOptionalBool(cmd, cookieSecureFlagName, cookieSecureEnvKey, true)
	if err != nil {
		return nil, err
	}

	jarmOption, err := getJarmOption(cmd)
	if err != nil {
		return nil, err
	}

	return &startupParameters{
		hostURL:         hostURL,
		backendURL:      backendURL,
		backendAPIPath:  getOptionalString(cmd, backendAPIPathFlagName, backendAPIPathEnvKey, defaultBackendAPIPath),
		mdocVerifierURL: mdocVerifierURL,
		publicBaseURL:   publicBaseURL,
		walletURL:       getOptionalString(cmd, walletURLFlagName, walletURLEnvKey, defaultWalletURL),
		walletResponseRedirectPath: getOptionalString(cmd,
			walletResponseRedirectPathFlagName, walletResponseRedirectPathEnvKey, defaultWalletResponseRedirectPath),
		responseCodePlaceholder: getOptionalString(cmd,
			responseCodePlaceholderFlagName, responseCodePlaceholderEnvKey, defaultResponseCodePlaceholder),
		presentationType: getOptionalString(cmd,
			presentationTypeFlagName, presentationTypeEnvKey, defaultPresentationType),
		responseMode: getOptionalString(cmd, responseModeFlagName, responseModeEnvKey, defaultResponseMode),
		jarMode:      cmdutils.GetUserSetOptionalVarFromString(cmd, jarModeFlagName, jarModeEnvKey),
		presentationDefinitionMode: cmdutils.GetUserSetOptionalVarFromString(cmd,
			presentationDefinitionModeFlagName, presentationDefinitionModeEnvKey),
		presentationDefinitionFile: presentationDefinitionFile,
		sessionStoreType:           sessionStoreType,
		redisURL:                   cmdutils.GetUserSetOptionalVarFromString(cmd, redisURLFlagName, redisURLEnvKey),
		redisMasterName: cmdutils.GetUserSetOptionalVarFromString(cmd,
			redisMasterNameFlagName, redisMasterNameEnvKey),
		redisPassword: cmdutils.GetUserSetOptionalVarFromString(cmd, redisPasswordFlagName, redisPasswordEnvKey),
		mongoDBURL:    cmdutils.GetUserSetOptionalVarFromString(cmd, mongoDBURLFlagName, mongoDBURLEnvKey),
		mongoDBName:   getOptionalString(cmd, mongoDBNameFlagName, mongoDBNameEnvKey, defaultMongoDBName),
		sessionTTLSec: int32(sessionTTLSec),
		dataProtectKey: dataProtectKey,
		jarmOption:     jarmOption,
		metricsProviderName: cmdutils.GetUserSetOptionalVarFromString(cmd,
			metricsProviderFlagName, metricsProviderEnvKey),
		promHTTPURL:  cmdutils.GetUserSetOptionalVarFromString(cmd, promHTTPURLFlagName, promHTTPURLEnvKey),
		cookieSecure: cookieSecure,
		logLevel: cmdutils.GetUserSetOptionalVarFromString(cmd,
			common.LogLevelFlagName, common.LogLevelEnvKey),
	}, nil
}

func getJarmOption(cmd *cobra.Command) (*jarm.Option, error) {
	mode := getOptionalString(cmd, jarmModeFlagName, jarmModeEnvKey, jarmModeEncrypted)
	jwsAlg := getOptionalString(cmd, jarmJWSAlgFlagName, jarmJWSAlgEnvKey, defaultJARMJWSAlg)
	jweAlg := getOptionalString(cmd, jarmJWEAlgFlagName, jarmJWEAlgEnvKey, defaultJARMJWEAlg)
	jweEnc := getOptionalString(cmd, jarmJWEEncFlagName, jarmJWEEncEnvKey, defaultJARMJWEEnc)

	switch mode {
	case jarmModeSigned:
		return jarm.NewSigned(jwsAlg)
	case jarmModeEncrypted:
		return jarm.NewEncrypted(jweAlg, jweEnc)
	case jarmModeSignedEncrypted:
		signed, err := jarm.NewSigned(jwsAlg)
		if err != nil {
			return nil, err
		}

		encrypted, err := jarm.NewEncrypted(jweAlg, jweEnc)
		if err != nil {
			return nil, err
		}

		return jarm.NewSignedAndEncrypted(signed, encrypted)
	default:
		return nil, fmt.Errorf("unsupported jarm mode %q", mode)
	}
}

func getOptionalString(cmd *cobra.Command, flagName, envKey, defaultValue string) string {
	val := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if val == "" {
		return defaultValue
	}

	return val
}

func getOptionalInt(cmd *cobra.Command, flagName, envKey string, defaultValue int) (int, error) {
	val := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if val == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", flagName, err)
	}

	return parsed, nil
}

func getOptionalBool(cmd *cobra.Command, flagName, envKey string, defaultValue bool) (bool, error) {
	val := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if val == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s: %w", flagName, err)
	}

	return parsed, nil
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().String(backendURLFlagName, "", backendURLFlagUsage)
	startCmd.Flags().String(backendAPIPathFlagName, "", backendAPIPathFlagUsage)
	startCmd.Flags().String(mdocVerifierURLFlagName, "", mdocVerifierURLFlagUsage)
	startCmd.Flags().String(publicBaseURLFlagName, "", publicBaseURLFlagUsage)
	startCmd.Flags().String(walletURLFlagName, "", walletURLFlagUsage)
	startCmd.Flags().String(walletResponseRedirectPathFlagName, "", walletResponseRedirectPathFlagUsage)
	startCmd.Flags().String(responseCodePlaceholderFlagName, "", responseCodePlaceholderFlagUsage)
	startCmd.Flags().String(presentationTypeFlagName, "", presentationTypeFlagUsage)
	startCmd.Flags().String(responseModeFlagName, "", responseModeFlagUsage)
	startCmd.Flags().String(jarModeFlagName, "", jarModeFlagUsage)
	startCmd.Flags().String(presentationDefinitionModeFlagName, "", presentationDefinitionModeFlagUsage)
	startCmd.Flags().String(presentationDefinitionFileFlagName, "", presentationDefinitionFileFlagUsage)
	startCmd.Flags().String(sessionStoreTypeFlagName, "", sessionStoreTypeFlagUsage)
	startCmd.Flags().String(redisURLFlagName, "", redisURLFlagUsage)
	startCmd.Flags().String(redisMasterNameFlagName, "", redisMasterNameFlagUsage)
	startCmd.Flags().String(redisPasswordFlagName, "", redisPasswordFlagUsage)
	startCmd.Flags().String(mongoDBURLFlagName, "", mongoDBURLFlagUsage)
	startCmd.Flags().String(mongoDBNameFlagName, "", mongoDBNameFlagUsage)
	startCmd.Flags().String(sessionTTLFlagName, "", sessionTTLFlagUsage)
	startCmd.Flags().String(dataProtectKeyFlagName, "", dataProtectKeyFlagUsage)
	startCmd.Flags().String(jarmModeFlagName, "", jarmModeFlagUsage)
	startCmd.Flags().String(jarmJWSAlgFlagName, "", jarmJWSAlgFlagUsage)
	startCmd.Flags().String(jarmJWEAlgFlagName, "", jarmJWEAlgFlagUsage)
	startCmd.Flags().String(jarmJWEEncFlagName, "", jarmJWEEncFlagUsage)
	startCmd.Flags().String(metricsProviderFlagName, "", metricsProviderFlagUsage)
	startCmd.Flags().String(promHTTPURLFlagName, "", promHTTPURLFlagUsage)
	startCmd.Flags().String(cookieSecureFlagName, "", cookieSecureFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "",
		common.LogLevelPrefixFlagUsage)
}
