package constants

// Centralized constants for headers, env keys and route paths.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvConfigPath          = "RIPOSTE_CONFIG"
	EnvDBPath              = "RIPOSTE_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "r_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteCards              = "/cards"
	RouteLeaderboard        = "/leaderboard"
	RouteVersion            = "/version"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteBattles            = "/battles"
	RouteBattleByCode       = "/battles/:battleCode"
	RouteBattleTurn         = "/battles/:battleCode/turn"
	RouteBattleStep         = "/battles/:battleCode/step"
	RouteBattleChoice       = "/battles/:battleCode/choice"
	RouteBattleTarget       = "/battles/:battleCode/target"
	RouteBattleEnd          = "/battles/:battleCode/end"
	RouteBattleFeed         = "/battles/:battleCode/feed"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"

	ErrInvalidBattleCode      = "Invalid battle code"
	ErrBattleNotFound         = "Battle not found"
	ErrFailedCreateBattle     = "Failed to create battle"
	ErrFailedUpdateBattle     = "Failed to update battle"
	ErrFailedFetchCards       = "Failed to fetch cards"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedEncodeBattle     = "Failed to encode battle"
	ErrNotBattleOwner         = "Battle belongs to another player"

	ErrBattleNotInProgress    = "Battle is not in progress"
	ErrActionsLockedResolving = "Actions are locked; resolving current turn"
	ErrNoChoicePending        = "No card choice is pending"
	ErrChoiceRequired         = "A card choice is pending; resolve it first"
	ErrFailedStoreTurn        = "Failed to store turn"
	ErrUnknownCard            = "Unknown card"
	ErrCardNotAvailable       = "Card not available to this deck"
	ErrBudgetExceeded         = "Deck exceeds energy or speed budget"
	ErrMissingRequiredTokens  = "Missing required tokens for card"
	ErrResolutionInFlight     = "A resolution step is already in flight"
	ErrUnknownUnit            = "Unknown enemy unit"
	ErrFailedResolveStep      = "Failed to resolve step"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"
	ErrEmailRequired          = "email is required"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldCode     = "battle_code"
	LogFieldCardID   = "card_id"
	LogFieldSide     = "side"
	LogFieldTurn     = "turn"
	LogFieldSP       = "sp"
	LogFieldAddr     = "addr"
)
