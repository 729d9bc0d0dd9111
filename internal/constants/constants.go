package constants

// Centralized constants for headers, env keys and shared messages.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvConfigPath          = "GEARCLASH_CONFIG"
	EnvDBPath              = "GEARCLASH_DB"
	EnvDevTokenEndpoint    = "GEARCLASH_DEV_TOKENS"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	// Authorization prefix
	BearerPrefix = "Bearer "

	// Session / Cookie names
	CookieSessionName = "g_session"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteCategories = "/categories"
	RouteMods       = "/mods"

	RouteCards   = "/cards"
	RouteBalance = "/balance"

	RouteDeals    = "/deals"
	RouteOpenDeal = "/deals/open"

	RouteTunedCars       = "/tuned-cars"
	RouteTunedCarByID    = "/tuned-cars/:tunedCarID"
	RouteTunedCarUpgrade = "/tuned-cars/:tunedCarID/upgrades/:mod"

	RouteChallenges       = "/challenges"
	RouteChallengeByID    = "/challenges/:challengeID"
	RouteChallengeAccept  = "/challenges/:challengeID/accept"
	RouteChallengeDecline = "/challenges/:challengeID/decline"

	RouteDevToken = "/auth/dev-token"
	RouteMe       = "/auth/me"
	RouteLogout   = "/auth/logout"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidID         = "Invalid ID"
	ErrInvalidMod        = "Invalid mod"
	ErrUnknownCategory   = "Unknown battle category"
	ErrChallengeNotFound = "Challenge not found"
	ErrTunedCarNotFound  = "Tuned car not found"

	ErrFailedFetchCards      = "Failed to fetch cards"
	ErrFailedFetchBalance    = "Failed to fetch balance"
	ErrFailedDealHand        = "Failed to deal hand"
	ErrFailedFetchHand       = "Failed to fetch hand"
	ErrFailedCreateChallenge = "Failed to create challenge"
	ErrFailedFetchChallenges = "Failed to fetch challenges"
	ErrFailedAcceptChallenge = "Failed to accept challenge"
	ErrFailedAddTunedCar     = "Failed to add tuned car"
	ErrFailedRemoveTunedCar  = "Failed to remove tuned car"
	ErrFailedUpgrade         = "Failed to apply upgrade"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldUserID      = "user_id"
	LogFieldChallengeID = "challenge_id"
	LogFieldTunedCarID  = "tuned_car_id"
	LogFieldCardID      = "card_id"
	LogFieldHandKey     = "hand_key"
	LogFieldMod         = "mod"
	LogFieldAddr        = "addr"
	LogFieldTemplate    = "template"
)
