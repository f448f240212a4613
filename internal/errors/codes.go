package errors

// Error code constants returned in the "error" field of failed responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The admin frontend maps these to
// localized messages; the "message" field is always displayable as-is.

const (
	// ==================== auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"

	// ==================== validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== resources (RESOURCE_) ====================
	ResourceNotFound = "RESOURCE_NOT_FOUND"
	ResourceConflict = "RESOURCE_CONFLICT"

	// ==================== stores (STORE_) ====================
	StoreNotFound    = "STORE_NOT_FOUND"
	StoreHasBookings = "STORE_HAS_BOOKINGS"

	// ==================== influencers (INFLUENCER_) ====================
	InfluencerNotFound      = "INFLUENCER_NOT_FOUND"
	InfluencerHasDependents = "INFLUENCER_HAS_DEPENDENTS"
	InfluencerFileNotFound  = "INFLUENCER_FILE_NOT_FOUND"

	// ==================== bookings (BOOKING_) ====================
	BookingNotFound = "BOOKING_NOT_FOUND"

	// ==================== traffic (TRAFFIC_) ====================
	TrafficLogNotFound = "TRAFFIC_LOG_NOT_FOUND"
	TrafficNoReference = "TRAFFIC_NO_REFERENCE"
	TrafficFetchFailed = "TRAFFIC_FETCH_FAILED"

	// ==================== users (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== uploads (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
