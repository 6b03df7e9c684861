package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-MMCal/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go MMCal"
	AppBinary         = "mmcal"
	AppID             = "com.github.tartampluch.go-mmcal"
	KeyringService    = "com.github.tartampluch.go-mmcal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "MMCAL"
	EnvFile           = ".env"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagLanguage = "lang"
	FlagCalendar = "calendar"
	FlagPort     = "port"
	FlagOutput   = "output"
	FlagYear     = "year"
	FlagUser     = "user"
	FlagJSON     = "json"
	FlagAll      = "all"

	FlagDescConfig   = "Path to a YAML settings file"
	FlagDescDebug    = "Enable debug logging"
	FlagDescLanguage = "Output language (en, my)"
	FlagDescCalendar = "Western calendar system (auto, gregorian, julian)"
	FlagDescPort     = "HTTP port of the feed server"
	FlagDescOutput   = "Write the calendar to this file instead of stdout"
	FlagDescYear     = "Reference Western year of the feed (defaults to the current year)"
	FlagDescUser     = "Contacts web user name"
	FlagDescJSON     = "Print results as JSON"
	FlagDescAll      = "Include anniversaries that are not days off"

	MsgVersionOutput = "%s version %s (%s) built %s (%s/%s)\n"
	MsgErrorOutput   = "Error: %v\n"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyCalendarSystem     = "calendar_system"
	KeyLanguage           = "language"
	KeyServerPort         = "server_port"
	KeyRefreshInterval    = "refresh_interval_min"
	KeySourceMode         = "source_mode"
	KeyLocalPath          = "local_path"
	KeyWebURL             = "web_url"
	KeyWebUser            = "web_user"
	KeyReminderTrigger    = "reminder_trigger"
	KeyLogLevel           = "log_level"
	KeyIncludeHolidays    = "include_holidays"
	KeyIncludeAnniversary = "include_anniversaries"
	ConfigType            = "yaml"
)

// SupportedLanguages lists the catalog languages (ISO 639-1).
var SupportedLanguages = []string{"en", "my"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyCalName           = "cal_name"
	TKeyEvtSummary        = "event_summary"       // Requires Name
	TKeyEvtSummaryAge     = "event_summary_age"   // Requires Name, Age
	TKeyEvtSummaryBirth   = "event_summary_birth" // Requires Name (For age 0)
	TKeyEvtDescBirth      = "event_desc_birth"    // Requires Date, Weekday, Mahabote
	TKeyEvtDescHoliday    = "event_desc_holiday"
	TKeyEvtDescAnniversry = "event_desc_anniversary"
)

// MessageKeys lists every application message that locale files must define.
var MessageKeys = []string{
	TKeyCalName,
	TKeyEvtSummary,
	TKeyEvtSummaryAge,
	TKeyEvtSummaryBirth,
	TKeyEvtDescBirth,
	TKeyEvtDescHoliday,
	TKeyEvtDescAnniversry,
}

// Calendar vocabulary used when composing headers and dates.
const (
	TermSasanaYear  = "Sasana Year"
	TermMyanmarYear = "Myanmar Year"
	TermKu          = "Ku"
	TermNay         = "Nay"
	TermYat         = "Yat"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeNone       = "none"
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18081"
	DefaultRefreshMin    = 60
	DefaultLanguage      = "en"
	DefaultCalendar      = "auto"
	DefaultLogLevel      = "info"
	DefaultLeapYear      = 2000 // Leap year fallback for dates like --02-29
	UIDSalt              = "go-mmcal-v1-" // Salt for deterministic UID generation
	DisabledInterval     = 0
	FeedYearsBefore      = 1
	FeedYearsAfter       = 1
	DefaultMyanmarFormat = "S s k, B y k, M p f r E n"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go MMCal//Engine//EN"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gommcal"
	ICalTransp    = "TRANSPARENT"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTransp      = "TRANSP"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	CategoryHoliday     = "HOLIDAY"
	CategoryAnniversary = "ANNIVERSARY"
	CategoryBirthday    = "BIRTHDAY"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields and API paths
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// FormatObservanceHash keys a holiday or anniversary UID by category, name,
	// date and salt.
	FormatObservanceHash = "%s|%s|%s|%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteRoot     = "/"
	RouteHealth   = "/health"
	RouteDay      = "/api/v1/days/{date}"
	RouteMyanmar  = "/api/v1/myanmar/{year}/{month}/{day}"
	RouteThingyan = "/api/v1/thingyan/{year}"
	RouteMonth    = "/api/v1/months/{year}/{month}"

	ParamDate  = "date"
	ParamYear  = "year"
	ParamMonth = "month"
	ParamDay   = "day"
	QueryLang  = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderRequestID       = "X-Request-ID"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	CodeBadRequest = "BAD_REQUEST"
	CodeNotFound   = "NOT_FOUND"
	CodeInternal   = "INTERNAL_ERROR"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrIntervalRange  = "refresh interval must not be negative"
	ErrLanguage       = "unsupported language"
	ErrCalendarSystem = "unsupported calendar system"
	ErrLogLevel       = "unsupported log level"
	ErrSettingsRead   = "failed to read settings"
	ErrSettingsDecode = "failed to decode settings"
	ErrSettingsValid  = "invalid settings"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to parse vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrDateParse      = "unable to parse date"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrKeyringWrite   = "failed to store password"
	ErrWriteOutput    = "failed to write output"
	ErrArgNumber      = "argument must be a number"
	ErrUserRequired   = "contacts web user is required"
	ErrRequestBuild   = "failed to create request"
	ErrNetwork        = "network error during fetch"
	ErrStatus         = "server returned unexpected status"
	ErrBodyTooLarge   = "address book exceeds the size limit"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgBadDate      = "date must be YYYY-MM-DD"
	HTTPMsgBadNumber    = "path parameters must be numbers"
	HTTPMsgBadLanguage  = "unsupported language"
	HTTPMsgHealthy      = "ok"
	HTTPMsgOutOfRange   = "path parameter out of range"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary = "Birthday: %s"
	FallbackName    = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted   = "Synchronization started..."
	MsgSyncFailed    = "Synchronization failed. Check logs."
	MsgSyncFinished  = "Sync finished"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgAppStop       = "Application stopped gracefully"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgGenSuccess    = "Calendar generation successful"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgHTTPRequest   = "http request"
	MsgPanic         = "panic recovered"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgPassStored    = "Password stored in the system keyring"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgBdayToday     = "Birthday found today"
	MsgRoundingError = "Watat rounding anomaly in year"
	MsgEnvLoaded     = "Environment file loaded"
	MsgFetchStart    = "Initiating vCard download"
	MsgFetchStatus   = "Server returned error status"
	MsgFetchDownload = "vCards downloading"
	MsgCalendarReady = "Calendar configured"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyCalendar  = "calendar_system"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyYear      = "year"
	LogKeyMethod    = "method"
	LogKeyPath      = "path"
	LogKeyRemote    = "remote_addr"
	LogKeyRequestID = "request_id"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompCalendar = "calendar"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompI18n     = "i18n"
	CompSettings = "settings"
)
