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

// UserAgent identifies the HTTP client used for remote vCard imports.
var UserAgent = "Go-AddressBook/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go AddressBook"
	AppID             = "com.github.tartampluch.go-addressbook"
	CmdName           = "go-addressbook"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DataFileName      = "addressbook.cbor"
	ConfigFileName    = "config"
	ConfigFileType    = "yaml"
	EnvPrefix         = "ADDRESSBOOK"
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
	// Used for the address book and logs.
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
	FlagConfig       = "config"
	FlagDebug        = "debug"
	FlagDays         = "days"
	FlagDescConfig   = "Config file (default is $HOME/.go-addressbook/config.yaml)"
	FlagDescDebug    = "Enable debug logging to stderr"
	FlagDescDays     = "Number of days ahead to look for birthdays"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	CmdUseBirthdays = "birthdays"
	CmdUseExport    = "export <file>"
	CmdUseImport    = "import <file|url>"
	CmdUseServe     = "serve"

	CmdShortRoot      = "Personal address book assistant"
	CmdShortBirthdays = "Print upcoming birthdays and exit"
	CmdShortExport    = "Export the address book as vCard"
	CmdShortImport    = "Import contacts from a vCard file or URL"
	CmdShortServe     = "Serve upcoming birthdays as an iCalendar feed"
)

// -----------------------------------------------------------------------------
// Settings Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyDataFile        = "data_file"
	KeyLanguage        = "language"
	KeyHorizonDays     = "horizon_days"
	KeyServerPort      = "server.port"
	KeyRefreshInterval = "server.refresh_interval"
	KeyReminderTrigger = "reminder_trigger"
	KeyImportUser      = "import.user"
	KeyImportPass      = "import.password"
)

// SupportedLanguages defines the list of available assistant languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "msg_welcome"
	TKeyPrompt           = "msg_prompt"
	TKeyHello            = "msg_hello"
	TKeyGoodbye          = "msg_goodbye"
	TKeyHelp             = "msg_help"
	TKeyInvalidCommand   = "msg_invalid_command"
	TKeyContactAdded     = "msg_contact_added"
	TKeyContactUpdated   = "msg_contact_updated"
	TKeyContactDeleted   = "msg_contact_deleted"
	TKeyPhoneUpdated     = "msg_phone_updated"
	TKeyPhoneRemoved     = "msg_phone_removed"
	TKeyPhoneNotDefined  = "msg_phone_not_defined" // Requires Phone
	TKeyShowPhones       = "msg_show_phones"       // Requires Name, Phones
	TKeyNoContacts       = "msg_no_contacts"
	TKeyContactUndefined = "msg_contact_not_defined"
	TKeyBirthdayUpdated  = "msg_birthday_updated"
	TKeyShowBirthday     = "msg_show_birthday" // Requires Name, Birthday
	TKeyNoBirthday       = "msg_no_birthday"
	TKeyNoUpcoming       = "msg_no_upcoming"   // Requires Days
	TKeyUpcomingLine     = "msg_upcoming_line" // Requires Name, Date
	TKeyUsagePhone       = "msg_usage_name_phone"
	TKeyUsageBirthday    = "msg_usage_name_birthday"
	TKeyUsageArgument    = "msg_usage_argument"
	TKeyEvtSummary       = "event_summary"     // Requires Name
	TKeyImportReport     = "msg_import_report" // Requires Cards, Added, Merged, Skipped
	TKeyExportReport     = "msg_export_report" // Requires Count, File
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort            = "18081"
	DefaultLanguage        = "en"
	DefaultHorizonDays     = 7
	DefaultRefreshInterval = 5 * time.Minute
	DefaultReminderTrigger = "-PT9H"
	UIDSalt                = "go-addressbook-v1-" // Salt for deterministic UID generation
	SnapshotVersion        = 1
	PhoneDigits            = 10
	MinBirthYear           = 1
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go AddressBook//Birthdays//EN"
	ICalCalName   = "Congratulations"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields
	VCardVersion = "4.0"
	VCardBDAY    = "BDAY"
	VCardFN      = "FN"
	VCardN       = "N"
	VCardTEL     = "TEL"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatBirthday is the only accepted birthday layout (DD.MM.YYYY).
	DateFormatBirthday = "02.01.2006"

	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtTmp   = ".tmp"
)

// -----------------------------------------------------------------------------
// Rendering
// -----------------------------------------------------------------------------

const (
	FormatRecord        = "Contact name: %s, phones: %s"
	FormatBirthdayField = "| Birthday: %s"
	PhoneSeparator      = "; "
	RecordSeparator     = "\n"
	MsgPhoneNotDefined  = "%s not defined!"
	MsgPhoneUpdated     = "Contact updated!"
	FormatEventSummary  = "Congratulate %s"
	FormatEventDesc     = "Birthday of %s (%s)"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
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
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	AddrSeparator       = ":"
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

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrPhoneFormat      = "phone number must contain exactly 10 digits"
	ErrBirthdayFormat   = "invalid date format, use DD.MM.YYYY"
	ErrContactNotFound  = "contact not defined"
	ErrNoBirthday       = "contact has no date of birth"
	ErrMissingArgs      = "not enough arguments"
	ErrEmptyInput       = "empty input"
	ErrSnapshotRead     = "failed to read address book"
	ErrSnapshotDecode   = "failed to decode address book"
	ErrSnapshotEncode   = "failed to encode address book"
	ErrSnapshotWrite    = "failed to write address book"
	ErrSnapshotVersion  = "unsupported address book version"
	ErrSnapshotRecord   = "corrupt record in address book"
	ErrConfigRead       = "failed to read config"
	ErrConfigDecode     = "failed to unmarshal config"
	ErrConfigInvalid    = "invalid config"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrRequestBuild     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrUnexpectedStatus = "server returned unexpected status"

	// FormatErrStatus expects the error text and the HTTP status line.
	FormatErrStatus = "%s: %s"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrVCardEncode      = "failed to encode vCard"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrOpenSource       = "failed to open import source"
	ErrOpenDestination  = "failed to open export destination"
	ErrExportWrite      = "failed to write export file"
	ErrHorizonRange     = "days must be between 0 and 366"
	ErrPersistOnExit    = "failed to save address book on exit"
	ErrReadInput        = "failed to read input"
	ErrValidatorSetup   = "failed to register validation"
	ErrUnknownFieldKind = "unknown field kind"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgBookLoaded    = "Address book loaded"
	MsgBookSaved     = "Address book saved"
	MsgBookEmpty     = "Starting with an empty address book"
	MsgCommand       = "Command handled"
	MsgCommandFailed = "Command rejected"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgFeedRefresh   = "Refreshing birthday feed"
	MsgGenSuccess    = "Calendar generation successful"
	MsgImportDone    = "vCard import finished"
	MsgExportDone    = "vCard export finished"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedPhone  = "Skipping invalid phone number"
	MsgSkippedDate   = "Skipping unusable birthday"
	MsgSkippedBday   = "Skipping record with unparseable birthday"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgConfigDefault = "No config file found, using defaults"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgCtxCancel     = "Context cancelled, leaving command loop"
	MsgDownload      = "Initiating vCard download"
	MsgBadStatus     = "Server returned error status"
	MsgFeedURL       = "Serving birthday feed at http://%s:%s/\n"
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
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyInterval  = "interval"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyRecords   = "records"
	LogKeyUpcoming  = "upcoming"
	LogKeyHorizon   = "horizon_days"
	LogKeyImported  = "imported"
	LogKeyMerged    = "merged"
	LogKeySkipped   = "skipped"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyBuilt   = "built"
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
	CompBook      = "addressbook"
	CompStorage   = "storage"
	CompAssistant = "assistant"
	CompEngine    = "engine"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompConfig    = "config"
)
