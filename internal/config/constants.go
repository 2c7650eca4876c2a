package config

// Default paths and values
const (
	// DefaultDatabasePath is the default path for the library database
	DefaultDatabasePath = "./reading-library.db"

	// DefaultExportSchedule exports the reading journal hourly at :00
	DefaultExportSchedule = "0 * * * *"
)

// Log formats understood by the logging package
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)
