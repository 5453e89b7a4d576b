package constants

const (
	// Default AppSettings values
	DefaultNotificationsEnabled = true
	DefaultTheme                = "fire"

	// Default habit values
	DefaultHabitIcon  = "flame.fill"
	DefaultHabitColor = "#DAA520"

	// Calendar defaults
	DefaultTimezone  = "Local" // Use system local timezone by default
	DefaultWeekStart = "sunday"

	// Reminder notification text
	ReminderTitleFormat = "Reminder: %s"
	ReminderBody        = "Don't forget to complete your habit today."
)

// EnvPrefix prefixes every environment override, e.g. HABITBURN_DSN.
const EnvPrefix = "HABITBURN_"
