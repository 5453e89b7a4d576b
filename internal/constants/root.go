package constants

import "time"

const (
	AppName            = "habitburn"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitburn"
	DefaultConfigPath  = "~/.config/habitburn/habitburn.db"
	ConfigFileName     = "config.toml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MaxHabits caps the number of tracked habits
	MaxHabits = 7

	// XP needed per level band
	ExperiencePerLevel = 100

	// CategoryMasterThreshold is the number of completions in one category needed
	// for a categoryMaster achievement. It is not parameterized per achievement.
	CategoryMasterThreshold = 50

	// RecentAchievementsLimit is how many unlocked achievements count as "recent"
	RecentAchievementsLimit = 3

	// AchievementCatalogVersion identifies the fixed catalog shipped with this build
	AchievementCatalogVersion = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitburn-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "habitburn-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.habitburn"
	TrayExecutablePrefix   = "habitburn-tray"
	NotifyRequestTimeout   = 5 * time.Second
)

// Record keys in the key-value store. Each record is encoded independently.
const (
	RecordHabits              = "habits"
	RecordUser                = "user"
	RecordSettings            = "settings"
	RecordOnboardingCompleted = "onboardingCompleted"
	RecordAchievements        = "achievements"
	RecordReminders           = "reminders"
)
