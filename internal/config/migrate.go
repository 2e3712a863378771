package config

import "log/slog"

// legacyMissing marks an absent stored value during migration
const legacyMissing = -1

// Migrate upgrades stored settings to CurrentSettingsVersion.
// Running it again after a successful upgrade is a no-op.
func (s *Settings) Migrate() {
	version := s.prefs.IntWithFallback(KeySettingsVersion, 0)
	if version >= CurrentSettingsVersion {
		return
	}

	if version < 2 {
		old := s.prefs.IntWithFallback(KeyKeepImageDuration, legacyMissing)
		if old != legacyMissing {
			migrated, ok := legacyRetention[old]
			if !ok {
				migrated = DefaultKeepImageDuration
			}
			s.prefs.SetInt(KeyKeepImageDuration, int(migrated))
			slog.Info("migrated retention setting", "from", old, "to", migrated.String())
		}
	}

	s.prefs.SetInt(KeySettingsVersion, CurrentSettingsVersion)
}
