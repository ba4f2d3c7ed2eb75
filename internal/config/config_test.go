package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.T().Setenv("XDG_CONFIG_HOME", s.dir)
	s.T().Setenv("HOME", s.dir)
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefault() {
	cfg := Default()
	s.Equal("info", cfg.LogLevel)
	s.Equal(dbFileName, filepath.Base(cfg.DBPath))
	s.Equal(logFileName, filepath.Base(cfg.LogFile))
	s.False(cfg.DesktopNotifications)
	s.True(cfg.TerminalBell)
	s.Equal(3, cfg.StatusClearSeconds)
	s.Equal(defaultBuffer, cfg.SchedulerBuffer)
}

func (s *ConfigSuite) TestLoadFileMissingIsNotError() {
	base := Default()
	cfg, err := LoadFile(base, filepath.Join(s.dir, "nope.yaml"))
	s.Require().NoError(err)
	s.Equal(base, cfg)
}

func (s *ConfigSuite) TestLoadFileOverlays() {
	path := filepath.Join(s.dir, "config.yaml")
	body := "db_path: /tmp/custom.db\nlog_level: debug\ndesktop_notifications: true\nstatus_clear_seconds: 0\n"
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadFile(Default(), path)
	s.Require().NoError(err)
	s.Equal("/tmp/custom.db", cfg.DBPath)
	s.Equal("debug", cfg.LogLevel)
	s.True(cfg.DesktopNotifications)
	s.True(cfg.TerminalBell, "keys absent from the file keep their base value")
	s.Equal(3, cfg.StatusClearSeconds, "non-positive values fall back")
}

func (s *ConfigSuite) TestLoadFileRejectsBadYAML() {
	path := filepath.Join(s.dir, "bad.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("db_path: [unterminated\n"), 0o644))
	_, err := LoadFile(Default(), path)
	s.Error(err)
}

func (s *ConfigSuite) TestFromEnv() {
	s.T().Setenv("POMOD_DB_PATH", "state/p.db")
	s.T().Setenv("POMOD_LOG_LEVEL", "WARN")
	s.T().Setenv("POMOD_LOG_FILE", "p.log")
	s.T().Setenv("POMOD_DESKTOP_NOTIFICATIONS", "yes")
	s.T().Setenv("POMOD_TERMINAL_BELL", "off")
	s.T().Setenv("POMOD_STATUS_CLEAR_SECONDS", "5")
	s.T().Setenv("POMOD_SCHEDULER_BUFFER", "16")

	cfg := FromEnv(Default())
	s.Equal("state/p.db", cfg.DBPath)
	s.Equal("warn", cfg.LogLevel)
	s.Equal("p.log", cfg.LogFile)
	s.True(cfg.DesktopNotifications)
	s.False(cfg.TerminalBell)
	s.Equal(5, cfg.StatusClearSeconds)
	s.Equal(16, cfg.SchedulerBuffer)
}

func (s *ConfigSuite) TestFromEnvIgnoresMalformed() {
	s.T().Setenv("POMOD_TERMINAL_BELL", "maybe")
	s.T().Setenv("POMOD_STATUS_CLEAR_SECONDS", "soon")
	s.T().Setenv("POMOD_SCHEDULER_BUFFER", "-2")

	base := Default()
	cfg := FromEnv(base)
	s.Equal(base.TerminalBell, cfg.TerminalBell)
	s.Equal(base.StatusClearSeconds, cfg.StatusClearSeconds)
	s.Equal(base.SchedulerBuffer, cfg.SchedulerBuffer)
}

func (s *ConfigSuite) TestLoadPrecedence() {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("log_level: debug\ndb_path: file.db\n"), 0o644))
	s.T().Setenv("POMOD_LOG_LEVEL", "error")

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal("error", cfg.LogLevel, "environment wins over file")
	s.Equal("file.db", cfg.DBPath)
}
