package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

// LoggerTestSuite tests the logging package
type LoggerTestSuite struct {
	suite.Suite
	originalLogger zerolog.Logger
	testOutput     *bytes.Buffer
}

func (s *LoggerTestSuite) SetupTest() {
	s.originalLogger = Logger
	s.testOutput = &bytes.Buffer{}
	Logger = zerolog.New(s.testOutput).Level(zerolog.InfoLevel)
}

func (s *LoggerTestSuite) TearDownTest() {
	Logger = s.originalLogger
}

func (s *LoggerTestSuite) TestInfoIsWritten() {
	Info().Str("mode", "once").Msg("starting")

	s.Contains(s.testOutput.String(), `"mode":"once"`)
	s.Contains(s.testOutput.String(), `"message":"starting"`)
}

func (s *LoggerTestSuite) TestDebugSuppressedAtInfo() {
	Debug().Msg("hidden")

	s.Empty(s.testOutput.String())
}

func (s *LoggerTestSuite) TestSetDebugMode() {
	SetDebugMode()
	Debug().Msg("visible")

	s.Equal(zerolog.DebugLevel, Logger.GetLevel())
	s.Contains(s.testOutput.String(), "visible")
}

func (s *LoggerTestSuite) TestSetLevel() {
	s.True(SetLevel(" WARN "))
	s.Equal(zerolog.WarnLevel, Logger.GetLevel())

	Info().Msg("dropped")
	Warn().Msg("kept")
	s.NotContains(s.testOutput.String(), "dropped")
	s.Contains(s.testOutput.String(), "kept")
}

func (s *LoggerTestSuite) TestSetLevelRejectsUnknown() {
	s.False(SetLevel("chatty"))
	s.False(SetLevel(""))
	s.Equal(zerolog.InfoLevel, Logger.GetLevel())
}

func (s *LoggerTestSuite) TestErrorIsWritten() {
	SetLevel("error")
	Error().Msg("sysmon failed")

	s.Contains(s.testOutput.String(), `"level":"error"`)
}

func (s *LoggerTestSuite) TestAtLeastRaisesAndRestores() {
	restore := AtLeast(zerolog.ErrorLevel)
	Warn().Msg("held back")
	s.Equal(zerolog.ErrorLevel, Logger.GetLevel())

	restore()
	Warn().Msg("shown")
	s.Equal(zerolog.InfoLevel, Logger.GetLevel())
	s.NotContains(s.testOutput.String(), "held back")
	s.Contains(s.testOutput.String(), "shown")
}

func (s *LoggerTestSuite) TestAtLeastKeepsHigherLevel() {
	SetLevel("error")
	restore := AtLeast(zerolog.WarnLevel)
	s.Equal(zerolog.ErrorLevel, Logger.GetLevel())

	restore()
	s.Equal(zerolog.ErrorLevel, Logger.GetLevel())
}

func (s *LoggerTestSuite) TestNewWritesConsoleFormat() {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info().Msg("hello")

	s.Contains(buf.String(), "hello")
	s.Contains(buf.String(), "INF")
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}
