package prompts

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Embedded prompt files

//go:embed criteria_system.txt
var criteriaSystem string

//go:embed recommend_system.txt
var recommendSystem string

func CriteriaSystem() string  { return strings.TrimSpace(criteriaSystem) }
func RecommendSystem() string { return strings.TrimSpace(recommendSystem) }

// Source serves the criteria-call system message. The configured file is read
// once and cached for the process lifetime; a missing file falls back to the
// embedded default.
type Source struct {
	path   string
	logger *zap.Logger

	once    sync.Once
	message string
}

func NewSource(path string, logger *zap.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// SystemMessage returns the cached system message text.
func (s *Source) SystemMessage() string {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			s.logger.Warn("System message file not readable, using embedded default",
				zap.String("path", s.path), zap.Error(err))
			s.message = CriteriaSystem()
			return
		}
		s.message = strings.TrimSpace(string(data))
	})
	return s.message
}
