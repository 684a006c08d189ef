package httpapi

import (
	"go.uber.org/zap"

	"jobmonitor/internal/config"
	"jobmonitor/internal/dashboard"
	"jobmonitor/internal/domain"
	"jobmonitor/internal/events"
)

// Dashboard is the slice of *dashboard.Controller the handlers use.
type Dashboard interface {
	View() dashboard.View
	Skills() domain.SkillSet
	AddSkill(name string) bool
	RemoveSkill(name string) int
	RefreshJobs()
}

type Deps struct {
	Dashboard Dashboard
	Hub       *events.Hub
	Logger    *zap.Logger

	// Effective config, read-only at runtime
	Cfg         config.Config
	CfgPath     string
	CfgWarnings []string

	// Keychain account for the monitor token
	TokenAccount string
	SetToken     func(account, token string) error
	DeleteToken  func(account string) error
}
