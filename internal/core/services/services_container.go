package services

import (
	portsrepo "github.com/SscSPs/workspace_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/workspace_dashboard/internal/core/ports/services"
	"github.com/SscSPs/workspace_dashboard/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share one session registry so selection, buffers and boards
// stay consistent across them.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	remote := repos.Remote
	sessions := NewSessionRegistry(remote, remote, repos.Drafts, repos.ListCache, cfg.MaxWorkspaces)

	return &portssvc.ServiceContainer{
		Workspace: NewWorkspaceService(sessions, remote, WithMaxSharedMembers(cfg.MaxSharedMembers)),
		Table:     NewTableService(sessions, remote),
		Content: NewContentService(sessions, ContentRepositories{
			Forms:       remote,
			Trackers:    remote,
			Attachments: remote,
			Assistant:   remote,
		}),
		Reporting: NewReportingService(sessions, remote),
		Auth:      NewAuthService(remote, sessions),
	}
}
