package repositories

// RemoteProvider bundles the backend-facing repositories.
// A single HTTP client usually implements all of them.
type RemoteProvider interface {
	WorkspaceRepositoryFacade
	TableRepository
	FormRepository
	TrackerRepository
	AttachmentRepository
	AssistantRepository
	UserRepository
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
// Drafts and ListCache are optional and may be nil.
type RepositoryProvider struct {
	Remote    RemoteProvider
	Drafts    DraftRepository
	ListCache WorkspaceListCache
}
