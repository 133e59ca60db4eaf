package repositories

import "context"

// Repository aggregates every entity repository behind one interface.
type Repository interface {
	// Tenant domain
	School() SchoolRepository

	// Academic structure domain
	AcademicYear() AcademicYearRepository
	Department() DepartmentRepository
	Class() ClassRepository

	// Personnel domain
	Personnel() PersonnelRepository
	Evaluation() EvaluationRepository

	// User domain
	User() UserRepository

	// Transaction support. The callback receives a Repository bound to the
	// transaction; returning an error rolls everything back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
