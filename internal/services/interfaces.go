package services

import (
	"context"

	"github.com/SAP-F-2025/school-service/internal/authz"
	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
	"github.com/SAP-F-2025/school-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CreateSchoolRequest = validator.SchoolCreateRequest
type UpdateSchoolRequest = validator.SchoolUpdateRequest
type CreateYearRequest = validator.AcademicYearCreateRequest
type UpdateYearRequest = validator.AcademicYearUpdateRequest
type CreateDepartmentRequest = validator.DepartmentCreateRequest
type UpdateDepartmentRequest = validator.DepartmentUpdateRequest
type CreateClassRequest = validator.ClassCreateRequest
type UpdateClassRequest = validator.ClassUpdateRequest
type CreatePersonnelRequest = validator.PersonnelCreateRequest
type UpdatePersonnelRequest = validator.PersonnelUpdateRequest
type CreateEvaluationRequest = validator.EvaluationCreateRequest
type UpdateEvaluationRequest = validator.EvaluationUpdateRequest
type CreateUserRequest = validator.UserCreateRequest
type UpdateUserRequest = validator.UserUpdateRequest
type UpdateProfileRequest = validator.ProfileUpdateRequest

type SchoolResponse struct {
	*models.School
	Stats *repositories.SchoolStats `json:"stats,omitempty"`
}

type SchoolListResponse struct {
	Schools []*models.School `json:"schools"`
	Total   int64            `json:"total"`
}

type YearResponse struct {
	*models.AcademicYear
	CanEdit       bool `json:"can_edit"`
	CanActivate   bool `json:"can_activate"`
	CanDeactivate bool `json:"can_deactivate"`
	CanDelete     bool `json:"can_delete"`
}

type YearListResponse struct {
	Years []*YearResponse `json:"years"`
	Total int64           `json:"total"`
}

type DepartmentListResponse struct {
	Departments []*models.Department `json:"departments"`
	Total       int64                `json:"total"`
}

type ClassListResponse struct {
	Classes []*models.Class `json:"classes"`
	Total   int64           `json:"total"`
}

type PersonnelListResponse struct {
	Records []*models.PersonnelRecord `json:"records"`
	Total   int64                     `json:"total"`
}

type EvaluationListResponse struct {
	Evaluations []*models.PersonnelEvaluation `json:"evaluations"`
	Total       int64                         `json:"total"`
}

type UserResponse struct {
	*models.User
	Permissions []authz.Permission `json:"permissions"`
}

type UserListResponse struct {
	Users []*models.User `json:"users"`
	Total int64          `json:"total"`
}

// ExportResult is a rendered spreadsheet ready to stream to the client.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ===== SERVICE INTERFACES =====

type SchoolService interface {
	Create(ctx context.Context, req *CreateSchoolRequest, actor *authz.Principal) (*models.School, error)
	GetByID(ctx context.Context, id string, actor *authz.Principal) (*SchoolResponse, error)
	Update(ctx context.Context, id string, req *UpdateSchoolRequest, actor *authz.Principal) (*models.School, error)
	Delete(ctx context.Context, id string, actor *authz.Principal) error
	List(ctx context.Context, filters repositories.SchoolFilters, actor *authz.Principal) (*SchoolListResponse, error)
}

type AcademicYearService interface {
	Create(ctx context.Context, schoolID string, req *CreateYearRequest, actor *authz.Principal) (*models.AcademicYear, error)
	GetByID(ctx context.Context, id uint, actor *authz.Principal) (*YearResponse, error)
	GetActive(ctx context.Context, schoolID string, actor *authz.Principal) (*models.AcademicYear, error)
	Update(ctx context.Context, id uint, req *UpdateYearRequest, actor *authz.Principal) (*YearResponse, error)
	Activate(ctx context.Context, id uint, actor *authz.Principal) error
	Deactivate(ctx context.Context, id uint, actor *authz.Principal) error
	Delete(ctx context.Context, id uint, actor *authz.Principal) error
	List(ctx context.Context, filters repositories.AcademicYearFilters, actor *authz.Principal) (*YearListResponse, error)
}

type DepartmentService interface {
	Create(ctx context.Context, schoolID string, req *CreateDepartmentRequest, actor *authz.Principal) (*models.Department, error)
	GetByID(ctx context.Context, id uint, actor *authz.Principal) (*models.Department, error)
	Update(ctx context.Context, id uint, req *UpdateDepartmentRequest, actor *authz.Principal) (*models.Department, error)
	Delete(ctx context.Context, id uint, actor *authz.Principal) error
	List(ctx context.Context, filters repositories.DepartmentFilters, actor *authz.Principal) (*DepartmentListResponse, error)
}

type ClassService interface {
	Create(ctx context.Context, schoolID string, req *CreateClassRequest, actor *authz.Principal) (*models.Class, error)
	GetByID(ctx context.Context, id uint, actor *authz.Principal) (*models.Class, error)
	Update(ctx context.Context, id uint, req *UpdateClassRequest, actor *authz.Principal) (*models.Class, error)
	Delete(ctx context.Context, id uint, actor *authz.Principal) error
	List(ctx context.Context, filters repositories.ClassFilters, actor *authz.Principal) (*ClassListResponse, error)
}

type PersonnelService interface {
	CreateRecord(ctx context.Context, schoolID string, req *CreatePersonnelRequest, actor *authz.Principal) (*models.PersonnelRecord, error)
	GetRecord(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelRecord, error)
	UpdateRecord(ctx context.Context, id uint, req *UpdatePersonnelRequest, actor *authz.Principal) (*models.PersonnelRecord, error)
	DeleteRecord(ctx context.Context, id uint, actor *authz.Principal) error
	ListRecords(ctx context.Context, filters repositories.PersonnelFilters, actor *authz.Principal) (*PersonnelListResponse, error)

	CreateEvaluation(ctx context.Context, schoolID string, req *CreateEvaluationRequest, actor *authz.Principal) (*models.PersonnelEvaluation, error)
	GetEvaluation(ctx context.Context, id uint, actor *authz.Principal) (*models.PersonnelEvaluation, error)
	UpdateEvaluation(ctx context.Context, id uint, req *UpdateEvaluationRequest, actor *authz.Principal) (*models.PersonnelEvaluation, error)
	DeleteEvaluation(ctx context.Context, id uint, actor *authz.Principal) error
	ListEvaluations(ctx context.Context, filters repositories.EvaluationFilters, actor *authz.Principal) (*EvaluationListResponse, error)
}

type UserService interface {
	Create(ctx context.Context, schoolID string, req *CreateUserRequest, actor *authz.Principal) (*models.User, error)
	GetByID(ctx context.Context, id string, actor *authz.Principal) (*UserResponse, error)
	Update(ctx context.Context, id string, req *UpdateUserRequest, actor *authz.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, req *UpdateProfileRequest, actor *authz.Principal) (*models.User, error)
	Delete(ctx context.Context, id string, actor *authz.Principal) error
	List(ctx context.Context, filters repositories.UserFilters, actor *authz.Principal) (*UserListResponse, error)
}

type ExportService interface {
	ExportEvaluations(ctx context.Context, schoolID string, academicYearID uint, actor *authz.Principal) (*ExportResult, error)
	ExportPersonnel(ctx context.Context, schoolID string, actor *authz.Principal) (*ExportResult, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	School() SchoolService
	AcademicYear() AcademicYearService
	Department() DepartmentService
	Class() ClassService
	Personnel() PersonnelService
	User() UserService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
