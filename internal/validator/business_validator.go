package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/SAP-F-2025/school-service/internal/models"
)

// registerDomainRules registers custom domain rule validators
func (v *Validator) registerDomainRules() {
	// School code validation (2-20 chars, uppercase letters and digits)
	v.validate.RegisterValidation("school_code", func(fl validator.FieldLevel) bool {
		code := fl.Field().String()
		if len(code) < 2 || len(code) > 20 {
			return false
		}
		for _, r := range code {
			if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
				return false
			}
		}
		return true
	})

	// Calendar year sanity check
	v.validate.RegisterValidation("year_value", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= 1970 && year <= 2100
	})

	// Any known role, including the system admin role
	v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		role := models.UserRole(fl.Field().String())
		return role == models.RoleAdmin || role.IsSchoolRole()
	})

	// School-scoped roles only; the admin role can never be assigned
	// through the user management API
	v.validate.RegisterValidation("school_role", func(fl validator.FieldLevel) bool {
		return models.UserRole(fl.Field().String()).IsSchoolRole()
	})

	v.validate.RegisterValidation("evaluation_grade", func(fl validator.FieldLevel) bool {
		grade := models.EvaluationGrade(fl.Field().String())
		switch grade {
		case models.GradeExcellent, models.GradeGood, models.GradeAverage, models.GradePoor:
			return true
		}
		return false
	})
}

// ValidateYearCreate validates academic year creation rules
func (v *Validator) ValidateYearCreate(req *AcademicYearCreateRequest) ValidationErrors {
	errors := v.Validate(req)

	if req.ToYear != req.FromYear+1 {
		errors = append(errors, ValidationError{
			Field:   "to_year",
			Message: "must be exactly from_year + 1",
			Value:   req.ToYear,
			Rule:    "year_span",
		})
	}

	return errors
}

// ValidateYearUpdate validates academic year update rules. A span change
// must send both endpoints so the consecutive-year rule stays checkable.
func (v *Validator) ValidateYearUpdate(req *AcademicYearUpdateRequest) ValidationErrors {
	errors := v.Validate(req)

	switch {
	case req.FromYear != nil && req.ToYear != nil:
		if *req.ToYear != *req.FromYear+1 {
			errors = append(errors, ValidationError{
				Field:   "to_year",
				Message: "must be exactly from_year + 1",
				Value:   *req.ToYear,
				Rule:    "year_span",
			})
		}
	case req.FromYear != nil || req.ToYear != nil:
		errors = append(errors, ValidationError{
			Field:   "from_year",
			Message: "span changes must include both from_year and to_year",
			Rule:    "year_span",
		})
	}

	return errors
}

// ValidateSchoolCreate validates school creation rules
func (v *Validator) ValidateSchoolCreate(req *SchoolCreateRequest) ValidationErrors {
	errors := v.Validate(req)

	if strings.TrimSpace(req.Name) == "" {
		errors = append(errors, ValidationError{
			Field:   "name",
			Message: "cannot be blank",
			Value:   req.Name,
			Rule:    "business_logic",
		})
	}

	return errors
}
