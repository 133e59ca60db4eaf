package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/SAP-F-2025/school-service/internal/models"
	"github.com/SAP-F-2025/school-service/internal/repositories"
)

// CasdoorConfig holds the configuration for Casdoor connection
type CasdoorConfig struct {
	Endpoint         string
	ClientID         string
	ClientSecret     string
	Certificate      string
	OrganizationName string
	ApplicationName  string
}

// UserCasdoor is the identity-provider directory view of users. It is used
// to backfill a local record on first login; it is never consulted for
// authorization fields (role, school, root flag), which only the local
// database owns.
type UserCasdoor struct {
	client *casdoorsdk.Client
	config CasdoorConfig
}

func NewUserCasdoor(config CasdoorConfig) repositories.UserDirectory {
	client := casdoorsdk.NewClient(
		config.Endpoint,
		config.ClientID,
		config.ClientSecret,
		config.Certificate,
		config.OrganizationName,
		config.ApplicationName,
	)

	return &UserCasdoor{
		client: client,
		config: config,
	}
}

// GetByID fetches the directory profile of a user.
func (u *UserCasdoor) GetByID(ctx context.Context, id string) (*models.User, error) {
	casdoorUser, err := u.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user from casdoor: %w", err)
	}
	if casdoorUser == nil {
		return nil, fmt.Errorf("user %s not found in casdoor", id)
	}
	return u.mapUser(casdoorUser), nil
}

// mapUser converts a Casdoor user to the local model. Authorization fields
// deliberately start at the least privilege; an admin assigns the real
// role and school afterwards.
func (u *UserCasdoor) mapUser(cu *casdoorsdk.User) *models.User {
	user := &models.User{
		ID:       cu.Id,
		FullName: cu.DisplayName,
		Email:    cu.Email,
		Role:     models.RolePhuHuynh,
		Status:   models.UserActive,
	}
	if cu.Phone != "" {
		phone := cu.Phone
		user.Phone = &phone
	}
	if cu.Avatar != "" {
		avatar := cu.Avatar
		user.AvatarURL = &avatar
	}
	return user
}
