package service

import (
	"context"

	"echos/internal/models"
	"echos/internal/repository"
)

// AdminService covers account administration. Every operation requires an
// Admin caller; role changes and deletions never touch Admin accounts.
type AdminService struct {
	users repository.UserRepository
}

// NewAdminService returns an AdminService over the user repository.
func NewAdminService(users repository.UserRepository) *AdminService {
	return &AdminService{users: users}
}

func (s *AdminService) requireAdmin(ctx context.Context, callerID uint) (bool, error) {
	caller, err := s.users.GetByID(ctx, callerID)
	if err != nil {
		return false, err
	}
	return caller != nil && caller.IsAdmin(), nil
}

// ListUsers returns all accounts ordered by email. Admin only.
func (s *AdminService) ListUsers(ctx context.Context, callerID uint) ([]models.User, error) {
	ok, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		deny(ctx, "listUsers", "caller_id", callerID)
		return nil, models.NewUnauthorizedError("Admin access required")
	}
	return s.users.List(ctx)
}

// ChangeUserRole sets the target's role. The Admin role cannot be granted
// through this path, and Admin accounts cannot be downgraded.
func (s *AdminService) ChangeUserRole(ctx context.Context, callerID, targetID uint, newRole models.Role) (bool, error) {
	ok, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return false, err
	}
	if !ok {
		deny(ctx, "changeUserRole", "target_id", targetID, "caller_id", callerID)
		return false, nil
	}
	if newRole == models.RoleAdmin {
		deny(ctx, "changeUserRole", "target_id", targetID, "caller_id", callerID,
			"reason", "admin role cannot be granted here")
		return false, nil
	}

	return s.users.UpdateRole(ctx, targetID, newRole)
}

// DeleteUser removes the target account and their posts. Admin accounts are
// protected; the store refuses them as well.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, targetID uint) (bool, error) {
	ok, err := s.requireAdmin(ctx, callerID)
	if err != nil {
		return false, err
	}
	if !ok {
		deny(ctx, "deleteUser", "target_id", targetID, "caller_id", callerID)
		return false, nil
	}

	return s.users.Delete(ctx, targetID)
}
