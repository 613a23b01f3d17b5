package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/auth"
	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/db"
)

// AuthStore is the subset of db.Database used by signup and login
type AuthStore interface {
	db.AuthProvider
	db.ProfileStore
}

var signupMessages = map[string]string{
	"Password": "Password is required",
	"UserType": "User type must be farmer or worker",
}

var loginMessages = map[string]string{
	"Email":    "Email and password are required",
	"Password": "Email and password are required",
}

// Signup creates an auth user and its profile, returning the new identity
func Signup(ctx context.Context, store AuthStore, logger *zap.Logger, req model.SignupRequest) (*model.Identity, error) {
	if err := validateRequest(req, signupMessages); err != nil {
		return nil, err
	}

	email := auth.NormalizeEmail(req.Email)
	logger.Debug("Signing up", zap.String("email", email), zap.String("user_type", string(req.UserType)))

	userID, err := store.SignUp(ctx, email, req.Password)
	if err != nil {
		logger.Debug("Auth provider rejected signup", zap.Error(err))
		return nil, upstreamError(err)
	}

	profile := &db.Profile{
		ID:       userID,
		Name:     req.Name,
		Email:    email,
		Phone:    req.Phone,
		Location: req.Location,
		UserType: string(req.UserType),
	}
	if err := store.InsertProfile(ctx, profile); err != nil {
		logger.Error("Failed to create profile", zap.String("user_id", userID), zap.Error(err))
		return nil, upstreamError(err)
	}

	logger.Info("User signed up", zap.String("user_id", userID), zap.String("user_type", profile.UserType))

	identity := identityFromProfile(profile)
	return &identity, nil
}

// Login verifies credentials and returns the stored identity
func Login(ctx context.Context, store AuthStore, logger *zap.Logger, req model.LoginRequest) (*model.Identity, error) {
	if err := validateRequest(req, loginMessages); err != nil {
		return nil, err
	}

	userID, err := store.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		logger.Debug("Login rejected", zap.String("email", req.Email), zap.Error(err))
		return nil, upstreamError(err)
	}

	profile, err := store.GetProfile(ctx, userID)
	if err != nil {
		logger.Error("Failed to load profile", zap.String("user_id", userID), zap.Error(err))
		return nil, upstreamError(err)
	}

	logger.Info("User logged in", zap.String("user_id", userID))

	identity := identityFromProfile(profile)
	return &identity, nil
}
