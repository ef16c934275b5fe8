package handlers

import (
	"errors"
	"log"

	"fido/internal/services/auth"
	"fido/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return response.BadRequest(c, "full_name, email and password are required")
	}

	user, err := h.svc.Register(c.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return response.BadRequest(c, "Email already registered")
		}
		log.Printf("registration failed: %v", err)
		return response.ServerError(c, "Failed to register user")
	}

	return response.Created(c, "User registered successfully", fiber.Map{"user_id": user.ID})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	otp, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
		}
		log.Printf("login failed: %v", err)
		return response.ServerError(c, "Failed to log in")
	}

	return response.Success(c, "OTP sent for verification", fiber.Map{"otp": otp})
}

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	token, err := h.svc.VerifyOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidOTP) {
			return response.Error(c, fiber.StatusUnauthorized, "Invalid OTP")
		}
		log.Printf("otp verification failed: %v", err)
		return response.ServerError(c, "Failed to verify OTP")
	}

	return response.Success(c, "OTP verified successfully", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
