package auth

import (
	"time"

	"etik/internal/operators"
)

// represents the authentication response
type AuthResponse struct {
	Operator     OperatorResponse `json:"operator"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int64            `json:"expires_in"`
}

// operator data in responses (without password)
type OperatorResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toOperatorResponse(op *operators.Operator) OperatorResponse {
	return OperatorResponse{
		ID:        op.ID.String(),
		FirstName: op.FirstName,
		LastName:  op.LastName,
		Email:     op.Email,
		Role:      string(op.Role),
		CreatedAt: op.CreatedAt,
		UpdatedAt: op.UpdatedAt,
	}
}
