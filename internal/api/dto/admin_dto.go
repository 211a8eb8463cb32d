package dto

import "github.com/spec-kit/marketplace-service/internal/domain"

// ReportsResponse aggregates active accounts for administrators.
type ReportsResponse struct {
	Users       []UserResponse   `json:"users"`
	UsersByRole map[string]int64 `json:"usersByRole"`
}

// NewReportsResponse maps the report aggregation. The per-role map also
// carries a "total" entry.
func NewReportsResponse(users []domain.User, counts map[domain.Role]int64, total int64) ReportsResponse {
	userResponses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  string(user.Role),
		})
	}

	byRole := make(map[string]int64, len(counts)+1)
	for role, count := range counts {
		byRole[string(role)] = count
	}
	byRole["total"] = total

	return ReportsResponse{Users: userResponses, UsersByRole: byRole}
}
