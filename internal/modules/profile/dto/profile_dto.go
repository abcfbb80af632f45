package dto

import (
	"time"

	"anoa.com/apiplayground/internal/entity"
)

// ProfileRequest is the body of both create and update. Update is a full
// replacement: omitted optional fields become null or empty.
type ProfileRequest struct {
	Name      string         `json:"name" binding:"required"`
	Email     string         `json:"email" binding:"required"`
	Education *string        `json:"education"`
	Skills    []string       `json:"skills"`
	Projects  []ProjectInput `json:"projects"`
}

type ProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
}

type ProjectResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
}

type ProfileResponse struct {
	ID        uint              `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Education *string           `json:"education"`
	Skills    []string          `json:"skills"`
	Projects  []ProjectResponse `json:"projects"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type CreateProfileResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// ProjectSearchResult is one matching project, flattened out of its profile.
type ProjectSearchResult struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
	ProfileID   uint     `json:"profileId"`
	ProfileName string   `json:"profileName"`
}

type ProjectSearchQuery struct {
	Q string `form:"q"`
}

type ProfileFilter struct {
	Skill string `form:"skill"`
}

func ToProfileResponse(p *entity.Profile) ProfileResponse {
	skills := make([]string, 0, len(p.Skills))
	skills = append(skills, p.Skills...)

	projects := make([]ProjectResponse, 0, len(p.Projects))
	for _, project := range p.Projects {
		projects = append(projects, ProjectResponse{
			Title:       project.Title,
			Description: project.Description,
			Links:       nonNil(project.Links),
		})
	}

	return ProfileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Education: p.Education,
		Skills:    skills,
		Projects:  projects,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	out := make([]string, 0, len(values))
	return append(out, values...)
}
