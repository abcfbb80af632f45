package profile

import (
	"context"
	"log/slog"
	"strings"

	"anoa.com/apiplayground/internal/entity"
	profileDto "anoa.com/apiplayground/internal/modules/profile/dto"
	"anoa.com/apiplayground/internal/modules/profile/repository"
	"anoa.com/apiplayground/pkg/apperror"
	"anoa.com/apiplayground/pkg/validator"
	"gorm.io/datatypes"
)

// Indexer mirrors profile writes into a secondary search index.
type Indexer interface {
	IndexProfile(profile *entity.Profile) error
	DeleteProfile(id uint) error
}

type ProfileService interface {
	CountProfiles(ctx context.Context) (int64, error)
	ListProfiles(ctx context.Context, skill string) ([]profileDto.ProfileResponse, error)
	GetProfile(ctx context.Context, id uint) (*profileDto.ProfileResponse, error)
	CreateProfile(ctx context.Context, req profileDto.ProfileRequest) (uint, error)
	UpdateProfile(ctx context.Context, id uint, req profileDto.ProfileRequest) error
	DeleteProfile(ctx context.Context, id uint) error
	SearchProjects(ctx context.Context, query string) ([]profileDto.ProjectSearchResult, error)
}

type profileService struct {
	repo    repository.Repository
	indexer Indexer
}

// NewProfileService builds the service. indexer may be nil.
func NewProfileService(repo repository.Repository, indexer Indexer) ProfileService {
	return &profileService{
		repo:    repo,
		indexer: indexer,
	}
}

func (s *profileService) CountProfiles(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *profileService) ListProfiles(ctx context.Context, skill string) ([]profileDto.ProfileResponse, error) {
	profiles, err := s.repo.FindAll(ctx, skill)
	if err != nil {
		return nil, err
	}

	responses := make([]profileDto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		responses = append(responses, profileDto.ToProfileResponse(p))
	}
	return responses, nil
}

func (s *profileService) GetProfile(ctx context.Context, id uint) (*profileDto.ProfileResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := profileDto.ToProfileResponse(p)
	return &resp, nil
}

func (s *profileService) CreateProfile(ctx context.Context, req profileDto.ProfileRequest) (uint, error) {
	p, err := toEntity(req)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return 0, err
	}

	s.index(p)
	return p.ID, nil
}

func (s *profileService) UpdateProfile(ctx context.Context, id uint, req profileDto.ProfileRequest) error {
	p, err := toEntity(req)
	if err != nil {
		return err
	}
	p.ID = id

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.index(p)
	return nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.DeleteProfile(id); err != nil {
			slog.Warn("failed to remove profile from search index", "profile_id", id, "err", err)
		}
	}
	return nil
}

func (s *profileService) SearchProjects(ctx context.Context, query string) ([]profileDto.ProjectSearchResult, error) {
	if query == "" {
		return nil, apperror.InvalidInput(`Query parameter "q" is required`)
	}

	var (
		profiles []*entity.Profile
		err      error
	)
	// Characters that JSON escapes never appear verbatim in the stored text,
	// so the storage pre-filter would miss them.
	if strings.ContainsAny(query, "\"\\") || strings.ContainsFunc(query, isControl) {
		profiles, err = s.repo.FindAll(ctx, "")
	} else {
		profiles, err = s.repo.FindByProjectText(ctx, query)
	}
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	results := make([]profileDto.ProjectSearchResult, 0)
	for _, p := range profiles {
		for _, project := range p.Projects {
			if !strings.Contains(strings.ToLower(project.Title), needle) &&
				!strings.Contains(strings.ToLower(project.Description), needle) {
				continue
			}
			links := make([]string, 0, len(project.Links))
			results = append(results, profileDto.ProjectSearchResult{
				Title:       project.Title,
				Description: project.Description,
				Links:       append(links, project.Links...),
				ProfileID:   p.ID,
				ProfileName: p.Name,
			})
		}
	}
	return results, nil
}

func (s *profileService) index(p *entity.Profile) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexProfile(p); err != nil {
		slog.Warn("failed to index profile", "profile_id", p.ID, "err", err)
	}
}

func toEntity(req profileDto.ProfileRequest) (*entity.Profile, error) {
	if req.Name == "" || req.Email == "" {
		return nil, apperror.InvalidInput(validator.MissingProfileFields)
	}

	skills := make(datatypes.JSONSlice[string], 0, len(req.Skills))
	skills = append(skills, req.Skills...)

	projects := make(datatypes.JSONSlice[entity.Project], 0, len(req.Projects))
	for _, project := range req.Projects {
		links := make([]string, 0, len(project.Links))
		projects = append(projects, entity.Project{
			Title:       project.Title,
			Description: project.Description,
			Links:       append(links, project.Links...),
		})
	}

	return &entity.Profile{
		Name:      req.Name,
		Email:     req.Email,
		Education: normalizeOptional(req.Education),
		Skills:    skills,
		Projects:  projects,
	}, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	if strings.TrimSpace(*value) == "" {
		return nil
	}

	result := *value
	return &result
}

func isControl(r rune) bool {
	return r < 0x20
}
