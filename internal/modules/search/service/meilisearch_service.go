package search

import (
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"anoa.com/apiplayground/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const profilesIndex = "profiles"

type MeiliSearchService interface {
	IndexProfile(profile *entity.Profile) error
	DeleteProfile(id uint) error
	SearchProfiles(query string, limit int64) ([]ProfileHit, error)
}

// ProfileHit is one search result as stored in the index.
type ProfileHit struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Education     string   `json:"education"`
	Skills        []string `json:"skills"`
	ProjectTitles []string `json:"project_titles"`
}

type meiliSearchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

// NewClient normalises host the same way for every caller.
func NewClient(host, apiKey string) meilisearch.ServiceManager {
	if !strings.HasPrefix(host, "http") {
		host = "http://" + host + ":7700"
	}
	return meilisearch.New(host, meilisearch.WithAPIKey(apiKey))
}

func (s *meiliSearchService) initIndexes() {
	if _, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        profilesIndex,
		PrimaryKey: "id",
	}); err != nil {
		slog.Warn("failed to create profiles index", "err", err)
	}

	searchable := []string{"name", "skills", "project_titles", "project_text", "education", "email"}
	if _, err := s.client.Index(profilesIndex).UpdateSearchableAttributes(&searchable); err != nil {
		slog.Warn("failed to update profiles searchable attributes", "err", err)
	}

	slog.Info("meilisearch indexes initialized")
}

type meiliProfileDoc struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Education     string   `json:"education"`
	Skills        []string `json:"skills"`
	ProjectTitles []string `json:"project_titles"`
	ProjectText   string   `json:"project_text"`
}

func (s *meiliSearchService) cleanContentForIndex(content string) string {
	// Block tags become spaces so words don't merge
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *meiliSearchService) toDocument(p *entity.Profile) meiliProfileDoc {
	doc := meiliProfileDoc{
		ID:            p.ID,
		Name:          s.cleanContentForIndex(p.Name),
		Email:         p.Email,
		Skills:        make([]string, 0, len(p.Skills)),
		ProjectTitles: make([]string, 0, len(p.Projects)),
	}
	if p.Education != nil {
		doc.Education = s.cleanContentForIndex(*p.Education)
	}
	for _, skill := range p.Skills {
		doc.Skills = append(doc.Skills, s.cleanContentForIndex(skill))
	}

	var text []string
	for _, project := range p.Projects {
		doc.ProjectTitles = append(doc.ProjectTitles, s.cleanContentForIndex(project.Title))
		text = append(text, project.Title, project.Description)
	}
	doc.ProjectText = s.cleanContentForIndex(strings.Join(text, " "))

	return doc
}

func (s *meiliSearchService) IndexProfile(p *entity.Profile) error {
	doc := s.toDocument(p)

	task, err := s.client.Index(profilesIndex).AddDocuments([]meiliProfileDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	slog.Debug("indexed profile", "profile_id", p.ID, "task_uid", task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeleteProfile(id uint) error {
	_, err := s.client.Index(profilesIndex).DeleteDocument(strconv.FormatUint(uint64(id), 10))
	return err
}

func (s *meiliSearchService) SearchProfiles(query string, limit int64) ([]ProfileHit, error) {
	raw, err := s.client.Index(profilesIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []ProfileHit `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	hits := make([]ProfileHit, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if hit.Skills == nil {
			hit.Skills = []string{}
		}
		if hit.ProjectTitles == nil {
			hit.ProjectTitles = []string{}
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func strPtr(s string) *string {
	return &s
}
