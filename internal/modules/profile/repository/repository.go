package repository

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"anoa.com/apiplayground/internal/entity"
	"anoa.com/apiplayground/pkg/apperror"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	msgProfileNotFound = "Profile not found"
	msgEmailExists     = "Email already exists"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	// FindAll returns every profile, or only those whose serialized skills
	// contain skill as a case-sensitive substring.
	FindAll(ctx context.Context, skill string) ([]*entity.Profile, error)
	FindByID(ctx context.Context, id uint) (*entity.Profile, error)
	// FindByProjectText returns profiles whose serialized projects contain
	// query, ignoring case.
	FindByProjectText(ctx context.Context, query string) ([]*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Profile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) FindAll(ctx context.Context, skill string) ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	query := r.db.WithContext(ctx).Order("id ASC")

	if skill != "" {
		query = query.Where("skills::text LIKE ?", "%"+EscapeLike(skill)+"%")
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*entity.Profile, error) {
	var profile entity.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &profile, nil
}

func (r *repository) FindByProjectText(ctx context.Context, query string) ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	if err := r.db.WithContext(ctx).
		Where("projects::text ILIKE ?", "%"+EscapeLike(query)+"%").
		Order("id ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) Create(ctx context.Context, profile *entity.Profile) error {
	profile.ID = 0
	return translateError(r.db.WithContext(ctx).Create(profile).Error)
}

func (r *repository) Update(ctx context.Context, profile *entity.Profile) error {
	profile.Normalize()
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&entity.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]any{
			"name":       profile.Name,
			"email":      profile.Email,
			"education":  profile.Education,
			"skills":     profile.Skills,
			"projects":   profile.Projects,
			"updated_at": now,
		})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(msgProfileNotFound)
	}

	profile.UpdatedAt = now
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Profile{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound(msgProfileNotFound)
	}
	return nil
}

// EscapeLike makes s match literally inside a LIKE pattern.
func EscapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(msgProfileNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return apperror.New(http.StatusConflict, msgEmailExists, errors.Join(apperror.ErrConflict, err))
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
