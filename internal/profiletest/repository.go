// Package profiletest provides an in-memory profile repository for tests.
package profiletest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"anoa.com/apiplayground/internal/entity"
	"anoa.com/apiplayground/internal/modules/profile/repository"
	"anoa.com/apiplayground/pkg/apperror"
)

var _ repository.Repository = (*Repository)(nil)

// Repository keeps profiles in a map and mimics the Postgres repository:
// unique emails, substring matching over the jsonb text of the columns
// and not-found errors on missing ids.
type Repository struct {
	mu       sync.Mutex
	nextID   uint
	profiles map[uint]*entity.Profile

	// Err, when set, is returned by every call.
	Err error
}

func NewRepository() *Repository {
	return &Repository{nextID: 1, profiles: map[uint]*entity.Profile{}}
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.profiles)), nil
}

func (r *Repository) FindAll(ctx context.Context, skill string) ([]*entity.Profile, error) {
	return r.filter(func(p *entity.Profile) bool {
		return skill == "" || strings.Contains(serialize(p.Skills), skill)
	})
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	p, ok := r.profiles[id]
	if !ok {
		return nil, apperror.NotFound("Profile not found")
	}
	return clone(p), nil
}

func (r *Repository) FindByProjectText(ctx context.Context, query string) ([]*entity.Profile, error) {
	needle := strings.ToLower(query)
	return r.filter(func(p *entity.Profile) bool {
		return strings.Contains(strings.ToLower(serialize(p.Projects)), needle)
	})
}

func (r *Repository) Create(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if r.emailTaken(profile.Email, 0) {
		return conflict()
	}

	now := time.Now()
	profile.Normalize()
	profile.ID = r.nextID
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.nextID++
	r.profiles[profile.ID] = clone(profile)
	return nil
}

func (r *Repository) Update(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	existing, ok := r.profiles[profile.ID]
	if !ok {
		return apperror.NotFound("Profile not found")
	}
	if r.emailTaken(profile.Email, profile.ID) {
		return conflict()
	}

	profile.Normalize()
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now()
	r.profiles[profile.ID] = clone(profile)
	return nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.profiles[id]; !ok {
		return apperror.NotFound("Profile not found")
	}
	delete(r.profiles, id)
	return nil
}

func (r *Repository) filter(keep func(*entity.Profile) bool) ([]*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}

	var out []*entity.Profile
	for id := uint(1); id < r.nextID; id++ {
		p, ok := r.profiles[id]
		if ok && keep(p) {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

func (r *Repository) emailTaken(email string, except uint) bool {
	for id, p := range r.profiles {
		if id != except && p.Email == email {
			return true
		}
	}
	return false
}

func conflict() error {
	return apperror.New(http.StatusConflict, "Email already exists", apperror.ErrConflict)
}

// serialize renders v the way Postgres prints a jsonb value as text:
// ", " between elements, ": " after keys, and object keys ordered by
// length and then bytewise.
func serialize(v any) string {
	raw, _ := json.Marshal(v)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var value any
	_ = dec.Decode(&value)

	var b strings.Builder
	writeJSONB(&b, value)
	return b.String()
}

func writeJSONB(b *strings.Builder, v any) {
	switch v := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) < len(keys[j])
			}
			return keys[i] < keys[j]
		})
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			writeJSONB(b, k)
			b.WriteString(": ")
			writeJSONB(b, v[k])
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			writeJSONB(b, elem)
		}
		b.WriteByte(']')
	case string:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(v)
		b.WriteString(strings.TrimSuffix(buf.String(), "\n"))
	case json.Number:
		b.WriteString(v.String())
	case bool:
		if v {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	default:
		b.WriteString("null")
	}
}

func clone(p *entity.Profile) *entity.Profile {
	var out entity.Profile
	raw, _ := json.Marshal(p)
	_ = json.Unmarshal(raw, &out)
	out.Normalize()
	return &out
}
