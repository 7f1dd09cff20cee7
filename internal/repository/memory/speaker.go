package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"eventmanagement/internal/domain"
)

type speakerRepository struct {
	store *Store
}

// NewSpeakerRepository returns a SpeakerRepository backed by the given store.
func NewSpeakerRepository(store *Store) domain.SpeakerRepository {
	return &speakerRepository{store: store}
}

func (r *speakerRepository) Create(ctx context.Context, speaker *domain.Speaker) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	speaker.ID = uuid.NewString()
	cp := *speaker
	r.store.speakers[speaker.ID] = &cp
	return nil
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	speaker, ok := r.store.speakers[id]
	if !ok {
		return nil, &domain.NotFoundError{Resource: "speaker", ID: id}
	}
	cp := *speaker
	return &cp, nil
}

func (r *speakerRepository) List(ctx context.Context, p domain.PaginationParams) ([]*domain.Speaker, int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := make([]*domain.Speaker, 0, len(r.store.speakers))
	for _, speaker := range r.store.speakers {
		cp := *speaker
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, p), len(all), nil
}
