package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mediarepo/admin-api/apptoken"
	"github.com/mediarepo/admin-api/domain"
	"github.com/mediarepo/admin-api/feed"
	"github.com/mediarepo/admin-api/middleware"
	"github.com/mediarepo/admin-api/services"
)

const testSessionCookie = middleware.DefaultSessionCookie

// testHarness wires the full route table over in-memory fakes.
type testHarness struct {
	echo     *echo.Echo
	tokens   *apptoken.Service
	external *fakeVerifier
	sessions *fakeSessionAuth
	medias   *fakeMediaRepo
	types    *fakeTypeRepo
}

func newTestHarness(secret []byte) *testHarness {
	tokens := apptoken.NewService(secret)
	external := &fakeVerifier{subjects: map[string]string{}}
	sessions := &fakeSessionAuth{users: map[string]string{}}
	medias := &fakeMediaRepo{}
	types := &fakeTypeRepo{items: map[string]*domain.ReactionType{}}
	reactions := &fakeReactionRepo{}
	participants := &fakeParticipantRepo{items: map[string]*domain.Participant{}}
	comments := &fakeCommentRepo{items: map[string]*domain.Comment{}}

	server := NewServer(
		tokens,
		external,
		nil,
		middleware.NewResolver(tokens, sessions),
		sessions,
		feed.NewPaginator(medias),
		services.NewReactionService(types, reactions, nil),
		medias,
		participants,
		types,
		comments,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	return &testHarness{
		echo:     e,
		tokens:   tokens,
		external: external,
		sessions: sessions,
		medias:   medias,
		types:    types,
	}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.echo.ServeHTTP(rec, req)
	return rec
}

// bearerFor mints a bridge token for the given subject.
func (h *testHarness) bearerFor(subject string) string {
	issued, err := h.tokens.Issue(subject, 0)
	if err != nil {
		panic(err)
	}
	return "Bearer " + issued.Token
}

func jsonRequest(method, target, body string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

type fakeVerifier struct {
	subjects map[string]string
}

func (v *fakeVerifier) VerifySubject(_ context.Context, token string) (string, error) {
	subject, ok := v.subjects[token]
	if !ok {
		return "", errors.New("unknown external token")
	}
	return subject, nil
}

type fakeSessionAuth struct {
	users map[string]string // cookie value -> user id
}

func (a *fakeSessionAuth) UserID(c echo.Context) (string, error) {
	cookie, err := c.Cookie(testSessionCookie)
	if err != nil {
		return "", nil
	}
	return a.users[cookie.Value], nil
}

type fakeMediaRepo struct {
	mu    sync.Mutex
	items []*domain.Media
}

func (r *fakeMediaRepo) Create(_ context.Context, media *domain.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, media)
	return nil
}

func (r *fakeMediaRepo) GetByID(_ context.Context, id string) (*domain.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeMediaRepo) Update(ctx context.Context, media *domain.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.items {
		if m.ID == media.ID {
			r.items[i] = media
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMediaRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, m := range r.items {
		if m.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeMediaRepo) List(_ context.Context) ([]*domain.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Media, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *fakeMediaRepo) ListArchived(_ context.Context, participantID string) ([]*domain.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Media
	for _, m := range r.items {
		if !m.IsFlagged {
			continue
		}
		if participantID != "" && m.ParticipantID != participantID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMediaRepo) ListEligible(_ context.Context, filter domain.MediaFilter) ([]*domain.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Media
	for _, m := range r.items {
		if m.IsFlagged {
			continue
		}
		if filter.ParticipantID != "" && m.ParticipantID != filter.ParticipantID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMediaRepo) IncrementViewCount(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ID == id {
			m.ViewCount++
			return m.ViewCount, nil
		}
	}
	return 0, domain.ErrNotFound
}

func (r *fakeMediaRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *fakeMediaRepo) CountPerMonth(_ context.Context, months int) ([]domain.MonthlyCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	buckets := map[[2]int]int64{}
	cutoff := time.Now().UTC().AddDate(0, -months, 0)
	for _, m := range r.items {
		if m.CreatedAt.Before(cutoff) {
			continue
		}
		buckets[[2]int{m.CreatedAt.Year(), int(m.CreatedAt.Month())}]++
	}
	out := make([]domain.MonthlyCount, 0, len(buckets))
	for key, count := range buckets {
		out = append(out, domain.MonthlyCount{Year: key[0], Month: key[1], Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

type fakeTypeRepo struct {
	mu    sync.Mutex
	items map[string]*domain.ReactionType
}

func (r *fakeTypeRepo) Create(_ context.Context, rt *domain.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rt.ID] = rt
	return nil
}

func (r *fakeTypeRepo) Update(_ context.Context, rt *domain.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rt.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[rt.ID] = rt
	return nil
}

func (r *fakeTypeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (*domain.ReactionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rt, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rt, nil
}

func (r *fakeTypeRepo) List(_ context.Context, activeOnly bool) ([]*domain.ReactionType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ReactionType
	for _, rt := range r.items {
		if activeOnly && !rt.IsActive {
			continue
		}
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

type fakeReactionRepo struct {
	mu    sync.Mutex
	items []*domain.Reaction
}

func (r *fakeReactionRepo) find(mediaID, userID, typeID string) *domain.Reaction {
	for _, re := range r.items {
		if re.MediaID == mediaID && re.UserID == userID && re.ReactionTypeID == typeID {
			return re
		}
	}
	return nil
}

func (r *fakeReactionRepo) Upsert(_ context.Context, reaction *domain.Reaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.find(reaction.MediaID, reaction.UserID, reaction.ReactionTypeID); existing != nil {
		if reaction.AuthorName != nil {
			existing.AuthorName = reaction.AuthorName
		}
		return nil
	}
	r.items = append(r.items, reaction)
	return nil
}

func (r *fakeReactionRepo) Exists(_ context.Context, mediaID, userID, typeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(mediaID, userID, typeID) != nil, nil
}

func (r *fakeReactionRepo) CountsByType(_ context.Context, mediaID string) ([]domain.TypeCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, re := range r.items {
		if re.MediaID == mediaID {
			counts[re.ReactionTypeID]++
		}
	}
	out := make([]domain.TypeCount, 0, len(counts))
	for typeID, count := range counts {
		out = append(out, domain.TypeCount{ReactionTypeID: typeID, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReactionTypeID < out[j].ReactionTypeID })
	return out, nil
}

func (r *fakeReactionRepo) ListUserTypeIDs(_ context.Context, mediaID, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, re := range r.items {
		if re.MediaID == mediaID && re.UserID == userID {
			out = append(out, re.ReactionTypeID)
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) ListRecent(_ context.Context, mediaID string, limit int) ([]*domain.Reaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Reaction
	for i := len(r.items) - 1; i >= 0 && len(out) < limit; i-- {
		if r.items[i].MediaID == mediaID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func (r *fakeReactionRepo) DeleteByUser(_ context.Context, mediaID, userID, typeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[:0]
	for _, re := range r.items {
		match := re.MediaID == mediaID && re.UserID == userID &&
			(typeID == "" || re.ReactionTypeID == typeID)
		if !match {
			kept = append(kept, re)
		}
	}
	r.items = kept
	return nil
}

type fakeParticipantRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Participant
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) GetByID(_ context.Context, id string) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeParticipantRepo) Update(_ context.Context, p *domain.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = p
	return nil
}

func (r *fakeParticipantRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeParticipantRepo) List(_ context.Context) ([]*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Participant, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeParticipantRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type fakeCommentRepo struct {
	mu    sync.Mutex
	order []string
	items map[string]*domain.Comment
}

func (r *fakeCommentRepo) Create(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *fakeCommentRepo) ListByMedia(_ context.Context, mediaID string, limit int) ([]*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Comment
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		c, ok := r.items[r.order[i]]
		if ok && c.MediaID == mediaID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
