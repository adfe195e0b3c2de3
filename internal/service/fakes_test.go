package service

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Bozotek/pickaguide-api/internal/model"
)

// In-memory repositories mirroring the Postgres behavior the services rely
// on: sql.ErrNoRows on a miss, a 23505 pgconn error on a duplicate email.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*model.User
	near  []model.GuideProfile
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Account.Email == user.Account.Email {
			return uuid.Nil, &pgconn.PgError{Code: "23505"}
		}
	}
	// The id is assigned here and only returned, never written back to the
	// caller's struct, matching the column default on the real table.
	clone := *user
	clone.ID = uuid.New()
	f.users[clone.ID] = &clone
	return clone.ID, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Account.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindByResetToken(ctx context.Context, token string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Account.ResetPasswordToken != nil && *user.Account.ResetPasswordToken == token {
			clone := *user
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]model.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserRepo) Save(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return sql.ErrNoRows
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Account.Email == user.Account.Email {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Account.SessionToken = token
	}
	return nil
}

func (f *fakeUserRepo) SetRating(ctx context.Context, id uuid.UUID, rating *float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.Profile.Rating = rating
	}
	return nil
}

func (f *fakeUserRepo) SetBlocking(ctx context.Context, id uuid.UUID, blocking bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.IsBlocking = blocking
	}
	return nil
}

func (f *fakeUserRepo) SetGuide(ctx context.Context, id uuid.UUID, guide bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		user.IsGuide = guide
	}
	return nil
}

func (f *fakeUserRepo) FindNear(ctx context.Context, lat, lng, maxDistance float64) ([]model.GuideProfile, error) {
	return f.near, nil
}

func (f *fakeUserRepo) SearchConfirmed(ctx context.Context, tokens []string) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []model.User
	for _, user := range f.users {
		if !user.Account.EmailConfirmed {
			continue
		}
		if matchesAnyToken(user, tokens) {
			users = append(users, *user)
		}
	}
	return users, nil
}

func matchesAnyToken(user *model.User, tokens []string) bool {
	haystack := strings.ToLower(user.Profile.FirstName + " " + user.Profile.LastName)
	if user.Profile.Description != nil {
		haystack += " " + strings.ToLower(*user.Profile.Description)
	}
	haystack += " " + strings.ToLower(strings.Join(user.Profile.Interests, " "))
	for _, token := range tokens {
		if strings.Contains(haystack, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

type fakeAdvertRepo struct {
	mu      sync.Mutex
	adverts map[uuid.UUID]*model.Advert
}

func newFakeAdvertRepo() *fakeAdvertRepo {
	return &fakeAdvertRepo{adverts: make(map[uuid.UUID]*model.Advert)}
}

func (f *fakeAdvertRepo) Create(ctx context.Context, advert *model.Advert) (*model.Advert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	advert.ID = uuid.New()
	advert.CreatedAt = time.Now()
	advert.UpdatedAt = advert.CreatedAt
	clone := *advert
	f.adverts[advert.ID] = &clone
	return advert, nil
}

func (f *fakeAdvertRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Advert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	advert, ok := f.adverts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *advert
	return &clone, nil
}

func (f *fakeAdvertRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Advert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var adverts []model.Advert
	for _, advert := range f.adverts {
		if advert.OwnerID == ownerID {
			adverts = append(adverts, *advert)
		}
	}
	return adverts, nil
}

func (f *fakeAdvertRepo) FindIDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, advert := range f.adverts {
		if advert.OwnerID == ownerID {
			ids = append(ids, advert.ID)
		}
	}
	return ids, nil
}

func (f *fakeAdvertRepo) ListActive(ctx context.Context) ([]model.Advert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	adverts := []model.Advert{}
	for _, advert := range f.adverts {
		if advert.Active {
			adverts = append(adverts, *advert)
		}
	}
	return adverts, nil
}

func (f *fakeAdvertRepo) Update(ctx context.Context, advert *model.Advert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.adverts[advert.ID]; !ok {
		return sql.ErrNoRows
	}
	clone := *advert
	f.adverts[advert.ID] = &clone
	return nil
}

func (f *fakeAdvertRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if advert, ok := f.adverts[id]; ok {
		advert.Active = active
	}
	return nil
}

func (f *fakeAdvertRepo) DeactivateAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, advert := range f.adverts {
		if advert.OwnerID == ownerID {
			advert.Active = false
		}
	}
	return nil
}

func (f *fakeAdvertRepo) DeleteAllForOwner(ctx context.Context, ownerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, advert := range f.adverts {
		if advert.OwnerID == ownerID {
			delete(f.adverts, id)
		}
	}
	return nil
}

func (f *fakeAdvertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.adverts, id)
	return nil
}

type fakeVisitRepo struct {
	mu      sync.Mutex
	visits  map[uuid.UUID]*model.Visit
	adverts *fakeAdvertRepo
}

func newFakeVisitRepo(adverts *fakeAdvertRepo) *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[uuid.UUID]*model.Visit), adverts: adverts}
}

func (f *fakeVisitRepo) Create(ctx context.Context, visit *model.Visit) (*model.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	visit.ID = uuid.New()
	visit.CreatedAt = time.Now()
	visit.UpdatedAt = visit.CreatedAt
	clone := *visit
	f.visits[visit.ID] = &clone
	return visit, nil
}

func (f *fakeVisitRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	visit, ok := f.visits[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *visit
	return &clone, nil
}

func (f *fakeVisitRepo) FindByVisitor(ctx context.Context, visitorID uuid.UUID) ([]model.Visit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var visits []model.Visit
	for _, visit := range f.visits {
		if visit.VisitorID == visitorID {
			visits = append(visits, *visit)
		}
	}
	return visits, nil
}

func (f *fakeVisitRepo) FindByGuide(ctx context.Context, guideID uuid.UUID) ([]model.Visit, error) {
	ids, _ := f.adverts.FindIDsByOwner(ctx, guideID)
	owned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var visits []model.Visit
	for _, visit := range f.visits {
		if owned[visit.AdvertID] {
			visits = append(visits, *visit)
		}
	}
	return visits, nil
}

func (f *fakeVisitRepo) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if visit, ok := f.visits[id]; ok {
		visit.Status = status
	}
	return nil
}

func (f *fakeVisitRepo) SetVisitorRate(ctx context.Context, id uuid.UUID, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if visit, ok := f.visits[id]; ok {
		visit.VisitorRate = &rate
	}
	return nil
}

func (f *fakeVisitRepo) SetGuideRate(ctx context.Context, id uuid.UUID, rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if visit, ok := f.visits[id]; ok {
		visit.GuideRate = &rate
	}
	return nil
}

func (f *fakeVisitRepo) DenyPendingForGuide(ctx context.Context, guideID uuid.UUID) error {
	ids, _ := f.adverts.FindIDsByOwner(ctx, guideID)
	owned := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		owned[id] = true
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, visit := range f.visits {
		if owned[visit.AdvertID] && visit.Status == model.VisitStatusPending {
			visit.Status = model.VisitStatusDenied
		}
	}
	return nil
}

func (f *fakeVisitRepo) CancelAllForVisitor(ctx context.Context, visitorID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, visit := range f.visits {
		if visit.VisitorID != visitorID {
			continue
		}
		if visit.Status == model.VisitStatusPending || visit.Status == model.VisitStatusAccepted {
			visit.Status = model.VisitStatusCancelled
		}
	}
	return nil
}

func (f *fakeVisitRepo) FindRated(ctx context.Context, userID uuid.UUID, advertIDs []uuid.UUID) ([]model.RatedVisit, error) {
	owned := make(map[uuid.UUID]bool, len(advertIDs))
	for _, id := range advertIDs {
		owned[id] = true
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	var rated []model.RatedVisit
	for _, visit := range f.visits {
		advertSide := owned[visit.AdvertID] && visit.VisitorRate != nil
		guideSide := visit.VisitorID == userID && visit.GuideRate != nil
		if advertSide || guideSide {
			rated = append(rated, model.RatedVisit{
				ID:          visit.ID,
				VisitorID:   visit.VisitorID,
				VisitorRate: visit.VisitorRate,
				GuideRate:   visit.GuideRate,
				SystemRate:  visit.SystemRate,
			})
		}
	}
	return rated, nil
}

type fakeBlacklistRepo struct {
	mu     sync.Mutex
	emails map[string]bool
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{emails: make(map[string]bool)}
}

func (f *fakeBlacklistRepo) Add(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emails[email] = true
	return nil
}

func (f *fakeBlacklistRepo) Contains(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emails[email], nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*model.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.New()
	f.seq++
	comment.CreatedAt = time.Unix(int64(f.seq), 0)
	if comment.LikedBy == nil {
		comment.LikedBy = model.StringList{}
	}
	clone := *comment
	f.comments[comment.ID] = &clone
	return comment, nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment, ok := f.comments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *comment
	return &clone, nil
}

func (f *fakeCommentRepo) FindByAdvert(ctx context.Context, advertID uuid.UUID) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	comments := []model.Comment{}
	for _, comment := range f.comments {
		if comment.AdvertID == advertID {
			comments = append(comments, *comment)
		}
	}
	for i := range comments {
		for j := i + 1; j < len(comments); j++ {
			if comments[j].CreatedAt.Before(comments[i].CreatedAt) {
				comments[i], comments[j] = comments[j], comments[i]
			}
		}
	}
	return comments, nil
}

func (f *fakeCommentRepo) SetLikedBy(ctx context.Context, id uuid.UUID, likedBy model.StringList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if comment, ok := f.comments[id]; ok {
		comment.LikedBy = likedBy
	}
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteAllForAdvert(ctx context.Context, advertID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, comment := range f.comments {
		if comment.AdvertID == advertID {
			delete(f.comments, id)
		}
	}
	return nil
}

type publishedEvent struct {
	subject string
	user    model.User
	url     string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishUserRegistered(user *model.User, confirmURL string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{subject: "user.registered", user: *user, url: confirmURL})
	return nil
}

func (f *fakePublisher) PublishPasswordReset(user *model.User, resetURL string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{subject: "user.password_reset", user: *user, url: resetURL})
	return nil
}

type storedObject struct {
	data        []byte
	contentType string
}

type fakeObjectStore struct {
	mu      sync.Mutex
	objects map[string]storedObject
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: make(map[string]storedObject)}
}

func (f *fakeObjectStore) Store(ctx context.Context, key string, body io.Reader, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = storedObject{data: data, contentType: contentType}
	return nil
}

func (f *fakeObjectStore) Retrieve(ctx context.Context, key string) (io.ReadCloser, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	object, ok := f.objects[key]
	if !ok {
		return nil, "", sql.ErrNoRows
	}
	return io.NopCloser(bytes.NewReader(object.data)), object.contentType, nil
}

func (f *fakeObjectStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeObjectStore) PresignUpload(ctx context.Context, key string) (string, error) {
	return "https://uploads.example.com/" + key, nil
}
