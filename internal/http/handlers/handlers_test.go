package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/go-chi/chi/v5"

	"github.com/ngoriel/portfolio-api/internal/domain"
	"github.com/ngoriel/portfolio-api/internal/http/handlers"
	"github.com/ngoriel/portfolio-api/internal/service"
	"github.com/ngoriel/portfolio-api/pkg/config"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // id -> user
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		copy := *u
		return &copy, nil
	}
	return nil, nil
}

func (m *mockUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("no such user")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *mockUserRepo) EnsureAdmin(_ context.Context, email, name, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	u := &domain.User{
		ID:           fmt.Sprintf("user-%d", len(m.users)+1),
		Role:         domain.RoleAdmin,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	copy := *u
	return &copy, nil
}

// mockSettingsRepo mirrors the replace-section UPDATE: submitted sections
// overwrite, nil sections keep the stored value.
type mockSettingsRepo struct {
	mu  sync.Mutex
	doc *domain.Settings
}

func newMockSettingsRepo() *mockSettingsRepo {
	return &mockSettingsRepo{}
}

func (m *mockSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, fmt.Errorf("settings row missing")
	}
	copy := *m.doc
	return &copy, nil
}

func (m *mockSettingsRepo) ApplyUpdate(_ context.Context, upd *domain.SettingsUpdate) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return nil, fmt.Errorf("settings row missing")
	}
	if upd.ContactInfo != nil {
		m.doc.ContactInfo = *upd.ContactInfo
	}
	if upd.ButtonLabels != nil {
		m.doc.ButtonLabels = upd.ButtonLabels
	}
	if upd.Categories != nil {
		m.doc.Categories = upd.Categories
	}
	if upd.EmailProvider != nil {
		m.doc.EmailProvider = *upd.EmailProvider
	}
	if upd.Animations != nil {
		m.doc.Animations = upd.Animations
	}
	m.doc.UpdatedAt = time.Now()
	copy := *m.doc
	return &copy, nil
}

func (m *mockSettingsRepo) Seed(_ context.Context, defaults *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		copy := *defaults
		m.doc = &copy
	}
	return nil
}

type mockGalleryRepo struct {
	mu     sync.Mutex
	nextID int
	images []domain.GalleryImage
}

func newMockGalleryRepo() *mockGalleryRepo {
	return &mockGalleryRepo{nextID: 1}
}

func (m *mockGalleryRepo) List(_ context.Context, category string) ([]domain.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.GalleryImage{}
	for _, img := range m.images {
		if category == "" || img.Category == category {
			out = append(out, img)
		}
	}
	return out, nil
}

func (m *mockGalleryRepo) Create(_ context.Context, in *domain.CreateImageRequest) (*domain.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	img := domain.GalleryImage{
		ID:        fmt.Sprintf("img-%d", m.nextID),
		URL:       in.URL,
		Title:     in.Title,
		Category:  in.Category,
		SortOrder: len(m.images),
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.images = append(m.images, img)
	return &img, nil
}

func (m *mockGalleryRepo) Update(_ context.Context, id string, in *domain.UpdateImageRequest) (*domain.GalleryImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.images {
		if m.images[i].ID == id {
			if in.URL != nil {
				m.images[i].URL = *in.URL
			}
			if in.Title != nil {
				m.images[i].Title = *in.Title
			}
			if in.Category != nil {
				m.images[i].Category = *in.Category
			}
			img := m.images[i]
			return &img, nil
		}
	}
	return nil, nil
}

func (m *mockGalleryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.images {
		if m.images[i].ID == id {
			m.images = append(m.images[:i], m.images[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (m *mockGalleryRepo) Reorder(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for i := range m.images {
		if p, ok := pos[m.images[i].ID]; ok {
			m.images[i].SortOrder = p
		}
	}
	return nil
}

type mockVideoRepo struct {
	mu     sync.Mutex
	nextID int
	videos []domain.Video
}

func newMockVideoRepo() *mockVideoRepo {
	return &mockVideoRepo{nextID: 1}
}

func (m *mockVideoRepo) List(_ context.Context, category string) ([]domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Video{}
	for _, v := range m.videos {
		if category == "" || v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVideoRepo) Create(_ context.Context, in *domain.CreateVideoRequest) (*domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := domain.Video{
		ID:        fmt.Sprintf("vid-%d", m.nextID),
		Title:     in.Title,
		EmbedURL:  in.EmbedURL,
		VimeoID:   in.VimeoID,
		Category:  in.Category,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.videos = append(m.videos, v)
	return &v, nil
}

func (m *mockVideoRepo) Update(_ context.Context, id string, in *domain.UpdateVideoRequest) (*domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.videos {
		if m.videos[i].ID == id {
			if in.Title != nil {
				m.videos[i].Title = *in.Title
			}
			if in.EmbedURL != nil {
				m.videos[i].EmbedURL = *in.EmbedURL
			}
			if in.VimeoID != nil {
				m.videos[i].VimeoID = *in.VimeoID
			}
			if in.Category != nil {
				m.videos[i].Category = *in.Category
			}
			v := m.videos[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (m *mockVideoRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.videos {
		if m.videos[i].ID == id {
			m.videos = append(m.videos[:i], m.videos[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found")
}

type mockContactRepo struct {
	mu       sync.Mutex
	nextID   int
	messages []domain.ContactMessage
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{nextID: 1}
}

func (m *mockContactRepo) Create(_ context.Context, in *domain.ContactRequest, ip, country, city string) (*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := domain.ContactMessage{
		ID:          fmt.Sprintf("msg-%d", m.nextID),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		BookingDate: in.BookingDate,
		Venue:       in.Venue,
		Message:     in.Message,
		IPAddress:   ip,
		Country:     country,
		City:        city,
		CreatedAt:   time.Now(),
	}
	m.nextID++
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			copy := msg
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockContactRepo) List(_ context.Context) ([]domain.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ContactMessage, len(m.messages))
	// newest first
	for i, msg := range m.messages {
		out[len(m.messages)-1-i] = msg
	}
	return out, nil
}

func (m *mockContactRepo) MarkRead(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages[i].IsRead = true
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (m *mockContactRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("not found")
}

type mockVisitorRepo struct {
	mu       sync.Mutex
	nextID   int
	visitors []domain.Visitor
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{nextID: 1}
}

func (m *mockVisitorRepo) Create(_ context.Context, v *domain.Visitor) (*domain.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := *v
	out.ID = fmt.Sprintf("visit-%d", m.nextID)
	out.VisitStart = time.Now()
	m.nextID++
	m.visitors = append(m.visitors, out)
	return &out, nil
}

func (m *mockVisitorRepo) Finish(_ context.Context, id string, durationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.visitors {
		if m.visitors[i].ID == id {
			now := time.Now()
			d := durationSeconds
			m.visitors[i].VisitEnd = &now
			m.visitors[i].DurationSeconds = &d
			return nil
		}
	}
	return fmt.Errorf("not found")
}

func (m *mockVisitorRepo) List(_ context.Context, limit int, from, to *time.Time) ([]domain.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Visitor{}
	for _, v := range m.visitors {
		if len(out) >= limit {
			break
		}
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVisitorRepo) Stats(_ context.Context) (*domain.VisitorStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &domain.VisitorStats{
		TotalVisitors: len(m.visitors),
		TopCountries:  []domain.CountryCount{},
		TopPages:      []domain.PageCount{},
	}, nil
}

type mockMailer struct {
	mu           sync.Mutex
	lastInbox    string
	lastReplyTo  string
	lastReply    string
	notification *domain.ContactMessage
	sendErr      error
}

func (m *mockMailer) SendContactNotification(inbox string, msg *domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastInbox = inbox
	m.notification = msg
	return m.sendErr
}

func (m *mockMailer) SendReply(toEmail, toName, originalMessage, replyText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastReplyTo = toEmail
	m.lastReply = replyText
	return m.sendErr
}

func (m *mockMailer) SendTestEmail(toEmail string) error {
	return m.sendErr
}

type mockPublisher struct {
	mu       sync.Mutex
	subjects []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// ---------- Test fixture ----------

const (
	testAdminEmail    = "info@example.com"
	testAdminPassword = "admin123"
)

type fixture struct {
	router  *chi.Mux
	mailer  *mockMailer
	bus     *mockPublisher
	contact *mockContactRepo
	gallery *mockGalleryRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTL = time.Hour
	cfg.Admin.Email = testAdminEmail
	cfg.Admin.Password = testAdminPassword
	cfg.Admin.Name = "Test Admin"

	userRepo := newMockUserRepo()
	settingsRepo := newMockSettingsRepo()
	galleryRepo := newMockGalleryRepo()
	videoRepo := newMockVideoRepo()
	contactRepo := newMockContactRepo()
	visitorRepo := newMockVisitorRepo()
	mail := &mockMailer{}
	bus := &mockPublisher{}

	authSvc := service.NewAuthService(userRepo, cfg)
	settingsSvc := service.NewSettingsService(settingsRepo, mail, bus)
	mediaSvc := service.NewMediaService(galleryRepo, videoRepo)
	contactSvc := service.NewContactService(contactRepo, mail, bus)
	analyticsSvc := service.NewAnalyticsService(visitorRepo, bus)

	ctx := context.Background()
	hash, err := argon2id.CreateHash(testAdminPassword, argon2id.DefaultParams)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := userRepo.EnsureAdmin(ctx, testAdminEmail, "Test Admin", hash); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if err := settingsSvc.Seed(ctx); err != nil {
		t.Fatalf("seed settings: %v", err)
	}

	h := handlers.New(authSvc, settingsSvc, mediaSvc, contactSvc, analyticsSvc, cfg)
	requireAdmin := h.RequireJWT(domain.RoleAdmin)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.Login)
		r.With(requireAdmin).Get("/auth/profile", h.Profile)
		r.With(requireAdmin).Post("/auth/password", h.UpdatePassword)

		r.Get("/settings/public", h.PublicSettings)
		r.With(requireAdmin).Get("/settings", h.GetSettings)
		r.With(requireAdmin).Put("/settings", h.UpdateSettings)
		r.With(requireAdmin).Post("/settings/test-email", h.TestEmail)

		r.Route("/gallery", func(r chi.Router) {
			r.Get("/", h.ListGallery)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.CreateImage)
				r.Put("/reorder", h.ReorderGallery)
				r.Put("/{id}", h.UpdateImage)
				r.Delete("/{id}", h.DeleteImage)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/", h.CreateVideo)
				r.Put("/{id}", h.UpdateVideo)
				r.Delete("/{id}", h.DeleteVideo)
			})
		})

		r.Post("/contact", h.SubmitContact)
		r.With(requireAdmin).Get("/contact", h.ListContact)
		r.With(requireAdmin).Post("/contact/{id}/read", h.MarkContactRead)
		r.With(requireAdmin).Post("/contact/{id}/reply", h.ReplyContact)
		r.With(requireAdmin).Delete("/contact/{id}", h.DeleteContact)

		r.Post("/analytics/visit", h.LogVisit)
		r.Put("/analytics/visit/{id}", h.FinishVisit)
		r.With(requireAdmin).Get("/analytics/visitors", h.ListVisitors)
		r.With(requireAdmin).Get("/analytics/stats", h.VisitorStats)
	})

	return &fixture{
		router:  r,
		mailer:  mail,
		bus:     bus,
		contact: contactRepo,
		gallery: galleryRepo,
	}
}

func (f *fixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) login(t *testing.T) string {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    testAdminEmail,
		"password": testAdminPassword,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	return resp.AccessToken
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
