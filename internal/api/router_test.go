package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"pocketcoach/backend/internal/ai"
	"pocketcoach/backend/internal/config"
	"pocketcoach/backend/internal/platform/logger"
	"pocketcoach/backend/internal/service"
	"pocketcoach/backend/internal/validation"
)

type stubProvider struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []ai.Request
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(_ context.Context, req ai.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = append(p.requests, req)
	return p.text, p.err
}

func testConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{MaxUploadBytes: 1 << 20},
		AI: config.AIConfig{
			MealPlanModel:   "gpt-3.5-turbo",
			VisionModel:     "gpt-4o",
			MaxTokens:       800,
			VisionMaxTokens: 600,
			Temperature:     0.7,
			Timeout:         5 * time.Second,
		},
	}
}

// newTestRouter wires the mock-mode services (no database, no object storage) behind the full router.
func newTestRouter(provider ai.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	validation.Register()

	cfg := testConfig()
	log := logger.NewNop()
	router := NewRouter(cfg, log)
	SetupRoutes(router, cfg, log,
		service.NewUserService(nil),
		service.NewPlanService(provider, cfg.AI, log),
		service.NewProgressService(nil, nil, time.Minute, log),
		service.NewInsightService(),
		service.NewAnalysisService(provider, cfg.AI, log),
	)
	return router
}

func doJSON(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

type formFile struct {
	field, name, contentType string
	data                     []byte
}

func doMultipart(router http.Handler, target string, fields map[string]string, files ...formFile) *httptest.ResponseRecorder {
	rec, _ := doMultipartCounted(router, target, fields, files...)
	return rec
}

// doMultipartCounted also reports how many body bytes the server read.
func doMultipartCounted(router http.Handler, target string, fields map[string]string, files ...formFile) (*httptest.ResponseRecorder, int64) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = w.WriteField(k, v)
	}
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.name+`"`)
		if f.contentType != "" {
			h.Set("Content-Type", f.contentType)
		}
		part, _ := w.CreatePart(h)
		_, _ = part.Write(f.data)
	}
	_ = w.Close()

	body := &countingReader{r: &buf}
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, body.n
}

const profileJSON = `{
	"user_id": "u1", "name": "Sam", "age": 31, "gender": "female",
	"height": 168.5, "weight": 150.0, "goal": "lose_fat", "activity_level": "moderate",
	"dietary_preferences": ["vegetarian"], "allergies": [], "meal_frequency": 4,
	"training_experience": "beginner", "training_split": "full_body",
	"training_style": "strength", "equipment": ["dumbbells"]
}`

func TestRootAndHealth(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodGet, "/", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"message":"Pocket Coach API is running!"}`))
	g.Expect(rec.Header().Get(headerRequestID)).NotTo(BeEmpty())

	rec = doJSON(router, http.MethodGet, "/healthz", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(Equal("ok"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	g.Expect(rec.Header().Get(headerRequestID)).To(Equal("req-42"))
}

func TestCreateUserEchoesProfile(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodPost, "/user", profileJSON)
	g.Expect(rec.Code).To(Equal(http.StatusOK))

	var sent, got map[string]interface{}
	g.Expect(json.Unmarshal([]byte(profileJSON), &sent)).To(Succeed())
	g.Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
	for k, v := range sent {
		g.Expect(got).To(HaveKeyWithValue(k, v))
	}
}

func TestCreateUserMissingAgeIsUnprocessable(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	body := strings.Replace(profileJSON, `"age": 31,`, "", 1)
	rec := doJSON(router, http.MethodPost, "/user", body)
	g.Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"detail":[{"loc":["body","age"],"msg":"field required","type":"value_error.missing"}]}`))
}

func TestGetUserReturnsMockProfile(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodGet, "/user/abc", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))

	var got map[string]interface{}
	g.Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
	g.Expect(got).To(HaveKeyWithValue("user_id", "abc"))
}

func TestMockPlanRoutesIgnoreInput(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	a := doJSON(router, http.MethodPost, "/mealplan", `{"user_id":"u1","goal":"lose_fat"}`)
	b := doJSON(router, http.MethodPost, "/mealplan", `{"user_id":"u2","goal":"gain_muscle","allergies":["nuts"],"calorie_target":2500}`)
	g.Expect(a.Code).To(Equal(http.StatusOK))
	g.Expect(a.Body.String()).To(MatchJSON(b.Body.String()))
	g.Expect(a.Body.String()).To(ContainSubstring(`"Monday"`))

	w1 := doJSON(router, http.MethodPost, "/workoutplan", `{"user_id":"u1","goal":"lose_fat","training_experience":"beginner","training_split":"full_body","training_style":"strength"}`)
	w2 := doJSON(router, http.MethodPost, "/workoutplan", `{"user_id":"u2","goal":"gain_muscle","training_experience":"advanced","training_split":"ppl","training_style":"hypertrophy","days_per_week":5}`)
	g.Expect(w1.Code).To(Equal(http.StatusOK))
	g.Expect(w1.Body.String()).To(MatchJSON(w2.Body.String()))

	rec := doJSON(router, http.MethodPost, "/workoutplan", `{"user_id":"u1"}`)
	g.Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
}

func TestWeightRoutes(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodPost, "/progress/weight", `{"user_id":"u1","date":"2024-05-01","weight":180.0}`)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"user_id":"u1","date":"2024-05-01","weight":180.0}`))

	rec = doJSON(router, http.MethodGet, "/progress/weight/u1", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`[
		{"user_id":"u1","date":"2024-05-01","weight":180},
		{"user_id":"u1","date":"2024-05-02","weight":179.5},
		{"user_id":"u1","date":"2024-05-03","weight":179}
	]`))
}

func TestMeasurementRoutes(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodPost, "/progress/measurements", `{"user_id":"u1","date":"2024-05-01","waist":32.5}`)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"user_id":"u1","date":"2024-05-01","waist":32.5}`))

	rec = doJSON(router, http.MethodGet, "/progress/measurements/u1", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`[
		{"user_id":"u1","date":"2024-05-01","waist":34,"chest":40,"hips":38},
		{"user_id":"u1","date":"2024-05-08","waist":33.5,"chest":40,"hips":37.75},
		{"user_id":"u1","date":"2024-05-15","waist":33,"chest":40.25,"hips":37.5}
	]`))
}

func TestInsightRoutes(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodGet, "/ai/feedback/u9", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(ContainSubstring(`"user_id":"u9"`))

	rec = doJSON(router, http.MethodGet, "/ai/prediction/u9", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(ContainSubstring(`"user_id":"u9"`))
}

func TestAIMealPlan(t *testing.T) {
	g := NewWithT(t)
	body := `{"user_id":"u1","goal":"gain_muscle","dietary_preferences":["vegan"]}`

	provider := &stubProvider{text: "Day 1: oats\nDay 2: tofu"}
	rec := doJSON(newTestRouter(provider), http.MethodPost, "/mealplan/ai", body)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"plan":"Day 1: oats\nDay 2: tofu"}`))
	g.Expect(provider.requests).To(HaveLen(1))
	g.Expect(provider.requests[0].Prompt).To(ContainSubstring("vegan"))

	failing := &stubProvider{err: ai.ErrNotConfigured}
	rec = doJSON(newTestRouter(failing), http.MethodPost, "/mealplan/ai", body)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	var got map[string]string
	g.Expect(json.Unmarshal(rec.Body.Bytes(), &got)).To(Succeed())
	g.Expect(got).NotTo(HaveKey("plan"))
	g.Expect(got["error"]).NotTo(BeEmpty())
}

func TestAnalyzePhotosSendsExactBytes(t *testing.T) {
	g := NewWithT(t)
	provider := &stubProvider{text: "Solid posture."}
	router := newTestRouter(provider)

	front := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}
	back := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR")
	rec := doMultipart(router, "/analyze/photos", nil,
		formFile{field: "front", name: "front.jpg", contentType: "image/jpeg", data: front},
		formFile{field: "back", name: "back.bin", data: back},
	)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"critique":"Solid posture."}`))

	g.Expect(provider.requests).To(HaveLen(1))
	images := provider.requests[0].Images
	g.Expect(images).To(HaveLen(2))

	mimeType, data, err := ai.DecodeDataURL(images[0].DataURL())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mimeType).To(Equal("image/jpeg"))
	g.Expect(data).To(Equal(front))

	mimeType, data, err = ai.DecodeDataURL(images[1].DataURL())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(mimeType).To(Equal("image/png"))
	g.Expect(data).To(Equal(back))
}

func TestAnalyzePhotosProviderFailureIsServerError(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{err: ai.ErrEmptyResponse})

	rec := doMultipart(router, "/analyze/photos", nil,
		formFile{field: "front", name: "f.jpg", contentType: "image/jpeg", data: []byte("front")},
		formFile{field: "back", name: "b.jpg", contentType: "image/jpeg", data: []byte("back")},
	)
	g.Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"error":"Internal Server Error"}`))
}

func TestAnalyzePhotosMissingFileIsUnprocessable(t *testing.T) {
	g := NewWithT(t)
	provider := &stubProvider{}
	router := newTestRouter(provider)

	rec := doMultipart(router, "/analyze/photos", nil,
		formFile{field: "front", name: "f.jpg", contentType: "image/jpeg", data: []byte("front")},
	)
	g.Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"detail":[{"loc":["body","back"],"msg":"field required","type":"value_error.missing"}]}`))
	g.Expect(provider.requests).To(BeEmpty())
}

func TestUploadPhotoReceipt(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doMultipart(router, "/progress/photo",
		map[string]string{"user_id": "u1", "date": "2024-05-01"},
		formFile{field: "file", name: "front.jpg", contentType: "image/jpeg", data: []byte("jpeg-bytes")},
	)
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(MatchJSON(`{
		"user_id":"u1","date":"2024-05-01","filename":"front.jpg",
		"content_type":"image/jpeg","size":10,"message":"Photo uploaded successfully"
	}`))
}

func TestUploadPhotoValidation(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doMultipart(router, "/progress/photo", map[string]string{"user_id": "u1"})
	g.Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
	g.Expect(rec.Body.String()).To(ContainSubstring(`"loc":["body","file"]`))

	rec = doJSON(router, http.MethodPost, "/progress/photo", `{"user_id":"u1"}`)
	g.Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
}

func TestUploadPhotoTooLarge(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	big := bytes.Repeat([]byte{'x'}, (1<<20)+1)
	rec := doMultipart(router, "/progress/photo",
		map[string]string{"user_id": "u1"},
		formFile{field: "file", name: "big.jpg", contentType: "image/jpeg", data: big},
	)
	g.Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
}

func TestUploadBodyIsCutOffAtLimit(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	huge := bytes.Repeat([]byte{'x'}, 8<<20)
	rec, consumed := doMultipartCounted(router, "/progress/photo",
		map[string]string{"user_id": "u1"},
		formFile{field: "file", name: "huge.jpg", contentType: "image/jpeg", data: huge},
	)
	g.Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
	g.Expect(rec.Body.String()).To(MatchJSON(`{"error":"uploaded file is too large"}`))
	g.Expect(consumed).To(BeNumerically("<=", int64(1<<20)+multipartOverhead+1))

	rec, consumed = doMultipartCounted(router, "/analyze/photos", nil,
		formFile{field: "front", name: "f.jpg", contentType: "image/jpeg", data: huge},
		formFile{field: "back", name: "b.jpg", contentType: "image/jpeg", data: []byte("back")},
	)
	g.Expect(rec.Code).To(Equal(http.StatusRequestEntityTooLarge))
	g.Expect(consumed).To(BeNumerically("<=", int64(2<<20)+multipartOverhead+1))
}

func TestListPhotosMock(t *testing.T) {
	g := NewWithT(t)
	router := newTestRouter(&stubProvider{})

	rec := doJSON(router, http.MethodGet, "/progress/photos/u1", "")
	g.Expect(rec.Code).To(Equal(http.StatusOK))
	g.Expect(rec.Body.String()).To(ContainSubstring(`"user_id":"u1"`))
}
