package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"complyapi/internal/config"
	"complyapi/internal/model"
	"complyapi/internal/service"
	serviceMocks "complyapi/internal/service/mocks"
	"complyapi/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig(apiKey string) *config.AppConfig {
	return &config.AppConfig{
		AppName: "AI Document Compliance Checker",
		Version: "1.0.0",
		OpenAI:  config.OpenAIConfig{APIKey: apiKey},
	}
}

func TestHealthCheck(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HealthCheck(testConfig("sk-test")))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["openai_configured"])
}

func TestHealthCheckWithoutAPIKey(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HealthCheck(testConfig("")))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, _ := app.Test(req)

	var body map[string]any
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, false, body["openai_configured"])
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/v1/upload", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		body, ct := multipartBody(t, "report.pdf", "%PDF-1.4 fake")

		expectedDoc := &model.Document{ID: uuid.New().String(), Filename: "report.pdf", FileType: "pdf"}
		mockSvc.On("Upload", mock.Anything, mock.Anything, "report.pdf", mock.Anything).
			Return(expectedDoc, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Document
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expectedDoc.ID, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("disallowed extension mentions allowed set", func(t *testing.T) {
		body, ct := multipartBody(t, "script.exe", "MZ")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "script.exe", mock.Anything).
			Return(nil, fmt.Errorf("%w. Allowed types: pdf, docx", service.ErrInvalidFormat)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FORMAT", res.Error.Code)
		assert.Contains(t, res.Error.Message, "pdf, docx")
		mockSvc.AssertExpectations(t)
	})

	t.Run("oversized payload mentions ceiling", func(t *testing.T) {
		body, ct := multipartBody(t, "big.pdf", "x")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "big.pdf", mock.Anything).
			Return(nil, fmt.Errorf("%w. Maximum size: 10.00MB", service.ErrTooLarge)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		assert.Contains(t, res.Error.Message, "10.00MB")
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		body, ct := multipartBody(t, "report.pdf", "x")

		mockSvc.On("Upload", mock.Anything, mock.Anything, "report.pdf", mock.Anything).
			Return(nil, errors.New("disk full")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestCheckCompliance(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/v1/check-compliance", CheckCompliance(mockSvc))

	post := func(payload string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/check-compliance", strings.NewReader(payload))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)
		return resp
	}

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expected := &model.CheckComplianceResponse{
			DocumentID: id,
			Report:     &model.ComplianceReport{Status: model.StatusCompliant, Score: 90},
		}
		mockSvc.On("Check", mock.Anything, id, []string(nil)).Return(expected, nil).Once()

		resp := post(fmt.Sprintf(`{"document_id": %q}`, id))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.CheckComplianceResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.DocumentID)
		assert.Equal(t, model.StatusCompliant, result.Report.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("custom guidelines forwarded", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Check", mock.Anything, id, []string{"Use active voice"}).
			Return(&model.CheckComplianceResponse{DocumentID: id, Report: &model.ComplianceReport{}}, nil).Once()

		resp := post(fmt.Sprintf(`{"document_id": %q, "guidelines": ["Use active voice"]}`, id))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		resp := post(`{not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("invalid document id", func(t *testing.T) {
		resp := post(`{"document_id": "not-a-uuid"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "VALIDATION_ERROR", res.Error.Code)
	})

	t.Run("unknown document", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Check", mock.Anything, id, []string(nil)).
			Return(nil, fmt.Errorf("%w: %s", service.ErrNotFound, id)).Once()

		resp := post(fmt.Sprintf(`{"document_id": %q}`, id))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestModifyDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/v1/modify", ModifyDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expected := &model.ModificationResponse{
			DocumentID:         id,
			ModifiedDocumentID: uuid.New().String(),
			DownloadURL:        "/api/v1/download/xyz_modified.docx",
			ChangesMade:        7,
			Summary:            "Tightened wording",
		}
		mockSvc.On("Modify", mock.Anything, id, []string(nil)).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/modify",
			strings.NewReader(fmt.Sprintf(`{"document_id": %q}`, id)))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.ModificationResponse
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ModifiedDocumentID, result.ModifiedDocumentID)
		assert.Equal(t, 7, result.ChangesMade)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown document", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Modify", mock.Anything, id, []string(nil)).
			Return(nil, fmt.Errorf("%w: %s", service.ErrNotFound, id)).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/modify",
			strings.NewReader(fmt.Sprintf(`{"document_id": %q}`, id)))
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/v1/download/:filename", DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		content := "stored artifact bytes"
		mockSvc.On("Open", mock.Anything, "abc_modified.txt").
			Return(io.NopCloser(strings.NewReader(content)), storage.ObjectInfo{
				Name: "abc_modified.txt",
				Size: int64(len(content)),
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/download/abc_modified.txt", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(body))
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "abc_modified.txt")
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		mockSvc.On("Open", mock.Anything, "missing.pdf").
			Return(nil, storage.ObjectInfo{}, fmt.Errorf("%w: missing.pdf", service.ErrNotFound)).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/download/missing.pdf", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockDocumentService)
	RegisterRoutes(app, testConfig(""), mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
