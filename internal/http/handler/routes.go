package handler

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"complyapi/internal/config"
	"complyapi/internal/model"
	"complyapi/internal/service"
)

var validate = validator.New()

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing, validation and error mapping only.
func RegisterRoutes(app *fiber.App, cfg *config.AppConfig, docSvc service.DocumentService) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(cfg))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	apiv1 := app.Group("/api/v1")
	apiv1.Post("/upload", UploadDocument(docSvc))
	apiv1.Post("/check-compliance", CheckCompliance(docSvc))
	apiv1.Post("/modify", ModifyDocument(docSvc))
	apiv1.Get("/download/:filename", DownloadDocument(docSvc))
}

// HealthCheck reports service status and whether a model endpoint is configured.
func HealthCheck(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":            "healthy",
			"app_name":          cfg.AppName,
			"version":           cfg.Version,
			"openai_configured": cfg.OpenAI.APIKey != "",
		})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument accepts a multipart upload (field name: file) and stores it
// under a fresh document ID.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		doc, err := docSvc.Upload(c.UserContext(), f, fh.Filename, fh.Size)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// CheckCompliance runs a guideline check against an uploaded document.
func CheckCompliance(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.CheckComplianceRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
		}

		res, err := docSvc.Check(c.UserContext(), req.DocumentID, req.Guidelines)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ModifyDocument rewrites an uploaded document for compliance and returns
// the new artifact's location.
func ModifyDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.ModifyRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		}
		if err := validate.Struct(&req); err != nil {
			return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
		}

		res, err := docSvc.Modify(c.UserContext(), req.DocumentID, req.Guidelines)
		if err != nil {
			return mapServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DownloadDocument streams a stored original or modified artifact.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filename := filepath.Base(c.Params("filename"))

		rc, info, err := docSvc.Open(c.UserContext(), filename)
		if err != nil {
			return mapServiceError(c, err)
		}

		c.Attachment(filename)
		c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
		return c.SendStream(rc, int(info.Size))
	}
}

// validationMessage flattens validator errors into one readable line.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "invalid request"
	}
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed on '%s' tag", e.Field(), e.Tag())
	}
	return msg
}
