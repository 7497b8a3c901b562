package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"givehope/auth"
	"givehope/domain"
	"givehope/mailer"
	"givehope/store"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/microcosm-cc/bluemonday"
)

var sanitizerStrict = bluemonday.StrictPolicy()
var sanitizerUGC = bluemonday.UGCPolicy()

// Uploader stores attachment bytes and mints a signed retrieval URL.
type Uploader interface {
	Upload(ctx context.Context, name, contentType string, size int64, r io.Reader) (domain.Attachment, error)
}

// Mailer dispatches an operator notification. Failures are reported to the
// caller as a degraded status, never as a lost submission.
type Mailer interface {
	Send(m mailer.Message) error
}

type Handler struct {
	Store        *store.Store
	Verifier     *auth.Verifier
	Uploader     Uploader
	Mailer       Mailer
	JWTSecret    string
	EnableSignup bool
	StrictDelete bool
	PhoneDigits  int
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// AdminRequired gates mutating routes. The bearer token is taken from the
// Authorization header and handed to the verifier; tagged failures map onto
// 401/403 JSON errors before any handler logic runs.
func (h *Handler) AdminRequired() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return h.Verifier.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, auth.ErrExpired):
				return respondError(c, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInsufficientRole):
				return respondError(c, http.StatusForbidden, "Admin role required")
			case errors.Is(err, auth.ErrMalformedCredential):
				return respondError(c, http.StatusUnauthorized, "Invalid JWT")
			default:
				return respondError(c, http.StatusUnauthorized, "No authorization header")
			}
		},
	})
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

func mdToHTML(md string) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	opts := html.RendererOptions{Flags: htmlFlags}
	renderer := html.NewRenderer(opts)

	return markdown.Render(doc, renderer)
}

// safeMd renders stored markdown content to HTML safe to hand to the site.
func safeMd(content string) string {
	if content == "" {
		return ""
	}
	return string(sanitizerUGC.SanitizeBytes(mdToHTML(content)))
}
