package middleware

import (
	"hr-pipeline-backend/config"
	authutils "hr-pipeline-backend/lib/utils/auth-utils"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *fiber.App {
	conf := &config.Configuration{}
	conf.Auth.JWTSecret = "secret"
	config.Conf = conf
	app := fiber.New()
	app.Use(AuthorizationRequired(), SpaceRequired())
	app.Get("/me", func(ctx *fiber.Ctx) error {
		return ctx.SendString(GetUserSpace(ctx) + "/" + GetUserID(ctx) + "/" + GetUserName(ctx))
	})
	return app
}

func TestAuthorizationRequired(t *testing.T) {
	t.Run(`claims are available check`, func(t *testing.T) {
		app := testApp(t)
		token, err := authutils.GetToken("secret", "u1", "Recruiter", "space", time.Hour)
		require.Nil(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.Nil(t, err)
		require.Equal(t, "space/u1/Recruiter", string(body))
	})

	t.Run(`missing token check`, func(t *testing.T) {
		app := testApp(t)
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`wrong secret check`, func(t *testing.T) {
		app := testApp(t)
		token, err := authutils.GetToken("other", "u1", "Recruiter", "space", time.Hour)
		require.Nil(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`token without space check`, func(t *testing.T) {
		app := testApp(t)
		token, err := authutils.GetToken("secret", "u1", "Recruiter", "", time.Hour)
		require.Nil(t, err)
		req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
