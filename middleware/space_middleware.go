package middleware

import (
	authutils "hr-pipeline-backend/lib/utils/auth-utils"

	"github.com/gofiber/fiber/v2"
)

func GetUserSpace(ctx *fiber.Ctx) string {
	return claimString(ctx, "space")
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(ctx, "name")
}

func claimString(ctx *fiber.Ctx, key string) string {
	claims := authutils.GetClaims(ctx)
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}
