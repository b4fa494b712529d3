package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/bright0ne/A.M-Yusuf-Official/internal/constants"
	"github.com/bright0ne/A.M-Yusuf-Official/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	SignatureHeader = "X-Hub-Signature-256"
	signaturePrefix = "sha256="
)

var ErrInvalidSignature = errors.New("INVALID_SIGNATURE")

// VerifySignature rejects payloads whose X-Hub-Signature-256 does not match the
// app secret. An empty secret disables the check.
func VerifySignature(appSecret string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if appSecret == "" {
			return c.Next()
		}

		if !ValidSignature(c.Body(), c.Get(SignatureHeader), appSecret) {
			logger.Warn("Webhook signature validation failed",
				zap.Bool("headerPresent", c.Get(SignatureHeader) != ""),
				zap.String("ip", c.IP()),
			)
			return service.NewServiceError(constants.ErrCodeInvalidSignature, ErrInvalidSignature)
		}

		return c.Next()
	}
}

func ValidSignature(payload []byte, header, appSecret string) bool {
	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}

	expected, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(payload)

	return hmac.Equal(mac.Sum(nil), expected)
}

// Sign returns the header value for payload, as the platform computes it.
func Sign(payload []byte, appSecret string) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(payload)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}
