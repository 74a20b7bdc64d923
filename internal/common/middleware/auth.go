package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	initdata "github.com/telegram-mini-apps/init-data-golang"
)

const (
	ownerKey = "owner_id"

	// Owner assigned to unauthenticated requests when the guest fallback is
	// enabled (debug runs and local development).
	GuestOwnerID = "guest"
)

// TelegramAuth validates the Telegram Mini App init_data header and stores the
// resulting owner id in the request context. When allowGuest is set, requests
// without init data proceed under the guest owner instead of being rejected.
func TelegramAuth(botToken string, allowGuest bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		initDataQuery := c.GetHeader("init_data")
		if initDataQuery == "" {
			if allowGuest {
				c.Set(ownerKey, GuestOwnerID)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Telegram Init Data required"})
			return
		}

		if botToken == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			return
		}

		// Expiration check disabled, mini apps keep init data for the whole
		// session.
		expIn := time.Duration(0)

		if err := initdata.Validate(initDataQuery, botToken, expIn); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": fmt.Sprintf("Invalid init data: %v", err)})
			return
		}

		parsedData, err := initdata.Parse(initDataQuery)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to parse init data: %v", err)})
			return
		}

		c.Set("user", parsedData.User)
		c.Set(ownerKey, strconv.FormatInt(parsedData.User.ID, 10))
		c.Next()
	}
}

// OwnerID returns the owner identifier set by TelegramAuth.
func OwnerID(c *gin.Context) string {
	if v, exists := c.Get(ownerKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return GuestOwnerID
}
