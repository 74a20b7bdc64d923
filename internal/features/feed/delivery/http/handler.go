package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"airdrop-tracker-backend/internal/features/feed/telegram"
)

// FeedItem is one announcement in the placeholder feed.
type FeedItem struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// FeedResponse is the placeholder Telegram feed. Channel metadata is best
// effort; when the Bot API is unreachable the items still come back together
// with a warning message.
type FeedResponse struct {
	Channel *telegram.ChannelInfo `json:"channel,omitempty"`
	Items   []FeedItem            `json:"items"`
	Warning string                `json:"warning,omitempty"`
}

type FeedHandler struct {
	client  *telegram.Client
	channel string
	logger  *zap.Logger
}

func NewFeedHandler(client *telegram.Client, channel string, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

func (h *FeedHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/feed/telegram", h.getFeed)
}

// @Summary Placeholder Telegram feed
// @Description Returns curated airdrop announcements plus channel metadata when the Bot API is reachable
// @Tags feed
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} FeedResponse
// @Router /feed/telegram [get]
func (h *FeedHandler) getFeed(c *gin.Context) {
	response := FeedResponse{Items: placeholderItems()}

	info, err := h.client.GetChannelInfo(c.Request.Context(), h.channel)
	if err != nil {
		// The feed is decorative; a Bot API failure must not fail the page.
		h.logger.Warn("Telegram feed channel lookup failed", zap.Error(err))
		response.Warning = "Telegram channel information is currently unavailable"
	} else {
		response.Channel = info
	}

	c.JSON(http.StatusOK, response)
}

// placeholderItems is the static feed served until a real channel-scraping
// source exists.
func placeholderItems() []FeedItem {
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []FeedItem{
		{
			Title:       "LayerZero snapshot rumored for next month",
			Description: "Bridge activity before the snapshot reportedly counts toward allocation.",
			Link:        "https://layerzero.network",
			PostedAt:    base,
		},
		{
			Title:       "ZkSync airdrop tasks updated",
			Description: "Two new swap tasks were added to the eligibility checklist.",
			Link:        "https://zksync.io",
			PostedAt:    base.Add(26 * time.Hour),
		},
		{
			Title:       "Scroll origins NFT claim window closing",
			Description: "Claim closes at the end of the week, check your wallet eligibility.",
			Link:        "https://scroll.io",
			PostedAt:    base.Add(49 * time.Hour),
		},
	}
}
