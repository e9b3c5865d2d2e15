package controllers

import (
	"github.com/Govind-619/ShopSphere/services"
	"github.com/Govind-619/ShopSphere/utils"
	"github.com/gin-gonic/gin"
)

// streamFeed writes each feed update as a server-sent event until the client
// goes away or the feed ends. Refresh failures are sent as "error" events
// and the stream keeps going.
func streamFeed[T any](c *gin.Context, event string, feed *services.Feed[T]) {
	defer feed.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			utils.LogDebug("Stream %s closed by client", event)
			return
		case update, ok := <-feed.C:
			if !ok {
				return
			}
			if update.Err != nil {
				utils.LogError("Stream %s refresh failed: %v", event, update.Err)
				c.SSEvent("error", gin.H{"message": errorMessage(update.Err)})
			} else {
				items := update.Items
				if items == nil {
					items = []T{}
				}
				c.SSEvent(event, items)
			}
			c.Writer.Flush()
		}
	}
}

func errorMessage(err error) string {
	if appErr := utils.GetAppError(err); appErr != nil {
		return appErr.Message
	}
	return utils.ErrInternalServer
}
