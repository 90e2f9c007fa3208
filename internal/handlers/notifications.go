package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"celta_back_end/internal/notifications"
)

func GetNotifications(c *gin.Context) {
	list := notifications.List(c.Request.Context())
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": list,
		"unread":        unread,
	})
}

// MarkNotificationsRead vide le journal en bloc, comme l'ouverture du
// panneau de notifications de l'application d'origine.
func MarkNotificationsRead(c *gin.Context) {
	if err := notifications.ClearAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur nettoyage notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marquées comme lues"})
}
