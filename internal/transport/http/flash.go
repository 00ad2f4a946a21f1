package http

import (
	"log/slog"

	"user_galleries/internal/domain/models"
	"user_galleries/internal/lib/logger/sl"
	"user_galleries/internal/transport/http/dto"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

var flashLevels = []models.EventLevel{models.LevelStatus, models.LevelWarning, models.LevelError}

// addFlashes сохраняет сообщения в сессии до следующего открытия формы
func (r *Routers) addFlashes(c echo.Context, events []models.Event) {
	if len(events) == 0 {
		return
	}

	sess, err := session.Get(r.sessionName, c)
	if err != nil {
		r.log.Warn("session unavailable, messages dropped", sl.Err(err))
		return
	}

	for _, e := range events {
		sess.AddFlash(e.Message, string(e.Level))
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Error("failed to save session", sl.Err(err))
	}
}

func (r *Routers) popFlashes(c echo.Context) []dto.FlashMessage {
	messages := []dto.FlashMessage{}

	sess, err := session.Get(r.sessionName, c)
	if err != nil {
		return messages
	}

	for _, level := range flashLevels {
		for _, f := range sess.Flashes(string(level)) {
			if msg, ok := f.(string); ok {
				messages = append(messages, dto.FlashMessage{Level: string(level), Message: msg})
			}
		}
	}

	if len(messages) > 0 {
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			r.log.Error("failed to save session", slog.Int("messages", len(messages)), sl.Err(err))
		}
	}

	return messages
}
