package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/bus-booking-system/internal/domain"
)

const (
	sseHeartbeatInterval = 15 * time.Second
	sseRetryMillis       = 3000
)

// StreamScheduleEvents streams the seat events of a schedule as Server-Sent
// Events. Opening the stream joins the schedule's topic and closing it leaves.
func (app *Application) StreamScheduleEvents(w http.ResponseWriter, r *http.Request, scheduleId int) {
	logger := app.contextGetLogger(r)

	_, ok := app.getScheduleOr404(w, r, scheduleId)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)

	// the stream outlives the server's write timeout
	err := rc.SetWriteDeadline(time.Time{})
	if err != nil {
		logger.Warn("failed to clear write deadline for event stream", "error", err)
	}

	clientId := uuid.NewString()
	sub := app.hub.Join(scheduleId, clientId)
	defer app.hub.Leave(scheduleId, clientId)

	logger.Info("client joined schedule events", "schedule_id", scheduleId, "client_id", clientId)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, "retry: %d\n\n", sseRetryMillis)
	if err := rc.Flush(); err != nil {
		logger.Error("event stream is not flushable", "error", err)
		return
	}

	heartbeat := time.NewTicker(sseHeartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("client left schedule events", "schedule_id", scheduleId, "client_id", clientId)
			return

		case <-sub.Done():
			return

		case event := <-sub.Events():
			err := writeSeatEvent(w, event)
			if err == nil {
				err = rc.Flush()
			}
			if err != nil {
				logger.Warn("failed to write seat event", "schedule_id", scheduleId, "error", err)
				return
			}

		case <-heartbeat.C:
			_, err := fmt.Fprint(w, ": ping\n\n")
			if err == nil {
				err = rc.Flush()
			}
			if err != nil {
				return
			}
		}
	}
}

func writeSeatEvent(w http.ResponseWriter, event domain.SeatEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	return err
}
