package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xenn00/room-chat/internal/queue"
	room_repo "github.com/xenn00/room-chat/internal/repo/room"
	"github.com/xenn00/room-chat/state"
)

func HandleJob(ctx context.Context, job queue.Job, appState *state.AppState) error {
	switch job.Type {
	case queue.JobRoomActivity:
		return handleRoomActivity(ctx, job, appState)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

func handleRoomActivity(ctx context.Context, job queue.Job, appState *state.AppState) error {
	var payload queue.RoomActivityPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("invalid room_activity payload: %w", err)
	}

	repo := room_repo.NewRoomRepo(appState)
	if err := repo.BumpActivity(ctx, payload.RoomID, payload.AuthorID, time.Unix(payload.SentAt, 0)); err != nil {
		return err
	}
	return nil
}
