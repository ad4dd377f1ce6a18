package tasks

import (
	"testing"

	"skischool/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

func TestRevalidateTaskRoundTrip(t *testing.T) {
	in := models.RevalidatePayload{
		MonitorID: "m1",
		Target:    models.CommitmentRef{Kind: models.KindCollective, OwnerID: "sg1"},
		SchoolID:  "s1",
	}

	task, opts, err := NewRevalidateTask(in)
	require.NoError(t, err)
	require.Equal(t, TypeScheduleRevalidate, task.Type())
	require.Len(t, opts, 2)
	require.Equal(t, asynq.MaxRetryOpt, opts[0].Type())
	require.Equal(t, asynq.UniqueOpt, opts[1].Type())

	out, err := ParseRevalidatePayload(task)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestParseRevalidatePayloadRejectsGarbage(t *testing.T) {
	_, err := ParseRevalidatePayload(asynq.NewTask(TypeScheduleRevalidate, []byte("nope")))
	require.Error(t, err)
}
