package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/pomod/internal/commands"
	"github.com/sandeepkv93/pomod/internal/model"
	"github.com/sandeepkv93/pomod/internal/tasks"
	"github.com/sandeepkv93/pomod/internal/timer"
)

func TestRunTaskCommands(t *testing.T) {
	e := newEnv()
	a := e.load(t, nil)

	res, err := a.Run("add Write report")
	require.NoError(t, err)
	assert.Equal(t, "added 1. Write report", res.Message)

	res, err = a.Run("done 1")
	require.NoError(t, err)
	assert.Equal(t, "completed: Write report", res.Message)
	assert.Equal(t, 1, a.Statistics().CompletedTasks)

	res, err = a.Run("pomodoro 1")
	require.NoError(t, err)
	assert.Equal(t, "Write report: 1 pomodoros", res.Message)

	_, err = a.Run("rm 2")
	assert.ErrorIs(t, err, tasks.ErrBadPosition)

	_, err = a.Run("rm 1")
	require.NoError(t, err)
	assert.Zero(t, a.Tasks().Len())

	// the reloaded app sees the same list
	assert.Zero(t, e.load(t, nil).Tasks().Len())
}

func TestRunSetCommands(t *testing.T) {
	e := newEnv()
	a := e.load(t, nil)

	_, err := a.Run("set focus 40")
	require.NoError(t, err)
	assert.Equal(t, 40, a.Timer().Settings().FocusTime)
	assert.Equal(t, 40*60, a.Timer().Snapshot().TimeLeft)

	_, err = a.Run("set sound chime")
	require.NoError(t, err)
	assert.Equal(t, model.SoundChime, e.load(t, nil).Timer().Audio().NotificationSound)

	res, err := a.Run("set focus 90")
	require.NoError(t, err)
	assert.Equal(t, "focus set to 60 (clamped from 90)", res.Message)
	assert.Equal(t, 60, a.Timer().Settings().FocusTime)

	res, err = a.Run("set ticking yes")
	require.NoError(t, err)
	assert.Equal(t, "ticking set to on", res.Message)

	_, err = a.Run("set colour red")
	var cmdErr *commands.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, commands.ErrCodeInvalidArgument, cmdErr.Code)
}

func TestRunSetRefusedWhileRunning(t *testing.T) {
	a := newEnv().load(t, nil)
	m := a.Timer()
	m.Start()
	for i := 0; i <= timer.CountdownStart; i++ {
		ticket, ok := m.Pending()
		require.True(t, ok)
		m.Fire(ticket)
	}
	require.Equal(t, model.StatusRunning, m.Snapshot().Status)

	_, err := a.Run("set focus 10")
	assert.ErrorIs(t, err, timer.ErrTimerRunning)
	assert.Equal(t, 25, m.Settings().FocusTime)

	_, err = a.Run("set volume 20")
	require.NoError(t, err, "audio settings are not gated on the timer")
	assert.Equal(t, 20, m.Audio().Volume)
}

func TestRunTimerCommands(t *testing.T) {
	a := newEnv().load(t, nil)

	res, err := a.Run("skip")
	require.NoError(t, err)
	assert.Equal(t, "skipped to Short Break", res.Message)
	assert.Equal(t, 1, a.Statistics().TotalSessions)

	_, err = a.Run("reset")
	require.NoError(t, err)
	assert.Equal(t, model.StatusIdle, a.Timer().Snapshot().Status)

	_, err = a.Run("")
	assert.Error(t, err)
}
