package speech

import (
	"context"
	"log/slog"
	"sync"
)

// State is the audio interaction mode. Speaking and listening are mutually
// exclusive; all transitions go through the controller.
type State string

const (
	StateIdle      State = "idle"
	StateSpeaking  State = "speaking"
	StateListening State = "listening"
)

// Controller owns the one audio channel. Starting playback interrupts an
// active listener; starting a listener stops playback. Screens no longer
// carry their own speaking/listening flags.
type Controller struct {
	announcer Announcer
	logger    *slog.Logger

	mu                sync.Mutex
	state             State
	interruptListener func()
}

func NewController(announcer Announcer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		announcer: announcer,
		logger:    logger.With("component", "speech-controller"),
		state:     StateIdle,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Speak voices an utterance. An active listener is interrupted first.
func (c *Controller) Speak(ctx context.Context, u Utterance) error {
	c.mu.Lock()
	if c.state == StateListening && c.interruptListener != nil {
		interrupt := c.interruptListener
		c.interruptListener = nil
		c.mu.Unlock()
		interrupt()
		c.mu.Lock()
	}
	c.state = StateSpeaking
	c.mu.Unlock()

	if err := c.announcer.Speak(ctx, u); err != nil {
		c.mu.Lock()
		if c.state == StateSpeaking {
			c.state = StateIdle
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// Stop halts playback and returns to idle. Stopping while listening is a
// no-op for the listener; only playback is affected.
func (c *Controller) Stop(ctx context.Context) error {
	c.mu.Lock()
	wasSpeaking := c.state == StateSpeaking
	if wasSpeaking {
		c.state = StateIdle
	}
	c.mu.Unlock()

	if !wasSpeaking {
		return nil
	}
	return c.announcer.Stop(ctx)
}

// StartListening moves to listening, stopping any playback first. The
// interrupt callback is invoked if playback later needs the channel back.
func (c *Controller) StartListening(ctx context.Context, interrupt func()) error {
	c.mu.Lock()
	wasSpeaking := c.state == StateSpeaking
	c.state = StateListening
	c.interruptListener = interrupt
	c.mu.Unlock()

	if wasSpeaking {
		if err := c.announcer.Stop(ctx); err != nil {
			c.logger.Warn("failed to stop playback before listening", "error", err)
		}
	}
	return nil
}

// StopListening returns to idle if the listener still holds the channel.
func (c *Controller) StopListening() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateListening {
		c.state = StateIdle
	}
	c.interruptListener = nil
}
