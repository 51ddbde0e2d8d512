package deployer

import (
	"context"
	"deployer/internal/logger"
	"deployer/internal/model"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const DefaultSettleDelay = 100 * time.Millisecond

type Client interface {
	Upload(ctx context.Context, target model.DeployTarget) model.UploadResult
}

type Recorder interface {
	Save(target model.DeployTarget, trigger model.Trigger, result model.UploadResult) error
}

// Outcome is what the process does after a successful initial deployment.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeWatch
)

func (o Outcome) String() string {
	if o == OutcomeWatch {
		return "watch"
	}
	return "done"
}

type Options struct {
	SettleDelay time.Duration
	Recorder    Recorder
}

// Deployer pairs one target with an upload client. Uploads run one at a
// time on the caller's goroutine.
type Deployer struct {
	target   model.DeployTarget
	client   Client
	settle   time.Duration
	recorder Recorder
	stats    *Stats
}

func New(target model.DeployTarget, client Client, opts Options) *Deployer {
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}

	return &Deployer{
		target:   target,
		client:   client,
		settle:   settle,
		recorder: opts.Recorder,
		stats:    NewStats(),
	}
}

func (d *Deployer) Target() model.DeployTarget {
	return d.target
}

func (d *Deployer) Stats() *Stats {
	return d.stats
}

// Deploy performs the initial upload. Any failure is fatal for the caller.
func (d *Deployer) Deploy(ctx context.Context, watch bool) (Outcome, error) {
	result := d.upload(ctx, model.TriggerInitial)
	if err := result.Failure(); err != nil {
		return OutcomeDone, fmt.Errorf("%w: %w", ErrInitialUpload, err)
	}

	if !watch {
		return OutcomeDone, nil
	}
	return OutcomeWatch, nil
}

// Watch consumes change events until the channel is closed or ctx is done.
// Upload failures are logged and never end the loop.
func (d *Deployer) Watch(ctx context.Context, events <-chan model.ChangeEvent) {
	d.stats.SetState(model.StateIdle)
	defer d.stats.SetState(model.StateTerminated)

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("watch loop stopped",
				zap.Error(ctx.Err()))
			return

		case event, ok := <-events:
			if !ok {
				logger.Log.Info("event channel closed, watch loop stopped")
				return
			}
			d.handle(ctx, event)
		}
	}
}

func (d *Deployer) handle(ctx context.Context, event model.ChangeEvent) {
	switch {
	case event.Type == model.EventError:
		logger.Log.Error("watch error",
			zap.String("path", event.Path),
			zap.Error(event.Err))

	case event.TriggersDeploy():
		logger.Log.Info("file changed, redeploying",
			zap.String("type", string(event.Type)),
			zap.String("path", event.Path))

		d.stats.SetState(model.StateUploading)
		defer d.stats.SetState(model.StateIdle)

		// the writer may not have flushed everything yet
		if !sleep(ctx, d.settle) {
			return
		}

		result := d.upload(ctx, model.TriggerRedeploy)
		if err := result.Failure(); err != nil {
			logger.Log.Error("redeploy failed",
				zap.String("uri", d.target.URI),
				zap.Error(fmt.Errorf("%w: %w", ErrRedeployUpload, err)))
		}

	default:
		logger.Log.Debug("ignoring event",
			zap.String("type", string(event.Type)),
			zap.String("path", event.Path))
	}
}

func (d *Deployer) upload(ctx context.Context, trigger model.Trigger) model.UploadResult {
	result := d.client.Upload(ctx, d.target)
	d.stats.Record(result)

	if d.recorder != nil {
		if err := d.recorder.Save(d.target, trigger, result); err != nil {
			logger.Log.Warn("failed to save history",
				zap.Error(err))
		}
	}

	return result
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (d *Deployer) Snapshot() model.Snapshot {
	return d.stats.Snapshot(d.target)
}
